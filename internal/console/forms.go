package console

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// LoginForm is the login screen's input. Non-empty checks live here, on the
// form, so the authenticator can assume its precondition.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// LineEditForm is one edited order line before it reaches the reconciler.
type LineEditForm struct {
	ServiceID    string `validate:"required"`
	NumberOfUnit int    `validate:"required,gt=0"`
}

var validate = validator.New()

// ValidateForm checks a form struct and renders violations as one
// human-readable message per field.
func ValidateForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fieldError(fe))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return err
}

func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
