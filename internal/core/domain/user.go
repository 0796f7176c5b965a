package domain

import "time"

const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// UserRecord models the authenticated actor as returned by the backend.
// Immutable once fetched; replaced wholesale on re-login.
type UserRecord struct {
	ID          string    `json:"_id"`
	Username    string    `json:"username"`
	Email       string    `json:"email,omitempty"`
	FirstName   string    `json:"firstName,omitempty"`
	LastName    string    `json:"lastName,omitempty"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	Role        string    `json:"userRole"`
	Status      string    `json:"userStatus,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// KnownRole reports whether role is one the permission table understands.
func KnownRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}
