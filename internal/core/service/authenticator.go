package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/svcdesk/adminconsole/internal/core/domain"
	"github.com/svcdesk/adminconsole/internal/core/ports"
	"github.com/svcdesk/adminconsole/internal/gateway"
	"github.com/svcdesk/adminconsole/internal/metrics"
)

const fallbackLoginError = "An unexpected error occurred."

// Authenticator submits credentials to the backend and moves the session
// store through verifying → authenticated/failed. It never navigates; the
// caller observes the resulting session state and redirects by role.
type Authenticator struct {
	sessions  ports.SessionStore
	requester ports.Requester
	timeout   time.Duration
	logger    zerolog.Logger
}

// NewAuthenticator builds an Authenticator. timeout bounds the login
// round-trip; on expiry the attempt resolves to failed instead of leaving
// the session stuck in verifying.
func NewAuthenticator(sessions ports.SessionStore, requester ports.Requester, timeout time.Duration, logger zerolog.Logger) *Authenticator {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Authenticator{sessions: sessions, requester: requester, timeout: timeout, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message,omitempty"`
	Token   string             `json:"token,omitempty"`
	User    *domain.UserRecord `json:"user,omitempty"`
}

// Login performs one authentication attempt. A failed attempt is terminal:
// there are no retries, the user must resubmit. The returned error carries
// the same message recorded on the session.
func (a *Authenticator) Login(ctx context.Context, email, password string) error {
	a.sessions.BeginVerification()

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var resp loginResponse
	err := a.requester.Do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		msg := loginFailureMessage(err)
		a.logger.Warn().Str("email", email).Str("reason", msg).Msg("login failed")
		a.sessions.SetFailed(msg)
		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		return errors.New(msg)
	}

	if !resp.Success || resp.User == nil || resp.Token == "" {
		msg := resp.Message
		if msg == "" {
			msg = "Login failed."
		}
		a.sessions.SetFailed(msg)
		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		return errors.New(msg)
	}

	a.sessions.SetAuthenticated(resp.User, resp.Token)
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	a.logger.Info().Str("username", resp.User.Username).Str("role", resp.User.Role).Msg("login succeeded")
	return nil
}

// loginFailureMessage prefers the backend-supplied reason and falls back to a
// generic message for network-level failures.
func loginFailureMessage(err error) string {
	var httpErr *gateway.HTTPError
	if errors.As(err, &httpErr) && httpErr.Message != "" {
		return httpErr.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Login timed out. Please try again."
	}
	return fallbackLoginError
}
