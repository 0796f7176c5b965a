package domain

import "errors"

var (
	// ErrInvalidCredentials covers a rejected username/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAuthenticationRequired means the backend saw no token at all.
	ErrAuthenticationRequired = errors.New("Authentication required. Please log in.")
	// ErrSessionExpired means the backend rejected the presented token.
	ErrSessionExpired = errors.New("Session expired. Please log in again.")
	// ErrForbidden means the session is valid but the role is insufficient.
	ErrForbidden = errors.New("You do not have permission to access this resource.")

	ErrInvalidTransition = errors.New("invalid session status transition")
	ErrNotFound          = errors.New("resource not found")
)
