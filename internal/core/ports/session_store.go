package ports

import "github.com/svcdesk/adminconsole/internal/core/domain"

// SessionStore owns the single mutable Session. All mutations are synchronous
// and atomic from the caller's perspective; no partial update is ever visible.
// It is the sole synchronization point for session state.
type SessionStore interface {
	// Current returns a snapshot of the session.
	Current() domain.Session
	// BeginVerification moves the session to verifying while a login or
	// rehydration is in flight.
	BeginVerification()
	// SetAuthenticated installs the identity and synchronously persists the
	// token and user snapshot to durable storage.
	SetAuthenticated(user *domain.UserRecord, token string)
	// SetFailed records a terminal failure for the current attempt.
	SetFailed(message string)
	// Clear logs the session out and synchronously erases durable storage.
	// Idempotent.
	Clear()
}

// SessionClearer is the narrow mutation surface handed to the HTTP gateway's
// forced-logout path.
type SessionClearer interface {
	Clear()
}

// SessionReader is the read-only surface handed to components that must not
// mutate session state.
type SessionReader interface {
	Current() domain.Session
}
