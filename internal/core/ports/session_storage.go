package ports

import "github.com/svcdesk/adminconsole/internal/core/domain"

// SessionStorage is durable client storage for the session snapshot, the
// Go-side equivalent of the browser's localStorage keys "token", "user" and
// "lastVisitedAdminPath". Implementations must make writes visible to a
// subsequent process start.
type SessionStorage interface {
	// SaveSession persists the token and user snapshot.
	SaveSession(token string, user *domain.UserRecord) error
	// LoadSession returns the persisted snapshot. A missing snapshot is
	// reported as empty values, not an error.
	LoadSession() (token string, user *domain.UserRecord, err error)
	// ClearSession erases the persisted snapshot and the last visited admin
	// path. Erasing an already-empty store is not an error.
	ClearSession() error

	// SaveLastAdminPath records the most recent /admin sub-route.
	SaveLastAdminPath(path string) error
	// LastAdminPath returns the recorded sub-route, or "" when none is set.
	LastAdminPath() (string, error)
}
