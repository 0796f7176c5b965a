package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/svcdesk/adminconsole/internal/core/domain"
)

type memStorage struct {
	token    string
	user     *domain.UserRecord
	lastPath string
}

func (m *memStorage) SaveSession(token string, user *domain.UserRecord) error {
	m.token = token
	m.user = user
	return nil
}

func (m *memStorage) LoadSession() (string, *domain.UserRecord, error) {
	return m.token, m.user, nil
}

func (m *memStorage) ClearSession() error {
	m.token = ""
	m.user = nil
	m.lastPath = ""
	return nil
}

func (m *memStorage) SaveLastAdminPath(path string) error {
	m.lastPath = path
	return nil
}

func (m *memStorage) LastAdminPath() (string, error) {
	return m.lastPath, nil
}

func adminUser() *domain.UserRecord {
	return &domain.UserRecord{ID: "u-1", Username: "admin", Role: domain.RoleAdmin}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u-1",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestStore_VerifyThenAuthenticate(t *testing.T) {
	storage := &memStorage{}
	store := NewStore(storage, zerolog.Nop())

	store.BeginVerification()
	if got := store.Current().Status; got != domain.StatusVerifying {
		t.Fatalf("expected verifying, got %s", got)
	}

	store.SetAuthenticated(adminUser(), "tok-1")
	sess := store.Current()
	if !sess.Authenticated() {
		t.Fatalf("expected authenticated session, got %+v", sess)
	}
	if sess.Token != "tok-1" || sess.User == nil {
		t.Fatalf("token/user not populated: %+v", sess)
	}
	if storage.token != "tok-1" || storage.user == nil {
		t.Fatalf("session not persisted synchronously")
	}
}

func TestStore_VerifyThenFail(t *testing.T) {
	store := NewStore(&memStorage{}, zerolog.Nop())

	store.BeginVerification()
	store.SetFailed("Invalid email or password.")

	sess := store.Current()
	if sess.Status != domain.StatusFailed {
		t.Fatalf("expected failed, got %s", sess.Status)
	}
	if sess.Token != "" || sess.User != nil {
		t.Fatalf("failed session must not carry identity: %+v", sess)
	}
	if sess.LastError != "Invalid email or password." {
		t.Fatalf("unexpected last error: %q", sess.LastError)
	}
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	storage := &memStorage{}
	store := NewStore(storage, zerolog.Nop())
	store.SetAuthenticated(adminUser(), "tok-1")

	store.Clear()
	first := store.Current()
	store.Clear()
	second := store.Current()

	if first != second {
		t.Fatalf("clear is not idempotent: %+v vs %+v", first, second)
	}
	if first.Status != domain.StatusUnauthenticated || first.Token != "" || first.User != nil {
		t.Fatalf("unexpected cleared session: %+v", first)
	}
	if storage.token != "" || storage.user != nil {
		t.Fatalf("durable storage not erased")
	}
}

func TestStore_RehydrateValidToken(t *testing.T) {
	storage := &memStorage{
		token: signedToken(t, time.Now().Add(time.Hour)),
		user:  adminUser(),
	}
	store := NewStore(storage, zerolog.Nop())

	store.Rehydrate()

	sess := store.Current()
	if !sess.Authenticated() {
		t.Fatalf("expected rehydrated session to be authenticated, got %+v", sess)
	}
	if sess.User.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", sess.User.Role)
	}
}

func TestStore_RehydrateExpiredToken(t *testing.T) {
	storage := &memStorage{
		token: signedToken(t, time.Now().Add(-time.Hour)),
		user:  adminUser(),
	}
	store := NewStore(storage, zerolog.Nop())

	store.Rehydrate()

	sess := store.Current()
	if sess.Status != domain.StatusUnauthenticated {
		t.Fatalf("expected unauthenticated after expired token, got %s", sess.Status)
	}
	if storage.token != "" {
		t.Fatalf("expired token must be erased from storage")
	}
}

func TestStore_RehydrateGarbageToken(t *testing.T) {
	storage := &memStorage{token: "not-a-jwt", user: adminUser()}
	store := NewStore(storage, zerolog.Nop())

	store.Rehydrate()

	if got := store.Current().Status; got != domain.StatusUnauthenticated {
		t.Fatalf("expected unauthenticated after garbage token, got %s", got)
	}
}

func TestStore_RehydrateUnknownRole(t *testing.T) {
	storage := &memStorage{
		token: signedToken(t, time.Now().Add(time.Hour)),
		user:  &domain.UserRecord{ID: "u-9", Username: "ghost", Role: "superuser"},
	}
	store := NewStore(storage, zerolog.Nop())

	store.Rehydrate()

	if got := store.Current().Status; got != domain.StatusUnauthenticated {
		t.Fatalf("expected unknown role to be discarded, got %s", got)
	}
	if storage.token != "" {
		t.Fatalf("storage should be erased for an unknown role")
	}
}

func TestStore_RehydrateEmptyStorage(t *testing.T) {
	store := NewStore(&memStorage{}, zerolog.Nop())

	store.Rehydrate()

	if got := store.Current().Status; got != domain.StatusUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", got)
	}
}
