package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/svcdesk/adminconsole/internal/core/domain"
)

type sessionStub struct {
	mu     sync.Mutex
	token  string
	clears int
}

func (s *sessionStub) Current() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := domain.Session{Token: s.token}
	if s.token != "" {
		sess.Status = domain.StatusAuthenticated
		sess.User = &domain.UserRecord{Username: "admin", Role: domain.RoleAdmin}
	}
	return sess
}

func (s *sessionStub) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	s.token = ""
}

func (s *sessionStub) clearCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clears
}

type storageStub struct {
	mu    sync.Mutex
	token string
	user  *domain.UserRecord
	wipes int
}

func (s *storageStub) SaveSession(token string, user *domain.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = token, user
	return nil
}

func (s *storageStub) LoadSession() (string, *domain.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.user, nil
}

func (s *storageStub) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = "", nil
	s.wipes++
	return nil
}

func (s *storageStub) SaveLastAdminPath(string) error { return nil }
func (s *storageStub) LastAdminPath() (string, error) { return "", nil }

type navStub struct {
	mu       sync.Mutex
	replaced []string
}

func (n *navStub) Navigate(path string) {}

func (n *navStub) Replace(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.replaced = append(n.replaced, path)
}

func (n *navStub) replaces() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.replaced...)
}

func newBoundGateway(t *testing.T, handler http.Handler) (*Gateway, *sessionStub, *storageStub, *navStub, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	sessions := &sessionStub{token: "tok-1"}
	storage := &storageStub{}
	nav := &navStub{}
	gw := New(srv.URL, 5*time.Second, sessions, storage, zerolog.Nop())
	gw.Bind(nav, sessions)
	return gw, sessions, storage, nav, srv.Close
}

func TestGateway_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	gw, _, _, _, done := newBoundGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{}`))
	}))
	defer done()

	if err := gw.Do(context.Background(), http.MethodGet, "/api/users", nil, nil, nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Fatalf("expected request id header")
	}
}

func TestGateway_StorageFallbackToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	sessions := &sessionStub{} // no token in memory yet
	storage := &storageStub{token: "stored-tok"}
	gw := New(srv.URL, 5*time.Second, sessions, storage, zerolog.Nop())

	if err := gw.Do(context.Background(), http.MethodGet, "/api/users", nil, nil, nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotAuth != "Bearer stored-tok" {
		t.Fatalf("expected storage fallback token, got %q", gotAuth)
	}
}

func TestGateway_TokenMissingForcesLogout(t *testing.T) {
	gw, sessions, _, nav, done := newBoundGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Token missing"}`))
	}))
	defer done()

	err := gw.Do(context.Background(), http.MethodGet, "/api/orders", nil, nil, nil)
	if !errors.Is(err, domain.ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}
	if got := sessions.clearCount(); got != 1 {
		t.Fatalf("expected exactly one Clear, got %d", got)
	}
	if got := nav.replaces(); len(got) != 1 || got[0] != domain.RouteLogin {
		t.Fatalf("expected one replace to /login, got %v", got)
	}
}

func TestGateway_InvalidTokenForcesLogout(t *testing.T) {
	gw, sessions, _, nav, done := newBoundGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"Invalid token"}`))
	}))
	defer done()

	err := gw.Do(context.Background(), http.MethodGet, "/api/orders", nil, nil, nil)
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if got := sessions.clearCount(); got != 1 {
		t.Fatalf("expected exactly one Clear, got %d", got)
	}
	if got := nav.replaces(); len(got) != 1 || got[0] != domain.RouteLogin {
		t.Fatalf("expected one replace to /login, got %v", got)
	}
}

func TestGateway_ForbiddenKeepsSession(t *testing.T) {
	gw, sessions, _, nav, done := newBoundGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"Forbidden"}`))
	}))
	defer done()

	err := gw.Do(context.Background(), http.MethodGet, "/api/expenses", nil, nil, nil)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if got := sessions.clearCount(); got != 0 {
		t.Fatalf("forbidden must not clear the session, got %d clears", got)
	}
	if got := nav.replaces(); len(got) != 1 || got[0] != domain.RouteUnauthorized {
		t.Fatalf("expected one replace to /unauthorized, got %v", got)
	}
}

func TestGateway_ValidationErrorPassesThrough(t *testing.T) {
	gw, sessions, _, nav, done := newBoundGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Validation failed","errors":[{"field":"firstName","message":"firstName is required"}]}`))
	}))
	defer done()

	err := gw.Do(context.Background(), http.MethodPost, "/api/customers", nil, map[string]string{}, nil)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Issues) != 1 || ve.Issues[0].Field != "firstName" {
		t.Fatalf("unexpected issues: %+v", ve.Issues)
	}
	if sessions.clearCount() != 0 || len(nav.replaces()) != 0 {
		t.Fatalf("validation errors must not touch session or navigation")
	}
}

func TestGateway_OtherErrorsPassThrough(t *testing.T) {
	gw, sessions, _, nav, done := newBoundGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	}))
	defer done()

	err := gw.Do(context.Background(), http.MethodGet, "/api/services", nil, nil, nil)
	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.StatusCode != http.StatusInternalServerError || he.Message != "boom" {
		t.Fatalf("unexpected error: %+v", he)
	}
	if sessions.clearCount() != 0 || len(nav.replaces()) != 0 {
		t.Fatalf("generic errors must not touch session or navigation")
	}
}

func TestGateway_UnboundFallbackWipesStorage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Token missing"}`))
	}))
	defer srv.Close()

	sessions := &sessionStub{token: "tok-1"}
	storage := &storageStub{token: "tok-1"}
	gw := New(srv.URL, 5*time.Second, sessions, storage, zerolog.Nop())
	// No Bind: the gateway is still in its unbound phase.

	err := gw.Do(context.Background(), http.MethodGet, "/api/orders", nil, nil, nil)
	if !errors.Is(err, domain.ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}
	if storage.wipes != 1 {
		t.Fatalf("expected durable storage wipe, got %d", storage.wipes)
	}
	route, ok := gw.TakePendingRoute()
	if !ok || route != domain.RouteLogin {
		t.Fatalf("expected pending /login route, got %q (%v)", route, ok)
	}
	if _, ok := gw.TakePendingRoute(); ok {
		t.Fatalf("pending route must be drained after take")
	}
}

func TestGateway_ForcedLogoutCancelsInFlight(t *testing.T) {
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/api/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
		w.Write([]byte(`{}`))
	})
	mux.HandleFunc("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"Invalid token"}`))
	})
	defer close(release)

	gw, _, _, _, done := newBoundGateway(t, mux)
	defer done()

	slowErr := make(chan error, 1)
	go func() {
		slowErr <- gw.Do(context.Background(), http.MethodGet, "/api/slow", nil, nil, nil)
	}()
	time.Sleep(100 * time.Millisecond) // let the slow request get in flight

	_ = gw.Do(context.Background(), http.MethodGet, "/api/orders", nil, nil, nil)

	select {
	case err := <-slowErr:
		if err == nil {
			t.Fatalf("expected in-flight request to fail after forced logout")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("in-flight request was not cancelled by forced logout")
	}
}
