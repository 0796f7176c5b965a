// Package session holds the single mutable Session for the running client.
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/svcdesk/adminconsole/internal/core/domain"
	"github.com/svcdesk/adminconsole/internal/core/ports"
)

// Store is the process-wide session store. A mutex serializes mutations so
// callers always observe a complete state, never a partial update. The store
// never issues network calls; it only mutates memory and durable storage.
type Store struct {
	mu      sync.Mutex
	session domain.Session
	storage ports.SessionStorage
	logger  zerolog.Logger
}

// NewStore returns a Store in the uninitialized state. Call Rehydrate once
// at boot to restore any persisted session.
func NewStore(storage ports.SessionStorage, logger zerolog.Logger) *Store {
	return &Store{
		session: domain.Session{Status: domain.StatusUninitialized},
		storage: storage,
		logger:  logger,
	}
}

// Current returns a snapshot of the session.
func (s *Store) Current() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// checkTransition logs status moves that fall outside the lifecycle table.
// They still proceed; the table exists to surface wiring bugs, not to leave
// the session wedged. Caller holds the lock.
func (s *Store) checkTransition(next domain.SessionStatus) {
	if !s.session.Status.CanTransitionTo(next) {
		s.logger.Warn().Err(domain.ErrInvalidTransition).
			Str("from", string(s.session.Status)).Str("to", string(next)).
			Msg("unexpected session transition")
	}
}

// BeginVerification marks the session as verifying. Token, user and the last
// error are cleared in memory; durable storage is untouched until the attempt
// resolves.
func (s *Store) BeginVerification() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkTransition(domain.StatusVerifying)
	s.session = domain.Session{Status: domain.StatusVerifying}
}

// SetAuthenticated installs the identity and synchronously persists it.
func (s *Store) SetAuthenticated(user *domain.UserRecord, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkTransition(domain.StatusAuthenticated)
	s.session = domain.Session{
		Status: domain.StatusAuthenticated,
		Token:  token,
		User:   user,
	}
	if err := s.storage.SaveSession(token, user); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist session")
	}
}

// SetFailed records a terminal failure for the current login attempt.
func (s *Store) SetFailed(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkTransition(domain.StatusFailed)
	s.session = domain.Session{
		Status:    domain.StatusFailed,
		LastError: message,
	}
}

// Clear logs the session out and erases durable storage. Calling Clear on an
// already-cleared store yields the same empty session.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.Session{Status: domain.StatusUnauthenticated}
	if err := s.storage.ClearSession(); err != nil {
		s.logger.Error().Err(err).Msg("failed to erase persisted session")
	}
}

// Rehydrate restores the session from durable storage at process start. A
// stored token whose expiry claim has passed, or one that does not parse at
// all, is dropped immediately instead of waiting for the backend to reject
// it. The backend still has the final say on tokens that look valid locally.
func (s *Store) Rehydrate() {
	s.mu.Lock()
	s.session = domain.Session{Status: domain.StatusVerifying}
	s.mu.Unlock()

	token, user, err := s.storage.LoadSession()
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to load persisted session")
		s.Clear()
		return
	}
	if token == "" || user == nil {
		s.mu.Lock()
		s.session = domain.Session{Status: domain.StatusUnauthenticated}
		s.mu.Unlock()
		return
	}
	if tokenExpired(token) {
		s.logger.Info().Str("username", user.Username).Msg("stored token expired, discarding session")
		s.Clear()
		return
	}
	if !domain.KnownRole(user.Role) {
		s.logger.Warn().Str("username", user.Username).Str("role", user.Role).
			Msg("stored session carries an unknown role, discarding")
		s.Clear()
		return
	}

	s.mu.Lock()
	s.session = domain.Session{
		Status: domain.StatusAuthenticated,
		Token:  token,
		User:   user,
	}
	s.mu.Unlock()
	s.logger.Debug().Str("username", user.Username).Str("role", user.Role).Msg("session rehydrated")
}

// tokenExpired inspects the token's exp claim without verifying the
// signature; the client has no signing key, so signature checks stay with
// the backend. A token that cannot be parsed counts as expired.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return true
	}
	if exp == nil {
		// No expiry claim: defer entirely to the backend.
		return false
	}
	return exp.Before(time.Now())
}
