package domain

// SessionStatus represents the lifecycle state of the client session.
type SessionStatus string

const (
	StatusUninitialized   SessionStatus = "uninitialized"
	StatusVerifying       SessionStatus = "verifying"
	StatusAuthenticated   SessionStatus = "authenticated"
	StatusUnauthenticated SessionStatus = "unauthenticated"
	StatusFailed          SessionStatus = "failed"
)

// Session is the client's belief about whether a user is logged in, who they
// are, and what role they hold. Exactly one Session exists per running
// process; it is mutated only through the session store.
type Session struct {
	Status    SessionStatus
	Token     string
	User      *UserRecord
	LastError string
}

// Authenticated reports whether the session holds a complete identity.
// Status == StatusAuthenticated holds iff both Token and User are present.
func (s Session) Authenticated() bool {
	return s.Status == StatusAuthenticated && s.Token != "" && s.User != nil
}

// validTransitions defines the allowed status transitions. Every status may
// additionally transition to unauthenticated via Clear, which is always legal.
var validTransitions = map[SessionStatus][]SessionStatus{
	StatusUninitialized:   {StatusVerifying, StatusUnauthenticated, StatusAuthenticated},
	StatusVerifying:       {StatusAuthenticated, StatusFailed, StatusUnauthenticated},
	StatusAuthenticated:   {StatusVerifying, StatusUnauthenticated},
	StatusUnauthenticated: {StatusVerifying, StatusUnauthenticated},
	StatusFailed:          {StatusVerifying, StatusUnauthenticated},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s SessionStatus) CanTransitionTo(next SessionStatus) bool {
	if next == StatusUnauthenticated {
		return true
	}
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
