// Package guard decides, per navigation, whether a route may render for the
// current session. Decisions are pure: rendering and redirecting are the
// shell's job.
package guard

import "github.com/svcdesk/adminconsole/internal/core/domain"

// Decision is the outcome of evaluating a guard against a session.
type Decision int

const (
	// Loading means session state is still being determined; render a
	// loading indicator, neither the target nor a redirect.
	Loading Decision = iota
	// Render means the target route's content may render.
	Render
	// Redirect means navigation must replace the current route with
	// Result.Target.
	Redirect
)

// Result carries a Decision plus the redirect target when applicable.
type Result struct {
	Decision Decision
	Target   string
}

// Protect evaluates a protected route. An empty allowedRoles set admits any
// authenticated user.
func Protect(s domain.Session, allowedRoles ...string) Result {
	if s.Status == domain.StatusVerifying {
		return Result{Decision: Loading}
	}
	if !s.Authenticated() {
		return Result{Decision: Redirect, Target: domain.RouteLogin}
	}
	if len(allowedRoles) == 0 {
		return Result{Decision: Render}
	}

	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}
	if _, ok := allowed[s.User.Role]; !ok {
		return Result{Decision: Redirect, Target: domain.RouteUnauthorized}
	}
	return Result{Decision: Render}
}

// RedirectIfAuthenticated is the inverse guard for public-only routes such as
// the login page: an authenticated user is sent straight to their
// role-appropriate landing route, chosen by the same table the post-login
// redirect uses.
func RedirectIfAuthenticated(s domain.Session) Result {
	if s.Status == domain.StatusVerifying {
		return Result{Decision: Loading}
	}
	if s.Authenticated() {
		return Result{Decision: Redirect, Target: domain.LandingRoute(s.User.Role)}
	}
	return Result{Decision: Render}
}
