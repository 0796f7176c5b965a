// Package console is the terminal shell of the admin console: a route table,
// the guard-driven navigation loop, and text renderings of the screens the
// dashboard exposes.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/svcdesk/adminconsole/internal/core/domain"
	"github.com/svcdesk/adminconsole/internal/core/ports"
	"github.com/svcdesk/adminconsole/internal/core/service"
	"github.com/svcdesk/adminconsole/internal/guard"
	"github.com/svcdesk/adminconsole/internal/rest"
)

// maxRedirects bounds one navigation's redirect chain; anything longer is a
// route-table bug, not a legitimate flow.
const maxRedirects = 5

// Clients bundles the typed resource clients the screens render from.
type Clients struct {
	Customers *rest.CustomersClient
	Users     *rest.UsersClient
	Services  *rest.ServicesClient
	Discounts *rest.DiscountsClient
	Orders    *rest.OrdersClient
	Expenses  *rest.ExpensesClient
	Analytics *rest.AnalyticsClient
}

// PendingRouteSource is the slice of the gateway the shell drains after
// binding: routes recorded while forced navigation had no navigator.
type PendingRouteSource interface {
	TakePendingRoute() (string, bool)
}

type route struct {
	path         string
	publicOnly   bool // inverse guard: authenticated users are bounced to their landing route
	open         bool // no guard at all (unauthorized page)
	allowedRoles []string
	render       func(ctx context.Context, w io.Writer) error
}

// Shell drives navigation. Every Open consults the route guard before
// rendering, exactly once per attempt.
type Shell struct {
	sessions ports.SessionStore
	storage  ports.SessionStorage
	auth     *service.Authenticator
	nav      *HistoryNavigator
	pending  PendingRouteSource
	clients  Clients
	logger   zerolog.Logger
	out      io.Writer

	routes []route
}

func NewShell(
	sessions ports.SessionStore,
	storage ports.SessionStorage,
	auth *service.Authenticator,
	nav *HistoryNavigator,
	pending PendingRouteSource,
	clients Clients,
	logger zerolog.Logger,
	out io.Writer,
) *Shell {
	s := &Shell{
		sessions: sessions,
		storage:  storage,
		auth:     auth,
		nav:      nav,
		pending:  pending,
		clients:  clients,
		logger:   logger,
		out:      out,
	}
	s.routes = []route{
		{path: domain.RouteRoot, publicOnly: true, render: s.renderLogin},
		{path: domain.RouteLogin, publicOnly: true, render: s.renderLogin},
		{path: domain.RouteAdmin, allowedRoles: []string{domain.RoleAdmin}, render: s.renderAdminIndex},
		{path: domain.RouteAdminDashboard, allowedRoles: []string{domain.RoleAdmin}, render: s.renderDashboard},
		{path: domain.RouteAdminEmployees, allowedRoles: []string{domain.RoleAdmin}, render: s.renderEmployees},
		{path: domain.RouteAdminCustomers, allowedRoles: []string{domain.RoleAdmin}, render: s.renderCustomers},
		{path: domain.RouteAdminFinancial, allowedRoles: []string{domain.RoleAdmin}, render: s.renderFinancial},
		{path: domain.RouteAdminOrders, allowedRoles: []string{domain.RoleAdmin}, render: s.renderOrders},
		{path: domain.RouteEmployee, allowedRoles: []string{domain.RoleEmployee, domain.RoleManager, domain.RoleAdmin}, render: s.renderEmployeeIndex},
		{path: domain.RouteEmployeeDashboard, allowedRoles: []string{domain.RoleEmployee, domain.RoleManager, domain.RoleAdmin}, render: s.renderEmployeeDashboard},
		{path: domain.RouteUnauthorized, open: true, render: s.renderUnauthorized},
	}
	return s
}

// Open navigates to path and renders whatever the guard allows, following
// redirects until a screen renders or the chain is exhausted.
func (s *Shell) Open(ctx context.Context, path string) error {
	s.nav.Navigate(path)
	return s.resolve(ctx)
}

// resolve renders the navigator's current route, applying guards and
// following redirect decisions with replace semantics.
func (s *Shell) resolve(ctx context.Context) error {
	for i := 0; i < maxRedirects; i++ {
		// A forced logout may have fired while no navigator was bound;
		// honour its recorded route first.
		if s.pending != nil {
			if target, ok := s.pending.TakePendingRoute(); ok {
				s.nav.Replace(target)
			}
		}

		path := s.nav.Current()
		rt, found := s.findRoute(path)
		if !found {
			return s.renderNotFound(ctx, s.out)
		}

		var res guard.Result
		switch {
		case rt.open:
			res = guard.Result{Decision: guard.Render}
		case rt.publicOnly:
			res = guard.RedirectIfAuthenticated(s.sessions.Current())
		default:
			res = guard.Protect(s.sessions.Current(), rt.allowedRoles...)
		}

		switch res.Decision {
		case guard.Loading:
			fmt.Fprintln(s.out, "Checking session...")
			return nil
		case guard.Redirect:
			s.logger.Debug().Str("from", path).Str("to", res.Target).Msg("guard redirect")
			s.nav.Replace(res.Target)
			continue
		}

		s.rememberAdminPath(path)
		return rt.render(ctx, s.out)
	}
	return fmt.Errorf("redirect loop at %s", s.nav.Current())
}

func (s *Shell) findRoute(path string) (route, bool) {
	for _, rt := range s.routes {
		if rt.path == path {
			return rt, true
		}
	}
	return route{}, false
}

// rememberAdminPath stores the current admin sub-path so the next bare
// /admin landing can restore it. The base /admin path itself is never stored.
func (s *Shell) rememberAdminPath(path string) {
	if strings.HasPrefix(path, domain.RouteAdmin+"/") {
		if err := s.storage.SaveLastAdminPath(path); err != nil {
			s.logger.Warn().Err(err).Msg("failed to record admin path")
		}
	}
}

// renderAdminIndex resolves the bare /admin landing: restore the last
// visited admin sub-route when it is still a valid admin path and the
// current user is an admin, otherwise fall through to the dashboard.
func (s *Shell) renderAdminIndex(ctx context.Context, w io.Writer) error {
	target := domain.RouteAdminDashboard
	last, err := s.storage.LastAdminPath()
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to read last admin path")
	}
	sess := s.sessions.Current()
	if last != "" && strings.HasPrefix(last, domain.RouteAdmin+"/") &&
		sess.User != nil && domain.RoleMayEnter(sess.User.Role, last) {
		target = last
	}
	s.nav.Replace(target)
	return s.resolve(ctx)
}

func (s *Shell) renderEmployeeIndex(ctx context.Context, w io.Writer) error {
	s.nav.Replace(domain.RouteEmployeeDashboard)
	return s.resolve(ctx)
}

// Login validates the form, runs the authentication attempt, and on success
// navigates to the role-appropriate landing route.
func (s *Shell) Login(ctx context.Context, email, password string) error {
	if err := ValidateForm(LoginForm{Email: email, Password: password}); err != nil {
		fmt.Fprintf(s.out, "Login rejected: %v\n", err)
		return err
	}

	if err := s.auth.Login(ctx, email, password); err != nil {
		// Credential rejections surface inline, on this screen only.
		fmt.Fprintf(s.out, "Login failed: %s\n", s.sessions.Current().LastError)
		return err
	}

	sess := s.sessions.Current()
	fmt.Fprintf(s.out, "Logged in as %s (%s)\n", sess.User.Username, sess.User.Role)
	s.nav.Replace(domain.LandingRoute(sess.User.Role))
	return s.resolve(ctx)
}

// Logout clears the session and lands on the login route.
func (s *Shell) Logout(ctx context.Context) error {
	s.sessions.Clear()
	s.nav.Replace(domain.RouteLogin)
	return s.resolve(ctx)
}

// Run is the interactive loop of adminctl.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	if err := s.resolve(ctx); err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
	}

	scanner := bufio.NewScanner(in)
	fmt.Fprint(s.out, "> ")
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			fmt.Fprint(s.out, "> ")
			continue
		}

		var err error
		switch fields[0] {
		case "help":
			fmt.Fprintln(s.out, "commands: go <path> | back | login <email> <password> | logout | whoami | quit")
		case "go":
			if len(fields) != 2 {
				fmt.Fprintln(s.out, "usage: go <path>")
				break
			}
			err = s.Open(ctx, fields[1])
		case "back":
			if _, ok := s.nav.Back(); ok {
				err = s.resolve(ctx)
			}
		case "login":
			if len(fields) != 3 {
				fmt.Fprintln(s.out, "usage: login <email> <password>")
				break
			}
			// Errors are already rendered inline.
			_ = s.Login(ctx, fields[1], fields[2])
		case "logout":
			err = s.Logout(ctx)
		case "whoami":
			s.renderWhoami()
		case "quit", "exit":
			return nil
		default:
			fmt.Fprintf(s.out, "unknown command %q (try help)\n", fields[0])
		}
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		fmt.Fprint(s.out, "> ")
	}
	return scanner.Err()
}

func (s *Shell) renderWhoami() {
	sess := s.sessions.Current()
	if !sess.Authenticated() {
		fmt.Fprintf(s.out, "not logged in (status: %s)\n", sess.Status)
		return
	}
	fmt.Fprintf(s.out, "%s <%s> role=%s\n", sess.User.Username, sess.User.Email, sess.User.Role)
}
