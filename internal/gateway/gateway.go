// Package gateway wraps every backend call the console makes. It attaches the
// bearer credential on the way out and inspects auth failures on the way in,
// forcing a logout or an unauthorized redirect when the backend says so.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/svcdesk/adminconsole/internal/core/domain"
	"github.com/svcdesk/adminconsole/internal/core/ports"
	"github.com/svcdesk/adminconsole/internal/metrics"
)

// Sentinel message strings the backend uses to distinguish auth failures.
const (
	msgTokenMissing = "Token missing"
	msgInvalidToken = "Invalid token"
	msgForbidden    = "Forbidden"
)

// apiError is the backend's JSON error envelope.
type apiError struct {
	Message string       `json:"message"`
	Errors  []FieldIssue `json:"errors,omitempty"`
}

// FieldIssue is one entry of a 400 validation-errors array.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is a 400 response carrying a structured validation-errors
// array. It passes through the gateway unmodified; the calling screen owns
// field-level display.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, iss := range e.Issues {
		msgs = append(msgs, fmt.Sprintf("%s: %s", iss.Field, iss.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// HTTPError is any other non-success response, passed through untouched.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}

// hooks are the late-bound navigation and session-mutation functions. The
// gateway is constructed before routing and state wiring exist, so hooks stay
// nil until the shell calls Bind; a nil hooks pointer is the explicit
// "unbound" variant.
type hooks struct {
	nav      ports.Navigator
	sessions ports.SessionClearer
}

// Gateway implements ports.Requester over net/http.
type Gateway struct {
	baseURL  string
	client   *http.Client
	sessions ports.SessionReader
	storage  ports.SessionStorage
	logger   zerolog.Logger

	mu           sync.Mutex
	hooks        *hooks
	pendingRoute string

	// flight is the generation context shared by all in-flight requests.
	// A forced logout cancels it so stale responses cannot land after the
	// session is gone.
	flight       context.Context
	cancelFlight context.CancelFunc
}

// New constructs an unbound Gateway. Until Bind is called, forced navigation
// falls back to a hard redirect: durable storage is wiped directly and the
// target route is recorded for the shell to pick up.
func New(baseURL string, timeout time.Duration, sessions ports.SessionReader, storage ports.SessionStorage, logger zerolog.Logger) *Gateway {
	flight, cancel := context.WithCancel(context.Background())
	return &Gateway{
		baseURL:      strings.TrimRight(baseURL, "/"),
		client:       &http.Client{Timeout: timeout},
		sessions:     sessions,
		storage:      storage,
		logger:       logger,
		flight:       flight,
		cancelFlight: cancel,
	}
}

// Bind installs the in-app navigator and session dispatcher once the UI
// shell has mounted. Called exactly once.
func (g *Gateway) Bind(nav ports.Navigator, sessions ports.SessionClearer) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hooks = &hooks{nav: nav, sessions: sessions}
}

// TakePendingRoute returns and clears any route recorded by the unbound
// fallback path, so the shell can honour it right after binding.
func (g *Gateway) TakePendingRoute() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	route := g.pendingRoute
	g.pendingRoute = ""
	return route, route != ""
}

// Do sends one JSON request and decodes the response into out (skipped when
// out is nil). The request is cancelled if ctx expires or a forced logout
// invalidates the current request generation.
func (g *Gateway) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(g.flightContext(), cancel)
	defer stop()

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	target := g.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	g.transformRequest(req)

	resp, err := g.client.Do(req)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(method, "error").Inc()
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusBadRequest {
		metrics.RequestsTotal.WithLabelValues(method, "ok").Inc()
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	return g.transformError(method, path, resp)
}

// transformRequest attaches the bearer credential, a request id, and the
// JSON content headers. A missing token never blocks the request locally;
// rejecting it is the backend's call.
func (g *Gateway) transformRequest(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	token := g.sessions.Current().Token
	if token == "" {
		// Durable storage as fallback, mirroring the boot window before
		// the store has rehydrated.
		if stored, _, err := g.storage.LoadSession(); err == nil {
			token = stored
		}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// transformError inspects an error response and maps the three auth sentinel
// cases; everything else passes through to the caller.
func (g *Gateway) transformError(method, path string, resp *http.Response) error {
	var body apiError
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if readErr == nil {
		_ = json.Unmarshal(raw, &body)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized && body.Message == msgTokenMissing:
		metrics.RequestsTotal.WithLabelValues(method, "auth_error").Inc()
		g.logger.Warn().Str("path", path).Msg("token missing, forcing logout")
		g.forceLogout("token_missing")
		return domain.ErrAuthenticationRequired

	case resp.StatusCode == http.StatusForbidden && body.Message == msgInvalidToken:
		metrics.RequestsTotal.WithLabelValues(method, "auth_error").Inc()
		g.logger.Warn().Str("path", path).Msg("invalid token, forcing logout")
		g.forceLogout("invalid_token")
		return domain.ErrSessionExpired

	case resp.StatusCode == http.StatusForbidden && body.Message == msgForbidden:
		// Role too low. The session stays intact; only the route changes.
		metrics.RequestsTotal.WithLabelValues(method, "forbidden").Inc()
		g.logger.Warn().Str("path", path).Msg("access forbidden")
		g.redirect(domain.RouteUnauthorized)
		return domain.ErrForbidden

	case resp.StatusCode == http.StatusBadRequest && len(body.Errors) > 0:
		metrics.RequestsTotal.WithLabelValues(method, "validation_error").Inc()
		return &ValidationError{Issues: body.Errors}
	}

	metrics.RequestsTotal.WithLabelValues(method, "error").Inc()
	return &HTTPError{StatusCode: resp.StatusCode, Message: body.Message}
}

// forceLogout clears the session, invalidates the in-flight request
// generation, and navigates to the login route replacing history.
func (g *Gateway) forceLogout(reason string) {
	metrics.ForcedLogoutsTotal.WithLabelValues(reason).Inc()

	g.mu.Lock()
	g.cancelFlight()
	g.flight, g.cancelFlight = context.WithCancel(context.Background())
	h := g.hooks
	g.mu.Unlock()

	if h != nil {
		h.sessions.Clear()
		h.nav.Replace(domain.RouteLogin)
		return
	}

	// Unbound fallback: no store or navigator exists yet, so wipe durable
	// storage directly and leave the route for the shell.
	if err := g.storage.ClearSession(); err != nil {
		g.logger.Error().Err(err).Msg("failed to erase persisted session on forced logout")
	}
	g.setPendingRoute(domain.RouteLogin)
}

func (g *Gateway) redirect(route string) {
	g.mu.Lock()
	h := g.hooks
	g.mu.Unlock()

	if h != nil {
		h.nav.Replace(route)
		return
	}
	g.setPendingRoute(route)
}

func (g *Gateway) setPendingRoute(route string) {
	g.mu.Lock()
	g.pendingRoute = route
	g.mu.Unlock()
}

func (g *Gateway) flightContext() context.Context {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.flight
}
