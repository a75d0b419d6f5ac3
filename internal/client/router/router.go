// Package router maps client paths to screens.
//
// The route table is a gorilla/mux router used only for matching: nothing is
// served over HTTP. Protected routes go through a Guard before their screen
// runs, and every navigation cancels the context of the previous screen so
// its in-flight requests are dropped.
package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/mux"
)

const (
	PathWelcome        = "/"
	PathLogin          = "/login"
	PathSignup         = "/signup"
	PathForgotPassword = "/forgot-password"
	PathResetPassword  = "/reset-password/{token}"
	PathDashboard      = "/dashboard"
	PathCreate         = "/create"
	PathEdit           = "/edit/{id}"
	PathDetail         = "/warranty/{id}"
)

// maxRedirects bounds guard redirects within one navigation.
const maxRedirects = 3

var (
	ErrRouteNotFound = errors.New("route not found")
	ErrRedirectLoop  = errors.New("too many redirects")
)

// Screen renders one client route. params holds the path variables.
type Screen func(ctx context.Context, params map[string]string) error

type route struct {
	pattern   string
	protected bool
	screen    Screen
}

// Match is a resolved path.
type Match struct {
	Path      string
	Pattern   string
	Params    map[string]string
	Protected bool

	screen Screen
}

type Router struct {
	mux    *mux.Router
	routes map[string]route
	guard  *Guard

	mu      sync.Mutex
	current *Match
	cancel  context.CancelFunc
}

func New(guard *Guard) *Router {
	return &Router{
		mux:    mux.NewRouter(),
		routes: map[string]route{},
		guard:  guard,
	}
}

// Handle declares a route. pattern uses gorilla/mux syntax, e.g. "/edit/{id}".
func (r *Router) Handle(pattern string, protected bool, screen Screen) {
	r.mux.NewRoute().Path(pattern).Name(pattern)
	r.routes[pattern] = route{pattern: pattern, protected: protected, screen: screen}
}

// Resolve matches path against the table without running anything.
func (r *Router) Resolve(path string) (*Match, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRouteNotFound, path)
	}

	var rm mux.RouteMatch
	if !r.mux.Match(req, &rm) || rm.Route == nil {
		return nil, fmt.Errorf("%w: %s", ErrRouteNotFound, path)
	}

	rt, ok := r.routes[rm.Route.GetName()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRouteNotFound, path)
	}

	params := rm.Vars
	if params == nil {
		params = map[string]string{}
	}

	return &Match{
		Path:      path,
		Pattern:   rt.pattern,
		Params:    params,
		Protected: rt.protected,
		screen:    rt.screen,
	}, nil
}

// Navigate resolves path, applies the guard to protected routes and runs the
// screen under a fresh context derived from ctx. The previous screen's
// context is cancelled first.
func (r *Router) Navigate(ctx context.Context, path string) error {
	m, err := r.Resolve(path)
	if err != nil {
		return err
	}

	for i := 0; m.Protected && r.guard != nil; i++ {
		if i == maxRedirects {
			return ErrRedirectLoop
		}
		redirect, err := r.guard.Check(ctx)
		if err != nil {
			return err
		}
		if redirect == "" {
			break
		}
		if m, err = r.Resolve(redirect); err != nil {
			return err
		}
	}

	screenCtx := r.enter(ctx, m)
	if m.screen == nil {
		return nil
	}
	return m.screen(screenCtx, m.Params)
}

func (r *Router) enter(ctx context.Context, m *Match) context.Context {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
	}
	screenCtx, cancel := context.WithCancel(ctx)
	r.current = m
	r.cancel = cancel
	return screenCtx
}

// Current returns the active route, or nil before the first navigation.
func (r *Router) Current() *Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Close cancels the active screen.
func (r *Router) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// Build expands a pattern with params, e.g. Build(PathEdit, "id", "42").
func Build(pattern string, pairs ...string) string {
	out := pattern
	for i := 0; i+1 < len(pairs); i += 2 {
		out = strings.ReplaceAll(out, "{"+pairs[i]+"}", url.PathEscape(pairs[i+1]))
	}
	return out
}
