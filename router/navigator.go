package router

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/viant/postboard/client/auth"
	"github.com/viant/postboard/client/auth/store"
	"github.com/viant/postboard/guard"
	"github.com/viant/postboard/internal/logging"
	"go.uber.org/zap"
)

// Location represents resolved navigation
type Location struct {
	Path       string
	Route      *Route
	Params     map[string]string
	NotFound   bool
	Redirected bool
}

// Navigator tracks the current location
type Navigator struct {
	routes    Routes
	store     *store.Store
	guard     *guard.Guard
	refresher auth.Refresher
	logger    *zap.Logger
	mu        sync.RWMutex
	current   Location
}

type Option func(n *Navigator)

// WithRoutes sets route table
func WithRoutes(routes Routes) Option {
	return func(n *Navigator) {
		n.routes = routes
	}
}

// WithRefresher sets refresher used to restore a remembered session
func WithRefresher(refresher auth.Refresher) Option {
	return func(n *Navigator) {
		n.refresher = refresher
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(n *Navigator) {
		n.logger = logger
	}
}

// Navigate resolves path, restoring a remembered session and applying the route guard
func (n *Navigator) Navigate(ctx context.Context, path string) (Location, error) {
	if !strings.HasPrefix(path, "/") {
		return Location{}, fmt.Errorf("invalid navigation path: %q", path)
	}
	n.restore(ctx)
	location := n.resolve(path)
	if location.Route != nil && !location.Route.Public() {
		if decision := n.guard.Check(location.Route.Allow); !decision.Allowed {
			location = n.resolve(decision.Redirect)
			location.Redirected = true
		}
	}
	n.setCurrent(location)
	return location, nil
}

// Redirect moves to path without guard checks
func (n *Navigator) Redirect(path string) {
	location := n.resolve(path)
	location.Redirected = true
	n.setCurrent(location)
}

// Current returns current location
func (n *Navigator) Current() Location {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.current
}

func (n *Navigator) setCurrent(location Location) {
	n.mu.Lock()
	n.current = location
	n.mu.Unlock()
	n.logger.Debug("navigated", zap.String("path", location.Path), zap.Bool("redirected", location.Redirected))
}

func (n *Navigator) resolve(path string) Location {
	route, params, ok := n.routes.Match(path)
	if !ok {
		return Location{Path: path, NotFound: true}
	}
	return Location{Path: path, Route: route, Params: params}
}

// restore refreshes the access token when remember me is on and no token is held;
// failures are logged and never block navigation.
func (n *Navigator) restore(ctx context.Context) {
	if n.refresher == nil {
		return
	}
	session := n.store.Snapshot()
	if !session.RememberMe || session.Authenticated() {
		return
	}
	token, err := n.refresher.Refresh(ctx)
	if err != nil {
		n.logger.Info("remembered session was not restored", zap.Error(err))
		return
	}
	n.store.SetToken(token)
}

// New creates a navigator starting at home
func New(store *store.Store, aGuard *guard.Guard, options ...Option) *Navigator {
	ret := &Navigator{store: store, guard: aGuard, routes: DefaultRoutes()}
	for _, opt := range options {
		opt(ret)
	}
	ret.logger = logging.OrNop(ret.logger)
	ret.current = ret.resolve(HomePath)
	return ret
}
