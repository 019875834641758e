// Package router resolves client side navigation: it matches paths against a
// route table, restores a remembered session before navigating, and applies the
// role guard of protected routes.
package router

import (
	"strings"

	"github.com/viant/postboard/schema"
)

// Paths of the default route table
const (
	HomePath       = "/"
	LoginPath      = "/login"
	RegisterPath   = "/register"
	ProfilePath    = "/profile"
	UsersListPath  = "/users-list"
	UpdateUserPath = "/update-user/:id"
)

// Route represents a navigable route, nil Allow means public
type Route struct {
	Path  string
	Allow schema.Roles
}

// Public returns true when the route has no role allow-list
func (r *Route) Public() bool {
	return r.Allow == nil
}

// match returns path parameters when path matches the route pattern
func (r *Route) match(path string) (map[string]string, bool) {
	patternParts := split(r.Path)
	pathParts := split(path)
	if len(patternParts) != len(pathParts) {
		return nil, false
	}
	params := map[string]string{}
	for i, part := range patternParts {
		if strings.HasPrefix(part, ":") {
			if pathParts[i] == "" {
				return nil, false
			}
			params[part[1:]] = pathParts[i]
			continue
		}
		if part != pathParts[i] {
			return nil, false
		}
	}
	return params, true
}

func split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// Routes represents a route table
type Routes []*Route

// Match returns first matching route with its parameters
func (r Routes) Match(path string) (*Route, map[string]string, bool) {
	if i := strings.IndexAny(path, "?#"); i != -1 {
		path = path[:i]
	}
	for _, route := range r {
		if params, ok := route.match(path); ok {
			return route, params, true
		}
	}
	return nil, nil, false
}

// DefaultRoutes returns the application route table
func DefaultRoutes() Routes {
	return Routes{
		{Path: HomePath},
		{Path: LoginPath},
		{Path: RegisterPath},
		{Path: ProfilePath, Allow: schema.AnyRole},
		{Path: UsersListPath, Allow: schema.AnyRole},
		{Path: UpdateUserPath, Allow: schema.Elevated},
	}
}
