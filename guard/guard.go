// Package guard decides whether the current session role may enter a route.
package guard

import (
	"github.com/viant/postboard/client/auth/store"
	"github.com/viant/postboard/notify"
	"github.com/viant/postboard/schema"
)

// DefaultHomePath is the redirect target of denied navigation
const DefaultHomePath = "/"

// Allowed returns true when role is listed in allow; an undefined role is never allowed
func Allowed(role schema.Role, allow schema.Roles) bool {
	if role == schema.RoleUndefined {
		return false
	}
	return allow.Contains(role)
}

// Decision represents guard outcome
type Decision struct {
	Allowed  bool
	Redirect string
}

// Guard checks the session identity role against route allow-lists
type Guard struct {
	store    *store.Store
	notifier notify.Notifier
	homePath string
}

// Check returns allowed decision or a redirect to home with an unauthorized notification
func (g *Guard) Check(allow schema.Roles) Decision {
	role := g.store.Identity().Role
	if Allowed(role, allow) {
		return Decision{Allowed: true}
	}
	g.notifier.Notify(notify.Unauthorized(role))
	return Decision{Redirect: g.homePath}
}

// New creates a guard, empty homePath defaults to "/"
func New(store *store.Store, notifier notify.Notifier, homePath string) *Guard {
	if notifier == nil {
		notifier = notify.Nop
	}
	if homePath == "" {
		homePath = DefaultHomePath
	}
	return &Guard{store: store, notifier: notifier, homePath: homePath}
}
