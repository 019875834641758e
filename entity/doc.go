// Package entity implements a session scoped cache of fetched API documents,
// keyed by entity kind and then by document id.
//
// The cache has no eviction and no size bound; it is cleared wholesale on login
// and logout so that data never leaks across sessions.
package entity
