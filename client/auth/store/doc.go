// Package store holds the client session: the current access token, the identity
// decoded from it and the persisted "remember me" preference.
//
// Identity is always derived from the token; a failed decode never replaces the
// current session.
package store
