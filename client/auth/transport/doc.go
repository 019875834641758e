// Package transport implements an http.RoundTripper that attaches the session
// bearer token to outgoing requests and, when the API answers `403 Forbidden`
// (expired access token), refreshes the token and replays the request once.
//
// Concurrent expiries share a single in-flight refresh. When the refresh fails
// the session is cleared, a "session expired" notification is emitted, the
// client is redirected to the login route and the refresh error is returned in
// place of the original response.
package transport
