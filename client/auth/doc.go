// Package auth contains the access token refresh contract used by the
// authenticated transport.
//
// HTTPRefresher exchanges the long lived refresh credential (an http-only cookie
// held by the client cookie jar) for a new access token by calling the API
// refresh endpoint with an unauthenticated client.
package auth
