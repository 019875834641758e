// Package mock provides an in-memory implementation of the user/post API used by
// unit tests and local demos.
//
// It issues HS256 access tokens carrying the userInfo claim, keeps the refresh
// credential in an http-only cookie and answers 403 for expired access tokens,
// mirroring the conventions the client relies on.
package mock
