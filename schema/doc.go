// Package schema defines the wire types of the user/post API: roles, identity
// claims, users, posts, pagination and the error body shape.
package schema
