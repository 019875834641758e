// Package client provides a typed client for the user/post API.
//
// Authenticated calls go through the refreshing transport from
// client/auth/transport, so an expired access token is refreshed and the call
// replayed once without the caller noticing. Listing and lookup results are
// merged into the session entity cache.
//
// Example:
//
//	cli, _ := client.New("http://localhost:3000", client.WithStore(sessionStore))
//	_, err := cli.Login(ctx, schema.Credentials{Username: "bob", Password: "secret"})
//	users, err := cli.Users(ctx, schema.NewPagination(1, 10))
//	if err != nil {
//		fmt.Println(client.Message(err))
//	}
package client
