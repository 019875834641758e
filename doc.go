// Package postboard wires a session aware client for the postboard API.
//
// An App bundles the token store, the entity cache, the refreshing API client,
// the route guard and the navigator, built from a config.Config:
//
//	cfg, _ := config.Load(ctx, "postboard.yaml")
//	app, _ := postboard.New(ctx, cfg)
//	_, err := app.Client.Login(ctx, schema.Credentials{Username: "jane", Password: "secret"})
//
// Expired access tokens are refreshed transparently with the http-only refresh
// cookie; a failed refresh clears the session and redirects to the login route.
package postboard
