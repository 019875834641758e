package client

import (
	"context"
	"net/http"

	"github.com/viant/postboard/client/auth/transport"
	"github.com/viant/postboard/notify"
	"github.com/viant/postboard/schema"
	"go.uber.org/zap"
)

const (
	loginURI    = "/auth/login"
	registerURI = "/auth/register"
	logoutURI   = "/auth/logout"
)

// Login exchanges credentials for an access token and starts a new session
func (c *Client) Login(ctx context.Context, credentials schema.Credentials) (*Result[schema.AccessTokenResult], error) {
	ret, err := send[schema.AccessTokenResult](transport.WithoutAuth(ctx), c, http.MethodPost, loginURI, nil, &credentials)
	if err != nil {
		return nil, err
	}
	c.store.SetToken(ret.Data.AccessToken)
	c.cache.ResetStore()
	c.notifier.Notify(notify.LoginSuccess(c.store.Identity().Username))
	c.logger.Info("logged in", zap.String("user", c.store.Identity().Username))
	return ret, nil
}

func (c *Client) Register(ctx context.Context, credentials schema.Credentials) (*Result[schema.MessageResult], error) {
	return send[schema.MessageResult](transport.WithoutAuth(ctx), c, http.MethodPost, registerURI, nil, &credentials)
}

// Refresh obtains a new access token with the refresh cookie
func (c *Client) Refresh(ctx context.Context) (*Result[schema.AccessTokenResult], error) {
	token, err := c.refresher.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	c.store.SetToken(token)
	return &Result[schema.AccessTokenResult]{Status: http.StatusOK, OK: true, Data: schema.AccessTokenResult{AccessToken: token}}, nil
}

// Logout ends the server session, then clears the local one
func (c *Client) Logout(ctx context.Context) (*Result[schema.MessageResult], error) {
	ret, err := send[schema.MessageResult](ctx, c, http.MethodGet, logoutURI, nil, nil)
	if err != nil {
		return nil, err
	}
	c.store.Logout(ctx)
	c.notifier.Notify(notify.LogoutSuccess())
	c.logger.Info("logged out")
	return ret, nil
}
