package client

import (
	"net/http"

	"github.com/viant/postboard/client/auth"
	"github.com/viant/postboard/client/auth/store"
	"github.com/viant/postboard/entity"
	"github.com/viant/postboard/internal/metrics"
	"github.com/viant/postboard/notify"
	"go.uber.org/zap"
)

// Option represents option
type Option func(c *Client)

// WithStore sets session store
func WithStore(store *store.Store) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithCache sets entity cache
func WithCache(cache *entity.Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithNotifier sets notifier
func WithNotifier(notifier notify.Notifier) Option {
	return func(c *Client) {
		c.notifier = notifier
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithCookieJar sets jar holding the refresh cookie
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.jar = jar
	}
}

// WithTransport sets the inner transport
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.inner = transport
	}
}

// WithRefresher overrides the refresh endpoint client
func WithRefresher(refresher auth.Refresher) Option {
	return func(c *Client) {
		c.refresher = refresher
	}
}

// WithRedirect sets function called with the login path when the session expires
func WithRedirect(redirect func(path string)) Option {
	return func(c *Client) {
		c.redirect = redirect
	}
}

// WithLoginPath sets login path
func WithLoginPath(path string) Option {
	return func(c *Client) {
		c.loginPath = path
	}
}

// WithMetrics sets transport collectors
func WithMetrics(collectors *metrics.Transport) Option {
	return func(c *Client) {
		c.metrics = collectors
	}
}
