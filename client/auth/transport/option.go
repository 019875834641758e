package transport

import (
	"net/http"

	"github.com/viant/postboard/client/auth"
	"github.com/viant/postboard/client/auth/store"
	"github.com/viant/postboard/internal/metrics"
	"github.com/viant/postboard/notify"
	"go.uber.org/zap"
)

type Option func(*RoundTripper)

// WithStore sets session store
func WithStore(store *store.Store) Option {
	return func(t *RoundTripper) {
		t.store = store
	}
}

// WithRefresher sets access token refresher
func WithRefresher(refresher auth.Refresher) Option {
	return func(t *RoundTripper) {
		t.refresher = refresher
	}
}

// WithTransport sets inner transport
func WithTransport(transport http.RoundTripper) Option {
	return func(t *RoundTripper) {
		t.transport = transport
	}
}

// WithCookieJar sends and stores jar cookies when the round tripper is used without an http.Client
func WithCookieJar(jar http.CookieJar) Option {
	return func(t *RoundTripper) {
		t.jar = jar
	}
}

// WithNotifier sets notifier
func WithNotifier(notifier notify.Notifier) Option {
	return func(t *RoundTripper) {
		t.notifier = notifier
	}
}

// WithRedirect sets function called with the login path after a failed refresh
func WithRedirect(redirect func(path string)) Option {
	return func(t *RoundTripper) {
		t.redirect = redirect
	}
}

// WithLoginPath sets login path
func WithLoginPath(path string) Option {
	return func(t *RoundTripper) {
		t.loginPath = path
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(t *RoundTripper) {
		t.logger = logger
	}
}

// WithMetrics sets prometheus collectors
func WithMetrics(collectors *metrics.Transport) Option {
	return func(t *RoundTripper) {
		t.metrics = collectors
	}
}
