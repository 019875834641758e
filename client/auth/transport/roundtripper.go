package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/viant/postboard/client/auth"
	"github.com/viant/postboard/client/auth/store"
	"github.com/viant/postboard/internal/logging"
	"github.com/viant/postboard/internal/metrics"
	"github.com/viant/postboard/notify"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// RequestIDHeader is stamped on every request
	RequestIDHeader = "X-Request-ID"
	// DefaultLoginPath is the redirect target after a failed refresh
	DefaultLoginPath = "/login"

	refreshKey = "refresh"
)

// ErrSessionCleared is returned for an expired request whose session was cleared while it was in flight
var ErrSessionCleared = errors.New("session was cleared")

// RefreshError is returned when an expired session could not be refreshed
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("session expired: %v", e.Err)
}

func (e *RefreshError) Unwrap() error {
	return e.Err
}

type RoundTripper struct {
	store     *store.Store
	refresher auth.Refresher
	transport http.RoundTripper
	jar       http.CookieJar
	notifier  notify.Notifier
	redirect  func(path string)
	loginPath string
	logger    *zap.Logger
	metrics   *metrics.Transport
	group     singleflight.Group
}

func New(options ...Option) (*RoundTripper, error) {
	ret := &RoundTripper{
		transport: http.DefaultTransport,
		notifier:  notify.Nop,
		loginPath: DefaultLoginPath,
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.store == nil {
		return nil, fmt.Errorf("session store was empty")
	}
	if ret.refresher == nil {
		return nil, fmt.Errorf("refresher was empty")
	}
	ret.transport = WrapWithCookieJar(ret.transport, ret.jar)
	ret.logger = logging.OrNop(ret.logger)
	return ret, nil
}

func (r *RoundTripper) Store() *store.Store {
	return r.store
}

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	body, hasBody, err := readBody(req)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	// 1) Send the request with the current bearer, if any.
	probe := clone(req, body, hasBody)
	r.authorize(probe)
	bearer := bearerToken(probe)
	if bearer == "" || isAuthSkipped(ctx) {
		return r.transport.RoundTrip(probe)
	}
	resp, err := r.transport.RoundTrip(probe)
	if err != nil {
		return nil, err
	}
	r.observe(resp.StatusCode, false)

	// 2) Anything but 403 is the final outcome.
	if resp.StatusCode != http.StatusForbidden {
		return resp, nil
	}
	// Close the prior body so we don't leak.
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if r.metrics != nil {
		r.metrics.Expired.Inc()
	}

	// 3) Refresh, or reuse a token refreshed since the probe was sent.
	if err = r.refresh(ctx, bearer); err != nil {
		return nil, err
	}

	// 4) Replay once with the new token, a second 403 is final.
	retry := clone(req, body, hasBody)
	retry.Header.Set(RequestIDHeader, probe.Header.Get(RequestIDHeader))
	r.authorize(retry)
	resp, err = r.transport.RoundTrip(retry)
	if err != nil {
		return nil, err
	}
	r.observe(resp.StatusCode, true)
	return resp, nil
}

func (r *RoundTripper) authorize(req *http.Request) {
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
	if isAuthSkipped(req.Context()) {
		req.Header.Del("Authorization")
		return
	}
	if token := r.store.OAuth2Token(); token != nil {
		token.SetAuthHeader(req)
	}
}

// refresh runs one refresh per expiry wave; waiters share its outcome.
func (r *RoundTripper) refresh(ctx context.Context, expired string) error {
	_, err, shared := r.group.Do(refreshKey, func() (interface{}, error) {
		switch current := r.store.Token(); current {
		case "":
			return nil, &RefreshError{Err: ErrSessionCleared}
		case expired:
		default:
			return current, nil
		}
		refreshCtx := context.WithoutCancel(ctx)
		token, err := r.refresher.Refresh(refreshCtx)
		if err != nil {
			r.expire(refreshCtx, err)
			return nil, &RefreshError{Err: err}
		}
		if decoded := r.store.SetToken(token); !decoded.OK() {
			err = fmt.Errorf("refreshed token was rejected: %w", decoded.Err)
			r.expire(refreshCtx, err)
			return nil, &RefreshError{Err: err}
		}
		if r.metrics != nil {
			r.metrics.Refreshes.WithLabelValues(metrics.OutcomeSuccess).Inc()
		}
		r.logger.Debug("access token refreshed")
		return token, nil
	})
	if shared {
		r.logger.Debug("shared in-flight token refresh")
	}
	return err
}

func (r *RoundTripper) expire(ctx context.Context, cause error) {
	if r.metrics != nil {
		r.metrics.Refreshes.WithLabelValues(metrics.OutcomeFailure).Inc()
	}
	r.logger.Warn("access token refresh failed, session cleared", zap.Error(cause))
	r.store.Logout(ctx)
	r.notifier.Notify(notify.SessionExpired())
	if r.redirect != nil {
		r.redirect(r.loginPath)
	}
}

func (r *RoundTripper) observe(status int, replay bool) {
	if r.metrics == nil {
		return
	}
	class := metrics.StatusClass(status)
	if replay {
		r.metrics.Replays.WithLabelValues(class).Inc()
		return
	}
	r.metrics.Requests.WithLabelValues(class).Inc()
}
