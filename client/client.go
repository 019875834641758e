package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/viant/postboard/client/auth"
	"github.com/viant/postboard/client/auth/store"
	"github.com/viant/postboard/client/auth/transport"
	"github.com/viant/postboard/entity"
	"github.com/viant/postboard/internal/logging"
	"github.com/viant/postboard/internal/metrics"
	"github.com/viant/postboard/notify"
	"github.com/viant/postboard/schema"
	"go.uber.org/zap"
)

type Client struct {
	baseURL   string
	http      *http.Client
	base      *http.Client
	inner     http.RoundTripper
	jar       http.CookieJar
	store     *store.Store
	cache     *entity.Cache
	notifier  notify.Notifier
	refresher auth.Refresher
	redirect  func(path string)
	loginPath string
	metrics   *metrics.Transport
	logger    *zap.Logger
}

// Result represents a decoded API response
type Result[T any] struct {
	Status int
	OK     bool
	Data   T
}

func (c *Client) Store() *store.Store {
	return c.store
}

func (c *Client) Cache() *entity.Cache {
	return c.cache
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) url(URI string, query url.Values) string {
	ret := c.baseURL + URI
	if len(query) > 0 {
		ret += "?" + query.Encode()
	}
	return ret
}

func send[T any](ctx context.Context, c *Client, method, URI string, query url.Values, payload interface{}) (*Result[T], error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %v %v payload: %w", method, URI, err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(URI, query), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		var refreshErr *transport.RefreshError
		if errors.As(err, &refreshErr) {
			return nil, refreshErr
		}
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v %v response: %w", method, URI, err)
	}
	if !schema.IsSuccess(resp.StatusCode) {
		errBody := schema.ErrorBody{}
		_ = json.Unmarshal(data, &errBody)
		c.logger.Debug("api call failed", zap.String("method", method), zap.String("uri", URI), zap.Int("status", resp.StatusCode))
		return nil, schema.NewError(resp.StatusCode, errBody.Message)
	}
	ret := &Result[T]{Status: resp.StatusCode, OK: true}
	if len(bytes.TrimSpace(data)) > 0 {
		if err = json.Unmarshal(data, &ret.Data); err != nil {
			return nil, fmt.Errorf("failed to decode %v %v response: %w", method, URI, err)
		}
	}
	return ret, nil
}

// New creates a client for baseURL
func New(baseURL string, options ...Option) (*Client, error) {
	ret := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		inner:     http.DefaultTransport,
		notifier:  notify.Nop,
		loginPath: transport.DefaultLoginPath,
	}
	for _, opt := range options {
		opt(ret)
	}
	ret.logger = logging.OrNop(ret.logger)
	if ret.store == nil {
		aStore, err := store.New(context.Background(), store.WithLogger(ret.logger))
		if err != nil {
			return nil, err
		}
		ret.store = aStore
	}
	if ret.cache == nil {
		ret.cache = entity.New()
	}
	if ret.jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		ret.jar = jar
	}
	ret.base = &http.Client{Transport: ret.inner, Jar: ret.jar}
	if ret.refresher == nil {
		ret.refresher = auth.NewHTTPRefresher(ret.baseURL, ret.base)
	}
	rt, err := transport.New(
		transport.WithStore(ret.store),
		transport.WithRefresher(ret.refresher),
		transport.WithTransport(ret.inner),
		transport.WithNotifier(ret.notifier),
		transport.WithRedirect(ret.redirect),
		transport.WithLoginPath(ret.loginPath),
		transport.WithLogger(ret.logger),
		transport.WithMetrics(ret.metrics),
	)
	if err != nil {
		return nil, err
	}
	ret.http = &http.Client{Transport: rt, Jar: ret.jar}
	return ret, nil
}
