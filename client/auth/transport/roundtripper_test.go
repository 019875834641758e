package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/postboard/client/auth"
	"github.com/viant/postboard/client/auth/store"
	"github.com/viant/postboard/internal/metrics"
	"github.com/viant/postboard/notify"
	"github.com/viant/postboard/schema"
)

func signToken(t *testing.T, username string) string {
	t.Helper()
	claims := schema.AccessClaims{
		UserInfo: &schema.Identity{ID: username + "-id", Username: username, Role: schema.RoleUser},
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

type fixture struct {
	store      *store.Store
	notifier   *notify.Queue
	redirects  []string
	refreshes  atomic.Int32
	collectors *metrics.Transport
	client     *http.Client
}

func newFixture(t *testing.T, refresher func(ctx context.Context) (string, error)) *fixture {
	t.Helper()
	aStore, err := store.New(context.Background())
	require.NoError(t, err)
	f := &fixture{store: aStore, notifier: notify.NewQueue(0), collectors: metrics.NewTransport()}
	var mux sync.Mutex
	rt, err := New(
		WithStore(aStore),
		WithNotifier(f.notifier),
		WithMetrics(f.collectors),
		WithRedirect(func(path string) {
			mux.Lock()
			defer mux.Unlock()
			f.redirects = append(f.redirects, path)
		}),
		WithRefresher(auth.RefreshFunc(func(ctx context.Context) (string, error) {
			f.refreshes.Add(1)
			return refresher(ctx)
		})),
	)
	require.NoError(t, err)
	f.client = &http.Client{Transport: rt}
	return f
}

// apiServer answers 403 unless the bearer is one of the valid tokens
func apiServer(t *testing.T, valid *sync.Map, seen chan<- string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if seen != nil {
			seen <- header
		}
		body, _ := io.ReadAll(r.Body)
		if _, ok := valid.Load(strings.TrimPrefix(header, "Bearer ")); !ok {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"message":"expired","isError":true}`))
			return
		}
		w.Header().Set("X-Body", string(body))
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	}))
}

func TestRoundTripper_RefreshAndReplay(t *testing.T) {
	valid := &sync.Map{}
	seen := make(chan string, 4)
	server := apiServer(t, valid, seen)
	defer server.Close()

	fresh := signToken(t, "fresh")
	valid.Store(fresh, true)
	f := newFixture(t, func(ctx context.Context) (string, error) { return fresh, nil })
	stale := signToken(t, "stale")
	require.True(t, f.store.SetToken(stale).OK())

	req, err := http.NewRequest(http.MethodPatch, server.URL+"/users/update", strings.NewReader(`{"username":"x"}`))
	require.NoError(t, err)
	resp, err := f.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"message":"ok"}`, string(body))
	assert.Equal(t, `{"username":"x"}`, resp.Header.Get("X-Body"), "body is replayed")
	assert.EqualValues(t, 1, f.refreshes.Load())
	assert.Equal(t, "Bearer "+stale, <-seen)
	assert.Equal(t, "Bearer "+fresh, <-seen, "replay carries the new token")
	assert.Len(t, seen, 0, "request is replayed exactly once")
	assert.Equal(t, fresh, f.store.Token())
	assert.Equal(t, "fresh", f.store.Identity().Username)
	assert.Empty(t, f.notifier.Drain())
	assert.Equal(t, float64(1), testutil.ToFloat64(f.collectors.Refreshes.WithLabelValues(metrics.OutcomeSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.collectors.Replays.WithLabelValues("2xx")))
}

func TestRoundTripper_RefreshFailure(t *testing.T) {
	server := apiServer(t, &sync.Map{}, nil)
	defer server.Close()

	refreshErr := schema.NewError(http.StatusUnauthorized, "Refresh token expired, please login")
	f := newFixture(t, func(ctx context.Context) (string, error) { return "", refreshErr })
	loggedOut := false
	f.store.OnLogout(func() { loggedOut = true })
	require.True(t, f.store.SetToken(signToken(t, "bob")).OK())

	resp, err := f.client.Get(server.URL + "/users/profile")
	assert.Nil(t, resp)
	require.Error(t, err)

	var refreshError *RefreshError
	require.True(t, errors.As(err, &refreshError))
	var apiErr *schema.Error
	require.True(t, errors.As(err, &apiErr), "caller receives the refresh error")
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, refreshErr, apiErr)

	session := f.store.Snapshot()
	assert.Empty(t, session.Token)
	assert.True(t, session.Identity.IsZero())
	assert.False(t, session.RememberMe)
	assert.True(t, loggedOut)

	notifications := f.notifier.Drain()
	if assert.Len(t, notifications, 1) {
		assert.Equal(t, "Session expired", notifications[0].Summary)
		assert.Equal(t, notify.Error, notifications[0].Severity)
	}
	assert.Equal(t, []string{DefaultLoginPath}, f.redirects)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.collectors.Refreshes.WithLabelValues(metrics.OutcomeFailure)))
}

func TestRoundTripper_SecondExpiryIsFinal(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()
	fresh := signToken(t, "fresh")
	f := newFixture(t, func(ctx context.Context) (string, error) { return fresh, nil })
	f.store.SetToken(signToken(t, "stale"))

	resp, err := f.client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.EqualValues(t, 2, hits.Load())
	assert.EqualValues(t, 1, f.refreshes.Load())
	assert.Equal(t, fresh, f.store.Token())
}

func TestRoundTripper_OtherErrorsPropagate(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusNotFound, http.StatusInternalServerError} {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(status)
		}))
		f := newFixture(t, func(ctx context.Context) (string, error) { return "", errors.New("unexpected") })
		f.store.SetToken(signToken(t, "bob"))
		resp, err := f.client.Get(server.URL)
		server.Close()
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, status, resp.StatusCode)
		assert.EqualValues(t, 1, hits.Load(), "no retry for %v", status)
		assert.EqualValues(t, 0, f.refreshes.Load())
		assert.True(t, f.store.Authenticated())
	}
}

func TestRoundTripper_Unauthenticated(t *testing.T) {
	seen := make(chan string, 2)
	server := apiServer(t, &sync.Map{}, seen)
	defer server.Close()
	f := newFixture(t, func(ctx context.Context) (string, error) { return "", errors.New("unexpected") })

	resp, err := f.client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "requests without bearer bypass interception")
	assert.Empty(t, <-seen)

	f.store.SetToken(signToken(t, "bob"))
	req, _ := http.NewRequestWithContext(WithoutAuth(context.Background()), http.MethodGet, server.URL, nil)
	resp, err = f.client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, <-seen, "WithoutAuth strips the bearer")
	assert.EqualValues(t, 0, f.refreshes.Load())
	assert.True(t, f.store.Authenticated())
}

func TestRoundTripper_CoalescesConcurrentRefresh(t *testing.T) {
	const requests = 8
	valid := &sync.Map{}
	var expired atomic.Int32
	allExpired := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := valid.Load(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")); ok {
			_, _ = w.Write([]byte("ok"))
			return
		}
		if expired.Add(1) == requests {
			close(allExpired)
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	fresh := signToken(t, "fresh")
	valid.Store(fresh, true)
	f := newFixture(t, func(ctx context.Context) (string, error) {
		select {
		case <-allExpired:
		case <-time.After(5 * time.Second):
		}
		return fresh, nil
	})
	f.store.SetToken(signToken(t, "stale"))

	var wg sync.WaitGroup
	statuses := make([]int, requests)
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := f.client.Get(server.URL)
			if !assert.NoError(t, err) {
				return
			}
			resp.Body.Close()
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()
	assert.EqualValues(t, 1, f.refreshes.Load(), "concurrent expiries share one refresh")
	for _, status := range statuses {
		assert.Equal(t, http.StatusOK, status)
	}
}

func TestRoundTripper_RequestID(t *testing.T) {
	ids := make(chan string, 2)
	valid := &sync.Map{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids <- r.Header.Get(RequestIDHeader)
		if _, ok := valid.Load(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")); !ok {
			w.WriteHeader(http.StatusForbidden)
		}
	}))
	defer server.Close()
	fresh := signToken(t, "fresh")
	valid.Store(fresh, true)
	f := newFixture(t, func(ctx context.Context) (string, error) { return fresh, nil })
	f.store.SetToken(signToken(t, "stale"))

	resp, err := f.client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()
	first, second := <-ids, <-ids
	assert.NotEmpty(t, first)
	assert.Equal(t, first, second, "replay keeps the request id")
}

func TestNew_Validation(t *testing.T) {
	_, err := New()
	assert.Error(t, err)
	aStore, _ := store.New(context.Background())
	_, err = New(WithStore(aStore))
	assert.Error(t, err)
}

func TestRoundTripper_UndecodableRefreshedToken(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()
	f := newFixture(t, func(ctx context.Context) (string, error) { return "not.a.token", nil })
	require.True(t, f.store.SetToken(signToken(t, "stale")).OK())

	resp, err := f.client.Get(server.URL)
	assert.Nil(t, resp)
	require.Error(t, err)
	var refreshError *RefreshError
	require.True(t, errors.As(err, &refreshError))
	assert.True(t, errors.Is(err, store.ErrInvalidToken))
	assert.EqualValues(t, 1, hits.Load(), "no replay with a rejected token")
	assert.False(t, f.store.Authenticated())
	assert.Equal(t, []string{DefaultLoginPath}, f.redirects)
	assert.Len(t, f.notifier.Drain(), 1)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestRoundTripper_RequestBody(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	f := newFixture(t, func(ctx context.Context) (string, error) { return "", errors.New("unexpected") })
	f.store.SetToken(signToken(t, "bob"))
	rt := f.client.Transport.(*RoundTripper)

	req, err := http.NewRequest(http.MethodPost, server.URL, io.NopCloser(failingReader{}))
	require.NoError(t, err)
	_, err = rt.RoundTrip(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read request body")
	assert.EqualValues(t, 0, hits.Load(), "truncated body is never sent")

	original := io.NopCloser(strings.NewReader(`{"title":"x"}`))
	req, err = http.NewRequest(http.MethodPost, server.URL, original)
	require.NoError(t, err)
	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, original, req.Body, "caller request is not modified")
}

func TestRoundTripper_CookieJar(t *testing.T) {
	valid := &sync.Map{}
	fresh := signToken(t, "fresh")
	valid.Store(fresh, true)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/login" {
			http.SetCookie(w, &http.Cookie{Name: "refreshToken", Value: "session-1", Path: "/"})
			return
		}
		cookie, err := r.Cookie("refreshToken")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if _, ok := valid.Load(bearerToken(r)); !ok {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(cookie.Value))
	}))
	defer server.Close()

	aStore, err := store.New(context.Background())
	require.NoError(t, err)
	require.True(t, aStore.SetToken(signToken(t, "stale")).OK())
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	rt, err := New(
		WithStore(aStore),
		WithCookieJar(jar),
		WithTransport(http.DefaultTransport),
		WithRefresher(auth.RefreshFunc(func(ctx context.Context) (string, error) { return fresh, nil })),
	)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/login", nil)
	require.NoError(t, err)
	resp, err := rt.RoundTrip(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Len(t, jar.Cookies(req.URL), 1)

	req, err = http.NewRequest(http.MethodGet, server.URL+"/data", nil)
	require.NoError(t, err)
	resp, err = rt.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "session-1", string(body), "replay carries jar cookies")
}
