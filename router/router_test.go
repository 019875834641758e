package router

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/postboard/client/auth"
	"github.com/viant/postboard/client/auth/store"
	"github.com/viant/postboard/guard"
	"github.com/viant/postboard/notify"
	"github.com/viant/postboard/schema"
)

func token(t *testing.T, role schema.Role) string {
	claims := schema.AccessClaims{
		UserInfo:         &schema.Identity{ID: "1", Username: "u", Role: role},
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}
	ret, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return ret
}

func TestRoutes_Match(t *testing.T) {
	routes := DefaultRoutes()
	var testCases = []struct {
		path    string
		pattern string
		params  map[string]string
		found   bool
	}{
		{path: "/", pattern: HomePath, params: map[string]string{}, found: true},
		{path: "/profile", pattern: ProfilePath, params: map[string]string{}, found: true},
		{path: "/update-user/42?tab=role", pattern: UpdateUserPath, params: map[string]string{"id": "42"}, found: true},
		{path: "/update-user", found: false},
		{path: "/missing/page", found: false},
	}
	for _, testCase := range testCases {
		route, params, ok := routes.Match(testCase.path)
		assert.Equal(t, testCase.found, ok, testCase.path)
		if !testCase.found {
			continue
		}
		assert.Equal(t, testCase.pattern, route.Path, testCase.path)
		assert.Equal(t, testCase.params, params, testCase.path)
	}
}

func TestNavigator_Guard(t *testing.T) {
	ctx := context.Background()
	aStore, err := store.New(ctx)
	require.NoError(t, err)
	require.NoError(t, aStore.ToggleRememberMe(ctx, false))
	queue := notify.NewQueue(0)
	navigator := New(aStore, guard.New(aStore, queue, HomePath))
	assert.Equal(t, HomePath, navigator.Current().Path)

	aStore.SetToken(token(t, schema.RoleUser))
	location, err := navigator.Navigate(ctx, "/update-user/7")
	require.NoError(t, err)
	assert.True(t, location.Redirected)
	assert.Equal(t, HomePath, location.Path)
	assert.Equal(t, 1, queue.Len())

	location, err = navigator.Navigate(ctx, "/users-list")
	require.NoError(t, err)
	assert.False(t, location.Redirected)
	assert.Equal(t, "/users-list", navigator.Current().Path)

	aStore.SetToken(token(t, schema.RoleAdmin))
	location, err = navigator.Navigate(ctx, "/update-user/7")
	require.NoError(t, err)
	assert.Equal(t, "7", location.Params["id"])

	location, err = navigator.Navigate(ctx, "/nowhere")
	require.NoError(t, err)
	assert.True(t, location.NotFound)

	_, err = navigator.Navigate(ctx, "relative")
	assert.Error(t, err)

	navigator.Redirect(LoginPath)
	assert.Equal(t, LoginPath, navigator.Current().Path)
	assert.True(t, navigator.Current().Redirected)
}

func TestNavigator_RestoresRememberedSession(t *testing.T) {
	ctx := context.Background()
	aStore, err := store.New(ctx)
	require.NoError(t, err)
	require.True(t, aStore.RememberMe())
	calls := 0
	refresher := auth.RefreshFunc(func(ctx context.Context) (string, error) {
		calls++
		return token(t, schema.RoleOwner), nil
	})
	navigator := New(aStore, guard.New(aStore, nil, ""), WithRefresher(refresher))

	location, err := navigator.Navigate(ctx, "/update-user/1")
	require.NoError(t, err)
	assert.False(t, location.Redirected)
	assert.Equal(t, schema.RoleOwner, aStore.Identity().Role)

	_, err = navigator.Navigate(ctx, ProfilePath)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "no refresh while a token is held")
}

func TestNavigator_RestoreFailureDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	aStore, err := store.New(ctx)
	require.NoError(t, err)
	refresher := auth.RefreshFunc(func(ctx context.Context) (string, error) {
		return "", errors.New("no refresh cookie")
	})
	navigator := New(aStore, guard.New(aStore, nil, ""), WithRefresher(refresher))

	location, err := navigator.Navigate(ctx, LoginPath)
	require.NoError(t, err)
	assert.Equal(t, LoginPath, location.Path)

	location, err = navigator.Navigate(ctx, ProfilePath)
	require.NoError(t, err)
	assert.True(t, location.Redirected)
	assert.Equal(t, HomePath, location.Path)
}
