package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/postboard"
	"github.com/viant/postboard/mock"
	"github.com/viant/postboard/schema"
	"go.uber.org/zap"
)

func TestRun(t *testing.T) {
	ctx := context.Background()
	srv := mock.NewHTTPTestServer()
	defer srv.Close()
	user := srv.Service.Seed("jane", "secret", schema.RoleUser)
	srv.Service.SeedPost(user.ID, "hello", "first post")
	state := t.TempDir()

	run := func(args ...string) (string, error) {
		out := &bytes.Buffer{}
		args = append([]string{"--url", srv.URL, "--state", state, "--env", state + "/none.env"}, args...)
		err := Run(ctx, args, out, postboard.WithLogger(zap.NewNop()))
		return out.String(), err
	}

	output, err := run("login", "--username", "jane", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, output, `Logged in as "jane"`)

	output, err = run("profile")
	require.NoError(t, err, "remembered session is restored")
	assert.Contains(t, output, `"username": "jane"`)

	output, err = run("my-posts", "--page", "1", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, output, "first post")

	output, err = run("navigate", "/update-user/1")
	require.NoError(t, err)
	assert.Contains(t, output, "Unauthorized by Role")

	_, err = run("remember", "off")
	require.NoError(t, err)
	_, err = run("profile")
	assert.Error(t, err)

	_, err = run("remember", "maybe")
	assert.Error(t, err)
}

func TestRun_Flags(t *testing.T) {
	ctx := context.Background()
	err := Run(ctx, []string{"--help"}, &bytes.Buffer{})
	var flagsErr *flags.Error
	require.ErrorAs(t, err, &flagsErr)
	assert.Equal(t, flags.ErrHelp, flagsErr.Type)

	err = Run(ctx, []string{"login", "--username", "jane"}, &bytes.Buffer{})
	assert.Error(t, err)
}
