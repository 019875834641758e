package transport

import "context"

type (
	contextKey string
)

const (
	ContextSkipAuthKey contextKey = "skipAuth"
)

// WithoutAuth marks requests made with ctx as unauthenticated: no bearer is
// attached and no refresh is attempted.
func WithoutAuth(ctx context.Context) context.Context {
	return context.WithValue(ctx, ContextSkipAuthKey, true)
}

func isAuthSkipped(ctx context.Context) bool {
	if v := ctx.Value(ContextSkipAuthKey); v != nil {
		skip, _ := v.(bool)
		return skip
	}
	return false
}
