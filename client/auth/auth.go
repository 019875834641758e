package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/viant/postboard/schema"
)

// RefreshURI is the API refresh endpoint
const RefreshURI = "/auth/refresh"

// Refresher obtains a new access token
type Refresher interface {
	Refresh(ctx context.Context) (string, error)
}

// RefreshFunc adapts a function to Refresher
type RefreshFunc func(ctx context.Context) (string, error)

func (f RefreshFunc) Refresh(ctx context.Context) (string, error) { return f(ctx) }

// HTTPRefresher calls the refresh endpoint without the Authorization header
type HTTPRefresher struct {
	BaseURL string
	Client  *http.Client
}

func (r *HTTPRefresher) Refresh(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(r.BaseURL, "/")+RefreshURI, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := r.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read refresh response: %w", err)
	}
	if !schema.IsSuccess(resp.StatusCode) {
		body := schema.ErrorBody{}
		_ = json.Unmarshal(data, &body)
		return "", schema.NewError(resp.StatusCode, body.Message)
	}
	result := schema.AccessTokenResult{}
	if err = json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("invalid refresh response: %w", err)
	}
	if result.AccessToken == "" {
		return "", errors.New("refresh response missing accessToken")
	}
	return result.AccessToken, nil
}

// NewHTTPRefresher creates a refresher, client should carry the refresh cookie jar
func NewHTTPRefresher(baseURL string, client *http.Client) *HTTPRefresher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPRefresher{BaseURL: baseURL, Client: client}
}
