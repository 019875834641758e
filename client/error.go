package client

import (
	"errors"

	"github.com/viant/postboard/client/auth/transport"
	"github.com/viant/postboard/schema"
)

// Message returns a human-readable message: the API body message when present,
// the error text otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *schema.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// Status returns API status code or 0 for transport errors
func Status(err error) int {
	var apiErr *schema.Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsSessionExpired returns true when err comes from a failed token refresh
func IsSessionExpired(err error) bool {
	var refreshErr *transport.RefreshError
	return errors.As(err, &refreshErr)
}
