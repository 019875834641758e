package schema

import (
	"fmt"
	"net/http"
)

// ErrorBody represents the body the API sends with every failed call
type ErrorBody struct {
	Message string `json:"message,omitempty"`
	IsError bool   `json:"isError,omitempty"`
}

// Error represents a non 2xx API response
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status code %d", e.Status)
}

// NewError creates an API error, message is optional
func NewError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// IsSuccess returns true for 2xx status codes
func IsSuccess(status int) bool {
	return status >= http.StatusOK && status <= 299
}
