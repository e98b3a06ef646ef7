package adapter

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidBaseURL      = errors.New("invalid base url")
	ErrMissingRegistration = errors.New("push registration id is missing")
)

// BackendError is a non-2xx response from the backend.
type BackendError struct {
	Status int
	// Code and Message come from the requestError.serviceException
	// envelope when the body carries one.
	Code    string
	Message string
}

func (e *BackendError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend responded %d: %s: %s", e.Status, e.Code, e.Message)
}

// Retryable reports whether the request may succeed when repeated. Client
// errors are final except for timeouts and rate limiting.
func (e *BackendError) Retryable() bool {
	if e.Status >= 400 && e.Status < 500 {
		return e.Status == http.StatusRequestTimeout || e.Status == http.StatusTooManyRequests
	}
	return true
}

func (e *BackendError) StatusCode() int {
	return e.Status
}

func (e *BackendError) ErrorCode() string {
	return e.Code
}

func (e *BackendError) ErrorText() string {
	return e.Message
}
