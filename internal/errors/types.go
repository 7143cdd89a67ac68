package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is the normalised form of a failed Prismriver request, whether the
// server answered with a non-2xx status or the request never completed.
type APIError struct {
	HTTPStatus int
	Code       string
	Message    string
	Method     string
	URL        string
	Cause      error
}

func New(httpStatus int, code, message string) *APIError {
	return &APIError{HTTPStatus: httpStatus, Code: code, Message: message}
}

// WithRequest records the request the error belongs to.
func (e *APIError) WithRequest(method, url string) *APIError {
	e.Method = method
	e.URL = url
	return e
}

// WithCause attaches the underlying transport error.
func (e *APIError) WithCause(err error) *APIError {
	e.Cause = err
	return e
}

func (e *APIError) Error() string {
	prefix := "prismriver"
	if e.Method != "" {
		prefix = fmt.Sprintf("prismriver: %s %s", e.Method, e.URL)
	}
	if e.HTTPStatus > 0 {
		return fmt.Sprintf("%s: %d %s: %s", prefix, e.HTTPStatus, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", prefix, e.Code, e.Message)
}

func (e *APIError) Unwrap() error { return e.Cause }

// IsRetryable reports whether repeating the same request may succeed.
func (e *APIError) IsRetryable() bool {
	switch e.HTTPStatus {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
		http.StatusRequestTimeout:
		return true
	}
	switch e.Code {
	case CodeTimeout, CodeConnection, CodeNetwork, CodeDNS:
		return true
	}
	return false
}

// As extracts an *APIError from err.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	if apiErr, ok := As(err); ok {
		return apiErr.HTTPStatus
	}
	return 0
}
