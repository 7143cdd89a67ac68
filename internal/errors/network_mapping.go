package errors

import (
	"context"
	"errors"
	"strings"
)

// MapNetworkError maps transport failures to APIError values with no status.
func MapNetworkError(err error) *APIError {
	if apiErr, ok := As(err); ok {
		return apiErr
	}
	errMsg := err.Error()

	var apiErr *APIError
	switch {
	case errors.Is(err, context.Canceled) || strings.Contains(errMsg, "context canceled"):
		apiErr = New(0, CodeCanceled, "Request was canceled: "+errMsg)
	case errors.Is(err, context.DeadlineExceeded) || strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "deadline exceeded"):
		apiErr = New(0, CodeTimeout, "Request timeout: "+errMsg)
	case strings.Contains(errMsg, "connection refused"):
		apiErr = New(0, CodeConnection, "Connection refused: "+errMsg)
	case strings.Contains(errMsg, "EOF") || strings.Contains(errMsg, "connection reset"):
		apiErr = New(0, CodeConnection, "Connection error: "+errMsg)
	case strings.Contains(errMsg, "no such host") || strings.Contains(errMsg, "name resolution"):
		apiErr = New(0, CodeDNS, "DNS resolution error: "+errMsg)
	case strings.Contains(errMsg, "certificate") || strings.Contains(errMsg, "tls"):
		apiErr = New(0, CodeTLS, "TLS/Certificate error: "+errMsg)
	default:
		apiErr = New(0, CodeNetwork, "Network error: "+errMsg)
	}
	return apiErr.WithCause(err)
}
