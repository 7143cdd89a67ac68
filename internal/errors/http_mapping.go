package errors

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// MapHTTPError maps a status code and response body to an APIError.
func MapHTTPError(statusCode int, body []byte) *APIError {
	msg := extractMessage(body)

	switch statusCode {
	case http.StatusNotModified:
		return New(statusCode, CodeNotModified, firstNonEmpty(msg, "Nothing to update"))
	case http.StatusBadRequest:
		return New(statusCode, CodeInvalidRequest, firstNonEmpty(msg, "Invalid request"))
	case http.StatusNotFound:
		return New(statusCode, CodeNotFound, firstNonEmpty(msg, "Resource not found"))
	case http.StatusTooManyRequests:
		return New(statusCode, CodeRateLimited, firstNonEmpty(msg, "Rate limit exceeded"))
	case http.StatusInternalServerError:
		return New(statusCode, CodeServer, firstNonEmpty(msg, "Internal server error"))
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return New(statusCode, CodeUnavailable, firstNonEmpty(msg, "Service temporarily unavailable"))
	case http.StatusGatewayTimeout:
		return New(statusCode, CodeTimeout, firstNonEmpty(msg, "Request timeout"))
	default:
		return New(statusCode, CodeUnknown, firstNonEmpty(msg, fmt.Sprintf("HTTP %d error", statusCode)))
	}
}

// extractMessage understands {"error":{"message":..}}, {"error":..},
// {"message":..} and the plain text bodies written by http.Error.
func extractMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if gjson.ValidBytes(body) {
		for _, path := range []string{"error.message", "error", "message"} {
			if v := gjson.GetBytes(body, path); v.Type == gjson.String && v.Str != "" {
				return v.Str
			}
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		return msg[:200] + "..."
	}
	return msg
}

func firstNonEmpty(strs ...string) string {
	for _, s := range strs {
		if s != "" {
			return s
		}
	}
	return ""
}
