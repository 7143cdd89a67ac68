package errors

// Error codes.
const (
	CodeInvalidRequest = "invalid_request"
	CodeNotFound       = "not_found"
	CodeNotModified    = "not_modified"
	CodeRateLimited    = "rate_limited"
	CodeServer         = "server_error"
	CodeUnavailable    = "service_unavailable"
	CodeUnknown        = "unknown_error"

	CodeTimeout    = "timeout"
	CodeCanceled   = "request_canceled"
	CodeConnection = "connection_error"
	CodeDNS        = "dns_error"
	CodeTLS        = "tls_error"
	CodeNetwork    = "network_error"
)
