package logging

// ErrorKind maps a response status and transport error to a short label.
func ErrorKind(status int, hasErr bool) string {
	if hasErr && status == 0 {
		return "network_error"
	}
	switch {
	case status == 304:
		return "not_modified"
	case status == 404:
		return "not_found"
	case status == 429:
		return "rate_limited"
	case status >= 500 && status < 600:
		return "server_5xx"
	case status >= 400 && status < 500:
		return "client_4xx"
	}
	if hasErr {
		return "error"
	}
	return "ok"
}
