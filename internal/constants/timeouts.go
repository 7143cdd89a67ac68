package constants

import "time"

const (
	// DefaultHTTPTimeout bounds a single REST request.
	DefaultHTTPTimeout = 30 * time.Second
	// DefaultDialTimeout bounds the WebSocket handshake and TCP dial.
	DefaultDialTimeout = 10 * time.Second
	// DefaultTLSHandshakeTimeout bounds TLS negotiation for both transports.
	DefaultTLSHandshakeTimeout = 10 * time.Second
	// DefaultResponseHeaderTimeout bounds waiting for response headers.
	DefaultResponseHeaderTimeout = 15 * time.Second
	// CloseGracePeriod is how long a WebSocket close frame may take to send.
	CloseGracePeriod = 3 * time.Second
	// ShutdownTimeout bounds CLI cleanup after a signal.
	ShutdownTimeout = 5 * time.Second
)
