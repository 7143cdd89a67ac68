package constants

import "time"

// HTTP client connection pool. A single client talks to a single server.
const (
	MaxIdleConns        = 16
	MaxIdleConnsPerHost = 8
	IdleConnTimeout     = 90 * time.Second
	DefaultKeepAlive    = 30 * time.Second
)

// WebSocket buffers, matching the server's upgrader.
const (
	WSReadBufferSize  = 1024
	WSWriteBufferSize = 1024
	// WSReadLimit caps a single frame. Queue snapshots carry every item.
	WSReadLimit = 4 << 20
)

// Server paths.
const (
	PathMedia       = "media"
	PathQueue       = "queue"
	PathPlayer      = "player"
	PathWSPlayer    = "ws/player"
	PathWSQueue     = "ws/queue"
	RequestIDHeader = "X-Request-ID"
)
