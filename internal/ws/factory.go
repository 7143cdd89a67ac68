// Package ws opens WebSocket connections to the server's feeds.
//
// Connections are opened eagerly on each Connect call. There is no retry and
// no reconnect; callers own the returned Conn and must Close it.
package ws

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"prismriver-client/internal/constants"
	"prismriver-client/internal/endpoint"
	"prismriver-client/internal/tracing"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// ErrNoBase is returned by Connect when no WebSocket base could be resolved.
var ErrNoBase = errors.New("ws: no base URL configured")

// ConnectFunc is the shape handed to consumers that need sockets.
type ConnectFunc func(ctx context.Context, path string) (*Conn, error)

// Factory dials paths relative to the resolver's WebSocket base.
type Factory struct {
	resolver *endpoint.Resolver
	dialer   *websocket.Dialer
	timeout  time.Duration
}

// Option customises a Factory.
type Option func(*Factory)

// WithDialTimeout bounds the handshake.
func WithDialTimeout(d time.Duration) Option {
	return func(f *Factory) {
		if d > 0 {
			f.timeout = d
			f.dialer.HandshakeTimeout = d
		}
	}
}

// WithDialer replaces the gorilla dialer, e.g. to set a TLS config.
func WithDialer(d *websocket.Dialer) Option {
	return func(f *Factory) {
		if d != nil {
			f.dialer = d
		}
	}
}

func NewFactory(resolver *endpoint.Resolver, opts ...Option) *Factory {
	f := &Factory{
		resolver: resolver,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: constants.DefaultDialTimeout,
			ReadBufferSize:   constants.WSReadBufferSize,
			WriteBufferSize:  constants.WSWriteBufferSize,
		},
		timeout: constants.DefaultDialTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// URL returns the address Connect would dial for path.
func (f *Factory) URL(path string) string {
	return f.resolver.WSURL(path)
}

// Connect dials base+path and returns the live connection.
func (f *Factory) Connect(ctx context.Context, path string) (*Conn, error) {
	if f.resolver.WSBase() == "" {
		return nil, ErrNoBase
	}
	target := f.URL(path)

	dialCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	dialCtx, span := tracing.StartSpan(dialCtx, "ws", "WebSocket.Dial",
		trace.WithAttributes(attribute.String("ws.url", target)))
	defer span.End()

	hdr := http.Header{}
	hdr.Set("User-Agent", constants.UserAgent())
	tracing.Inject(dialCtx, propagation.HeaderCarrier(hdr))

	conn, resp, err := f.dialer.DialContext(dialCtx, target, hdr)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		tracing.Fail(span, err, "dial failed")
		if resp != nil {
			return nil, fmt.Errorf("ws: dial %s: %w (status %d)", target, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("ws: dial %s: %w", target, err)
	}
	conn.SetReadLimit(constants.WSReadLimit)

	log.WithFields(log.Fields{"url": target, "path": path}).Debug("websocket connected")
	return newConn(conn, path, target), nil
}
