package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"prismriver-client/internal/constants"
	"prismriver-client/internal/models"

	"github.com/gorilla/websocket"
)

// ErrClosed is returned by reads after Close.
var ErrClosed = errors.New("ws: connection closed")

// Conn is a read-mostly feed connection.
type Conn struct {
	conn *websocket.Conn
	path string
	url  string

	closeOnce sync.Once
	closed    chan struct{}
}

func newConn(conn *websocket.Conn, path, url string) *Conn {
	return &Conn{conn: conn, path: path, url: url, closed: make(chan struct{})}
}

// Path returns the path the connection was opened for.
func (c *Conn) Path() string { return c.path }

// URL returns the dialled address.
func (c *Conn) URL() string { return c.url }

// Next blocks for the next text or binary frame.
func (c *Conn) Next() ([]byte, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		select {
		case <-c.closed:
			return nil, ErrClosed
		default:
		}
		return nil, fmt.Errorf("ws: read %s: %w", c.path, err)
	}
	return data, nil
}

// ReadPlayerState reads one /ws/player frame.
func (c *Conn) ReadPlayerState() (models.PlayerState, error) {
	var state models.PlayerState
	return state, c.readJSON(&state)
}

// ReadQueue reads one /ws/queue frame.
func (c *Conn) ReadQueue() (models.Queue, error) {
	var q models.Queue
	return q, c.readJSON(&q)
}

func (c *Conn) readJSON(v any) error {
	data, err := c.Next()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("ws: decode %s frame: %w", c.path, err)
	}
	return nil
}

// Close sends a close frame and closes the socket. Safe to call repeatedly.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		deadline := time.Now().Add(constants.CloseGracePeriod)
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		err = c.conn.Close()
	})
	return err
}

// Done is closed once Close has been called.
func (c *Conn) Done() <-chan struct{} { return c.closed }
