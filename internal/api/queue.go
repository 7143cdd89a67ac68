package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"prismriver-client/internal/constants"
	"prismriver-client/internal/models"
)

var (
	// ErrInvalidEnqueue is returned when neither ID+Type nor URL is given.
	ErrInvalidEnqueue = errors.New("api: enqueue needs an id and type or a url")
	// ErrInvalidIndex is returned for queue positions the server cannot address.
	ErrInvalidIndex = errors.New("api: queue index out of range")
	// ErrInvalidMove is returned for unknown move directions.
	ErrInvalidMove = errors.New("api: unknown move")
)

// maxQueueIndex is the largest index the server parses (8-bit).
const maxQueueIndex = 255

// Queue returns the current queue.
func (c *Client) Queue(ctx context.Context) (*models.Queue, error) {
	data, err := c.do(ctx, request{method: http.MethodGet, path: constants.PathQueue})
	if err != nil {
		return nil, err
	}
	var q models.Queue
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("api: decode queue: %w", err)
	}
	return &q, nil
}

// EnqueueRequest adds a known media item by ID and Type, or any supported
// URL. Video asks for the video stream when the server downloads the URL.
type EnqueueRequest struct {
	ID    string
	Type  string
	URL   string
	Video bool
}

func (r EnqueueRequest) validate() error {
	if (r.ID != "" && r.Type != "") || r.URL != "" {
		return nil
	}
	return ErrInvalidEnqueue
}

// Enqueue appends media to the queue. The server downloads in the background;
// progress arrives on the queue feed.
func (c *Client) Enqueue(ctx context.Context, r EnqueueRequest) error {
	if err := r.validate(); err != nil {
		return err
	}
	form := url.Values{}
	if r.ID != "" && r.Type != "" {
		form.Set("id", r.ID)
		form.Set("type", r.Type)
	}
	if r.URL != "" {
		form.Set("url", r.URL)
	}
	form.Set("video", strconv.FormatBool(r.Video))
	_, err := c.do(ctx, request{method: http.MethodPost, path: constants.PathQueue, form: form})
	return err
}

// SetBalancing toggles per-listener queue balancing.
func (c *Client) SetBalancing(ctx context.Context, enabled bool) error {
	form := url.Values{"balancing": {strconv.FormatBool(enabled)}}
	_, err := c.do(ctx, request{method: http.MethodPut, path: constants.PathQueue, form: form})
	return err
}

// RemoveItem drops the item at index. Index 0 skips the playing item.
func (c *Client) RemoveItem(ctx context.Context, index int) error {
	if err := checkIndex(index); err != nil {
		return err
	}
	path := constants.PathQueue + "/" + strconv.Itoa(index)
	_, err := c.do(ctx, request{method: http.MethodDelete, path: path})
	return err
}

// Move is a queue reordering direction, or an absolute target index
// rendered as decimal (see MoveTo).
type Move string

const (
	MoveUp     Move = "up"
	MoveDown   Move = "down"
	MoveTop    Move = "top"
	MoveBottom Move = "bottom"
)

// MoveTo returns the Move that places an item at the absolute index.
func MoveTo(index int) Move {
	return Move(strconv.Itoa(index))
}

// ParseMove validates a direction or a target index in 0..255.
func ParseMove(raw string) (Move, error) {
	switch m := Move(raw); m {
	case MoveUp, MoveDown, MoveTop, MoveBottom:
		return m, nil
	}
	to, err := strconv.ParseUint(raw, 10, 8)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidMove, raw)
	}
	return MoveTo(int(to)), nil
}

// MoveItem reorders the item at index. The server never moves the playing
// item or moves anything in front of it.
func (c *Client) MoveItem(ctx context.Context, index int, move Move) error {
	if err := checkIndex(index); err != nil {
		return err
	}
	if _, err := ParseMove(string(move)); err != nil {
		return err
	}
	path := constants.PathQueue + "/" + strconv.Itoa(index)
	form := url.Values{"move": {string(move)}}
	_, err := c.do(ctx, request{method: http.MethodPut, path: path, form: form})
	return err
}

func checkIndex(index int) error {
	if index < 0 || index > maxQueueIndex {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	return nil
}
