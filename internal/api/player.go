package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"prismriver-client/internal/constants"
)

// ErrEmptyCommand is returned for a PlayerCommand that changes nothing.
var ErrEmptyCommand = errors.New("api: empty player command")

// PlayerAction is a transport control.
type PlayerAction string

const (
	ActionPlay       PlayerAction = "play"
	ActionPause      PlayerAction = "pause"
	ActionSkip       PlayerAction = "skip"
	ActionVolumeUp   PlayerAction = "volume_up"
	ActionVolumeDown PlayerAction = "volume_down"
)

// PlayerCommand is sent as a form to PUT /player. Seek, when set, is an
// absolute position.
type PlayerCommand struct {
	Action PlayerAction
	Seek   *time.Duration
}

func (p PlayerCommand) values() url.Values {
	v := url.Values{}
	if p.Action != "" {
		v.Set("action", string(p.Action))
	}
	if p.Seek != nil {
		v.Set("seek", strconv.FormatInt(p.Seek.Milliseconds(), 10))
	}
	return v
}

// UpdatePlayer sends a transport command.
func (c *Client) UpdatePlayer(ctx context.Context, cmd PlayerCommand) error {
	form := cmd.values()
	if len(form) == 0 {
		return ErrEmptyCommand
	}
	_, err := c.do(ctx, request{method: http.MethodPut, path: constants.PathPlayer, form: form})
	return err
}
