package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"prismriver-client/internal/constants"
	"prismriver-client/internal/events"
	"prismriver-client/internal/models"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// Kind classifies a feed frame.
type Kind int

const (
	KindUnknown Kind = iota
	KindPlayer
	KindQueue
)

// Classify sniffs a frame. Queue frames carry "items"; player frames carry
// "State". Frames with neither fall back to the connection path.
func Classify(path string, frame []byte) Kind {
	switch {
	case gjson.GetBytes(frame, "items").Exists():
		return KindQueue
	case gjson.GetBytes(frame, "State").Exists():
		return KindPlayer
	}
	switch path {
	case constants.PathWSQueue:
		return KindQueue
	case constants.PathWSPlayer:
		return KindPlayer
	}
	return KindUnknown
}

// Feed reads frames from conn and publishes them as TopicPlayerUpdated or
// TopicQueueUpdated until ctx ends or the connection fails. It closes conn
// before returning and publishes TopicFeedClosed with the terminating error.
func Feed(ctx context.Context, conn *Conn, pub events.Publisher) error {
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()
	defer conn.Close()

	meta := map[string]string{"path": conn.Path()}
	entry := log.WithField("path", conn.Path())

	for {
		frame, err := conn.Next()
		if err != nil {
			if ctx.Err() != nil {
				err = ctx.Err()
			}
			if !errors.Is(err, context.Canceled) {
				entry.WithError(err).Warn("websocket feed ended")
			}
			pub.Publish(ctx, events.TopicFeedClosed, err, meta)
			return err
		}

		switch Classify(conn.Path(), frame) {
		case KindPlayer:
			var state models.PlayerState
			if err := json.Unmarshal(frame, &state); err != nil {
				entry.WithError(err).Warn("dropping malformed player frame")
				continue
			}
			pub.Publish(ctx, events.TopicPlayerUpdated, state, meta)
		case KindQueue:
			var q models.Queue
			if err := json.Unmarshal(frame, &q); err != nil {
				entry.WithError(err).Warn("dropping malformed queue frame")
				continue
			}
			pub.Publish(ctx, events.TopicQueueUpdated, q, meta)
		default:
			entry.WithField("frame", fmt.Sprintf("%.80s", frame)).Debug("ignoring unknown frame")
		}
	}
}
