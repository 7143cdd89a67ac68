package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribePublish(t *testing.T) {
	hub := NewHub()
	var got []Event
	unsub := hub.Subscribe(TopicQueueUpdated, func(_ context.Context, evt Event) {
		got = append(got, evt)
	})

	hub.Publish(context.Background(), TopicQueueUpdated, 1, map[string]string{"path": "ws/queue"})
	hub.Publish(context.Background(), TopicPlayerUpdated, 2, nil)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Payload)
	assert.Equal(t, "ws/queue", got[0].Metadata["path"])
	assert.False(t, got[0].Timestamp.IsZero())

	unsub()
	unsub()
	assert.Equal(t, 0, hub.Subscribers(TopicQueueUpdated))
	hub.Publish(context.Background(), TopicQueueUpdated, 3, nil)
	assert.Len(t, got, 1)
}

func TestStream(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	ch := hub.Stream(ctx, 2, TopicPlayerUpdated, TopicQueueUpdated)

	hub.Publish(ctx, TopicPlayerUpdated, "p", nil)
	hub.Publish(ctx, TopicQueueUpdated, "q", nil)
	hub.Publish(ctx, TopicQueueUpdated, "dropped", nil)

	first := <-ch
	second := <-ch
	assert.Equal(t, "p", first.Payload)
	assert.Equal(t, "q", second.Payload)

	cancel()
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("stream not closed after cancel")
	}
	assert.Equal(t, 0, hub.Subscribers(TopicPlayerUpdated))
}
