// Package events is the in-process bus between the WebSocket feeds, the
// configuration watcher and whoever renders their updates.
package events

import (
	"context"
	"sync"
	"time"
)

const (
	TopicConfigUpdated = "config.updated"
	TopicPlayerUpdated = "player.updated"
	TopicQueueUpdated  = "queue.updated"
	// TopicFeedClosed carries the error that ended a feed, or nil.
	TopicFeedClosed = "feed.closed"
)

// Event is one published message.
type Event struct {
	Topic     string            `json:"topic"`
	Timestamp time.Time         `json:"timestamp"`
	Payload   any               `json:"payload,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Handler processes an event. Handlers run on the publisher's goroutine.
type Handler func(context.Context, Event)

// Publisher is implemented by Hub.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any, metadata map[string]string)
}

// Subscriber is implemented by Hub.
type Subscriber interface {
	Subscribe(topic string, handler Handler) func()
}

// Hub fans events out to subscribers by topic.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[int64]Handler
	nextID int64
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int64]Handler)}
}

// Subscribe registers handler for topic and returns its unsubscribe func.
func (h *Hub) Subscribe(topic string, handler Handler) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	if _, ok := h.subs[topic]; !ok {
		h.subs[topic] = make(map[int64]Handler)
	}
	h.subs[topic][id] = handler

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if listeners, ok := h.subs[topic]; ok {
				delete(listeners, id)
				if len(listeners) == 0 {
					delete(h.subs, topic)
				}
			}
		})
	}
}

// Stream delivers events for the given topics on a buffered channel until ctx
// is done. Events that do not fit in the buffer are dropped.
func (h *Hub) Stream(ctx context.Context, buffer int, topics ...string) <-chan Event {
	if buffer < 1 {
		buffer = 1
	}
	out := make(chan Event, buffer)

	var mu sync.Mutex
	closed := false
	send := func(_ context.Context, evt Event) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case out <- evt:
		default:
		}
	}

	unsubs := make([]func(), 0, len(topics))
	for _, topic := range topics {
		unsubs = append(unsubs, h.Subscribe(topic, send))
	}

	go func() {
		<-ctx.Done()
		for _, unsub := range unsubs {
			unsub()
		}
		mu.Lock()
		closed = true
		close(out)
		mu.Unlock()
	}()
	return out
}

// Publish dispatches synchronously to every subscriber of topic.
func (h *Hub) Publish(ctx context.Context, topic string, payload any, metadata map[string]string) {
	event := Event{
		Topic:     topic,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
		Metadata:  metadata,
	}
	for _, handler := range h.snapshotHandlers(topic) {
		handler(ctx, event)
	}
}

// Subscribers returns the number of handlers registered for topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}

func (h *Hub) snapshotHandlers(topic string) []Handler {
	h.mu.RLock()
	defer h.mu.RUnlock()

	listeners := h.subs[topic]
	if len(listeners) == 0 {
		return nil
	}
	out := make([]Handler, 0, len(listeners))
	for _, handler := range listeners {
		out = append(out, handler)
	}
	return out
}
