package ws

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"prismriver-client/internal/endpoint"
	"prismriver-client/internal/events"
	"prismriver-client/internal/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// newFeedServer upgrades every request, sends frames, then waits for the
// client to hang up.
func newFeedServer(t *testing.T, frames ...string) (*httptest.Server, chan string) {
	t.Helper()
	paths := make(chan string, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.Path
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv, paths
}

func factoryFor(srv *httptest.Server) *Factory {
	base := "ws" + strings.TrimPrefix(srv.URL, "http") + "/"
	resolver := endpoint.NewResolver(endpoint.Settings{Mode: endpoint.ModeProduction, WSOverride: base})
	return NewFactory(resolver, WithDialTimeout(2*time.Second))
}

func TestConnectJoinsPath(t *testing.T) {
	srv, paths := newFeedServer(t, `{"CurrentTime":1000,"TotalTime":61000,"State":1,"Volume":100}`)
	f := factoryFor(srv)

	conn, err := f.Connect(context.Background(), "/ws/player")
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, "/ws/player", <-paths)
	assert.True(t, strings.HasSuffix(conn.URL(), "/ws/player"))
	assert.NotContains(t, strings.TrimPrefix(conn.URL(), "ws://"), "//")

	state, err := conn.ReadPlayerState()
	require.NoError(t, err)
	assert.Equal(t, models.StatePlaying, state.State)
	assert.Equal(t, "0:01 / 1:01", state.Progress())
}

func TestReadQueue(t *testing.T) {
	srv, _ := newFeedServer(t, `{"balancing":true,"items":[{"id":4,"media":{"ID":"a","Title":"A"}}]}`)
	conn, err := factoryFor(srv).Connect(context.Background(), "ws/queue")
	require.NoError(t, err)
	defer conn.Close()

	q, err := conn.ReadQueue()
	require.NoError(t, err)
	assert.True(t, q.Balancing)
	require.Len(t, q.Items, 1)
	assert.Equal(t, uint32(4), q.Items[0].ID)
}

func TestConnectFailureIsReturned(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	f := factoryFor(srv)

	_, err := f.Connect(context.Background(), "ws/player")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")

	srv.Close()
	_, err = f.Connect(context.Background(), "ws/player")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ws: dial")
}

func TestConnectWithoutBaseFailsFast(t *testing.T) {
	f := NewFactory(endpoint.NewResolver(endpoint.Settings{Mode: endpoint.ModeProduction}))

	_, err := f.Connect(context.Background(), "ws/player")
	assert.ErrorIs(t, err, ErrNoBase)
}

func TestCloseIsIdempotent(t *testing.T) {
	srv, _ := newFeedServer(t)
	conn, err := factoryFor(srv).Connect(context.Background(), "ws/queue")
	require.NoError(t, err)

	require.NoError(t, conn.Close())
	assert.NoError(t, conn.Close())
	_, err = conn.Next()
	assert.ErrorIs(t, err, ErrClosed)
	select {
	case <-conn.Done():
	default:
		t.Fatal("Done not closed")
	}
}

func TestFeedPublishesUntilCanceled(t *testing.T) {
	srv, _ := newFeedServer(t,
		`{"CurrentTime":0,"TotalTime":0,"State":0,"Volume":100}`,
		`{"balancing":false,"items":[]}`,
		`not json at all`,
	)
	conn, err := factoryFor(srv).Connect(context.Background(), "ws/player")
	require.NoError(t, err)

	hub := events.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	stream := hub.Stream(ctx, 8, events.TopicPlayerUpdated, events.TopicQueueUpdated)

	done := make(chan error, 1)
	go func() { done <- Feed(ctx, conn, hub) }()

	first := <-stream
	second := <-stream
	assert.Equal(t, events.TopicPlayerUpdated, first.Topic)
	assert.IsType(t, models.PlayerState{}, first.Payload)
	assert.Equal(t, events.TopicQueueUpdated, second.Topic)
	assert.Equal(t, "ws/player", second.Metadata["path"])

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(3 * time.Second):
		t.Fatal("feed did not stop")
	}
}

func TestFeedEndsWhenServerCloses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"items":[]}`))
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "bye"))
		conn.Close()
	}))
	defer srv.Close()

	conn, err := factoryFor(srv).Connect(context.Background(), "ws/queue")
	require.NoError(t, err)

	hub := events.NewHub()
	var closedWith any
	hub.Subscribe(events.TopicFeedClosed, func(_ context.Context, evt events.Event) { closedWith = evt.Payload })

	err = Feed(context.Background(), conn, hub)
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(errors.Unwrap(err), websocket.CloseGoingAway))
	assert.Equal(t, err, closedWith)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindQueue, Classify("ws/player", []byte(`{"items":[]}`)))
	assert.Equal(t, KindPlayer, Classify("ws/queue", []byte(`{"State":2}`)))
	assert.Equal(t, KindQueue, Classify("ws/queue", []byte(`{}`)))
	assert.Equal(t, KindUnknown, Classify("ws/other", []byte(`{}`)))
}
