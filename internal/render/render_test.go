package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"prismriver-client/internal/models"
	"prismriver-client/internal/runtime"
	"prismriver-client/internal/timefmt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayer(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(timefmt.Format, &buf)
	require.NoError(t, p.Player(models.PlayerState{CurrentTime: 65000, TotalTime: 200000, State: models.StatePaused, Volume: 80}))
	assert.Equal(t, "paused 1:05 / 3:20 vol 80\n", buf.String())
}

func TestPrinterUsesInjectedFormat(t *testing.T) {
	var buf bytes.Buffer
	var calls []float64
	p := NewPrinter(func(s float64) string {
		calls = append(calls, s)
		return "T"
	}, &buf)
	require.NoError(t, p.Player(models.PlayerState{CurrentTime: 1500, TotalTime: 3000}))
	assert.Equal(t, []float64{1.5, 3}, calls)
	assert.Equal(t, "stopped T / T vol 0\n", buf.String())
}

func TestQueue(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(timefmt.Format, &buf)
	q := models.Queue{Balancing: true, Items: []models.QueueItem{
		{Media: models.Media{Title: "Now", Length: 3661_000_000_000}},
		{Media: models.Media{Title: "Next", Length: 59_900_000_000}, Downloading: true, Progress: 42},
		{Media: models.Media{Title: "Broken"}, Error: "unsupported"},
	}}
	require.NoError(t, p.Queue(q))

	out := buf.String()
	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[1], "1:01:01")
	assert.Contains(t, lines[1], "ready")
	assert.Contains(t, lines[2], "0:59")
	assert.Contains(t, lines[2], "downloading 42%")
	assert.Contains(t, lines[3], "error: unsupported")
	assert.Contains(t, out, "balancing: on")
}

func TestEmptyQueueAndMedia(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(timefmt.Format, &buf)
	require.NoError(t, p.Queue(models.Queue{}))
	assert.Contains(t, buf.String(), "(empty)")

	buf.Reset()
	require.NoError(t, p.Media(models.MediaPage{Pages: 1, Media: []models.Media{{ID: "x", Type: "youtube", Title: "X", Length: 60_000_000_000}}}))
	assert.Contains(t, buf.String(), "1:00")
	assert.Contains(t, buf.String(), "pages: 1")
}

func TestFeeds(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(timefmt.Format, &buf)
	require.NoError(t, p.Feeds(runtime.Report{
		Feeds: []runtime.Feed{
			{Name: "ws/player", Status: runtime.StatusFailed, Err: errors.New("read: EOF")},
			{Name: "ws/queue", Status: runtime.StatusCanceled},
		},
		Stats: runtime.Stats{Total: 2, Failed: 1, Canceled: 1},
	}))
	out := buf.String()
	assert.Contains(t, out, "ws/player")
	assert.Contains(t, out, "failed: read: EOF")
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "ws/queue") {
			assert.Equal(t, []string{"ws/queue", "canceled"}, strings.Fields(line))
		}
	}
	assert.True(t, strings.HasSuffix(out, "feeds: 2, failed: 1\n"))
}
