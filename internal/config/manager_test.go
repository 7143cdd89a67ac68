package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"prismriver-client/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerReloadPublishes(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: development\n"), 0o644))

	hub := events.NewHub()
	var (
		mu  sync.Mutex
		got []ChangeEvent
	)
	hub.Subscribe(events.TopicConfigUpdated, func(_ context.Context, evt events.Event) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, evt.Payload.(ChangeEvent))
	})

	cm, err := NewManager(path, hub)
	require.NoError(t, err)
	defer cm.Close()
	assert.Equal(t, "development", cm.Config().Mode)

	var callbackMode string
	cm.OnChange(func(c *Config) {
		mu.Lock()
		defer mu.Unlock()
		callbackMode = c.Mode
	})

	require.NoError(t, os.WriteFile(path, []byte("mode: production\nws_url: wss://ws.example.org\n"), 0o644))
	require.NoError(t, cm.Reload())

	assert.Equal(t, "production", cm.Config().Mode)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "production", callbackMode)
	require.NotEmpty(t, got)
	last := got[len(got)-1]
	assert.Equal(t, "wss://ws.example.org", last.Config.WSURL)
	require.NotNil(t, last.Previous)
}

func TestManagerKeepsConfigOnBadReload(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: http://localhost:8000\n"), 0o644))

	cm, err := NewManager(path, nil)
	require.NoError(t, err)
	defer cm.Close()

	require.NoError(t, os.WriteFile(path, []byte("api_url: ftp://nowhere\n"), 0o644))
	assert.Error(t, cm.Reload())
	assert.Equal(t, "http://localhost:8000", cm.Config().APIURL)
}

func TestManagerConfigIsCopy(t *testing.T) {
	clearEnv(t)
	cm, err := NewManager("", nil)
	require.NoError(t, err)
	defer cm.Close()

	cfg := cm.Config()
	cfg.Mode = "production"
	assert.Equal(t, "development", cm.Config().Mode)
}
