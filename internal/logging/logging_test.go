package logging

import (
	"os"
	"path/filepath"
	"testing"

	"prismriver-client/internal/config"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLevels(t *testing.T) {
	t.Cleanup(func() { _ = Setup(nil) })

	require.NoError(t, Setup(&config.Config{LogLevel: "warn"}))
	assert.Equal(t, log.WarnLevel, log.GetLevel())
	_, isJSON := log.StandardLogger().Formatter.(*log.JSONFormatter)
	assert.True(t, isJSON)

	require.NoError(t, Setup(&config.Config{LogLevel: "warn", Debug: true}))
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	_, isText := log.StandardLogger().Formatter.(*log.TextFormatter)
	assert.True(t, isText)

	assert.Error(t, Setup(&config.Config{LogLevel: "loud"}))
}

func TestSetupLogFile(t *testing.T) {
	t.Cleanup(func() { _ = Setup(nil) })

	path := filepath.Join(t.TempDir(), "nested", "client.log")
	require.NoError(t, Setup(&config.Config{LogFile: path}))
	WithRequest("GET", "http://localhost/queue", "rid-1", log.Fields{"status": 200}).Info("request finished")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"request_id":"rid-1"`)
	assert.Contains(t, string(data), `"status":200`)
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "network_error", ErrorKind(0, true))
	assert.Equal(t, "ok", ErrorKind(200, false))
	assert.Equal(t, "not_found", ErrorKind(404, true))
	assert.Equal(t, "server_5xx", ErrorKind(503, true))
	assert.Equal(t, "client_4xx", ErrorKind(400, true))
	assert.Equal(t, "not_modified", ErrorKind(304, false))
}
