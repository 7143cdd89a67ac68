package config

import (
	"context"
	"os"
	"sync"
	"time"

	"prismriver-client/internal/events"

	log "github.com/sirupsen/logrus"
)

// Manager owns the live configuration and reloads it when the file changes.
type Manager struct {
	mu         sync.RWMutex
	config     *Config
	configPath string
	stopCh     chan struct{}
	stopOnce   sync.Once
	onChange   []func(*Config)
	lastMod    time.Time
	publisher  events.Publisher
}

// NewManager loads the configuration at path and, when the file exists,
// starts watching it.
func NewManager(path string, publisher events.Publisher) (*Manager, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cm := &Manager{
		config:     cfg,
		configPath: path,
		stopCh:     make(chan struct{}),
		publisher:  publisher,
	}
	if path != "" {
		if info, err := os.Stat(path); err == nil {
			cm.lastMod = info.ModTime()
			cm.startWatcher()
		}
	}
	return cm, nil
}

// Config returns a copy of the current configuration.
func (cm *Manager) Config() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	cfg := *cm.config
	return &cfg
}

// OnChange registers a callback invoked after every successful reload.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.onChange = append(cm.onChange, fn)
}

// Close stops the watcher.
func (cm *Manager) Close() {
	cm.stopOnce.Do(func() { close(cm.stopCh) })
}

// Reload re-reads the file and the environment. On failure the previous
// configuration is kept.
func (cm *Manager) Reload() error {
	next := Default()
	if err := readFile(cm.configPath, next); err != nil {
		return err
	}
	next.mergeEnvVars()
	if err := next.ValidateAndExpandPaths(); err != nil {
		return err
	}

	cm.mu.Lock()
	prev := cm.config
	cm.config = next
	if info, err := os.Stat(cm.configPath); err == nil {
		cm.lastMod = info.ModTime()
	}
	cm.mu.Unlock()

	cm.emitChange(prev, next)
	return nil
}

func (cm *Manager) listenersSnapshot() ([]func(*Config), events.Publisher) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	callbacks := make([]func(*Config), len(cm.onChange))
	copy(callbacks, cm.onChange)
	return callbacks, cm.publisher
}

func (cm *Manager) emitChange(oldCfg, newCfg *Config) {
	callbacks, publisher := cm.listenersSnapshot()
	for _, fn := range callbacks {
		fn(newCfg)
	}
	logConfigChanges(oldCfg, newCfg)

	if publisher != nil {
		event := ChangeEvent{Path: cm.configPath, UpdatedAt: time.Now().UTC(), Config: *newCfg}
		if oldCfg != nil {
			prev := *oldCfg
			event.Previous = &prev
		}
		publisher.Publish(context.Background(), events.TopicConfigUpdated, event, nil)
	}
}

// ChangeEvent is the payload published on events.TopicConfigUpdated.
type ChangeEvent struct {
	Path      string    `json:"path"`
	UpdatedAt time.Time `json:"updated_at"`
	Config    Config    `json:"config"`
	Previous  *Config   `json:"previous,omitempty"`
}

func logConfigChanges(old, new *Config) {
	if old == nil || new == nil {
		return
	}
	if old.Mode != new.Mode {
		log.WithFields(log.Fields{"field": "mode", "old": old.Mode, "new": new.Mode}).Info("config changed")
	}
	if old.APIURL != new.APIURL {
		log.WithFields(log.Fields{"field": "api_url", "old": old.APIURL, "new": new.APIURL}).Info("config changed")
	}
	if old.WSURL != new.WSURL {
		log.WithFields(log.Fields{"field": "ws_url", "old": old.WSURL, "new": new.WSURL}).Info("config changed")
	}
	if old.LogLevel != new.LogLevel {
		log.WithFields(log.Fields{"field": "log_level", "old": old.LogLevel, "new": new.LogLevel}).Info("config changed")
	}
}
