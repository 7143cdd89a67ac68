package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

const (
	reloadDebounce  = 100 * time.Millisecond
	pollingInterval = 5 * time.Second
)

func (cm *Manager) startWatcher() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.WithError(err).Warn("failed to create file watcher, falling back to polling")
		cm.startPollingWatcher()
		return
	}

	// The directory catches editors that save by rename.
	configDir := filepath.Dir(cm.configPath)
	if err := watcher.Add(configDir); err != nil {
		log.WithError(err).WithField("dir", configDir).Warn("failed to watch config directory, falling back to polling")
		watcher.Close()
		cm.startPollingWatcher()
		return
	}
	target := filepath.Clean(cm.configPath)
	log.WithField("path", cm.configPath).Debug("config watcher started using fsnotify")

	go func() {
		defer watcher.Close()

		var debounceTimer *time.Timer
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					if debounceTimer != nil {
						debounceTimer.Stop()
					}
					debounceTimer = time.AfterFunc(reloadDebounce, cm.checkAndReload)
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("file watcher error")

			case <-cm.stopCh:
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				return
			}
		}
	}()
}

func (cm *Manager) startPollingWatcher() {
	ticker := time.NewTicker(pollingInterval)
	log.WithField("interval", pollingInterval).Debug("config watcher started using polling")

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cm.checkAndReload()
			case <-cm.stopCh:
				return
			}
		}
	}()
}

func (cm *Manager) checkAndReload() {
	info, err := os.Stat(cm.configPath)
	if err != nil {
		return
	}
	cm.mu.RLock()
	changed := info.ModTime().After(cm.lastMod)
	cm.mu.RUnlock()
	if !changed {
		return
	}
	if err := cm.Reload(); err != nil {
		log.WithError(err).WithField("path", cm.configPath).Warn("failed to reload config")
	}
}
