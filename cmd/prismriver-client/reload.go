package main

import (
	"prismriver-client/internal/config"
	"prismriver-client/internal/logging"

	log "github.com/sirupsen/logrus"
)

// reloadLogging re-applies the logging settings of a reloaded configuration.
// The -debug flag wins over the file.
func reloadLogging(debugFlag bool) func(*config.Config) {
	return func(next *config.Config) {
		cfg := *next
		if debugFlag {
			cfg.Debug = true
		}
		if err := logging.Setup(&cfg); err != nil {
			log.WithError(err).Warn("failed to apply reloaded logging settings")
			return
		}
		log.WithFields(log.Fields{"log_level": cfg.LogLevel, "debug": cfg.Debug}).Debug("logging reconfigured")
	}
}

// endpointsChanged reports whether a reload touched settings that the running
// client resolved once at startup.
func endpointsChanged(change config.ChangeEvent) bool {
	if change.Previous == nil {
		return false
	}
	prev, next := change.Previous, change.Config
	return prev.Mode != next.Mode ||
		prev.APIURL != next.APIURL ||
		prev.WSURL != next.WSURL ||
		prev.Origin != next.Origin
}
