package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Load builds a Config from defaults, an optional YAML or JSON file, .env files
// and the process environment, in that order of increasing precedence.
// A missing file is not an error.
func Load(path string, dotenv ...string) (*Config, error) {
	loadDotenv(dotenv...)

	cfg := Default()
	if err := readFile(path, cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if path != "" {
			log.WithField("path", path).Debug("config file not found, using defaults")
		}
	}
	cfg.mergeEnvVars()

	if err := cfg.ValidateAndExpandPaths(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotenv loads the given files, or ".env" when none are given. Existing
// environment variables are never overridden.
func loadDotenv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.WithError(err).WithField("path", f).Warn("failed to read env file")
		}
	}
}

func readFile(path string, cfg *Config) error {
	if path == "" {
		return os.ErrNotExist
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	log.WithField("path", path).Debug("configuration loaded")
	return nil
}
