package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"prismriver-client/internal/constants"
	"prismriver-client/internal/endpoint"
)

// Config is the client configuration, read once at startup and passed down.
type Config struct {
	// Mode is "production" or anything else for development.
	Mode string `yaml:"mode" json:"mode"`
	// APIURL overrides the REST base URL in production.
	APIURL string `yaml:"api_url" json:"api_url"`
	// WSURL overrides the WebSocket base URL in production.
	WSURL string `yaml:"ws_url" json:"ws_url"`
	// Origin is the page origin used to derive the WebSocket base in production.
	Origin string `yaml:"origin" json:"origin"`

	HTTPTimeoutSec int     `yaml:"http_timeout_sec" json:"http_timeout_sec"`
	DialTimeoutSec int     `yaml:"dial_timeout_sec" json:"dial_timeout_sec"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps" json:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst" json:"rate_limit_burst"`

	LogLevel string `yaml:"log_level" json:"log_level"`
	LogFile  string `yaml:"log_file" json:"log_file"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// Default returns the development configuration.
func Default() *Config {
	return &Config{
		Mode:           string(endpoint.ModeDevelopment),
		HTTPTimeoutSec: int(constants.DefaultHTTPTimeout / time.Second),
		DialTimeoutSec: int(constants.DefaultDialTimeout / time.Second),
		RateLimitBurst: 1,
		LogLevel:       "info",
	}
}

// Endpoints converts the configuration into resolver settings.
func (c *Config) Endpoints() (endpoint.Settings, error) {
	origin, err := endpoint.ParseOrigin(c.Origin)
	if err != nil {
		return endpoint.Settings{}, err
	}
	return endpoint.Settings{
		Mode:         endpoint.ParseMode(c.Mode),
		HTTPOverride: c.APIURL,
		WSOverride:   c.WSURL,
		Origin:       origin,
	}, nil
}

// HTTPTimeout returns the per-request timeout for the REST client.
func (c *Config) HTTPTimeout() time.Duration {
	return durationOrDefault(c.HTTPTimeoutSec, constants.DefaultHTTPTimeout)
}

// DialTimeout returns the WebSocket handshake timeout.
func (c *Config) DialTimeout() time.Duration {
	return durationOrDefault(c.DialTimeoutSec, constants.DefaultDialTimeout)
}

// ValidateAndExpandPaths checks URL fields and expands "~" in LogFile.
func (c *Config) ValidateAndExpandPaths() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if strings.HasPrefix(c.LogFile, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("expand log_file: %w", err)
		}
		c.LogFile = filepath.Join(home, strings.TrimPrefix(c.LogFile, "~"))
	}
	return nil
}

func durationOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}
