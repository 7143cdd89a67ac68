package config

import (
	"fmt"
	"net/url"
	"strings"

	"prismriver-client/internal/endpoint"

	log "github.com/sirupsen/logrus"
)

// ConfigError describes an invalid configuration field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Validate checks URL schemes and numeric ranges.
func (c *Config) Validate() error {
	if err := validateURL("api_url", c.APIURL, "http", "https"); err != nil {
		return err
	}
	if err := validateURL("ws_url", c.WSURL, "ws", "wss"); err != nil {
		return err
	}
	if err := validateURL("origin", c.Origin, "http", "https"); err != nil {
		return err
	}
	if endpoint.ParseMode(c.Mode) == endpoint.ModeProduction &&
		strings.TrimSpace(c.WSURL) == "" && strings.TrimSpace(c.Origin) == "" {
		return &ConfigError{Field: "origin", Message: "production mode needs ws_url or origin"}
	}
	if c.HTTPTimeoutSec < 0 {
		return &ConfigError{Field: "http_timeout_sec", Message: "must not be negative"}
	}
	if c.DialTimeoutSec < 0 {
		return &ConfigError{Field: "dial_timeout_sec", Message: "must not be negative"}
	}
	if c.RateLimitRPS < 0 {
		return &ConfigError{Field: "rate_limit_rps", Message: "must not be negative"}
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		return &ConfigError{Field: "rate_limit_burst", Message: "must be at least 1 when rate limiting"}
	}
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return &ConfigError{Field: "log_level", Message: err.Error()}
		}
	}
	return nil
}

func validateURL(field, raw string, schemes ...string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return &ConfigError{Field: field, Message: err.Error()}
	}
	if u.Host == "" {
		return &ConfigError{Field: field, Message: fmt.Sprintf("%q has no host", raw)}
	}
	for _, s := range schemes {
		if strings.EqualFold(u.Scheme, s) {
			return nil
		}
	}
	return &ConfigError{Field: field, Message: fmt.Sprintf("scheme must be one of %s", strings.Join(schemes, ", "))}
}
