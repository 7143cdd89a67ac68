// Package endpoint selects the base URLs used by the REST client and the
// WebSocket factory.
//
// In production an explicit override wins; the WebSocket base otherwise falls
// back to the host origin. In development fixed localhost bases are used and
// overrides are ignored. Bases never carry a trailing slash; use Join to
// append paths.
package endpoint

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Mode distinguishes production behaviour from local development defaults.
type Mode string

const (
	ModeProduction  Mode = "production"
	ModeDevelopment Mode = "development"
)

// Development defaults.
const (
	DevHTTPBase = "http://localhost"
	DevWSBase   = "ws://localhost:8000"
)

// ErrInvalidOrigin is returned by ParseOrigin for values without scheme or host.
var ErrInvalidOrigin = errors.New("endpoint: invalid origin")

// ParseMode normalises a mode string. Anything other than "production"
// (case-insensitive) is development.
func ParseMode(raw string) Mode {
	if strings.EqualFold(strings.TrimSpace(raw), string(ModeProduction)) {
		return ModeProduction
	}
	return ModeDevelopment
}

// Origin is the scheme and hostname of the page or host the client runs for.
// Scheme keeps its trailing colon, e.g. "https:".
type Origin struct {
	Scheme   string
	Hostname string
}

// ParseOrigin parses "https://example.org[:port][/...]" into an Origin.
// Port and path are dropped.
func ParseOrigin(raw string) (Origin, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Origin{}, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Origin{}, fmt.Errorf("%w: %v", ErrInvalidOrigin, err)
	}
	if u.Scheme == "" || u.Hostname() == "" {
		return Origin{}, fmt.Errorf("%w: %q", ErrInvalidOrigin, raw)
	}
	return Origin{Scheme: strings.ToLower(u.Scheme) + ":", Hostname: u.Hostname()}, nil
}

// Secure reports whether the origin was served over TLS.
func (o Origin) Secure() bool {
	return strings.EqualFold(o.Scheme, "https:")
}

// Settings is read once at startup.
type Settings struct {
	Mode         Mode
	HTTPOverride string
	WSOverride   string
	Origin       Origin
}

// Resolver computes base URLs from Settings.
type Resolver struct {
	settings Settings
}

// NewResolver returns a resolver over a copy of s.
func NewResolver(s Settings) *Resolver {
	return &Resolver{settings: s}
}

// Settings returns the settings the resolver was built with.
func (r *Resolver) Settings() Settings { return r.settings }

// Production reports whether production rules apply.
func (r *Resolver) Production() bool {
	return r.settings.Mode == ModeProduction
}

// HTTPBase returns the REST base URL. In production without an override the
// result is empty and requests are relative to nothing.
func (r *Resolver) HTTPBase() string {
	if !r.Production() {
		return DevHTTPBase
	}
	return trimBase(r.settings.HTTPOverride)
}

// WSBase returns the WebSocket base URL. In production without an override
// or an origin hostname the result is empty.
func (r *Resolver) WSBase() string {
	if !r.Production() {
		return DevWSBase
	}
	if base := trimBase(r.settings.WSOverride); base != "" {
		return base
	}
	if r.settings.Origin.Hostname == "" {
		return ""
	}
	scheme := "ws:"
	if r.settings.Origin.Secure() {
		scheme = "wss:"
	}
	return scheme + "//" + r.settings.Origin.Hostname
}

// HTTPURL joins path onto HTTPBase.
func (r *Resolver) HTTPURL(path string) string { return Join(r.HTTPBase(), path) }

// WSURL joins path onto WSBase.
func (r *Resolver) WSURL(path string) string { return Join(r.WSBase(), path) }

// Join concatenates base and path with exactly one '/' between them.
// An empty path yields the trimmed base.
func Join(base, path string) string {
	base = trimBase(base)
	path = strings.TrimLeft(strings.TrimSpace(path), "/")
	if path == "" {
		return base
	}
	return base + "/" + path
}

func trimBase(base string) string {
	return strings.TrimRight(strings.TrimSpace(base), "/")
}
