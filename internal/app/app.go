// Package app wires the client's collaborators together once at startup.
// Consumers receive the pieces they need as arguments instead of reaching for
// globals.
package app

import (
	"context"
	"fmt"

	"prismriver-client/internal/api"
	"prismriver-client/internal/config"
	"prismriver-client/internal/endpoint"
	"prismriver-client/internal/events"
	"prismriver-client/internal/runtime"
	"prismriver-client/internal/timefmt"
	"prismriver-client/internal/ws"

	log "github.com/sirupsen/logrus"
)

// App holds the configured collaborators.
type App struct {
	Config   *config.Config
	Resolver *endpoint.Resolver
	API      *api.Client
	Events   *events.Hub
	Sockets  *ws.Factory

	// Format renders seconds for display.
	Format func(seconds float64) string
	// Connect opens a feed connection relative to the WebSocket base.
	Connect ws.ConnectFunc
}

// New builds an App from cfg. A nil hub gets a fresh one.
func New(cfg *config.Config, hub *events.Hub) (*App, error) {
	settings, err := cfg.Endpoints()
	if err != nil {
		return nil, fmt.Errorf("app: endpoints: %w", err)
	}
	if hub == nil {
		hub = events.NewHub()
	}
	resolver := endpoint.NewResolver(settings)
	sockets := ws.NewFactory(resolver, ws.WithDialTimeout(cfg.DialTimeout()))

	a := &App{
		Config:   cfg,
		Resolver: resolver,
		API:      api.NewFromConfig(cfg, resolver),
		Events:   hub,
		Sockets:  sockets,
		Format:   timefmt.Format,
		Connect:  sockets.Connect,
	}
	log.WithFields(log.Fields{
		"mode":      settings.Mode,
		"http_base": resolver.HTTPBase(),
		"ws_base":   resolver.WSBase(),
	}).Debug("endpoints resolved")
	return a, nil
}

// Watch connects to path and publishes its frames on the hub until ctx ends
// or the connection drops.
func (a *App) Watch(ctx context.Context, path string) error {
	conn, err := a.Connect(ctx, path)
	if err != nil {
		return err
	}
	return ws.Feed(ctx, conn, a.Events)
}

// WatchAll follows every path at once and reports how each feed ended. The
// first feed to fail stops the others; a canceled ctx is reported as its
// error.
func (a *App) WatchAll(ctx context.Context, paths ...string) (runtime.Report, error) {
	sup := runtime.NewSupervisor(ctx)
	sup.FailFast = true
	for _, path := range paths {
		path := path
		if err := sup.Start(path, func(ctx context.Context) error { return a.Watch(ctx, path) }); err != nil {
			sup.StopAll()
			_ = sup.Wait()
			return sup.Report(), err
		}
	}
	if err := sup.Wait(); err != nil {
		return sup.Report(), err
	}
	return sup.Report(), ctx.Err()
}
