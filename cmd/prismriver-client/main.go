package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"prismriver-client/internal/app"
	"prismriver-client/internal/config"
	"prismriver-client/internal/constants"
	"prismriver-client/internal/events"
	"prismriver-client/internal/logging"
	"prismriver-client/internal/tracing"

	log "github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "prismriver.yaml", "Path to configuration file")
	debug := flag.Bool("debug", false, "Enable debug logging")
	jsonOut := flag.Bool("json", false, "Print JSON instead of tables")
	version := flag.Bool("version", false, "Print version and exit")
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Println(constants.GetFullVersion())
		return
	}

	hub := events.NewHub()
	manager, err := config.NewManager(*configPath, hub)
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	defer manager.Close()
	manager.OnChange(reloadLogging(*debug))

	cfg := manager.Config()
	if *debug {
		cfg.Debug = true
	}
	if err := logging.Setup(cfg); err != nil {
		log.WithError(err).Fatal("failed to configure logging")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, tracing.SettingsFromEnv(cfg.Mode))
	if err != nil {
		log.WithError(err).Warn("failed to initialize tracing")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.WithError(err).Warn("failed to shutdown tracing")
		}
	}()

	a, err := app.New(cfg, hub)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize client")
	}

	c := &cli{app: a, out: os.Stdout, json: *jsonOut}
	if err := c.run(ctx, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(exitCode(err))
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: prismriver-client [flags] <command> [args]

Commands:
  endpoints                     print the resolved HTTP and WebSocket bases
  queue                         list the play queue
  media [query] [page]          search the media library
  add <url> [video]             queue a URL
  remove <index>                remove a queue item
  move <index> <up|down|top|bottom|position>
  balance <true|false>          toggle queue balancing
  player <play|pause|skip|volume_up|volume_down>
  seek <seconds>                seek the current item
  watch <player|queue|all>      follow live feeds until interrupted
  fmt <seconds>                 format a duration

Flags:
`)
	flag.PrintDefaults()
}
