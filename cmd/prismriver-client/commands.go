package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"prismriver-client/internal/api"
	"prismriver-client/internal/app"
	"prismriver-client/internal/config"
	"prismriver-client/internal/constants"
	apperrors "prismriver-client/internal/errors"
	"prismriver-client/internal/events"
	"prismriver-client/internal/models"
	"prismriver-client/internal/render"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/sjson"
)

// errUsage marks bad command lines.
var errUsage = errors.New("usage")

type cli struct {
	app  *app.App
	out  io.Writer
	json bool

	// mu serialises output from concurrent feeds.
	mu sync.Mutex
}

func (c *cli) printer() *render.Printer {
	return render.NewPrinter(c.app.Format, c.out)
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "endpoints":
		return c.endpoints()
	case "queue":
		return c.queue(ctx)
	case "media":
		return c.media(ctx, rest)
	case "add":
		return c.add(ctx, rest)
	case "remove":
		return c.remove(ctx, rest)
	case "move":
		return c.move(ctx, rest)
	case "balance":
		return c.balance(ctx, rest)
	case "player":
		return c.player(ctx, rest)
	case "seek":
		return c.seek(ctx, rest)
	case "watch":
		return c.watch(ctx, rest)
	case "fmt":
		return c.format(rest)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func (c *cli) endpoints() error {
	r := c.app.Resolver
	mode := string(r.Settings().Mode)
	if c.json {
		fields := []struct {
			path  string
			value string
		}{
			{"mode", mode},
			{"http_base", r.HTTPBase()},
			{"ws_base", r.WSBase()},
			{"ws.player", r.WSURL(constants.PathWSPlayer)},
			{"ws.queue", r.WSURL(constants.PathWSQueue)},
		}
		doc := `{}`
		for _, f := range fields {
			var err error
			if doc, err = sjson.Set(doc, f.path, f.value); err != nil {
				return fmt.Errorf("encode %s: %w", f.path, err)
			}
		}
		_, err := fmt.Fprintln(c.out, doc)
		return err
	}
	_, err := fmt.Fprintf(c.out, "mode: %s\nhttp: %s\nws:   %s\n", mode, r.HTTPBase(), r.WSBase())
	return err
}

func (c *cli) queue(ctx context.Context) error {
	q, err := c.app.API.Queue(ctx)
	if err != nil {
		return err
	}
	if c.json {
		return c.queueJSON(*q)
	}
	return c.printer().Queue(*q)
}

// queueJSON prints the queue with a display_length next to each media length.
func (c *cli) queueJSON(q models.Queue) error {
	data, err := json.Marshal(q)
	if err != nil {
		return err
	}
	for i, item := range q.Items {
		path := fmt.Sprintf("items.%d.media.display_length", i)
		if data, err = sjson.SetBytes(data, path, c.app.Format(item.Media.Duration().Seconds())); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(c.out, string(data))
	return err
}

func (c *cli) media(ctx context.Context, args []string) error {
	q := api.MediaQuery{Limit: 12}
	if len(args) > 0 {
		q.Query = args[0]
	}
	if len(args) > 1 {
		page, err := strconv.Atoi(args[1])
		if err != nil || page < 1 {
			return fmt.Errorf("%w: page must be a positive number", errUsage)
		}
		q.Page = page
	}
	page, err := c.app.API.ListMedia(ctx, q)
	if err != nil {
		return err
	}
	if c.json {
		return json.NewEncoder(c.out).Encode(page)
	}
	return c.printer().Media(*page)
}

func (c *cli) add(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: add <url> [video]", errUsage)
	}
	req := api.EnqueueRequest{URL: args[0]}
	if len(args) > 1 {
		video, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("%w: video must be true or false", errUsage)
		}
		req.Video = video
	}
	return c.app.API.Enqueue(ctx, req)
}

func (c *cli) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: remove <index>", errUsage)
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: index must be a number", errUsage)
	}
	return c.app.API.RemoveItem(ctx, index)
}

func (c *cli) move(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: move <index> <up|down|top|bottom|position>", errUsage)
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: index must be a number", errUsage)
	}
	move, err := api.ParseMove(args[1])
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return c.app.API.MoveItem(ctx, index, move)
}

func (c *cli) balance(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: balance <true|false>", errUsage)
	}
	enabled, err := strconv.ParseBool(args[0])
	if err != nil {
		return fmt.Errorf("%w: balance <true|false>", errUsage)
	}
	return c.app.API.SetBalancing(ctx, enabled)
}

func (c *cli) player(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: player <action>", errUsage)
	}
	action := api.PlayerAction(args[0])
	switch action {
	case api.ActionPlay, api.ActionPause, api.ActionSkip, api.ActionVolumeUp, api.ActionVolumeDown:
	default:
		return fmt.Errorf("%w: unknown player action %q", errUsage, args[0])
	}
	return c.app.API.UpdatePlayer(ctx, api.PlayerCommand{Action: action})
}

func (c *cli) seek(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: seek <seconds>", errUsage)
	}
	secs, err := strconv.ParseFloat(args[0], 64)
	if err != nil || secs < 0 {
		return fmt.Errorf("%w: seconds must be a non-negative number", errUsage)
	}
	pos := time.Duration(secs * float64(time.Second))
	return c.app.API.UpdatePlayer(ctx, api.PlayerCommand{Seek: &pos})
}

func (c *cli) watch(ctx context.Context, args []string) error {
	paths, err := feedPaths(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := c.printer()
	unsubPlayer := c.app.Events.Subscribe(events.TopicPlayerUpdated, func(_ context.Context, evt events.Event) {
		if state, ok := evt.Payload.(models.PlayerState); ok {
			_ = c.emit(state, func() error { return p.Player(state) })
		}
	})
	defer unsubPlayer()
	unsubQueue := c.app.Events.Subscribe(events.TopicQueueUpdated, func(_ context.Context, evt events.Event) {
		if q, ok := evt.Payload.(models.Queue); ok {
			_ = c.emit(q, func() error { return p.Queue(q) })
		}
	})
	defer unsubQueue()
	unsubConfig := c.app.Events.Subscribe(events.TopicConfigUpdated, func(_ context.Context, evt events.Event) {
		if change, ok := evt.Payload.(config.ChangeEvent); ok && endpointsChanged(change) {
			log.WithField("path", change.Path).Warn("endpoint settings changed, restart watch to use them")
		}
	})
	defer unsubConfig()

	report, err := c.app.WatchAll(ctx, paths...)
	if printErr := c.emit(report, func() error { return p.Feeds(report) }); printErr != nil {
		log.WithError(printErr).Warn("failed to print feed summary")
	}
	var closeErr *websocket.CloseError
	switch {
	case errors.Is(err, context.Canceled):
		return nil
	case errors.As(err, &closeErr) && closeErr.Code == websocket.CloseNormalClosure:
		return nil
	}
	return err
}

// feedPaths maps "player", "queue" and "all" to WebSocket paths.
func feedPaths(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: watch <player|queue|all>...", errUsage)
	}
	seen := map[string]bool{}
	var paths []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	for _, arg := range args {
		switch arg {
		case "player":
			add(constants.PathWSPlayer)
		case "queue":
			add(constants.PathWSQueue)
		case "all":
			add(constants.PathWSPlayer)
			add(constants.PathWSQueue)
		default:
			return nil, fmt.Errorf("%w: unknown feed %q", errUsage, arg)
		}
	}
	return paths, nil
}

func (c *cli) emit(v any, table func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.json {
		return json.NewEncoder(c.out).Encode(v)
	}
	return table()
}

func (c *cli) format(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: fmt <seconds>", errUsage)
	}
	secs, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("%w: seconds must be a number", errUsage)
	}
	_, err = fmt.Fprintln(c.out, c.app.Format(secs))
	return err
}

// exitCode is 2 for usage errors, 3 for server rejections, 1 otherwise.
func exitCode(err error) int {
	switch {
	case errors.Is(err, errUsage):
		return 2
	case apperrors.StatusCode(err) != 0:
		return 3
	default:
		return 1
	}
}
