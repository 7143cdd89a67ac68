// Package runtime supervises the long-running WebSocket feeds of a client
// process.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Status is the lifecycle state of a feed.
type Status string

const (
	StatusRunning  Status = "running"
	StatusStopped  Status = "stopped"
	StatusFailed   Status = "failed"
	StatusCanceled Status = "canceled"
)

// RunFunc runs until ctx ends or the feed breaks.
type RunFunc func(ctx context.Context) error

// Feed is a snapshot of one supervised feed.
type Feed struct {
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Status    Status    `json:"status"`
	Err       error     `json:"-"`

	cancel context.CancelFunc
}

// Stats counts feeds by status.
type Stats struct {
	Total    int `json:"total"`
	Running  int `json:"running"`
	Stopped  int `json:"stopped"`
	Failed   int `json:"failed"`
	Canceled int `json:"canceled"`
}

// Supervisor runs named feeds on their own goroutines. When FailFast is set
// the first failing feed cancels the rest.
type Supervisor struct {
	FailFast bool

	mu     sync.RWMutex
	feeds  map[string]*Feed
	first  error
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSupervisor returns a Supervisor whose feeds end with ctx.
func NewSupervisor(ctx context.Context) *Supervisor {
	ctx, cancel := context.WithCancel(ctx)
	return &Supervisor{
		feeds:  make(map[string]*Feed),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches fn under name. Names are unique for the Supervisor's life.
func (s *Supervisor) Start(name string, fn RunFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.feeds[name]; exists {
		return fmt.Errorf("feed %s already started", name)
	}
	ctx, cancel := context.WithCancel(s.ctx)
	feed := &Feed{Name: name, StartTime: time.Now(), Status: StatusRunning, cancel: cancel}
	s.feeds[name] = feed

	s.wg.Add(1)
	go s.run(ctx, feed, fn)
	return nil
}

func (s *Supervisor) run(ctx context.Context, feed *Feed, fn RunFunc) {
	defer s.wg.Done()
	defer feed.cancel()

	entry := log.WithField("feed", feed.Name)
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		entry.Debug("feed started")
		err = fn(ctx)
	}()

	s.mu.Lock()
	switch {
	case err == nil:
		feed.Status = StatusStopped
		entry.Debug("feed stopped")
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		feed.Status = StatusCanceled
	default:
		feed.Status = StatusFailed
		feed.Err = err
		if s.first == nil {
			s.first = fmt.Errorf("feed %s: %w", feed.Name, err)
		}
		entry.WithError(err).Warn("feed failed")
	}
	failFast := s.FailFast && feed.Status == StatusFailed
	s.mu.Unlock()

	if failFast {
		s.cancel()
	}
}

// StopAll cancels every feed.
func (s *Supervisor) StopAll() { s.cancel() }

// Wait blocks until every feed has returned and reports the first failure.
func (s *Supervisor) Wait() error {
	s.wg.Wait()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.first
}

// List returns copies of all feeds ordered by name.
func (s *Supervisor) List() []Feed {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Feed, 0, len(s.feeds))
	for _, f := range s.feeds {
		out = append(out, snapshot(f))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Report is what a Supervisor ran and how each feed ended.
type Report struct {
	Feeds []Feed `json:"feeds"`
	Stats Stats  `json:"stats"`
}

// Report snapshots every feed and the status counts.
func (s *Supervisor) Report() Report {
	return Report{Feeds: s.List(), Stats: s.Stats()}
}

// Stats counts feeds by status.
func (s *Supervisor) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{Total: len(s.feeds)}
	for _, f := range s.feeds {
		switch f.Status {
		case StatusRunning:
			st.Running++
		case StatusStopped:
			st.Stopped++
		case StatusFailed:
			st.Failed++
		case StatusCanceled:
			st.Canceled++
		}
	}
	return st
}

func snapshot(f *Feed) Feed {
	return Feed{Name: f.Name, StartTime: f.StartTime, Status: f.Status, Err: f.Err}
}
