// Package render prints server state for humans.
package render

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"prismriver-client/internal/models"
	"prismriver-client/internal/runtime"
)

// Printer writes queue, player and media listings. Durations go through the
// injected format function.
type Printer struct {
	w      io.Writer
	format func(seconds float64) string
}

func NewPrinter(format func(seconds float64) string, w io.Writer) *Printer {
	return &Printer{w: w, format: format}
}

func (p *Printer) seconds(d time.Duration) string {
	return p.format(d.Seconds())
}

// Player prints one status line, e.g. "playing 1:05 / 3:20 vol 80".
func (p *Printer) Player(state models.PlayerState) error {
	_, err := fmt.Fprintf(p.w, "%s %s / %s vol %d\n",
		state.State, p.seconds(state.Elapsed()), p.seconds(state.Total()), state.Volume)
	return err
}

// Queue prints the queue as a table.
func (p *Printer) Queue(q models.Queue) error {
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tTITLE\tLENGTH\tSTATUS\n")
	for i, item := range q.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, item.Media.Title, p.seconds(item.Media.Duration()), itemStatus(item))
	}
	if len(q.Items) == 0 {
		fmt.Fprintf(tw, "-\t(empty)\t\t\n")
	}
	balancing := "off"
	if q.Balancing {
		balancing = "on"
	}
	fmt.Fprintf(tw, "\nbalancing: %s\n", balancing)
	return tw.Flush()
}

// Media prints a media search page.
func (p *Printer) Media(page models.MediaPage) error {
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "TYPE\tID\tTITLE\tLENGTH\n")
	for _, m := range page.Media {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Type, m.ID, m.Title, p.seconds(m.Duration()))
	}
	fmt.Fprintf(tw, "\npages: %d\n", page.Pages)
	return tw.Flush()
}

// Feeds prints how each watched feed ended.
func (p *Printer) Feeds(report runtime.Report) error {
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "FEED\tSTATUS\n")
	for _, f := range report.Feeds {
		status := string(f.Status)
		if f.Err != nil {
			status += ": " + f.Err.Error()
		}
		fmt.Fprintf(tw, "%s\t%s\n", f.Name, status)
	}
	st := report.Stats
	fmt.Fprintf(tw, "\nfeeds: %d, failed: %d\n", st.Total, st.Failed)
	return tw.Flush()
}

func itemStatus(item models.QueueItem) string {
	switch {
	case item.Failed():
		return "error: " + item.Error
	case item.Downloading:
		return fmt.Sprintf("downloading %d%%", item.Progress)
	default:
		return "ready"
	}
}
