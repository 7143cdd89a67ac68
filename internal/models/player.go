package models

import (
	"time"

	"prismriver-client/internal/timefmt"
)

// PlaybackState mirrors the server's player state enumeration.
type PlaybackState int

const (
	StateStopped PlaybackState = iota
	StatePlaying
	StatePaused
	StateLoading
)

func (s PlaybackState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// PlayerState is the body of every /ws/player frame. Times are milliseconds.
type PlayerState struct {
	CurrentTime int64         `json:"CurrentTime"`
	TotalTime   int64         `json:"TotalTime"`
	State       PlaybackState `json:"State"`
	Volume      int           `json:"Volume"`
}

// Elapsed returns CurrentTime as a duration.
func (p PlayerState) Elapsed() time.Duration {
	return time.Duration(p.CurrentTime) * time.Millisecond
}

// Total returns TotalTime as a duration.
func (p PlayerState) Total() time.Duration {
	return time.Duration(p.TotalTime) * time.Millisecond
}

// Progress renders "elapsed / total".
func (p PlayerState) Progress() string {
	return timefmt.Progress(p.Elapsed(), p.Total())
}
