package models

import (
	"time"

	"prismriver-client/internal/timefmt"
)

// Media is a downloadable item known to the server. The server encodes the
// record without JSON tags, hence the capitalised keys.
type Media struct {
	ID        string     `json:"ID"`
	CreatedAt time.Time  `json:"CreatedAt"`
	UpdatedAt time.Time  `json:"UpdatedAt"`
	DeletedAt *time.Time `json:"DeletedAt,omitempty"`

	// Length is in nanoseconds.
	Length uint64 `json:"Length"`
	Title  string `json:"Title"`
	Type   string `json:"Type"`
	URL    string `json:"URL,omitempty"`
	Video  bool   `json:"Video"`
}

// Duration returns Length as a time.Duration.
func (m Media) Duration() time.Duration {
	return time.Duration(m.Length)
}

// DisplayLength formats Length for display.
func (m Media) DisplayLength() string {
	return timefmt.FormatNanos(m.Length)
}

// MediaPage is the body of GET /media.
type MediaPage struct {
	Media []Media `json:"media"`
	Pages uint    `json:"pages"`
}
