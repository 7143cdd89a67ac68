// Package timefmt renders playback positions and media lengths as
// colon-separated clock strings ("0:05", "3:20", "1:01:01").
package timefmt

import (
	"errors"
	"math"
	"strconv"
	"time"
)

var (
	// ErrNegative is returned by Validate for durations below zero.
	ErrNegative = errors.New("timefmt: negative duration")
	// ErrNotFinite is returned by Validate for NaN and infinite durations.
	ErrNotFinite = errors.New("timefmt: duration is not finite")
)

// Validate reports whether seconds can be formatted without clamping.
func Validate(seconds float64) error {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return ErrNotFinite
	}
	if seconds < 0 {
		return ErrNegative
	}
	return nil
}

// Format truncates seconds to a whole number and renders it as base-60 groups
// joined by ':'. The seconds group is always two digits, inner groups are
// padded to two digits and the leading group is not padded. Values under a
// minute keep a leading "0:" group.
//
// Negative, NaN and infinite input is clamped to zero.
func Format(seconds float64) string {
	if Validate(seconds) != nil {
		seconds = 0
	}
	if seconds >= math.MaxInt64 {
		return formatWhole(math.MaxInt64)
	}
	return formatWhole(int64(seconds))
}

// FormatDuration formats d, truncated to whole seconds.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		return formatWhole(0)
	}
	return formatWhole(int64(d / time.Second))
}

// FormatMillis formats a millisecond count as reported by the player feed.
func FormatMillis(ms int64) string {
	return FormatDuration(time.Duration(ms) * time.Millisecond)
}

// FormatNanos formats a nanosecond count as stored on media records.
func FormatNanos(ns uint64) string {
	if ns > math.MaxInt64 {
		ns = math.MaxInt64
	}
	return FormatDuration(time.Duration(ns))
}

// Progress renders "current / total", e.g. "1:05 / 3:20".
func Progress(current, total time.Duration) string {
	return FormatDuration(current) + " / " + FormatDuration(total)
}

func formatWhole(n int64) string {
	if n < 60 {
		return "0:" + pad(n)
	}
	return groups(n)
}

// groups expects n >= 60.
func groups(n int64) string {
	hi, lo := n/60, n%60
	if hi < 60 {
		return strconv.FormatInt(hi, 10) + ":" + pad(lo)
	}
	return groups(hi) + ":" + pad(lo)
}

func pad(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
