package api

import (
	"time"

	"golang.org/x/time/rate"
)

// newTestLimiter allows one request, then one per minute.
func newTestLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Minute), 1)
}
