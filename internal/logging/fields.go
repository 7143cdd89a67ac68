package logging

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// WithRequest builds an entry for an outgoing request. Extras win on key
// conflicts.
func WithRequest(method, url, requestID string, extras log.Fields) *log.Entry {
	fields := log.Fields{
		"method": method,
		"url":    url,
	}
	if requestID != "" {
		fields["request_id"] = requestID
	}
	for k, v := range extras {
		fields[k] = v
	}
	return log.WithFields(fields)
}

// DurationMS converts a duration to integer milliseconds for logging.
func DurationMS(d time.Duration) int64 { return d.Milliseconds() }
