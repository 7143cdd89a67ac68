package constants

// Version information (injected at build time with -ldflags).
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// UserAgent is sent with every REST request and WebSocket handshake.
func UserAgent() string {
	return "prismriver-client/" + Version
}

// GetFullVersion returns version, commit and build time.
func GetFullVersion() string {
	return Version + " (" + GitCommit + ") built at " + BuildTime
}
