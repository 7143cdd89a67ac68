package config

// Environment variable names. The unprefixed fallbacks are the names used by
// the web front-end build.
const (
	EnvMode           = "PRISMRIVER_MODE"
	EnvModeFallback   = "NODE_ENV"
	EnvAPIURL         = "PRISMRIVER_API_URL"
	EnvAPIURLFallback = "API_URL"
	EnvWSURL          = "PRISMRIVER_WS_URL"
	EnvWSURLFallback  = "VUE_APP_WS_URL"
	EnvOrigin         = "PRISMRIVER_ORIGIN"
	EnvHTTPTimeout    = "HTTP_TIMEOUT_SEC"
	EnvDialTimeout    = "DIAL_TIMEOUT_SEC"
	EnvRateLimitRPS   = "RATE_LIMIT_RPS"
	EnvRateLimitBurst = "RATE_LIMIT_BURST"
	EnvLogLevel       = "LOG_LEVEL"
	EnvLogFile        = "LOG_FILE"
	EnvDebug          = "DEBUG"
)

func (c *Config) mergeEnvVars() {
	if v := getenv(EnvMode, EnvModeFallback); v != "" {
		c.Mode = v
	}
	if v := getenv(EnvAPIURL, EnvAPIURLFallback); v != "" {
		c.APIURL = v
	}
	if v := getenv(EnvWSURL, EnvWSURLFallback); v != "" {
		c.WSURL = v
	}
	if v := getenv(EnvOrigin); v != "" {
		c.Origin = v
	}
	setIntFromEnv(EnvHTTPTimeout, func(n int) { c.HTTPTimeoutSec = n })
	setIntFromEnv(EnvDialTimeout, func(n int) { c.DialTimeoutSec = n })
	setFloatFromEnv(EnvRateLimitRPS, func(f float64) { c.RateLimitRPS = f })
	setIntFromEnv(EnvRateLimitBurst, func(n int) { c.RateLimitBurst = n })
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	setToggleFromEnv(EnvDebug, func(b bool) { c.Debug = b })
}
