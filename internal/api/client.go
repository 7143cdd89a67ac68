// Package api is the REST client for a Prismriver server.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"prismriver-client/internal/config"
	"prismriver-client/internal/constants"
	"prismriver-client/internal/endpoint"
	apperrors "prismriver-client/internal/errors"
	"prismriver-client/internal/logging"
	"prismriver-client/internal/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// ErrEmptyBase is returned when no REST base URL is configured, which is the
// production default without an API URL override.
var ErrEmptyBase = errors.New("api: no base URL configured")

// maxBodySize caps how much of a response is read.
const maxBodySize = 8 << 20

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// RateLimit is requests per second; zero disables throttling.
	RateLimit float64
	Burst     int
	// HTTPClient replaces the default pooled client when set.
	HTTPClient *http.Client
}

// Client talks to one Prismriver server. It is safe for concurrent use.
type Client struct {
	base    string
	cli     *http.Client
	limiter *rate.Limiter
}

// New builds a client for opts.BaseURL.
func New(opts Options) *Client {
	cli := opts.HTTPClient
	if cli == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = constants.DefaultHTTPTimeout
		}
		tr := &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   constants.DefaultDialTimeout,
				KeepAlive: constants.DefaultKeepAlive,
			}).DialContext,
			TLSHandshakeTimeout:   constants.DefaultTLSHandshakeTimeout,
			ResponseHeaderTimeout: constants.DefaultResponseHeaderTimeout,
			MaxIdleConns:          constants.MaxIdleConns,
			MaxIdleConnsPerHost:   constants.MaxIdleConnsPerHost,
			IdleConnTimeout:       constants.IdleConnTimeout,
		}
		cli = &http.Client{Transport: tr, Timeout: timeout}
	}

	c := &Client{base: strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"), cli: cli}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return c
}

// NewFromConfig builds a client whose base URL comes from the resolver.
func NewFromConfig(cfg *config.Config, resolver *endpoint.Resolver) *Client {
	return New(Options{
		BaseURL:   resolver.HTTPBase(),
		Timeout:   cfg.HTTPTimeout(),
		RateLimit: cfg.RateLimitRPS,
		Burst:     cfg.RateLimitBurst,
	})
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.base }

// request describes one call. Form bodies are url-encoded, as the server
// reads them with ParseForm.
type request struct {
	method string
	path   string
	query  url.Values
	form   url.Values
}

// do sends req and returns the body of a 2xx response. Every other outcome is
// an *apperrors.APIError.
func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	if c.base == "" {
		return nil, ErrEmptyBase
	}
	target := endpoint.Join(c.base, req.path)
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, apperrors.MapNetworkError(err).WithRequest(req.method, target)
		}
	}

	ctx, span := tracing.StartSpan(ctx, "api", "Prismriver."+req.method,
		trace.WithAttributes(
			attribute.String("http.method", req.method),
			attribute.String("http.url", target),
		))
	defer span.End()

	var body io.Reader
	if req.form != nil {
		body = strings.NewReader(req.form.Encode())
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set(constants.RequestIDHeader, requestID)
	httpReq.Header.Set("User-Agent", constants.UserAgent())
	httpReq.Header.Set("Accept", "application/json")
	if req.form != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	tracing.Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	start := time.Now()
	resp, err := c.cli.Do(httpReq)
	if err != nil {
		apiErr := apperrors.MapNetworkError(err).WithRequest(req.method, target)
		tracing.Fail(span, err, apiErr.Code)
		logging.WithRequest(req.method, target, requestID, log.Fields{
			"kind":        logging.ErrorKind(0, true),
			"duration_ms": logging.DurationMS(time.Since(start)),
		}).WithError(err).Warn("request failed")
		return nil, apiErr
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	entry := logging.WithRequest(req.method, target, requestID, log.Fields{
		"status":      resp.StatusCode,
		"kind":        logging.ErrorKind(resp.StatusCode, resp.StatusCode >= 300),
		"duration_ms": logging.DurationMS(time.Since(start)),
	})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := apperrors.MapHTTPError(resp.StatusCode, data).WithRequest(req.method, target)
		tracing.Fail(span, apiErr, apiErr.Code)
		if apiErr.IsRetryable() {
			entry.Warn("request failed")
		} else {
			entry.Debug("request rejected")
		}
		return nil, apiErr
	}
	if readErr != nil {
		tracing.Fail(span, readErr, apperrors.CodeNetwork)
		return nil, apperrors.MapNetworkError(readErr).WithRequest(req.method, target)
	}
	entry.Debug("request finished")
	return data, nil
}
