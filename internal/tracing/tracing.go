// Package tracing exports spans for REST calls and WebSocket dials over OTLP
// gRPC. Without a collector endpoint every span is a no-op.
package tracing

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"prismriver-client/internal/constants"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName = "prismriver-client"

	EnvEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvSampleRatio = "PRISMRIVER_TRACE_SAMPLE_RATIO"
)

// Settings selects the collector and how much of the client's traffic to keep.
type Settings struct {
	// Endpoint is host:port, optionally prefixed with http:// or https://.
	// Plain and http:// endpoints are dialed without TLS.
	Endpoint string
	// SampleRatio outside (0, 1) samples everything.
	SampleRatio float64
	// Mode is recorded on every span as prismriver.mode.
	Mode string
}

// SettingsFromEnv reads the collector endpoint and sample ratio.
func SettingsFromEnv(mode string) Settings {
	s := Settings{Endpoint: strings.TrimSpace(os.Getenv(EnvEndpoint)), Mode: mode}
	if raw := strings.TrimSpace(os.Getenv(EnvSampleRatio)); raw != "" {
		if ratio, err := strconv.ParseFloat(raw, 64); err == nil {
			s.SampleRatio = ratio
		}
	}
	return s
}

// target splits Endpoint into the gRPC address and whether TLS is off.
func (s Settings) target() (string, bool) {
	ep := strings.TrimRight(strings.TrimSpace(s.Endpoint), "/")
	switch {
	case strings.HasPrefix(ep, "https://"):
		return strings.TrimPrefix(ep, "https://"), false
	case strings.HasPrefix(ep, "http://"):
		return strings.TrimPrefix(ep, "http://"), true
	}
	return ep, true
}

func (s Settings) sampler() sdktrace.Sampler {
	if s.SampleRatio <= 0 || s.SampleRatio >= 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(s.SampleRatio))
}

// Init installs the global tracer provider and returns its shutdown
// function. Without an endpoint it installs nothing and shutdown is a no-op.
func Init(ctx context.Context, s Settings) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	addr, insecure := s.target()
	if addr == "" {
		return noop, nil
	}
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(addr)}
	if insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", constants.Version),
			attribute.String("prismriver.mode", s.Mode),
		),
		resource.WithFromEnv(),
	)
	if err != nil {
		_ = exporter.Shutdown(ctx)
		return noop, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(s.sampler()),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return provider.Shutdown, nil
}

// StartSpan starts a client span from the "prismriver-client/<component>"
// tracer.
func StartSpan(ctx context.Context, component, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	opts = append([]trace.SpanStartOption{trace.WithSpanKind(trace.SpanKindClient)}, opts...)
	return otel.Tracer(serviceName+"/"+component).Start(ctx, spanName, opts...)
}

// Inject writes the span context in ctx into outgoing headers.
func Inject(ctx context.Context, carrier propagation.TextMapCarrier) {
	otel.GetTextMapPropagator().Inject(ctx, carrier)
}

// Fail marks span as failed with err.
func Fail(span trace.Span, err error, description string) {
	if err != nil {
		span.RecordError(err)
	}
	span.SetStatus(codes.Error, description)
}
