package tracing

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInitWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), Settings{})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	ctx, span := StartSpan(context.Background(), "api", "noop")
	Fail(span, errors.New("boom"), "network_error")
	span.End()

	hdr := http.Header{}
	Inject(ctx, propagation.HeaderCarrier(hdr))
	assert.Empty(t, hdr.Get("traceparent"))
}

func TestSettingsFromEnv(t *testing.T) {
	t.Setenv(EnvEndpoint, " collector:4317 ")
	t.Setenv(EnvSampleRatio, "0.25")

	s := SettingsFromEnv("production")
	assert.Equal(t, Settings{Endpoint: "collector:4317", SampleRatio: 0.25, Mode: "production"}, s)

	t.Setenv(EnvSampleRatio, "lots")
	assert.Zero(t, SettingsFromEnv("").SampleRatio)
}

func TestSettingsTarget(t *testing.T) {
	cases := []struct {
		endpoint string
		addr     string
		insecure bool
	}{
		{"", "", true},
		{"localhost:4317", "localhost:4317", true},
		{"http://otel.local:4317/", "otel.local:4317", true},
		{"https://otel.example.org:443", "otel.example.org:443", false},
	}
	for _, tc := range cases {
		t.Run(tc.endpoint, func(t *testing.T) {
			addr, insecure := Settings{Endpoint: tc.endpoint}.target()
			assert.Equal(t, tc.addr, addr)
			assert.Equal(t, tc.insecure, insecure)
		})
	}
}

func TestSettingsSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), Settings{}.sampler().Description())
	assert.Equal(t, sdktrace.AlwaysSample().Description(), Settings{SampleRatio: 2}.sampler().Description())
	assert.Contains(t, Settings{SampleRatio: 0.5}.sampler().Description(), "TraceIDRatioBased{0.5}")
}
