package instrumentation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderDisabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{Enabled: false})
	require.NoError(t, err)

	assert.False(t, provider.Enabled())
	assert.NotNil(t, provider.Metrics())
	assert.Nil(t, provider.PrometheusHandler())
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProviderPrometheus(t *testing.T) {
	cfg := Config{
		ServiceName:       "gtm-mcp-test",
		ServiceVersion:    "test",
		Enabled:           true,
		MetricsExporter:   ExporterPrometheus,
		TracingExporter:   ExporterNone,
		TraceSamplingRate: 0.1,
	}

	provider, err := NewProvider(context.Background(), cfg)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	assert.True(t, provider.Enabled())
	assert.NotNil(t, provider.Metrics())
	assert.NotNil(t, provider.PrometheusHandler())
	assert.NotNil(t, provider.Tracer("test"))
}

func TestNewProviderUnknownExporter(t *testing.T) {
	cfg := Config{
		ServiceName:     "gtm-mcp-test",
		Enabled:         true,
		MetricsExporter: "graphite",
	}

	_, err := NewProvider(context.Background(), cfg)
	assert.ErrorContains(t, err, "unsupported metrics exporter")
}

func TestNewProviderOTLPWithoutEndpoint(t *testing.T) {
	cfg := Config{
		ServiceName:     "gtm-mcp-test",
		Enabled:         true,
		MetricsExporter: ExporterOTLP,
	}

	_, err := NewProvider(context.Background(), cfg)
	assert.ErrorContains(t, err, "OTLP endpoint is required")
}

func TestProviderTracerWhenDisabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{Enabled: false})
	require.NoError(t, err)

	tracer := provider.Tracer("test")
	require.NotNil(t, tracer)

	_, span := tracer.Start(context.Background(), "noop")
	span.End()
	assert.False(t, span.SpanContext().IsValid())
}
