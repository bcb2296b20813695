package instrumentation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestTracer(t *testing.T) (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return tp, recorder
}

func TestStartToolSpan(t *testing.T) {
	tp, recorder := newTestTracer(t)

	tracer := tp.Tracer(TracerName)
	ctx, span := tracer.Start(context.Background(), "tool.gtm_list_tags")
	span.SetAttributes(attribute.String(SpanAttrTool, "gtm_list_tags"))

	assert.NotEmpty(t, GetTraceID(ctx))
	assert.NotEmpty(t, GetSpanID(ctx))

	SetSpanSuccess(span)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "tool.gtm_list_tags", spans[0].Name())
}

func TestSetSpanError(t *testing.T) {
	tp, recorder := newTestTracer(t)

	_, span := tp.Tracer(TracerName).Start(context.Background(), "gtm.create_tag")
	SetSpanError(span, errors.New("fingerprint mismatch"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.NotEmpty(t, spans[0].Events())
}

func TestSetSpanErrorNil(t *testing.T) {
	tp, recorder := newTestTracer(t)

	_, span := tp.Tracer(TracerName).Start(context.Background(), "gtm.list_tags")
	SetSpanError(span, nil)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Empty(t, spans[0].Events())
}

func TestGetTraceIDNoSpan(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
	assert.Empty(t, GetSpanID(context.Background()))
}
