package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// installTracer routes the global tracer into an in-memory exporter
func installTracer(t *testing.T) (*TracerProvider, *tracetest.InMemoryExporter) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp, err := NewTracerProvider(context.Background(), Config{
		Enabled:       true,
		SamplingRatio: 1,
		ServiceName:   "rentdesk-test",
		Exporter:      exporter,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp, exporter
}

func flushed(t *testing.T, tp *TracerProvider, exporter *tracetest.InMemoryExporter) tracetest.SpanStubs {
	t.Helper()
	require.NoError(t, tp.ForceFlush(context.Background()))
	return exporter.GetSpans()
}

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), Config{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("x"))
	tp.EnableSpanProfiles()
	assert.False(t, tp.SpanProfilesEnabled())
	assert.NoError(t, tp.ForceFlush(context.Background()))
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestSampler(t *testing.T) {
	params := sdktrace.SamplingParameters{TraceID: trace.TraceID{1}, Name: "x"}

	assert.Equal(t, sdktrace.RecordAndSample, sampler(1).ShouldSample(params).Decision)
	assert.Equal(t, sdktrace.RecordAndSample, sampler(2).ShouldSample(params).Decision)
	assert.Equal(t, sdktrace.Drop, sampler(0).ShouldSample(params).Decision)
	assert.Contains(t, sampler(0.5).Description(), "TraceIDRatioBased")
}

func TestTracerProvider_ExportsSpans(t *testing.T) {
	tp, exporter := installTracer(t)

	_, span := StartSpan(context.Background(), "unit.occupy", attribute.String("unit_id", "u1"))
	span.End()

	spans := flushed(t, tp, exporter)
	require.Len(t, spans, 1)
	assert.Equal(t, "unit.occupy", spans[0].Name)
	assert.Equal(t, trace.SpanKindInternal, spans[0].SpanKind)
}

func TestTraced(t *testing.T) {
	tp, exporter := installTracer(t)
	ctx := context.Background()

	var inner string
	require.NoError(t, Traced(ctx, "lease.expire", func(ctx context.Context) error {
		inner = TraceID(ctx)
		return nil
	}))
	failure := errors.New("lock conflict")
	assert.ErrorIs(t, Traced(ctx, "counts.reconcile", func(context.Context) error { return failure }), failure)

	spans := flushed(t, tp, exporter)
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.Equal(t, spans[0].SpanContext.TraceID().String(), inner)
	assert.Equal(t, codes.Error, spans[1].Status.Code)
	assert.Len(t, spans[1].Events, 1)
}

func TestTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, TraceID(context.Background()))
}
