package telemetry

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type memoryLogExporter struct {
	mu      sync.Mutex
	records []sdklog.Record
}

func (e *memoryLogExporter) Export(_ context.Context, records []sdklog.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range records {
		e.records = append(e.records, r.Clone())
	}
	return nil
}

func (e *memoryLogExporter) Shutdown(context.Context) error   { return nil }
func (e *memoryLogExporter) ForceFlush(context.Context) error { return nil }

func (e *memoryLogExporter) bodies() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.records))
	for _, r := range e.records {
		out = append(out, r.Body().AsString())
	}
	return out
}

func TestNewLoggerProvider_Disabled(t *testing.T) {
	lp, err := NewLoggerProvider(context.Background(), LogsConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, lp.IsEnabled())
	assert.NoError(t, lp.ForceFlush(context.Background()))
	assert.NoError(t, lp.Shutdown(context.Background()))

	core := NewZapOTELCore(lp, "rentdesk", zapcore.InfoLevel)
	assert.False(t, core.Enabled(zapcore.ErrorLevel))
}

func TestNewZapOTELCore_FiltersByLevel(t *testing.T) {
	exporter := &memoryLogExporter{}
	lp, err := NewLoggerProvider(context.Background(), LogsConfig{
		Enabled:     true,
		ServiceName: "rentdesk-test",
		Exporter:    exporter,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = lp.Shutdown(context.Background()) })

	core := NewZapOTELCore(lp, "rentdesk", zapcore.WarnLevel)
	log := zap.New(core).With(zap.String("business_id", "b1"))

	log.Info("tenant moved in")
	log.Warn("payment reversed")
	log.Error("receipt render failed")
	require.NoError(t, lp.ForceFlush(context.Background()))

	assert.Equal(t, []string{"payment reversed", "receipt render failed"}, exporter.bodies())
}
