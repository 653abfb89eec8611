package telemetry

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type noteModel struct {
	ID   uint   `gorm:"primaryKey"`
	Body string `gorm:"size:100"`
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "telemetry.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&noteModel{}))
	return db
}

func newRecorder(t *testing.T) (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp, recorder
}

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestDefaultDBTracingConfig(t *testing.T) {
	cfg := DefaultDBTracingConfig()
	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.LogFullSQL)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThresh)
}

func TestDBTracing_RegisterDisabled(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, NewDBTracing(DefaultDBTracingConfig(), zap.NewNop()).Register(db))
}

func TestDBTracing_RegisterEmitsStatementSpans(t *testing.T) {
	db := openTestDB(t)
	tp, recorder := newRecorder(t)

	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true
	cfg.TracerProvider = tp
	require.NoError(t, NewDBTracing(cfg, zap.NewNop()).Register(db))

	require.NoError(t, db.WithContext(context.Background()).Create(&noteModel{Body: "leak in 3A"}).Error)
	assert.NotEmpty(t, recorder.Ended())
}

func TestDBTracing_AnnotatesActiveSpan(t *testing.T) {
	db := openTestDB(t)
	tp, recorder := newRecorder(t)

	tracing := NewDBTracing(DBTracingConfig{Enabled: true, SlowQueryThresh: time.Nanosecond}, zap.NewNop())
	require.NoError(t, tracing.RegisterCallbacks(db))

	ctx, span := tp.Tracer("test").Start(context.Background(), "seed")
	require.NoError(t, db.WithContext(ctx).Create([]noteModel{{Body: "a"}, {Body: "b"}, {Body: "c"}}).Error)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)

	rows, ok := spanAttr(ended[0], "db.rows_affected")
	require.True(t, ok)
	assert.Equal(t, int64(3), rows.AsInt64())

	table, ok := spanAttr(ended[0], "db.sql.table")
	require.True(t, ok)
	assert.Equal(t, "note_models", table.AsString())

	slow, ok := spanAttr(ended[0], "db.slow_query")
	require.True(t, ok)
	assert.True(t, slow.AsBool())
}

func TestDBTracing_RecordNotFoundIsNotAnError(t *testing.T) {
	db := openTestDB(t)
	tp, recorder := newRecorder(t)
	require.NoError(t, NewDBTracing(DBTracingConfig{Enabled: true}, zap.NewNop()).RegisterCallbacks(db))

	ctx, span := tp.Tracer("test").Start(context.Background(), "lookup")
	var note noteModel
	err := db.WithContext(ctx).First(&note, 999).Error
	span.End()

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.Len(t, recorder.Ended(), 1)
	assert.NotEqual(t, codes.Error, recorder.Ended()[0].Status().Code)
}

func TestWithQueryStartTime(t *testing.T) {
	ctx := WithQueryStartTime(context.Background())
	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), start, time.Second)
}
