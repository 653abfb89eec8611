package logger

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), recorded
}

func sqlFn(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormLogger_Trace(t *testing.T) {
	ctx := context.Background()

	t.Run("errors are logged with the statement", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Error)
		l.Trace(ctx, time.Now(), sqlFn("UPDATE units SET status = 'occupied'", 0), errors.New("deadlock"))

		logs := recorded.FilterMessage("SQL error").All()
		assert.Len(t, logs, 1)
		assert.Equal(t, "UPDATE units SET status = 'occupied'", logs[0].ContextMap()["sql"])
	})

	t.Run("record not found is skipped", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Warn)
		l.Trace(ctx, time.Now(), sqlFn("SELECT 1", 0), gormlogger.ErrRecordNotFound)
		assert.Zero(t, recorded.Len())
	})

	t.Run("unique violations are conflicts, not errors", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Warn)
		l.Trace(ctx, time.Now(), sqlFn(`INSERT INTO "tenants" ...`, 0), fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey))

		assert.Zero(t, recorded.FilterMessage("SQL error").Len())
		conflicts := recorded.FilterMessage("SQL conflict").All()
		require.Len(t, conflicts, 1)
		assert.Equal(t, zapcore.WarnLevel, conflicts[0].Level)
	})

	t.Run("slow statements warn", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Warn, WithSlowThreshold(time.Millisecond))
		l.Trace(ctx, time.Now().Add(-time.Second), sqlFn("SELECT * FROM rent_payments", 12), nil)
		assert.Equal(t, 1, recorded.FilterMessage("Slow SQL").Len())
	})

	t.Run("fast statements need info", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Warn)
		l.Trace(ctx, time.Now(), sqlFn("SELECT 1", 1), nil)
		assert.Zero(t, recorded.Len())

		info := l.LogMode(gormlogger.Info)
		info.Trace(ctx, time.Now(), sqlFn("SELECT 1", 1), nil)
		assert.Equal(t, 1, recorded.FilterMessage("SQL").Len())
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Silent)
		l.Trace(ctx, time.Now(), sqlFn("SELECT 1", 1), errors.New("x"))
		l.Error(ctx, "boom %d", 1)
		assert.Zero(t, recorded.Len())
	})

	t.Run("request id travels with the statement", func(t *testing.T) {
		l, recorded := newObservedGormLogger(gormlogger.Info)
		reqCtx, _ := WithRequestID(ctx, zap.NewNop(), "req-7")
		l.Trace(reqCtx, time.Now(), sqlFn("SELECT 1", 1), nil)
		assert.Equal(t, "req-7", recorded.All()[0].ContextMap()["request_id"])
	})
}

func TestGormLogger_ParamsFilter(t *testing.T) {
	ctx := context.Background()
	stmt := `SELECT * FROM "tenants" WHERE phone = $1`

	hidden := NewGormLogger(zap.NewNop(), gormlogger.Info)
	sql, params := hidden.ParamsFilter(ctx, stmt, "+254700000001")
	assert.Equal(t, stmt, sql)
	assert.Empty(t, params)

	shown := NewGormLogger(zap.NewNop(), gormlogger.Info, WithBoundValues(true))
	_, params = shown.ParamsFilter(ctx, stmt, "+254700000001")
	assert.Equal(t, []any{"+254700000001"}, params)
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("anything"))
}
