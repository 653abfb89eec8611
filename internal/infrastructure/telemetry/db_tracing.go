package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // bind variables in span statements; never in production
	SlowQueryThresh time.Duration // default 200ms
	DBName          string

	// TracerProvider overrides the global provider
	TracerProvider trace.TracerProvider
}

// DefaultDBTracingConfig returns the secure defaults
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		SlowQueryThresh: 200 * time.Millisecond,
		DBName:          "rentdesk",
	}
}

type queryStartKey struct{}

// WithQueryStartTime stamps ctx with the current time for slow query detection
func WithQueryStartTime(ctx context.Context) context.Context {
	return context.WithValue(ctx, queryStartKey{}, time.Now())
}

// DBTracing adds a span per statement through otelgorm and annotates the
// active span with table, rows affected and slow-query markers.
type DBTracing struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracing creates the tracing hooks
func NewDBTracing(cfg DBTracingConfig, logger *zap.Logger) *DBTracing {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	return &DBTracing{config: cfg, logger: logger}
}

// Register installs otelgorm and the annotation callbacks on db.
// It does nothing when tracing is disabled.
func (t *DBTracing) Register(db *gorm.DB) error {
	if !t.config.Enabled {
		t.logger.Debug("Database tracing disabled")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(t.config.DBName)}
	if !t.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if t.config.TracerProvider != nil {
		opts = append(opts, otelgorm.WithTracerProvider(t.config.TracerProvider))
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	if err := t.RegisterCallbacks(db); err != nil {
		return err
	}

	t.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", t.config.LogFullSQL),
		zap.Duration("slow_query_threshold", t.config.SlowQueryThresh),
	)
	return nil
}

// RegisterCallbacks installs only the timing and annotation callbacks
func (t *DBTracing) RegisterCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	steps := []func() error{
		func() error { return cb.Create().Before("gorm:create").Register("rentdesk:trace_before_create", t.before) },
		func() error { return cb.Query().Before("gorm:query").Register("rentdesk:trace_before_query", t.before) },
		func() error { return cb.Update().Before("gorm:update").Register("rentdesk:trace_before_update", t.before) },
		func() error { return cb.Delete().Before("gorm:delete").Register("rentdesk:trace_before_delete", t.before) },
		func() error { return cb.Row().Before("gorm:row").Register("rentdesk:trace_before_row", t.before) },
		func() error { return cb.Raw().Before("gorm:raw").Register("rentdesk:trace_before_raw", t.before) },
		func() error { return cb.Create().After("gorm:create").Register("rentdesk:trace_after_create", t.after) },
		func() error { return cb.Query().After("gorm:query").Register("rentdesk:trace_after_query", t.after) },
		func() error { return cb.Update().After("gorm:update").Register("rentdesk:trace_after_update", t.after) },
		func() error { return cb.Delete().After("gorm:delete").Register("rentdesk:trace_after_delete", t.after) },
		func() error { return cb.Row().After("gorm:row").Register("rentdesk:trace_after_row", t.after) },
		func() error { return cb.Raw().After("gorm:raw").Register("rentdesk:trace_after_raw", t.after) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (t *DBTracing) before(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = WithQueryStartTime(db.Statement.Context)
	}
}

func (t *DBTracing) after(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > t.config.SlowQueryThresh {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		span.AddEvent("slow_query_warning", trace.WithAttributes(
			attribute.Int64("threshold_ms", t.config.SlowQueryThresh.Milliseconds()),
		))
	}
}
