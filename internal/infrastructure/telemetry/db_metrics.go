package telemetry

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBMetrics exports connection pool state and counts statements by operation
type DBMetrics struct {
	sqlDB         *sql.DB
	logger        *zap.Logger
	slowThreshold time.Duration

	queryTotal     *Counter
	slowQueryTotal *Counter
	queryDuration  metric.Float64Histogram
	registration   metric.Registration
}

// NewDBMetrics registers pool gauges read from sqlDB on every collection
func NewDBMetrics(meter metric.Meter, sqlDB *sql.DB, slowThreshold time.Duration, logger *zap.Logger) (*DBMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if slowThreshold <= 0 {
		slowThreshold = 200 * time.Millisecond
	}

	m := &DBMetrics{sqlDB: sqlDB, logger: logger, slowThreshold: slowThreshold}

	var err error
	if m.queryTotal, err = NewCounter(meter, "db_query_total", "Database statements by operation", "{query}"); err != nil {
		return nil, err
	}
	if m.slowQueryTotal, err = NewCounter(meter, "db_slow_query_total", "Statements slower than the threshold", "{query}"); err != nil {
		return nil, err
	}
	if m.queryDuration, err = meter.Float64Histogram("db_query_duration_seconds",
		metric.WithDescription("Database statement latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5),
	); err != nil {
		return nil, fmt.Errorf("failed to create histogram db_query_duration_seconds: %w", err)
	}

	connections, err := meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Connections in the pool by state"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create gauge db_pool_connections: %w", err)
	}
	maxOpen, err := meter.Int64ObservableGauge("db_pool_connections_max",
		metric.WithDescription("Maximum open connections"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create gauge db_pool_connections_max: %w", err)
	}

	if sqlDB != nil {
		m.registration, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
			stats := m.sqlDB.Stats()
			o.ObserveInt64(maxOpen, int64(stats.MaxOpenConnections))
			o.ObserveInt64(connections, int64(stats.Idle), metric.WithAttributes(AttrDBState.String("idle")))
			o.ObserveInt64(connections, int64(stats.InUse), metric.WithAttributes(AttrDBState.String("in_use")))
			o.ObserveInt64(connections, int64(stats.OpenConnections), metric.WithAttributes(AttrDBState.String("open")))
			return nil
		}, connections, maxOpen)
		if err != nil {
			return nil, fmt.Errorf("failed to register pool callback: %w", err)
		}
	}
	return m, nil
}

// RecordQuery counts one statement
func (m *DBMetrics) RecordQuery(ctx context.Context, operation, table string, duration time.Duration) {
	op := AttrDBOperation.String(operation)
	m.queryTotal.Inc(ctx, op)
	m.queryDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(op))
	if duration > m.slowThreshold {
		if table == "" {
			table = "unknown"
		}
		m.slowQueryTotal.Inc(ctx, AttrDBTable.String(table))
	}
}

// RegisterCallbacks times every statement on db
func (m *DBMetrics) RegisterCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	record := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			ctx := tx.Statement.Context
			if ctx == nil {
				return
			}
			start, ok := ctx.Value(dbMetricsStartKey{}).(time.Time)
			if !ok {
				return
			}
			m.RecordQuery(ctx, operation, tx.Statement.Table, time.Since(start))
		}
	}
	steps := []func() error{
		func() error { return cb.Create().Before("gorm:create").Register("rentdesk:metrics_before_create", m.start) },
		func() error { return cb.Query().Before("gorm:query").Register("rentdesk:metrics_before_query", m.start) },
		func() error { return cb.Update().Before("gorm:update").Register("rentdesk:metrics_before_update", m.start) },
		func() error { return cb.Delete().Before("gorm:delete").Register("rentdesk:metrics_before_delete", m.start) },
		func() error { return cb.Raw().Before("gorm:raw").Register("rentdesk:metrics_before_raw", m.start) },
		func() error { return cb.Create().After("gorm:create").Register("rentdesk:metrics_after_create", record("INSERT")) },
		func() error { return cb.Query().After("gorm:query").Register("rentdesk:metrics_after_query", record("SELECT")) },
		func() error { return cb.Update().After("gorm:update").Register("rentdesk:metrics_after_update", record("UPDATE")) },
		func() error { return cb.Delete().After("gorm:delete").Register("rentdesk:metrics_after_delete", record("DELETE")) },
		func() error { return cb.Raw().After("gorm:raw").Register("rentdesk:metrics_after_raw", record("RAW")) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	m.logger.Info("Database metrics enabled", zap.Duration("slow_query_threshold", m.slowThreshold))
	return nil
}

type dbMetricsStartKey struct{}

func (m *DBMetrics) start(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	db.Statement.Context = context.WithValue(ctx, dbMetricsStartKey{}, time.Now())
}

// Stop unregisters the pool callback
func (m *DBMetrics) Stop() error {
	if m.registration == nil {
		return nil
	}
	return m.registration.Unregister()
}
