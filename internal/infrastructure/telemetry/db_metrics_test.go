package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func TestNewDBMetrics_NilMeter(t *testing.T) {
	_, err := NewDBMetrics(nil, nil, 0, nil)
	assert.ErrorIs(t, err, ErrMeterNil)
}

func TestDBMetrics_PoolGauges(t *testing.T) {
	meter, reader := newTestMeter(t)
	db := openTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(4)

	m, err := NewDBMetrics(meter, sqlDB, time.Second, zap.NewNop())
	require.NoError(t, err)
	defer func() { assert.NoError(t, m.Stop()) }()

	rm := collect(t, reader)
	assert.Equal(t, int64(4), intValue(t, rm, "db_pool_connections_max"))
	assert.GreaterOrEqual(t, intValue(t, rm, "db_pool_connections", AttrDBState.String("open")), int64(1))
}

func TestDBMetrics_CountsStatements(t *testing.T) {
	meter, reader := newTestMeter(t)
	db := openTestDB(t)

	m, err := NewDBMetrics(meter, nil, time.Nanosecond, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.RegisterCallbacks(db))

	ctx := context.Background()
	require.NoError(t, db.WithContext(ctx).Create(&noteModel{Body: "x"}).Error)
	var notes []noteModel
	require.NoError(t, db.WithContext(ctx).Find(&notes).Error)

	rm := collect(t, reader)
	assert.Equal(t, int64(1), intValue(t, rm, "db_query_total", AttrDBOperation.String("INSERT")))
	assert.Equal(t, int64(1), intValue(t, rm, "db_query_total", AttrDBOperation.String("SELECT")))
	assert.Equal(t, int64(2), intValue(t, rm, "db_slow_query_total", AttrDBTable.String("note_models")))

	hist, ok := findMetric(rm, "db_query_duration_seconds")
	require.True(t, ok)
	assert.Len(t, hist.Data.(metricdata.Histogram[float64]).DataPoints, 2)
}

func TestDBMetrics_RecordQueryUnknownTable(t *testing.T) {
	meter, reader := newTestMeter(t)
	m, err := NewDBMetrics(meter, nil, time.Millisecond, nil)
	require.NoError(t, err)

	m.RecordQuery(context.Background(), "RAW", "", time.Second)
	m.RecordQuery(context.Background(), "RAW", "", time.Microsecond)

	rm := collect(t, reader)
	assert.Equal(t, int64(2), intValue(t, rm, "db_query_total"))
	assert.Equal(t, int64(1), intValue(t, rm, "db_slow_query_total", AttrDBTable.String("unknown")))
}
