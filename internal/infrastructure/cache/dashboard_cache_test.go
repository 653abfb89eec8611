package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/expense"
	"github.com/rentdesk/backend/internal/domain/property"
	"github.com/rentdesk/backend/internal/domain/rent"
	"github.com/rentdesk/backend/internal/domain/report"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryDashboardCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	c := NewInMemoryDashboardCache()
	c.now = func() time.Time { return now }

	businessID := uuid.New()
	summary := &report.DashboardSummary{
		BusinessID:         businessID,
		TotalUnits:         12,
		OccupiedUnits:      9,
		OutstandingBalance: decimal.NewFromInt(45000),
	}

	t.Run("miss before set", func(t *testing.T) {
		got, err := c.Get(ctx, businessID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("hit returns a copy", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, summary, time.Minute))

		got, err := c.Get(ctx, businessID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 9, got.OccupiedUnits)

		got.OccupiedUnits = 0
		again, _ := c.Get(ctx, businessID)
		assert.Equal(t, 9, again.OccupiedUnits)
	})

	t.Run("other business misses", func(t *testing.T) {
		got, err := c.Get(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("expires after ttl", func(t *testing.T) {
		now = now.Add(2 * time.Minute)
		got, err := c.Get(ctx, businessID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("invalidate drops entry", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, summary, time.Minute))
		require.NoError(t, c.Invalidate(ctx, businessID))
		got, err := c.Get(ctx, businessID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	hits, misses := c.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(4), misses)
}

func TestRedisDashboardCache_NilClient(t *testing.T) {
	ctx := context.Background()
	c := NewRedisDashboardCacheWithClient(nil, "")
	businessID := uuid.New()

	require.NoError(t, c.Set(ctx, &report.DashboardSummary{BusinessID: businessID}, time.Minute))
	got, err := c.Get(ctx, businessID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.Invalidate(ctx, businessID))
	assert.NoError(t, c.Close())
	assert.Equal(t, defaultDashboardKeyPrefix+businessID.String(), c.key(businessID))
}

func TestDashboardCacheFactory_FallsBackWithoutRedis(t *testing.T) {
	c, err := NewDashboardCacheFactory(RedisConfig{}).Create()
	require.NoError(t, err)
	assert.IsType(t, &InMemoryDashboardCache{}, c)

	_, err = NewDashboardCacheFactory(RedisConfig{}, WithInMemoryFallback(false)).Create()
	assert.Error(t, err)
}

type testEvent struct {
	shared.BaseDomainEvent
}

func TestDashboardInvalidationHandler(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryDashboardCache()
	h := NewDashboardInvalidationHandler(c, nil)

	businessID := uuid.New()
	otherID := uuid.New()
	require.NoError(t, c.Set(ctx, &report.DashboardSummary{BusinessID: businessID}, time.Hour))
	require.NoError(t, c.Set(ctx, &report.DashboardSummary{BusinessID: otherID}, time.Hour))

	assert.Contains(t, h.EventTypes(), property.EventTypeUnitOccupied)
	assert.Contains(t, h.EventTypes(), rent.EventTypePaymentConfirmed)
	assert.Contains(t, h.EventTypes(), expense.EventTypeExpenseRecorded)

	event := &testEvent{BaseDomainEvent: shared.NewBaseDomainEvent(rent.EventTypePaymentConfirmed, "RentPayment", uuid.New(), businessID)}
	require.NoError(t, h.Handle(ctx, event))

	got, _ := c.Get(ctx, businessID)
	assert.Nil(t, got)
	kept, _ := c.Get(ctx, otherID)
	assert.NotNil(t, kept)

	t.Run("event without business is ignored", func(t *testing.T) {
		e := &testEvent{BaseDomainEvent: shared.NewBaseDomainEvent(rent.EventTypePaymentConfirmed, "RentPayment", uuid.New(), uuid.Nil)}
		assert.NoError(t, h.Handle(ctx, e))
	})
}
