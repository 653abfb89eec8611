package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Unit", uuid.New(), uuid.New()),
	}
}

type testHandler struct {
	eventTypes []string
	mu         sync.Mutex
	handled    []shared.DomainEvent
	err        error
	panicWith  any
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{eventTypes: eventTypes}
}

func (h *testHandler) Handle(_ context.Context, ev shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, ev)
	if h.panicWith != nil {
		panic(h.panicWith)
	}
	return h.err
}

func (h *testHandler) EventTypes() []string { return h.eventTypes }

func (h *testHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func newBus(t *testing.T, opts ...Option) *InMemoryEventBus {
	t.Helper()
	bus, err := NewInMemoryEventBus(zap.NewNop(), opts...)
	require.NoError(t, err)
	return bus
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to subscribed types only", func(t *testing.T) {
		bus := newBus(t)
		occupied := newTestHandler()
		vacated := newTestHandler()
		bus.Subscribe(occupied, "UnitOccupied")
		bus.Subscribe(vacated, "UnitVacated")

		ev := newTestEvent("UnitOccupied")
		require.NoError(t, bus.Publish(ctx, ev, newTestEvent("UnitOccupied")))

		assert.Equal(t, 2, occupied.count())
		assert.Same(t, ev, occupied.handled[0])
		assert.Zero(t, vacated.count())
	})

	t.Run("uses the handler's own types when none given", func(t *testing.T) {
		bus := newBus(t)
		handler := newTestHandler("PaymentRecorded")
		bus.Subscribe(handler)

		require.NoError(t, bus.Publish(ctx, newTestEvent("PaymentRecorded"), newTestEvent("PaymentDeleted")))
		assert.Equal(t, 1, handler.count())
	})

	t.Run("handler with no types receives everything", func(t *testing.T) {
		bus := newBus(t)
		all := newTestHandler()
		bus.Subscribe(all)

		require.NoError(t, bus.Publish(ctx, newTestEvent("TenantCreated"), newTestEvent("LeaseExpired")))
		assert.Equal(t, 2, all.count())
	})

	t.Run("failures are logged and do not stop delivery", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		bus, err := NewInMemoryEventBus(zap.New(core))
		require.NoError(t, err)

		failing := newTestHandler()
		failing.err = errors.New("cache unavailable")
		panicking := newTestHandler()
		panicking.panicWith = "boom"
		healthy := newTestHandler()
		bus.Subscribe(failing, "UnitVacated")
		bus.Subscribe(panicking, "UnitVacated")
		bus.Subscribe(healthy, "UnitVacated")

		require.NoError(t, bus.Publish(ctx, newTestEvent("UnitVacated")))

		assert.Equal(t, 1, healthy.count())
		entries := logs.FilterMessage("Event handler failed").All()
		require.Len(t, entries, 2)
		assert.Contains(t, entries[1].ContextMap()["error"], "handler panicked: boom")
	})
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := newBus(t)
	handler := newTestHandler()
	bus.Subscribe(handler, "TenantStatusChanged")

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("TenantStatusChanged")))
	bus.Unsubscribe(handler)
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("TenantStatusChanged")))

	assert.Equal(t, 1, handler.count())
}

func TestInMemoryEventBus_StartStop(t *testing.T) {
	bus := newBus(t)
	assert.False(t, bus.IsRunning())
	require.NoError(t, bus.Start(context.Background()))
	assert.True(t, bus.IsRunning())
	require.NoError(t, bus.Stop(context.Background()))
	assert.False(t, bus.IsRunning())
}

func TestInMemoryEventBus_WithMeter(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	bus := newBus(t, WithMeter(provider.Meter("test")))
	ok := newTestHandler()
	failing := newTestHandler()
	failing.err = errors.New("nope")
	bus.Subscribe(ok, "UnitCreated")
	bus.Subscribe(failing, "UnitCreated")

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("UnitCreated")))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)

	sum := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
	outcomes := map[string]int64{}
	for _, dp := range sum.DataPoints {
		v, _ := dp.Attributes.Value("outcome")
		outcomes[v.AsString()] += dp.Value
	}
	assert.Equal(t, map[string]int64{"ok": 1, "failed": 1}, outcomes)
}
