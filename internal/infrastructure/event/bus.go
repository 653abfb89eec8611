// Package event dispatches domain events to in-process handlers after the
// transaction that raised them has committed.
package event

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/infrastructure/logger"
	"github.com/rentdesk/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// InMemoryEventBus delivers events synchronously to subscribed handlers.
// Handler failures are logged and never reach the publisher: the state
// change that raised the event is already committed.
type InMemoryEventBus struct {
	registry   *HandlerRegistry
	logger     *zap.Logger
	running    atomic.Bool
	dispatched *telemetry.Counter
}

// Option configures an InMemoryEventBus
type Option func(*InMemoryEventBus) error

// WithMeter counts deliveries by event type and outcome
func WithMeter(meter metric.Meter) Option {
	return func(b *InMemoryEventBus) error {
		c, err := telemetry.NewCounter(meter, "rentdesk_events_dispatched_total",
			"Domain event deliveries to handlers", "{deliveries}")
		if err != nil {
			return err
		}
		b.dispatched = c
		return nil
	}
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(log *zap.Logger, opts ...Option) (*InMemoryEventBus, error) {
	if log == nil {
		log = zap.NewNop()
	}
	b := &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   log,
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Publish delivers each event to its handlers in subscription order
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, ev := range events {
		for _, handler := range b.registry.Handlers(ev.EventType()) {
			outcome := "ok"
			if err := b.dispatch(ctx, handler, ev); err != nil {
				outcome = "failed"
				logger.L(ctx, b.logger).Error("Event handler failed",
					zap.String("event_type", ev.EventType()),
					zap.String("event_id", ev.EventID().String()),
					zap.String("aggregate_id", ev.AggregateID().String()),
					zap.Error(err),
				)
			}
			if b.dispatched != nil {
				b.dispatched.Inc(ctx,
					telemetry.AttrEventType.String(ev.EventType()),
					attribute.String("outcome", outcome),
				)
			}
		}
	}
	return nil
}

// Subscribe registers a handler for eventTypes, or for handler.EventTypes()
// when none are given. A handler with no types at all receives every event.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("Event handler subscribed", zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes a handler from every event type
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
}

// Start marks the bus running
func (b *InMemoryEventBus) Start(context.Context) error {
	b.running.Store(true)
	b.logger.Info("Event bus started")
	return nil
}

// Stop marks the bus stopped. Delivery is synchronous, so nothing is in flight.
func (b *InMemoryEventBus) Stop(context.Context) error {
	b.running.Store(false)
	b.logger.Info("Event bus stopped")
	return nil
}

// IsRunning reports whether Start was called without a later Stop
func (b *InMemoryEventBus) IsRunning() bool {
	return b.running.Load()
}

func (b *InMemoryEventBus) dispatch(ctx context.Context, handler shared.EventHandler, ev shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return handler.Handle(ctx, ev)
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
