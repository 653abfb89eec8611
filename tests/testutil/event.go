package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/require"
)

// EventRecorder captures domain events. It can stand in for the bus as a
// service's publisher, or be subscribed to a real bus as a handler.
type EventRecorder struct {
	mu     sync.Mutex
	types  []string
	events []shared.DomainEvent
	err    error
}

// NewEventRecorder records events of the given types, or all events when
// none are given.
func NewEventRecorder(eventTypes ...string) *EventRecorder {
	return &EventRecorder{types: eventTypes}
}

// Publish implements shared.EventPublisher
func (r *EventRecorder) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, e := range events {
		if err := r.Handle(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// Handle implements shared.EventHandler
func (r *EventRecorder) Handle(_ context.Context, event shared.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.wants(event.EventType()) {
		return nil
	}
	r.events = append(r.events, event)
	return r.err
}

func (r *EventRecorder) wants(eventType string) bool {
	if len(r.types) == 0 {
		return true
	}
	for _, t := range r.types {
		if t == eventType {
			return true
		}
	}
	return false
}

func (r *EventRecorder) EventTypes() []string { return r.types }

// Events returns a copy of what has been recorded so far
func (r *EventRecorder) Events() []shared.DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]shared.DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Types lists the recorded event types in arrival order
func (r *EventRecorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.EventType())
	}
	return out
}

// For returns the recorded events about one aggregate
func (r *EventRecorder) For(aggregateID uuid.UUID) []shared.DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []shared.DomainEvent
	for _, e := range r.events {
		if e.AggregateID() == aggregateID {
			out = append(out, e)
		}
	}
	return out
}

func (r *EventRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// FailWith makes later deliveries return err after recording
func (r *EventRecorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Reset drops recorded events and any configured failure
func (r *EventRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	r.err = nil
}

// WaitForEvents fails the test unless r holds at least n events before timeout
func WaitForEvents(t *testing.T, r *EventRecorder, n int, timeout time.Duration) {
	t.Helper()
	require.Eventually(t, func() bool { return r.Count() >= n }, timeout, 5*time.Millisecond,
		"expected %d events, got %v", n, r.Types())
}

// UnitEvent builds a bare event about a unit of businessID
func UnitEvent(eventType string, businessID uuid.UUID) shared.DomainEvent {
	e := shared.NewBaseDomainEvent(eventType, "Unit", uuid.New(), businessID)
	return &e
}
