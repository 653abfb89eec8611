package shared

import "context"

// EventHandler handles domain events
type EventHandler interface {
	// Handle processes a domain event
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes returns the event types this handler is interested in.
	// An empty slice means the handler receives all events.
	EventTypes() []string
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber subscribes to domain events
type EventSubscriber interface {
	// Subscribe registers a handler; with no event types it receives everything
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus combines publisher and subscriber capabilities
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// EventSource is implemented by aggregates that buffer domain events
type EventSource interface {
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// PublishPending drains the pending events of each source through publisher.
// A nil publisher discards the events.
func PublishPending(ctx context.Context, publisher EventPublisher, sources ...EventSource) error {
	var events []DomainEvent
	for _, src := range sources {
		if src == nil {
			continue
		}
		events = append(events, src.GetDomainEvents()...)
		src.ClearDomainEvents()
	}
	if publisher == nil || len(events) == 0 {
		return nil
	}
	return publisher.Publish(ctx, events...)
}
