package ports

import (
	"context"

	"cafe/internal/core/domain/model/event"
)

// EventNotifier broadcasts an order change to connected observers.
//
// Emit is fire-and-forget: it must not block the caller and has no error result.
// An observer that is not connected misses the event and catches up by re-reading.
type EventNotifier interface {
	Emit(name event.Name, payload []byte)
}

// EventPublisher hands an outbox event to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, e event.Event) error
}
