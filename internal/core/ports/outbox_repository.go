package ports

import (
	"context"
	"time"

	"cafe/internal/core/domain/model/event"

	"github.com/google/uuid"
)

// OutboxRepository is the durable log of order events.
type OutboxRepository interface {
	// Append stores the event and returns it with its assigned Seq.
	// Committed events become visible in Seq order: once an event is readable,
	// every event with a lower Seq is readable too.
	Append(ctx context.Context, e event.Event) (event.Event, error)

	// ListAfter returns up to limit events with Seq greater than after, in Seq order.
	ListAfter(ctx context.Context, after int64, limit int) ([]event.Event, error)

	// ListUnpublished returns up to limit events not yet delivered to the broker, in Seq order.
	ListUnpublished(ctx context.Context, limit int) ([]event.Event, error)

	// MarkPublished records the delivery time of an event.
	MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error
}
