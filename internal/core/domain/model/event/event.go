// Package event defines the order change events recorded in the outbox and
// pushed to dashboards.
package event

import (
	"fmt"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/errs"

	"github.com/google/uuid"
)

// Name identifies the kind of change.
type Name string

const (
	NewOrder     Name = "newOrder"
	OrderUpdated Name = "orderUpdated"
	OrderDeleted Name = "orderDeleted"
)

// Validate rejects names outside the three order events.
func (n Name) Validate() error {
	switch n {
	case NewOrder, OrderUpdated, OrderDeleted:
		return nil
	case "":
		return errs.NewValueIsRequiredError("event name")
	default:
		return errs.NewValueIsInvalidErrorWithCause("event name", fmt.Errorf("%q is not an order event", string(n)))
	}
}

// Event is one entry of the durable event log.
//
// Seq is assigned by storage when the event is appended and is zero until then.
// Payload is the JSON document observers receive: the full order, or {"id": ...}
// for a deletion.
type Event struct {
	ID          uuid.UUID
	Seq         int64
	Name        Name
	OrderID     kernel.OrderID
	Payload     []byte
	OccurredAt  time.Time
	PublishedAt *time.Time
}

// New creates an unpublished event with a fresh identifier.
func New(name Name, orderID kernel.OrderID, payload []byte, occurredAt time.Time) (Event, error) {
	if err := name.Validate(); err != nil {
		return Event{}, err
	}
	if err := orderID.Validate(); err != nil {
		return Event{}, err
	}
	if len(payload) == 0 {
		return Event{}, errs.NewValueIsRequiredError("event payload")
	}

	return Event{
		ID:         uuid.New(),
		Name:       name,
		OrderID:    orderID,
		Payload:    payload,
		OccurredAt: occurredAt,
	}, nil
}

// IsPublished reports whether the relay has delivered the event to the broker.
func (e Event) IsPublished() bool {
	return e.PublishedAt != nil
}
