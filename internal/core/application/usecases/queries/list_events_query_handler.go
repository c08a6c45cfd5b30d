package queries

import (
	"context"
	"encoding/json"
	"time"

	"cafe/internal/core/application/views"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListEventsQueryHandler reads the event log directly from the outbox table.
//
// Example:
//
//	handler := NewListEventsQueryHandler(db)
//	query, _ := NewListEventsQuery(41, 50)
//
//	events, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d events after seq 41\n", len(events))
type ListEventsQueryHandler struct {
	db *gorm.DB
}

func NewListEventsQueryHandler(db *gorm.DB) ListEventsQueryHandler {
	return ListEventsQueryHandler{db: db}
}

// Handle returns events in ascending sequence order, published or not.
func (h ListEventsQueryHandler) Handle(ctx context.Context, query ListEventsQuery) ([]views.EventView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	events := make([]views.EventView, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			seq,
			id,
			name,
			order_id,
			payload,
			occurred_at
		FROM outbox_events
		WHERE seq > ?
		ORDER BY seq
		LIMIT ?
	`, query.After(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e          views.EventView
			id         uuid.UUID
			payload    []byte
			occurredAt time.Time
		)

		if err = rows.Scan(&e.Seq, &id, &e.Name, &e.OrderID, &payload, &occurredAt); err != nil {
			return nil, err
		}

		e.ID = id.String()
		e.Payload = json.RawMessage(payload)
		e.OccurredAt = occurredAt.UTC()
		events = append(events, e)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
