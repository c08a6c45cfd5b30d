package commands

import (
	"context"
	"fmt"

	"cafe/internal/core/ports"
)

// RelayOutboxCommandHandler moves unpublished outbox events to the broker in
// sequence order. It stops at the first publish failure so that later events are
// never delivered ahead of an earlier one; the remaining events are picked up by
// the next pass. Delivery is at least once: consumers deduplicate by event id.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	clock      ports.Clock
}

func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	clock ports.Clock,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle returns the number of events published in this pass.
func (h *RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	pending, err := outbox.ListUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	published := 0
	var publishErr error
	for _, e := range pending {
		if publishErr = h.publisher.Publish(ctx, e); publishErr != nil {
			publishErr = fmt.Errorf("publish event %d: %w", e.Seq, publishErr)
			break
		}
		if err = outbox.MarkPublished(ctx, e.ID, h.clock.Now()); err != nil {
			return 0, err
		}
		published++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return published, publishErr
}
