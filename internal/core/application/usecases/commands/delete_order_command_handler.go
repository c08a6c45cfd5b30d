package commands

import (
	"context"

	"cafe/internal/core/application/views"
	"cafe/internal/core/domain/model/event"
	"cafe/internal/core/ports"
)

// DeleteOrderCommandHandler removes an order and records an orderDeleted event
// whose payload is {"id": ...}. Deletion is an administrative override and is
// allowed from every status.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
	notifier   ports.EventNotifier
}

func NewDeleteOrderCommandHandler(
	uowFactory OrderUoWFactory,
	clock ports.Clock,
	notifier ports.EventNotifier,
) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
	}
}

func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	payload, err := views.DeletedPayload(cmd.OrderID())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Delete(ctx, cmd.OrderID()); err != nil {
		return err
	}

	e, err := event.New(event.OrderDeleted, cmd.OrderID(), payload, h.clock.Now())
	if err != nil {
		return err
	}
	if _, err = uow.OutboxRepository().Append(ctx, e); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Emit(event.OrderDeleted, payload)
	return nil
}
