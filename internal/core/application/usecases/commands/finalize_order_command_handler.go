package commands

import (
	"context"
	"time"

	"cafe/internal/core/domain/model/order"
	"cafe/internal/core/ports"
)

// FinalizeOrderCommandHandler moves an order to Finalized.
type FinalizeOrderCommandHandler struct {
	mutator orderMutator
}

func NewFinalizeOrderCommandHandler(
	uowFactory OrderUoWFactory,
	clock ports.Clock,
	notifier ports.EventNotifier,
) FinalizeOrderCommandHandler {
	return FinalizeOrderCommandHandler{
		mutator: orderMutator{uowFactory: uowFactory, clock: clock, notifier: notifier},
	}
}

func (h *FinalizeOrderCommandHandler) Handle(ctx context.Context, cmd FinalizeOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.mutator.apply(ctx, cmd.OrderID(), func(o *order.Order, now time.Time) error {
		return o.Finalize(now)
	})
}
