package commands

import (
	"context"
	"time"

	"cafe/internal/core/domain/model/order"
	"cafe/internal/core/ports"
)

// UpdateOrderStatusCommandHandler applies a generic status transition.
// The transition to Paid stamps paidAt.
type UpdateOrderStatusCommandHandler struct {
	mutator orderMutator
}

func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	clock ports.Clock,
	notifier ports.EventNotifier,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		mutator: orderMutator{uowFactory: uowFactory, clock: clock, notifier: notifier},
	}
}

func (h *UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	target := cmd.Status()
	return h.mutator.apply(ctx, cmd.OrderID(), func(o *order.Order, now time.Time) error {
		return o.ChangeStatus(target, now)
	})
}
