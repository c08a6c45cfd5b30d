package commands

import (
	"context"
	"time"

	"cafe/internal/core/domain/model/order"
	"cafe/internal/core/domain/services"
	"cafe/internal/core/ports"
)

// AddKotCommandHandler appends a priced KOT line to a Confirmed order.
//
// The order is left untouched when it is not Confirmed ("Order is not open for KOTs (<status>)")
// or when any item is malformed.
type AddKotCommandHandler struct {
	mutator orderMutator
	builder services.KotBuilder
}

func NewAddKotCommandHandler(
	uowFactory OrderUoWFactory,
	clock ports.Clock,
	notifier ports.EventNotifier,
) AddKotCommandHandler {
	return AddKotCommandHandler{
		mutator: orderMutator{uowFactory: uowFactory, clock: clock, notifier: notifier},
		builder: services.NewKotBuilder(),
	}
}

func (h *AddKotCommandHandler) Handle(ctx context.Context, cmd AddKotCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	items := cmd.Items()
	return h.mutator.apply(ctx, cmd.OrderID(), func(o *order.Order, now time.Time) error {
		kot, err := h.builder.BuildKot(items, now)
		if err != nil {
			return err
		}
		return o.AddKot(kot, now)
	})
}
