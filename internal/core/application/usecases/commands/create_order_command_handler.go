package commands

import (
	"context"
	"time"

	"cafe/internal/core/application/sequence"
	"cafe/internal/core/application/views"
	"cafe/internal/core/domain/model/event"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/core/domain/services"
	"cafe/internal/core/ports"
)

// CreateOrderCommandHandler opens a new order.
//
// The KOT is priced before the transaction starts. Inside the transaction the
// handler takes the next identifier for the business day, stores the order and
// appends a newOrder event. After commit the event is announced to live observers.
type CreateOrderCommandHandler struct {
	uowFactory CreateOrderUoWFactory
	builder    services.KotBuilder
	clock      ports.Clock
	notifier   ports.EventNotifier
	location   *time.Location
}

// NewCreateOrderCommandHandler creates the handler. location decides the business
// day used for order identifiers.
func NewCreateOrderCommandHandler(
	uowFactory CreateOrderUoWFactory,
	clock ports.Clock,
	notifier ports.EventNotifier,
	location *time.Location,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		builder:    services.NewKotBuilder(),
		clock:      clock,
		notifier:   notifier,
		location:   location,
	}
}

// Handle processes the order creation command and returns the stored order.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	kot, err := h.builder.BuildKot(cmd.Items(), now)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	id, err := sequence.NewGenerator(uow.CounterRepository(), h.location).NextOrderID(ctx, now)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(id, cmd.TableNumber(), kot, now)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	payload, err := views.OrderPayload(o)
	if err != nil {
		return nil, err
	}
	if err = appendEvent(ctx, uow.OutboxRepository(), event.NewOrder, o, payload, now); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Emit(event.NewOrder, payload)
	return o, nil
}
