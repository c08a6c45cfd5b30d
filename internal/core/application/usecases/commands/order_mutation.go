package commands

import (
	"context"
	"errors"
	"time"

	"cafe/internal/core/application/views"
	"cafe/internal/core/domain/model/event"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/core/ports"
	"cafe/internal/pkg/errs"
)

// conflictRetries is how many times a mutation is re-applied to a freshly loaded
// order after losing an optimistic concurrency race.
const conflictRetries = 3

// orderMutator changes a single order loaded inside a transaction.
type orderMutator struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
	notifier   ports.EventNotifier
}

// apply loads the order, runs mutate, stores it and appends an orderUpdated event.
// A VersionConflictError restarts the whole transaction, up to conflictRetries times.
// Any other failure, including a domain rule violation, is returned as is.
func (m orderMutator) apply(
	ctx context.Context,
	id kernel.OrderID,
	mutate func(o *order.Order, now time.Time) error,
) (*order.Order, error) {
	for attempt := 0; ; attempt++ {
		o, payload, err := m.applyOnce(ctx, id, mutate)
		if err == nil {
			m.notifier.Emit(event.OrderUpdated, payload)
			return o, nil
		}
		if !errors.Is(err, errs.ErrVersionConflict) || attempt >= conflictRetries {
			return nil, err
		}
	}
}

func (m orderMutator) applyOnce(
	ctx context.Context,
	id kernel.OrderID,
	mutate func(o *order.Order, now time.Time) error,
) (*order.Order, []byte, error) {
	uow := m.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	now := m.clock.Now()
	if err = mutate(o, now); err != nil {
		return nil, nil, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, nil, err
	}

	payload, err := views.OrderPayload(o)
	if err != nil {
		return nil, nil, err
	}
	if err = appendEvent(ctx, uow.OutboxRepository(), event.OrderUpdated, o, payload, now); err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return o, payload, nil
}

func appendEvent(
	ctx context.Context,
	outbox ports.OutboxRepository,
	name event.Name,
	o *order.Order,
	payload []byte,
	now time.Time,
) error {
	e, err := event.New(name, o.ID(), payload, now)
	if err != nil {
		return err
	}
	_, err = outbox.Append(ctx, e)
	return err
}
