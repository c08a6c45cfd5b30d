package commands

import (
	"errors"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/services"
	"cafe/internal/pkg/errs"
	"cafe/internal/pkg/guard"
)

var (
	ErrAddKotCommandIsNotConstructed = errors.New(
		"AddKotCommand must be created via NewAddKotCommand constructor",
	)
	// ErrNoItemsSupplied is the cause reported when a KOT has no items.
	ErrNoItemsSupplied = errors.New("No items supplied")
)

// AddKotCommand appends a new round of items to an open order.
type AddKotCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID
	items   []services.OrderedItem

	guard guard.ConstructorGuard
}

func NewAddKotCommand(orderID kernel.OrderID, items []services.OrderedItem) (AddKotCommand, error) {
	cmd := AddKotCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		validateItemsPresent(items),
	); err != nil {
		return AddKotCommand{}, err
	}

	cmd.orderID = orderID
	cmd.items = append([]services.OrderedItem(nil), items...)
	return cmd, nil
}

func (c AddKotCommand) Validate() error {
	return c.guard.Validate(ErrAddKotCommandIsNotConstructed)
}

func (c AddKotCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c AddKotCommand) Items() []services.OrderedItem {
	return append([]services.OrderedItem(nil), c.items...)
}

func validateItemsPresent(items []services.OrderedItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", ErrNoItemsSupplied)
	}
	return nil
}
