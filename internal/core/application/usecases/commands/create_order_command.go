package commands

import (
	"errors"
	"strings"

	"cafe/internal/core/domain/services"
	"cafe/internal/pkg/errs"
	"cafe/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	// ErrInvalidOrderData is the cause reported when the table or the items are missing.
	ErrInvalidOrderData = errors.New("Invalid order data")
)

// CreateOrderCommand represents a request to open an order for a table with its first KOT.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("5", []services.OrderedItem{{Name: "Tea", Quantity: 2, Price: "50"}})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	o, err := handler.Handle(ctx, cmd)
//	fmt.Printf("Order %s opened", o.ID())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	tableNumber string
	items       []services.OrderedItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates that a table number and at least one item are present.
// Item contents are validated when the KOT is built.
func NewCreateOrderCommand(tableNumber string, items []services.OrderedItem) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTableNumber(tableNumber),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) TableNumber() string {
	return c.tableNumber
}

func (c CreateOrderCommand) Items() []services.OrderedItem {
	return append([]services.OrderedItem(nil), c.items...)
}

func (c *CreateOrderCommand) setTableNumber(tableNumber string) error {
	tableNumber = strings.TrimSpace(tableNumber)
	if tableNumber == "" {
		return errs.NewValueIsRequiredErrorWithCause("tableNumber", ErrInvalidOrderData)
	}
	c.tableNumber = tableNumber
	return nil
}

func (c *CreateOrderCommand) setItems(items []services.OrderedItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", ErrInvalidOrderData)
	}
	c.items = append([]services.OrderedItem(nil), items...)
	return nil
}
