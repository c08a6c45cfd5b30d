package commands

import (
	"errors"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/guard"
)

var ErrFinalizeOrderCommandIsNotConstructed = errors.New(
	"FinalizeOrderCommand must be created via NewFinalizeOrderCommand constructor",
)

// FinalizeOrderCommand closes an order for billing.
type FinalizeOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.OrderID

	guard guard.ConstructorGuard
}

func NewFinalizeOrderCommand(orderID kernel.OrderID) (FinalizeOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return FinalizeOrderCommand{}, err
	}
	return FinalizeOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c FinalizeOrderCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeOrderCommandIsNotConstructed)
}

func (c FinalizeOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}
