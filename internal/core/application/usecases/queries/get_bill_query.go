package queries

import (
	"errors"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/guard"
)

var (
	ErrGetBillQueryIsNotConstructed = errors.New(
		"GetBillQuery must be created via NewGetBillQuery constructor",
	)
)

// GetBillQuery retrieves the consolidated bill of an order across all KOT rounds.
type GetBillQuery struct {
	orderID kernel.OrderID

	guard guard.ConstructorGuard
}

func NewGetBillQuery(orderID kernel.OrderID) (GetBillQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetBillQuery{}, err
	}
	return GetBillQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetBillQuery) Validate() error {
	return q.guard.Validate(ErrGetBillQueryIsNotConstructed)
}

func (q GetBillQuery) OrderID() kernel.OrderID {
	return q.orderID
}
