package services

import (
	"errors"
	"fmt"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/errs"
)

// OrderedItem is an item as submitted by a client. Price is a decimal amount in
// major currency units ("50", "12.5") and is converted to minor units exactly once,
// by BuildKot.
type OrderedItem struct {
	Name     string
	Quantity int
	Price    string
}

// KotBuilder prices a round of ordered items.
//
// Example usage:
//
//	builder := services.NewKotBuilder()
//	kot, err := builder.BuildKot([]services.OrderedItem{{Name: "Tea", Quantity: 2, Price: "50"}}, now)
//	// kot.Subtotal() 100.00, kot.GST() 5.00, kot.TotalAmount() 105.00
type KotBuilder struct{}

func NewKotBuilder() KotBuilder {
	return KotBuilder{}
}

// BuildKot validates every item and returns the priced KOT line.
//
// Returns:
//   - ValueIsRequiredError if items is empty
//   - the joined validation errors of every malformed item, each prefixed with its index
func (KotBuilder) BuildKot(items []OrderedItem, createdAt time.Time) (order.KotLine, error) {
	if len(items) == 0 {
		return order.KotLine{}, errs.NewValueIsRequiredErrorWithCause("items", errors.New("No items supplied"))
	}

	lineItems := make([]order.LineItem, 0, len(items))
	var problems []error
	for i, item := range items {
		li, err := buildLineItem(item)
		if err != nil {
			problems = append(problems, fmt.Errorf("items[%d]: %w", i, err))
			continue
		}
		lineItems = append(lineItems, li)
	}
	if len(problems) > 0 {
		return order.KotLine{}, errors.Join(problems...)
	}

	return order.NewKotLine(lineItems, createdAt)
}

func buildLineItem(item OrderedItem) (order.LineItem, error) {
	price, err := kernel.ParseMoney(item.Price)
	if err != nil {
		return order.LineItem{}, err
	}
	return order.NewLineItem(item.Name, item.Quantity, price)
}
