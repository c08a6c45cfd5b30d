package order

import (
	"fmt"
	"strings"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/errs"
)

// MaxItemQuantity is the largest quantity accepted for a single item line.
const MaxItemQuantity = 1000

// LineItem is one menu item within a KOT: a name, how many were ordered and
// the unit price in minor units.
type LineItem struct {
	name     string
	quantity int
	price    kernel.Money
}

// NewLineItem validates and creates a LineItem.
//
// Rules:
//   - name must not be blank (surrounding whitespace is trimmed)
//   - quantity must be within [1, MaxItemQuantity]
//   - price must not be negative
func NewLineItem(name string, quantity int, price kernel.Money) (LineItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return LineItem{}, errs.NewValueIsRequiredError("item name")
	}
	if quantity < 1 || quantity > MaxItemQuantity {
		return LineItem{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxItemQuantity)
	}
	if price.IsNegative() {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%s is negative", price))
	}
	return LineItem{name: name, quantity: quantity, price: price}, nil
}

func (i LineItem) Name() string {
	return i.name
}

func (i LineItem) Quantity() int {
	return i.quantity
}

func (i LineItem) Price() kernel.Money {
	return i.price
}

// Amount returns price × quantity, or ValueIsOutOfRangeError when it does not fit.
func (i LineItem) Amount() (kernel.Money, error) {
	return i.price.Multiply(i.quantity)
}

// AddQuantity returns a copy with n more units at the same price.
func (i LineItem) AddQuantity(n int) LineItem {
	i.quantity += n
	return i
}
