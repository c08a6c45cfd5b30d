package order

import (
	"fmt"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/errs"
)

// GSTPercent is the tax rate applied to each KOT subtotal.
const GSTPercent = 5

// KotLine is one round of ordering for a table. Its totals are derived from
// its items when it is built and never change afterwards.
type KotLine struct {
	items       []LineItem
	subtotal    kernel.Money
	gst         kernel.Money
	totalAmount kernel.Money
	createdAt   time.Time
}

// NewKotLine prices a round of items. Totals that do not fit in the money range
// are rejected with ValueIsOutOfRangeError.
//
//	subtotal    = Σ price × quantity
//	gst         = round(subtotal × 5%)
//	totalAmount = subtotal + gst
func NewKotLine(items []LineItem, createdAt time.Time) (KotLine, error) {
	if len(items) == 0 {
		return KotLine{}, errs.NewValueIsRequiredError("items")
	}
	if createdAt.IsZero() {
		return KotLine{}, errs.NewValueIsRequiredError("kot createdAt")
	}

	var subtotal kernel.Money
	for _, item := range items {
		amount, err := item.Amount()
		if err != nil {
			return KotLine{}, err
		}
		if subtotal, err = subtotal.Add(amount); err != nil {
			return KotLine{}, err
		}
	}

	gst, err := subtotal.Percent(GSTPercent)
	if err != nil {
		return KotLine{}, err
	}
	total, err := subtotal.Add(gst)
	if err != nil {
		return KotLine{}, err
	}

	return KotLine{
		items:       append([]LineItem(nil), items...),
		subtotal:    subtotal,
		gst:         gst,
		totalAmount: total,
		createdAt:   createdAt,
	}, nil
}

// RestoreKotLine rehydrates a persisted KOT line and checks that the stored
// totals still agree with the stored items.
func RestoreKotLine(items []LineItem, subtotal, gst, totalAmount kernel.Money, createdAt time.Time) (KotLine, error) {
	line, err := NewKotLine(items, createdAt)
	if err != nil {
		return KotLine{}, err
	}
	if line.subtotal != subtotal || line.gst != gst || line.totalAmount != totalAmount {
		return KotLine{}, errs.NewValueIsInvalidErrorWithCause("kot line", fmt.Errorf(
			"stored totals %s/%s/%s do not match items (%s/%s/%s)",
			subtotal, gst, totalAmount, line.subtotal, line.gst, line.totalAmount))
	}
	return line, nil
}

// Items returns a copy of the line's items in submission order.
func (k KotLine) Items() []LineItem {
	return append([]LineItem(nil), k.items...)
}

func (k KotLine) Subtotal() kernel.Money    { return k.subtotal }
func (k KotLine) GST() kernel.Money         { return k.gst }
func (k KotLine) TotalAmount() kernel.Money { return k.totalAmount }
func (k KotLine) CreatedAt() time.Time      { return k.createdAt }
