package services

import (
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
)

// Totals are the money fields of one or more KOT lines summed independently.
type Totals struct {
	Subtotal    kernel.Money
	GST         kernel.Money
	TotalAmount kernel.Money
}

// Bill is the consolidated view of an order across all of its ordering rounds.
type Bill struct {
	OrderID     kernel.OrderID
	TableNumber string
	Status      order.Status
	Items       []order.LineItem
	Totals      Totals
	Rounds      int
	PaidAt      *time.Time
}

// BillAggregator merges KOT lines into a single bill.
type BillAggregator struct{}

func NewBillAggregator() BillAggregator {
	return BillAggregator{}
}

// MergeKotLines flattens the items of all lines and combines items sharing a name
// by summing their quantities. The first-seen price of a name is kept and items
// are returned in first-seen order, so the total quantity is always preserved.
func (BillAggregator) MergeKotLines(lines []order.KotLine) []order.LineItem {
	merged := make([]order.LineItem, 0)
	index := make(map[string]int)

	for _, line := range lines {
		for _, item := range line.Items() {
			if i, ok := index[item.Name()]; ok {
				merged[i] = merged[i].AddQuantity(item.Quantity())
				continue
			}
			index[item.Name()] = len(merged)
			merged = append(merged, item)
		}
	}

	return merged
}

// SumTotals adds up subtotal, gst and totalAmount across lines.
// GST is summed per line, never recomputed from the merged subtotal.
// A sum outside the money range is reported as ValueIsOutOfRangeError.
func (BillAggregator) SumTotals(lines []order.KotLine) (Totals, error) {
	var (
		t   Totals
		err error
	)
	for _, line := range lines {
		if t.Subtotal, err = t.Subtotal.Add(line.Subtotal()); err != nil {
			return Totals{}, err
		}
		if t.GST, err = t.GST.Add(line.GST()); err != nil {
			return Totals{}, err
		}
		if t.TotalAmount, err = t.TotalAmount.Add(line.TotalAmount()); err != nil {
			return Totals{}, err
		}
	}
	return t, nil
}

// Consolidate builds the bill of o.
func (b BillAggregator) Consolidate(o *order.Order) (Bill, error) {
	if err := o.Validate(); err != nil {
		return Bill{}, err
	}

	lines := o.KotLines()
	totals, err := b.SumTotals(lines)
	if err != nil {
		return Bill{}, err
	}

	return Bill{
		OrderID:     o.ID(),
		TableNumber: o.TableNumber(),
		Status:      o.Status(),
		Items:       b.MergeKotLines(lines),
		Totals:      totals,
		Rounds:      len(lines),
		PaidAt:      o.PaidAt(),
	}, nil
}
