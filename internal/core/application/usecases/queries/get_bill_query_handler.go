package queries

import (
	"context"

	"cafe/internal/core/application/views"
	"cafe/internal/core/domain/services"
)

// GetBillQueryHandler merges the KOT lines of an order into one item list and
// sums their totals. The bill can be requested in any status.
type GetBillQueryHandler struct {
	orders     OrderReader
	aggregator services.BillAggregator
}

func NewGetBillQueryHandler(orders OrderReader) GetBillQueryHandler {
	return GetBillQueryHandler{orders: orders, aggregator: services.NewBillAggregator()}
}

func (h GetBillQueryHandler) Handle(ctx context.Context, query GetBillQuery) (views.BillView, error) {
	if err := query.Validate(); err != nil {
		return views.BillView{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return views.BillView{}, err
	}

	bill, err := h.aggregator.Consolidate(o)
	if err != nil {
		return views.BillView{}, err
	}

	return views.NewBillView(bill), nil
}
