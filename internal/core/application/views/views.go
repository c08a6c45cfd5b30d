// Package views holds the JSON documents returned to clients and carried as
// event payloads. Money is rendered in major units with two decimals.
package views

import (
	"encoding/json"
	"time"

	"cafe/internal/core/domain/model/event"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/core/domain/services"
)

type LineItemView struct {
	Name     string       `json:"name"`
	Quantity int          `json:"quantity"`
	Price    kernel.Money `json:"price"`
}

type KotLineView struct {
	Items       []LineItemView `json:"items"`
	Subtotal    kernel.Money   `json:"subtotal"`
	GST         kernel.Money   `json:"gst"`
	TotalAmount kernel.Money   `json:"totalAmount"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// OrderView is the full order document.
type OrderView struct {
	ID          string        `json:"id"`
	TableNumber string        `json:"tableNumber"`
	KotLines    []KotLineView `json:"kotLines"`
	Status      string        `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	PaidAt      *time.Time    `json:"paidAt,omitempty"`
	Version     int           `json:"version"`
}

// BillView is the consolidated bill of an order.
type BillView struct {
	OrderID     string         `json:"orderId"`
	TableNumber string         `json:"tableNumber"`
	Status      string         `json:"status"`
	Items       []LineItemView `json:"items"`
	Subtotal    kernel.Money   `json:"subtotal"`
	GST         kernel.Money   `json:"gst"`
	TotalAmount kernel.Money   `json:"totalAmount"`
	Rounds      int            `json:"rounds"`
	PaidAt      *time.Time     `json:"paidAt,omitempty"`
}

// DeletedOrderView is the payload of an orderDeleted event.
type DeletedOrderView struct {
	ID string `json:"id"`
}

// EventView is one entry of the event log as served to catching-up observers.
type EventView struct {
	ID         string          `json:"id"`
	Seq        int64           `json:"seq"`
	Name       string          `json:"event"`
	OrderID    string          `json:"orderId"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurredAt"`
}

func NewLineItemViews(items []order.LineItem) []LineItemView {
	views := make([]LineItemView, 0, len(items))
	for _, item := range items {
		views = append(views, LineItemView{
			Name:     item.Name(),
			Quantity: item.Quantity(),
			Price:    item.Price(),
		})
	}
	return views
}

func NewOrderView(o *order.Order) OrderView {
	lines := o.KotLines()
	kots := make([]KotLineView, 0, len(lines))
	for _, line := range lines {
		kots = append(kots, KotLineView{
			Items:       NewLineItemViews(line.Items()),
			Subtotal:    line.Subtotal(),
			GST:         line.GST(),
			TotalAmount: line.TotalAmount(),
			CreatedAt:   line.CreatedAt(),
		})
	}

	return OrderView{
		ID:          o.ID().String(),
		TableNumber: o.TableNumber(),
		KotLines:    kots,
		Status:      o.Status().String(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		PaidAt:      o.PaidAt(),
		Version:     o.Version(),
	}
}

func NewOrderViews(orders []*order.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o))
	}
	return views
}

func NewBillView(b services.Bill) BillView {
	return BillView{
		OrderID:     b.OrderID.String(),
		TableNumber: b.TableNumber,
		Status:      b.Status.String(),
		Items:       NewLineItemViews(b.Items),
		Subtotal:    b.Totals.Subtotal,
		GST:         b.Totals.GST,
		TotalAmount: b.Totals.TotalAmount,
		Rounds:      b.Rounds,
		PaidAt:      b.PaidAt,
	}
}

func NewEventView(e event.Event) EventView {
	return EventView{
		ID:         e.ID.String(),
		Seq:        e.Seq,
		Name:       string(e.Name),
		OrderID:    e.OrderID.String(),
		Payload:    json.RawMessage(e.Payload),
		OccurredAt: e.OccurredAt,
	}
}

// OrderPayload renders the event payload for a created or updated order.
func OrderPayload(o *order.Order) ([]byte, error) {
	return json.Marshal(NewOrderView(o))
}

// DeletedPayload renders the event payload for a deleted order.
func DeletedPayload(id kernel.OrderID) ([]byte, error) {
	return json.Marshal(DeletedOrderView{ID: id.String()})
}
