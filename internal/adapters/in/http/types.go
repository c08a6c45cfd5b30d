package http

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OrderedItem is one item line of a client request. Price is kept as the
// literal JSON number so that it is converted to minor units exactly once.
type OrderedItem struct {
	Name     string      `json:"name"`
	Quantity int         `json:"quantity"`
	Price    json.Number `json:"price"`
}

type CreateOrderRequest struct {
	TableNumber TableLabel    `json:"tableNumber"`
	Items       []OrderedItem `json:"items"`
}

// TableLabel is a table number sent either as a JSON string or as a JSON
// number. A number is kept as its literal text, so 7 and "7" name the same table.
type TableLabel string

func (l *TableLabel) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch t := v.(type) {
	case nil:
		*l = ""
	case string:
		*l = TableLabel(t)
	case json.Number:
		*l = TableLabel(t.String())
	default:
		return fmt.Errorf("tableNumber must be a string or a number, got %s", data)
	}
	return nil
}

type AddKotRequest struct {
	Items []OrderedItem `json:"items"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListEventsParams are the query parameters of GET /events.
type ListEventsParams struct {
	After *int64 `form:"after,omitempty" json:"after,omitempty"`
	Limit *int   `form:"limit,omitempty" json:"limit,omitempty"`
}

type DeleteAck struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
