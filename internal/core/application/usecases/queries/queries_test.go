package queries_test

import (
	"context"
	"testing"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 14, 6, 30, 0, 0, time.UTC)

type MockOrderReader struct {
	mock.Mock
}

func (m *MockOrderReader) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderReader) List(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if orders := args.Get(0); orders != nil {
		return orders.([]*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func testOrderID(t *testing.T, seq int) kernel.OrderID {
	t.Helper()
	id, err := kernel.NewOrderID(kernel.NewBusinessDate(testNow, time.UTC), seq)
	require.NoError(t, err)
	return id
}

func kotOf(t *testing.T, at time.Time, name string, qty int, price string) order.KotLine {
	t.Helper()
	p, err := kernel.ParseMoney(price)
	require.NoError(t, err)
	item, err := order.NewLineItem(name, qty, p)
	require.NoError(t, err)
	line, err := order.NewKotLine([]order.LineItem{item}, at)
	require.NoError(t, err)
	return line
}

func openOrder(t *testing.T, seq int) *order.Order {
	t.Helper()
	o, err := order.NewOrder(testOrderID(t, seq), "5", kotOf(t, testNow, "Tea", 2, "50"), testNow)
	require.NoError(t, err)
	return o
}
