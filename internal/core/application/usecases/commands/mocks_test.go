package commands_test

import (
	"context"
	"testing"
	"time"

	"cafe/internal/core/application/usecases/commands"
	"cafe/internal/core/domain/model/event"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/core/domain/services"
	"cafe/internal/core/ports"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.OrderID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCounterRepository struct{ mock.Mock }

func (m *MockCounterRepository) Increment(ctx context.Context, date kernel.BusinessDate) (int, error) {
	args := m.Called(ctx, date)
	return args.Int(0), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Append(ctx context.Context, e event.Event) (event.Event, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(event.Event), args.Error(1)
}

func (m *MockOutboxRepository) ListAfter(ctx context.Context, after int64, limit int) ([]event.Event, error) {
	args := m.Called(ctx, after, limit)
	events, _ := args.Get(0).([]event.Event)
	return events, args.Error(1)
}

func (m *MockOutboxRepository) ListUnpublished(ctx context.Context, limit int) ([]event.Event, error) {
	args := m.Called(ctx, limit)
	events, _ := args.Get(0).([]event.Event)
	return events, args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CounterRepository() ports.CounterRepository {
	args := m.Called()
	return args.Get(0).(ports.CounterRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCreateOrderUoWFactory struct{ mock.Mock }

func (m *MockCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.CreateOrderUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Emit(name event.Name, payload []byte) {
	m.Called(name, payload)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, e event.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

var testNow = time.Date(2026, 10, 14, 6, 30, 0, 0, time.UTC)

var teaItems = []services.OrderedItem{{Name: "Tea", Quantity: 2, Price: "50"}}

func testOrderID(t *testing.T) kernel.OrderID {
	t.Helper()
	id, err := kernel.ParseOrderID("ORD-20261014001")
	require.NoError(t, err)
	return id
}

// openOrder builds a Confirmed order with one KOT.
func openOrder(t *testing.T) *order.Order {
	t.Helper()
	kot, err := services.NewKotBuilder().BuildKot(teaItems, testNow.Add(-time.Hour))
	require.NoError(t, err)
	o, err := order.NewOrder(testOrderID(t), "5", kot, testNow.Add(-time.Hour))
	require.NoError(t, err)
	return o
}

// orderIn builds an order and walks it to status.
func orderIn(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	o := openOrder(t)
	switch status {
	case order.Finalized:
		require.NoError(t, o.Finalize(testNow.Add(-time.Minute)))
	case order.Paid:
		require.NoError(t, o.Finalize(testNow.Add(-time.Minute)))
		require.NoError(t, o.ChangeStatus(order.Paid, testNow.Add(-time.Minute)))
	case order.Cancelled:
		require.NoError(t, o.ChangeStatus(order.Cancelled, testNow.Add(-time.Minute)))
	}
	return o
}

func eventNamed(name event.Name) any {
	return mock.MatchedBy(func(e event.Event) bool { return e.Name == name })
}

// expectMutation wires one successful load, update, append and commit.
func expectMutation(ctx context.Context, uow *MockUoW, orders *MockOrderRepository, outbox *MockOutboxRepository, o *order.Order) {
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		orders.On("Update", ctx, o).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outbox).Once(),
		outbox.On("Append", ctx, eventNamed(event.OrderUpdated)).Return(event.Event{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
}
