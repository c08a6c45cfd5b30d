package queries_test

import (
	"errors"
	"testing"

	"cafe/internal/core/application/usecases/queries"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	_, err := queries.NewGetOrderQuery(kernel.OrderID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	err = queries.GetOrderQuery{}.Validate()
	require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
}

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	t.Run("returns the order view", func(t *testing.T) {
		ctx := t.Context()
		reader := new(MockOrderReader)
		o := openOrder(t, 1)
		reader.On("Get", ctx, o.ID()).Return(o, nil).Once()

		query, err := queries.NewGetOrderQuery(o.ID())
		require.NoError(t, err)

		view, err := queries.NewGetOrderQueryHandler(reader).Handle(ctx, query)
		require.NoError(t, err)

		assert.Equal(t, "ORD-20261014001", view.ID)
		assert.Equal(t, "5", view.TableNumber)
		assert.Equal(t, order.Confirmed.String(), view.Status)
		require.Len(t, view.KotLines, 1)
		assert.Equal(t, "105.00", view.KotLines[0].TotalAmount.String())
		assert.Equal(t, 1, view.Version)
		reader.AssertExpectations(t)
	})

	t.Run("passes not found through", func(t *testing.T) {
		ctx := t.Context()
		reader := new(MockOrderReader)
		id := testOrderID(t, 9)
		reader.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()

		query, err := queries.NewGetOrderQuery(id)
		require.NoError(t, err)

		_, err = queries.NewGetOrderQueryHandler(reader).Handle(ctx, query)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("rejects an unconstructed query", func(t *testing.T) {
		reader := new(MockOrderReader)

		_, err := queries.NewGetOrderQueryHandler(reader).Handle(t.Context(), queries.GetOrderQuery{})

		require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
		reader.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestListOrdersQueryHandler_Handle(t *testing.T) {
	t.Run("maps every order", func(t *testing.T) {
		ctx := t.Context()
		reader := new(MockOrderReader)
		reader.On("List", ctx).Return([]*order.Order{openOrder(t, 2), openOrder(t, 1)}, nil).Once()

		views, err := queries.NewListOrdersQueryHandler(reader).Handle(ctx, queries.NewListOrdersQuery())
		require.NoError(t, err)

		require.Len(t, views, 2)
		assert.Equal(t, "ORD-20261014002", views[0].ID)
		assert.Equal(t, "ORD-20261014001", views[1].ID)
	})

	t.Run("returns an empty list, not nil", func(t *testing.T) {
		ctx := t.Context()
		reader := new(MockOrderReader)
		reader.On("List", ctx).Return([]*order.Order{}, nil).Once()

		views, err := queries.NewListOrdersQueryHandler(reader).Handle(ctx, queries.NewListOrdersQuery())
		require.NoError(t, err)
		assert.NotNil(t, views)
		assert.Empty(t, views)
	})

	t.Run("propagates storage errors", func(t *testing.T) {
		ctx := t.Context()
		reader := new(MockOrderReader)
		reader.On("List", ctx).Return(nil, errors.New("connection refused")).Once()

		_, err := queries.NewListOrdersQueryHandler(reader).Handle(ctx, queries.NewListOrdersQuery())
		require.EqualError(t, err, "connection refused")
	})
}
