package queries_test

import (
	"testing"
	"time"

	"cafe/internal/core/application/usecases/queries"
	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBillQueryHandler_Handle(t *testing.T) {
	t.Run("merges rounds into one bill", func(t *testing.T) {
		ctx := t.Context()
		o := openOrder(t, 1)
		later := testNow.Add(10 * time.Minute)
		require.NoError(t, o.AddKot(kotOf(t, later, "Tea", 1, "50"), later))
		require.NoError(t, o.AddKot(kotOf(t, later, "Coffee", 1, "80"), later))

		reader := new(MockOrderReader)
		reader.On("Get", ctx, o.ID()).Return(o, nil).Once()

		query, err := queries.NewGetBillQuery(o.ID())
		require.NoError(t, err)

		bill, err := queries.NewGetBillQueryHandler(reader).Handle(ctx, query)
		require.NoError(t, err)

		assert.Equal(t, "ORD-20261014001", bill.OrderID)
		assert.Equal(t, 3, bill.Rounds)
		require.Len(t, bill.Items, 2)
		assert.Equal(t, "Tea", bill.Items[0].Name)
		assert.Equal(t, 3, bill.Items[0].Quantity)
		assert.Equal(t, "Coffee", bill.Items[1].Name)
		assert.Equal(t, "230.00", bill.Subtotal.String())
		assert.Equal(t, "11.50", bill.GST.String())
		assert.Equal(t, "241.50", bill.TotalAmount.String())
		assert.Nil(t, bill.PaidAt)
	})

	t.Run("includes paidAt once paid", func(t *testing.T) {
		ctx := t.Context()
		o := openOrder(t, 1)
		paidAt := testNow.Add(time.Hour)
		require.NoError(t, o.Finalize(paidAt))
		require.NoError(t, o.ChangeStatus(order.Paid, paidAt))

		reader := new(MockOrderReader)
		reader.On("Get", ctx, o.ID()).Return(o, nil).Once()

		query, err := queries.NewGetBillQuery(o.ID())
		require.NoError(t, err)

		bill, err := queries.NewGetBillQueryHandler(reader).Handle(ctx, query)
		require.NoError(t, err)
		assert.Equal(t, "Paid", bill.Status)
		require.NotNil(t, bill.PaidAt)
		assert.Equal(t, paidAt, *bill.PaidAt)
	})

	t.Run("passes not found through", func(t *testing.T) {
		ctx := t.Context()
		id := testOrderID(t, 3)
		reader := new(MockOrderReader)
		reader.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once()

		query, err := queries.NewGetBillQuery(id)
		require.NoError(t, err)

		_, err = queries.NewGetBillQueryHandler(reader).Handle(ctx, query)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
