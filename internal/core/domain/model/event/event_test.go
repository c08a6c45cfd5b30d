package event_test

import (
	"testing"
	"time"

	"cafe/internal/core/domain/model/event"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	id, err := kernel.ParseOrderID("ORD-20261014001")
	require.NoError(t, err)
	at := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)

	t.Run("should create an unpublished event", func(t *testing.T) {
		e, err := event.New(event.NewOrder, id, []byte(`{"id":"ORD-20261014001"}`), at)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, e.ID)
		assert.Zero(t, e.Seq)
		assert.Equal(t, event.NewOrder, e.Name)
		assert.True(t, e.OrderID.IsEqual(id))
		assert.Equal(t, at, e.OccurredAt)
		assert.False(t, e.IsPublished())
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := event.New("orderPrinted", id, []byte(`{}`), at)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = event.New("", id, []byte(`{}`), at)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should require an order and a payload", func(t *testing.T) {
		_, err := event.New(event.OrderDeleted, kernel.OrderID{}, []byte(`{}`), at)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = event.New(event.OrderDeleted, id, nil, at)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
