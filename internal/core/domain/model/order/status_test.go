package order_test

import (
	"fmt"
	"testing"

	"cafe/internal/core/domain/model/order"
	"cafe/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	assert.Equal(t, 0, int(order.Unknown))
	assert.Equal(t, 1, int(order.Pending))
	assert.Equal(t, 2, int(order.Confirmed))
	assert.Equal(t, 3, int(order.Finalized))
	assert.Equal(t, 4, int(order.Paid))
	assert.Equal(t, 5, int(order.Cancelled))
}

func TestParseStatus(t *testing.T) {
	for _, s := range order.Statuses() {
		t.Run(s.String(), func(t *testing.T) {
			parsed, err := order.ParseStatus(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		})
	}

	t.Run("should require a value", func(t *testing.T) {
		_, err := order.ParseStatus("")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, name := range []string{"Unknown", "paid", "Delivered"} {
			_, err := order.ParseStatus(name)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, name)
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range order.Statuses() {
		require.NoError(t, s.Validate())
	}

	for _, s := range []order.Status{order.Unknown, order.Status(-1), order.Status(6)} {
		t.Run(fmt.Sprintf("should reject %d", int(s)), func(t *testing.T) {
			err := s.Validate()
			require.Error(t, err)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		})
	}
}

func TestStatus_TransitionTable(t *testing.T) {
	allowed := map[order.Status][]order.Status{
		order.Pending:   {order.Confirmed, order.Cancelled},
		order.Confirmed: {order.Finalized, order.Cancelled},
		order.Finalized: {order.Paid, order.Cancelled},
	}

	for _, from := range order.Statuses() {
		for _, to := range order.Statuses() {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}

			t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
				assert.Equal(t, want, from.CanTransitionTo(to))

				next, err := from.TransitionTo(to)
				if want {
					require.NoError(t, err)
					assert.Equal(t, to, next)
					return
				}

				require.ErrorIs(t, err, errs.ErrInvalidState)
				assert.Equal(t, from, next)
				assert.Equal(t, fmt.Sprintf("Invalid transition %s → %s", from, to), err.Error())

				var stateErr *errs.InvalidStateError
				require.ErrorAs(t, err, &stateErr)
				assert.Equal(t, from.String(), stateErr.From)
				assert.Equal(t, to.String(), stateErr.To)
			})
		}
	}
}

func TestStatus_TransitionToInvalidTarget(t *testing.T) {
	next, err := order.Confirmed.TransitionTo(order.Unknown)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, order.Confirmed, next)
}

func TestStatus_Finalize(t *testing.T) {
	t.Run("should finalize a confirmed order", func(t *testing.T) {
		next, err := order.Confirmed.Finalize()
		require.NoError(t, err)
		assert.Equal(t, order.Finalized, next)
	})

	for _, from := range []order.Status{order.Pending, order.Finalized, order.Paid, order.Cancelled} {
		t.Run("should refuse from "+from.String(), func(t *testing.T) {
			next, err := from.Finalize()
			require.ErrorIs(t, err, errs.ErrInvalidState)
			assert.Equal(t, from, next)
			assert.Equal(t, "Cannot finalize from "+from.String(), err.Error())
		})
	}
}

func TestStatus_Flags(t *testing.T) {
	assert.True(t, order.Paid.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Confirmed.IsTerminal())
	assert.False(t, order.Unknown.IsTerminal())

	assert.True(t, order.Confirmed.AcceptsKots())
	for _, s := range []order.Status{order.Pending, order.Finalized, order.Paid, order.Cancelled} {
		assert.False(t, s.AcceptsKots(), s.String())
	}
}

func TestStatus_Text(t *testing.T) {
	text, err := order.Finalized.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Finalized", string(text))

	var s order.Status
	require.NoError(t, s.UnmarshalText([]byte("Paid")))
	assert.Equal(t, order.Paid, s)

	require.Error(t, s.UnmarshalText([]byte("Served")))
	assert.Equal(t, order.Paid, s)
}
