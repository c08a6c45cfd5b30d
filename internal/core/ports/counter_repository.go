package ports

import (
	"context"

	"cafe/internal/core/domain/model/kernel"
)

// CounterRepository owns the per-day order sequence.
type CounterRepository interface {
	// Increment atomically creates the counter for date with value 1, or adds one
	// to the existing value, and returns the new value. Two concurrent calls for
	// the same date never return the same value.
	Increment(ctx context.Context, date kernel.BusinessDate) (int, error)
}
