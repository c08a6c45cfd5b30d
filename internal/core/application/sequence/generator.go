// Package sequence issues the date-scoped order identifiers.
package sequence

import (
	"context"
	"fmt"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/ports"
)

// Generator turns the atomic per-day counter into ORD-YYYYMMDDNNN identifiers.
//
// The generator itself holds no sequence state. Uniqueness comes entirely from
// CounterRepository.Increment, so any number of generators and processes can
// share one database.
type Generator struct {
	counters ports.CounterRepository
	location *time.Location
}

// NewGenerator returns a generator that evaluates the calendar day in location
// (UTC when nil).
func NewGenerator(counters ports.CounterRepository, location *time.Location) Generator {
	if location == nil {
		location = time.UTC
	}
	return Generator{counters: counters, location: location}
}

// NextOrderID increments the counter of the business day containing today and
// formats the result.
func (g Generator) NextOrderID(ctx context.Context, today time.Time) (kernel.OrderID, error) {
	date := kernel.NewBusinessDate(today, g.location)

	seq, err := g.counters.Increment(ctx, date)
	if err != nil {
		return kernel.OrderID{}, fmt.Errorf("increment counter %s: %w", date, err)
	}

	return kernel.NewOrderID(date, seq)
}
