package queries

import (
	"errors"

	"cafe/internal/pkg/errs"
	"cafe/internal/pkg/guard"
)

var (
	ErrListEventsQueryIsNotConstructed = errors.New(
		"ListEventsQuery must be created via NewListEventsQuery constructor",
	)
)

const (
	DefaultEventsLimit = 100
	MaxEventsLimit     = 500
)

// ListEventsQuery lets an observer catch up on the event log from a known sequence.
//
// Example:
//
//	query, _ := NewListEventsQuery(lastSeen, 0) // 0 picks DefaultEventsLimit
//	events, err := handler.Handle(ctx, query)
//	for _, e := range events {
//	    lastSeen = e.Seq
//	}
type ListEventsQuery struct {
	after int64
	limit int

	guard guard.ConstructorGuard
}

// NewListEventsQuery returns events with seq greater than after.
// A zero limit selects DefaultEventsLimit.
func NewListEventsQuery(after int64, limit int) (ListEventsQuery, error) {
	if after < 0 {
		return ListEventsQuery{}, errs.NewValueIsOutOfRangeError("after", after, 0, "unbounded")
	}
	if limit == 0 {
		limit = DefaultEventsLimit
	}
	if limit < 1 || limit > MaxEventsLimit {
		return ListEventsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxEventsLimit)
	}

	return ListEventsQuery{after: after, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListEventsQuery) Validate() error {
	return q.guard.Validate(ErrListEventsQueryIsNotConstructed)
}

func (q ListEventsQuery) After() int64 {
	return q.after
}

func (q ListEventsQuery) Limit() int {
	return q.limit
}
