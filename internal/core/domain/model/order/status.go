package order

import (
	"fmt"

	"cafe/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with a fixed transition table so that an
// order can only move along the billing workflow.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Finalized ──> Paid
//	   │            │             │
//	   └────────────┴─────────────┴──────> Cancelled
//
// Paid and Cancelled are terminal. New orders start at Confirmed; Pending is
// only ever read back from storage.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is an order that has not been accepted by the kitchen yet.
	Pending

	// Confirmed is an open order. KOTs can only be appended in this status.
	Confirmed

	// Finalized is an order whose bill has been produced and awaits payment.
	Finalized

	// Paid is the terminal status of a settled order.
	Paid

	// Cancelled is the terminal status of an abandoned order.
	Cancelled
)

var statusNames = map[Status]string{
	Unknown:   "Unknown",
	Pending:   "Pending",
	Confirmed: "Confirmed",
	Finalized: "Finalized",
	Paid:      "Paid",
	Cancelled: "Cancelled",
}

// transitions lists the statuses reachable from each source status.
var transitions = map[Status][]Status{
	Pending:   {Confirmed, Cancelled},
	Confirmed: {Finalized, Cancelled},
	Finalized: {Paid, Cancelled},
	Paid:      {},
	Cancelled: {},
}

// Statuses returns every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Confirmed, Finalized, Paid, Cancelled}
}

// ParseStatus converts a status name ("Confirmed", "Paid", ...) to a Status.
// Names are matched exactly.
func ParseStatus(s string) (Status, error) {
	if s == "" {
		return Unknown, errs.NewValueIsRequiredError("status")
	}
	for _, st := range Statuses() {
		if statusNames[st] == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the lifecycle statuses.
func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the name of the status, or "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := statusNames[s]; ok {
		return str
	}
	return "Unknown"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// AcceptsKots reports whether a new KOT line may be appended.
func (s Status) AcceptsKots() bool {
	return s == Confirmed
}

// CanTransitionTo reports whether the transition table has the edge s -> target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target if the edge s -> target exists.
//
// Returns:
//   - (target, nil) on a permitted transition
//   - (s, ValueIsInvalidError) if target is not a lifecycle status
//   - (s, InvalidStateError) if the table has no such edge
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return s, err
	}
	if !s.CanTransitionTo(target) {
		return s, errs.NewInvalidStateError(s.String(), target.String(),
			fmt.Sprintf("Invalid transition %s → %s", s, target))
	}
	return target, nil
}

// Finalize transitions to Finalized.
// It differs from TransitionTo(Finalized) only in the error message.
func (s Status) Finalize() (Status, error) {
	if !s.CanTransitionTo(Finalized) {
		return s, errs.NewInvalidStateError(s.String(), Finalized.String(),
			fmt.Sprintf("Cannot finalize from %s", s))
	}
	return Finalized, nil
}
