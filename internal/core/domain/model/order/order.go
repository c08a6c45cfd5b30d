package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for one dining session at a table. It owns the
// append-only list of KOT lines and the billing status.
//
// Order follows these invariants:
//   - The identifier is assigned once, at construction, and never changes
//   - Table number is not blank
//   - There is at least one KOT line, and lines are only appended while Confirmed
//   - Status only changes along the edges of the transition table
//   - paidAt is set exactly when the status is Paid
//
// Every mutating method validates first and changes nothing when it fails.
type Order struct {
	// id is the ORD-YYYYMMDDNNN identifier
	id kernel.OrderID

	// tableNumber is the table the order is served to
	tableNumber string

	// kotLines are the ordering rounds in chronological order
	kotLines []KotLine

	// status represents the current state in the billing lifecycle
	status Status

	createdAt time.Time
	updatedAt time.Time

	// paidAt is stamped by the transition to Paid
	paidAt *time.Time

	// version is the persisted revision used for optimistic concurrency
	version int

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder opens an order for a table with its first KOT line.
//
// The order starts at Confirmed with version 1.
//
// Example:
//
//	id, _ := kernel.NewOrderID(kernel.NewBusinessDate(now, loc), 1)
//	kot, _ := order.NewKotLine(items, now)
//	o, err := order.NewOrder(id, "5", kot, now)
func NewOrder(id kernel.OrderID, tableNumber string, first KotLine, now time.Time) (*Order, error) {
	o := &Order{
		status:        Confirmed,
		createdAt:     now,
		updatedAt:     now,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTableNumber(tableNumber),
		validateKotLine(first),
		validateTimestamp("createdAt", now),
	); err != nil {
		return nil, err
	}

	o.kotLines = []KotLine{first}
	return o, nil
}

// RestoreOrder rebuilds an order from persisted state. It enforces the same
// invariants as NewOrder and additionally the paidAt/status pairing.
func RestoreOrder(
	id kernel.OrderID,
	tableNumber string,
	kotLines []KotLine,
	status Status,
	createdAt, updatedAt time.Time,
	paidAt *time.Time,
	version int,
) (*Order, error) {
	o := &Order{
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTableNumber(tableNumber),
		status.Validate(),
		validateTimestamp("createdAt", createdAt),
		validateTimestamp("updatedAt", updatedAt),
	); err != nil {
		return nil, err
	}

	if len(kotLines) == 0 {
		return nil, errs.NewValueIsRequiredError("kot lines")
	}
	for _, line := range kotLines {
		if err := validateKotLine(line); err != nil {
			return nil, err
		}
	}
	if version < 1 {
		return nil, errs.NewValueIsOutOfRangeError("version", version, 1, "unbounded")
	}
	if (status == Paid) != (paidAt != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("paidAt",
			fmt.Errorf("paidAt must be set exactly when status is %s, got status %s", Paid, status))
	}

	o.kotLines = append([]KotLine(nil), kotLines...)
	if paidAt != nil {
		p := *paidAt
		o.paidAt = &p
	}
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.OrderID {
	return o.id
}

func (o *Order) TableNumber() string {
	return o.tableNumber
}

// KotLines returns a copy of the KOT lines in chronological order.
func (o *Order) KotLines() []KotLine {
	return append([]KotLine(nil), o.kotLines...)
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// PaidAt returns when the order was paid, or nil if it is not Paid.
func (o *Order) PaidAt() *time.Time {
	if o.paidAt == nil {
		return nil
	}
	p := *o.paidAt
	return &p
}

// Version returns the revision the order was loaded at.
func (o *Order) Version() int {
	return o.version
}

// AdvanceVersion records that a repository stored the order at the next revision.
func (o *Order) AdvanceVersion() {
	o.version++
}

// AddKot appends a new ordering round.
//
// Returns InvalidStateError "Order is not open for KOTs (<status>)" unless the order is Confirmed.
func (o *Order) AddKot(line KotLine, now time.Time) error {
	if !o.status.AcceptsKots() {
		return errs.NewInvalidStateError(o.status.String(), o.status.String(),
			fmt.Sprintf("Order is not open for KOTs (%s)", o.status))
	}
	if err := validateKotLine(line); err != nil {
		return err
	}

	o.kotLines = append(o.kotLines, line)
	o.touch(now)
	return nil
}

// Finalize moves the order to Finalized.
//
// Returns InvalidStateError "Cannot finalize from <status>" when the table has no such edge.
func (o *Order) Finalize(now time.Time) error {
	next, err := o.status.Finalize()
	if err != nil {
		return err
	}

	o.status = next
	o.touch(now)
	return nil
}

// ChangeStatus moves the order to target along the transition table.
// paidAt is stamped only when target is Paid.
func (o *Order) ChangeStatus(target Status, now time.Time) error {
	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = next
	if next == Paid {
		p := now
		o.paidAt = &p
	}
	o.touch(now)
	return nil
}

func (o *Order) touch(now time.Time) {
	if now.After(o.updatedAt) {
		o.updatedAt = now
	}
}

func (o *Order) setID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTableNumber(tableNumber string) error {
	tableNumber = strings.TrimSpace(tableNumber)
	if tableNumber == "" {
		return errs.NewValueIsRequiredError("tableNumber")
	}
	o.tableNumber = tableNumber
	return nil
}

func validateKotLine(line KotLine) error {
	if len(line.items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	return nil
}

func validateTimestamp(name string, t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
