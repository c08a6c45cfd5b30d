package kernel

import (
	"fmt"
	"strconv"
	"strings"

	"cafe/internal/pkg/errs"
)

const (
	orderIDPrefix = "ORD-"
	// minSequenceDigits is the zero-padding width of the daily sequence.
	// Sequences beyond 999 simply use more digits.
	minSequenceDigits = 3
)

// OrderID is the human-readable order identifier "ORD-YYYYMMDDNNN": the
// business date followed by the daily sequence padded to three digits.
//
// Identifiers are assigned once, when the order is created, from the
// sequence generator. The zero value is invalid.
type OrderID struct {
	date BusinessDate
	seq  int
}

// NewOrderID combines a business date and its sequence number.
func NewOrderID(date BusinessDate, seq int) (OrderID, error) {
	if date.IsZero() {
		return OrderID{}, errs.NewValueIsRequiredError("order date")
	}
	if seq < 1 {
		return OrderID{}, errs.NewValueIsOutOfRangeError("order sequence", seq, 1, "unbounded")
	}
	return OrderID{date: date, seq: seq}, nil
}

// ParseOrderID reads the canonical string form produced by String.
func ParseOrderID(s string) (OrderID, error) {
	invalid := func(cause error) (OrderID, error) {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("order id", cause)
	}

	if s == "" {
		return OrderID{}, errs.NewValueIsRequiredError("order id")
	}
	if !strings.HasPrefix(s, orderIDPrefix) {
		return invalid(fmt.Errorf("%q does not start with %s", s, orderIDPrefix))
	}

	rest := strings.TrimPrefix(s, orderIDPrefix)
	if len(rest) < len(businessDateLayout)+minSequenceDigits {
		return invalid(fmt.Errorf("%q is too short", s))
	}

	date, err := ParseBusinessDate(rest[:len(businessDateLayout)])
	if err != nil {
		return invalid(err)
	}

	seqPart := rest[len(businessDateLayout):]
	for _, r := range seqPart {
		if r < '0' || r > '9' {
			return invalid(fmt.Errorf("%q has a non-numeric sequence", s))
		}
	}
	seq, err := strconv.Atoi(seqPart)
	if err != nil {
		return invalid(err)
	}

	id, err := NewOrderID(date, seq)
	if err != nil {
		return invalid(err)
	}
	if id.String() != s {
		return invalid(fmt.Errorf("%q is not in canonical form", s))
	}

	return id, nil
}

// Date returns the business date the identifier was issued on.
func (id OrderID) Date() BusinessDate {
	return id.date
}

// Seq returns the daily sequence number.
func (id OrderID) Seq() int {
	return id.seq
}

// IsEqual compares two identifiers by value.
func (id OrderID) IsEqual(other OrderID) bool {
	return id == other
}

// Validate rejects the zero value.
func (id OrderID) Validate() error {
	if id.seq < 1 || id.date.IsZero() {
		return errs.NewValueIsRequiredError("order id")
	}
	return nil
}

// String formats the identifier as ORD-YYYYMMDDNNN.
func (id OrderID) String() string {
	return fmt.Sprintf("%s%s%0*d", orderIDPrefix, id.date, minSequenceDigits, id.seq)
}
