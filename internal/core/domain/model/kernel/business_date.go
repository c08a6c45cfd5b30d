package kernel

import (
	"fmt"
	"time"

	"cafe/internal/pkg/errs"
)

const businessDateLayout = "20060102"

// BusinessDate is the calendar day on which the restaurant takes an order.
// It scopes the order sequence: every new day starts numbering from 1.
//
// The day is evaluated in the restaurant's timezone, so an order placed at
// 00:30 IST belongs to the new day even though it is still the previous day in UTC.
type BusinessDate struct {
	year  int
	month time.Month
	day   int
}

// NewBusinessDate returns the calendar day of t as observed in loc.
// A nil loc means UTC.
func NewBusinessDate(t time.Time, loc *time.Location) BusinessDate {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return BusinessDate{year: y, month: m, day: d}
}

// ParseBusinessDate reads a date in YYYYMMDD form.
func ParseBusinessDate(s string) (BusinessDate, error) {
	if len(s) != len(businessDateLayout) {
		return BusinessDate{}, errs.NewValueIsInvalidErrorWithCause("date",
			fmt.Errorf("%q is not in YYYYMMDD form", s))
	}

	t, err := time.Parse(businessDateLayout, s)
	if err != nil {
		return BusinessDate{}, errs.NewValueIsInvalidErrorWithCause("date", err)
	}

	return NewBusinessDate(t, time.UTC), nil
}

// IsZero reports whether the date was never set.
func (d BusinessDate) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// String formats the date as YYYYMMDD.
func (d BusinessDate) String() string {
	return fmt.Sprintf("%04d%02d%02d", d.year, int(d.month), d.day)
}
