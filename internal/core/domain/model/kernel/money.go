package kernel

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"cafe/internal/pkg/errs"

	"github.com/cockroachdb/apd/v3"
)

// minorUnitsPerMajor is the number of paise in a rupee.
const minorUnitsPerMajor = 100

// decimalContext performs the single decimal to minor-unit conversion.
// RoundHalfUp in apd rounds the magnitude, which is round half away from zero.
var decimalContext = func() *apd.Context {
	c := apd.BaseContext.WithPrecision(34)
	c.Rounding = apd.RoundHalfUp
	return c
}()

// Money is an amount of currency held as an integer number of minor units.
// All arithmetic stays in integers and reports overflow instead of wrapping; the
// only place a decimal value is read is ParseMoney (and MoneyFromFloat, which
// delegates to it).
//
// The zero value is a valid amount of 0.00.
//
// Example:
//
//	price, err := kernel.ParseMoney("49.99")
//	// price.Minor() == 4999
//	line, err := price.Multiply(3)   // 149.97
//	gst, err := line.Percent(5)      // 7.50
//	total, err := line.Add(gst)      // 157.47
type Money struct {
	minor int64
}

// NewMoney wraps an amount that is already in minor units.
func NewMoney(minor int64) Money {
	return Money{minor: minor}
}

// ParseMoney converts a decimal amount in major units ("50", "12.5", "0.285")
// into minor units, rounding half away from zero on the value multiplied by 100.
//
// Returns:
//   - ValueIsRequiredError for an empty string
//   - ValueIsInvalidError for anything that is not a finite decimal number
//   - ValueIsOutOfRangeError when the minor-unit amount does not fit in int64
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, errs.NewValueIsRequiredError("amount")
	}

	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	if d.Form != apd.Finite {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q is not a finite number", s))
	}

	var scaled, rounded apd.Decimal
	if _, err = decimalContext.Mul(&scaled, d, apd.New(minorUnitsPerMajor, 0)); err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	if _, err = decimalContext.Quantize(&rounded, &scaled, 0); err != nil {
		return Money{}, errs.NewValueIsOutOfRangeErrorWithCause("amount", s, int64(math.MinInt64), int64(math.MaxInt64), err)
	}

	minor, err := rounded.Int64()
	if err != nil {
		return Money{}, errs.NewValueIsOutOfRangeErrorWithCause("amount", s, int64(math.MinInt64), int64(math.MaxInt64), err)
	}

	return Money{minor: minor}, nil
}

// MoneyFromFloat converts a float received from a client. The float is first
// rendered with the shortest representation that round-trips, so 0.285 is
// treated as the decimal 0.285 rather than its binary approximation.
func MoneyFromFloat(f float64) (Money, error) {
	return ParseMoney(strconv.FormatFloat(f, 'f', -1, 64))
}

// Minor returns the amount in minor units.
func (m Money) Minor() int64 {
	return m.minor
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.minor < 0
}

// Add returns m + other, or ValueIsOutOfRangeError when the sum does not fit in int64.
func (m Money) Add(other Money) (Money, error) {
	sum, ok := addInt64(m.minor, other.minor)
	if !ok {
		return Money{}, outOfRange(fmt.Sprintf("%s + %s", m, other))
	}
	return Money{minor: sum}, nil
}

// Multiply returns m × quantity, or ValueIsOutOfRangeError on overflow.
func (m Money) Multiply(quantity int) (Money, error) {
	product, ok := mulInt64(m.minor, int64(quantity))
	if !ok {
		return Money{}, outOfRange(fmt.Sprintf("%s × %d", m, quantity))
	}
	return Money{minor: product}, nil
}

// Percent returns round(m × percent / 100), rounding half away from zero.
// percent must be within [0, 100].
func (m Money) Percent(percent int64) (Money, error) {
	if percent < 0 || percent > 100 {
		return Money{}, errs.NewValueIsOutOfRangeError("percent", percent, 0, 100)
	}

	// m × p / 100 is split as (m/100)×p + (m%100)×p/100 so that no
	// intermediate product exceeds |m|.
	whole, part := m.minor/minorUnitsPerMajor, m.minor%minorUnitsPerMajor
	quotient, ok := mulInt64(whole, percent)
	if !ok {
		return Money{}, outOfRange(fmt.Sprintf("%s × %d%%", m, percent))
	}
	product := part * percent
	quotient, ok = addInt64(quotient, product/minorUnitsPerMajor)
	if !ok {
		return Money{}, outOfRange(fmt.Sprintf("%s × %d%%", m, percent))
	}

	var carry int64
	switch remainder := product % minorUnitsPerMajor; {
	case remainder >= 50:
		carry = 1
	case remainder <= -50:
		carry = -1
	}
	if quotient, ok = addInt64(quotient, carry); !ok {
		return Money{}, outOfRange(fmt.Sprintf("%s × %d%%", m, percent))
	}

	return Money{minor: quotient}, nil
}

func addInt64(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	product := a * b
	if product/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	return product, true
}

func outOfRange(expr string) *errs.ValueIsOutOfRangeError {
	return errs.NewValueIsOutOfRangeError("amount", expr, NewMoney(math.MinInt64), NewMoney(math.MaxInt64))
}

// String renders the amount in major units with two fraction digits.
func (m Money) String() string {
	sign := ""
	v := uint64(m.minor)
	if m.minor < 0 {
		sign = "-"
		v = uint64(-m.minor)
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/minorUnitsPerMajor, v%minorUnitsPerMajor)
}

// MarshalJSON writes the amount as a JSON number in major units, e.g. 105.00.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		return errs.NewValueIsRequiredError("amount")
	}

	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}

	*m = parsed
	return nil
}
