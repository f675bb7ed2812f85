// Package money implements fixed-point monetary amounts with cent precision.
//
// Amounts are stored as integer cents so that arithmetic never loses precision.
// Parsing and formatting go through shopspring/decimal; everything else is
// plain integer math.
package money

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotPositive  = errors.New("amount must be positive")
	ErrTooPrecise   = errors.New("amount must have at most 2 decimal places")
	ErrUnparseable  = errors.New("amount is not a valid number")
	ErrNoShares     = errors.New("cannot divide among zero participants")
)

// Amount is a monetary value in cents.
type Amount int64

// Zero is the zero amount.
const Zero Amount = 0

// Parse converts a decimal string like "10.00" into an Amount.
// It rejects values with more than 2 decimal places and values that are
// not valid numbers. It does not reject non-positive values; use
// ParsePositive for caller-facing amount validation.
func Parse(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnparseable, s)
	}
	cents := d.Shift(2)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("%w: %q", ErrTooPrecise, s)
	}
	return Amount(cents.IntPart()), nil
}

// ParsePositive parses s and additionally requires the result to be
// strictly greater than zero.
func ParsePositive(s string) (Amount, error) {
	a, err := Parse(s)
	if err != nil {
		return 0, err
	}
	if a <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrNotPositive, s)
	}
	return a, nil
}

// FromCents wraps an integer cent count.
func FromCents(cents int64) Amount {
	return Amount(cents)
}

// Cents returns the amount as integer cents.
func (a Amount) Cents() int64 {
	return int64(a)
}

// Abs returns the absolute value.
func (a Amount) Abs() Amount {
	if a < 0 {
		return -a
	}
	return a
}

// String formats the amount with exactly two decimal places, e.g. "33.34".
func (a Amount) String() string {
	return decimal.New(int64(a), -2).StringFixed(2)
}

// SplitEqually divides the amount into n shares that sum back to the amount
// exactly. Integer-cent division leaves a remainder of up to n-1 cents; that
// remainder is distributed one cent at a time to the earliest shares, so the
// caller's ordering of participants decides who absorbs the extra cents.
func (a Amount) SplitEqually(n int) ([]Amount, error) {
	if n <= 0 {
		return nil, ErrNoShares
	}
	base := int64(a) / int64(n)
	rem := int64(a) % int64(n)
	shares := make([]Amount, n)
	for i := range shares {
		shares[i] = Amount(base)
		if int64(i) < rem {
			shares[i]++
		}
	}
	return shares, nil
}

// Sum adds up a list of amounts.
func Sum(amounts []Amount) Amount {
	var total Amount
	for _, a := range amounts {
		total += a
	}
	return total
}

// MarshalJSON encodes the amount as a fixed-point JSON string ("10.00").
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts either a JSON string ("10.00") or a bare number
// (10 or 10.5), matching what web clients actually send.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Not a string; try a raw number.
		s = string(data)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
