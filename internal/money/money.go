// Package money provides amount parsing, validation and display formatting.
//
// Amounts are decimal.Decimal end to end. Rounding only ever happens here, at
// display time, and rounded values are never fed back into calculations.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for a price, tax or tip that is negative or
// not a well-formed number.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount converts user input into a non-negative amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Zero is a valid amount (a free item, no tip).
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount(" 12,5 ") -> 12.5, nil
//	ParseAmount("-1") -> 0, ErrInvalidAmount
//	ParseAmount("abc") -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if err := Validate(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// Validate returns ErrInvalidAmount when d is negative.
func Validate(d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%w: %s is negative", ErrInvalidAmount, d.String())
	}
	return nil
}

// Fixed renders d with exactly two decimal places.
func Fixed(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Whole renders d rounded half away from zero to whole units.
func Whole(d decimal.Decimal) string {
	return d.Round(0).StringFixed(0)
}
