package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// ErrUnsupportedCurrency is returned for a currency code outside Supported.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// Currency is a display currency. It never takes part in arithmetic.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
}

// Supported lists the selectable currencies, default first.
var Supported = []Currency{
	{Code: "USD", Symbol: "$"},
	{Code: "EUR", Symbol: "€"},
	{Code: "GBP", Symbol: "£"},
	{Code: "JPY", Symbol: "¥"},
	{Code: "INR", Symbol: "₹"},
	{Code: "CAD", Symbol: "C$"},
}

// DefaultCurrency is used when no currency has been selected.
var DefaultCurrency = Supported[0]

// LookupCurrency finds a supported currency by its ISO 4217 code.
// The code is case-insensitive.
func LookupCurrency(code string) (Currency, error) {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return Currency{}, fmt.Errorf("%w: %q is not an ISO 4217 code", ErrUnsupportedCurrency, code)
	}
	for _, c := range Supported {
		if c.Code == unit.String() {
			return c, nil
		}
	}
	return Currency{}, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, unit.String())
}

// Format renders d with the currency symbol and two decimal places.
func (c Currency) Format(d decimal.Decimal) string {
	return c.Symbol + Fixed(d)
}

// FormatWhole renders d with the currency symbol, rounded to whole units.
func (c Currency) FormatWhole(d decimal.Decimal) string {
	return c.Symbol + Whole(d)
}
