// Package money provides integer-cents monetary values and parsing of
// statement amount strings. Amounts are kept in minor currency units to
// avoid floating-point rounding error.
package money

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// USD is the default currency for statement imports; the pipeline itself is
// single-currency.
const USD = "USD"

var amountCleanPattern = regexp.MustCompile(`[^0-9.\-]`)

// ParseAmount converts a statement amount string to minor currency units.
// Currency symbols, thousands separators and other noise are stripped down
// to digits, '.' and '-'; a parenthesized amount is negative. The remaining
// number is scaled by 100 and rounded to the nearest integer.
//
//	ParseAmount("$1,234.56") == 123456
//	ParseAmount("-45.00")    == -4500
//	ParseAmount("(45.00)")   == -4500
func ParseAmount(s string) (int64, error) {
	trimmed := strings.TrimSpace(s)

	// Parentheses mean negative; decide before the strip removes them.
	negative := strings.HasPrefix(trimmed, "(") && strings.HasSuffix(trimmed, ")")

	cleaned := amountCleanPattern.ReplaceAllString(trimmed, "")
	if cleaned == "" || cleaned == "-" || cleaned == "." {
		return 0, fmt.Errorf("no numeric amount in %q", s)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	cents := d.Mul(decimal.New(100, 0)).Round(0).IntPart()
	if negative && cents > 0 {
		cents = -cents
	}
	return cents, nil
}

// Money is a currency-tagged amount in minor units, wrapping go-money for
// safe arithmetic and display.
type Money struct {
	m *money.Money
}

// New creates a Money value from cents and an ISO-4217 currency code.
func New(amountCents int64, currencyCode string) *Money {
	return &Money{m: money.New(amountCents, currencyCode)}
}

// Zero returns a zero value for the given currency.
func Zero(currencyCode string) *Money {
	return New(0, currencyCode)
}

// Amount returns the value in minor units.
func (m *Money) Amount() int64 {
	if m == nil || m.m == nil {
		return 0
	}
	return m.m.Amount()
}

// Currency returns the ISO-4217 code.
func (m *Money) Currency() string {
	if m == nil || m.m == nil {
		return ""
	}
	return m.m.Currency().Code
}

// Add returns m + other. Currencies must match.
func (m *Money) Add(other *Money) (*Money, error) {
	sum, err := m.m.Add(other.m)
	if err != nil {
		return nil, err
	}
	return &Money{m: sum}, nil
}

// IsNegative reports whether the amount is below zero.
func (m *Money) IsNegative() bool {
	return m != nil && m.m != nil && m.m.IsNegative()
}

// Display formats the amount with its currency symbol, e.g. "-$45.00".
func (m *Money) Display() string {
	if m == nil || m.m == nil {
		return ""
	}
	return m.m.Display()
}
