// internal/money/money.go

// Package money converts between user-facing decimal amounts and the int64
// cent values used everywhere inside the engine. All storage and arithmetic
// happens in whole cents; decimals appear only at the parsing and display
// edges.
package money

import (
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"moneytrack/internal/util"
)

// ParseCents converts a decimal amount string to signed cents, rounding
// half-up on the third decimal place. Both "12.34" and "12,34" are accepted.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, util.ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, util.ErrInvalidAmount
	}
	return d.Shift(2).Round(0).IntPart(), nil
}

// FormatCents renders cents as a currency display string, e.g. "$1,234.56".
// Used only for presentation fields; the engine always returns raw cents.
func FormatCents(cents int64, currencyCode string) string {
	if currencyCode == "" {
		currencyCode = gomoney.USD
	}
	return gomoney.New(cents, currencyCode).Display()
}
