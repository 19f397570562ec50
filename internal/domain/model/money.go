package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RoundMoney rounds a currency amount to cents. Halves round away from zero,
// which for the non-negative amounts handled here is round-half-up.
func RoundMoney(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

// ParseMoney parses a decimal string and rounds it to cents.
func ParseMoney(s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, err
	}
	return RoundMoney(v), nil
}

// FormatMoney renders an amount as "$12.34" (or "-$12.34").
func FormatMoney(v decimal.Decimal) string {
	if v.IsNegative() {
		return "-$" + v.Neg().StringFixed(2)
	}
	return "$" + v.StringFixed(2)
}
