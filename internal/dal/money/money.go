package money

import "github.com/shopspring/decimal"

// Amounts are stored as integer cents; the service layer works with
// decimals. Conversions live here so every repository rounds the same way.

// FromCents converts a stored cents value to a decimal amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// ToCents converts a decimal amount to cents, rounding to 2 decimal places.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Round(2).Shift(2).IntPart()
}
