package utils

import "github.com/shopspring/decimal"

// MoneyPlaces is the precision used for every monetary amount.
const MoneyPlaces int32 = 2

// RoundMoney rounds d to two places, half away from zero.
// Example: 1.005 returns 1.01; -1.005 returns -1.01.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// FormatMoney renders d with exactly two decimal places.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(MoneyPlaces)
}
