package market

import "github.com/shopspring/decimal"

// RoundCash applies the settlement precision of ccy. Zero-decimal currencies
// are rounded to whole units, half away from zero; every other currency keeps
// full precision.
func RoundCash(ccy string, amt decimal.Decimal) decimal.Decimal {
	if ZeroDecimal(ccy) {
		return amt.Round(0)
	}
	return amt
}
