package market

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency holds the settlement conventions the cashflow engine needs for
// one ISO 4217 code.
type Currency struct {
	Code       string
	MinorUnits int32
}

// Currencies lists the codes we know the minor-unit precision for. Codes that
// are not listed settle with two decimals.
var Currencies = map[string]Currency{
	"AUD": {Code: "AUD", MinorUnits: 2},
	"CAD": {Code: "CAD", MinorUnits: 2},
	"CHF": {Code: "CHF", MinorUnits: 2},
	"CNH": {Code: "CNH", MinorUnits: 2},
	"CNY": {Code: "CNY", MinorUnits: 2},
	"EUR": {Code: "EUR", MinorUnits: 2},
	"GBP": {Code: "GBP", MinorUnits: 2},
	"HKD": {Code: "HKD", MinorUnits: 2},
	"JPY": {Code: "JPY", MinorUnits: 0},
	"NZD": {Code: "NZD", MinorUnits: 2},
	"SGD": {Code: "SGD", MinorUnits: 2},
	"USD": {Code: "USD", MinorUnits: 2},
}

const defaultMinorUnits int32 = 2

// MinorUnits returns the number of decimals a currency settles in.
func MinorUnits(code string) int32 {
	if c, ok := Currencies[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return c.MinorUnits
	}
	return defaultMinorUnits
}

// ZeroDecimal reports whether the currency has no minor unit (JPY).
func ZeroDecimal(code string) bool {
	return MinorUnits(code) == 0
}

// PairSeparator splits "BASE/QUOTE" security codes.
const PairSeparator = "/"

// Pair is a currency pair split into its base and quote legs.
type Pair struct {
	Base  string
	Quote string
}

// ParsePair splits a security such as "usd/cny" into {USD CNY}. A security
// without a separator is returned whole as the base with an empty quote.
func ParsePair(s string) Pair {
	parts := strings.Split(strings.TrimSpace(s), PairSeparator)
	if len(parts) == 2 {
		return Pair{
			Base:  strings.ToUpper(strings.TrimSpace(parts[0])),
			Quote: strings.ToUpper(strings.TrimSpace(parts[1])),
		}
	}
	return Pair{Base: strings.ToUpper(strings.TrimSpace(s))}
}

func (p Pair) String() string {
	if p.Quote == "" {
		return p.Base
	}
	return p.Base + PairSeparator + p.Quote
}

// Key is the lookup form used by the forward points curve: separator
// removed and upper-cased.
func (p Pair) Key() string {
	return p.Base + p.Quote
}

// NormalizePair maps "EUR/USD", "eurusd" and "EURUSD" to "EURUSD".
func NormalizePair(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), PairSeparator, ""))
}

const (
	StandardPointsDivisor    int64 = 10_000
	ZeroDecimalPointsDivisor int64 = 1_000_000
)

// PointsDivisor scales forward points into a rate difference. JPY based
// pairs (JPY/CNY) are quoted per million, everything else per 10,000.
func PointsDivisor(pair string) int64 {
	if ZeroDecimal(ParsePair(pair).Base) {
		return ZeroDecimalPointsDivisor
	}
	return StandardPointsDivisor
}

// PointsToRate converts forward points into a rate difference for pair. The
// divisor is a power of ten so the conversion is an exact decimal shift.
func PointsToRate(pair string, points decimal.Decimal) decimal.Decimal {
	if PointsDivisor(pair) == ZeroDecimalPointsDivisor {
		return points.Shift(-6)
	}
	return points.Shift(-4)
}
