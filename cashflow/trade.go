// Package cashflow turns FX trades into dated per-currency cashflows, marks FX
// swaps to the forward points curve and aggregates the result.
package cashflow

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DealType classifies a trade by the "Type of Deal" column.
type DealType int

const (
	Other DealType = iota
	Spot
	OutrightForward
	FXSwap
)

var dealTypeNames = map[DealType]string{
	Other:           "Other",
	Spot:            "Spot",
	OutrightForward: "Outright Forward",
	FXSwap:          "FX Swap",
}

func (t DealType) String() string {
	if s, ok := dealTypeNames[t]; ok {
		return s
	}
	return "Other"
}

// ParseDealType maps "Spot", "Outright Forward" and "FX Swap" to their deal
// types; anything else is Other.
func ParseDealType(s string) DealType {
	switch strings.TrimSpace(s) {
	case "Spot":
		return Spot
	case "Outright Forward":
		return OutrightForward
	case "FX Swap":
		return FXSwap
	default:
		return Other
	}
}

// Trade is one row of the trade blotter. Zero dates are missing dates.
type Trade struct {
	DealID       string
	DealType     DealType
	Pair         string
	Amount1      decimal.Decimal // base currency notional, signed
	Amount2      decimal.Decimal // quote currency notional, signed
	ValueDate    time.Time
	MaturityDate time.Time
	RatePrice    decimal.Decimal // contracted forward points
	Folder       string
}
