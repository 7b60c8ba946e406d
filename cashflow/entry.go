package cashflow

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Leg labels which part of a trade produced a cashflow.
type Leg string

const (
	LegSpot     Leg = "Spot"
	LegForward  Leg = "Outright Forward"
	LegSwapNear Leg = "FX Swap - Near"
	LegSwapFar  Leg = "FX Swap - Far"
)

// Entry is a single signed cashflow. A zero Date means undated.
type Entry struct {
	Date     time.Time
	Currency string
	Amount   decimal.Decimal
	TradeID  string
	Leg      Leg
}

func (e Entry) Undated() bool { return e.Date.IsZero() }

// PnLEntry is one swap's mark-to-curve result in its quote currency.
type PnLEntry struct {
	TradeID  string
	Currency string
	Amount   decimal.Decimal
}

// PnL accumulates P&L by currency.
type PnL map[string]decimal.Decimal

func (p PnL) Add(e PnLEntry) {
	p[e.Currency] = p[e.Currency].Add(e.Amount)
}

// Merge adds every currency of o into p.
func (p PnL) Merge(o PnL) {
	for ccy, amt := range o {
		p[ccy] = p[ccy].Add(amt)
	}
}

// Currencies returns the currencies in p, sorted.
func (p PnL) Currencies() []string {
	out := make([]string, 0, len(p))
	for ccy := range p {
		out = append(out, ccy)
	}
	sort.Strings(out)
	return out
}
