// Package journal reads the trade blotter and persists the results of a
// cashflow run: aggregated CSV, detailed CSV journal and a SQLite run
// journal that can be queried and exported to Org mode.
package journal

import (
	"time"

	"github.com/rustyeddy/fxflow/cashflow"
	"github.com/shopspring/decimal"
)

// Run mirrors the runs table.
type Run struct {
	RunID     string
	Created   time.Time
	Reference time.Time // curve reference date, zero when the clock was used

	TradesFile string
	PointsFile string
	Strategy   string
	DayCount   string

	// Results
	Trades  int
	Skipped int
	Entries int
}

// Journal records the detailed output of a run.
type Journal interface {
	RecordCashflow(cashflow.Entry) error
	RecordPnL(currency string, amount decimal.Decimal) error
	Close() error
}

// WriteResult records every cashflow entry of res followed by its P&L
// totals, currencies in sorted order.
func WriteResult(j Journal, res *cashflow.Result) error {
	for _, e := range res.Entries {
		if err := j.RecordCashflow(e); err != nil {
			return err
		}
	}
	for _, ccy := range res.PnL.Currencies() {
		if err := j.RecordPnL(ccy, res.PnL[ccy]); err != nil {
			return err
		}
	}
	return nil
}

var (
	_ Journal = (*CSVJournal)(nil)
	_ Journal = (*SQLite)(nil)
)
