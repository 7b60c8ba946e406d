package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/rustyeddy/fxflow/cashflow"
	"github.com/rustyeddy/fxflow/market"
	"github.com/shopspring/decimal"
)

// WriteAggregateCSV writes the Date,Currency,Cashflow file with a UTF-8 BOM
// so spreadsheets pick the right encoding.
func WriteAggregateCSV(path string, rows []cashflow.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := io.WriteString(f, bom); err != nil {
		f.Close()
		return err
	}
	if err := WriteAggregates(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteAggregates writes rows in the order given. Undated rows have an empty
// Date.
func WriteAggregates(w io.Writer, rows []cashflow.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Currency", "Cashflow"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{market.FormatDate(r.Date), r.Currency, r.Amount.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVJournal writes one line per cashflow entry and one per P&L currency.
type CSVJournal struct {
	entries *csv.Writer
	pnl     *csv.Writer
	ef, pf  *os.File
}

func NewCSV(entriesPath, pnlPath string) (*CSVJournal, error) {
	ef, err := os.Create(entriesPath)
	if err != nil {
		return nil, err
	}
	pf, err := os.Create(pnlPath)
	if err != nil {
		ef.Close()
		return nil, err
	}

	ew := csv.NewWriter(ef)
	pw := csv.NewWriter(pf)
	if err := writeHeader(ew, "date", "currency", "cashflow", "trade_id", "type"); err != nil {
		ef.Close()
		pf.Close()
		return nil, err
	}
	if err := writeHeader(pw, "currency", "pnl"); err != nil {
		ef.Close()
		pf.Close()
		return nil, err
	}

	return &CSVJournal{entries: ew, pnl: pw, ef: ef, pf: pf}, nil
}

func writeHeader(w *csv.Writer, cols ...string) error {
	if err := w.Write(cols); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (j *CSVJournal) RecordCashflow(e cashflow.Entry) error {
	err := j.entries.Write([]string{
		market.FormatDate(e.Date),
		e.Currency,
		e.Amount.String(),
		e.TradeID,
		string(e.Leg),
	})
	if err != nil {
		return err
	}
	j.entries.Flush()
	return j.entries.Error()
}

func (j *CSVJournal) RecordPnL(currency string, amount decimal.Decimal) error {
	if err := j.pnl.Write([]string{currency, amount.String()}); err != nil {
		return err
	}
	j.pnl.Flush()
	return j.pnl.Error()
}

func (j *CSVJournal) Close() error {
	j.entries.Flush()
	if err := j.entries.Error(); err != nil {
		return err
	}
	j.pnl.Flush()
	if err := j.pnl.Error(); err != nil {
		return err
	}

	if err := j.ef.Close(); err != nil {
		return err
	}
	return j.pf.Close()
}
