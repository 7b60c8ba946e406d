package cashflow

import (
	"sort"
	"time"

	"github.com/rustyeddy/fxflow/market"
	"github.com/shopspring/decimal"
)

// Key groups cashflows settling on the same date in the same currency. A
// zero Date is the undated bucket.
type Key struct {
	Date     time.Time
	Currency string
}

// Row is one materialised aggregate.
type Row struct {
	Date     time.Time
	Currency string
	Amount   decimal.Decimal
}

// Aggregate sums cashflows by (date, currency). Sums are exact; adding and
// merging are commutative so partial aggregates can be combined in any
// order.
type Aggregate struct {
	sums map[Key]decimal.Decimal
}

func NewAggregate() *Aggregate {
	return &Aggregate{sums: make(map[Key]decimal.Decimal)}
}

// Aggregated builds an aggregate from a finished list of entries.
func Aggregated(entries []Entry) *Aggregate {
	a := NewAggregate()
	for _, e := range entries {
		a.Add(e)
	}
	return a
}

func (a *Aggregate) Add(e Entry) {
	k := Key{Date: market.DateOf(e.Date), Currency: e.Currency}
	a.sums[k] = a.sums[k].Add(e.Amount)
}

// Merge adds every key of o into a.
func (a *Aggregate) Merge(o *Aggregate) {
	if o == nil {
		return
	}
	for k, v := range o.sums {
		a.sums[k] = a.sums[k].Add(v)
	}
}

// Get returns the sum for date and currency.
func (a *Aggregate) Get(date time.Time, ccy string) (decimal.Decimal, bool) {
	v, ok := a.sums[Key{Date: market.DateOf(date), Currency: ccy}]
	return v, ok
}

func (a *Aggregate) Len() int { return len(a.sums) }

// Total is the sum over every key.
func (a *Aggregate) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range a.sums {
		total = total.Add(v)
	}
	return total
}

// Rows returns the aggregate ordered by date then currency, undated last.
func (a *Aggregate) Rows() []Row {
	out := make([]Row, 0, len(a.sums))
	for k, v := range a.sums {
		out = append(out, Row{Date: k.Date, Currency: k.Currency, Amount: v})
	}
	sort.Slice(out, func(i, j int) bool {
		return rowLess(out[i], out[j])
	})
	return out
}

func rowLess(x, y Row) bool {
	switch {
	case x.Date.IsZero() != y.Date.IsZero():
		return y.Date.IsZero()
	case !x.Date.Equal(y.Date):
		return x.Date.Before(y.Date)
	default:
		return x.Currency < y.Currency
	}
}

// Entry turns a row back into an entry with no trade or leg.
func (r Row) Entry() Entry {
	return Entry{Date: r.Date, Currency: r.Currency, Amount: r.Amount}
}
