// Package report groups a run's cashflows by settlement horizon and renders
// the HTML views of a run.
package report

import (
	"sort"
	"time"

	"github.com/rustyeddy/fxflow/cashflow"
	"github.com/rustyeddy/fxflow/market"
	"github.com/shopspring/decimal"
)

// Bucket is a settlement horizon relative to today.
type Bucket int

const (
	Today Bucket = iota
	ThisWeek
	ThisMonth
	Next3Months
	Beyond
)

var bucketNames = [...]string{"Today", "This Week", "This Month", "Next 3 Months", "Beyond"}

// Buckets lists every horizon in display order.
var Buckets = []Bucket{Today, ThisWeek, ThisMonth, Next3Months, Beyond}

func (b Bucket) String() string {
	if b < Today || b > Beyond {
		return "Unknown"
	}
	return bucketNames[b]
}

// Horizons holds the exclusive end date of each bounded bucket.
type Horizons struct {
	Today      time.Time
	WeekEnd    time.Time // next Monday
	MonthEnd   time.Time // first day of next month
	QuarterEnd time.Time // today + 90 days
}

func HorizonsFor(today time.Time) Horizons {
	today = market.DateOf(today)
	// Days since Monday.
	wd := (int(today.Weekday()) + 6) % 7
	return Horizons{
		Today:      today,
		WeekEnd:    today.AddDate(0, 0, 7-wd),
		MonthEnd:   time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, time.UTC),
		QuarterEnd: today.AddDate(0, 0, 90),
	}
}

// Classify puts a settlement date into its bucket. Today holds the overdue
// dates, so cashflows settling today fall in This Week. Undated cashflows
// are Beyond.
func (h Horizons) Classify(date time.Time) Bucket {
	if date.IsZero() {
		return Beyond
	}
	date = market.DateOf(date)
	switch {
	case date.Before(h.Today):
		return Today
	case date.Before(h.WeekEnd):
		return ThisWeek
	case date.Before(h.MonthEnd):
		return ThisMonth
	case date.Before(h.QuarterEnd):
		return Next3Months
	default:
		return Beyond
	}
}

// Amount is a per-currency figure.
type Amount struct {
	Currency string
	Amount   decimal.Decimal
}

// Rate is a spot rate quoted in the curve report.
type Rate struct {
	Pair string
	Rate decimal.Decimal
}

// BucketSummary totals one horizon by currency.
type BucketSummary struct {
	Bucket Bucket
	Name   string
	End    time.Time // zero for Beyond
	Count  int
	Totals []Amount
}

// Summary is the horizon view of a run.
type Summary struct {
	Today     time.Time
	Buckets   []BucketSummary
	PnL       []Amount
	SpotRates []Rate
}

// Summarize groups entries into horizons and collects the P&L and spot rate
// tables. Currencies and pairs are sorted.
func Summarize(entries []cashflow.Entry, pnl cashflow.PnL, spot map[string]decimal.Decimal, today time.Time) Summary {
	h := HorizonsFor(today)
	ends := map[Bucket]time.Time{
		Today:       h.Today,
		ThisWeek:    h.WeekEnd,
		ThisMonth:   h.MonthEnd,
		Next3Months: h.QuarterEnd,
	}

	sums := make(map[Bucket]cashflow.PnL, len(Buckets))
	counts := make(map[Bucket]int, len(Buckets))
	for _, e := range entries {
		b := h.Classify(e.Date)
		if sums[b] == nil {
			sums[b] = cashflow.PnL{}
		}
		sums[b].Add(cashflow.PnLEntry{Currency: e.Currency, Amount: e.Amount})
		counts[b]++
	}

	s := Summary{Today: h.Today}
	for _, b := range Buckets {
		s.Buckets = append(s.Buckets, BucketSummary{
			Bucket: b,
			Name:   b.String(),
			End:    ends[b],
			Count:  counts[b],
			Totals: amounts(sums[b]),
		})
	}
	s.PnL = amounts(pnl)

	pairs := make([]string, 0, len(spot))
	for p := range spot {
		pairs = append(pairs, p)
	}
	sort.Strings(pairs)
	for _, p := range pairs {
		s.SpotRates = append(s.SpotRates, Rate{Pair: p, Rate: spot[p]})
	}
	return s
}

func amounts(m cashflow.PnL) []Amount {
	var out []Amount
	for _, ccy := range m.Currencies() {
		out = append(out, Amount{Currency: ccy, Amount: m[ccy]})
	}
	return out
}

// Upcoming returns the entries settling today or later plus the undated
// ones, ordered by date then currency with undated entries last.
func Upcoming(entries []cashflow.Entry, today time.Time) []cashflow.Entry {
	today = market.DateOf(today)
	var out []cashflow.Entry
	for _, e := range entries {
		if e.Undated() || !market.DateOf(e.Date).Before(today) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Undated() != b.Undated() {
			return !a.Undated()
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.Currency < b.Currency
	})
	return out
}
