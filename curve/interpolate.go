package curve

import (
	"sort"
	"time"

	"github.com/rustyeddy/fxflow/market"
	"github.com/shopspring/decimal"
)

// Interpolator returns market implied forward points for a settlement
// horizon from a Store.
type Interpolator struct {
	store *Store
	dc    DayCount
	now   func() time.Time
}

// Option configures an Interpolator.
type Option func(*Interpolator)

// WithClock replaces time.Now as the source of the default reference date.
func WithClock(now func() time.Time) Option {
	return func(in *Interpolator) { in.now = now }
}

// NewInterpolator builds an interpolator over store using the given day
// count. A nil day count means CalendarDays.
func NewInterpolator(store *Store, dc DayCount, opts ...Option) *Interpolator {
	if dc == nil {
		dc = CalendarDays
	}
	in := &Interpolator{store: store, dc: dc, now: time.Now}
	for _, o := range opts {
		o(in)
	}
	return in
}

// DayCount returns the convention used to measure horizons.
func (in *Interpolator) DayCount() DayCount { return in.dc }

type sample struct {
	days int
	mid  decimal.Decimal
}

// Interpolate returns the mid points for settling pair at maturity. The
// horizon is measured from the later of valueDate and reference; a zero
// reference means today. It reports false when the pair is unknown, the
// maturity is missing or not after the computation date, or no quoted point
// lies after the computation date.
//
// Below the first and above the last quoted horizon the nearest point is
// returned unchanged; in between, points are linearly interpolated.
func (in *Interpolator) Interpolate(pair string, valueDate, maturity, reference time.Time) (decimal.Decimal, bool) {
	if in == nil || in.store == nil || maturity.IsZero() {
		return decimal.Zero, false
	}
	series, ok := in.store.Series(pair)
	if !ok || len(series.Points) == 0 {
		return decimal.Zero, false
	}

	if reference.IsZero() {
		reference = in.now()
	}
	calc := market.DateOf(reference)
	if v := market.DateOf(valueDate); v.After(calc) {
		calc = v
	}
	maturity = market.DateOf(maturity)
	if !maturity.After(calc) {
		return decimal.Zero, false
	}

	strategy := in.store.Strategy()
	samples := make([]sample, 0, len(series.Points))
	for _, p := range series.Points {
		d := strategy.Horizon(p, calc, in.dc)
		if d <= 0 {
			continue
		}
		samples = append(samples, sample{days: d, mid: p.Mid})
	}
	if len(samples) == 0 {
		return decimal.Zero, false
	}
	sort.SliceStable(samples, func(i, j int) bool { return samples[i].days < samples[j].days })

	return interpolate(samples, in.dc.Days(calc, maturity)), true
}

// interpolate expects samples sorted ascending by days.
func interpolate(samples []sample, target int) decimal.Decimal {
	first, last := samples[0], samples[len(samples)-1]
	if target <= first.days {
		return first.mid
	}
	if target >= last.days {
		return last.mid
	}

	for i := 1; i < len(samples); i++ {
		s0, s1 := samples[i-1], samples[i]
		if s0.days <= target && target <= s1.days {
			if s0.days == s1.days {
				return s0.mid
			}
			num := decimal.NewFromInt(int64(target - s0.days))
			den := decimal.NewFromInt(int64(s1.days - s0.days))
			return s0.mid.Add(s1.mid.Sub(s0.mid).Mul(num).Div(den))
		}
	}
	// unreachable: first.days < target < last.days always brackets
	return last.mid
}
