package cashflow

import (
	"time"

	"github.com/rustyeddy/fxflow/market"
	"github.com/rustyeddy/fxflow/pkg/logging"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Points supplies market implied forward points for a swap's far leg.
// curve.Interpolator and curve.Cached satisfy it.
type Points interface {
	Interpolate(pair string, valueDate, maturity, reference time.Time) (decimal.Decimal, bool)
}

// ratePlaces bounds the decimals kept when dividing notionals into a rate.
const ratePlaces int32 = 20

// Engine derives cashflows and swap P&L for single trades. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	points    Points
	reference time.Time
	log       logrus.FieldLogger
}

type Option func(*Engine)

// WithReference fixes the date swaps are marked from. Without it the points
// source uses today.
func WithReference(t time.Time) Option {
	return func(e *Engine) { e.reference = market.DateOf(t) }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine returns an engine marking swaps against points. points may be
// nil, in which case swaps use their contracted points and have no P&L.
func NewEngine(points Points, opts ...Option) *Engine {
	e := &Engine{points: points}
	for _, o := range opts {
		o(e)
	}
	e.log = logging.OrDiscard(e.log)
	return e
}

// Cashflows returns the cashflows of t. Trades missing the fields their deal
// type needs, and unsupported deal types, yield nothing.
func (e *Engine) Cashflows(t Trade) []Entry {
	switch t.DealType {
	case Spot:
		if t.ValueDate.IsZero() {
			return nil
		}
		return e.exchange(t, t.ValueDate, t.Amount1, t.Amount2, LegSpot)
	case OutrightForward:
		if t.MaturityDate.IsZero() {
			return nil
		}
		return e.exchange(t, t.MaturityDate, t.Amount1, t.Amount2, LegForward)
	case FXSwap:
		return e.swap(t)
	default:
		return nil
	}
}

func (e *Engine) swap(t Trade) []Entry {
	if !swapComplete(t) {
		return nil
	}

	nearRate := t.Amount2.DivRound(t.Amount1, ratePlaces).Abs()
	pts, ok := e.curvePoints(t)
	if !ok {
		pts = t.RatePrice
		e.log.WithFields(logrus.Fields{
			"trade": t.DealID,
			"pair":  t.Pair,
		}).Debug("no curve points, using contracted rate")
	}
	farRate := nearRate.Add(market.PointsToRate(t.Pair, pts))
	farAmount2 := t.Amount1.Mul(farRate)

	near := e.exchange(t, t.ValueDate, t.Amount1, t.Amount2, LegSwapNear)
	far := e.exchange(t, t.MaturityDate, t.Amount1.Neg(), farAmount2, LegSwapFar)
	return append(near, far...)
}

// PnL marks an FX swap to the curve: -amount1 * (curve - contracted) /
// divisor, in the quote currency. Swaps the curve cannot price contribute
// nothing, unlike Cashflows which falls back to the contracted points.
func (e *Engine) PnL(t Trade) (PnLEntry, bool) {
	if t.DealType != FXSwap || !swapComplete(t) {
		return PnLEntry{}, false
	}
	pts, ok := e.curvePoints(t)
	if !ok {
		return PnLEntry{}, false
	}
	pair := market.ParsePair(t.Pair)
	return PnLEntry{
		TradeID:  t.DealID,
		Currency: pair.Quote,
		Amount:   t.Amount1.Neg().Mul(market.PointsToRate(t.Pair, pts.Sub(t.RatePrice))),
	}, true
}

func (e *Engine) curvePoints(t Trade) (decimal.Decimal, bool) {
	if e.points == nil {
		return decimal.Zero, false
	}
	return e.points.Interpolate(t.Pair, t.ValueDate, t.MaturityDate, e.reference)
}

func swapComplete(t Trade) bool {
	return !t.Amount1.IsZero() && !t.ValueDate.IsZero() && !t.MaturityDate.IsZero()
}

// exchange books the base and quote legs of one settlement.
func (e *Engine) exchange(t Trade, date time.Time, base, quote decimal.Decimal, leg Leg) []Entry {
	pair := market.ParsePair(t.Pair)
	date = market.DateOf(date)
	return []Entry{
		{Date: date, Currency: pair.Base, Amount: market.RoundCash(pair.Base, base), TradeID: t.DealID, Leg: leg},
		{Date: date, Currency: pair.Quote, Amount: market.RoundCash(pair.Quote, quote), TradeID: t.DealID, Leg: leg},
	}
}
