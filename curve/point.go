// Package curve loads forward points reports and interpolates a points value
// for an arbitrary settlement horizon.
package curve

import (
	"time"

	"github.com/shopspring/decimal"
)

// Point is one quoted row of a forward points report. Date-anchored reports
// fill Settlement, tenor-anchored reports fill TenorDays.
type Point struct {
	Label      string
	Settlement time.Time
	TenorDays  int

	Bid decimal.Decimal
	Ask decimal.Decimal
	Mid decimal.Decimal
}

func newPoint(label string, bid, ask decimal.Decimal) Point {
	return Point{
		Label: label,
		Bid:   bid,
		Ask:   ask,
		Mid:   bid.Add(ask).Div(decimal.NewFromInt(2)),
	}
}

// Series holds the points of one currency pair in report order.
type Series struct {
	Pair   string
	Points []Point
}
