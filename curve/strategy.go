package curve

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/fxflow/market"
	"github.com/shopspring/decimal"
)

// Strategy decides how a data row is read and how its horizon is resolved.
// It is chosen once per Store.
type Strategy interface {
	Name() string
	ParseRow(fields []string) (Point, error)
	Horizon(p Point, from time.Time, dc DayCount) int
}

// spotQuoter is implemented by strategies whose report shape carries
// outright spot quotes.
type spotQuoter interface {
	SpotRate(fields []string) (decimal.Decimal, bool)
}

// ErrShortRow is returned by ParseRow for rows with fewer than four fields.
var ErrShortRow = errors.New("curve row has fewer than 4 fields")

// DateAnchored reads rows of the form
//
//	label, settlementDate, bidPoints, askPoints[, bidOutright, askOutright]
//
// and measures each point from the computation date to its settlement date.
type DateAnchored struct{}

func (DateAnchored) Name() string { return "date" }

func (DateAnchored) ParseRow(fields []string) (Point, error) {
	if len(fields) < 4 {
		return Point{}, ErrShortRow
	}
	settle, ok := market.ParseCurveDate(fields[1])
	if !ok {
		return Point{}, fmt.Errorf("bad settlement date %q", fields[1])
	}
	bid, ask, err := parseBidAsk(fields[2], fields[3])
	if err != nil {
		return Point{}, err
	}
	p := newPoint(fields[0], bid, ask)
	p.Settlement = settle
	return p, nil
}

func (DateAnchored) Horizon(p Point, from time.Time, dc DayCount) int {
	return dc.Days(from, p.Settlement)
}

// SpotLabel marks the spot row of a date-anchored report.
const SpotLabel = "SP"

// SpotRate returns the outright mid of an SP row that carries outright
// bid/ask in its fifth and sixth fields.
func (DateAnchored) SpotRate(fields []string) (decimal.Decimal, bool) {
	if len(fields) < 6 || fields[0] != SpotLabel {
		return decimal.Zero, false
	}
	bid, ask, err := parseBidAsk(fields[4], fields[5])
	if err != nil {
		return decimal.Zero, false
	}
	return bid.Add(ask).Div(decimal.NewFromInt(2)), true
}

// Tenors maps standard tenor codes to a fixed horizon in days.
var Tenors = map[string]int{
	"SP":  0,
	"ON":  1,
	"TN":  2,
	"SN":  3,
	"1W":  7,
	"2W":  14,
	"3W":  21,
	"1M":  30,
	"2M":  60,
	"3M":  90,
	"4M":  120,
	"5M":  150,
	"6M":  180,
	"9M":  270,
	"1Y":  365,
	"18M": 540,
	"2Y":  730,
	"3Y":  1095,
	"4Y":  1460,
	"5Y":  1825,
}

// TenorAnchored reads rows of the form
//
//	tenorCode, <ignored>, bidPoints, askPoints
//
// and takes the horizon from Tenors. Unknown codes resolve to 0.
type TenorAnchored struct{}

func (TenorAnchored) Name() string { return "tenor" }

func (TenorAnchored) ParseRow(fields []string) (Point, error) {
	if len(fields) < 4 {
		return Point{}, ErrShortRow
	}
	bid, ask, err := parseBidAsk(fields[2], fields[3])
	if err != nil {
		return Point{}, err
	}
	code := strings.ToUpper(fields[0])
	p := newPoint(code, bid, ask)
	p.TenorDays = Tenors[code]
	return p, nil
}

func (TenorAnchored) Horizon(p Point, _ time.Time, _ DayCount) int {
	return p.TenorDays
}

// Known reports whether code is in the tenor table.
func (TenorAnchored) Known(code string) bool {
	_, ok := Tenors[strings.ToUpper(code)]
	return ok
}

// StrategyByName maps a config value to a strategy.
func StrategyByName(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "date":
		return DateAnchored{}, nil
	case "tenor":
		return TenorAnchored{}, nil
	default:
		return nil, fmt.Errorf("unknown curve strategy %q (want date|tenor)", name)
	}
}

func parseBidAsk(b, a string) (decimal.Decimal, decimal.Decimal, error) {
	bid, err := decimal.NewFromString(strings.TrimSpace(b))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("bad bid %q: %w", b, err)
	}
	ask, err := decimal.NewFromString(strings.TrimSpace(a))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("bad ask %q: %w", a, err)
	}
	return bid, ask, nil
}
