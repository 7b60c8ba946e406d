package curve

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/fxflow/market"
)

// DayCount measures the horizon between two dates.
type DayCount interface {
	Name() string
	Days(from, to time.Time) int
}

var (
	// CalendarDays is the raw calendar-day difference.
	CalendarDays DayCount = calendarDays{}
	// BusinessDays counts Monday to Friday dates strictly between from and
	// to.
	BusinessDays DayCount = businessDays{}
)

type calendarDays struct{}

func (calendarDays) Name() string { return "calendar" }

func (calendarDays) Days(from, to time.Time) int {
	return int(market.DateOf(to).Sub(market.DateOf(from)).Hours() / 24)
}

type businessDays struct{}

func (businessDays) Name() string { return "business" }

func (businessDays) Days(from, to time.Time) int {
	from, to = market.DateOf(from), market.DateOf(to)
	sign := 1
	if to.Before(from) {
		from, to = to, from
		sign = -1
	}

	total := calendarDays{}.Days(from, to)
	if total == 0 {
		return 0
	}
	// Weekdays in (from, to], then drop to itself.
	n := (total / 7) * 5
	d := from.AddDate(0, 0, (total/7)*7)
	for d.Before(to) {
		d = d.AddDate(0, 0, 1)
		if isWeekday(d) {
			n++
		}
	}
	if isWeekday(to) {
		n--
	}
	return sign * n
}

func isWeekday(t time.Time) bool {
	return t.Weekday() != time.Saturday && t.Weekday() != time.Sunday
}

// DayCountByName maps a config value to a convention.
func DayCountByName(name string) (DayCount, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "calendar", "act":
		return CalendarDays, nil
	case "business", "bus":
		return BusinessDays, nil
	default:
		return nil, fmt.Errorf("unknown day count %q (want calendar|business)", name)
	}
}
