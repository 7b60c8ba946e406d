package market

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a trade-file number such as "1,200,000" or "-53980.8".
// Empty or malformed input yields zero.
func ParseAmount(s string) decimal.Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseDecimal is the strict form of ParseAmount: thousands separators are
// removed, anything else that does not parse is an error.
func ParseDecimal(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// Single digit days and months are accepted, as spreadsheets export them.
const tradeDateLayout = "2/1/2006"

// ParseTradeDate parses the DD/MM/YYYY dates of the trade file.
func ParseTradeDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(tradeDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseCurveDate accepts both YYYY/MM/DD and DD/MM/YYYY. A four digit first
// field selects the year-first form.
func ParseCurveDate(s string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	n := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return time.Time{}, false
		}
		n[i] = v
	}
	y, m, d := n[2], n[1], n[0]
	if len(strings.TrimSpace(parts[0])) == 4 {
		y, d = n[0], n[2]
	}
	return NewDate(y, time.Month(m), d)
}

// NewDate builds a UTC calendar date and rejects values time.Date would
// normalise (31/02, month 13).
func NewDate(y int, m time.Month, d int) (time.Time, bool) {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || t.Month() != m || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

// DateOf truncates t to its calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date as ISO 8601, or "" when undated.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
