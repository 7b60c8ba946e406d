package report

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rustyeddy/fxflow/cashflow"
	"github.com/rustyeddy/fxflow/market"
	"github.com/shopspring/decimal"
)

var funcs = template.FuncMap{
	"amount": FormatAmount,
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "N/A"
		}
		return market.FormatDate(t)
	},
}

var (
	upcomingTmpl = template.Must(template.New("upcoming").Funcs(funcs).Parse(upcomingHTML))
	summaryTmpl  = template.Must(template.New("summary").Funcs(funcs).Parse(summaryHTML))
)

// FormatAmount renders d with two decimals and thousands separators,
// "-1,234.50".
func FormatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if sign != "" && strings.Trim(whole+frac, "0") == "" {
		sign = ""
	}
	return sign + b.String() + "." + frac
}

type upcomingView struct {
	Today   time.Time
	Entries []cashflow.Entry
}

// RenderUpcoming writes the upcoming cashflows page for entries.
func RenderUpcoming(w io.Writer, entries []cashflow.Entry, today time.Time) error {
	return upcomingTmpl.Execute(w, upcomingView{
		Today:   market.DateOf(today),
		Entries: Upcoming(entries, today),
	})
}

// RenderSummary writes the horizon summary page.
func RenderSummary(w io.Writer, s Summary) error {
	return summaryTmpl.Execute(w, s)
}

// WriteUpcomingHTML renders the upcoming cashflows page to path.
func WriteUpcomingHTML(path string, entries []cashflow.Entry, today time.Time) error {
	return writeFile(path, func(w io.Writer) error { return RenderUpcoming(w, entries, today) })
}

// WriteSummaryHTML renders the horizon summary page to path.
func WriteSummaryHTML(path string, s Summary) error {
	return writeFile(path, func(w io.Writer) error { return RenderSummary(w, s) })
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}

const upcomingHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Upcoming Cashflows</title>
</head>
<body>
<h1>Upcoming Cashflows from {{date .Today}}</h1>
<table>
<thead><tr><th>Date</th><th>Currency</th><th>Cashflow</th><th>Trade</th><th>Type</th></tr></thead>
<tbody>
{{- range .Entries}}
<tr><td>{{date .Date}}</td><td>{{.Currency}}</td><td>{{amount .Amount}}</td><td>{{.TradeID}}</td><td>{{.Leg}}</td></tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`

const summaryHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Cashflow Horizon Summary</title>
</head>
<body>
<h1>Cashflow Horizon Summary {{date .Today}}</h1>
{{- range .Buckets}}
<h2>{{.Name}}{{if not .End.IsZero}} (to {{date .End}}){{end}}</h2>
<table class="horizon">
<thead><tr><th>Currency</th><th>Cashflow</th></tr></thead>
<tbody>
{{- range .Totals}}
<tr><td>{{.Currency}}</td><td>{{amount .Amount}}</td></tr>
{{- else}}
<tr><td colspan="2">No cashflows</td></tr>
{{- end}}
</tbody>
</table>
{{- end}}
<h2>P&amp;L</h2>
<table class="pnl">
<thead><tr><th>Currency</th><th>P&amp;L</th></tr></thead>
<tbody>
{{- range .PnL}}
<tr><td>{{.Currency}}</td><td>{{amount .Amount}}</td></tr>
{{- end}}
</tbody>
</table>
<h2>Spot Rates</h2>
<table class="fx">
<thead><tr><th>Pair</th><th>Rate</th></tr></thead>
<tbody>
{{- range .SpotRates}}
<tr><td>{{.Pair}}</td><td>{{.Rate.String}}</td></tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`
