package journal

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/rustyeddy/fxflow/cashflow"
	"github.com/rustyeddy/fxflow/market"
)

// RunReport is everything the Org export shows for one run.
type RunReport struct {
	Run        Run
	Aggregates []cashflow.Row
	PnL        cashflow.PnL
}

var runOrgFuncs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "(undated)"
		}
		return market.FormatDate(t)
	},
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
	"shortID": shortID,
}

var runOrgTemplate = template.Must(template.New("run").Funcs(runOrgFuncs).Parse(RunOrgTemplate))

// FormatRunOrg renders a run as an Org-mode entry. Structured facts go into
// the PROPERTIES drawer so they stay searchable.
func FormatRunOrg(r RunReport) (string, error) {
	var buf bytes.Buffer
	if err := runOrgTemplate.Execute(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteRunOrg writes FormatRunOrg output to path.
func WriteRunOrg(path string, r RunReport) error {
	s, err := FormatRunOrg(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(s), 0644)
}

const RunOrgTemplate = `* CASHFLOW RUN: {{.Run.TradesFile}} ({{shortID .Run.RunID}})
:PROPERTIES:
:RUN_ID:      {{.Run.RunID}}
:TRADES_FILE: {{.Run.TradesFile}}
:POINTS_FILE: {{if .Run.PointsFile}}{{.Run.PointsFile}}{{else}}(none){{end}}
:STRATEGY:    {{.Run.Strategy}}
:DAY_COUNT:   {{.Run.DayCount}}
:REFERENCE:   {{if .Run.Reference.IsZero}}(clock){{else}}{{date .Run.Reference}}{{end}}
:TRADES:      {{.Run.Trades}}
:SKIPPED:     {{.Run.Skipped}}
:ENTRIES:     {{.Run.Entries}}
:CREATED:     [{{(orTime .Run.Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Aggregated Cashflows
| Date | Currency | Cashflow |
|------+----------+----------|
{{- range .Aggregates }}
| {{date .Date}} | {{.Currency}} | {{.Amount.String}} |
{{- end }}

** P&L
| Currency | P&L |
|----------+-----|
{{- range $ccy := .PnL.Currencies }}
| {{$ccy}} | {{(index $.PnL $ccy).String}} |
{{- end }}
`

// FormatRunsOrg renders a run listing as an Org table.
func FormatRunsOrg(runs []Run) string {
	var b strings.Builder
	b.WriteString("| Run | Created | Trades file | Trades | Skipped | Entries |\n")
	b.WriteString("|-----+---------+-------------+--------+---------+---------|\n")
	for _, r := range runs {
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %d | %d | %d |\n",
			r.RunID, r.Created.UTC().Format(time.RFC3339), r.TradesFile, r.Trades, r.Skipped, r.Entries))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
