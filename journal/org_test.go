package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rustyeddy/fxflow/cashflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() RunReport {
	return RunReport{
		Run: Run{
			RunID:      "01JABCDEFGHJKMNPQRSTVWXYZ0",
			Created:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			TradesFile: "trades.csv",
			Strategy:   "date",
			DayCount:   "calendar",
			Trades:     2,
			Skipped:    0,
			Entries:    6,
		},
		Aggregates: []cashflow.Row{
			{Date: date(2025, 12, 25), Currency: "JPY", Amount: d("1200000")},
			{Currency: "USD", Amount: d("-1.5")},
		},
		PnL: cashflow.PnL{"USD": d("3"), "CNY": d("2000")},
	}
}

func TestFormatRunOrg(t *testing.T) {
	t.Parallel()

	result, err := FormatRunOrg(sampleReport())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result, "* CASHFLOW RUN: trades.csv (01JABCDE)\n"))
	assert.Contains(t, result, ":PROPERTIES:")
	assert.Contains(t, result, ":RUN_ID:      01JABCDEFGHJKMNPQRSTVWXYZ0")
	assert.Contains(t, result, ":POINTS_FILE: (none)")
	assert.Contains(t, result, ":REFERENCE:   (clock)")
	assert.Contains(t, result, ":ENTRIES:     6")
	assert.Contains(t, result, ":CREATED:     [2026-01-02 Fri 03:04]")
	assert.Contains(t, result, ":END:")

	assert.Contains(t, result, "| 2025-12-25 | JPY | 1200000 |")
	assert.Contains(t, result, "| (undated) | USD | -1.5 |")

	cny := strings.Index(result, "| CNY | 2000 |")
	usd := strings.Index(result, "| USD | 3 |")
	require.True(t, cny > 0 && usd > 0)
	assert.Less(t, cny, usd, "P&L currencies are sorted")
}

func TestFormatRunOrgReference(t *testing.T) {
	t.Parallel()

	r := sampleReport()
	r.Run.Reference = date(2025, 12, 31)
	r.Run.PointsFile = "points.csv"

	result, err := FormatRunOrg(r)
	require.NoError(t, err)
	assert.Contains(t, result, ":REFERENCE:   2025-12-31")
	assert.Contains(t, result, ":POINTS_FILE: points.csv")
}

func TestFormatRunOrgEmpty(t *testing.T) {
	t.Parallel()

	result, err := FormatRunOrg(RunReport{Run: Run{RunID: "short"}})
	require.NoError(t, err)
	assert.Contains(t, result, "(short)")
	assert.Contains(t, result, "** Aggregated Cashflows")
	assert.Contains(t, result, "** P&L")
}

func TestWriteRunOrg(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.org")
	require.NoError(t, WriteRunOrg(path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "* CASHFLOW RUN")
}

func TestFormatRunsOrg(t *testing.T) {
	t.Parallel()

	out := FormatRunsOrg([]Run{
		{RunID: "R1", Created: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), TradesFile: "a.csv", Trades: 3, Skipped: 1, Entries: 4},
	})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "| R1 | 2026-01-02T03:04:05Z | a.csv | 3 | 1 | 4 |", lines[2])
}
