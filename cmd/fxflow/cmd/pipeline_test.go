package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rustyeddy/fxflow/config"
	"github.com/rustyeddy/fxflow/journal"
	"github.com/rustyeddy/fxflow/pkg/logging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTrades = "Deal Id,Type of Deal,Security,Amount1,Amount2,Value Date,Mat. Date,Rate/Price,Folder\n" +
	"VAL_IMP:7750129,Spot,JPY/CNY,1200000,-53980.8,25/12/2025,,,FX_SPOT\n" +
	"VAL_IMP:2016522,FX Swap,USD/CNY,-100000000,701070000,29/12/2025,30/12/2025,-0.5,JSH_SWAP\n" +
	"VAL_IMP:0000001,FX Swap,USD/CNY,-5000000,35050000,29/12/2025,30/01/2026,-12,JSH_SWPPOS\n"

const testPoints = `USDCNY
Tenor,Settlement,Bid,Ask,BidOutright,AskOutright
SP,2025/12/29,0,0,7.0100,7.0120
1M,2026/01/29,-110,-90
3M,2026/03/29,-310,-290
`

var today = time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	trades := filepath.Join(dir, "trades.csv")
	require.NoError(t, os.WriteFile(trades, []byte(testTrades), 0644))

	cfg := config.Default()
	cfg.Input.TradesFile = trades
	cfg.Input.IgnoreFolders = []string{"JSH_SWPPOS", "ZF-FXSWAP"}
	cfg.Output.Dir = filepath.Join(dir, "out")
	cfg.Engine.Workers = 2
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestRunPipelineWithoutCurve(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	out, err := runPipeline(context.Background(), cfg, logging.Discard(), today)
	require.NoError(t, err)

	assert.Equal(t, 2, out.Result.Trades)
	assert.Equal(t, 0, out.Result.Skipped)
	assert.Len(t, out.Result.Entries, 6)
	assert.Empty(t, out.Result.PnL, "no curve, no P&L")
	assert.Len(t, out.Outputs, 3)

	data, err := os.ReadFile(cfg.Output.Path(cfg.Output.AggregateCSV))
	require.NoError(t, err)
	want := "\ufeffDate,Currency,Cashflow\n" +
		"2025-12-25,CNY,-53980.8\n" +
		"2025-12-25,JPY,1200000\n" +
		"2025-12-29,CNY,701070000\n" +
		"2025-12-29,USD,-100000000\n" +
		"2025-12-30,CNY,-701065000\n" +
		"2025-12-30,USD,100000000\n"
	assert.Equal(t, want, string(data))

	html, err := os.ReadFile(cfg.Output.Path(cfg.Output.CashflowHTML))
	require.NoError(t, err)
	assert.NotContains(t, string(html), "2025-12-25", "settled before today")
	assert.Contains(t, string(html), "-701,065,000.00")

	summary, err := os.ReadFile(cfg.Output.Path(cfg.Output.SummaryHTML))
	require.NoError(t, err)
	assert.Contains(t, string(summary), "Cashflow Horizon Summary 2025-12-26")
}

func TestRunPipelineWithCurveAndSQLite(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	points := filepath.Join(filepath.Dir(cfg.Input.TradesFile), "points.csv")
	require.NoError(t, os.WriteFile(points, []byte(testPoints), 0644))
	cfg.Input.PointsFile = points
	cfg.Curve.Reference = "2025-12-29"
	cfg.Curve.Cache = true
	cfg.Journal = config.JournalConfig{Type: "sqlite", DBPath: filepath.Join(cfg.Output.Dir, "runs.db")}
	require.NoError(t, cfg.Validate())

	ctx := context.Background()
	out, err := runPipeline(ctx, cfg, logging.Discard(), today)
	require.NoError(t, err)
	require.NotEmpty(t, out.RunID)
	assert.Equal(t, 1, out.Pairs)

	// 1M is 31 days out, the 1 day swap takes the flat short end: -100.
	assert.True(t, decimal.RequireFromString("-995000").Equal(out.Result.PnL["CNY"]))

	data, err := os.ReadFile(cfg.Output.Path(cfg.Output.AggregateCSV))
	require.NoError(t, err)
	assert.Contains(t, string(data), "2025-12-30,CNY,-700070000\n")

	summary, err := os.ReadFile(cfg.Output.Path(cfg.Output.SummaryHTML))
	require.NoError(t, err)
	assert.Contains(t, string(summary), "<tr><td>USDCNY</td><td>7.011</td></tr>")

	j, err := journal.NewSQLite(cfg.Journal.DBPath)
	require.NoError(t, err)
	defer j.Close()

	run, err := j.GetRun(ctx, out.RunID)
	require.NoError(t, err)
	assert.Equal(t, 2, run.Trades)
	assert.Equal(t, 6, run.Entries)
	assert.Equal(t, "2025-12-29", run.Reference.Format("2006-01-02"))

	rows, err := j.ListAggregates(ctx, out.RunID)
	require.NoError(t, err)
	require.Len(t, rows, len(out.Rows))
	for i, r := range rows {
		assert.True(t, r.Date.Equal(out.Rows[i].Date), "row %d date", i)
		assert.Equal(t, out.Rows[i].Currency, r.Currency)
		assert.True(t, r.Amount.Equal(out.Rows[i].Amount), "row %d: %s != %s", i, r.Amount, out.Rows[i].Amount)
	}

	pnl, err := j.ListPnL(ctx, out.RunID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("-995000").Equal(pnl["CNY"]))
}

func TestRunPipelineCSVJournal(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Journal = config.JournalConfig{Type: "csv", CashflowsFile: "cashflows.csv", PnLFile: "pnl.csv"}
	cfg.Output.CashflowHTML = ""
	cfg.Output.SummaryHTML = ""

	out, err := runPipeline(context.Background(), cfg, logging.Discard(), today)
	require.NoError(t, err)
	assert.Len(t, out.Outputs, 3)

	data, err := os.ReadFile(cfg.Output.Path("cashflows.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 7)
	assert.Equal(t, "2025-12-25,JPY,1200000,VAL_IMP:7750129,Spot", lines[1])
}

func TestRunPipelineMissingTrades(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Input.TradesFile = filepath.Join(t.TempDir(), "missing.csv")
	cfg.Output.Dir = t.TempDir()

	_, err := runPipeline(context.Background(), cfg, logging.Discard(), today)
	assert.Error(t, err)
}

func TestDayBounds(t *testing.T) {
	t.Parallel()

	start, end, err := dayBounds("2025-12-30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 30, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), end)

	_, _, err = dayBounds("30/12/2025")
	assert.Error(t, err)
}
