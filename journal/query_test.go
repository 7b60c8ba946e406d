package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rustyeddy/fxflow/cashflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRun(t *testing.T, j *SQLite, runID string, created time.Time) {
	t.Helper()

	ctx := context.Background()
	_, err := j.StartRun(ctx, Run{RunID: runID, Created: created, TradesFile: runID + ".csv"})
	require.NoError(t, err)

	entries := []cashflow.Entry{
		{Date: date(2026, 1, 5), Currency: "USD", Amount: d("-1"), TradeID: "T3", Leg: cashflow.LegForward},
		{Date: date(2025, 12, 29), Currency: "USD", Amount: d("-100000000"), TradeID: "T1", Leg: cashflow.LegSwapNear},
		{Date: date(2025, 12, 29), Currency: "CNY", Amount: d("701070000"), TradeID: "T1", Leg: cashflow.LegSwapNear},
		{Date: date(2025, 12, 30), Currency: "USD", Amount: d("100000000"), TradeID: "T1", Leg: cashflow.LegSwapFar},
		{Currency: "EUR", Amount: d("7"), TradeID: "T4", Leg: cashflow.LegSpot},
	}
	for _, e := range entries {
		require.NoError(t, j.RecordCashflow(e))
	}
	require.NoError(t, j.RecordAggregates(ctx, cashflow.Aggregated(entries).Rows()))
	require.NoError(t, j.RecordPnL("CNY", d("2000")))
}

func TestGetRunNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.GetRun(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRunNotFound))
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestListRunsNewestFirst(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	seedRun(t, j, "R1", base)
	seedRun(t, j, "R3", base.Add(2*time.Hour))
	seedRun(t, j, "R2", base.Add(time.Hour))

	runs, err := j.ListRuns(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "R3", runs[0].RunID)
	assert.Equal(t, "R2", runs[1].RunID)
	assert.Equal(t, "R1", runs[2].RunID)
	assert.Equal(t, "R1.csv", runs[2].TradesFile)
}

func TestListRunsEmpty(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	runs, err := j.ListRuns(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestListAggregatesOrderedUndatedLast(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	seedRun(t, j, "R1", time.Now())

	rows, err := j.ListAggregates(context.Background(), "R1")
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, date(2025, 12, 29), rows[0].Date)
	assert.Equal(t, "CNY", rows[0].Currency)
	assert.Equal(t, "USD", rows[1].Currency)
	assert.Equal(t, date(2025, 12, 30), rows[2].Date)
	assert.Equal(t, date(2026, 1, 5), rows[3].Date)
	assert.True(t, rows[4].Date.IsZero())
	assert.Equal(t, "EUR", rows[4].Currency)
	assert.True(t, d("7").Equal(rows[4].Amount))
}

func TestListAggregatesScopedToRun(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	seedRun(t, j, "R1", time.Now())

	rows, err := j.ListAggregates(context.Background(), "other")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestListCashflowsBetween(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	seedRun(t, j, "R1", time.Now())
	ctx := context.Background()

	got, err := j.ListCashflowsBetween(ctx, "R1", date(2025, 12, 29), date(2025, 12, 30))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "USD", got[0].Currency, "recording order within a date")
	assert.Equal(t, "CNY", got[1].Currency)
	assert.Equal(t, cashflow.LegSwapNear, got[0].Leg)

	got, err = j.ListCashflowsBetween(ctx, "R1", date(2025, 1, 1), date(2027, 1, 1))
	require.NoError(t, err)
	require.Len(t, got, 4, "undated entries are never in a range")
	assert.Equal(t, "T3", got[3].TradeID)

	got, err = j.ListCashflowsBetween(ctx, "R1", date(2026, 1, 5), date(2026, 1, 5))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListPnL(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	seedRun(t, j, "R1", time.Now())

	pnl, err := j.ListPnL(context.Background(), "R1")
	require.NoError(t, err)
	assert.Equal(t, []string{"CNY"}, pnl.Currencies())
	assert.True(t, d("2000").Equal(pnl["CNY"]))
}
