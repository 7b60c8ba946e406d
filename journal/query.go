package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/fxflow/cashflow"
	"github.com/rustyeddy/fxflow/market"
)

const runColumns = `run_id, created, reference, trades_file, points_file, strategy, day_count, trades, skipped, entries`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var (
		rec Run
		ref sql.NullString
	)
	err := s.Scan(
		&rec.RunID,
		&rec.Created,
		&ref,
		&rec.TradesFile,
		&rec.PointsFile,
		&rec.Strategy,
		&rec.DayCount,
		&rec.Trades,
		&rec.Skipped,
		&rec.Entries,
	)
	rec.Reference = scanDate(ref)
	return rec, err
}

// GetRun returns a single run by ID.
func (j *SQLite) GetRun(ctx context.Context, runID string) (Run, error) {
	row := j.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)

	rec, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, fmt.Errorf("run %q: %w", runID, ErrRunNotFound)
		}
		return Run{}, err
	}
	return rec, nil
}

// ListRuns returns every run, newest first.
func (j *SQLite) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY created DESC, run_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAggregates returns the aggregated rows of a run ordered by date then
// currency, undated rows last.
func (j *SQLite) ListAggregates(ctx context.Context, runID string) ([]cashflow.Row, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT date, currency, cashflow
		FROM aggregates
		WHERE run_id = ?
		ORDER BY date IS NULL, date, currency`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []cashflow.Row
	for rows.Next() {
		var (
			r    cashflow.Row
			date sql.NullString
		)
		if err := rows.Scan(&date, &r.Currency, &r.Amount); err != nil {
			return nil, err
		}
		r.Date = scanDate(date)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCashflowsBetween returns the dated cashflows of a run settling within
// [start, end), in date order and then in the order they were recorded.
func (j *SQLite) ListCashflowsBetween(ctx context.Context, runID string, start, end time.Time) ([]cashflow.Entry, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT date, currency, cashflow, trade_id, type
		FROM cashflows
		WHERE run_id = ? AND date >= ? AND date < ?
		ORDER BY date ASC, seq ASC`,
		runID, market.FormatDate(market.DateOf(start)), market.FormatDate(market.DateOf(end)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []cashflow.Entry
	for rows.Next() {
		var (
			e    cashflow.Entry
			date sql.NullString
			leg  string
		)
		if err := rows.Scan(&date, &e.Currency, &e.Amount, &e.TradeID, &leg); err != nil {
			return nil, err
		}
		e.Date = scanDate(date)
		e.Leg = cashflow.Leg(leg)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPnL returns the P&L totals of a run by currency.
func (j *SQLite) ListPnL(ctx context.Context, runID string) (cashflow.PnL, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT currency, pnl FROM pnl WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := cashflow.PnL{}
	for rows.Next() {
		var e cashflow.PnLEntry
		if err := rows.Scan(&e.Currency, &e.Amount); err != nil {
			return nil, err
		}
		out.Add(e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
