package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/fxflow/cashflow"
	"github.com/rustyeddy/fxflow/market"
	"github.com/rustyeddy/fxflow/pkg/id"
	"github.com/shopspring/decimal"
)

// ErrRunNotFound is returned by GetRun for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

var errNoRun = errors.New("journal: no run started")

// SQLite journals runs into a single database file. Cashflows and P&L are
// attached to the run opened with StartRun.
type SQLite struct {
	db    *sql.DB
	runID string
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// StartRun inserts run and makes it the target of later Record calls. An
// empty RunID gets a fresh ULID and a zero Created gets the current time.
func (j *SQLite) StartRun(ctx context.Context, run Run) (Run, error) {
	if run.RunID == "" {
		run.RunID = id.New()
	}
	if run.Created.IsZero() {
		run.Created = time.Now().UTC()
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO runs
		(run_id, created, reference, trades_file, points_file, strategy, day_count, trades, skipped, entries)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Created, nullDate(run.Reference), run.TradesFile, run.PointsFile,
		run.Strategy, run.DayCount, run.Trades, run.Skipped, run.Entries,
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	j.runID = run.RunID
	return run, nil
}

// RunID is the run Record calls are attached to.
func (j *SQLite) RunID() string { return j.runID }

func (j *SQLite) RecordCashflow(e cashflow.Entry) error {
	if j.runID == "" {
		return errNoRun
	}
	_, err := j.db.Exec(`
		INSERT INTO cashflows
		(run_id, date, currency, cashflow, trade_id, type)
		VALUES (?, ?, ?, ?, ?, ?)`,
		j.runID, nullDate(e.Date), e.Currency, e.Amount, e.TradeID, string(e.Leg),
	)
	return err
}

func (j *SQLite) RecordPnL(currency string, amount decimal.Decimal) error {
	if j.runID == "" {
		return errNoRun
	}
	_, err := j.db.Exec(`
		INSERT INTO pnl (run_id, currency, pnl) VALUES (?, ?, ?)
		ON CONFLICT(run_id, currency) DO UPDATE SET pnl = excluded.pnl`,
		j.runID, currency, amount,
	)
	return err
}

// RecordAggregates stores the aggregated rows of the current run in one
// transaction.
func (j *SQLite) RecordAggregates(ctx context.Context, rows []cashflow.Row) error {
	if j.runID == "" {
		return errNoRun
	}
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO aggregates (run_id, date, currency, cashflow) VALUES (?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, j.runID, nullDate(r.Date), r.Currency, r.Amount); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func nullDate(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: market.FormatDate(t), Valid: true}
}

func scanDate(s sql.NullString) time.Time {
	if !s.Valid {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}
