package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rustyeddy/fxflow/cashflow"
	"github.com/rustyeddy/fxflow/config"
	"github.com/rustyeddy/fxflow/curve"
	"github.com/rustyeddy/fxflow/journal"
	"github.com/rustyeddy/fxflow/report"
	"github.com/sirupsen/logrus"
)

// runResult is what a run produced, for the console summary.
type runResult struct {
	RunID   string
	Result  *cashflow.Result
	Rows    []cashflow.Row
	Pairs   int
	Outputs []string
}

// loadCurve reads the points report named by cfg. Without a report the
// store is empty and swaps fall back to their contracted points.
func loadCurve(cfg *config.Config, log logrus.FieldLogger) (*curve.Store, error) {
	strategy, err := curve.StrategyByName(cfg.Curve.Strategy)
	if err != nil {
		return nil, err
	}
	if cfg.Input.PointsFile == "" {
		return curve.NewStore(strategy), nil
	}
	return curve.LoadFile(cfg.Input.PointsFile, strategy, log)
}

func newInterpolator(cfg *config.Config, store *curve.Store, today time.Time) (*curve.Interpolator, error) {
	dc, err := curve.DayCountByName(cfg.Curve.DayCount)
	if err != nil {
		return nil, err
	}
	return curve.NewInterpolator(store, dc, curve.WithClock(func() time.Time { return today })), nil
}

// runPipeline loads the inputs, derives every cashflow and writes the
// configured outputs and journal.
func runPipeline(ctx context.Context, cfg *config.Config, log logrus.FieldLogger, today time.Time) (*runResult, error) {
	ref, err := cfg.Curve.ReferenceDate()
	if err != nil {
		return nil, fmt.Errorf("reference date: %w", err)
	}

	store, err := loadCurve(cfg, log)
	if err != nil {
		return nil, err
	}
	interp, err := newInterpolator(cfg, store, today)
	if err != nil {
		return nil, err
	}
	var points cashflow.Points = interp
	if cfg.Curve.Cache {
		points = curve.NewCached(interp)
	}

	ignore, err := cfg.IgnoreFolders()
	if err != nil {
		return nil, err
	}
	trades, err := journal.LoadTrades(cfg.Input.TradesFile, ignore)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"trades": len(trades),
		"pairs":  len(store.Pairs()),
		"ignore": ignore,
	}).Info("inputs loaded")

	workers := cfg.Engine.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	engine := cashflow.NewEngine(points, cashflow.WithReference(ref), cashflow.WithLogger(log))
	res, err := cashflow.Process(ctx, engine, trades, cashflow.Options{Workers: workers})
	if err != nil {
		return nil, fmt.Errorf("process trades: %w", err)
	}

	out := &runResult{Result: res, Rows: res.Aggregate.Rows(), Pairs: len(store.Pairs())}

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	aggPath := cfg.Output.Path(cfg.Output.AggregateCSV)
	if err := journal.WriteAggregateCSV(aggPath, out.Rows); err != nil {
		return nil, err
	}
	out.Outputs = append(out.Outputs, aggPath)

	if p := cfg.Output.Path(cfg.Output.CashflowHTML); p != "" {
		if err := report.WriteUpcomingHTML(p, res.Entries, today); err != nil {
			return nil, err
		}
		out.Outputs = append(out.Outputs, p)
	}
	if p := cfg.Output.Path(cfg.Output.SummaryHTML); p != "" {
		s := report.Summarize(res.Entries, res.PnL, store.SpotRates(), today)
		if err := report.WriteSummaryHTML(p, s); err != nil {
			return nil, err
		}
		out.Outputs = append(out.Outputs, p)
	}

	if err := writeJournal(ctx, cfg, out, ref); err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	return out, nil
}

func writeJournal(ctx context.Context, cfg *config.Config, out *runResult, ref time.Time) error {
	switch cfg.Journal.Type {
	case "csv":
		entries := cfg.Output.Path(cfg.Journal.CashflowsFile)
		pnl := cfg.Output.Path(cfg.Journal.PnLFile)
		j, err := journal.NewCSV(entries, pnl)
		if err != nil {
			return err
		}
		if err := journal.WriteResult(j, out.Result); err != nil {
			j.Close()
			return err
		}
		out.Outputs = append(out.Outputs, entries, pnl)
		return j.Close()

	case "sqlite":
		j, err := journal.NewSQLite(cfg.Journal.DBPath)
		if err != nil {
			return err
		}
		err = recordRun(ctx, j, cfg, out, ref)
		if cerr := j.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		out.Outputs = append(out.Outputs, cfg.Journal.DBPath)
	}
	return nil
}

func recordRun(ctx context.Context, j *journal.SQLite, cfg *config.Config, out *runResult, ref time.Time) error {
	run, err := j.StartRun(ctx, journal.Run{
		Reference:  ref,
		TradesFile: cfg.Input.TradesFile,
		PointsFile: cfg.Input.PointsFile,
		Strategy:   cfg.Curve.Strategy,
		DayCount:   cfg.Curve.DayCount,
		Trades:     out.Result.Trades,
		Skipped:    out.Result.Skipped,
		Entries:    len(out.Result.Entries),
	})
	if err != nil {
		return err
	}
	out.RunID = run.RunID
	if err := journal.WriteResult(j, out.Result); err != nil {
		return err
	}
	return j.RecordAggregates(ctx, out.Rows)
}
