package cashflow

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Options tunes Process.
type Options struct {
	// Workers is the number of goroutines deriving cashflows. Values below
	// one mean one.
	Workers int
}

// Result is the output of a batch run.
type Result struct {
	Entries   []Entry
	Aggregate *Aggregate
	PnL       PnL
	Trades    int
	Skipped   int
}

// Process derives cashflows and P&L for every trade. Each worker keeps its
// own partial aggregate and P&L which are merged at the end; Entries keep
// the input trade order whatever the worker count.
func Process(ctx context.Context, e *Engine, trades []Trade, opts Options) (*Result, error) {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(trades) && len(trades) > 0 {
		workers = len(trades)
	}

	perTrade := make([][]Entry, len(trades))
	aggs := make([]*Aggregate, workers)
	pnls := make([]PnL, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		aggs[w] = NewAggregate()
		pnls[w] = PnL{}
		w := w
		g.Go(func() error {
			for i := w; i < len(trades); i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				entries := e.Cashflows(trades[i])
				perTrade[i] = entries
				for _, en := range entries {
					aggs[w].Add(en)
				}
				if p, ok := e.PnL(trades[i]); ok {
					pnls[w].Add(p)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		Aggregate: NewAggregate(),
		PnL:       PnL{},
		Trades:    len(trades),
	}
	for w := 0; w < workers; w++ {
		res.Aggregate.Merge(aggs[w])
		res.PnL.Merge(pnls[w])
	}
	for _, entries := range perTrade {
		if len(entries) == 0 {
			res.Skipped++
			continue
		}
		res.Entries = append(res.Entries, entries...)
	}
	return res, nil
}
