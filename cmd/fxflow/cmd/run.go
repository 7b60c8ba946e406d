package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/fxflow/config"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Convert a trade blotter into cashflows",
	Long: `Load the trade blotter and the forward points report, derive every
cashflow, and write the aggregated CSV, HTML reports and journal.

Flags take precedence over FXFLOW_* variables, which take precedence over
the config file.

Example:
  fxflow run --trades trades.csv --points points.csv --ignore JSH_SWPPOS,ZF-FXSWAP
  fxflow run -f fxflow.yaml`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

var runFlags struct {
	trades    string
	points    string
	ignore    []string
	filter    string
	strategy  string
	dayCount  string
	reference string
	outDir    string
	workers   int
	cache     bool
	journal   string
	db        string
}

func init() {
	rootCmd.AddCommand(runCmd)

	f := runCmd.Flags()
	f.StringVar(&runFlags.trades, "trades", "", "trade blotter CSV")
	f.StringVar(&runFlags.points, "points", "", "forward points report")
	f.StringSliceVar(&runFlags.ignore, "ignore", nil, "folders to ignore (comma separated)")
	f.StringVar(&runFlags.filter, "filter", "", "filter JSON with ignore_folders")
	f.StringVar(&runFlags.strategy, "strategy", "", "points report layout: date|tenor")
	f.StringVar(&runFlags.dayCount, "day-count", "", "day count: calendar|business")
	f.StringVar(&runFlags.reference, "reference", "", "curve reference date YYYY-MM-DD (default today)")
	f.StringVar(&runFlags.outDir, "out-dir", "", "output directory")
	f.IntVar(&runFlags.workers, "workers", 0, "worker goroutines (0 = one per CPU)")
	f.BoolVar(&runFlags.cache, "cache", false, "memoise curve interpolations")
	f.StringVar(&runFlags.journal, "journal", "", "journal type: csv|sqlite|none")
	f.StringVar(&runFlags.db, "db", "", "SQLite journal path")
}

func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("trades", &cfg.Input.TradesFile, runFlags.trades)
	set("points", &cfg.Input.PointsFile, runFlags.points)
	set("filter", &cfg.Input.FilterConfig, runFlags.filter)
	set("strategy", &cfg.Curve.Strategy, runFlags.strategy)
	set("day-count", &cfg.Curve.DayCount, runFlags.dayCount)
	set("reference", &cfg.Curve.Reference, runFlags.reference)
	set("out-dir", &cfg.Output.Dir, runFlags.outDir)
	set("journal", &cfg.Journal.Type, runFlags.journal)
	set("db", &cfg.Journal.DBPath, runFlags.db)
	if cmd.Flags().Changed("ignore") {
		cfg.Input.IgnoreFolders = runFlags.ignore
	}
	if cmd.Flags().Changed("workers") {
		cfg.Engine.Workers = runFlags.workers
	}
	if cmd.Flags().Changed("cache") {
		cfg.Curve.Cache = runFlags.cache
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyRunFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Processing trades: %s\n", cfg.Input.TradesFile)
	if cfg.Input.PointsFile != "" {
		fmt.Printf("  Points: %s (%s, %s days)\n", cfg.Input.PointsFile, cfg.Curve.Strategy, cfg.Curve.DayCount)
	} else {
		fmt.Println("  Points: none, swaps use contracted points")
	}

	out, err := runPipeline(cmd.Context(), cfg, log, time.Now())
	if err != nil {
		return err
	}

	res := out.Result
	fmt.Printf("\nResults:\n")
	fmt.Printf("  Trades: %d (%d without cashflows)\n", res.Trades, res.Skipped)
	fmt.Printf("  Cashflows: %d entries, %d date/currency rows\n", len(res.Entries), len(out.Rows))
	fmt.Printf("  Curve pairs: %d\n", out.Pairs)
	for _, ccy := range res.PnL.Currencies() {
		fmt.Printf("  P&L %s: %s\n", ccy, res.PnL[ccy].StringFixed(2))
	}
	if out.RunID != "" {
		fmt.Printf("  Run: %s\n", out.RunID)
	}
	fmt.Printf("\nResults saved to:\n")
	for _, p := range out.Outputs {
		fmt.Printf("  - %s\n", p)
	}
	return nil
}
