package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/fxflow/config"
	"github.com/rustyeddy/fxflow/market"
	"github.com/spf13/cobra"
)

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Inspect the forward points report",
	Long: `Load a forward points report and show or interpolate it.

Subcommands:
  show        - List every pair and its points
  interpolate - Interpolate points for a pair and maturity

Examples:
  fxflow curve show --points points.csv
  fxflow curve interpolate USD/CNY 2026-03-06 --points points.csv --reference 2026-01-05`,
}

var curveShowCmd = &cobra.Command{
	Use:   "show [pair]",
	Short: "List the pairs and points of a report",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCurveShow,
}

var curveInterpolateCmd = &cobra.Command{
	Use:   "interpolate <pair> <maturity YYYY-MM-DD>",
	Short: "Interpolate forward points for a maturity",
	Args:  cobra.ExactArgs(2),
	RunE:  runCurveInterpolate,
}

var curveFlags struct {
	points    string
	strategy  string
	dayCount  string
	reference string
	valueDate string
}

func init() {
	rootCmd.AddCommand(curveCmd)
	curveCmd.AddCommand(curveShowCmd)
	curveCmd.AddCommand(curveInterpolateCmd)

	f := curveCmd.PersistentFlags()
	f.StringVar(&curveFlags.points, "points", "", "forward points report (default from config)")
	f.StringVar(&curveFlags.strategy, "strategy", "", "report layout: date|tenor")
	f.StringVar(&curveFlags.dayCount, "day-count", "", "day count: calendar|business")
	f.StringVar(&curveFlags.reference, "reference", "", "reference date YYYY-MM-DD (default today)")
	curveInterpolateCmd.Flags().StringVar(&curveFlags.valueDate, "value-date", "", "near leg value date YYYY-MM-DD")
}

func applyCurveFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("points") {
		cfg.Input.PointsFile = curveFlags.points
	}
	if f.Changed("strategy") {
		cfg.Curve.Strategy = curveFlags.strategy
	}
	if f.Changed("day-count") {
		cfg.Curve.DayCount = curveFlags.dayCount
	}
	if f.Changed("reference") {
		cfg.Curve.Reference = curveFlags.reference
	}
}

func runCurveShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyCurveFlags(cmd, cfg)
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	if cfg.Input.PointsFile == "" {
		return fmt.Errorf("no points report: use --points or input.points_file")
	}

	store, err := loadCurve(cfg, log)
	if err != nil {
		return err
	}
	ref, err := cfg.Curve.ReferenceDate()
	if err != nil {
		return fmt.Errorf("reference date: %w", err)
	}
	if ref.IsZero() {
		ref = market.DateOf(time.Now())
	}
	interp, err := newInterpolator(cfg, store, ref)
	if err != nil {
		return err
	}

	pairs := store.Pairs()
	if len(args) == 1 {
		pairs = args
	}
	fmt.Printf("Points report: %s (%s, %d pairs)\n", cfg.Input.PointsFile, store.Strategy().Name(), len(store.Pairs()))
	for _, pair := range pairs {
		series, ok := store.Series(pair)
		if !ok {
			return fmt.Errorf("pair %q not in report", pair)
		}
		fmt.Printf("\n%s (divisor %d)\n", series.Pair, market.PointsDivisor(series.Pair))
		fmt.Printf("  %-6s %-10s %8s %12s %12s %12s\n", "Label", "Settle", "Horizon", "Bid", "Ask", "Mid")
		for _, p := range series.Points {
			fmt.Printf("  %-6s %-10s %8d %12s %12s %12s\n",
				p.Label, market.FormatDate(p.Settlement),
				store.Strategy().Horizon(p, ref, interp.DayCount()),
				p.Bid.String(), p.Ask.String(), p.Mid.String())
		}
	}

	if spot := store.SpotRates(); len(spot) > 0 {
		fmt.Printf("\nSpot rates:\n")
		for _, pair := range store.Pairs() {
			if r, ok := spot[pair]; ok {
				fmt.Printf("  %-12s %s\n", pair, r.String())
			}
		}
	}
	return nil
}

func runCurveInterpolate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyCurveFlags(cmd, cfg)
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	if cfg.Input.PointsFile == "" {
		return fmt.Errorf("no points report: use --points or input.points_file")
	}

	pair := args[0]
	maturity, err := time.Parse("2006-01-02", args[1])
	if err != nil {
		return fmt.Errorf("maturity: %w", err)
	}
	var valueDate time.Time
	if curveFlags.valueDate != "" {
		if valueDate, err = time.Parse("2006-01-02", curveFlags.valueDate); err != nil {
			return fmt.Errorf("value date: %w", err)
		}
	}
	ref, err := cfg.Curve.ReferenceDate()
	if err != nil {
		return fmt.Errorf("reference date: %w", err)
	}

	store, err := loadCurve(cfg, log)
	if err != nil {
		return err
	}
	interp, err := newInterpolator(cfg, store, market.DateOf(time.Now()))
	if err != nil {
		return err
	}

	pts, ok := interp.Interpolate(pair, valueDate, maturity, ref)
	if !ok {
		return fmt.Errorf("no points for %s maturing %s", pair, args[1])
	}
	fmt.Printf("%s %s: %s points (rate %s)\n", pair, args[1], pts.String(), market.PointsToRate(pair, pts).String())
	return nil
}
