package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/fxflow/journal"
	"github.com/rustyeddy/fxflow/market"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the run journal",
	Long: `Query and display runs recorded in the SQLite journal.

Subcommands:
  runs  - List recorded runs
  show  - Show a run with its aggregated cashflows and P&L
  pnl   - Show the P&L of a run
  day   - List a run's cashflows settling on a day

Examples:
  fxflow journal runs
  fxflow journal show <run-id> --org run.org
  fxflow journal day <run-id> 2025-12-30`,
}

var journalRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	Args:  cobra.NoArgs,
	RunE:  runJournalRuns,
}

var journalShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a run as Org mode",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalShow,
}

var journalPnLCmd = &cobra.Command{
	Use:   "pnl <run-id>",
	Short: "Show the P&L of a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalPnL,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <run-id> <YYYY-MM-DD>",
	Short: "List a run's cashflows settling on a day",
	Args:  cobra.ExactArgs(2),
	RunE:  runJournalDay,
}

var (
	journalDBPath string
	journalOrgOut string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalRunsCmd)
	journalCmd.AddCommand(journalShowCmd)
	journalCmd.AddCommand(journalPnLCmd)
	journalCmd.AddCommand(journalDayCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./fxflow.sqlite", "path to SQLite journal DB")
	journalShowCmd.Flags().StringVar(&journalOrgOut, "org", "", "also write the Org entry to this file")
}

func openJournal() (*journal.SQLite, error) {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func runJournalRuns(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	runs, err := j.ListRuns(cmd.Context())
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	fmt.Print(journal.FormatRunsOrg(runs))
	return nil
}

func runJournalShow(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	ctx := cmd.Context()
	run, err := j.GetRun(ctx, args[0])
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}
	rows, err := j.ListAggregates(ctx, run.RunID)
	if err != nil {
		return fmt.Errorf("query aggregates: %w", err)
	}
	pnl, err := j.ListPnL(ctx, run.RunID)
	if err != nil {
		return fmt.Errorf("query pnl: %w", err)
	}

	rep := journal.RunReport{Run: run, Aggregates: rows, PnL: pnl}
	s, err := journal.FormatRunOrg(rep)
	if err != nil {
		return err
	}
	fmt.Println(s)

	if journalOrgOut != "" {
		if err := journal.WriteRunOrg(journalOrgOut, rep); err != nil {
			return fmt.Errorf("write org: %w", err)
		}
		fmt.Printf("Org entry saved to: %s\n", journalOrgOut)
	}
	return nil
}

func runJournalPnL(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	ctx := cmd.Context()
	if _, err := j.GetRun(ctx, args[0]); err != nil {
		return fmt.Errorf("get run: %w", err)
	}
	pnl, err := j.ListPnL(ctx, args[0])
	if err != nil {
		return fmt.Errorf("query pnl: %w", err)
	}

	if len(pnl) == 0 {
		fmt.Println("No P&L recorded (no swap was marked to the curve)")
		return nil
	}
	for _, ccy := range pnl.Currencies() {
		fmt.Printf("%s %s\n", ccy, pnl[ccy].StringFixed(2))
	}
	return nil
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	start, end, err := dayBounds(args[1])
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	entries, err := j.ListCashflowsBetween(cmd.Context(), args[0], start, end)
	if err != nil {
		return fmt.Errorf("query cashflows: %w", err)
	}

	for _, e := range entries {
		fmt.Printf("%s %-4s %20s %-20s %s\n", market.FormatDate(e.Date), e.Currency, e.Amount.String(), e.TradeID, e.Leg)
	}
	return nil
}

// dayBounds returns [day, day+1) for a YYYY-MM-DD settlement date.
func dayBounds(day string) (time.Time, time.Time, error) {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := market.DateOf(t)
	return start, start.AddDate(0, 0, 1), nil
}
