package cmd

import (
	"fmt"

	"github.com/rustyeddy/fxflow/config"
	"github.com/rustyeddy/fxflow/pkg/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fxflow",
	Short: "FX cashflow projection and forward points P&L",
	Long: `fxflow converts an FX trade blotter into dated per-currency cashflows.

It provides tools for:
  - Projecting spot, outright forward and FX swap settlements
  - Marking FX swaps to an interpolated forward points curve
  - Aggregating cashflows by date and currency
  - Horizon summaries and upcoming cashflow reports
  - Journaling runs to CSV or SQLite`,
	SilenceUsage: true,
}

var (
	cfgFile   string
	envFile   string
	logLevel  string
	logFormat string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "f", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file with FXFLOW_* overrides")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format text|json (overrides config)")
}

// loadConfig layers defaults, the config file, the environment and the log
// flags, then validates the result.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		if cfg, err = config.LoadFromFile(cfgFile); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if err := config.ApplyEnv(cfg, envFile); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*logrus.Logger, error) {
	level := cfg.Log.Level
	if level == "" {
		level = "info"
	}
	return logging.New(level, cfg.Log.Format)
}
