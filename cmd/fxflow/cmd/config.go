package cmd

import (
	"fmt"

	"github.com/rustyeddy/fxflow/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage fxflow configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  fxflow config init -o fxflow.yaml
  fxflow config validate -f fxflow.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Long: `Create a new configuration file with default settings.

Example:
  fxflow config init -o fxflow.yaml`,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Check if a configuration file, with FXFLOW_* overrides applied, is valid.

Example:
  fxflow config validate -f fxflow.yaml`,
	RunE: runConfigValidate,
}

var configInitOutput string

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "fxflow.yaml", "output config file path")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Printf("✓ Created default configuration: %s\n", configInitOutput)
	fmt.Println("\nEdit the file and run with:")
	fmt.Printf("  fxflow run -f %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	ignore, err := cfg.IgnoreFolders()
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	source := cfgFile
	if source == "" {
		source = "(defaults)"
	}
	fmt.Printf("✓ Configuration valid: %s\n", source)
	fmt.Printf("  Trades: %s (ignoring %d folders)\n", cfg.Input.TradesFile, len(ignore))
	fmt.Printf("  Curve: %s, %s days (cache: %t)\n", cfg.Curve.Strategy, cfg.Curve.DayCount, cfg.Curve.Cache)
	fmt.Printf("  Output: %s\n", cfg.Output.Dir)
	fmt.Printf("  Journal: %s\n", cfg.Journal.Type)
	return nil
}
