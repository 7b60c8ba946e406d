package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rustyeddy/fxflow/curve"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config represents the complete run configuration
type Config struct {
	Input   InputConfig   `json:"input" yaml:"input"`
	Curve   CurveConfig   `json:"curve" yaml:"curve"`
	Output  OutputConfig  `json:"output" yaml:"output"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Engine  EngineConfig  `json:"engine" yaml:"engine"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// InputConfig names the trade blotter and the forward points report
type InputConfig struct {
	TradesFile    string   `json:"trades_file" yaml:"trades_file"`
	PointsFile    string   `json:"points_file,omitempty" yaml:"points_file,omitempty"`
	IgnoreFolders []string `json:"ignore_folders,omitempty" yaml:"ignore_folders,omitempty"`
	FilterConfig  string   `json:"filter_config,omitempty" yaml:"filter_config,omitempty"`
}

// CurveConfig selects how the points report is read and interpolated
type CurveConfig struct {
	Strategy  string `json:"strategy" yaml:"strategy"`                       // "date" or "tenor"
	DayCount  string `json:"day_count" yaml:"day_count"`                     // "calendar" or "business"
	Reference string `json:"reference,omitempty" yaml:"reference,omitempty"` // YYYY-MM-DD, empty means today
	Cache     bool   `json:"cache" yaml:"cache"`
}

// ReferenceDate parses Reference. An empty reference is the zero time.
func (c CurveConfig) ReferenceDate() (time.Time, error) {
	if strings.TrimSpace(c.Reference) == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", strings.TrimSpace(c.Reference))
}

// OutputConfig contains the report file names, relative to Dir
type OutputConfig struct {
	Dir          string `json:"dir" yaml:"dir"`
	AggregateCSV string `json:"aggregate_csv" yaml:"aggregate_csv"`
	CashflowHTML string `json:"cashflow_html,omitempty" yaml:"cashflow_html,omitempty"`
	SummaryHTML  string `json:"summary_html,omitempty" yaml:"summary_html,omitempty"`
}

// Path joins name onto the output directory. An empty name disables that
// output and yields "".
func (o OutputConfig) Path(name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(o.Dir, name)
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type          string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	CashflowsFile string `json:"cashflows_file,omitempty" yaml:"cashflows_file,omitempty"`
	PnLFile       string `json:"pnl_file,omitempty" yaml:"pnl_file,omitempty"`
	DBPath        string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// EngineConfig sizes the batch processor. Zero workers means one per CPU.
type EngineConfig struct {
	Workers int `json:"workers" yaml:"workers"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "text" or "json"
}

// LoadFromFile loads configuration from a file (JSON or YAML)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (YAML for .yaml/.yml, JSON otherwise)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Input.TradesFile == "" {
		return fmt.Errorf("input.trades_file is required")
	}
	if _, err := curve.StrategyByName(c.Curve.Strategy); err != nil {
		return fmt.Errorf("curve.strategy: %w", err)
	}
	if _, err := curve.DayCountByName(c.Curve.DayCount); err != nil {
		return fmt.Errorf("curve.day_count: %w", err)
	}
	if _, err := c.Curve.ReferenceDate(); err != nil {
		return fmt.Errorf("curve.reference must be YYYY-MM-DD: %w", err)
	}
	if c.Output.AggregateCSV == "" {
		return fmt.Errorf("output.aggregate_csv is required")
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.CashflowsFile == "" || c.Journal.PnLFile == "" {
			return fmt.Errorf("journal cashflows_file and pnl_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	if c.Engine.Workers < 0 {
		return fmt.Errorf("engine.workers must not be negative")
	}
	if c.Log.Level != "" {
		if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}
	if c.Log.Format != "" && c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'text' or 'json'")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Input: InputConfig{
			TradesFile: "./trades.csv",
		},
		Curve: CurveConfig{
			Strategy: "date",
			DayCount: "calendar",
		},
		Output: OutputConfig{
			Dir:          ".",
			AggregateCSV: "cashflows_agg.csv",
			CashflowHTML: "cashflows.html",
			SummaryHTML:  "cashflows_horizon_summary.html",
		},
		Journal: JournalConfig{
			Type: "none",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
