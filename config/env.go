package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FXFLOW_"

// ApplyEnv loads dotenv if it exists, without replacing variables already
// set, then applies FXFLOW_* overrides to c.
func ApplyEnv(c *Config, dotenv string) error {
	if dotenv != "" {
		if _, err := os.Stat(dotenv); err == nil {
			if err := godotenv.Load(dotenv); err != nil {
				return fmt.Errorf("load %s: %w", dotenv, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	setString(&c.Input.TradesFile, "TRADES_FILE")
	setString(&c.Input.PointsFile, "POINTS_FILE")
	setString(&c.Input.FilterConfig, "FILTER_CONFIG")
	if v, ok := lookup("IGNORE_FOLDERS"); ok {
		c.Input.IgnoreFolders = splitList(v)
	}
	setString(&c.Curve.Strategy, "CURVE_STRATEGY")
	setString(&c.Curve.DayCount, "DAY_COUNT")
	setString(&c.Curve.Reference, "REFERENCE_DATE")
	if v, ok := lookup("CURVE_CACHE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sCURVE_CACHE: %w", EnvPrefix, err)
		}
		c.Curve.Cache = b
	}
	setString(&c.Output.Dir, "OUTPUT_DIR")
	setString(&c.Journal.Type, "JOURNAL_TYPE")
	setString(&c.Journal.DBPath, "JOURNAL_DB")
	if v, ok := lookup("WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sWORKERS: %w", EnvPrefix, err)
		}
		c.Engine.Workers = n
	}
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	return strings.TrimSpace(v), ok
}

func setString(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

// splitList splits a comma separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
