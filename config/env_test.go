package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("FXFLOW_TRADES_FILE", "env-trades.csv")
	t.Setenv("FXFLOW_IGNORE_FOLDERS", "JSH_SWPPOS, ZF-FXSWAP,,")
	t.Setenv("FXFLOW_CURVE_STRATEGY", "tenor")
	t.Setenv("FXFLOW_CURVE_CACHE", "true")
	t.Setenv("FXFLOW_WORKERS", "3")
	t.Setenv("FXFLOW_LOG_LEVEL", "debug")

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg, ""))

	assert.Equal(t, "env-trades.csv", cfg.Input.TradesFile)
	assert.Equal(t, []string{"JSH_SWPPOS", "ZF-FXSWAP"}, cfg.Input.IgnoreFolders)
	assert.Equal(t, "tenor", cfg.Curve.Strategy)
	assert.True(t, cfg.Curve.Cache)
	assert.Equal(t, 3, cfg.Engine.Workers)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "calendar", cfg.Curve.DayCount, "unset variables leave the config alone")
}

func TestApplyEnvBadValues(t *testing.T) {
	t.Setenv("FXFLOW_WORKERS", "many")
	assert.Error(t, ApplyEnv(Default(), ""))

	t.Setenv("FXFLOW_WORKERS", "2")
	t.Setenv("FXFLOW_CURVE_CACHE", "maybe")
	assert.Error(t, ApplyEnv(Default(), ""))
}

func TestApplyEnvLoadsDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("FXFLOW_POINTS_FILE=points.csv\nFXFLOW_OUTPUT_DIR=out\n"), 0644))

	// Register cleanup for the variables the file sets.
	t.Setenv("FXFLOW_POINTS_FILE", "")
	os.Unsetenv("FXFLOW_POINTS_FILE")
	t.Setenv("FXFLOW_OUTPUT_DIR", "already-set")

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg, path))
	assert.Equal(t, "points.csv", cfg.Input.PointsFile)
	assert.Equal(t, "already-set", cfg.Output.Dir, "the environment wins over the file")

	require.NoError(t, ApplyEnv(Default(), filepath.Join(dir, "missing.env")))
}
