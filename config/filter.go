package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Filter is the standalone filter file, {"ignore_folders": [...]}.
type Filter struct {
	IgnoreFolders []string `json:"ignore_folders"`
}

// LoadFilter reads a filter file. A missing file is an empty filter.
func LoadFilter(path string) (Filter, error) {
	var f Filter
	if path == "" {
		return f, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return f, fmt.Errorf("read filter config: %w", err)
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parse filter config %s: %w", path, err)
	}
	return f, nil
}

// IgnoreFolders returns input.ignore_folders, or the filter file's list when
// none are configured directly.
func (c *Config) IgnoreFolders() ([]string, error) {
	if len(c.Input.IgnoreFolders) > 0 {
		return c.Input.IgnoreFolders, nil
	}
	f, err := LoadFilter(c.Input.FilterConfig)
	if err != nil {
		return nil, err
	}
	return f.IgnoreFolders, nil
}
