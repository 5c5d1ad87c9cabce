// Package config loads the application configuration from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"mtgcards/browse"
)

const appName = "mtgcards"

// Config represents the application configuration.
type Config struct {
	Data   DataConfig   `toml:"data"`
	Images ImagesConfig `toml:"images"`
	Browse BrowseConfig `toml:"browse"`
	Log    LogConfig    `toml:"log"`
}

// DataConfig selects the card file.
type DataConfig struct {
	Path string `toml:"path"` // Card file; empty uses the bundled file
}

// ImagesConfig contains card image settings.
type ImagesConfig struct {
	Enabled       bool    `toml:"enabled"`
	CacheDir      string  `toml:"cache_dir"`
	Timeout       string  `toml:"timeout"`         // e.g. "15s"
	RatePerSecond float64 `toml:"rate_per_second"` // 0 = unlimited
}

// BrowseConfig contains grid and detail view settings.
type BrowseConfig struct {
	Columns       int     `toml:"columns"`
	DragThreshold float64 `toml:"drag_threshold"`
	DefaultSort   string  `toml:"default_sort"` // "name" or "number"
}

// LogConfig contains logging settings.
type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	cacheDir := filepath.Join(os.TempDir(), appName, "images")
	if userCacheDir, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(userCacheDir, appName, "images")
	}

	return &Config{
		Data: DataConfig{
			Path: "",
		},
		Images: ImagesConfig{
			Enabled:       true,
			CacheDir:      cacheDir,
			Timeout:       "15s",
			RatePerSecond: 10,
		},
		Browse: BrowseConfig{
			Columns:       3,
			DragThreshold: browse.DefaultDragThreshold,
			DefaultSort:   "name",
		},
		Log: LogConfig{
			File:  "",
			Level: "info",
		},
	}
}

// DefaultPath returns the path of the configuration file in the user's
// configuration directory.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config directory: %w", err)
	}
	return filepath.Join(configDir, appName, "config.toml"), nil
}

// Load reads the configuration at path on top of the defaults. A missing
// file returns the defaults.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Images.Timeout); err != nil {
		return fmt.Errorf("invalid image timeout %q: %w", c.Images.Timeout, err)
	}

	if c.Images.RatePerSecond < 0 {
		return fmt.Errorf("image rate cannot be negative: %v", c.Images.RatePerSecond)
	}

	if c.Images.Enabled && c.Images.CacheDir == "" {
		return errors.New("image cache directory must not be empty when images are enabled")
	}

	if c.Browse.Columns < 1 {
		return fmt.Errorf("grid columns must be at least 1: %d", c.Browse.Columns)
	}

	if c.Browse.DragThreshold <= 0 {
		return fmt.Errorf("drag threshold must be positive: %v", c.Browse.DragThreshold)
	}

	if _, err := browse.ParseSortKey(c.Browse.DefaultSort); err != nil {
		return fmt.Errorf("invalid default sort: %w", err)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	return nil
}

// GetImageTimeout returns the image timeout as a duration.
func (c *Config) GetImageTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Images.Timeout)
}

// GetDefaultSort returns the configured default sort key.
func (c *Config) GetDefaultSort() (browse.SortKey, error) {
	return browse.ParseSortKey(c.Browse.DefaultSort)
}
