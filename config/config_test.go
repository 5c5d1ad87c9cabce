package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtgcards/browse"
	"mtgcards/config"
)

// writeConfig writes contents to a temporary config file and returns its path.
func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := config.DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 3, cfg.Browse.Columns)
	assert.Equal(t, browse.DefaultDragThreshold, cfg.Browse.DragThreshold)
	assert.True(t, cfg.Images.Enabled)
	assert.Empty(t, cfg.Data.Path)
}

func TestLoad_MissingFile_ReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))

	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoad_OverridesOnlyGivenFields(t *testing.T) {
	path := writeConfig(t, `
[data]
path = "/srv/cards/WOT-Scryfall.json"

[browse]
columns = 4
default_sort = "number"

[log]
level = "debug"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/cards/WOT-Scryfall.json", cfg.Data.Path)
	assert.Equal(t, 4, cfg.Browse.Columns)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, browse.DefaultDragThreshold, cfg.Browse.DragThreshold, "unset fields keep defaults")
	assert.Equal(t, "15s", cfg.Images.Timeout)

	key, err := cfg.GetDefaultSort()
	require.NoError(t, err)
	assert.Equal(t, browse.SortByCollectorNumber, key)
}

func TestLoad_InvalidTOML_ReturnsError(t *testing.T) {
	path := writeConfig(t, "[browse\ncolumns = ")

	cfg, err := config.Load(path)

	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "parse config file")
}

func TestSave_ThenLoad_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := config.DefaultConfig()
	cfg.Browse.Columns = 5
	cfg.Images.Enabled = false

	require.NoError(t, cfg.Save(path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		message string
	}{
		{"timeout", func(c *config.Config) { c.Images.Timeout = "soon" }, "invalid image timeout"},
		{"rate", func(c *config.Config) { c.Images.RatePerSecond = -1 }, "cannot be negative"},
		{"cache dir", func(c *config.Config) { c.Images.CacheDir = "" }, "cache directory"},
		{"columns", func(c *config.Config) { c.Browse.Columns = 0 }, "at least 1"},
		{"drag threshold", func(c *config.Config) { c.Browse.DragThreshold = 0 }, "must be positive"},
		{"sort", func(c *config.Config) { c.Browse.DefaultSort = "rarity" }, "invalid default sort"},
		{"log level", func(c *config.Config) { c.Log.Level = "loud" }, "invalid log level"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			test.mutate(cfg)

			assert.ErrorContains(t, cfg.Validate(), test.message)
		})
	}
}

func TestValidate_DisabledImagesAllowEmptyCacheDir(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Images.Enabled = false
	cfg.Images.CacheDir = ""

	assert.NoError(t, cfg.Validate())
}

func TestGetImageTimeout(t *testing.T) {
	cfg := config.DefaultConfig()

	timeout, err := cfg.GetImageTimeout()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, timeout)
}
