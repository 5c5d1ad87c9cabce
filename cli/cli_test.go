package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtgcards/browse"
	"mtgcards/config"
	"mtgcards/tui"
)

// testConfig writes a config file with images disabled and returns its path.
func testConfig(t *testing.T, extra string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	contents := "[images]\nenabled = false\n" + extra
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

// runApp runs the command line and returns stdout, stderr and the error.
func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := New(&stdout, &stderr)
	err := app.Run(context.Background(), append([]string{"mtgcards"}, args...))
	return stdout.String(), stderr.String(), err
}

// stubTUI replaces the interactive browser for the duration of the test and
// returns the options it was started with.
func stubTUI(t *testing.T) *tui.Options {
	t.Helper()

	captured := new(tui.Options)
	original := runTUI
	runTUI = func(ctx context.Context, options tui.Options) error {
		*captured = options
		return nil
	}
	t.Cleanup(func() { runTUI = original })
	return captured
}

func TestList_DefaultsToNameOrderTable(t *testing.T) {
	stdout, _, err := runApp(t, "--config", testConfig(t, ""), "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 11)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "Authority of the Consuls")
	assert.Contains(t, lines[10], "Sneak Attack")
}

func TestList_SearchSortAndCSV(t *testing.T) {
	stdout, _, err := runApp(t, "--config", testConfig(t, ""),
		"list", "--search", "S", "--sort", "number", "--desc-number", "--format", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "Collector Number,Name,Type,Set,Rarity,ID", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "79,Rhystic Study"), lines[1])
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "45s,Parallel Lives"), lines[len(lines)-1])
}

func TestList_DataFlagLoadsFile(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "cards.json")
	require.NoError(t, os.WriteFile(dataPath, []byte(`{"data": [{"id": "x", "name": "Only Card", "collector_number": "1"}]}`), 0o644))

	stdout, _, err := runApp(t, "--config", testConfig(t, ""), "--data", dataPath, "list")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Only Card")
	assert.NotContains(t, stdout, "Land Tax")
}

func TestList_MissingDataFile_LogsAndPrintsEmptyList(t *testing.T) {
	stdout, stderr, err := runApp(t, "--config", testConfig(t, ""),
		"--data", filepath.Join(t.TempDir(), "missing.json"), "list")
	require.NoError(t, err)

	assert.Len(t, strings.Split(strings.TrimSpace(stdout), "\n"), 1, "header only")
	assert.Contains(t, stderr, "card file could not be loaded")
}

func TestList_InvalidArguments(t *testing.T) {
	_, _, err := runApp(t, "--config", testConfig(t, ""), "list", "--format", "xml")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, _, err = runApp(t, "--config", testConfig(t, ""), "list", "--sort", "rarity")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSearch_PrintsFuzzyMatches(t *testing.T) {
	stdout, _, err := runApp(t, "--config", testConfig(t, ""), "search", "rhystic")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(stdout, "Rhystic Study"))
}

func TestSearch_NoMatches(t *testing.T) {
	stdout, _, err := runApp(t, "--config", testConfig(t, ""), "search", "zzzz")
	require.NoError(t, err)

	assert.Contains(t, stdout, `No cards match "zzzz".`)
}

func TestSearch_MissingQuery_ReturnsError(t *testing.T) {
	_, _, err := runApp(t, "--config", testConfig(t, ""), "search")

	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestInvalidConfig_ReturnsError(t *testing.T) {
	_, _, err := runApp(t, "--config", testConfig(t, "[browse]\ncolumns = 0\n"), "list")

	assert.ErrorContains(t, err, "invalid configuration")
}

func TestBrowse_StartsTUIWithConfiguredOptions(t *testing.T) {
	captured := stubTUI(t)

	_, _, err := runApp(t, "--config", testConfig(t, "[browse]\ncolumns = 4\ndefault_sort = \"number\"\ndrag_threshold = 30.0\n"))
	require.NoError(t, err)

	require.NotNil(t, captured.Store)
	assert.Equal(t, 10, captured.Store.Len())
	assert.Equal(t, 4, captured.Columns)
	assert.Equal(t, 30.0, captured.DragThreshold)
	assert.Equal(t, browse.SortByCollectorNumber, captured.DefaultSort)
	assert.NotNil(t, captured.Loader)
}

func TestBrowse_LogFileFlagWritesLogs(t *testing.T) {
	stubTUI(t)
	logPath := filepath.Join(t.TempDir(), "mtgcards.log")

	_, stderr, err := runApp(t, "--config", testConfig(t, ""), "--log-file", logPath, "--log-level", "debug", "browse")
	require.NoError(t, err)

	contents, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "card file loaded")
	assert.Empty(t, stderr)
}

func TestConfigInit_WritesDefaultsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	stdout, _, err := runApp(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, path)

	written, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), written)

	_, _, err = runApp(t, "--config", path, "config", "init")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, _, err = runApp(t, "--config", path, "config", "init", "--force")
	assert.NoError(t, err)
}
