package logging_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtgcards/logging"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}

	for input, expected := range tests {
		level, err := logging.ParseLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, level, input)
	}

	_, err := logging.ParseLevel("loud")
	assert.ErrorContains(t, err, "unknown log level")
}

func TestNew_File_AppendsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "mtgcards.log")

	logger, closeLog, err := logging.New(path, "info", nil)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("card file loaded", "cards", 10)
	require.NoError(t, closeLog())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), `msg="card file loaded" cards=10`)
	assert.NotContains(t, string(contents), "hidden")
}

func TestNew_NoFile_WritesToFallback(t *testing.T) {
	var buffer bytes.Buffer

	logger, closeLog, err := logging.New("", "warn", &buffer)
	require.NoError(t, err)

	logger.Info("ignored")
	logger.Warn("image could not be loaded")

	assert.NoError(t, closeLog())
	assert.Contains(t, buffer.String(), "level=WARN")
	assert.NotContains(t, buffer.String(), "ignored")
}

func TestNew_NoFileNoFallback_Discards(t *testing.T) {
	logger, closeLog, err := logging.New("", "debug", nil)
	require.NoError(t, err)

	logger.Error("nowhere")
	assert.NoError(t, closeLog())
}

func TestNew_BadLevel_ReturnsError(t *testing.T) {
	logger, closeLog, err := logging.New("", "loud", nil)

	assert.Nil(t, logger)
	assert.Nil(t, closeLog)
	assert.Error(t, err)
}
