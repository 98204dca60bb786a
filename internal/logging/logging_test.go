package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("chatty"))
}

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Level: "warn", Out: &buf})
	require.NoError(t, err)
	defer closeFn()

	logger.Info().Msg("hidden")
	logger.Warn().Str("page", "7").Msg("clamped")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "clamped")
	assert.Contains(t, out, "page=")
}

func TestQuietRaisesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(Options{Level: "debug", Out: &buf, Quiet: true})
	require.NoError(t, err)

	logger.Warn().Msg("warned")
	logger.Error().Msg("failed")
	assert.NotContains(t, buf.String(), "warned")
	assert.Contains(t, buf.String(), "failed")
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "brgy.log")
	logger, closeFn, err := New(Options{File: path})
	require.NoError(t, err)

	logger.Info().Msg("to file")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"to file"`)
}
