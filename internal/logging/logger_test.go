package logging

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelFiltersOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "warn"}, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	_ = logger.Sync()

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNew_FileCore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.log")
	logger, err := New(Config{Level: "debug", ToFile: true, FilePath: path, MaxSizeMB: 1})
	require.NoError(t, err)

	logger.Debug("to file")
	require.NoError(t, logger.Sync())
	assert.FileExists(t, path)
}

func TestInit_ReplacesGlobal(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	require.NoError(t, Init(Config{Level: "error", ToStderr: true}))
	assert.NotSame(t, prev, Log)
	assert.NotNil(t, Named("test"))
}
