package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/sheetload/pkg/sheetload"
)

func TestZapLogger_TextConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewZapLogger(Options{Console: &buf})
	require.NoError(t, err)

	logger.Info("Loaded %d records", 3)
	logger.Warn("Row %d is empty", 4)
	logger.Error("boom")
	require.NoError(t, logger.Close())

	out := buf.String()
	assert.Contains(t, out, "INFO\tLoaded 3 records")
	assert.Contains(t, out, "WARN\tRow 4 is empty")
	assert.Contains(t, out, "ERROR\tboom")
}

func TestZapLogger_VerboseRequiresDebug(t *testing.T) {
	var quiet bytes.Buffer
	logger, err := NewZapLogger(Options{Console: &quiet})
	require.NoError(t, err)
	logger.Verbose("hidden detail")
	assert.Empty(t, quiet.String())

	var loud bytes.Buffer
	logger, err = NewZapLogger(Options{Console: &loud, Verbose: true})
	require.NoError(t, err)
	logger.Verbose("shown detail")
	assert.Contains(t, loud.String(), "shown detail")
}

func TestZapLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewZapLogger(Options{Console: &buf, Level: "ERROR"})
	require.NoError(t, err)

	logger.Info("not shown")
	logger.Warn("not shown either")
	logger.Error("shown")

	assert.NotContains(t, buf.String(), "not shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestZapLogger_JSONConsoleCarriesRunID(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewZapLogger(Options{Console: &buf, Format: "json", RunID: "run-123"})
	require.NoError(t, err)

	logger.Info("hello %s", "world")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello world", entry["msg"])
	assert.Equal(t, "run-123", entry["run_id"])
	assert.Equal(t, "info", entry["level"])
}

func TestZapLogger_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheetload.log")
	var console bytes.Buffer

	logger, err := NewZapLogger(Options{Console: &console, File: path, RunID: "abc"})
	require.NoError(t, err)
	logger.Warn("first")
	logger.Info("second")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "first", entry["msg"])
	assert.Equal(t, "abc", entry["run_id"])
	assert.Contains(t, entry, "timestamp")

	assert.Contains(t, console.String(), "first", "console still receives entries")
}

func TestZapLogger_InvalidOptions(t *testing.T) {
	_, err := NewZapLogger(Options{Level: "loud"})
	assert.ErrorIs(t, err, sheetload.ErrInvalidConfig)

	_, err = NewZapLogger(Options{Format: "xml"})
	assert.ErrorIs(t, err, sheetload.ErrInvalidConfig)

	_, err = NewZapLogger(Options{File: filepath.Join(t.TempDir(), "missing", "dir", "log")})
	assert.Error(t, err)
}

func TestZapLogger_ConcurrentUse(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewZapLogger(Options{Console: &buf})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.Info("message %d", n)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, strings.Count(buf.String(), "message "))
}

func TestNullLogger(t *testing.T) {
	var logger sheetload.Logger = NewNullLogger()
	assert.NotPanics(t, func() {
		logger.Verbose("v %d", 1)
		logger.Info("i")
		logger.Warn("w")
		logger.Error("e")
	})
}
