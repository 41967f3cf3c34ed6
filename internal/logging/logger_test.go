package logging

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger := New(Options{Production: true, FilePath: path})
	logger.Info("message appended", zap.String("username", "alice"), zap.Int("id", 4))
	logger.Debug("not written at info level")
	_ = logger.Sync()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		lines = append(lines, entry)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, lines, 1)
	assert.Equal(t, "message appended", lines[0]["message"])
	assert.Equal(t, "INFO", lines[0]["level"])
	assert.Equal(t, "alice", lines[0]["username"])
	assert.EqualValues(t, 4, lines[0]["id"])
	assert.Contains(t, lines[0], "timestamp")
}

func TestNew_ConsoleOnly(t *testing.T) {
	logger := New(Options{})
	assert.NotNil(t, logger)
	logger.Debug("development logger accepts debug")
}
