package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppLoggerRespectsLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	l, err := NewAppLogger(path, LogLevelWarn, 0, 0)
	require.NoError(t, err)

	l.Debug("should not appear")
	l.Warn("should appear", "key", "value")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "should not appear")
	assert.Contains(t, string(data), "should appear")
	assert.Contains(t, string(data), "key=value")
}

func TestFormatValueQuotesSpaces(t *testing.T) {
	assert.Equal(t, `"has space"`, formatValue("has space"))
	assert.Equal(t, "noSpace", formatValue("noSpace"))
}

func TestDecisionLoggerWritesLogfmtLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "decisions.log")
	dl, err := NewDecisionLogger(path)
	require.NoError(t, err)

	dl.LogDecision("exec", "/usr/bin/sshd", "hit", "case", "baseline")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "op=exec")
	assert.Contains(t, string(data), "path=/usr/bin/sshd")
	assert.Contains(t, string(data), "verdict=hit")
	assert.Contains(t, string(data), "case=baseline")
}

func TestRotatingWriterRotatesOnSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	w, err := NewRotatingWriter(path, 10, 0)
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Write([]byte("0123456789abcdef"))
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(dir, "old"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
