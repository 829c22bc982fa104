package seccontext

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinSubjectsKnownService(t *testing.T) {
	contexts, err := BuiltinSubjects().ContextsFor("sshd")
	require.NoError(t, err)
	assert.Equal(t, []string{"system_u:system_r:sshd_t:s0-s0:c0.c1023"}, contexts)
}

func TestBuiltinObjectsKnownService(t *testing.T) {
	contexts, err := BuiltinObjects().ContextsFor("postgres")
	require.NoError(t, err)
	assert.Contains(t, contexts, "postgresql_exec_t")
}

func TestMemorySourceUnknownService(t *testing.T) {
	_, err := BuiltinSubjects().ContextsFor("nonexistent")
	assert.ErrorIs(t, err, ErrUnknownService)
}

func TestFileSourceParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contexts.txt")
	content := "# comment\nmyapp: myapp_t, myapp_log_t\n\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	src, err := NewFileSource(path, time.Minute)
	require.NoError(t, err)

	contexts, err := src.ContextsFor("myapp")
	require.NoError(t, err)
	assert.Equal(t, []string{"myapp_t", "myapp_log_t"}, contexts)
}

func TestFileSourceUnknownService(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contexts.txt")
	require.NoError(t, os.WriteFile(path, []byte("myapp: myapp_t\n"), 0o644))

	src, err := NewFileSource(path, time.Minute)
	require.NoError(t, err)

	_, err = src.ContextsFor("other")
	assert.ErrorIs(t, err, ErrUnknownService)
}
