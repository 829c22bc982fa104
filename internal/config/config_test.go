package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.GeneralizeThreshold)
	assert.Equal(t, 1.0, c.GeneralizeFSThreshold)
	assert.Equal(t, "results", c.ResultsDir)
	assert.NotZero(t, c.AppLogMaxSize)
}

func TestLoadResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"results_dir": "out"}`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out"), c.ResultsDir)
}

func TestLoadKeepsAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"results_dir": "/var/results"}`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/results", c.ResultsDir)
}

func TestLoadManifestParsesCases(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yaml")
	content := `
cases:
  - name: sshd-baseline
    service: sshd
    log_files:
      - sshd-1.log
      - sshd-2.log
    fs_snapshot: sshd.db
    users: [0, 1000]
    subjects: ["system_u:system_r:sshd_t:s0-s0:c0.c1023"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	require.Len(t, m.Cases, 1)
	assert.Equal(t, "sshd-baseline", m.Cases[0].Name)
	assert.Equal(t, []string{"sshd-1.log", "sshd-2.log"}, m.Cases[0].LogFiles)
	assert.Equal(t, []int{0, 1000}, m.Cases[0].Users)
}
