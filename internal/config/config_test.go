package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CMDSEQ_STATE_DIR", "CMDSEQ_SHELL", "CMDSEQ_ADVANCE_ON_FAILURE"} {
		t.Setenv(k, "")
	}
}

func TestLoadEmbedded(t *testing.T) {
	cfg, err := loadEmbedded()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.StateDir)
	assert.Equal(t, "sh", cfg.Shell)
	assert.True(t, cfg.AdvanceOnFailure)
}

func TestLoadWithDir_MissingFile(t *testing.T) {
	clearEnv(t)
	dir := filepath.Join(t.TempDir(), "cmdseq")

	cfg, err := LoadWithDir(dir)
	require.NoError(t, err)

	assert.Equal(t, "sh", cfg.Shell)
	assert.Equal(t, []string{"embedded"}, cfg.Sources())
	assert.Equal(t, dir, cfg.ConfigDir())

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "loading config must not create the config dir")
}

func TestLoadWithDir_GlobalFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	err := os.WriteFile(
		filepath.Join(dir, "config.yaml"),
		[]byte("state_dir: /var/lib/cmdseq\nadvance_on_failure: false\n"),
		0o600,
	)
	require.NoError(t, err)

	cfg, err := LoadWithDir(dir)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/cmdseq", cfg.StateDir)
	assert.Equal(t, "sh", cfg.Shell) // from embedded default
	assert.False(t, cfg.AdvanceOnFailure)
	assert.True(t, cfg.AdvanceOnFailureSet)
	assert.Equal(t, []string{"embedded", filepath.Join(dir, "config.yaml")}, cfg.Sources())
}

func TestLoadWithDir_InvalidYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("shell: [unclosed\n"), 0o600))

	_, err := LoadWithDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load global config")
}

func TestEnvOverridesGlobal(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("shell: bash\nadvance_on_failure: false\n"), 0o600))

	t.Setenv("CMDSEQ_SHELL", "zsh")
	t.Setenv("CMDSEQ_ADVANCE_ON_FAILURE", "true")

	cfg, err := LoadWithDir(dir)
	require.NoError(t, err)

	assert.Equal(t, "zsh", cfg.Shell)
	assert.True(t, cfg.AdvanceOnFailure)
	assert.Contains(t, cfg.Sources(), "env:CMDSEQ_SHELL")
}

func TestApplyEnv_InvalidBool(t *testing.T) {
	clearEnv(t)
	t.Setenv("CMDSEQ_ADVANCE_ON_FAILURE", "sometimes")

	_, err := LoadWithDir(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CMDSEQ_ADVANCE_ON_FAILURE")
}

func TestApplyCLIFlags(t *testing.T) {
	cfg := &Config{StateDir: "/from/file", Shell: "sh"}
	cfg.ApplyCLIFlags("/from/flag", "")

	assert.Equal(t, "/from/flag", cfg.StateDir)
	assert.Equal(t, "sh", cfg.Shell)
	assert.Equal(t, []string{"cli:dir"}, cfg.Sources())
}

func TestResolvedStateDir(t *testing.T) {
	t.Setenv("CMDSEQ_STATE_DIR", "")

	assert.Equal(t, os.TempDir(), (&Config{}).ResolvedStateDir())
	assert.Equal(t, "/x", (&Config{StateDir: "/x"}).ResolvedStateDir())
}

func TestParseConfigWithTracking(t *testing.T) {
	cfg, err := parseConfigWithTracking([]byte("shell: bash\n"))
	require.NoError(t, err)
	assert.False(t, cfg.AdvanceOnFailureSet)

	cfg, err = parseConfigWithTracking([]byte("advance_on_failure: false\n"))
	require.NoError(t, err)
	assert.True(t, cfg.AdvanceOnFailureSet)
	assert.False(t, cfg.AdvanceOnFailure)
}
