package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 10, cfg.Pack.CommitCount)
	assert.True(t, cfg.Pack.IncludeStats)
	assert.Equal(t, "markdown", cfg.Pack.Format)
	assert.Equal(t, 1, cfg.Pack.Workers)
	assert.Equal(t, 10, cfg.GitHub.RateLimit)
	assert.NotEmpty(t, cfg.Store.Path)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Pack.CommitCount, cfg.Pack.CommitCount)
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `pack:
  commit_count: 3
  format: plain
github:
  rate_limit: 2
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Pack.CommitCount)
	assert.Equal(t, "plain", cfg.Pack.Format)
	assert.Equal(t, 2, cfg.GitHub.RateLimit)
	// Untouched settings keep defaults.
	assert.True(t, cfg.Pack.IncludeStats)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_from_env")
	t.Setenv("REPOTEXT_WORKERS", "8")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ghp_from_env", cfg.GitHub.Token)
	assert.Equal(t, 8, cfg.Pack.Workers)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")

	cfg := Default()
	cfg.Pack.CommitCount = 7

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Pack.CommitCount)
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "(not set)", MaskToken(""))
	assert.Equal(t, "***", MaskToken("short"))
	assert.Equal(t, "ghp_...wxyz", MaskToken("ghp_0123456789abcdwxyz"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "x"), expandPath("~/x"))
	assert.Equal(t, "/abs/path", expandPath("/abs/path"))
	assert.Equal(t, "", expandPath(""))
}
