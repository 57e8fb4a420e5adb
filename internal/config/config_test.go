package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dibsonthis/Glide/internal/config"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NoError(t, err)
	assert.Equal(t, "", cfg.BootstrapPath)
	assert.Equal(t, 2000, cfg.MaxCallDepth)
}

func TestLoadOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glide.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"builtins": "custom.gl", "maxCallDepth": 500}`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom.gl", cfg.BootstrapPath)
	assert.Equal(t, 500, cfg.MaxCallDepth)
}

func TestLoadPartialOverrideKeepsOtherDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glide.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"maxCallDepth": 10}`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "", cfg.BootstrapPath)
	assert.Equal(t, 10, cfg.MaxCallDepth)
}
