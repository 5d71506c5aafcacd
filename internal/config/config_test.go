package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Thresholds.TimerMinutes)
	assert.Equal(t, 15, cfg.Thresholds.SharkFrames)
	assert.Equal(t, 30, cfg.Thresholds.PokeFrames)
	assert.InDelta(t, 10.0, cfg.Thresholds.FootsieDist, 0.0001)
}

func TestLoad_YAMLOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slippc.yaml")
	err := os.WriteFile(path, []byte("thresholds:\n  sharkFrames: 20\n"), 0o644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Thresholds.SharkFrames)
	assert.Equal(t, 8, cfg.Thresholds.TimerMinutes)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SLIPPC_POKE_FRAMES", "45")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 45, cfg.Thresholds.PokeFrames)
}
