package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/stc/internal/engine"
)

// isolate points the search path at empty directories.
func isolate(t *testing.T) (home, wd string) {
	t.Helper()
	home, wd = t.TempDir(), t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(wd)
	return home, wd
}

func writeYAML(t *testing.T, path string, cfg StcConfig) {
	t.Helper()
	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o600))
}

func TestEmbeddedDefaultsMatchEngine(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultStcConfig(), cfg)
	assert.Equal(t, engine.DefaultConfig(), cfg.Engine())
	assert.NoError(t, cfg.Validate())
}

func TestLoadSearchOrder(t *testing.T) {
	home, wd := isolate(t)

	local := DefaultStcConfig()
	local.Board.Width = 12
	writeYAML(t, filepath.Join(wd, "configs", "stc.yaml"), local)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Board.Width, "local configs dir")

	user := DefaultStcConfig()
	user.Board.Width = 14
	writeYAML(t, filepath.Join(home, ".stc", "configs", "stc.yaml"), user)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 14, cfg.Board.Width, "user config beats local")

	custom := DefaultStcConfig()
	custom.Board.Width = 16
	customPath := filepath.Join(t.TempDir(), "mine.yaml")
	writeYAML(t, customPath, custom)

	cfg, err = Load(customPath)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Board.Width, "explicit path beats everything")
}

func TestLoadBrokenUserConfigFallsThrough(t *testing.T) {
	home, _ := isolate(t)
	path := filepath.Join(home, ".stc", "configs", "stc.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("board: [not, a, map"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultStcConfig(), cfg)
}

func TestLoadCustomPathErrors(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("timing: {fall_delay_ms: soon}"), 0o600))
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("STC_BOARD_WIDTH", "12")
	t.Setenv("STC_FALL_DELAY_MS", "750")
	t.Setenv("STC_AUTO_ROTATION", "false")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Board.Width)
	assert.Equal(t, 22, cfg.Board.Height, "unset variables keep file values")
	assert.Equal(t, 750, cfg.Timing.FallDelayMs)
	assert.False(t, cfg.Input.AutoRotation)
}

func TestEnvOverrideError(t *testing.T) {
	isolate(t)
	t.Setenv("STC_BOARD_HEIGHT", "tall")

	_, err := Load("")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "parse env:"), err.Error())
}

func TestValidate(t *testing.T) {
	cfg := DefaultStcConfig()
	cfg.Scoring.Rows = []int{100, 200}
	assert.ErrorContains(t, cfg.Validate(), "scoring.rows")

	cfg = DefaultStcConfig()
	cfg.Board.Width = 3
	assert.ErrorContains(t, cfg.Validate(), "board width")
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultStcConfig())
	require.NoError(t, err)
	assert.Contains(t, string(data), "fall_delay_ms: 1000")

	var back StcConfig
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, DefaultStcConfig(), back)
}
