package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yoeri-z/ui-effects/effects"
	"github.com/Yoeri-z/ui-effects/effects/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, config.FileName), []byte(content), 0o644)
	require.NoError(t, err)
	return dir
}

func TestLoadOptional_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.LoadOptional(t.TempDir())
	require.NoError(t, err)

	conf, err := cfg.DispatcherConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, effects.FailFast, conf.OnMissingHandler)
	assert.True(t, conf.WarnOnMultipleHandlers)
}

func TestLoadOptional_ParsesDispatchSection(t *testing.T) {
	dir := writeConfig(t, `
dispatch:
  on_missing_handler: soft
  warn_on_multiple_handlers: false
surface:
  buffer_size: 64
`)

	cfg, err := config.LoadOptional(dir)
	require.NoError(t, err)

	conf, err := cfg.DispatcherConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, effects.FailSoft, conf.OnMissingHandler)
	assert.False(t, conf.WarnOnMultipleHandlers)
	assert.Equal(t, 64, cfg.SurfaceQueue().BufferSize)
}

func TestDispatcherConfig_RejectsUnknownFailMode(t *testing.T) {
	dir := writeConfig(t, `
dispatch:
  on_missing_handler: shrug
`)

	cfg, err := config.LoadOptional(dir)
	require.NoError(t, err)

	_, err = cfg.DispatcherConfig(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "on_missing_handler")
}

func TestLoadOptional_MalformedYAML(t *testing.T) {
	dir := writeConfig(t, "dispatch: [")

	_, err := config.LoadOptional(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}
