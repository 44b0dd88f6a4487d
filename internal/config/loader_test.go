package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/ledmon/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ledmon.yaml", `
socket: /tmp/matrix.sock
collector:
  max_history_samples: 10
  sample_interval: 170ms
  network_interfaces:
    - starts_with: wl
      group: wifi
    - field: mac_address
      iequal: AA:BB:CC:DD:EE:FF
render:
  max_brightness: 120
  left:
    - kind: battery
      start_y: 0
      max_height: 14
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/matrix.sock", cfg.Socket)
	assert.Equal(t, 10, cfg.Collector.MaxHistorySamples)
	assert.Equal(t, 170*time.Millisecond, cfg.Collector.SampleInterval)
	assert.Equal(t, 120, cfg.Render.MaxBrightness)
	assert.Equal(t, DefaultLockFile, cfg.LockFile, "unset keys keep defaults")
	assert.Equal(t, DefaultSinkTimeout, cfg.Sink.Timeout)

	require.Len(t, cfg.Collector.NetworkInterfaces, 2, "a configured list replaces the default one")
	assert.Equal(t, RuleConfig{StartsWith: "wl", Group: "wifi"}, cfg.Collector.NetworkInterfaces[0])
	assert.Equal(t, "mac_address", cfg.Collector.NetworkInterfaces[1].Field)
	assert.Equal(t, DefaultConfig().Collector.DiskNames, cfg.Collector.DiskNames)

	require.Len(t, cfg.Render.Left, 1)
	assert.Empty(t, cfg.Render.Right, "a configured layout replaces both default groups")
	w := cfg.Render.Left[0]
	assert.Equal(t, "battery", w.Kind)
	require.NotNil(t, w.StartY)
	require.NotNil(t, w.MaxHeight)
	assert.Equal(t, 0, *w.StartY)
	assert.Equal(t, 14, *w.MaxHeight)
	assert.Nil(t, w.MidPoint)

	assert.NoError(t, Validate(cfg))
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ledmon.toml", `
socket = "/tmp/toml.sock"

[collector]
sample_interval = "1s"

[[collector.temperatures]]
starts_with = "k10temp"

[[render.right]]
kind = "temperature"
start_y = 0
max_height = 20
max_value = 90.0
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/toml.sock", cfg.Socket)
	assert.Equal(t, time.Second, cfg.Collector.SampleInterval)
	require.Len(t, cfg.Collector.Temperatures, 1)
	assert.Equal(t, "k10temp", cfg.Collector.Temperatures[0].StartsWith)
	require.Len(t, cfg.Render.Right, 1)
	require.NotNil(t, cfg.Render.Right[0].MaxValue)
	assert.Equal(t, 90.0, *cfg.Render.Right[0].MaxValue)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ledmon.yaml", "socket: /from/file.sock\n")
	t.Setenv("LEDMON_SOCKET", "/from/env.sock")
	t.Setenv("LEDMON_RENDER_MAX_BRIGHTNESS", "64")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.sock", cfg.Socket)
	assert.Equal(t, 64, cfg.Render.MaxBrightness)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.IsCode(err, errors.ErrConfig))

	bad := writeFile(t, t.TempDir(), "bad.yaml", "render: [unclosed\n")
	_, err = Load(bad)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoad_ExpandsTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	path := writeFile(t, t.TempDir(), "ledmon.yaml", "socket: ~/matrix.sock\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "matrix.sock"), cfg.Socket)
}

func TestFind(t *testing.T) {
	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := Find(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.True(t, errors.IsCode(err, errors.ErrConfig))

		path := writeFile(t, t.TempDir(), "x.yaml", "socket: /x\n")
		got, err := Find(path)
		require.NoError(t, err)
		assert.Equal(t, path, got)
	})

	t.Run("working directory before user config", func(t *testing.T) {
		xdg := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", xdg)
		userPath := writeFile(t, xdg, filepath.Join(UserConfigDir, UserConfigFile), "socket: /user\n")

		cwd := t.TempDir()
		t.Chdir(cwd)

		got, err := Find("")
		require.NoError(t, err)
		assert.Equal(t, userPath, got)
		assert.Equal(t, userPath, UserConfigPath())

		local := writeFile(t, cwd, ConfigFileName, "socket: /local\n")
		got, err = Find("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Base(local), filepath.Base(got))
	})
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("LEDMON_SOCKET", "/env.sock")

	if _, statErr := os.Stat(SystemConfigPath); statErr == nil {
		t.Skip("system config present on this machine")
	}

	cfg, path, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, "/env.sock", cfg.Socket)
	assert.Equal(t, DefaultLeft(), cfg.Render.Left)
}
