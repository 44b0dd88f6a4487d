package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/ledmon/internal/sensors"
	sensorstest "github.com/rileyhilliard/ledmon/internal/sensors/testing"
)

// useConfig writes body to a temp ledmon.yaml and points --config at it.
// "{dir}" in body expands to the temp directory.
func useConfig(t *testing.T, body string) (path, dir string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "ledmon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(strings.ReplaceAll(body, "{dir}", dir)), 0o644))

	prev := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = prev })
	return path, dir
}

func useSource(t *testing.T, src sensors.Source) {
	t.Helper()
	prev := sensorSource
	sensorSource = src
	t.Cleanup(func() { sensorSource = prev })
}

func useTerminal(t *testing.T, tty bool) {
	t.Helper()
	prev := isTerminal
	isTerminal = func() bool { return tty }
	t.Cleanup(func() { isTerminal = prev })
}

// batteryConfig is a fast-sampling config with a single battery bar on the
// left panel. Socket and lock file live in the temp dir.
const batteryConfig = `
socket: {dir}/matrix.sock
lock_file: {dir}/ledmon.lock
collector:
  max_history_samples: 3
  sample_interval: 10ms
render:
  left:
    - kind: battery
      start_y: 0
      max_height: 14
      falloff: 0
`

func fullBattery(t *testing.T) *sensorstest.FakeSource {
	t.Helper()
	src := sensorstest.NewFakeSource()
	src.SetBattery(100)
	useSource(t, src)
	return src
}
