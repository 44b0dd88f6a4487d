package doctor

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/ledmon/internal/config"
	"github.com/rileyhilliard/ledmon/internal/lock"
	sensorstest "github.com/rileyhilliard/ledmon/internal/sensors/testing"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(ctx context.Context) error { return p.err }

func TestSocketCheck(t *testing.T) {
	dir, err := os.MkdirTemp("", "ledmon")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	sock := filepath.Join(dir, "s.sock")
	l, err := net.Listen("unix", sock)
	require.NoError(t, err)
	defer l.Close()

	plain := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(plain, nil, 0o644))

	tests := []struct {
		name   string
		socket string
		ping   error
		want   CheckStatus
	}{
		{"listening", sock, nil, StatusPass},
		{"missing", filepath.Join(dir, "none.sock"), nil, StatusFail},
		{"not a socket", plain, nil, StatusFail},
		{"refuses", sock, errors.New("refused"), StatusFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := (&SocketCheck{Socket: tt.socket, Sink: fakePinger{tt.ping}}).Run(context.Background())
			assert.Equal(t, tt.want, res.Status, res.Message)
		})
	}
}

func TestBrightnessFileCheck(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		return p
	}

	tests := []struct {
		name string
		file string
		want CheckStatus
		msg  string
	}{
		{"not configured", "", StatusPass, "fixed at 200"},
		{"readable", write("ok", "120\n"), StatusPass, "Brightness 120"},
		{"above max", write("high", "255"), StatusPass, "capped"},
		{"garbage", write("bad", "dim"), StatusWarn, "integer"},
		{"missing", filepath.Join(dir, "none"), StatusWarn, "Cannot read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := (&BrightnessFileCheck{File: tt.file, Max: 200}).Run(context.Background())
			assert.Equal(t, tt.want, res.Status)
			assert.Contains(t, res.Message, tt.msg)
		})
	}
}

func TestLockCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledmon.lock")
	check := &LockCheck{Path: path}

	assert.Equal(t, StatusPass, check.Run(context.Background()).Status)

	held, err := lock.TryAcquire(path, "ledmon run")
	require.NoError(t, err)
	defer held.Release()

	res := check.Run(context.Background())
	assert.Equal(t, StatusWarn, res.Status)
	assert.Contains(t, res.Message, "ledmon run")
}

func TestStandard(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Collector.DiskNames = []config.RuleConfig{{Equal: "a", Contains: "b"}}

	checks := Standard("", cfg, sensorstest.NewFakeSource(), fakePinger{})

	names := make([]string, len(checks))
	for i, c := range checks {
		names[i] = c.Name()
	}
	assert.Equal(t, []string{
		"config_file", "config_valid",
		"sensor_cpu", "sensor_memory", "sensor_battery",
		"selector_disk_names", "selector_network_interfaces", "selector_temperatures",
		"daemon_socket", "brightness_file", "instance_lock",
	}, names)

	disks := checks[5].(*SelectorCheck)
	assert.True(t, disks.Rules.Empty(), "invalid rules fall back to an empty set")
}
