//go:build unix

package lock

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lmerrors "github.com/rileyhilliard/ledmon/internal/errors"
)

func TestTryAcquire_SecondInstanceFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "ledmon.lock")

	first, err := TryAcquire(path, "ledmon run")
	require.NoError(t, err)
	defer first.Release()

	assert.Equal(t, os.Getpid(), first.Info.PID)
	assert.Equal(t, "ledmon run", first.Info.Command)

	_, err = TryAcquire(path, "ledmon run")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLocked))
	assert.True(t, lmerrors.IsCode(err, lmerrors.ErrLock))
	assert.Contains(t, err.Error(), "ledmon run", "the holder is named")
}

func TestTryAcquire_AfterRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledmon.lock")

	first, err := TryAcquire(path, "first")
	require.NoError(t, err)
	require.NoError(t, first.Release())
	assert.NoError(t, first.Release(), "release is idempotent")

	assert.Equal(t, "unknown", Holder(path))

	second, err := TryAcquire(path, "second")
	require.NoError(t, err)
	defer second.Release()
	assert.Contains(t, Holder(path), "second")
}

func TestTryAcquire_UnwritableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	defer os.Chmod(dir, 0o700)

	_, err := TryAcquire(filepath.Join(dir, "ledmon.lock"), "x")
	assert.True(t, lmerrors.IsCode(err, lmerrors.ErrLock))
	assert.False(t, errors.Is(err, ErrLocked))
}

func TestHolder(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"missing", "", "unknown"},
		{"raw text", "someone else\n", "someone else"},
		{"lock info", `{"user":"ana","hostname":"desk","pid":42,"command":"ledmon run"}`, "ana@desk (pid 42, ledmon run)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			if tt.content != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			}
			assert.Equal(t, tt.want, Holder(path))
		})
	}
}

func TestLockInfo_RoundTrip(t *testing.T) {
	info, err := NewLockInfo("ledmon run")
	require.NoError(t, err)
	info.Started = time.Now().Add(-90 * time.Second)

	data, err := info.Marshal()
	require.NoError(t, err)
	parsed, err := ParseLockInfo(data)
	require.NoError(t, err)

	assert.Equal(t, info.PID, parsed.PID)
	assert.GreaterOrEqual(t, parsed.Age(), 90*time.Second)
	assert.Contains(t, parsed.String(), "up 1m3")
}
