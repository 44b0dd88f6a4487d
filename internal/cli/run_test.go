//go:build unix

package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lmerrors "github.com/rileyhilliard/ledmon/internal/errors"
	"github.com/rileyhilliard/ledmon/internal/lock"
)

func TestRunCommand_StopsOnCancelAndReleasesLock(t *testing.T) {
	_, dir := useConfig(t, batteryConfig)
	fullBattery(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, runCommand(ctx))

	lk, err := lock.TryAcquire(filepath.Join(dir, "ledmon.lock"), "test")
	require.NoError(t, err, "lock is released after shutdown")
	require.NoError(t, lk.Release())
}

func TestRunCommand_SecondInstanceRefused(t *testing.T) {
	_, dir := useConfig(t, batteryConfig)
	fullBattery(t)

	held, err := lock.TryAcquire(filepath.Join(dir, "ledmon.lock"), "other ledmon")
	require.NoError(t, err)
	defer held.Release() //nolint:errcheck

	err = runCommand(context.Background())
	require.Error(t, err)
	assert.True(t, lmerrors.IsCode(err, lmerrors.ErrLock))
}
