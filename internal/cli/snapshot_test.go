package cli

import (
	"bytes"
	"context"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lmerrors "github.com/rileyhilliard/ledmon/internal/errors"
)

func TestSnapshotCommand(t *testing.T) {
	useConfig(t, batteryConfig)
	fullBattery(t)
	out := filepath.Join(t.TempDir(), "frames")

	var buf bytes.Buffer
	err := snapshotCommand(context.Background(), &buf, SnapshotOptions{Samples: 2, OutDir: out, Scale: 2})
	require.NoError(t, err)

	left := filepath.Join(out, "left.png")
	assert.Contains(t, buf.String(), left)
	assert.Contains(t, buf.String(), "battery")
	assert.NoFileExists(t, filepath.Join(out, "right.png"), "a panel without widgets is not written")

	img, err := imaging.Open(left)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 18, 68), img.Bounds())

	// the bar fills rows 0-13, each LED a 2x2 block
	r, _, _, _ := img.At(0, 0).RGBA()
	assert.NotZero(t, r)
	r, _, _, _ = img.At(0, 28).RGBA()
	assert.Zero(t, r)
}

func TestSnapshotCommand_InvalidScale(t *testing.T) {
	useConfig(t, batteryConfig)
	fullBattery(t)

	err := snapshotCommand(context.Background(), &bytes.Buffer{}, SnapshotOptions{OutDir: t.TempDir(), Scale: 0})
	require.Error(t, err)
	assert.True(t, lmerrors.IsCode(err, lmerrors.ErrConfig))
}

func TestSampleFrame_Cancelled(t *testing.T) {
	useConfig(t, batteryConfig)
	fullBattery(t)

	cfg, _, err := loadConfig()
	require.NoError(t, err)
	d, err := offlineDriver(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sampleFrame(ctx, d, cfg, 5)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(1), d.Stats().Samples, "the first tick runs before waiting")
}

func TestWriteFrame_UnwritableDir(t *testing.T) {
	useConfig(t, batteryConfig)
	fullBattery(t)

	cfg, _, err := loadConfig()
	require.NoError(t, err)
	d, err := offlineDriver(cfg)
	require.NoError(t, err)
	frame, err := sampleFrame(context.Background(), d, cfg, 1)
	require.NoError(t, err)

	missing := filepath.Join(t.TempDir(), "nope")
	_, err = writeFrame(frame, missing, 1)
	require.Error(t, err)
	assert.True(t, lmerrors.IsCode(err, lmerrors.ErrRender))
	_, statErr := os.Stat(missing)
	assert.True(t, os.IsNotExist(statErr))
}
