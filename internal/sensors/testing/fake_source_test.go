package testing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/ledmon/internal/sensors"
)

func TestFakeSource_NoBatteryByDefault(t *testing.T) {
	f := NewFakeSource()

	_, err := f.BatteryPercent(context.Background())
	assert.ErrorIs(t, err, sensors.ErrNoBattery)

	f.SetBattery(42)
	pct, err := f.BatteryPercent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42.0, pct)
	assert.Equal(t, 2, f.CallCount("battery"))
}

func TestFakeSource_QueuedDisksAdvance(t *testing.T) {
	f := NewFakeSource()
	f.QueueDisks(
		[]sensors.DiskCounter{{Name: "sda", ReadBytes: 1}},
		[]sensors.DiskCounter{{Name: "sda", ReadBytes: 5}},
	)

	ctx := context.Background()
	first, _ := f.DiskCounters(ctx)
	second, _ := f.DiskCounters(ctx)
	third, _ := f.DiskCounters(ctx)

	assert.Equal(t, uint64(1), first[0].ReadBytes)
	assert.Equal(t, uint64(5), second[0].ReadBytes)
	assert.Equal(t, uint64(5), third[0].ReadBytes, "last queued tick repeats")
}

func TestFakeSource_Errors(t *testing.T) {
	f := NewFakeSource()
	f.TempErr = errors.New("hwmon missing")

	_, err := f.Temperatures(context.Background())
	assert.EqualError(t, err, "hwmon missing")
}
