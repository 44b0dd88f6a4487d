package sensors

import (
	"context"
	"errors"
	"testing"

	"github.com/distatus/battery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHost_BatteryPercent(t *testing.T) {
	tests := []struct {
		name      string
		batteries []*battery.Battery
		err       error
		want      float64
		wantErr   error
	}{
		{
			name:      "single battery",
			batteries: []*battery.Battery{{Current: 40, Full: 80}},
			want:      50,
		},
		{
			name: "mean over batteries",
			batteries: []*battery.Battery{
				{Current: 50, Full: 100},
				{Current: 90, Full: 100},
			},
			want: 70,
		},
		{
			name:      "overcharged reading clamps",
			batteries: []*battery.Battery{{Current: 110, Full: 100}},
			want:      100,
		},
		{
			name:      "no batteries",
			batteries: nil,
			wantErr:   ErrNoBattery,
		},
		{
			name:      "unusable capacity",
			batteries: []*battery.Battery{{Current: 10, Full: 0}, nil},
			wantErr:   ErrNoBattery,
		},
		{
			name:      "partial error with data",
			batteries: []*battery.Battery{{Current: 30, Full: 60}},
			err:       errors.New("second battery unreadable"),
			want:      50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHost(nil)
			h.batteries = func() ([]*battery.Battery, error) { return tt.batteries, tt.err }

			got, err := h.BatteryPercent(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestHost_BatteryPercent_ReadFailure(t *testing.T) {
	h := NewHost(nil)
	h.batteries = func() ([]*battery.Battery, error) { return nil, errors.New("acpi unavailable") }

	_, err := h.BatteryPercent(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoBattery)
	assert.Contains(t, err.Error(), "acpi unavailable")
}

func TestHost_BatteryPercent_CancelledContext(t *testing.T) {
	h := NewHost(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.BatteryPercent(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMajorMinor_UnknownDevice(t *testing.T) {
	assert.Empty(t, majorMinor("definitely-not-a-block-device"))
}
