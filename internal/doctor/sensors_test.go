package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rileyhilliard/ledmon/internal/selector"
	"github.com/rileyhilliard/ledmon/internal/sensors"
	sensorstest "github.com/rileyhilliard/ledmon/internal/sensors/testing"
)

func TestSensorCheck(t *testing.T) {
	src := sensorstest.NewFakeSource()
	src.SetCPU(10, 20, 30, 40)
	src.Memory = 42

	assert.Equal(t, StatusPass, (&SensorCheck{Kind: "cpu", Source: src}).Run(context.Background()).Status)
	assert.Contains(t, (&SensorCheck{Kind: "cpu", Source: src}).Run(context.Background()).Message, "4 cores")
	assert.Contains(t, (&SensorCheck{Kind: "memory", Source: src}).Run(context.Background()).Message, "42%")

	battery := &SensorCheck{Kind: "battery", Source: src}
	assert.Equal(t, StatusWarn, battery.Run(context.Background()).Status, "no battery is not a failure")

	src.SetBattery(77)
	assert.Contains(t, battery.Run(context.Background()).Message, "77%")

	src.MemoryErr = errors.New("boom")
	assert.Equal(t, StatusFail, (&SensorCheck{Kind: "memory", Source: src}).Run(context.Background()).Status)
}

func TestSelectorCheck(t *testing.T) {
	src := sensorstest.NewFakeSource()
	src.Nets = []sensors.NetCounter{
		{Name: "wlp1s0", MacAddress: "aa:bb:cc:dd:ee:ff"},
		{Name: "lo"},
		{Name: "enp2s0"},
	}

	wifi := selector.NewSet(selector.Rule{
		Field:     selector.FieldName,
		Predicate: selector.Predicate{Kind: selector.StartsWith, Pattern: "wl"},
		Group:     "wifi",
	})

	tests := []struct {
		name        string
		rules       selector.Set
		wantStatus  CheckStatus
		wantMessage string
		wantDetail  string
	}{
		{
			name:        "selected",
			rules:       wifi,
			wantStatus:  StatusPass,
			wantMessage: "1 of 3 sources selected into wifi",
			wantDetail:  "wlp1s0 (aa:bb:cc:dd:ee:ff) -> wifi",
		},
		{
			name: "matches nothing",
			rules: selector.NewSet(selector.Rule{
				Predicate: selector.Predicate{Kind: selector.Equal, Pattern: "eth9"},
			}),
			wantStatus:  StatusWarn,
			wantMessage: "rules match none of 3 sources",
			wantDetail:  "enp2s0",
		},
		{
			name:        "not configured",
			rules:       selector.Set{},
			wantStatus:  StatusPass,
			wantMessage: "not configured, 3 sources available",
			wantDetail:  "lo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := (&SelectorCheck{List: "network_interfaces", Rules: tt.rules, Source: src}).Run(context.Background())
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Contains(t, res.Message, tt.wantMessage)
			assert.Contains(t, res.Details, tt.wantDetail)
			assert.Len(t, res.Details, 3)
		})
	}
}

func TestSelectorCheck_ReadError(t *testing.T) {
	src := sensorstest.NewFakeSource()
	src.DiskErr = errors.New("no /proc")

	rules := selector.NewSet(selector.Rule{Predicate: selector.Predicate{Kind: selector.Equal, Pattern: "sda"}})
	res := (&SelectorCheck{List: "disk_names", Rules: rules, Source: src}).Run(context.Background())
	assert.Equal(t, StatusFail, res.Status)

	res = (&SelectorCheck{List: "disk_names", Source: src}).Run(context.Background())
	assert.Equal(t, StatusWarn, res.Status, "unconfigured categories only warn")
}
