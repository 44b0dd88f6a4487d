package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/ledmon/internal/errors"
	"github.com/rileyhilliard/ledmon/internal/selector"
)

func TestDefaultConfigIsValid(t *testing.T) {
	c, err := Compile(DefaultConfig())
	require.NoError(t, err)
	assert.Len(t, c.Left, 2)
	assert.Len(t, c.Right, 4)
	assert.False(t, c.Disks.Empty())
	assert.False(t, c.Networks.Empty())
	assert.True(t, c.Temperatures.Empty())
}

func TestValidate_NamesTheField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "zero history",
			mutate: func(c *Config) { c.Collector.MaxHistorySamples = 0 },
			want:   "collector.max_history_samples",
		},
		{
			name:   "zero interval",
			mutate: func(c *Config) { c.Collector.SampleInterval = 0 },
			want:   "collector.sample_interval",
		},
		{
			name:   "negative render interval",
			mutate: func(c *Config) { c.Render.Interval = -time.Second },
			want:   "render.interval",
		},
		{
			name:   "brightness out of range",
			mutate: func(c *Config) { c.Render.MaxBrightness = 300 },
			want:   "render.max_brightness",
		},
		{
			name:   "empty socket",
			mutate: func(c *Config) { c.Socket = " " },
			want:   "socket",
		},
		{
			name: "rule with two matchers",
			mutate: func(c *Config) {
				c.Collector.DiskNames = []RuleConfig{{Equal: "sda"}, {Equal: "sdb", Contains: "sd"}}
			},
			want: "collector.disk_names[1]",
		},
		{
			name: "rule with no matcher",
			mutate: func(c *Config) {
				c.Collector.Temperatures = []RuleConfig{{Group: "cpu"}}
			},
			want: "collector.temperatures[0]",
		},
		{
			name: "mac address on disks",
			mutate: func(c *Config) {
				c.Collector.DiskNames = []RuleConfig{{Field: "mac_address", Equal: "x"}}
			},
			want: "collector.disk_names[0].field",
		},
		{
			name: "malformed major minor",
			mutate: func(c *Config) {
				c.Collector.DiskNames = []RuleConfig{{Field: "major_minor", Equal: "259-0"}}
			},
			want: "collector.disk_names[0].equal",
		},
		{
			name: "major minor with prefix matcher",
			mutate: func(c *Config) {
				c.Collector.DiskNames = []RuleConfig{{Field: "major_minor", StartsWith: "259"}}
			},
			want: "collector.disk_names[0].starts_with",
		},
		{
			name: "unknown field",
			mutate: func(c *Config) {
				c.Collector.NetworkInterfaces = []RuleConfig{{Field: "driver", Equal: "e1000"}}
			},
			want: "collector.network_interfaces[0].field",
		},
		{
			name: "bar taller than canvas",
			mutate: func(c *Config) {
				c.Render.Left = append(c.Render.Left, WidgetConfig{Kind: "battery", StartY: intp(30), MaxHeight: intp(14)})
			},
			want: "render.left[2] (battery).end_y",
		},
		{
			name: "plot missing mid point",
			mutate: func(c *Config) {
				c.Render.Right[0].MidPoint = nil
			},
			want: "render.right[0] (disk).mid_point",
		},
		{
			name: "unknown kind",
			mutate: func(c *Config) {
				c.Render.Right = []WidgetConfig{{Kind: "gpu", MaxHeight: intp(3)}}
			},
			want: "render.right[0] (gpu).kind",
		},
		{
			name: "no widgets",
			mutate: func(c *Config) {
				c.Render.Left, c.Render.Right = nil, nil
			},
			want: "render: no widgets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCompile_Rules(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Collector.DiskNames = []RuleConfig{
		{Field: "major_minor", Equal: "259:0", Group: "system"},
		{StartsWith: "sd"},
	}
	cfg.Collector.NetworkInterfaces = []RuleConfig{{Field: "mac", IEqual: "aa:bb:cc:dd:ee:ff", Group: "uplink"}}

	c, err := Compile(cfg)
	require.NoError(t, err)

	rules := c.Disks.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, selector.FieldMajorMinor, rules[0].Field)
	assert.Equal(t, "system", rules[0].Group)
	assert.Equal(t, selector.Predicate{Kind: selector.StartsWith, Pattern: "sd"}, rules[1].Predicate)

	g, ok := c.Networks.Match(selector.Candidate{Name: "eth0", MacAddress: "AA:BB:CC:DD:EE:FF"})
	assert.True(t, ok)
	assert.Equal(t, "uplink", g)
}

func TestEffectiveRenderInterval(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultSampleInterval, cfg.EffectiveRenderInterval())

	cfg.Render.Interval = time.Second
	assert.Equal(t, time.Second, cfg.EffectiveRenderInterval())
}
