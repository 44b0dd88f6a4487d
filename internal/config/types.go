package config

import (
	"time"

	"github.com/rileyhilliard/ledmon/internal/render"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete ledmon configuration file.
type Config struct {
	Version   int             `yaml:"version" mapstructure:"version"`
	Socket    string          `yaml:"socket" mapstructure:"socket"`
	LockFile  string          `yaml:"lock_file" mapstructure:"lock_file"`
	Collector CollectorConfig `yaml:"collector" mapstructure:"collector"`
	Render    RenderConfig    `yaml:"render" mapstructure:"render"`
	Sink      SinkConfig      `yaml:"sink" mapstructure:"sink"`
}

// CollectorConfig controls sampling.
type CollectorConfig struct {
	// MaxHistorySamples is how many samples each series retains.
	MaxHistorySamples int `yaml:"max_history_samples" mapstructure:"max_history_samples"`

	// SampleInterval is the time between collector ticks.
	SampleInterval time.Duration `yaml:"sample_interval" mapstructure:"sample_interval"`

	// Selector rules per category. An empty list disables the category.
	DiskNames         []RuleConfig `yaml:"disk_names,omitempty" mapstructure:"disk_names"`
	NetworkInterfaces []RuleConfig `yaml:"network_interfaces,omitempty" mapstructure:"network_interfaces"`
	Temperatures      []RuleConfig `yaml:"temperatures,omitempty" mapstructure:"temperatures"`
}

// RuleConfig is one selector rule. Exactly one matcher must be set.
type RuleConfig struct {
	// Field is what the matcher inspects: name (default), mac_address
	// (network only) or major_minor (disks only).
	Field string `yaml:"field,omitempty" mapstructure:"field"`

	Equal      string `yaml:"equal,omitempty" mapstructure:"equal"`
	IEqual     string `yaml:"iequal,omitempty" mapstructure:"iequal"`
	StartsWith string `yaml:"starts_with,omitempty" mapstructure:"starts_with"`
	EndsWith   string `yaml:"ends_with,omitempty" mapstructure:"ends_with"`
	Contains   string `yaml:"contains,omitempty" mapstructure:"contains"`

	// Group names the series matching sources are averaged into.
	Group string `yaml:"group,omitempty" mapstructure:"group"`
}

// RenderConfig controls frame layout and output intensity.
type RenderConfig struct {
	// Interval is the time between frames; 0 renders after every sample.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	Width  int `yaml:"width" mapstructure:"width"`
	Height int `yaml:"height" mapstructure:"height"`

	// MaxBrightness caps every pixel (1-255).
	MaxBrightness int `yaml:"max_brightness" mapstructure:"max_brightness"`

	// MaxBrightnessFile optionally holds an integer that lowers the cap at
	// runtime, re-read every frame.
	MaxBrightnessFile string `yaml:"max_brightness_file,omitempty" mapstructure:"max_brightness_file"`

	Left  []WidgetConfig `yaml:"left,omitempty" mapstructure:"left"`
	Right []WidgetConfig `yaml:"right,omitempty" mapstructure:"right"`
}

// WidgetConfig describes one widget. Only the fields relevant to the kind
// are read; unset fields take the widget defaults.
type WidgetConfig struct {
	Kind        string   `yaml:"kind" mapstructure:"kind"`
	Source      string   `yaml:"source,omitempty" mapstructure:"source"`
	MidPoint    *int     `yaml:"mid_point,omitempty" mapstructure:"mid_point"`
	MaxHeight   *int     `yaml:"max_height,omitempty" mapstructure:"max_height"`
	StartX      *int     `yaml:"start_x,omitempty" mapstructure:"start_x"`
	StartY      *int     `yaml:"start_y,omitempty" mapstructure:"start_y"`
	EndX        *int     `yaml:"end_x,omitempty" mapstructure:"end_x"`
	EndY        *int     `yaml:"end_y,omitempty" mapstructure:"end_y"`
	Thickness   *int     `yaml:"thickness,omitempty" mapstructure:"thickness"`
	K           *float64 `yaml:"k,omitempty" mapstructure:"k"`
	MinValue    *float64 `yaml:"min_value,omitempty" mapstructure:"min_value"`
	MaxValue    *float64 `yaml:"max_value,omitempty" mapstructure:"max_value"`
	Falloff     *float64 `yaml:"falloff,omitempty" mapstructure:"falloff"`
	Orientation string   `yaml:"orientation,omitempty" mapstructure:"orientation"`
}

// Spec converts the widget config to an unvalidated render spec.
func (w WidgetConfig) Spec() render.Spec {
	return render.Spec{
		Kind:        w.Kind,
		Source:      w.Source,
		MidPoint:    w.MidPoint,
		MaxHeight:   w.MaxHeight,
		StartX:      w.StartX,
		StartY:      w.StartY,
		EndX:        w.EndX,
		EndY:        w.EndY,
		Thickness:   w.Thickness,
		K:           w.K,
		MinValue:    w.MinValue,
		MaxValue:    w.MaxValue,
		Falloff:     w.Falloff,
		Orientation: w.Orientation,
	}
}

// SinkConfig controls delivery to the LED-matrix daemon.
type SinkConfig struct {
	// Timeout bounds a single send.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// Default values.
const (
	DefaultSocket            = "/run/led-matrix.sock"
	DefaultLockFile          = "/tmp/ledmon.lock"
	DefaultMaxHistorySamples = 9
	DefaultSampleInterval    = 200 * time.Millisecond
	DefaultMaxBrightness     = 255
	DefaultSinkTimeout       = 2 * time.Second
)

func intp(v int) *int { return &v }

// DefaultLeft is the layout of the left module when none is configured:
// per-core CPU bars on top and a network plot below.
func DefaultLeft() []WidgetConfig {
	return []WidgetConfig{
		{Kind: "cpu", MidPoint: intp(10), MaxHeight: intp(10)},
		{Kind: "network", MidPoint: intp(27), MaxHeight: intp(7)},
	}
}

// DefaultRight is the layout of the right module when none is configured:
// a disk plot on top and three vertical bars growing up from the bottom edge.
func DefaultRight() []WidgetConfig {
	return []WidgetConfig{
		{Kind: "disk", MidPoint: intp(10), MaxHeight: intp(10)},
		{Kind: "average_cpu", StartX: intp(0), StartY: intp(34), EndY: intp(21)},
		{Kind: "memory", StartX: intp(3), StartY: intp(34), EndY: intp(21), Thickness: intp(2)},
		{Kind: "battery", StartX: intp(6), StartY: intp(34), EndY: intp(21), Thickness: intp(2)},
	}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:  CurrentConfigVersion,
		Socket:   DefaultSocket,
		LockFile: DefaultLockFile,
		Collector: CollectorConfig{
			MaxHistorySamples: DefaultMaxHistorySamples,
			SampleInterval:    DefaultSampleInterval,
			DiskNames: []RuleConfig{
				{Equal: "nvme0n1"},
				{Equal: "sda"},
			},
			NetworkInterfaces: []RuleConfig{
				{StartsWith: "en"},
				{StartsWith: "eth"},
				{StartsWith: "wl"},
			},
		},
		Render: RenderConfig{
			Width:         render.DefaultWidth,
			Height:        render.DefaultHeight,
			MaxBrightness: DefaultMaxBrightness,
			Left:          DefaultLeft(),
			Right:         DefaultRight(),
		},
		Sink: SinkConfig{
			Timeout: DefaultSinkTimeout,
		},
	}
}

// EffectiveRenderInterval returns the render interval, defaulting to the
// sample interval.
func (c *Config) EffectiveRenderInterval() time.Duration {
	if c.Render.Interval > 0 {
		return c.Render.Interval
	}
	return c.Collector.SampleInterval
}
