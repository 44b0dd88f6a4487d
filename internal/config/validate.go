package config

import (
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rileyhilliard/ledmon/internal/errors"
	"github.com/rileyhilliard/ledmon/internal/render"
	"github.com/rileyhilliard/ledmon/internal/selector"
)

// Selector list names, as they appear in the config file.
const (
	ListDisks        = "disk_names"
	ListNetworks     = "network_interfaces"
	ListTemperatures = "temperatures"
)

// minSampleInterval keeps the collector from spinning on the host.
const minSampleInterval = 10 * time.Millisecond

var majorMinorPattern = regexp.MustCompile(`^\d+:\d+$`)

// Compiled is a validated config turned into the runtime types the pipeline
// consumes.
type Compiled struct {
	Disks        selector.Set
	Networks     selector.Set
	Temperatures selector.Set

	Size  render.Size
	Left  []render.Widget
	Right []render.Widget
}

// Validate checks the config for errors and returns the first one, naming the
// offending field.
func Validate(cfg *Config) error {
	_, err := Compile(cfg)
	return err
}

// Compile validates cfg and builds selector sets and render widgets from it.
func Compile(cfg *Config) (*Compiled, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but ledmon only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade ledmon or lower 'version' in the config.")
	}

	if strings.TrimSpace(cfg.Socket) == "" {
		return nil, errors.Field("socket", "must not be empty",
			"Set 'socket' to the LED-matrix daemon's Unix socket, e.g. "+DefaultSocket)
	}

	if err := validateCollector(cfg.Collector); err != nil {
		return nil, err
	}
	if err := validateRender(cfg.Render); err != nil {
		return nil, err
	}
	if cfg.Sink.Timeout < 0 {
		return nil, errors.Field("sink.timeout", fmt.Sprintf("must not be negative, got %s", cfg.Sink.Timeout),
			"Use a positive duration like '2s', or 0 for the default.")
	}

	out := &Compiled{
		Size: render.Size{W: cfg.Render.Width, H: cfg.Render.Height},
	}

	var err error
	if out.Disks, err = CompileRules(ListDisks, cfg.Collector.DiskNames); err != nil {
		return nil, err
	}
	if out.Networks, err = CompileRules(ListNetworks, cfg.Collector.NetworkInterfaces); err != nil {
		return nil, err
	}
	if out.Temperatures, err = CompileRules(ListTemperatures, cfg.Collector.Temperatures); err != nil {
		return nil, err
	}

	capacity := cfg.Collector.MaxHistorySamples
	if out.Left, err = compileWidgets("render.left", cfg.Render.Left, out.Size, capacity); err != nil {
		return nil, err
	}
	if out.Right, err = compileWidgets("render.right", cfg.Render.Right, out.Size, capacity); err != nil {
		return nil, err
	}
	if len(out.Left) == 0 && len(out.Right) == 0 {
		return nil, errors.Field("render", "no widgets configured",
			"Add at least one widget under 'render.left' or 'render.right'.")
	}

	return out, nil
}

func validateCollector(c CollectorConfig) error {
	if c.MaxHistorySamples < 1 {
		return errors.Field("collector.max_history_samples",
			fmt.Sprintf("must be at least 1, got %d", c.MaxHistorySamples),
			"Use a small positive number like 9 (one sample per matrix column).")
	}
	if c.SampleInterval < minSampleInterval {
		return errors.Field("collector.sample_interval",
			fmt.Sprintf("must be at least %s, got %s", minSampleInterval, c.SampleInterval),
			"Use a duration like '200ms' or '1s'.")
	}
	return nil
}

func validateRender(r RenderConfig) error {
	if r.Interval < 0 {
		return errors.Field("render.interval", fmt.Sprintf("must not be negative, got %s", r.Interval),
			"Use 0 to render after every sample, or a duration like '500ms'.")
	}
	if r.Interval > 0 && r.Interval < minSampleInterval {
		return errors.Field("render.interval", fmt.Sprintf("must be at least %s, got %s", minSampleInterval, r.Interval),
			"Use 0 to render after every sample, or a duration like '500ms'.")
	}
	if r.Width < 1 || r.Height < 1 {
		return errors.Field("render.width", fmt.Sprintf("canvas must be at least 1x1, got %dx%d", r.Width, r.Height),
			fmt.Sprintf("One LED-matrix module is %dx%d.", render.DefaultWidth, render.DefaultHeight))
	}
	if r.MaxBrightness < 1 || r.MaxBrightness > 255 {
		return errors.Field("render.max_brightness",
			fmt.Sprintf("must be between 1 and 255, got %d", r.MaxBrightness),
			"Use 255 for full brightness.")
	}
	return nil
}

// CompileRules turns one selector list into a selector set.
func CompileRules(list string, rules []RuleConfig) (selector.Set, error) {
	out := make([]selector.Rule, 0, len(rules))
	for i, rc := range rules {
		path := fmt.Sprintf("collector.%s[%d]", list, i)
		rule, err := compileRule(path, list, rc)
		if err != nil {
			return selector.Set{}, err
		}
		out = append(out, rule)
	}
	return selector.NewSet(out...), nil
}

func compileRule(path, list string, rc RuleConfig) (selector.Rule, error) {
	type matcher struct {
		key     string
		kind    selector.PredicateKind
		pattern string
	}
	var set []matcher
	for _, m := range []matcher{
		{"equal", selector.Equal, rc.Equal},
		{"iequal", selector.IEqual, rc.IEqual},
		{"starts_with", selector.StartsWith, rc.StartsWith},
		{"ends_with", selector.EndsWith, rc.EndsWith},
		{"contains", selector.Contains, rc.Contains},
	} {
		if m.pattern != "" {
			set = append(set, m)
		}
	}
	if len(set) != 1 {
		return selector.Rule{}, errors.Field(path,
			fmt.Sprintf("needs exactly one matcher, got %d", len(set)),
			"Use one of: equal, iequal, starts_with, ends_with, contains.")
	}
	m := set[0]

	rule := selector.Rule{
		Predicate: selector.Predicate{Kind: m.kind, Pattern: m.pattern},
		Group:     rc.Group,
	}

	switch strings.ToLower(rc.Field) {
	case "", "name":
		rule.Field = selector.FieldName
	case "mac_address", "mac":
		if list != ListNetworks {
			return selector.Rule{}, errors.Field(path+".field",
				"mac_address only applies to network_interfaces",
				"Match on 'name' instead.")
		}
		rule.Field = selector.FieldMacAddress
	case "major_minor":
		if list != ListDisks {
			return selector.Rule{}, errors.Field(path+".field",
				"major_minor only applies to disk_names",
				"Match on 'name' instead.")
		}
		if m.kind != selector.Equal {
			return selector.Rule{}, errors.Field(path+"."+m.key,
				"major_minor rules only support 'equal'",
				"Write the device number exactly, e.g. equal: \"259:0\".")
		}
		if !majorMinorPattern.MatchString(m.pattern) {
			return selector.Rule{}, errors.Field(path+".equal",
				fmt.Sprintf("%q is not a MAJOR:MINOR device number", m.pattern),
				"Find it with 'lsblk -o NAME,MAJ:MIN'.")
		}
		rule.Field = selector.FieldMajorMinor
	default:
		return selector.Rule{}, errors.Field(path+".field",
			fmt.Sprintf("unknown field %q", rc.Field),
			"Use name, mac_address (network) or major_minor (disks).")
	}

	return rule, nil
}

// compileWidgets validates a widget group against the canvas.
func compileWidgets(group string, specs []WidgetConfig, size render.Size, historyCap int) ([]render.Widget, error) {
	out := make([]render.Widget, 0, len(specs))
	for i, wc := range specs {
		path := fmt.Sprintf("%s[%d]", group, i)
		if wc.Kind != "" {
			path = fmt.Sprintf("%s (%s)", path, wc.Kind)
		}

		w, err := render.NewWidget(wc.Spec(), size, historyCap)
		if err != nil {
			var geo *render.GeometryError
			if stderrors.As(err, &geo) {
				return nil, errors.Field(path+"."+geo.Field, geo.Problem,
					fmt.Sprintf("The canvas is %dx%d; see 'ledmon preview' to check the layout.", size.W, size.H))
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig, path+": invalid widget", "")
		}
		out = append(out, w)
	}
	return out, nil
}
