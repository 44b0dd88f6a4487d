package doctor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	lmerrors "github.com/rileyhilliard/ledmon/internal/errors"
	"github.com/rileyhilliard/ledmon/internal/selector"
	"github.com/rileyhilliard/ledmon/internal/sensors"
)

// SensorCheck verifies that a scalar sensor category can be read.
type SensorCheck struct {
	Kind   string // "cpu", "memory" or "battery"
	Source sensors.Source
}

func (c *SensorCheck) Name() string     { return "sensor_" + c.Kind }
func (c *SensorCheck) Category() string { return CategorySensors }

func (c *SensorCheck) Run(ctx context.Context) CheckResult {
	switch c.Kind {
	case "cpu":
		cores, err := c.Source.CPUPercents(ctx)
		if err != nil {
			return fail("CPU usage unavailable: "+lmerrors.Brief(err), "cpu and average_cpu widgets will stay blank")
		}
		return pass(fmt.Sprintf("CPU: %d core%s", len(cores), pluralize(len(cores))))
	case "memory":
		pct, err := c.Source.MemoryPercent(ctx)
		if err != nil {
			return fail("Memory usage unavailable: "+lmerrors.Brief(err), "memory widgets will stay blank")
		}
		return pass(fmt.Sprintf("Memory: %.0f%% used", pct))
	case "battery":
		pct, err := c.Source.BatteryPercent(ctx)
		if errors.Is(err, sensors.ErrNoBattery) {
			return warn("No battery found", "battery widgets will stay blank on this machine")
		}
		if err != nil {
			return fail("Battery unavailable: "+lmerrors.Brief(err), "battery widgets will stay blank")
		}
		return pass(fmt.Sprintf("Battery: %.0f%%", pct))
	default:
		return fail(fmt.Sprintf("unknown sensor kind %q", c.Kind), "")
	}
}

// SelectorCheck lists the named sources of a category and reports which of
// them the configured rules select, and into which group.
type SelectorCheck struct {
	List   string // config list name, e.g. "disk_names"
	Rules  selector.Set
	Source sensors.Source
}

func (c *SelectorCheck) Name() string     { return "selector_" + c.List }
func (c *SelectorCheck) Category() string { return CategorySensors }

func (c *SelectorCheck) Run(ctx context.Context) CheckResult {
	candidates, err := c.discover(ctx)
	if err != nil {
		if c.Rules.Empty() {
			return warn(fmt.Sprintf("%s: cannot list sources (%s)", c.List, lmerrors.Brief(err)), "")
		}
		return fail(fmt.Sprintf("%s: cannot list sources (%s)", c.List, lmerrors.Brief(err)),
			"widgets reading this category will stay blank")
	}

	var details []string
	matched := 0
	for _, cand := range candidates {
		line := describe(cand)
		if g, ok := c.Rules.Match(cand); ok {
			matched++
			line += " -> " + groupLabel(g)
		}
		details = append(details, line)
	}

	var res CheckResult
	switch {
	case c.Rules.Empty():
		res = pass(fmt.Sprintf("%s: not configured, %d source%s available", c.List, len(candidates), pluralize(len(candidates))))
	case matched == 0:
		res = warn(fmt.Sprintf("%s: rules match none of %d source%s", c.List, len(candidates), pluralize(len(candidates))),
			"Adjust the rules; the sources this host reports are listed above")
	default:
		res = pass(fmt.Sprintf("%s: %d of %d source%s selected into %s",
			c.List, matched, len(candidates), pluralize(len(candidates)), strings.Join(groupLabels(c.Rules.Groups()), ", ")))
	}
	res.Details = details
	return res
}

func (c *SelectorCheck) discover(ctx context.Context) ([]selector.Candidate, error) {
	var out []selector.Candidate
	switch c.List {
	case "disk_names":
		disks, err := c.Source.DiskCounters(ctx)
		if err != nil {
			return nil, err
		}
		for _, d := range disks {
			out = append(out, selector.Candidate{Name: d.Name, MajorMinor: d.MajorMinor})
		}
	case "network_interfaces":
		nets, err := c.Source.NetCounters(ctx)
		if err != nil {
			return nil, err
		}
		for _, n := range nets {
			out = append(out, selector.Candidate{Name: n.Name, MacAddress: n.MacAddress})
		}
	case "temperatures":
		temps, err := c.Source.Temperatures(ctx)
		if err != nil {
			return nil, err
		}
		for _, t := range temps {
			out = append(out, selector.Candidate{Name: t.Label})
		}
	default:
		return nil, fmt.Errorf("unknown selector list %q", c.List)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func describe(c selector.Candidate) string {
	var extra []string
	if c.MajorMinor != "" {
		extra = append(extra, c.MajorMinor)
	}
	if c.MacAddress != "" {
		extra = append(extra, c.MacAddress)
	}
	if len(extra) == 0 {
		return c.Name
	}
	return fmt.Sprintf("%s (%s)", c.Name, strings.Join(extra, ", "))
}

func groupLabel(g string) string {
	if g == "" {
		return "default"
	}
	return g
}

func groupLabels(gs []string) []string {
	out := make([]string, len(gs))
	for i, g := range gs {
		out[i] = groupLabel(g)
	}
	return out
}
