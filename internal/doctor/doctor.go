package doctor

import (
	"github.com/rileyhilliard/ledmon/internal/config"
	"github.com/rileyhilliard/ledmon/internal/selector"
	"github.com/rileyhilliard/ledmon/internal/sensors"
)

// Standard returns the checks 'ledmon doctor' runs. cfg may be invalid; the
// config checks report that and the rest fall back to what they can use.
func Standard(configPath string, cfg *config.Config, source sensors.Source, pinger Pinger) []Check {
	checks := []Check{
		&ConfigFileCheck{ConfigPath: configPath},
		&ConfigValidCheck{ConfigPath: configPath},
		&SensorCheck{Kind: "cpu", Source: source},
		&SensorCheck{Kind: "memory", Source: source},
		&SensorCheck{Kind: "battery", Source: source},
	}

	for _, l := range []struct {
		name  string
		rules []config.RuleConfig
	}{
		{config.ListDisks, cfg.Collector.DiskNames},
		{config.ListNetworks, cfg.Collector.NetworkInterfaces},
		{config.ListTemperatures, cfg.Collector.Temperatures},
	} {
		set, err := config.CompileRules(l.name, l.rules)
		if err != nil {
			set = selector.Set{}
		}
		checks = append(checks, &SelectorCheck{List: l.name, Rules: set, Source: source})
	}

	return append(checks,
		&SocketCheck{Socket: cfg.Socket, Sink: pinger},
		&BrightnessFileCheck{File: cfg.Render.MaxBrightnessFile, Max: cfg.Render.MaxBrightness},
		&LockCheck{Path: cfg.LockFile},
	)
}
