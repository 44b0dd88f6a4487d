package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/rileyhilliard/ledmon/internal/config"
	lmerrors "github.com/rileyhilliard/ledmon/internal/errors"
)

// ConfigFileCheck reports which config file is in use.
type ConfigFileCheck struct {
	ConfigPath string // Explicit path, or empty to search
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return CategoryConfig }

func (c *ConfigFileCheck) Run(ctx context.Context) CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		return fail(lmerrors.Brief(err), "Check the --config path")
	}
	if path == "" {
		return warn("No config file found, using built-in defaults",
			"Run 'ledmon init' to write one you can edit")
	}
	return pass(fmt.Sprintf("Config file: %s", path))
}

// ConfigValidCheck loads and validates the config.
type ConfigValidCheck struct {
	ConfigPath string
}

func (c *ConfigValidCheck) Name() string     { return "config_valid" }
func (c *ConfigValidCheck) Category() string { return CategoryConfig }

func (c *ConfigValidCheck) Run(ctx context.Context) CheckResult {
	cfg, _, err := config.LoadOrDefault(c.ConfigPath)
	if err != nil {
		return fail(lmerrors.Brief(err), "Check the syntax of your config file")
	}

	compiled, err := config.Compile(cfg)
	if err != nil {
		var suggestion string
		var e *lmerrors.Error
		if errors.As(err, &e) {
			suggestion = e.Suggestion
		}
		return fail(lmerrors.Brief(err), suggestion)
	}

	n := len(compiled.Left) + len(compiled.Right)
	return pass(fmt.Sprintf("Valid: %d widget%s, %d-sample history",
		n, pluralize(n), cfg.Collector.MaxHistorySamples))
}
