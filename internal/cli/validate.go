package cli

import (
	"fmt"
	"io"

	"github.com/rileyhilliard/ledmon/internal/config"
	"github.com/rileyhilliard/ledmon/internal/ui"
)

// validateCommand loads and checks the config, printing a short summary.
func validateCommand(w io.Writer) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	compiled, err := config.Compile(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s %s is valid\n", ui.SuccessStyle().Render(ui.SymbolSuccess), describePath(path))
	muted := ui.MutedStyle()
	fmt.Fprintln(w, muted.Render(fmt.Sprintf("  panels: %dx%d, left %d widget(s), right %d widget(s)",
		compiled.Size.W, compiled.Size.H, len(compiled.Left), len(compiled.Right))))
	fmt.Fprintln(w, muted.Render(fmt.Sprintf("  sampling every %s, rendering every %s, %d-sample history",
		cfg.Collector.SampleInterval, cfg.EffectiveRenderInterval(), cfg.Collector.MaxHistorySamples)))
	fmt.Fprintln(w, muted.Render(fmt.Sprintf("  socket: %s", cfg.Socket)))
	return nil
}
