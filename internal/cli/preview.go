package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/rileyhilliard/ledmon/internal/errors"
	"github.com/rileyhilliard/ledmon/internal/preview"
	"github.com/rileyhilliard/ledmon/internal/ui"
)

// isTerminal reports whether stdout is a terminal. Replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// previewCommand prints one frame, or runs the live view with watch.
func previewCommand(ctx context.Context, w io.Writer, watch bool, samples int) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	d, err := offlineDriver(cfg)
	if err != nil {
		return err
	}

	if watch {
		if !isTerminal() {
			return errors.New(errors.ErrConfig,
				"--watch needs an interactive terminal",
				"Run 'ledmon preview' without --watch to print a single frame")
		}
		interval := min(cfg.Collector.SampleInterval, cfg.EffectiveRenderInterval())
		return preview.Run(d, interval)
	}

	frame, err := sampleFrame(ctx, d, cfg, samples)
	if err != nil {
		return err
	}

	fmt.Fprint(w, ui.RenderHeader(ui.HeaderInfo{
		Version: formatVersion(version),
		Tagline: "LED matrix preview",
		Detail:  describePath(path),
	}))
	fmt.Fprintln(w)
	fmt.Fprintln(w, preview.RenderFrame(frame, d.Size()))
	fmt.Fprintln(w)
	fmt.Fprintln(w, preview.RenderSeries(d.Collector().History()))
	return nil
}
