package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rileyhilliard/ledmon/internal/config"
	"github.com/rileyhilliard/ledmon/internal/errors"
	"github.com/rileyhilliard/ledmon/internal/history"
	"github.com/rileyhilliard/ledmon/internal/logger"
	"github.com/rileyhilliard/ledmon/internal/pipeline"
	"github.com/rileyhilliard/ledmon/internal/render"
	"github.com/rileyhilliard/ledmon/internal/ui"
)

// SnapshotOptions holds options for the snapshot command.
type SnapshotOptions struct {
	Samples int    // ticks to sample; 0 means the history size
	OutDir  string // directory for left.png / right.png
	Scale   int    // nearest-neighbour upscale factor
}

// snapshotCommand samples, renders one frame and writes it as PNG files.
func snapshotCommand(ctx context.Context, w io.Writer, opts SnapshotOptions) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if opts.Scale < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid --scale %d", opts.Scale),
			"Use a scale of 1 or more")
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			fmt.Sprintf("Failed to create %s", opts.OutDir),
			"Check that the output path is writable")
	}

	d, err := offlineDriver(cfg)
	if err != nil {
		return err
	}
	frame, err := sampleFrame(ctx, d, cfg, opts.Samples)
	if err != nil {
		return err
	}

	written, err := writeFrame(frame, opts.OutDir, opts.Scale)
	if err != nil {
		return err
	}
	if len(written) == 0 {
		fmt.Fprintln(w, ui.WarningStyle().Render("No panel has widgets; nothing written"))
		return nil
	}
	for _, p := range written {
		fmt.Fprintf(w, "%s %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), p)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, seriesTable(d.Collector().History()))
	return nil
}

// offlineDriver builds a driver that renders without sending.
func offlineDriver(cfg *config.Config) (*pipeline.Driver, error) {
	return pipeline.Build(cfg, pipeline.Deps{
		Source:  sensorSource,
		Log:     logger.For("pipeline"),
		Offline: true,
	})
}

// sampleFrame steps d for n sample intervals, waiting one interval between
// ticks so counter deltas and CPU percentages are meaningful, and returns
// the final frame. n <= 0 fills the history once.
func sampleFrame(ctx context.Context, d *pipeline.Driver, cfg *config.Config, n int) (render.Frame, error) {
	if n <= 0 {
		n = cfg.Collector.MaxHistorySamples
	}
	interval := cfg.Collector.SampleInterval

	for i := 0; i < n; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return render.Frame{}, ctx.Err()
			case <-time.After(interval):
			}
		}
		d.Step(ctx, time.Now())
	}
	return d.Frame(), nil
}

// writeFrame saves each present panel and returns the paths written.
func writeFrame(f render.Frame, dir string, scale int) ([]string, error) {
	var written []string
	for _, p := range []struct {
		name   string
		canvas *render.Canvas
	}{
		{"left.png", f.Left},
		{"right.png", f.Right},
	} {
		if p.canvas == nil {
			continue
		}
		path := filepath.Join(dir, p.name)
		if err := render.SavePNG(p.canvas, path, scale); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// seriesTable lists the newest value of every tracked series.
func seriesTable(r history.Reader) string {
	keys := r.Keys("")
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		v, _ := r.Latest(k)
		rows = append(rows, []string{k.String(), fmt.Sprintf("%.1f", v), fmt.Sprintf("%d", len(r.Snapshot(k)))})
	}
	return ui.RenderSimpleTable([]ui.TableColumn{
		{Title: "SERIES", Width: 20},
		{Title: "LATEST", Width: 14},
		{Title: "SAMPLES", Width: 8},
	}, rows)
}
