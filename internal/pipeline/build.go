package pipeline

import (
	"github.com/rileyhilliard/ledmon/internal/collector"
	"github.com/rileyhilliard/ledmon/internal/config"
	"github.com/rileyhilliard/ledmon/internal/history"
	"github.com/rileyhilliard/ledmon/internal/logger"
	"github.com/rileyhilliard/ledmon/internal/render"
	"github.com/rileyhilliard/ledmon/internal/sensors"
	"github.com/rileyhilliard/ledmon/internal/sink"
)

// Deps overrides the pipeline's external collaborators. Zero values select
// the real host sensors, the configured Unix socket and the wall clock.
type Deps struct {
	Source sensors.Source
	Sink   sink.Sink
	Clock  Clock
	Log    logger.Logger

	// Offline renders without sending anywhere (preview, snapshot).
	Offline bool
}

// Build validates cfg and wires a driver from it.
func Build(cfg *config.Config, deps Deps) (*Driver, error) {
	compiled, err := config.Compile(cfg)
	if err != nil {
		return nil, err
	}

	log := deps.Log
	if log == nil {
		log = logger.For("pipeline")
	}
	source := deps.Source
	if source == nil {
		source = sensors.NewHost(logger.For("sensors"))
	}

	store := history.NewStore(cfg.Collector.MaxHistorySamples)
	coll := collector.New(collector.Config{
		Disks:        compiled.Disks,
		Networks:     compiled.Networks,
		Temperatures: compiled.Temperatures,
	}, source, store, logger.For("collector"))

	comp := render.NewCompositor(compiled.Size, compiled.Left, compiled.Right)
	brightness := render.NewBrightness(uint8(cfg.Render.MaxBrightness), cfg.Render.MaxBrightnessFile, logger.For("render"))

	var out sink.Sink
	if !deps.Offline {
		out = deps.Sink
		if out == nil {
			out = sink.NewUDS(cfg.Socket, cfg.Sink.Timeout, logger.For("sink"))
		}
	}

	return New(coll, comp, brightness, out, Options{
		SampleInterval: cfg.Collector.SampleInterval,
		RenderInterval: cfg.EffectiveRenderInterval(),
		SendTimeout:    cfg.Sink.Timeout,
		Clock:          deps.Clock,
		Log:            log,
	}), nil
}
