package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rileyhilliard/ledmon/internal/lock"
	"github.com/rileyhilliard/ledmon/internal/logger"
	"github.com/rileyhilliard/ledmon/internal/pipeline"
)

// runCommand drives the matrix until the process is signalled.
func runCommand(ctx context.Context) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	d, err := pipeline.Build(cfg, pipeline.Deps{Source: sensorSource})
	if err != nil {
		return err
	}

	lk, err := lock.TryAcquire(cfg.LockFile, "ledmon run")
	if err != nil {
		return err
	}
	defer lk.Release() //nolint:errcheck // best effort on shutdown

	log := logger.For("cli")
	log.Info("ledmon %s starting: config %s, socket %s, sampling every %s",
		formatVersion(version), describePath(path), cfg.Socket, cfg.Collector.SampleInterval)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return d.Run(ctx)
}
