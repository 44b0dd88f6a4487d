// Package pipeline drives the collector and the compositor on their
// intervals and hands every frame to the sink.
package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rileyhilliard/ledmon/internal/collector"
	lmerrors "github.com/rileyhilliard/ledmon/internal/errors"
	"github.com/rileyhilliard/ledmon/internal/logger"
	"github.com/rileyhilliard/ledmon/internal/render"
	"github.com/rileyhilliard/ledmon/internal/sink"
)

// Options configures a Driver.
type Options struct {
	SampleInterval time.Duration
	// RenderInterval defaults to SampleInterval.
	RenderInterval time.Duration
	SendTimeout    time.Duration
	Clock          Clock
	Log            logger.Logger
}

// Stats counts driver activity since start.
type Stats struct {
	Samples      int64
	Renders      int64
	SendsOK      int64
	SendsFailed  int64
	SendsDropped int64
}

// StepResult reports what a Step did.
type StepResult struct {
	Sampled  bool
	Rendered bool
	Sent     bool // a send was started
}

// Driver owns the schedule. Collector ticks never overlap: a tick that
// overruns its interval pushes the next one back instead of running it
// concurrently. Sends run in the background, at most one at a time.
type Driver struct {
	collector  *collector.Collector
	compositor *render.Compositor
	brightness *render.Brightness
	sink       sink.Sink
	opts       Options
	log        logger.Logger

	mu         sync.Mutex // guards the schedule and serializes steps
	started    bool
	nextSample time.Time
	nextRender time.Time

	sending     atomic.Bool
	sendFailing atomic.Bool
	wg          sync.WaitGroup

	samples, renders                   atomic.Int64
	sendsOK, sendsFailed, sendsDropped atomic.Int64
}

// New creates a driver. brightness may be nil for full intensity; sink may be
// nil to render without sending.
func New(c *collector.Collector, comp *render.Compositor, b *render.Brightness, s sink.Sink, opts Options) *Driver {
	if opts.RenderInterval <= 0 {
		opts.RenderInterval = opts.SampleInterval
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = sink.DefaultTimeout
	}
	if opts.Clock == nil {
		opts.Clock = RealClock()
	}
	if opts.Log == nil {
		opts.Log = logger.Noop()
	}
	return &Driver{
		collector:  c,
		compositor: comp,
		brightness: b,
		sink:       s,
		opts:       opts,
		log:        opts.Log,
	}
}

// Step runs whatever is due at now: a collector tick first, then a render.
// The first call runs both.
func (d *Driver) Step(ctx context.Context, now time.Time) StepResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started {
		d.started = true
		d.nextSample, d.nextRender = now, now
	}

	var res StepResult
	if !now.Before(d.nextSample) {
		d.collector.Tick(ctx)
		d.samples.Add(1)
		d.nextSample = advance(d.nextSample, d.opts.SampleInterval, now)
		res.Sampled = true
	}
	if !now.Before(d.nextRender) {
		res.Sent = d.renderAndSend(ctx)
		d.renders.Add(1)
		d.nextRender = advance(d.nextRender, d.opts.RenderInterval, now)
		res.Rendered = true
	}
	return res
}

// advance returns the deadline after last. When the tick ran so late that
// the following deadline has already passed, the missed ticks are skipped
// rather than run back to back.
func advance(last time.Time, interval time.Duration, now time.Time) time.Time {
	next := last.Add(interval)
	if !next.After(now) {
		next = now.Add(interval)
	}
	return next
}

// NextDeadline returns when the next tick of either kind is due.
func (d *Driver) NextDeadline() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.nextRender.Before(d.nextSample) {
		return d.nextRender
	}
	return d.nextSample
}

// Run steps the driver until ctx is cancelled, then waits for the in-flight
// send. Tick work runs detached from ctx so shutdown never interrupts a tick
// half way through.
func (d *Driver) Run(ctx context.Context) error {
	work := context.WithoutCancel(ctx)
	d.log.Info("driver started: sample every %s, render every %s", d.opts.SampleInterval, d.opts.RenderInterval)

	for {
		d.Step(work, d.opts.Clock.Now())

		wait := d.NextDeadline().Sub(d.opts.Clock.Now())
		if wait < 0 {
			// previous tick overran; run the deferred one right away
			wait = 0
		}
		select {
		case <-ctx.Done():
			d.Wait()
			s := d.Stats()
			d.log.Info("driver stopped after %d samples, %d frames (%d sent, %d failed, %d dropped)",
				s.Samples, s.Renders, s.SendsOK, s.SendsFailed, s.SendsDropped)
			return nil
		case <-d.opts.Clock.After(wait):
		}
	}
}

// Frame renders the current history with brightness applied, without sending.
func (d *Driver) Frame() render.Frame {
	frame := d.compositor.Render(d.collector.History())
	if d.brightness != nil {
		frame.Scale(d.brightness.Level())
	}
	return frame
}

func (d *Driver) renderAndSend(ctx context.Context) bool {
	frame := d.Frame()
	if d.sink == nil || frame.Empty() {
		return false
	}

	encoded, err := frame.Encode()
	if err != nil {
		d.sendsFailed.Add(1)
		d.log.Error("%s", lmerrors.Brief(err))
		return false
	}

	if !d.sending.CompareAndSwap(false, true) {
		d.sendsDropped.Add(1)
		d.log.Debug("previous frame still in flight, dropping this one")
		return false
	}

	req := sink.Request{Left: encoded.Left, Right: encoded.Right}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer d.sending.Store(false)

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.opts.SendTimeout)
		defer cancel()
		d.recordSend(d.sink.Send(sendCtx, req))
	}()
	return true
}

// recordSend logs the first failure of a streak as a warning and the rest at
// debug level, so a missing daemon does not flood the log.
func (d *Driver) recordSend(err error) {
	if err == nil {
		d.sendsOK.Add(1)
		if d.sendFailing.Swap(false) {
			d.log.Info("LED-matrix daemon reachable again")
		}
		return
	}
	d.sendsFailed.Add(1)
	if d.sendFailing.Swap(true) {
		d.log.Debug("send failed: %s", lmerrors.Brief(err))
		return
	}
	d.log.Warn("send failed: %s", lmerrors.Brief(err))
}

// Wait blocks until the in-flight send, if any, has finished.
func (d *Driver) Wait() {
	d.wg.Wait()
}

// Stats returns a snapshot of the counters.
func (d *Driver) Stats() Stats {
	return Stats{
		Samples:      d.samples.Load(),
		Renders:      d.renders.Load(),
		SendsOK:      d.sendsOK.Load(),
		SendsFailed:  d.sendsFailed.Load(),
		SendsDropped: d.sendsDropped.Load(),
	}
}

// Collector returns the driven collector.
func (d *Driver) Collector() *collector.Collector {
	return d.collector
}

// Size returns the panel dimensions frames are rendered at.
func (d *Driver) Size() render.Size {
	return d.compositor.Size()
}
