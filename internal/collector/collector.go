// Package collector samples host telemetry on each tick, keeps the sources
// the selectors allow, averages them into logical series, and publishes one
// sample per series into the history store.
package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	lmerrors "github.com/rileyhilliard/ledmon/internal/errors"
	"github.com/rileyhilliard/ledmon/internal/history"
	"github.com/rileyhilliard/ledmon/internal/logger"
	"github.com/rileyhilliard/ledmon/internal/selector"
	"github.com/rileyhilliard/ledmon/internal/sensors"
)

// DefaultReadTimeout bounds a single category read.
const DefaultReadTimeout = 2 * time.Second

// Phase is the collector's position within a tick.
type Phase int32

const (
	Idle Phase = iota
	Sampling
	Aggregating
	Published
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Sampling:
		return "sampling"
	case Aggregating:
		return "aggregating"
	case Published:
		return "published"
	default:
		return "unknown"
	}
}

// Category names used in reports and log records.
const (
	CategoryCPU         = "cpu"
	CategoryMemory      = "memory"
	CategoryDisk        = "disk"
	CategoryNetwork     = "network"
	CategoryTemperature = "temperature"
	CategoryBattery     = "battery"
)

// Config selects which named sources are tracked.
type Config struct {
	Disks        selector.Set
	Networks     selector.Set
	Temperatures selector.Set
	ReadTimeout  time.Duration
}

// TickReport summarizes one tick.
type TickReport struct {
	Published map[history.Key]float64
	Failed    []string // categories that could not be read
	Duration  time.Duration
}

// Collector is the only writer of the history store.
type Collector struct {
	cfg    Config
	source sensors.Source
	store  *history.Store
	log    logger.Logger

	mu       sync.Mutex // serializes ticks
	phase    atomic.Int32
	ticks    atomic.Int64
	prevDisk map[string]sensors.DiskCounter
	prevNet  map[string]sensors.NetCounter
	failing  map[string]bool
}

// New creates a collector publishing into store.
func New(cfg Config, source sensors.Source, store *history.Store, log logger.Logger) *Collector {
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Collector{
		cfg:      cfg,
		source:   source,
		store:    store,
		log:      log,
		prevDisk: make(map[string]sensors.DiskCounter),
		prevNet:  make(map[string]sensors.NetCounter),
		failing:  make(map[string]bool),
	}
}

// History returns the read-only view of the collected series.
func (c *Collector) History() history.Reader {
	return c.store
}

// Phase returns the current tick phase.
func (c *Collector) Phase() Phase {
	return Phase(c.phase.Load())
}

// Ticks returns the number of completed ticks.
func (c *Collector) Ticks() int64 {
	return c.ticks.Load()
}

func (c *Collector) setPhase(p Phase) {
	c.phase.Store(int32(p))
}

// raw holds one tick's readings before aggregation.
type raw struct {
	cpu     []float64
	mem     *float64
	disks   []sensors.DiskCounter
	nets    []sensors.NetCounter
	temps   []sensors.Temperature
	battery *float64
	failed  []string
}

// Tick samples every category, aggregates, and publishes. Concurrent calls
// run one after the other. A category that fails to read is logged and left
// out of this tick; the rest are still published.
func (c *Collector) Tick(ctx context.Context) TickReport {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer c.setPhase(Idle)

	start := time.Now()

	c.setPhase(Sampling)
	r := c.sample(ctx)

	c.setPhase(Aggregating)
	samples := c.aggregate(r)

	c.setPhase(Published)
	c.store.PushAll(samples)
	c.ticks.Add(1)

	report := TickReport{Published: samples, Failed: r.failed, Duration: time.Since(start)}
	c.log.Debug("tick %d: published %d series in %s", c.ticks.Load(), len(samples), report.Duration)
	return report
}

func (c *Collector) sample(ctx context.Context) raw {
	var r raw

	if per, err := read(ctx, c.cfg.ReadTimeout, c.source.CPUPercents); c.check(&r, CategoryCPU, err) {
		r.cpu = per
	}
	if pct, err := read(ctx, c.cfg.ReadTimeout, c.source.MemoryPercent); c.check(&r, CategoryMemory, err) {
		r.mem = &pct
	}
	if !c.cfg.Disks.Empty() {
		if ds, err := read(ctx, c.cfg.ReadTimeout, c.source.DiskCounters); c.check(&r, CategoryDisk, err) {
			r.disks = ds
		} else {
			// a missed reading re-primes so no delta spans more than one tick
			clear(c.prevDisk)
		}
	}
	if !c.cfg.Networks.Empty() {
		if ns, err := read(ctx, c.cfg.ReadTimeout, c.source.NetCounters); c.check(&r, CategoryNetwork, err) {
			r.nets = ns
		} else {
			clear(c.prevNet)
		}
	}
	if !c.cfg.Temperatures.Empty() {
		if ts, err := read(ctx, c.cfg.ReadTimeout, c.source.Temperatures); c.check(&r, CategoryTemperature, err) {
			r.temps = ts
		}
	}

	pct, err := read(ctx, c.cfg.ReadTimeout, c.source.BatteryPercent)
	switch {
	case err == nil:
		r.battery = &pct
	case errors.Is(err, sensors.ErrNoBattery):
		// absent hardware is not a failure
	default:
		c.check(&r, CategoryBattery, err)
	}

	return r
}

func read[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(ctx)
}

// check records a failed category and reports whether the read succeeded.
// The first failure of a category is a warning; repeats are debug records
// until the category recovers.
func (c *Collector) check(r *raw, category string, err error) bool {
	if err == nil {
		if c.failing[category] {
			c.log.Info("%s readings recovered", category)
			delete(c.failing, category)
		}
		return true
	}

	r.failed = append(r.failed, category)
	wrapped := lmerrors.WrapWithCode(err, lmerrors.ErrSensor,
		fmt.Sprintf("Failed to read %s", category), "")
	if c.failing[category] {
		c.log.Debug("%s", wrapped.Short())
	} else {
		c.log.Warn("%s", wrapped.Short())
		c.failing[category] = true
	}
	return false
}

func (c *Collector) aggregate(r raw) map[history.Key]float64 {
	out := make(map[history.Key]float64)

	if len(r.cpu) > 0 {
		for i, v := range r.cpu {
			out[history.K(history.CategoryCPU, fmt.Sprintf("core%d", i))] = v
		}
		out[history.K(history.CategoryCPU, history.CPUAverage)] = mean(r.cpu)
	}
	if r.mem != nil {
		out[history.K(history.CategoryMemory, "")] = *r.mem
	}
	if r.battery != nil {
		out[history.K(history.CategoryBattery, "")] = *r.battery
	}
	if r.disks != nil {
		c.aggregateDisks(r.disks, out)
	}
	if r.nets != nil {
		c.aggregateNets(r.nets, out)
	}
	if r.temps != nil {
		groups := make(map[string][]float64)
		for _, t := range r.temps {
			if g, ok := c.cfg.Temperatures.Match(selector.Candidate{Name: t.Label}); ok {
				groups[g] = append(groups[g], t.Celsius)
			}
		}
		for g, vs := range groups {
			out[history.K(history.CategoryTemp, g)] = mean(vs)
		}
	}

	return out
}

// aggregateDisks turns cumulative counters of the selected disks into
// per-tick byte deltas and averages them per group. A disk seen for the
// first time only primes its counters.
func (c *Collector) aggregateDisks(disks []sensors.DiskCounter, out map[history.Key]float64) {
	reads := make(map[string][]float64)
	writes := make(map[string][]float64)
	seen := make(map[string]bool)

	for _, d := range disks {
		g, ok := c.cfg.Disks.Match(selector.Candidate{Name: d.Name, MajorMinor: d.MajorMinor})
		if !ok {
			continue
		}
		seen[d.Name] = true
		prev, had := c.prevDisk[d.Name]
		c.prevDisk[d.Name] = d
		if !had {
			continue
		}
		reads[g] = append(reads[g], delta(prev.ReadBytes, d.ReadBytes))
		writes[g] = append(writes[g], delta(prev.WriteBytes, d.WriteBytes))
	}
	for name := range c.prevDisk {
		if !seen[name] {
			delete(c.prevDisk, name)
		}
	}

	for g, vs := range reads {
		out[history.K(history.CategoryDiskRead, g)] = mean(vs)
	}
	for g, vs := range writes {
		out[history.K(history.CategoryDiskWrite, g)] = mean(vs)
	}
}

func (c *Collector) aggregateNets(nets []sensors.NetCounter, out map[history.Key]float64) {
	rx := make(map[string][]float64)
	tx := make(map[string][]float64)
	seen := make(map[string]bool)

	for _, n := range nets {
		g, ok := c.cfg.Networks.Match(selector.Candidate{Name: n.Name, MacAddress: n.MacAddress})
		if !ok {
			continue
		}
		seen[n.Name] = true
		prev, had := c.prevNet[n.Name]
		c.prevNet[n.Name] = n
		if !had {
			continue
		}
		rx[g] = append(rx[g], delta(prev.RxBytes, n.RxBytes))
		tx[g] = append(tx[g], delta(prev.TxBytes, n.TxBytes))
	}
	for name := range c.prevNet {
		if !seen[name] {
			delete(c.prevNet, name)
		}
	}

	for g, vs := range rx {
		out[history.K(history.CategoryNetRx, g)] = mean(vs)
	}
	for g, vs := range tx {
		out[history.K(history.CategoryNetTx, g)] = mean(vs)
	}
}

// delta returns cur-prev, or 0 when the counter went backwards (device reset
// or wraparound).
func delta(prev, cur uint64) float64 {
	if cur < prev {
		return 0
	}
	return float64(cur - prev)
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}
