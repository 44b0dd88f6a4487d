// Package testing provides test doubles for the sensors package.
package testing

import (
	"context"
	"sync"

	"github.com/rileyhilliard/ledmon/internal/sensors"
)

// FakeSource is a scriptable sensors.Source. Set a category's value (or its
// error) and every following read returns it. Disk and network counters may
// be queued per call with QueueDisks / QueueNets to simulate counters
// advancing between ticks.
type FakeSource struct {
	mu sync.Mutex

	CPU     []float64
	Memory  float64
	Disks   []sensors.DiskCounter
	Nets    []sensors.NetCounter
	Temps   []sensors.Temperature
	Battery *float64

	CPUErr     error
	MemoryErr  error
	DiskErr    error
	NetErr     error
	TempErr    error
	BatteryErr error

	diskQueue [][]sensors.DiskCounter
	netQueue  [][]sensors.NetCounter

	// Calls counts reads per category name ("cpu", "mem", "disk", "net", "temp", "battery").
	Calls map[string]int
}

// NewFakeSource creates a source with no battery and empty readings.
func NewFakeSource() *FakeSource {
	return &FakeSource{Calls: make(map[string]int)}
}

// SetBattery sets the battery charge returned by BatteryPercent.
func (f *FakeSource) SetBattery(pct float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Battery = &pct
}

// SetCPU replaces the per-core readings.
func (f *FakeSource) SetCPU(per ...float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CPU = per
}

// QueueDisks appends one tick's worth of disk counters. Queued ticks are
// consumed in order; when the queue is empty Disks is returned.
func (f *FakeSource) QueueDisks(ticks ...[]sensors.DiskCounter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.diskQueue = append(f.diskQueue, ticks...)
}

// QueueNets appends one tick's worth of interface counters.
func (f *FakeSource) QueueNets(ticks ...[]sensors.NetCounter) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.netQueue = append(f.netQueue, ticks...)
}

func (f *FakeSource) count(name string) {
	if f.Calls == nil {
		f.Calls = make(map[string]int)
	}
	f.Calls[name]++
}

func (f *FakeSource) CPUPercents(ctx context.Context) ([]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("cpu")
	if f.CPUErr != nil {
		return nil, f.CPUErr
	}
	return append([]float64(nil), f.CPU...), nil
}

func (f *FakeSource) MemoryPercent(ctx context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("mem")
	return f.Memory, f.MemoryErr
}

func (f *FakeSource) DiskCounters(ctx context.Context) ([]sensors.DiskCounter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("disk")
	if f.DiskErr != nil {
		return nil, f.DiskErr
	}
	if len(f.diskQueue) > 0 {
		next := f.diskQueue[0]
		f.diskQueue = f.diskQueue[1:]
		f.Disks = next
	}
	return append([]sensors.DiskCounter(nil), f.Disks...), nil
}

func (f *FakeSource) NetCounters(ctx context.Context) ([]sensors.NetCounter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("net")
	if f.NetErr != nil {
		return nil, f.NetErr
	}
	if len(f.netQueue) > 0 {
		next := f.netQueue[0]
		f.netQueue = f.netQueue[1:]
		f.Nets = next
	}
	return append([]sensors.NetCounter(nil), f.Nets...), nil
}

func (f *FakeSource) Temperatures(ctx context.Context) ([]sensors.Temperature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("temp")
	if f.TempErr != nil {
		return nil, f.TempErr
	}
	return append([]sensors.Temperature(nil), f.Temps...), nil
}

func (f *FakeSource) BatteryPercent(ctx context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count("battery")
	if f.BatteryErr != nil {
		return 0, f.BatteryErr
	}
	if f.Battery == nil {
		return 0, sensors.ErrNoBattery
	}
	return *f.Battery, nil
}

// CallCount returns how many times the named category was read.
func (f *FakeSource) CallCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls[name]
}

var _ sensors.Source = (*FakeSource)(nil)
