// Package sensors reads raw host telemetry. It reports cumulative counters and
// instantaneous readings as the OS exposes them; selection, deltas and
// averaging happen in the collector.
package sensors

import (
	"context"
	"errors"
)

// ErrNoBattery is returned by BatteryPercent on hosts without a battery.
var ErrNoBattery = errors.New("no battery present")

// DiskCounter holds cumulative I/O byte counters for one block device.
type DiskCounter struct {
	Name       string
	MajorMinor string // "MAJOR:MINOR", empty when unknown
	ReadBytes  uint64
	WriteBytes uint64
}

// NetCounter holds cumulative byte counters for one network interface.
type NetCounter struct {
	Name       string
	MacAddress string // empty when unknown
	RxBytes    uint64
	TxBytes    uint64
}

// Temperature is one sensor reading in degrees Celsius.
type Temperature struct {
	Label   string
	Celsius float64
}

// Source is the host telemetry surface the collector samples. Every method
// reads one category, so a failure in one leaves the others usable.
type Source interface {
	// CPUPercents returns per-core utilisation in [0,100] since the previous call.
	CPUPercents(ctx context.Context) ([]float64, error)
	// MemoryPercent returns used memory in [0,100].
	MemoryPercent(ctx context.Context) (float64, error)
	DiskCounters(ctx context.Context) ([]DiskCounter, error)
	NetCounters(ctx context.Context) ([]NetCounter, error)
	Temperatures(ctx context.Context) ([]Temperature, error)
	// BatteryPercent returns the mean state of charge in [0,100], or ErrNoBattery.
	BatteryPercent(ctx context.Context) (float64, error)
}
