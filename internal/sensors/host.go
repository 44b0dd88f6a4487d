package sensors

import (
	"context"
	"fmt"
	"sort"

	"github.com/distatus/battery"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"

	"github.com/rileyhilliard/ledmon/internal/logger"
)

// Host reads telemetry from the local machine through gopsutil and the
// battery library.
type Host struct {
	log logger.Logger

	// batteries is swappable for tests on machines without power supplies.
	batteries func() ([]*battery.Battery, error)
}

// NewHost creates a Source backed by the running host.
func NewHost(log logger.Logger) *Host {
	if log == nil {
		log = logger.Noop()
	}
	return &Host{log: log, batteries: battery.GetAll}
}

// CPUPercents returns per-core load since the previous call. The first call
// after process start reports load since boot.
func (h *Host) CPUPercents(ctx context.Context) ([]float64, error) {
	per, err := cpu.PercentWithContext(ctx, 0, true)
	if err != nil {
		return nil, fmt.Errorf("read per-cpu load: %w", err)
	}
	return per, nil
}

func (h *Host) MemoryPercent(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("read virtual memory: %w", err)
	}
	return vm.UsedPercent, nil
}

func (h *Host) DiskCounters(ctx context.Context) ([]DiskCounter, error) {
	io, err := disk.IOCountersWithContext(ctx)
	if err != nil && len(io) == 0 {
		return nil, fmt.Errorf("read disk counters: %w", err)
	}
	if err != nil {
		h.log.Debug("partial disk counters: %v", err)
	}

	out := make([]DiskCounter, 0, len(io))
	for name, st := range io {
		if st.Name != "" {
			name = st.Name
		}
		out = append(out, DiskCounter{
			Name:       name,
			MajorMinor: majorMinor(name),
			ReadBytes:  st.ReadBytes,
			WriteBytes: st.WriteBytes,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (h *Host) NetCounters(ctx context.Context) ([]NetCounter, error) {
	counters, err := net.IOCountersWithContext(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("read interface counters: %w", err)
	}

	macs := make(map[string]string)
	if ifs, err := net.InterfacesWithContext(ctx); err == nil {
		for _, i := range ifs {
			macs[i.Name] = i.HardwareAddr
		}
	} else {
		h.log.Debug("list interfaces: %v", err)
	}

	out := make([]NetCounter, 0, len(counters))
	for _, c := range counters {
		out = append(out, NetCounter{
			Name:       c.Name,
			MacAddress: macs[c.Name],
			RxBytes:    c.BytesRecv,
			TxBytes:    c.BytesSent,
		})
	}
	return out, nil
}

// Temperatures returns every sensor the host exposes. Partial results (some
// sensors failing to read) are returned without error.
func (h *Host) Temperatures(ctx context.Context) ([]Temperature, error) {
	temps, err := host.SensorsTemperaturesWithContext(ctx)
	if err != nil && len(temps) == 0 {
		return nil, fmt.Errorf("read temperature sensors: %w", err)
	}
	if err != nil {
		h.log.Debug("partial temperature readings: %v", err)
	}

	out := make([]Temperature, 0, len(temps))
	for _, t := range temps {
		out = append(out, Temperature{Label: t.SensorKey, Celsius: t.Temperature})
	}
	return out, nil
}

// BatteryPercent averages the state of charge over every battery that
// reported a usable capacity.
func (h *Host) BatteryPercent(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	bats, err := h.batteries()
	if err != nil && len(bats) == 0 {
		return 0, fmt.Errorf("read batteries: %w", err)
	}

	var sum float64
	var n int
	for _, b := range bats {
		if b == nil || b.Full <= 0 {
			continue
		}
		sum += clampPercent(b.Current / b.Full * 100)
		n++
	}
	if n == 0 {
		return 0, ErrNoBattery
	}
	return sum / float64(n), nil
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
