package collector

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/sensors"
	"go.uber.org/zap"
)

// DefaultCPUWindow is how long CurrentLoad measures CPU activity.
const DefaultCPUWindow = 250 * time.Millisecond

// cpuSensorHints identify the sensor that best represents CPU package temperature.
var cpuSensorHints = []string{"package", "tctl", "cpu", "core", "k10temp", "coretemp"}

// HostProvider reads the local machine through gopsutil.
type HostProvider struct {
	cpuWindow time.Duration
	log       *zap.Logger
}

// NewHostProvider creates a provider measuring CPU load over window.
// A non-positive window uses DefaultCPUWindow.
func NewHostProvider(window time.Duration, log *zap.Logger) *HostProvider {
	if window <= 0 {
		window = DefaultCPUWindow
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &HostProvider{cpuWindow: window, log: log}
}

// CurrentLoad returns aggregate CPU utilisation across all cores.
func (h *HostProvider) CurrentLoad(ctx context.Context) (Load, error) {
	pcts, err := cpu.PercentWithContext(ctx, h.cpuWindow, false)
	if err != nil {
		return Load{}, err
	}
	if len(pcts) == 0 {
		return Load{}, fmt.Errorf("no cpu samples returned")
	}
	return Load{Percent: pcts[0]}, nil
}

// Memory returns physical memory totals as reported by the OS.
func (h *HostProvider) Memory(ctx context.Context) (Memory, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Memory{}, err
	}
	return Memory{Total: vm.Total, Used: vm.Used, Free: vm.Free}, nil
}

// FileSystems lists physical partitions with their usage, in the order the
// OS reports them. Mounts whose usage cannot be read are skipped.
func (h *HostProvider) FileSystems(ctx context.Context) ([]FileSystem, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, err
	}

	out := make([]FileSystem, 0, len(parts))
	for _, p := range parts {
		u, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil {
			h.log.Debug("skipping mount", zap.String("mount", p.Mountpoint), zap.Error(err))
			continue
		}
		out = append(out, FileSystem{
			Mount:      p.Mountpoint,
			Size:       u.Total,
			Used:       u.Used,
			UsePercent: u.UsedPercent,
		})
	}
	return out, nil
}

// Temperature picks the CPU package sensor, falling back to the first sensor
// with a positive reading. Hosts without sensors yield an empty reading.
func (h *HostProvider) Temperature(ctx context.Context) (Temperature, error) {
	temps, err := sensors.TemperaturesWithContext(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Temperature{}, ctxErr
	}
	if len(temps) == 0 {
		if err != nil {
			h.log.Debug("no temperature sensors", zap.Error(err))
		}
		return Temperature{}, nil
	}

	return Temperature{Main: pickMain(temps)}, nil
}

// pickMain returns the first positive reading from a CPU-like sensor, in
// cpuSensorHints order, else the first positive reading of any sensor.
func pickMain(temps []sensors.TemperatureStat) *float64 {
	for _, hint := range cpuSensorHints {
		for _, t := range temps {
			if strings.Contains(strings.ToLower(t.SensorKey), hint) && t.Temperature > 0 {
				v := t.Temperature
				return &v
			}
		}
	}
	for _, t := range temps {
		if t.Temperature > 0 {
			v := t.Temperature
			return &v
		}
	}
	return nil
}

// HostInfo identifies the sampled machine.
type HostInfo struct {
	Hostname string `json:"hostname"`
	OS       string `json:"os"`
}

// Describe returns the hostname and a descriptive OS version string.
func (h *HostProvider) Describe(ctx context.Context) HostInfo {
	hi := HostInfo{OS: runtime.GOOS}
	if name, err := os.Hostname(); err == nil {
		hi.Hostname = name
	}
	info, err := host.InfoWithContext(ctx)
	if err == nil && info.Platform != "" {
		hi.OS = info.Platform
		if info.PlatformVersion != "" {
			hi.OS = fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion) // e.g. "debian 12.5"
		}
	}
	return hi
}
