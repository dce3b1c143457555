// Package collector samples host metrics and normalizes them into models.Snapshot.
// Raw readings come from a Provider; HostProvider backs it with gopsutil.
package collector

import "context"

// Load is the current CPU load, percent 0-100.
type Load struct {
	Percent float64
}

// Memory is the provider's view of physical memory, in bytes.
type Memory struct {
	Total uint64
	Used  uint64
	Free  uint64
}

// FileSystem is one mounted filesystem.
type FileSystem struct {
	Mount      string
	Size       uint64
	Used       uint64
	UsePercent float64 // as reported; basis may exclude reserved blocks
}

// Temperature carries the primary sensor reading, nil if there is none.
type Temperature struct {
	Main *float64
}

// Provider reads current system state. Each call is independent so the
// Sampler can issue them concurrently.
type Provider interface {
	CurrentLoad(ctx context.Context) (Load, error)
	Memory(ctx context.Context) (Memory, error)
	FileSystems(ctx context.Context) ([]FileSystem, error)
	Temperature(ctx context.Context) (Temperature, error)
}

// Readings groups one result from each Provider call.
type Readings struct {
	Load        Load
	Memory      Memory
	FileSystems []FileSystem
	Temperature Temperature
}
