package collector

import (
	"math"
	"time"

	"github.com/vesaa/sysdash/internal/models"
)

// RootMount is the mount point preferred when selecting the reported disk.
const RootMount = "/"

// Normalize converts raw readings into a Snapshot stamped with at.
// Percentages are rounded half-up to one decimal; byte counts pass through.
func Normalize(r Readings, at time.Time) models.Snapshot {
	snap := models.Snapshot{
		CPU: models.CPU{UsagePercent: round1(r.Load.Percent)},
		RAM: models.RAM{
			TotalBytes:   r.Memory.Total,
			UsedBytes:    r.Memory.Used,
			FreeBytes:    r.Memory.Free,
			UsagePercent: percentOf(r.Memory.Used, r.Memory.Total),
		},
		At: at.UTC().Truncate(time.Millisecond),
	}

	if fs := selectDisk(r.FileSystems); fs != nil {
		snap.Disk = &models.Disk{
			Mount:        fs.Mount,
			TotalBytes:   fs.Size,
			UsedBytes:    fs.Used,
			FreeBytes:    subFloor(fs.Size, fs.Used),
			UsagePercent: round1(fs.UsePercent),
		}
	}

	if r.Temperature.Main != nil {
		c := *r.Temperature.Main
		snap.Temperature.Celsius = &c
	}
	return snap
}

// selectDisk returns the root filesystem, else the first one, else nil.
func selectDisk(list []FileSystem) *FileSystem {
	for i := range list {
		if list[i].Mount == RootMount {
			return &list[i]
		}
	}
	if len(list) > 0 {
		return &list[0]
	}
	return nil
}

// percentOf returns used/total*100 rounded to one decimal, 0 for an empty total.
func percentOf(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(used) / float64(total) * 100)
}

// round1 rounds half-up to one decimal place.
func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

func subFloor(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
