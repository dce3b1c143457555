// Package models defines the wire types shared by the sysdash server and poller.
package models

import (
	"encoding/json"
	"time"
)

// TimeLayout is ISO-8601 with exactly three fractional digits.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Snapshot is a point-in-time set of host readings as served by GET /api/metrics.
// It is produced once per sample and never mutated afterwards.
type Snapshot struct {
	CPU         CPU         `json:"cpu"`
	RAM         RAM         `json:"ram"`
	Disk        *Disk       `json:"disk"` // nil when the host reports no filesystems
	Temperature Temperature `json:"temperature"`
	At          time.Time   `json:"at"`
}

// CPU holds the current load, percent 0-100 rounded to one decimal.
type CPU struct {
	UsagePercent float64 `json:"usagePercent"`
}

// RAM mirrors what the provider reports. UsedBytes+FreeBytes is not
// guaranteed to equal TotalBytes.
type RAM struct {
	TotalBytes   uint64  `json:"totalBytes"`
	UsedBytes    uint64  `json:"usedBytes"`
	FreeBytes    uint64  `json:"freeBytes"`
	UsagePercent float64 `json:"usagePercent"` // used/total*100
}

// Disk describes the selected filesystem.
// FreeBytes is computed from TotalBytes-UsedBytes; UsagePercent is the
// provider's own figure and may disagree with UsedBytes/TotalBytes
// (reserved blocks).
type Disk struct {
	Mount        string  `json:"mount"`
	TotalBytes   uint64  `json:"totalBytes"`
	UsedBytes    uint64  `json:"usedBytes"`
	FreeBytes    uint64  `json:"freeBytes"`
	UsagePercent float64 `json:"usagePercent"`
}

// MarshalJSON writes At with a fixed millisecond precision.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	type plain Snapshot
	return json.Marshal(struct {
		plain
		At string `json:"at"`
	}{plain: plain(s), At: s.At.Format(TimeLayout)})
}

// Temperature is the primary sensor reading, nil when unavailable.
type Temperature struct {
	Celsius *float64 `json:"celsius"`
}

// Clone returns a deep copy of s. A nil receiver returns nil.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := *s
	if s.Disk != nil {
		d := *s.Disk
		out.Disk = &d
	}
	if s.Temperature.Celsius != nil {
		c := *s.Temperature.Celsius
		out.Temperature.Celsius = &c
	}
	return &out
}
