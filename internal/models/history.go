package models

// HistoryLabelLayout is the local wall-clock layout used for chart labels.
const HistoryLabelLayout = "15:04:05"

// HistoryEntry is one charting point derived from a Snapshot.
type HistoryEntry struct {
	Time string  `json:"time"`
	CPU  float64 `json:"cpu"`
	RAM  float64 `json:"ram"`
}

// NewHistoryEntry derives a chart point from s, labelled in local time.
func NewHistoryEntry(s *Snapshot) HistoryEntry {
	return HistoryEntry{
		Time: s.At.Local().Format(HistoryLabelLayout),
		CPU:  s.CPU.UsagePercent,
		RAM:  s.RAM.UsagePercent,
	}
}
