package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotClone(t *testing.T) {
	var nilSnap *Snapshot
	assert.Nil(t, nilSnap.Clone())

	c := 41.0
	s := &Snapshot{
		CPU:         CPU{UsagePercent: 3},
		Disk:        &Disk{Mount: "/", TotalBytes: 10},
		Temperature: Temperature{Celsius: &c},
	}

	cp := s.Clone()
	require.Equal(t, s, cp)

	cp.Disk.Mount = "/mnt"
	*cp.Temperature.Celsius = 99
	cp.CPU.UsagePercent = 50

	assert.Equal(t, "/", s.Disk.Mount)
	assert.Equal(t, 41.0, *s.Temperature.Celsius)
	assert.Equal(t, 3.0, s.CPU.UsagePercent)
}

func TestSnapshotMarshalAt(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"whole second", time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC), "2026-10-17T12:00:00.000Z"},
		{"trailing zero kept", time.Date(2026, 10, 17, 12, 0, 0, 120_000_000, time.UTC), "2026-10-17T12:00:00.120Z"},
		{"millis", time.Date(2026, 10, 17, 12, 0, 0, 123_000_000, time.UTC), "2026-10-17T12:00:00.123Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(&Snapshot{At: tt.at})
			require.NoError(t, err)

			var body map[string]any
			require.NoError(t, json.Unmarshal(raw, &body))
			assert.Equal(t, tt.want, body["at"])
			assert.Contains(t, body, "cpu")
			assert.Contains(t, body, "disk")
			assert.Nil(t, body["disk"])

			var back Snapshot
			require.NoError(t, json.Unmarshal(raw, &back))
			assert.True(t, back.At.Equal(tt.at))
		})
	}
}
