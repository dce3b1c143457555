package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRing(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		expected int
	}{
		{"default capacity", 0, DefaultCapacity},
		{"negative capacity", -3, DefaultCapacity},
		{"custom capacity", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRing[int](tt.capacity)
			assert.Equal(t, tt.expected, r.Cap())
			assert.Equal(t, 0, r.Len())
			assert.Empty(t, r.Entries())
		})
	}
}

func TestRingAppendBelowCapacity(t *testing.T) {
	r := NewRing[int](5)
	for i := 1; i <= 3; i++ {
		r.Append(i)
	}

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []int{1, 2, 3}, r.Entries())
}

func TestRingKeepsMostRecent(t *testing.T) {
	r := NewRing[int](DefaultCapacity)
	for i := 0; i < 45; i++ {
		r.Append(i)
	}

	got := r.Entries()
	require.Len(t, got, DefaultCapacity)
	for i, v := range got {
		assert.Equal(t, 25+i, v, "entry %d out of order", i)
	}
}

func TestRingExactlyFull(t *testing.T) {
	r := NewRing[string](3)
	r.Append("a")
	r.Append("b")
	r.Append("c")
	assert.Equal(t, []string{"a", "b", "c"}, r.Entries())

	r.Append("d")
	assert.Equal(t, []string{"b", "c", "d"}, r.Entries())
	assert.Equal(t, 3, r.Len())
}

func TestRingNoDeduplication(t *testing.T) {
	r := NewRing[int](4)
	r.Append(7)
	r.Append(7)
	r.Append(7)
	assert.Equal(t, []int{7, 7, 7}, r.Entries())
}

func TestRingEntriesIsCopy(t *testing.T) {
	r := NewRing[int](3)
	r.Append(1)
	r.Append(2)

	got := r.Entries()
	got[0] = 99

	assert.Equal(t, []int{1, 2}, r.Entries())
}

func TestRingCapacityOne(t *testing.T) {
	r := NewRing[int](1)
	r.Append(1)
	r.Append(2)
	assert.Equal(t, []int{2}, r.Entries())
}
