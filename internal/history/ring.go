// Package history keeps a bounded, insertion-ordered window of recent samples.
package history

// DefaultCapacity is the number of entries the dashboard charts.
const DefaultCapacity = 20

// Ring is a fixed-capacity FIFO. Once full, each Append evicts the oldest
// entry. Storage is allocated once; Append never rescans existing entries.
//
// Ring is not safe for concurrent use; the owner serializes access.
type Ring[T any] struct {
	data  []T
	head  int // next write position
	count int
}

// NewRing creates an empty ring. A non-positive capacity falls back to
// DefaultCapacity.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring[T]{data: make([]T, capacity)}
}

// Append adds v as the newest entry.
func (r *Ring[T]) Append(v T) {
	r.data[r.head] = v
	r.head = (r.head + 1) % len(r.data)
	if r.count < len(r.data) {
		r.count++
	}
}

// Entries returns a copy of the stored entries, oldest first.
func (r *Ring[T]) Entries() []T {
	out := make([]T, r.count)
	start := (r.head - r.count + len(r.data)) % len(r.data)
	for i := 0; i < r.count; i++ {
		out[i] = r.data[(start+i)%len(r.data)]
	}
	return out
}

// Len returns the number of stored entries.
func (r *Ring[T]) Len() int { return r.count }

// Cap returns the ring capacity.
func (r *Ring[T]) Cap() int { return len(r.data) }
