// Package netview reconstructs a smooth, slightly-in-the-past view of the
// world from the timestamped snapshots a client receives.
package netview

import "coin-chase/server/internal/sim"

const DefaultBufferCapacity = 20

// Buffer is a bounded ordered run of received snapshots. Snapshots arrive in
// non-decreasing timestamp order because the server's delay queue preserves
// emission order; the buffer simply appends and evicts the oldest entry when
// full.
type Buffer struct {
	snapshots []sim.Snapshot
	capacity  int
}

// NewBuffer creates a buffer holding at most capacity snapshots.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultBufferCapacity
	}
	return &Buffer{
		snapshots: make([]sim.Snapshot, 0, capacity),
		capacity:  capacity,
	}
}

// Push appends a snapshot, evicting the oldest when the buffer is full.
func (b *Buffer) Push(snap sim.Snapshot) {
	if len(b.snapshots) >= b.capacity {
		copy(b.snapshots, b.snapshots[1:])
		b.snapshots = b.snapshots[:len(b.snapshots)-1]
	}
	b.snapshots = append(b.snapshots, snap)
}

// Len reports the number of buffered snapshots.
func (b *Buffer) Len() int {
	return len(b.snapshots)
}

// Latest returns the newest snapshot, if any.
func (b *Buffer) Latest() (sim.Snapshot, bool) {
	if len(b.snapshots) == 0 {
		return sim.Snapshot{}, false
	}
	return b.snapshots[len(b.snapshots)-1], true
}

// bracket finds the latest snapshot at or before target and the earliest one
// after it.
func (b *Buffer) bracket(target int64) (prev, next sim.Snapshot, ok bool) {
	prevIdx := -1
	nextIdx := -1
	for i, snap := range b.snapshots {
		if snap.Timestamp <= target {
			prevIdx = i
		} else {
			nextIdx = i
			break
		}
	}
	if prevIdx < 0 || nextIdx < 0 {
		return sim.Snapshot{}, sim.Snapshot{}, false
	}
	return b.snapshots[prevIdx], b.snapshots[nextIdx], true
}
