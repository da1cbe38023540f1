package state

import "sync/atomic"

// revisionClock hands out increasing revision numbers for scene changes so
// that observers outside the UI goroutine can discard stale snapshots.
type revisionClock struct {
	n atomic.Uint64
}

func (c *revisionClock) next() uint64 {
	return c.n.Add(1)
}

func (c *revisionClock) current() uint64 {
	return c.n.Load()
}
