package engine

import "sync"

// Cache holds the last-known volume and mute state for one knob instance.
// It is the value the UI renders immediately; it never blocks on the network.
//
// Two writers feed it: user input applies optimistic values before any
// network call, and successful device reads apply authoritative ones. Which
// writer wins at any moment is decided by the engine, not here; the cache
// itself performs no I/O and cannot fail.
type Cache struct {
	mu     sync.RWMutex
	volume int
	muted  bool
}

// ApplyOptimistic records locally-initiated values ahead of the network
// write. A nil field leaves the current value unchanged.
func (c *Cache) ApplyOptimistic(volume *int, muted *bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if volume != nil {
		c.volume = *volume
	}
	if muted != nil {
		c.muted = *muted
	}
}

// ApplyAuthoritative records values reported by the device itself.
func (c *Cache) ApplyAuthoritative(volume int, muted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.volume = volume
	c.muted = muted
}

// Read returns the current best-effort snapshot.
func (c *Cache) Read() (volume int, muted bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.volume, c.muted
}
