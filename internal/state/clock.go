package state

import (
	"sync"
	"time"
)

// Clock supplies monotonic timestamps as offsets from its own epoch.
type Clock interface {
	Now() time.Duration
}

// SystemClock reads the monotonic wall clock.
type SystemClock struct {
	epoch time.Time
}

// NewSystemClock returns a clock whose epoch is the moment of the call.
func NewSystemClock() *SystemClock {
	return &SystemClock{epoch: time.Now()}
}

// Now returns the time elapsed since the epoch.
func (c *SystemClock) Now() time.Duration { return time.Since(c.epoch) }

// ManualClock only moves when told to.
type ManualClock struct {
	mu  sync.Mutex
	now time.Duration
}

// NewManualClock returns a clock reading start.
func NewManualClock(start time.Duration) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current reading.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d and returns the new reading.
func (c *ManualClock) Advance(d time.Duration) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d > 0 {
		c.now += d
	}
	return c.now
}

// Set moves the clock to t if t is not in the past.
func (c *ManualClock) Set(t time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t > c.now {
		c.now = t
	}
}
