package core

import (
	"sync"
	"time"
)

// Clock is a monotonic time source. Now returns the time elapsed since an
// arbitrary fixed origin, so wall-clock adjustments never skew it.
type Clock interface {
	Now() time.Duration
}

// MonotonicClock reads the runtime's monotonic clock.
type MonotonicClock struct {
	origin time.Time
}

// NewMonotonicClock creates a clock whose origin is the moment of creation.
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{origin: time.Now()}
}

// Now returns the time since the clock was created.
// time.Since uses the monotonic reading carried by origin.
func (c *MonotonicClock) Now() time.Duration {
	return time.Since(c.origin)
}

// ManualClock is a controllable clock for tests and headless simulation.
type ManualClock struct {
	mu  sync.RWMutex
	now time.Duration
}

// NewManualClock creates a manual clock starting at the given offset.
func NewManualClock(start time.Duration) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Advance moves the clock forward by d. Negative values are ignored so the
// clock stays monotonic.
func (c *ManualClock) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += d
}
