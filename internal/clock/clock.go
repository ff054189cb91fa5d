// Package clock abstracts the current time so keep-alive timestamps and
// staleness checks can be tested without waiting for real time to pass.
package clock

import (
	"sync"
	"time"
)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the actual system time.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FakeClock implements Clock with a controllable time value.
type FakeClock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewFakeClock creates a fake clock initialized to the given time.
// If t is zero, the clock is initialized to the current time.
func NewFakeClock(t time.Time) *FakeClock {
	if t.IsZero() {
		t = time.Now()
	}
	return &FakeClock{current: t}
}

// Now returns the current time according to this fake clock.
func (c *FakeClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Advance moves the clock by the given duration. Negative durations move it back.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}

// Set sets the clock to a specific time.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// Offset wraps a clock and shifts every reading by a fixed duration.
// The seeder uses it to write keep-alive timestamps in the future or past.
type Offset struct {
	Base  Clock
	Shift time.Duration
}

// Now returns Base.Now() shifted by Shift.
func (o Offset) Now() time.Time {
	base := o.Base
	if base == nil {
		base = RealClock{}
	}
	return base.Now().Add(o.Shift)
}
