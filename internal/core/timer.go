package core

import "time"

// Clock reports the current instant. Everything time-driven reads the clock
// through this interface so tests can substitute a synthetic one.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// ManualClock only moves when told to.
type ManualClock struct {
	now time.Time
}

// NewManualClock constructs a ManualClock positioned at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current synthetic instant.
func (c *ManualClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d and returns the new instant.
func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

// Set jumps the clock to t.
func (c *ManualClock) Set(t time.Time) { c.now = t }

// DefaultMaxFrameDelta caps the delta handed out by FrameTimer.
const DefaultMaxFrameDelta = 100 * time.Millisecond

// FrameTimer measures the time between successive frames.
type FrameTimer struct {
	clock    Clock
	last     time.Time
	maxDelta time.Duration
}

// NewFrameTimer constructs a FrameTimer reading from clock. A nil clock falls
// back to the system clock.
func NewFrameTimer(clock Clock) *FrameTimer {
	if clock == nil {
		clock = SystemClock()
	}
	return &FrameTimer{clock: clock, maxDelta: DefaultMaxFrameDelta}
}

// SetMaxDelta changes the clamp applied to deltas. Zero or negative disables it.
func (f *FrameTimer) SetMaxDelta(d time.Duration) { f.maxDelta = d }

// Delta returns the time elapsed since the previous call. The first call
// returns zero. Long stalls (window dragged, debugger) are clamped so that
// animations do not jump.
func (f *FrameTimer) Delta() time.Duration {
	now := f.clock.Now()
	if f.last.IsZero() {
		f.last = now
		return 0
	}
	delta := now.Sub(f.last)
	f.last = now
	if delta < 0 {
		return 0
	}
	if f.maxDelta > 0 && delta > f.maxDelta {
		return f.maxDelta
	}
	return delta
}

// Now exposes the timer's clock reading.
func (f *FrameTimer) Now() time.Time { return f.clock.Now() }
