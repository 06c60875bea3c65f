package core

import "time"

// Clock is a monotonic millisecond counter.
// Values never decrease for the lifetime of the process.
type Clock interface {
	Millis() int64
}

// SystemClock reads the monotonic clock relative to its creation time.
type SystemClock struct {
	start time.Time
}

// NewSystemClock creates a clock that starts counting from zero now.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Millis returns milliseconds elapsed since the clock was created.
func (c *SystemClock) Millis() int64 {
	return time.Since(c.start).Milliseconds()
}

// ManualClock is a Clock advanced explicitly. Used by tests and replays.
type ManualClock struct {
	now int64
}

// NewManualClock creates a manual clock starting at the given value.
func NewManualClock(start int64) *ManualClock {
	return &ManualClock{now: start}
}

// Millis returns the current manual time.
func (c *ManualClock) Millis() int64 {
	return c.now
}

// Advance moves the clock forward. Negative values are ignored.
func (c *ManualClock) Advance(ms int64) {
	if ms > 0 {
		c.now += ms
	}
}

// Timer fires once every Interval milliseconds of its Clock.
//
// IsTick is a pure query: it keeps returning true until Finish is called.
// Finish restarts the interval from the current time, so ticks missed while
// the caller was busy are dropped rather than caught up.
type Timer struct {
	clock    Clock
	last     int64
	interval int64
}

// NewTimer creates a timer with the given interval in milliseconds.
// The timer is started immediately.
func NewTimer(clock Clock, intervalMs int64) *Timer {
	t := &Timer{clock: clock, interval: intervalMs}
	t.Start()
	return t
}

// Start records the current time as the reference point.
func (t *Timer) Start() {
	t.last = t.clock.Millis()
}

// Finish restarts the timer after the caller has handled a tick.
func (t *Timer) Finish() {
	t.Start()
}

// IsTick reports whether at least one interval elapsed since Start/Finish.
func (t *Timer) IsTick() bool {
	return t.Elapsed() >= t.interval
}

// Elapsed returns milliseconds since the reference point.
func (t *Timer) Elapsed() int64 {
	return t.clock.Millis() - t.last
}

// Interval returns the timer interval in milliseconds.
func (t *Timer) Interval() int64 {
	return t.interval
}
