package interact

import "time"

// TimerHandle identifies one arming of a LongPressTimer.
type TimerHandle uint64

// LongPressTimer is a single cancellable delayed action. It never fires on
// its own: the owner polls Expired from its event loop, so firing happens
// on the same goroutine as every other input event.
type LongPressTimer struct {
	delay    time.Duration
	now      func() time.Time
	deadline time.Time
	armed    bool
	gen      uint64
}

// NewLongPressTimer creates a timer using now as its clock.
func NewLongPressTimer(delay time.Duration, now func() time.Time) *LongPressTimer {
	if now == nil {
		now = time.Now
	}
	return &LongPressTimer{delay: delay, now: now}
}

// Start arms the timer, invalidating any earlier handle.
func (t *LongPressTimer) Start() TimerHandle {
	t.gen++
	t.armed = true
	t.deadline = t.now().Add(t.delay)
	return TimerHandle(t.gen)
}

// Cancel disarms the timer. Outstanding handles become stale.
func (t *LongPressTimer) Cancel() {
	if t.armed {
		t.armed = false
		t.gen++
	}
}

// Active reports whether h is the current, still-armed handle.
func (t *LongPressTimer) Active(h TimerHandle) bool {
	return t.armed && uint64(h) == t.gen
}

// Deadline returns when the armed timer expires.
func (t *LongPressTimer) Deadline() (time.Time, bool) {
	return t.deadline, t.armed
}

// Expired disarms and returns the handle if the deadline has passed.
func (t *LongPressTimer) Expired() (TimerHandle, bool) {
	if !t.armed || t.now().Before(t.deadline) {
		return 0, false
	}
	t.armed = false
	return TimerHandle(t.gen), true
}
