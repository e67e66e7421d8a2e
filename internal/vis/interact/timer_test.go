package interact

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestLongPressTimerFires(t *testing.T) {
	clock := newFakeClock()
	timer := NewLongPressTimer(600*time.Millisecond, clock.Now)

	h := timer.Start()
	if !timer.Active(h) {
		t.Fatalf("fresh handle should be active")
	}
	clock.Advance(599 * time.Millisecond)
	if _, ok := timer.Expired(); ok {
		t.Fatalf("timer fired early")
	}
	clock.Advance(time.Millisecond)
	got, ok := timer.Expired()
	if !ok || got != h {
		t.Fatalf("timer did not fire with handle %d: %d, %v", h, got, ok)
	}
	if _, ok := timer.Expired(); ok {
		t.Errorf("timer fired twice")
	}
}

func TestLongPressTimerCancel(t *testing.T) {
	clock := newFakeClock()
	timer := NewLongPressTimer(600*time.Millisecond, clock.Now)

	h := timer.Start()
	timer.Cancel()
	if timer.Active(h) {
		t.Errorf("cancelled handle still active")
	}
	clock.Advance(time.Second)
	if _, ok := timer.Expired(); ok {
		t.Errorf("cancelled timer fired")
	}
	if _, armed := timer.Deadline(); armed {
		t.Errorf("cancelled timer still armed")
	}
}

func TestLongPressTimerRestartInvalidatesOldHandle(t *testing.T) {
	clock := newFakeClock()
	timer := NewLongPressTimer(600*time.Millisecond, clock.Now)

	old := timer.Start()
	clock.Advance(300 * time.Millisecond)
	cur := timer.Start()
	if timer.Active(old) || !timer.Active(cur) {
		t.Fatalf("restart should invalidate the old handle")
	}
	clock.Advance(400 * time.Millisecond)
	if _, ok := timer.Expired(); ok {
		t.Errorf("restart should push the deadline out")
	}
	clock.Advance(200 * time.Millisecond)
	if h, ok := timer.Expired(); !ok || h != cur {
		t.Errorf("expected current handle to fire, got %d %v", h, ok)
	}
}
