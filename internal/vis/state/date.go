package state

import (
	"time"

	"github.com/elektrokombinacija/lifewheel/internal/core"
)

// DateCursor selects which day's scores are shown and edited.
type DateCursor struct {
	Current string // ISO date
	now     func() time.Time
}

// NewDateCursor starts at date, or today when date is empty or invalid.
func NewDateCursor(date string, now func() time.Time) *DateCursor {
	if now == nil {
		now = time.Now
	}
	c := &DateCursor{now: now}
	if err := c.Set(date); err != nil {
		c.Today()
	}
	return c
}

// Today jumps to the current day.
func (c *DateCursor) Today() {
	c.Current = core.FormatDate(c.now())
}

// IsToday reports whether the cursor is on the current day.
func (c *DateCursor) IsToday() bool {
	return c.Current == core.FormatDate(c.now())
}

// Set moves to date. Future dates are clamped to today.
func (c *DateCursor) Set(date string) error {
	t, err := core.ParseDate(date)
	if err != nil {
		return err
	}
	if today := core.FormatDate(c.now()); core.FormatDate(t) > today {
		c.Current = today
		return nil
	}
	c.Current = core.FormatDate(t)
	return nil
}

// Shift moves by days, stopping at today.
func (c *DateCursor) Shift(days int) {
	t, err := core.ParseDate(c.Current)
	if err != nil {
		c.Today()
		return
	}
	_ = c.Set(core.FormatDate(t.AddDate(0, 0, days)))
}

// Prev steps one day back.
func (c *DateCursor) Prev() { c.Shift(-1) }

// Next steps one day forward, never past today.
func (c *DateCursor) Next() { c.Shift(1) }

// Time returns the cursor date at midnight UTC.
func (c *DateCursor) Time() time.Time {
	t, _ := core.ParseDate(c.Current)
	return t
}
