// Package core defines domain models for lifewheel.
package core

import (
	"errors"
	"time"
)

const (
	DefaultRingCount = 10           // Score levels per sector
	DateLayout       = "2006-01-02" // ISO date used as ScoreBook key
	SnapshotVersion  = 1            // Export document version
)

var (
	ErrSectorNotFound = errors.New("sector not found")
	ErrDuplicateID    = errors.New("duplicate sector id")
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidScore   = errors.New("invalid score")
	ErrInvalidColor   = errors.New("invalid color")
)

// HoverInfo identifies the sector and ring level under the pointer.
type HoverInfo struct {
	SectorID string
	Level    int
}

// ClampScore bounds level to [0, ringCount].
func ClampScore(level, ringCount int) int {
	if level < 0 {
		return 0
	}
	if level > ringCount {
		return ringCount
	}
	return level
}

// FormatDate returns the ScoreBook key for t.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate validates an ISO date key.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Today returns today's date key in local time.
func Today() string {
	return FormatDate(time.Now())
}
