package core

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ScoreBook maps an ISO date to per-sector scores.
// A missing (date, sector) pair reads as 0.
type ScoreBook map[string]map[string]int

// Get returns the score for a sector on date.
func (b ScoreBook) Get(date, sectorID string) int {
	return b[date][sectorID]
}

// Set stores a score. A zero score removes the entry.
func (b ScoreBook) Set(date, sectorID string, level int) {
	if level == 0 {
		day := b[date]
		delete(day, sectorID)
		if len(day) == 0 {
			delete(b, date)
		}
		return
	}
	day, ok := b[date]
	if !ok {
		day = make(map[string]int)
		b[date] = day
	}
	day[sectorID] = level
}

// Day returns a copy of the scores recorded on date.
func (b ScoreBook) Day(date string) map[string]int {
	out := make(map[string]int, len(b[date]))
	for id, v := range b[date] {
		out[id] = v
	}
	return out
}

// Dates returns all dates with at least one score, oldest first.
func (b ScoreBook) Dates() []string {
	dates := make([]string, 0, len(b))
	for d, day := range b {
		if len(day) > 0 {
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)
	return dates
}

// RemoveSector drops every score recorded for sectorID and returns what was removed.
func (b ScoreBook) RemoveSector(sectorID string) map[string]int {
	removed := make(map[string]int)
	for date, day := range b {
		if v, ok := day[sectorID]; ok {
			removed[date] = v
			delete(day, sectorID)
			if len(day) == 0 {
				delete(b, date)
			}
		}
	}
	return removed
}

// Clone returns a deep copy.
func (b ScoreBook) Clone() ScoreBook {
	out := make(ScoreBook, len(b))
	for date := range b {
		out[date] = b.Day(date)
	}
	return out
}

// ParseScore parses manual numeric entry. Out-of-range values are clamped
// to [0, ringCount]; non-numeric text is an error.
func ParseScore(text string, ringCount int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidScore, text)
	}
	return ClampScore(v, ringCount), nil
}
