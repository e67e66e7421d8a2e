package core

import (
	"fmt"
	"time"
)

// Snapshot is the export document: the full sector list and score history.
type Snapshot struct {
	Version      int       `json:"version"`
	ExportDate   string    `json:"exportDate"`
	Sectors      Sectors   `json:"sectors"`
	ScoresByDate ScoreBook `json:"scoresByDate"`
}

// NewSnapshot captures sectors and scores at time now.
func NewSnapshot(sectors Sectors, book ScoreBook, now time.Time) *Snapshot {
	return &Snapshot{
		Version:      SnapshotVersion,
		ExportDate:   now.UTC().Format(time.RFC3339),
		Sectors:      sectors.Clone(),
		ScoresByDate: book.Clone(),
	}
}

// Validate checks snapshot consistency against ringCount.
func (s *Snapshot) Validate(ringCount int) error {
	if s.Version < 1 || s.Version > SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	seen := make(map[string]bool, len(s.Sectors))
	for _, sec := range s.Sectors {
		if sec.ID == "" {
			return fmt.Errorf("%w: empty id", ErrSectorNotFound)
		}
		if seen[sec.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateID, sec.ID)
		}
		seen[sec.ID] = true
	}
	for date, day := range s.ScoresByDate {
		if _, err := ParseDate(date); err != nil {
			return fmt.Errorf("%w: %q", err, date)
		}
		for id, v := range day {
			if v < 0 || v > ringCount {
				return fmt.Errorf("%w: %s on %s = %d", ErrInvalidScore, id, date, v)
			}
		}
	}
	return nil
}

// Normalize fills nil collections so a decoded snapshot is ready to use.
func (s *Snapshot) Normalize() {
	if s.Sectors == nil {
		s.Sectors = Sectors{}
	}
	if s.ScoresByDate == nil {
		s.ScoresByDate = ScoreBook{}
	}
}
