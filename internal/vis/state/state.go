// Package state manages the application state behind the wheel view.
package state

import (
	"fmt"
	"time"

	"github.com/elektrokombinacija/lifewheel/internal/core"
)

// View mirrors the dispatcher's viewport for rendering.
type View struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// ContextMenu is an open sector menu anchored at a screen position.
type ContextMenu struct {
	SectorID string
	X, Y     float64
}

// State holds all application state.
type State struct {
	Data      *core.Snapshot
	RingCount int
	Date      *DateCursor
	Edit      *EditState

	Hover *core.HoverInfo
	Menu  *ContextMenu
	View  View

	// Revision increases whenever sectors change, so views can relayout.
	Revision int
	// Dirty is set by every edit and cleared once the data is saved.
	Dirty bool
}

// NewState creates state over data, positioned at today.
func NewState(data *core.Snapshot, ringCount int, now func() time.Time) *State {
	if data == nil {
		data = core.NewSnapshot(core.DefaultSectors(), core.ScoreBook{}, time.Now())
	}
	data.Normalize()
	if ringCount <= 0 {
		ringCount = core.DefaultRingCount
	}
	return &State{
		Data:      data,
		RingCount: ringCount,
		Date:      NewDateCursor("", now),
		Edit:      NewEditState(),
		View:      View{Scale: 1},
	}
}

// Sectors returns the ordered sector list.
func (s *State) Sectors() core.Sectors {
	return s.Data.Sectors
}

// Score returns a sector's score on the current date.
func (s *State) Score(sectorID string) int {
	return s.Data.ScoresByDate.Get(s.Date.Current, sectorID)
}

// CurrentScores returns all scores on the current date.
func (s *State) CurrentScores() map[string]int {
	return s.Data.ScoresByDate.Day(s.Date.Current)
}

// SetScore sets a sector's score on the current date.
func (s *State) SetScore(sectorID string, level int) error {
	if _, ok := s.Data.Sectors.Find(sectorID); !ok {
		return fmt.Errorf("%w: %s", core.ErrSectorNotFound, sectorID)
	}
	level = core.ClampScore(level, s.RingCount)
	old := s.Score(sectorID)
	if old == level {
		return nil
	}
	return s.execute(&SetScoreAction{
		Date:     s.Date.Current,
		SectorID: sectorID,
		Old:      old,
		New:      level,
	}, false)
}

// SetScoreText applies manual numeric entry. Text that does not parse is
// ignored and the previous score kept. It reports whether a score was set.
func (s *State) SetScoreText(sectorID, text string) bool {
	level, err := core.ParseScore(text, s.RingCount)
	if err != nil {
		return false
	}
	return s.SetScore(sectorID, level) == nil
}

// AddSector appends a new sector.
func (s *State) AddSector(name, color string) (core.Sector, error) {
	if color == "" {
		color = core.PaletteColor(len(s.Data.Sectors))
	}
	if _, err := core.ParseColor(color); err != nil {
		return core.Sector{}, err
	}
	sec := core.NewSector(name, color)
	err := s.execute(&AddSectorAction{Sector: sec, Index: len(s.Data.Sectors)}, true)
	return sec, err
}

// RenameSector changes a sector's name.
func (s *State) RenameSector(id, name string) error {
	sec, ok := s.Data.Sectors.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", core.ErrSectorNotFound, id)
	}
	return s.execute(&RenameSectorAction{SectorID: id, Old: sec.Name, New: name}, true)
}

// RecolorSector changes a sector's color.
func (s *State) RecolorSector(id, color string) error {
	sec, ok := s.Data.Sectors.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", core.ErrSectorNotFound, id)
	}
	if _, err := core.ParseColor(color); err != nil {
		return err
	}
	return s.execute(&RecolorSectorAction{SectorID: id, Old: sec.Color, New: color}, true)
}

// MoveSector shifts a sector by delta positions.
func (s *State) MoveSector(id string, delta int) error {
	from := s.Data.Sectors.Index(id)
	if from < 0 {
		return fmt.Errorf("%w: %s", core.ErrSectorNotFound, id)
	}
	to := from + delta
	if to < 0 {
		to = 0
	}
	if to > len(s.Data.Sectors)-1 {
		to = len(s.Data.Sectors) - 1
	}
	if to == from {
		return nil
	}
	return s.execute(&MoveSectorAction{SectorID: id, From: from, To: to}, true)
}

// DeleteSector removes a sector and its scores.
func (s *State) DeleteSector(id string) error {
	idx := s.Data.Sectors.Index(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", core.ErrSectorNotFound, id)
	}
	if s.Menu != nil && s.Menu.SectorID == id {
		s.Menu = nil
	}
	if s.Hover != nil && s.Hover.SectorID == id {
		s.Hover = nil
	}
	return s.execute(&DeleteSectorAction{Sector: s.Data.Sectors[idx], Index: idx}, true)
}

// Undo reverts the last edit and reports whether there was one.
func (s *State) Undo() bool {
	action := s.Edit.Undo()
	if action == nil {
		return false
	}
	if err := action.Undo(s.Data); err != nil {
		return false
	}
	s.touched(action)
	return true
}

// Redo reapplies the last undone edit and reports whether there was one.
func (s *State) Redo() bool {
	action := s.Edit.Redo()
	if action == nil {
		return false
	}
	if err := action.Do(s.Data); err != nil {
		return false
	}
	s.touched(action)
	return true
}

// SetHover records the hovered sector.
func (s *State) SetHover(h *core.HoverInfo) {
	s.Hover = h
}

// OpenMenu opens the context menu for a sector.
func (s *State) OpenMenu(sectorID string, x, y float64) {
	s.Menu = &ContextMenu{SectorID: sectorID, X: x, Y: y}
}

// CloseMenu dismisses the context menu.
func (s *State) CloseMenu() {
	s.Menu = nil
}

// Snapshot returns an export copy of the data.
func (s *State) Snapshot(now time.Time) *core.Snapshot {
	return core.NewSnapshot(s.Data.Sectors, s.Data.ScoresByDate, now)
}

// Replace swaps in imported data and clears history.
func (s *State) Replace(data *core.Snapshot) {
	data.Normalize()
	s.Data = data
	s.Edit = NewEditState()
	s.Hover = nil
	s.Menu = nil
	s.Revision++
	s.Dirty = true
}

func (s *State) execute(action EditAction, sectors bool) error {
	if err := s.Edit.Execute(action, s.Data); err != nil {
		return err
	}
	s.Dirty = true
	if sectors {
		s.Revision++
	}
	return nil
}

func (s *State) touched(action EditAction) {
	s.Dirty = true
	if _, ok := action.(*SetScoreAction); !ok {
		s.Revision++
	}
}
