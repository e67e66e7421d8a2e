package state

import (
	"github.com/elektrokombinacija/lifewheel/internal/core"
)

// EditAction represents an undoable edit of sectors or scores.
type EditAction interface {
	Do(data *core.Snapshot) error
	Undo(data *core.Snapshot) error
	Description() string
}

// EditState holds the undo/redo history.
type EditState struct {
	undoStack []EditAction
	redoStack []EditAction
}

// NewEditState creates an empty history.
func NewEditState() *EditState {
	return &EditState{
		undoStack: make([]EditAction, 0),
		redoStack: make([]EditAction, 0),
	}
}

// Execute performs an action and adds it to the undo stack.
func (e *EditState) Execute(action EditAction, data *core.Snapshot) error {
	if err := action.Do(data); err != nil {
		return err
	}
	e.undoStack = append(e.undoStack, action)
	e.redoStack = nil // Clear redo stack on new action
	return nil
}

// Undo pops the last action. The caller applies action.Undo.
func (e *EditState) Undo() EditAction {
	if len(e.undoStack) == 0 {
		return nil
	}
	action := e.undoStack[len(e.undoStack)-1]
	e.undoStack = e.undoStack[:len(e.undoStack)-1]
	e.redoStack = append(e.redoStack, action)
	return action
}

// Redo pops the last undone action. The caller applies action.Do.
func (e *EditState) Redo() EditAction {
	if len(e.redoStack) == 0 {
		return nil
	}
	action := e.redoStack[len(e.redoStack)-1]
	e.redoStack = e.redoStack[:len(e.redoStack)-1]
	e.undoStack = append(e.undoStack, action)
	return action
}

// CanUndo returns true if there are actions to undo.
func (e *EditState) CanUndo() bool {
	return len(e.undoStack) > 0
}

// CanRedo returns true if there are actions to redo.
func (e *EditState) CanRedo() bool {
	return len(e.redoStack) > 0
}

// SetScoreAction sets one sector's score on one date.
type SetScoreAction struct {
	Date     string
	SectorID string
	Old      int
	New      int
}

func (a *SetScoreAction) Do(data *core.Snapshot) error {
	data.ScoresByDate.Set(a.Date, a.SectorID, a.New)
	return nil
}

func (a *SetScoreAction) Undo(data *core.Snapshot) error {
	data.ScoresByDate.Set(a.Date, a.SectorID, a.Old)
	return nil
}

func (a *SetScoreAction) Description() string {
	return "Set score"
}

// AddSectorAction inserts a sector at Index.
type AddSectorAction struct {
	Sector core.Sector
	Index  int
}

func (a *AddSectorAction) Do(data *core.Snapshot) error {
	return data.Sectors.Insert(a.Index, a.Sector)
}

func (a *AddSectorAction) Undo(data *core.Snapshot) error {
	_, _, err := data.Sectors.Delete(a.Sector.ID)
	return err
}

func (a *AddSectorAction) Description() string {
	return "Add sector"
}

// RenameSectorAction changes a sector's name.
type RenameSectorAction struct {
	SectorID string
	Old      string
	New      string
}

func (a *RenameSectorAction) Do(data *core.Snapshot) error {
	return data.Sectors.Rename(a.SectorID, a.New)
}

func (a *RenameSectorAction) Undo(data *core.Snapshot) error {
	return data.Sectors.Rename(a.SectorID, a.Old)
}

func (a *RenameSectorAction) Description() string {
	return "Rename sector"
}

// RecolorSectorAction changes a sector's color.
type RecolorSectorAction struct {
	SectorID string
	Old      string
	New      string
}

func (a *RecolorSectorAction) Do(data *core.Snapshot) error {
	return data.Sectors.Recolor(a.SectorID, a.New)
}

func (a *RecolorSectorAction) Undo(data *core.Snapshot) error {
	return data.Sectors.Recolor(a.SectorID, a.Old)
}

func (a *RecolorSectorAction) Description() string {
	return "Recolor sector"
}

// MoveSectorAction moves a sector between positions.
type MoveSectorAction struct {
	SectorID string
	From     int
	To       int
}

func (a *MoveSectorAction) Do(data *core.Snapshot) error {
	_, err := data.Sectors.MoveTo(a.SectorID, a.To)
	return err
}

func (a *MoveSectorAction) Undo(data *core.Snapshot) error {
	_, err := data.Sectors.MoveTo(a.SectorID, a.From)
	return err
}

func (a *MoveSectorAction) Description() string {
	return "Move sector"
}

// DeleteSectorAction removes a sector together with its score history.
type DeleteSectorAction struct {
	Sector core.Sector
	Index  int
	Scores map[string]int // date -> score, filled by Do
}

func (a *DeleteSectorAction) Do(data *core.Snapshot) error {
	if _, _, err := data.Sectors.Delete(a.Sector.ID); err != nil {
		return err
	}
	a.Scores = data.ScoresByDate.RemoveSector(a.Sector.ID)
	return nil
}

func (a *DeleteSectorAction) Undo(data *core.Snapshot) error {
	if err := data.Sectors.Insert(a.Index, a.Sector); err != nil {
		return err
	}
	for date, v := range a.Scores {
		data.ScoresByDate.Set(date, a.Sector.ID, v)
	}
	return nil
}

func (a *DeleteSectorAction) Description() string {
	return "Delete sector"
}
