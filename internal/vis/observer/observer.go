// Package observer carries interaction events from the dispatcher to
// whoever owns application state.
package observer

import (
	"log"

	"github.com/elektrokombinacija/lifewheel/internal/core"
	"github.com/elektrokombinacija/lifewheel/internal/vis/state"
)

// Observer receives interaction events. Calls are fire-and-forget and are
// made synchronously from the input handler that caused them.
type Observer interface {
	// OnHoverChange is called when the hovered sector/level changes. nil
	// means nothing is hovered.
	OnHoverChange(info *core.HoverInfo)

	// OnScoreChange is called when a click sets a sector's score.
	OnScoreChange(sectorID string, level int)

	// OnContextMenuRequest is called on right-click or long-press over a sector.
	OnContextMenuRequest(sectorID string, x, y float64)

	// OnViewportChange is called after any zoom, pan or reset.
	OnViewportChange(scale, translateX, translateY float64)
}

// Nop ignores every event.
type Nop struct{}

func (Nop) OnHoverChange(*core.HoverInfo) {}
func (Nop) OnScoreChange(string, int) {}
func (Nop) OnContextMenuRequest(string, float64, float64) {}
func (Nop) OnViewportChange(float64, float64, float64) {}

// Funcs adapts plain functions to Observer. Nil fields are skipped.
type Funcs struct {
	Hover       func(info *core.HoverInfo)
	Score       func(sectorID string, level int)
	ContextMenu func(sectorID string, x, y float64)
	Viewport    func(scale, translateX, translateY float64)
}

func (f Funcs) OnHoverChange(info *core.HoverInfo) {
	if f.Hover != nil {
		f.Hover(info)
	}
}

func (f Funcs) OnScoreChange(sectorID string, level int) {
	if f.Score != nil {
		f.Score(sectorID, level)
	}
}

func (f Funcs) OnContextMenuRequest(sectorID string, x, y float64) {
	if f.ContextMenu != nil {
		f.ContextMenu(sectorID, x, y)
	}
}

func (f Funcs) OnViewportChange(scale, translateX, translateY float64) {
	if f.Viewport != nil {
		f.Viewport(scale, translateX, translateY)
	}
}

// Multi fans every event out to each observer in order.
type Multi []Observer

func (m Multi) OnHoverChange(info *core.HoverInfo) {
	for _, o := range m {
		o.OnHoverChange(info)
	}
}

func (m Multi) OnScoreChange(sectorID string, level int) {
	for _, o := range m {
		o.OnScoreChange(sectorID, level)
	}
}

func (m Multi) OnContextMenuRequest(sectorID string, x, y float64) {
	for _, o := range m {
		o.OnContextMenuRequest(sectorID, x, y)
	}
}

func (m Multi) OnViewportChange(scale, translateX, translateY float64) {
	for _, o := range m {
		o.OnViewportChange(scale, translateX, translateY)
	}
}

// StateObserver applies interaction events to a State.
type StateObserver struct {
	state *state.State
}

// NewStateObserver creates a new observer backed by st.
func NewStateObserver(st *state.State) *StateObserver {
	return &StateObserver{state: st}
}

// OnHoverChange records the hovered sector.
func (o *StateObserver) OnHoverChange(info *core.HoverInfo) {
	o.state.SetHover(info)
}

// OnScoreChange sets the score for the current date as an undoable edit.
func (o *StateObserver) OnScoreChange(sectorID string, level int) {
	// The sector can vanish while a press is in flight.
	if err := o.state.SetScore(sectorID, level); err != nil {
		log.Printf("score %s: %v", sectorID, err)
	}
}

// OnContextMenuRequest opens the sector menu at the pointer.
func (o *StateObserver) OnContextMenuRequest(sectorID string, x, y float64) {
	o.state.OpenMenu(sectorID, x, y)
}

// OnViewportChange mirrors the transform for rendering.
func (o *StateObserver) OnViewportChange(scale, translateX, translateY float64) {
	o.state.View = state.View{Scale: scale, TranslateX: translateX, TranslateY: translateY}
}
