// Package vis implements the Gio window for the wheel of life.
package vis

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/lifewheel/internal/config"
	"github.com/elektrokombinacija/lifewheel/internal/core"
	"github.com/elektrokombinacija/lifewheel/internal/store"
	"github.com/elektrokombinacija/lifewheel/internal/vis/observer"
	"github.com/elektrokombinacija/lifewheel/internal/vis/state"
	"github.com/elektrokombinacija/lifewheel/internal/vis/widgets"
)

// maxEntry bounds typed score digits.
const maxEntry = 3

// App is the main wheel application.
type App struct {
	state   *state.State
	store   store.Store
	theme   *material.Theme
	wheel   *widgets.Wheel
	menu    *widgets.Menu
	toolbar *widgets.Toolbar
	dates   *widgets.DateStrip

	// Digits typed for the hovered sector, applied on Enter.
	entry string
}

// NewApp loads the saved wheel from s and builds the widgets. A failed load
// is logged and the starter wheel is shown instead.
func NewApp(cfg config.Config, s store.Store) *App {
	snap, err := store.LoadOrDefault(context.Background(), s)
	if err != nil {
		log.Printf("load wheel: %v", err)
		snap = nil
	}
	st := state.NewState(snap, cfg.RingCount, time.Now)

	a := &App{
		state: st,
		store: s,
		theme: material.NewTheme(),
	}
	obs := observer.Multi{
		observer.NewStateObserver(st),
		observer.Funcs{
			// A new target discards half-typed digits.
			Hover: func(*core.HoverInfo) { a.entry = "" },
		},
	}
	a.wheel = widgets.NewWheel(st, cfg.Interaction(), obs)
	a.menu = widgets.NewMenu(st)
	a.toolbar = widgets.NewToolbar(st, a.wheel.Dispatcher())
	a.dates = widgets.NewDateStrip(st)
	return a
}

// Run starts the application event loop.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops

	// Event filters for keyboard input
	tag := new(int)
	focused := false

	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			a.save()
			return e.Err

		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			// Handle keyboard events
			for {
				ev, ok := gtx.Event(key.Filter{Focus: tag, Optional: key.ModCtrl | key.ModShift})
				if !ok {
					break
				}
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					a.handleKeyEvent(ke)
				}
			}

			// Request focus for keyboard input
			event.Op(gtx.Ops, tag)
			if !focused {
				gtx.Execute(key.FocusCmd{Tag: tag})
				focused = true
			}

			a.layout(gtx)
			e.Frame(gtx.Ops)

			a.save()
		}
	}
}

// save writes pending edits. Failures are logged and retried on the next
// frame that finds the state dirty.
func (a *App) save() {
	if !a.state.Dirty || a.store == nil {
		return
	}
	if err := a.store.Save(context.Background(), a.state.Snapshot(time.Now())); err != nil {
		log.Printf("save wheel: %v", err)
		return
	}
	a.state.Dirty = false
}

func (a *App) handleKeyEvent(e key.Event) {
	disp := a.wheel.Dispatcher()
	switch e.Name {
	case key.NameLeftArrow:
		a.state.Date.Prev()
	case key.NameRightArrow:
		a.state.Date.Next()
	case key.NameHome:
		a.state.Date.Today()
	case key.NameEscape:
		a.state.CloseMenu()
		a.entry = ""
	case key.NameReturn, key.NameEnter:
		a.applyEntry()
	case key.NameDeleteBackward:
		if n := len(a.entry); n > 0 {
			a.entry = a.entry[:n-1]
		}
	case "R":
		disp.ResetViewport()
	case "+", "=":
		disp.ZoomIn()
	case "-":
		disp.ZoomOut()
	case "Z":
		if e.Modifiers.Contain(key.ModCtrl) {
			if e.Modifiers.Contain(key.ModShift) {
				a.state.Redo()
			} else {
				a.state.Undo()
			}
		}
	case "Y":
		if e.Modifiers.Contain(key.ModCtrl) {
			a.state.Redo()
		}
	default:
		if len(e.Name) == 1 && e.Name[0] >= '0' && e.Name[0] <= '9' && len(a.entry) < maxEntry {
			a.entry += string(e.Name)
		}
	}
}

// applyEntry scores the hovered sector with the typed digits.
func (a *App) applyEntry() {
	text := a.entry
	a.entry = ""
	if a.state.Hover == nil || text == "" {
		return
	}
	a.state.SetScoreText(a.state.Hover.SectorID, text)
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	// Fill background
	paint.Fill(gtx.Ops, color.NRGBA{R: 30, G: 30, B: 35, A: 255})

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		// Toolbar at top
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.toolbar.Layout(gtx, a.theme)
		}),
		// Wheel with the context menu on top
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Stack{Alignment: layout.NE}.Layout(gtx,
				layout.Expanded(func(gtx layout.Context) layout.Dimensions {
					return a.wheel.Layout(gtx, a.theme)
				}),
				layout.Expanded(func(gtx layout.Context) layout.Dimensions {
					return a.menu.Layout(gtx, a.theme)
				}),
				layout.Stacked(a.layoutStatus),
			)
		}),
		// Date strip at bottom
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.dates.Layout(gtx, a.theme)
		}),
	)
}

func (a *App) layoutStatus(gtx layout.Context) layout.Dimensions {
	label := material.Label(a.theme, 12, a.status())
	label.Color = color.NRGBA{R: 180, G: 180, B: 180, A: 255}
	return layout.UniformInset(unit.Dp(8)).Layout(gtx, label.Layout)
}

// status describes the hovered cell and any typed digits.
func (a *App) status() string {
	h := a.state.Hover
	if h == nil {
		return ""
	}
	sec, ok := a.state.Sectors().Find(h.SectorID)
	if !ok {
		return ""
	}
	s := fmt.Sprintf("%s: ring %d, scored %d/%d", sec.Name, h.Level, a.state.Score(sec.ID), a.state.RingCount)
	if a.entry != "" {
		s += fmt.Sprintf("  [%s]", a.entry)
	}
	return s
}
