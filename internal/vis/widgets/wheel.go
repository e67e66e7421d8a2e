// Package widgets provides Gio UI widgets for the wheel window.
package widgets

import (
	"image"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/lifewheel/internal/geom"
	"github.com/elektrokombinacija/lifewheel/internal/vis/draw"
	"github.com/elektrokombinacija/lifewheel/internal/vis/interact"
	"github.com/elektrokombinacija/lifewheel/internal/vis/observer"
	"github.com/elektrokombinacija/lifewheel/internal/vis/state"
)

// WheelMargin keeps labels and the rim clear of the widget edge.
const WheelMargin = 24

// Wheel is the interactive wheel area. It feeds pointer and touch input to
// a dispatcher and draws the scores of the selected day.
type Wheel struct {
	state    *state.State
	disp     *interact.Dispatcher
	revision int
	size     image.Point
	touches  []interact.Touch
	ids      []pointer.ID
}

// NewWheel creates the widget and its dispatcher. Events go to obs.
func NewWheel(st *state.State, cfg interact.Config, obs observer.Observer) *Wheel {
	w := &Wheel{state: st, revision: -1}
	w.disp = interact.NewDispatcher(cfg, obs, interact.WithSurface(w))
	return w
}

// Dispatcher returns the widget's dispatcher.
func (w *Wheel) Dispatcher() *interact.Dispatcher { return w.disp }

// Origin implements interact.Surface. Events arrive widget-local, so the
// origin is zero once the widget has been laid out.
func (w *Wheel) Origin() (geom.Point, bool) {
	return geom.Point{}, w.size.X > 0 && w.size.Y > 0
}

// Layout handles input and renders the wheel.
func (w *Wheel) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, draw.ColorBackground)

	w.fit(bounds)
	if w.state.Revision != w.revision {
		w.disp.SetSectors(w.state.Sectors())
		w.revision = w.state.Revision
	}

	w.handlePointerEvents(gtx)
	w.disp.Tick()
	if deadline, ok := w.disp.LongPressDeadline(); ok {
		gtx.Execute(op.InvalidateCmd{At: deadline})
	}

	wheel := w.disp.Wheel()
	view := w.disp.Viewport()
	draw.DrawWheel(gtx, draw.WheelView{
		Wheel:  wheel,
		View:   view,
		Scores: w.state.CurrentScores(),
		Hover:  w.state.Hover,
	})
	draw.DrawLabels(gtx, th, wheel, view)

	return layout.Dimensions{Size: bounds}
}

// fit centers the wheel in the widget, as large as the margin allows.
func (w *Wheel) fit(size image.Point) {
	w.size = size
	side := min(size.X, size.Y)
	radius := float64(side)/2 - WheelMargin
	if radius <= 0 {
		return
	}
	w.disp.SetGeometry(geom.Pt(float64(size.X)/2, float64(size.Y)/2), radius)
}

func (w *Wheel) handlePointerEvents(gtx layout.Context) {
	// Register for pointer events
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, w)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  w,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Move | pointer.Scroll | pointer.Leave | pointer.Cancel,
			ScrollY: pointer.ScrollRange{Min: -1 << 16, Max: 1 << 16},
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			if pe.Source == pointer.Touch {
				w.handleTouch(pe)
			} else {
				w.handleMouse(pe)
			}
		}
	}
}

func (w *Wheel) handleMouse(ev pointer.Event) {
	x, y := float64(ev.Position.X), float64(ev.Position.Y)
	switch ev.Kind {
	case pointer.Press:
		w.state.CloseMenu()
		switch {
		case ev.Buttons.Contain(pointer.ButtonSecondary):
			w.disp.OnContextMenu(x, y)
		case ev.Buttons.Contain(pointer.ButtonPrimary):
			w.disp.OnPointerDown(x, y, interact.ButtonPrimary)
		}
	case pointer.Drag, pointer.Move:
		w.disp.OnPointerMove(x, y)
	case pointer.Release:
		w.disp.OnPointerUp(x, y)
	case pointer.Scroll:
		w.disp.OnWheelScroll(float64(ev.Scroll.Y))
	case pointer.Leave, pointer.Cancel:
		w.disp.OnPointerLeave()
	}
}

func (w *Wheel) handleTouch(ev pointer.Event) {
	t := interact.Touch{ID: int(ev.PointerID), X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
	switch ev.Kind {
	case pointer.Press:
		w.state.CloseMenu()
		w.setTouch(ev.PointerID, t)
		w.disp.OnTouchStart(w.touches)
	case pointer.Drag:
		w.setTouch(ev.PointerID, t)
		w.disp.OnTouchMove(w.touches)
	case pointer.Release:
		w.setTouch(ev.PointerID, t)
		w.dropTouch(ev.PointerID)
		w.disp.OnTouchEnd(w.touches)
	case pointer.Cancel:
		w.touches = w.touches[:0]
		w.ids = w.ids[:0]
		w.disp.OnTouchCancel()
	}
}

// setTouch adds or updates a touch, keeping the order fingers landed in.
func (w *Wheel) setTouch(id pointer.ID, t interact.Touch) {
	for i, known := range w.ids {
		if known == id {
			w.touches[i] = t
			return
		}
	}
	w.ids = append(w.ids, id)
	w.touches = append(w.touches, t)
}

func (w *Wheel) dropTouch(id pointer.ID) {
	for i, known := range w.ids {
		if known == id {
			w.ids = append(w.ids[:i], w.ids[i+1:]...)
			w.touches = append(w.touches[:i], w.touches[i+1:]...)
			return
		}
	}
}
