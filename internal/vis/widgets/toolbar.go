package widgets

import (
	"fmt"
	"image"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/lifewheel/internal/vis/interact"
	"github.com/elektrokombinacija/lifewheel/internal/vis/state"
)

// Toolbar provides control buttons.
type Toolbar struct {
	state *state.State
	disp  *interact.Dispatcher

	// Viewport
	zoomOutBtn widget.Clickable
	zoomInBtn  widget.Clickable
	resetBtn   widget.Clickable

	// Date navigation
	prevBtn  widget.Clickable
	todayBtn widget.Clickable
	nextBtn  widget.Clickable

	// Undo/redo
	undoBtn widget.Clickable
	redoBtn widget.Clickable

	addBtn widget.Clickable
}

// NewToolbar creates a new toolbar.
func NewToolbar(st *state.State, disp *interact.Dispatcher) *Toolbar {
	return &Toolbar{
		state: st,
		disp:  disp,
	}
}

// Layout renders the toolbar.
func (t *Toolbar) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	height := gtx.Dp(unit.Dp(48))

	// Background
	rect := image.Rect(0, 0, gtx.Constraints.Max.X, height)
	paint.FillShape(gtx.Ops, colorPanel, clip.Rect(rect).Op())

	t.handleClicks(gtx)

	gtx.Constraints.Max.Y = height
	dims := layout.Inset{Left: unit.Dp(10), Right: unit.Dp(10), Top: unit.Dp(8), Bottom: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutViewControls(gtx, th)
			}),
			layout.Rigid(separator),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutDateControls(gtx, th)
			}),
			layout.Rigid(separator),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return t.layoutEditControls(gtx, th)
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{}
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				label := material.Label(th, 12, fmt.Sprintf("%.0f%%", t.disp.Viewport().Scale*100))
				label.Color = colorTextDim
				return label.Layout(gtx)
			}),
		)
	})
	dims.Size.Y = height
	return dims
}

func (t *Toolbar) layoutViewControls(gtx layout.Context, th *material.Theme) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return button(gtx, th, &t.zoomOutBtn, "-", false, true)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return button(gtx, th, &t.zoomInBtn, "+", false, true)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return button(gtx, th, &t.resetBtn, "[]", false, !t.disp.Viewport().IsIdentity())
		}),
	)
}

func (t *Toolbar) layoutDateControls(gtx layout.Context, th *material.Theme) layout.Dimensions {
	today := t.state.Date.IsToday()
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return button(gtx, th, &t.prevBtn, "<", false, true)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return button(gtx, th, &t.todayBtn, "Today", today, true)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return button(gtx, th, &t.nextBtn, ">", false, !today)
		}),
	)
}

func (t *Toolbar) layoutEditControls(gtx layout.Context, th *material.Theme) layout.Dimensions {
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return button(gtx, th, &t.undoBtn, "<-", false, t.state.Edit.CanUndo())
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(2)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return button(gtx, th, &t.redoBtn, "->", false, t.state.Edit.CanRedo())
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return button(gtx, th, &t.addBtn, "Add sector", false, true)
		}),
	)
}

func (t *Toolbar) handleClicks(gtx layout.Context) {
	// Viewport
	for t.zoomOutBtn.Clicked(gtx) {
		t.disp.ZoomOut()
	}
	for t.zoomInBtn.Clicked(gtx) {
		t.disp.ZoomIn()
	}
	for t.resetBtn.Clicked(gtx) {
		t.disp.ResetViewport()
	}

	// Date
	for t.prevBtn.Clicked(gtx) {
		t.state.Date.Prev()
	}
	for t.todayBtn.Clicked(gtx) {
		t.state.Date.Today()
	}
	for t.nextBtn.Clicked(gtx) {
		t.state.Date.Next()
	}

	// Undo/redo
	for t.undoBtn.Clicked(gtx) {
		t.state.Undo()
	}
	for t.redoBtn.Clicked(gtx) {
		t.state.Redo()
	}

	for t.addBtn.Clicked(gtx) {
		_, _ = t.state.AddSector(NextSectorName(t.state), "")
	}
}

// NextSectorName returns "Sector N" for the first N not already in use.
func NextSectorName(st *state.State) string {
	used := make(map[string]bool, len(st.Sectors()))
	for _, s := range st.Sectors() {
		used[s.Name] = true
	}
	for n := len(st.Sectors()) + 1; ; n++ {
		name := fmt.Sprintf("Sector %d", n)
		if !used[name] {
			return name
		}
	}
}
