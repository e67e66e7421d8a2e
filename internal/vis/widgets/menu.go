package widgets

import (
	"image"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/lifewheel/internal/vis/draw"
	"github.com/elektrokombinacija/lifewheel/internal/vis/state"
)

// MenuAction is an entry of the sector context menu.
type MenuAction int

const (
	MenuClearScore MenuAction = iota
	MenuMoveLeft
	MenuMoveRight
	MenuDelete
	MenuClose
)

var menuLabels = [...]string{
	MenuClearScore: "Clear score",
	MenuMoveLeft:   "Move left",
	MenuMoveRight:  "Move right",
	MenuDelete:     "Delete sector",
	MenuClose:      "Close",
}

// Menu is the sector context menu overlay. It draws at the position stored
// in state.Menu, in the same coordinates as the wheel widget.
type Menu struct {
	state   *state.State
	buttons [len(menuLabels)]widget.Clickable
}

// NewMenu creates the overlay.
func NewMenu(st *state.State) *Menu {
	return &Menu{state: st}
}

// Apply runs action on the sector the menu was opened for and closes it.
func (m *Menu) Apply(action MenuAction) error {
	menu := m.state.Menu
	if menu == nil {
		return nil
	}
	m.state.CloseMenu()
	switch action {
	case MenuClearScore:
		return m.state.SetScore(menu.SectorID, 0)
	case MenuMoveLeft:
		return m.state.MoveSector(menu.SectorID, -1)
	case MenuMoveRight:
		return m.state.MoveSector(menu.SectorID, 1)
	case MenuDelete:
		return m.state.DeleteSector(menu.SectorID)
	}
	return nil
}

// Layout draws the menu when one is open.
func (m *Menu) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	for i := range m.buttons {
		for m.buttons[i].Clicked(gtx) {
			_ = m.Apply(MenuAction(i))
		}
	}
	menu := m.state.Menu
	if menu == nil {
		return layout.Dimensions{}
	}
	sec, ok := m.state.Sectors().Find(menu.SectorID)
	if !ok {
		m.state.CloseMenu()
		return layout.Dimensions{}
	}

	macro := op.Record(gtx.Ops)
	pgtx := gtx
	pgtx.Constraints.Min = image.Point{}
	dims := m.layoutPanel(pgtx, th, sec.Name)
	call := macro.Stop()

	// Keep the panel inside the widget.
	x := min(int(menu.X), gtx.Constraints.Max.X-dims.Size.X)
	y := min(int(menu.Y), gtx.Constraints.Max.Y-dims.Size.Y)
	stack := op.Offset(image.Pt(max(x, 0), max(y, 0))).Push(gtx.Ops)
	area := clip.Rect(image.Rectangle{Max: dims.Size}).Push(gtx.Ops)
	// Swallow presses between the buttons.
	event.Op(gtx.Ops, m)
	for {
		if _, ok := gtx.Event(pointer.Filter{Target: m, Kinds: pointer.Press}); !ok {
			break
		}
	}
	paint.Fill(gtx.Ops, colorPanel)
	call.Add(gtx.Ops)
	area.Pop()
	stack.Pop()

	return layout.Dimensions{Size: gtx.Constraints.Max}
}

func (m *Menu) layoutPanel(gtx layout.Context, th *material.Theme, title string) layout.Dimensions {
	children := []layout.FlexChild{
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			label := material.Label(th, 13, title)
			label.Color = draw.ColorLabel
			return layout.Inset{Bottom: unit.Dp(6)}.Layout(gtx, label.Layout)
		}),
	}
	idx := m.state.Sectors().Index(m.state.Menu.SectorID)
	last := len(m.state.Sectors()) - 1
	for i := range m.buttons {
		action := MenuAction(i)
		enabled := true
		switch action {
		case MenuClearScore:
			enabled = m.state.Score(m.state.Menu.SectorID) > 0
		case MenuMoveLeft:
			enabled = idx > 0
		case MenuMoveRight:
			enabled = idx < last
		}
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Dp(unit.Dp(140))
			return layout.Inset{Top: unit.Dp(2)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return button(gtx, th, &m.buttons[i], menuLabels[i], false, enabled)
			})
		}))
	}
	return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
	})
}
