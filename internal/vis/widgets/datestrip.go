package widgets

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/lifewheel/internal/core"
	"github.com/elektrokombinacija/lifewheel/internal/stats"
	"github.com/elektrokombinacija/lifewheel/internal/vis/state"
)

// Date strip geometry in dp.
const (
	stripHeight = 64
	stripMargin = 20
	stripCell   = 28
	stripDays   = 31
)

var (
	colorStrip    = color.NRGBA{R: 35, G: 38, B: 42, A: 255}
	colorDayBar   = color.NRGBA{R: 100, G: 180, B: 255, A: 255}
	colorDayEmpty = color.NRGBA{R: 60, G: 65, B: 70, A: 255}
	colorSelected = color.NRGBA{R: 70, G: 76, B: 84, A: 255}
)

// DateStrip shows recent days with their average score and selects the
// day the wheel shows and edits.
type DateStrip struct {
	state    *state.State
	dragging bool
	dates    []string
}

// NewDateStrip creates the strip.
func NewDateStrip(st *state.State) *DateStrip {
	return &DateStrip{state: st}
}

// Layout renders the strip.
func (d *DateStrip) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	height := gtx.Dp(unit.Dp(stripHeight))
	margin := gtx.Dp(unit.Dp(stripMargin))
	cell := gtx.Dp(unit.Dp(stripCell))
	width := gtx.Constraints.Max.X

	rect := image.Rect(0, 0, width, height)
	paint.FillShape(gtx.Ops, colorStrip, clip.Rect(rect).Op())

	count := max(1, min((width-2*margin)/cell, stripDays))
	d.dates = stats.Window(core.Today(), count)

	d.handlePointerEvents(gtx, height, margin, cell)

	book := d.state.Data.ScoresByDate
	barTop := gtx.Dp(unit.Dp(22))
	barMax := gtx.Dp(unit.Dp(24))
	for i, date := range d.dates {
		x := margin + i*cell
		if date == d.state.Date.Current {
			sel := image.Rect(x, barTop-2, x+cell, height-2)
			paint.FillShape(gtx.Ops, colorSelected, clip.Rect(sel).Op())
		}

		avg, n := stats.DayAverage(book, date)
		bar := 2
		col := colorDayEmpty
		if n > 0 {
			bar = max(2, int(avg/float64(d.state.RingCount)*float64(barMax)+0.5))
			col = colorDayBar
		}
		bottom := barTop + barMax
		barRect := image.Rect(x+cell/4, bottom-bar, x+cell-cell/4, bottom)
		paint.FillShape(gtx.Ops, col, clip.Rect(barRect).Op())

		d.dayLabel(gtx, th, date, x, bottom, cell)
	}

	d.drawTitle(gtx, th, margin)

	return layout.Dimensions{Size: image.Point{X: width, Y: height}}
}

func (d *DateStrip) dayLabel(gtx layout.Context, th *material.Theme, date string, x, y, cell int) {
	t, err := core.ParseDate(date)
	if err != nil {
		return
	}
	label := material.Label(th, 10, strconv.Itoa(t.Day()))
	label.Color = colorTextDim
	label.Alignment = text.Middle

	stack := op.Offset(image.Pt(x, y)).Push(gtx.Ops)
	lgtx := gtx
	lgtx.Constraints = layout.Exact(image.Pt(cell, gtx.Dp(unit.Dp(14))))
	label.Layout(lgtx)
	stack.Pop()
}

func (d *DateStrip) drawTitle(gtx layout.Context, th *material.Theme, margin int) {
	current := d.state.Date.Current
	title := current
	if t, err := core.ParseDate(current); err == nil {
		title = t.Format("Mon 2 Jan 2006")
	}
	if avg, n := stats.DayAverage(d.state.Data.ScoresByDate, current); n > 0 {
		title += fmt.Sprintf("  avg %.1f", avg)
	}
	if d.state.Date.IsToday() {
		title += "  (today)"
	}
	label := material.Label(th, 12, title)
	label.Color = colorText

	stack := op.Offset(image.Pt(margin, gtx.Dp(unit.Dp(4)))).Push(gtx.Ops)
	lgtx := gtx
	lgtx.Constraints.Min = image.Point{}
	label.Layout(lgtx)
	stack.Pop()
}

func (d *DateStrip) handlePointerEvents(gtx layout.Context, height, margin, cell int) {
	// Register for pointer events
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, height)).Push(gtx.Ops)
	event.Op(gtx.Ops, d)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: d,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			switch pe.Kind {
			case pointer.Press:
				d.dragging = true
				d.seekToPosition(pe.Position.X, margin, cell)

			case pointer.Drag:
				if d.dragging {
					d.seekToPosition(pe.Position.X, margin, cell)
				}

			case pointer.Release, pointer.Cancel:
				d.dragging = false
			}
		}
	}
}

func (d *DateStrip) seekToPosition(screenX float32, margin, cell int) {
	i := dayIndex(float64(screenX), margin, cell, len(d.dates))
	if i < 0 {
		return
	}
	_ = d.state.Date.Set(d.dates[i])
}

// dayIndex maps an x position to a cell, clamping to the first and last
// cells. It returns -1 when there are no cells.
func dayIndex(x float64, margin, cell, count int) int {
	if count <= 0 || cell <= 0 {
		return -1
	}
	i := int((x - float64(margin)) / float64(cell))
	if x < float64(margin) {
		i = 0
	}
	return max(0, min(i, count-1))
}
