package draw

import (
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
)

// DrawCircleOutline draws a circle outline.
func DrawCircleOutline(gtx layout.Context, centerX, centerY float32, radius float32, col color.NRGBA, strokeWidth float32) {
	if radius <= 0 {
		return
	}
	segments := circleSegments(radius)

	// Outer circle
	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(f32.Pt(centerX+radius, centerY))
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := centerX + radius*float32(math.Cos(angle))
		y := centerY + radius*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()

	// Inner circle (hole), wound the other way
	innerR := radius - strokeWidth
	if innerR < 0 {
		innerR = 0
	}
	path.Move(f32.Pt(centerX+innerR-path.Pos().X, centerY-path.Pos().Y))
	for i := segments - 1; i >= 0; i-- {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := centerX + innerR*float32(math.Cos(angle))
		y := centerY + innerR*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// DrawFilledCircle draws a solid disc.
func DrawFilledCircle(gtx layout.Context, cx, cy, radius float32, col color.NRGBA) {
	if radius <= 0 {
		return
	}
	var path clip.Path
	path.Begin(gtx.Ops)
	path.Move(f32.Pt(cx+radius, cy))

	segments := circleSegments(radius)
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		x := cx + radius*float32(math.Cos(angle))
		y := cy + radius*float32(math.Sin(angle))
		path.Line(f32.Pt(x-path.Pos().X, y-path.Pos().Y))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// DrawLine draws a line of the given width.
func DrawLine(gtx layout.Context, x1, y1, x2, y2, width float32, col color.NRGBA) {
	dx := x2 - x1
	dy := y2 - y1
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 0.1 {
		return
	}

	dx /= length
	dy /= length
	px := -dy * width / 2
	py := dx * width / 2

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(x1+px, y1+py))
	path.LineTo(f32.Pt(x2+px, y2+py))
	path.LineTo(f32.Pt(x2-px, y2-py))
	path.LineTo(f32.Pt(x1-px, y1-py))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// circleSegments picks a segment count that keeps large circles smooth.
func circleSegments(radius float32) int {
	n := int(radius / 4)
	if n < 24 {
		return 24
	}
	if n > 180 {
		return 180
	}
	return n
}
