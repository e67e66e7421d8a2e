// Package draw provides rendering functions for visualization.
package draw

import (
	"image"
	"image/color"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/lifewheel/internal/core"
	"github.com/elektrokombinacija/lifewheel/internal/geom"
	"github.com/elektrokombinacija/lifewheel/internal/vis/interact"
)

// Colors for wheel elements
var (
	ColorBackground = color.NRGBA{R: 30, G: 32, B: 36, A: 255}
	ColorRingLine   = color.NRGBA{R: 80, G: 90, B: 100, A: 140}
	ColorRim        = color.NRGBA{R: 150, G: 170, B: 190, A: 255}
	ColorHover      = color.NRGBA{R: 255, G: 255, B: 255, A: 70}
	ColorLabel      = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	ColorFallback   = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
)

// Rendering parameters.
const (
	FillBaseOpacity = 0.35 // Opacity of the outermost filled ring
	TrackAlpha      = 0.12 // Opacity of an unfilled sector
	OutlineStep     = 2.0  // Degrees per polyline segment
)

// WheelView bundles everything needed to draw one frame of the wheel.
type WheelView struct {
	Wheel  geom.Wheel
	View   interact.Viewport
	Scores map[string]int
	Hover  *core.HoverInfo
}

// DrawWheel renders sector tracks, score fills, ring lines and the hover
// highlight. Coordinates are wheel-local, mapped through the viewport.
func DrawWheel(gtx layout.Context, wv WheelView) {
	w := wv.Wheel
	for _, s := range w.Sectors {
		if s.Degenerate() {
			continue
		}
		base := SectorColor(s.Color)

		if track, ok := w.SectorWedge(s); ok {
			DrawWedge(gtx, track, wv.View, w.Center, WithAlpha(base, TrackAlpha))
		}

		// Levels stack from the rim inward.
		for _, lf := range geom.FillLevels(wv.Scores[s.ID], w.RingCount, FillBaseOpacity) {
			ring, ok := w.RingWedge(s, lf.Level)
			if !ok {
				continue
			}
			DrawWedge(gtx, ring, wv.View, w.Center, WithAlpha(base, lf.Opacity))
		}
	}

	DrawRingLines(gtx, w, wv.View)
	drawHover(gtx, wv)
}

func drawHover(gtx layout.Context, wv WheelView) {
	if wv.Hover == nil || wv.Hover.Level < 1 {
		return
	}
	for _, s := range wv.Wheel.Sectors {
		if s.ID != wv.Hover.SectorID {
			continue
		}
		if ring, ok := wv.Wheel.RingWedge(s, wv.Hover.Level); ok {
			DrawWedge(gtx, ring, wv.View, wv.Wheel.Center, ColorHover)
		}
		return
	}
}

// DrawWedge fills an annular wedge.
func DrawWedge(gtx layout.Context, wedge geom.Wedge, view interact.Viewport, center geom.Point, col color.NRGBA) {
	pts := wedge.Outline(OutlineStep)
	if len(pts) < 3 {
		return
	}

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(screenPt(view, center, pts[0]))
	for _, p := range pts[1:] {
		path.LineTo(screenPt(view, center, p))
	}
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

// DrawRingLines draws the level boundaries, a spoke at each sector start,
// the rim and the hub.
func DrawRingLines(gtx layout.Context, w geom.Wheel, view interact.Viewport) {
	if len(w.Sectors) == 0 {
		return
	}
	c := screenPt(view, w.Center, w.Center)
	scale := float32(view.Scale)
	t := float32(w.RingThickness())
	for l := 1; l < w.RingCount; l++ {
		r := (float32(w.Radius) - float32(l)*t) * scale
		DrawCircleOutline(gtx, c.X, c.Y, r, ColorRingLine, 1)
	}
	for _, s := range w.Sectors {
		if s.Degenerate() {
			continue
		}
		rim := screenPt(view, w.Center, geom.PolarToCartesian(w.Center, w.Radius, s.A0))
		DrawLine(gtx, c.X, c.Y, rim.X, rim.Y, 1, ColorRingLine)
	}
	DrawCircleOutline(gtx, c.X, c.Y, float32(w.Radius)*scale, ColorRim, 2)
	DrawFilledCircle(gtx, c.X, c.Y, 3*scale, ColorRim)
}

// DrawLabels writes each sector's name near the rim along its midline.
func DrawLabels(gtx layout.Context, th *material.Theme, w geom.Wheel, view interact.Viewport) {
	if w.Radius <= 0 {
		return
	}
	r := w.Radius - w.RingThickness()/2
	for _, s := range w.Sectors {
		if s.Degenerate() || s.Name == "" {
			continue
		}
		p := screenPt(view, w.Center, geom.PolarToCartesian(w.Center, r, s.Mid))

		label := material.Label(th, 12, s.Name)
		label.Color = ColorLabel

		macro := op.Record(gtx.Ops)
		lgtx := gtx
		lgtx.Constraints.Min = image.Point{}
		dims := label.Layout(lgtx)
		call := macro.Stop()

		off := image.Pt(int(p.X)-dims.Size.X/2, int(p.Y)-dims.Size.Y/2)
		stack := op.Offset(off).Push(gtx.Ops)
		call.Add(gtx.Ops)
		stack.Pop()
	}
}

// SectorColor parses a sector's CSS color, falling back to grey.
func SectorColor(css string) color.NRGBA {
	c, err := core.ParseColor(css)
	if err != nil {
		return ColorFallback
	}
	return c
}

// WithAlpha returns c with its alpha set to opacity in [0, 1].
func WithAlpha(c color.NRGBA, opacity float64) color.NRGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	c.A = uint8(opacity*255 + 0.5)
	return c
}

func screenPt(view interact.Viewport, center, local geom.Point) f32.Point {
	p := view.ToScreen(local, center)
	return f32.Pt(float32(p.X), float32(p.Y))
}
