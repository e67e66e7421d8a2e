package geom

import (
	"fmt"
	"math"
	"strings"
)

// Wedge is an annular wedge between two radii across [A0, A1].
type Wedge struct {
	Center       Point
	Inner, Outer float64
	A0, A1       float64
}

// RingWedge returns the wedge for ring level (1 = outermost) of s.
func (w Wheel) RingWedge(s SectorAngles, level int) (Wedge, bool) {
	if s.Degenerate() || level < 1 || level > w.RingCount {
		return Wedge{}, false
	}
	t := w.RingThickness()
	inner := w.Radius - float64(level)*t
	if inner < 0 {
		inner = 0
	}
	return Wedge{
		Center: w.Center,
		Inner:  inner,
		Outer:  w.Radius - float64(level-1)*t,
		A0:     s.A0,
		A1:     s.A1,
	}, true
}

// SectorWedge spans the whole sector from the center to the rim.
func (w Wheel) SectorWedge(s SectorAngles) (Wedge, bool) {
	if s.Degenerate() || w.Radius <= 0 {
		return Wedge{}, false
	}
	return Wedge{Center: w.Center, Outer: w.Radius, A0: s.A0, A1: s.A1}, true
}

// LargeArc is the SVG large-arc flag for the wedge's span.
func (w Wedge) LargeArc() int {
	if w.A1-w.A0 > 180 {
		return 1
	}
	return 0
}

// Corners returns the four boundary corners in drawing order.
func (w Wedge) Corners() (innerStart, innerEnd, outerEnd, outerStart Point) {
	innerStart = PolarToCartesian(w.Center, w.Inner, w.A0)
	innerEnd = PolarToCartesian(w.Center, w.Inner, w.A1)
	outerEnd = PolarToCartesian(w.Center, w.Outer, w.A1)
	outerStart = PolarToCartesian(w.Center, w.Outer, w.A0)
	return
}

// SVGPath renders the closed wedge as SVG path data. The inner arc sweeps
// clockwise on screen and the outer arc returns counter-clockwise.
func (w Wedge) SVGPath() string {
	is, _, oe, _ := w.Corners()
	large := w.LargeArc()

	var b strings.Builder
	if w.Inner <= 0 {
		fmt.Fprintf(&b, "M %s L %s", fmtPt(w.Center), fmtPt(oe))
	} else {
		fmt.Fprintf(&b, "M %s", fmtPt(is))
		w.arc(&b, w.Inner, w.A0, w.A1, large, 1)
		fmt.Fprintf(&b, " L %s", fmtPt(oe))
	}
	w.arc(&b, w.Outer, w.A1, w.A0, large, 0)
	b.WriteString(" Z")
	return b.String()
}

// arc writes an arc command ending at angle to. A full circle has no
// distinct end point, so it is split at the midpoint.
func (w Wedge) arc(b *strings.Builder, r, from, to float64, large, sweep int) {
	if math.Abs(to-from) >= 360 {
		mid := (from + to) / 2
		fmt.Fprintf(b, " A %s %s 0 0 %d %s", fmtNum(r), fmtNum(r), sweep, fmtPt(PolarToCartesian(w.Center, r, mid)))
		large = 0
	}
	fmt.Fprintf(b, " A %s %s 0 %d %d %s", fmtNum(r), fmtNum(r), large, sweep, fmtPt(PolarToCartesian(w.Center, r, to)))
}

// Outline samples the wedge boundary as a closed polygon with at most
// stepDeg degrees between neighbouring arc points.
func (w Wedge) Outline(stepDeg float64) []Point {
	if stepDeg <= 0 {
		stepDeg = 2
	}
	span := w.A1 - w.A0
	n := int(math.Ceil(math.Abs(span) / stepDeg))
	if n < 1 {
		n = 1
	}

	pts := make([]Point, 0, 2*(n+1))
	if w.Inner <= 0 {
		pts = append(pts, w.Center)
	} else {
		for i := 0; i <= n; i++ {
			a := w.A0 + span*float64(i)/float64(n)
			pts = append(pts, PolarToCartesian(w.Center, w.Inner, a))
		}
	}
	for i := n; i >= 0; i-- {
		a := w.A0 + span*float64(i)/float64(n)
		pts = append(pts, PolarToCartesian(w.Center, w.Outer, a))
	}
	return pts
}

// LevelFill is one stacked ring of a sector's score.
type LevelFill struct {
	Level   int
	Opacity float64
}

// FillLevels lists the rings drawn for score, opacity rising toward the
// center from base. A zero score draws nothing.
func FillLevels(score, ringCount int, base float64) []LevelFill {
	if ringCount <= 0 || score <= 0 {
		return nil
	}
	if score > ringCount {
		score = ringCount
	}
	out := make([]LevelFill, score)
	for l := 1; l <= score; l++ {
		out[l-1] = LevelFill{
			Level:   l,
			Opacity: base + float64(l)/float64(ringCount)*(1-base),
		}
	}
	return out
}

func fmtNum(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func fmtPt(p Point) string {
	return fmtNum(p.X) + " " + fmtNum(p.Y)
}
