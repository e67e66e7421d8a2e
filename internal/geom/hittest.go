package geom

import (
	"math"

	"github.com/elektrokombinacija/lifewheel/internal/core"
)

// Wheel is the wheel-local geometry shared by hit testing and rendering.
type Wheel struct {
	Center    Point
	Radius    float64
	RingCount int
	Sectors   []SectorAngles
}

// NewWheel lays out sectors around center.
func NewWheel(center Point, radius float64, ringCount int, sectors []core.Sector, gap float64) Wheel {
	return Wheel{
		Center:    center,
		Radius:    radius,
		RingCount: ringCount,
		Sectors:   Layout(sectors, gap),
	}
}

// RingThickness is the radial width of one ring.
func (w Wheel) RingThickness() float64 {
	if w.RingCount <= 0 {
		return 0
	}
	return w.Radius / float64(w.RingCount)
}

// Hit is the result of a successful hit test.
type Hit struct {
	SectorID string
	Index    int // Position in Sectors
	Level    int
	Distance float64
	Angle    float64 // Normalized degrees
}

// HitTest locates the sector and ring level under p. Points beyond the rim,
// inside a gap, or non-finite report no hit.
func (w Wheel) HitTest(p Point) (Hit, bool) {
	if len(w.Sectors) == 0 || w.Radius <= 0 {
		return Hit{}, false
	}
	if !finite(p.X) || !finite(p.Y) {
		return Hit{}, false
	}

	dist, angle := Polar(w.Center, p)
	if dist > w.Radius {
		return Hit{}, false
	}

	for i, s := range w.Sectors {
		if s.Degenerate() || !InSector(angle, s) {
			continue
		}
		return Hit{
			SectorID: s.ID,
			Index:    i,
			Level:    DistanceToLevel(dist, w.Radius, w.RingCount),
			Distance: dist,
			Angle:    angle,
		}, true
	}
	return Hit{}, false
}

// PointFor returns the wheel-local point at the middle of ring level on
// sector i. It is the inverse of HitTest for tests and keyboard control.
func (w Wheel) PointFor(i, level int) (Point, bool) {
	if i < 0 || i >= len(w.Sectors) || level < 1 || level > w.RingCount {
		return Point{}, false
	}
	t := w.RingThickness()
	r := w.Radius - (float64(level)-0.5)*t
	return PolarToCartesian(w.Center, r, w.Sectors[i].Mid), true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
