// Package geom maps wheel sectors to angular slices and points to sector hits.
//
// Angles are in degrees, measured clockwise on screen from the positive x
// axis (screen y grows downward), so -90 is 12 o'clock.
package geom

import "math"

// Point is a position in wheel-local or screen pixels.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Len returns the distance of p from the origin.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// ToRad converts degrees to radians.
func ToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// ToDeg converts radians to degrees.
func ToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NormDeg folds any angle into [0, 360).
func NormDeg(d float64) float64 {
	n := math.Mod(d, 360)
	if n < 0 {
		n += 360
	}
	// A tiny negative remainder can round up to exactly 360.
	if n >= 360 {
		n = 0
	}
	return n
}

// PolarToCartesian projects (radius, angle) around center.
func PolarToCartesian(center Point, radius, angleDeg float64) Point {
	rad := ToRad(angleDeg)
	return Point{
		X: center.X + radius*math.Cos(rad),
		Y: center.Y + radius*math.Sin(rad),
	}
}

// Polar returns the distance and normalized angle of p around center.
func Polar(center, p Point) (distance, angleDeg float64) {
	d := p.Sub(center)
	return d.Len(), NormDeg(ToDeg(math.Atan2(d.Y, d.X)))
}

// InSector reports whether a normalized angle falls within s, including
// sectors that wrap past 360.
func InSector(angle float64, s SectorAngles) bool {
	if s.A0n <= s.A1n {
		return angle >= s.A0n && angle <= s.A1n
	}
	return angle >= s.A0n || angle <= s.A1n
}

// DistanceToLevel maps a distance from the center to a ring level.
// The center is the highest level (ringCount) and the rim is 0. A point on
// a ring boundary belongs to the outer of the two rings it touches.
func DistanceToLevel(distance, radius float64, ringCount int) int {
	if radius <= 0 || ringCount <= 0 {
		return 0
	}
	thickness := radius / float64(ringCount)
	level := int(math.Ceil((radius - distance) / thickness))
	if level < 0 {
		return 0
	}
	if level > ringCount {
		return ringCount
	}
	return level
}
