// Package interact turns pointer and touch input into wheel actions: hover,
// scoring clicks, pan, zoom and context menus.
package interact

import (
	"math"

	"github.com/elektrokombinacija/lifewheel/internal/geom"
)

// Zoom limits and the per-step wheel factor.
const (
	MinScale = 0.5
	MaxScale = 5.0
	ZoomStep = 1.1
)

// Viewport is the zoom/pan transform applied to the wheel for rendering.
//
// Forward: screen = translate + center + scale*(local - center)
// Inverse: local  = center + (screen - translate - center)/scale
//
// That is, the wheel is scaled about its own center and then translated.
type Viewport struct {
	Scale      float64
	TranslateX float64 // Pan offset in screen pixels
	TranslateY float64
}

// NewViewport returns the identity transform.
func NewViewport() Viewport {
	return Viewport{Scale: 1}
}

// Reset restores the identity transform.
func (v *Viewport) Reset() {
	v.Scale = 1
	v.TranslateX = 0
	v.TranslateY = 0
}

// IsIdentity reports whether the transform is a no-op.
func (v Viewport) IsIdentity() bool {
	return v.Scale == 1 && v.TranslateX == 0 && v.TranslateY == 0
}

// ToScreen maps a wheel-local point to surface coordinates.
func (v Viewport) ToScreen(local, center geom.Point) geom.Point {
	return geom.Point{
		X: v.TranslateX + center.X + v.Scale*(local.X-center.X),
		Y: v.TranslateY + center.Y + v.Scale*(local.Y-center.Y),
	}
}

// ToLocal maps surface coordinates back into wheel-local space. It fails
// when the transform cannot be inverted.
func (v Viewport) ToLocal(screen, center geom.Point) (geom.Point, bool) {
	if v.Scale == 0 || math.IsNaN(v.Scale) || math.IsInf(v.Scale, 0) {
		return geom.Point{}, false
	}
	return geom.Point{
		X: center.X + (screen.X-v.TranslateX-center.X)/v.Scale,
		Y: center.Y + (screen.Y-v.TranslateY-center.Y)/v.Scale,
	}, true
}

// Pan moves the view by a screen delta.
func (v *Viewport) Pan(dx, dy float64) {
	v.TranslateX += dx
	v.TranslateY += dy
}

// ZoomBy multiplies the scale by factor and reports whether it changed.
func (v *Viewport) ZoomBy(factor float64) bool {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return false
	}
	return v.SetScale(v.Scale * factor)
}

// SetScale sets a clamped scale and reports whether it changed.
func (v *Viewport) SetScale(s float64) bool {
	s = ClampScale(s)
	if s == v.Scale {
		return false
	}
	v.Scale = s
	return true
}

// ClampScale bounds s to [MinScale, MaxScale].
func ClampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}
