package geom

import "github.com/elektrokombinacija/lifewheel/internal/core"

// DefaultGap is the angular gap between sectors in degrees.
const DefaultGap = 2.0

// StartAngle places the first sector at 12 o'clock.
const StartAngle = -90.0

// SectorAngles is a sector with its angular span.
type SectorAngles struct {
	core.Sector
	A0, A1   float64 // Start/end, monotonically increasing across a layout
	Mid      float64 // Midpoint of A0..A1
	A0n, A1n float64 // A0, A1 folded into [0, 360)
}

// Span returns the angular width in degrees. It can be zero or negative
// when the gaps alone consume the whole circle.
func (s SectorAngles) Span() float64 {
	return s.A1 - s.A0
}

// Degenerate reports whether the sector has no drawable or hittable area.
func (s SectorAngles) Degenerate() bool {
	return s.Span() <= 0
}

// Layout assigns equal spans separated by gap degrees, starting at 12
// o'clock and preserving sector order. Spans are not clamped: if
// len(sectors)*gap >= 360 they come out zero or negative.
func Layout(sectors []core.Sector, gap float64) []SectorAngles {
	n := len(sectors)
	if n == 0 {
		return nil
	}

	span := (360 - float64(n)*gap) / float64(n)
	start := StartAngle

	out := make([]SectorAngles, n)
	for i, sec := range sectors {
		a0 := start + gap/2
		a1 := a0 + span
		out[i] = SectorAngles{
			Sector: sec,
			A0:     a0,
			A1:     a1,
			Mid:    (a0 + a1) / 2,
			A0n:    NormDeg(a0),
			A1n:    NormDeg(a1),
		}
		start += span + gap
	}
	return out
}
