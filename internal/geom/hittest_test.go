package geom

import (
	"math"
	"testing"
)

func testWheel(n int) Wheel {
	return NewWheel(Pt(450, 450), 450, 10, makeSectors(n), DefaultGap)
}

func TestHitTestNoSectors(t *testing.T) {
	w := testWheel(0)
	if _, ok := w.HitTest(Pt(450, 300)); ok {
		t.Errorf("wheel without sectors should never hit")
	}
}

func TestHitTestOutsideRadius(t *testing.T) {
	w := testWheel(8)
	if _, ok := w.HitTest(Pt(450, -1)); ok {
		t.Errorf("point beyond the rim should not hit")
	}
	if _, ok := w.HitTest(Pt(math.NaN(), 10)); ok {
		t.Errorf("NaN point should not hit")
	}
	if _, ok := w.HitTest(Pt(math.Inf(1), 10)); ok {
		t.Errorf("infinite point should not hit")
	}
}

func TestHitTestEdgeIsLevelZero(t *testing.T) {
	// Three sectors: the middle one spans 31..149 degrees, so straight
	// down from the center lands inside it.
	w := testWheel(3)
	hit, ok := w.HitTest(Pt(450, 900))
	if !ok {
		t.Fatalf("point on the rim should hit")
	}
	if hit.Level != 0 || hit.SectorID != "s1" {
		t.Errorf("rim hit = %+v, want s1 level 0", hit)
	}
}

func TestHitTestGap(t *testing.T) {
	w := testWheel(8)
	// The gap between sector 0 and 1 is centered on -45 degrees.
	p := PolarToCartesian(w.Center, 200, -45)
	if hit, ok := w.HitTest(p); ok {
		t.Errorf("gap point hit %+v", hit)
	}
}

func TestHitTestEverySectorAndLevel(t *testing.T) {
	w := testWheel(8)
	for i := range w.Sectors {
		for level := 1; level <= w.RingCount; level++ {
			p, ok := w.PointFor(i, level)
			if !ok {
				t.Fatalf("PointFor(%d, %d) failed", i, level)
			}
			hit, ok := w.HitTest(p)
			if !ok {
				t.Errorf("sector %d level %d: no hit", i, level)
				continue
			}
			if hit.Index != i || hit.Level != level {
				t.Errorf("sector %d level %d: got index %d level %d", i, level, hit.Index, hit.Level)
			}
		}
	}
}

func TestHitTestNearCenter(t *testing.T) {
	w := testWheel(8)
	p := PolarToCartesian(w.Center, 1e-6, w.Sectors[5].Mid)
	hit, ok := w.HitTest(p)
	if !ok || hit.Level != 10 || hit.Index != 5 {
		t.Errorf("near-center hit = %+v, %v; want sector 5 level 10", hit, ok)
	}

	// The exact center has angle 0, which falls in the gap at 3 o'clock.
	if hit, ok := w.HitTest(w.Center); ok {
		t.Errorf("exact center hit %+v, expected the gap", hit)
	}
}

func TestHitTestSkipsDegenerate(t *testing.T) {
	w := NewWheel(Pt(0, 0), 100, 10, makeSectors(200), DefaultGap)
	for _, a := range []float64{0, 90, 180, 270} {
		if hit, ok := w.HitTest(PolarToCartesian(w.Center, 50, a)); ok {
			t.Errorf("degenerate layout hit %+v at %v", hit, a)
		}
	}
}

func TestPointForBounds(t *testing.T) {
	w := testWheel(3)
	if _, ok := w.PointFor(3, 1); ok {
		t.Errorf("index out of range should fail")
	}
	if _, ok := w.PointFor(0, 0); ok {
		t.Errorf("level 0 has no ring")
	}
	if _, ok := w.PointFor(0, 11); ok {
		t.Errorf("level beyond ring count should fail")
	}
}
