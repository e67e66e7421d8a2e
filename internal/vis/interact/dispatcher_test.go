package interact

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/lifewheel/internal/core"
	"github.com/elektrokombinacija/lifewheel/internal/geom"
	"github.com/elektrokombinacija/lifewheel/internal/vis/observer"
	"github.com/elektrokombinacija/lifewheel/internal/vis/state"
)

type scoreEvent struct {
	SectorID string
	Level    int
}

type menuEvent struct {
	SectorID string
	X, Y     float64
}

type recorder struct {
	hovers []*core.HoverInfo
	scores []scoreEvent
	menus  []menuEvent
	views  []Viewport
}

func (r *recorder) OnHoverChange(info *core.HoverInfo) {
	r.hovers = append(r.hovers, info)
}

func (r *recorder) OnScoreChange(sectorID string, level int) {
	r.scores = append(r.scores, scoreEvent{sectorID, level})
}

func (r *recorder) OnContextMenuRequest(sectorID string, x, y float64) {
	r.menus = append(r.menus, menuEvent{sectorID, x, y})
}

func (r *recorder) OnViewportChange(scale, tx, ty float64) {
	r.views = append(r.views, Viewport{Scale: scale, TranslateX: tx, TranslateY: ty})
}

type toggleSurface struct {
	origin geom.Point
	ok     bool
}

func (s *toggleSurface) Origin() (geom.Point, bool) { return s.origin, s.ok }

func eightSectors() []core.Sector {
	out := make([]core.Sector, 8)
	for i := range out {
		out[i] = core.Sector{ID: fmt.Sprintf("s%d", i), Name: fmt.Sprintf("Sector %d", i), Color: core.PaletteColor(i)}
	}
	return out
}

func newTestDispatcher(t *testing.T, cfg Config, opts ...Option) (*Dispatcher, *recorder, *fakeClock) {
	t.Helper()
	rec := &recorder{}
	clock := newFakeClock()
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	d := NewDispatcher(cfg, rec, opts...)
	d.SetSectors(eightSectors())
	return d, rec, clock
}

// cell returns the screen point at the middle of ring level on sector i.
func cell(t *testing.T, d *Dispatcher, i, level int) geom.Point {
	t.Helper()
	local, ok := d.Wheel().PointFor(i, level)
	require.True(t, ok)
	p, ok := d.ScreenPoint(local)
	require.True(t, ok)
	return p
}

func click(d *Dispatcher, p geom.Point) {
	d.OnPointerDown(p.X, p.Y, ButtonPrimary)
	d.OnPointerUp(p.X, p.Y)
}

func TestClickScoresSector(t *testing.T) {
	d, rec, _ := newTestDispatcher(t, DefaultConfig())

	p := cell(t, d, 0, 7)
	assert.InDelta(t, 157.5, p.Sub(geom.Pt(450, 450)).Len(), 1e-9)

	click(d, p)
	assert.Equal(t, []scoreEvent{{"s0", 7}}, rec.scores)
	assert.Equal(t, Idle, d.State())
}

func TestSmallJitterIsStillClick(t *testing.T) {
	d, rec, _ := newTestDispatcher(t, DefaultConfig())
	p := cell(t, d, 3, 5)

	d.OnPointerDown(p.X, p.Y, ButtonPrimary)
	d.OnPointerMove(p.X+1, p.Y+1)
	d.OnPointerUp(p.X+1, p.Y+1)

	assert.Equal(t, []scoreEvent{{"s3", 5}}, rec.scores)
	assert.True(t, d.Viewport().IsIdentity())
}

func TestDragPansWithoutScoring(t *testing.T) {
	d, rec, _ := newTestDispatcher(t, DefaultConfig())
	p := cell(t, d, 3, 5)

	d.OnPointerDown(p.X, p.Y, ButtonPrimary)
	d.OnPointerMove(p.X+10, p.Y-4)
	assert.True(t, d.HasPanned())
	assert.Equal(t, Panning, d.State())
	d.OnPointerMove(p.X+30, p.Y-20)
	d.OnPointerUp(p.X+30, p.Y-20)

	assert.Empty(t, rec.scores)
	v := d.Viewport()
	assert.InDelta(t, 30, v.TranslateX, 1e-9)
	assert.InDelta(t, -20, v.TranslateY, 1e-9)
	require.NotEmpty(t, rec.views)
	assert.Equal(t, v, rec.views[len(rec.views)-1])
}

func TestSecondPanStartsFromCurrentTranslate(t *testing.T) {
	d, _, _ := newTestDispatcher(t, DefaultConfig())

	d.OnPointerDown(0, 0, ButtonPrimary)
	d.OnPointerMove(50, 0)
	d.OnPointerUp(50, 0)
	d.OnPointerDown(200, 200, ButtonPrimary)
	d.OnPointerMove(200, 260)
	d.OnPointerUp(200, 260)

	assert.Equal(t, 50.0, d.Viewport().TranslateX)
	assert.Equal(t, 60.0, d.Viewport().TranslateY)
}

func TestWheelZoomClamps(t *testing.T) {
	d, rec, _ := newTestDispatcher(t, DefaultConfig())

	d.OnWheelScroll(-1)
	assert.InDelta(t, 1.1, d.Viewport().Scale, 1e-12)
	d.OnWheelScroll(1)
	assert.InDelta(t, 1.0, d.Viewport().Scale, 1e-12)

	for i := 0; i < 50; i++ {
		d.OnWheelScroll(-120)
	}
	assert.Equal(t, MaxScale, d.Viewport().Scale)
	n := len(rec.views)
	d.OnWheelScroll(-120)
	assert.Len(t, rec.views, n, "no event once clamped")

	for i := 0; i < 100; i++ {
		d.OnWheelScroll(120)
	}
	assert.Equal(t, MinScale, d.Viewport().Scale)

	d.OnWheelScroll(0)
	assert.Equal(t, MinScale, d.Viewport().Scale)
}

func TestResetViewport(t *testing.T) {
	d, rec, _ := newTestDispatcher(t, DefaultConfig())
	d.ZoomIn()
	d.ZoomIn()
	d.OnPointerDown(10, 10, ButtonPrimary)
	d.OnPointerMove(70, 90)
	d.OnPointerUp(70, 90)
	require.False(t, d.Viewport().IsIdentity())

	d.ResetViewport()
	assert.Equal(t, Viewport{Scale: 1}, d.Viewport())
	assert.Equal(t, Viewport{Scale: 1}, rec.views[len(rec.views)-1])
}

func TestClickAfterZoomAndPan(t *testing.T) {
	d, rec, _ := newTestDispatcher(t, DefaultConfig(), WithSurface(FixedSurface{X: 40, Y: 25}))
	d.ZoomIn()
	d.ZoomIn()
	d.OnPointerDown(100, 100, ButtonPrimary)
	d.OnPointerMove(130, 80)
	d.OnPointerUp(130, 80)
	require.Empty(t, rec.scores)

	for _, tc := range []struct{ sector, level int }{{2, 4}, {6, 10}, {0, 1}} {
		click(d, cell(t, d, tc.sector, tc.level))
	}
	assert.Equal(t, []scoreEvent{{"s2", 4}, {"s6", 10}, {"s0", 1}}, rec.scores)
}

func TestEndToEndUpdatesOnlyTargetSector(t *testing.T) {
	st := state.NewState(core.NewSnapshot(eightSectors(), core.ScoreBook{}, time.Now()), core.DefaultRingCount, nil)
	clock := newFakeClock()
	d := NewDispatcher(DefaultConfig(), observer.NewStateObserver(st), WithClock(clock.Now))
	d.SetSectors(st.Sectors())

	click(d, cell(t, d, 0, 7))
	assert.Equal(t, map[string]int{"s0": 7}, st.CurrentScores())

	d.ZoomIn()
	assert.InDelta(t, 1.1, st.View.Scale, 1e-12)
}

func TestLongPressOpensMenu(t *testing.T) {
	d, rec, clock := newTestDispatcher(t, DefaultConfig())
	p := cell(t, d, 4, 6)

	d.OnTouchStart([]Touch{{ID: 1, X: p.X, Y: p.Y}})
	assert.Equal(t, LongPressPending, d.State())
	deadline, ok := d.LongPressDeadline()
	require.True(t, ok)
	assert.Equal(t, clock.Now().Add(DefaultLongPressDelay), deadline)

	clock.Advance(599 * time.Millisecond)
	assert.False(t, d.Tick())
	clock.Advance(time.Millisecond)
	assert.True(t, d.Tick())
	assert.Equal(t, []menuEvent{{"s4", p.X, p.Y}}, rec.menus)

	d.OnTouchEnd(nil)
	assert.Empty(t, rec.scores, "long press does not also score")
	assert.False(t, d.Tick())
}

func TestLongPressCancelledByMove(t *testing.T) {
	d, rec, clock := newTestDispatcher(t, DefaultConfig())
	p := cell(t, d, 4, 6)

	d.OnTouchStart([]Touch{{ID: 1, X: p.X, Y: p.Y}})
	d.OnTouchMove([]Touch{{ID: 1, X: p.X + 5, Y: p.Y}})
	assert.Equal(t, Panning, d.State())
	_, armed := d.LongPressDeadline()
	assert.False(t, armed)

	clock.Advance(time.Second)
	assert.False(t, d.Tick())
	d.OnTouchEnd(nil)

	assert.Empty(t, rec.menus)
	assert.Empty(t, rec.scores)
	assert.InDelta(t, 5, d.Viewport().TranslateX, 1e-9)
}

func TestTouchTapScores(t *testing.T) {
	d, rec, clock := newTestDispatcher(t, DefaultConfig())
	p := cell(t, d, 7, 2)

	d.OnTouchStart([]Touch{{ID: 9, X: p.X, Y: p.Y}})
	clock.Advance(200 * time.Millisecond)
	d.OnTouchEnd(nil)

	assert.Equal(t, []scoreEvent{{"s7", 2}}, rec.scores)
	clock.Advance(time.Second)
	assert.False(t, d.Tick(), "released press leaves no timer behind")
	assert.Empty(t, rec.menus)
}

func TestPinchZoomThenLiftIgnoresRemainingFinger(t *testing.T) {
	d, rec, clock := newTestDispatcher(t, DefaultConfig())

	a := Touch{ID: 1, X: 400, Y: 450}
	b := Touch{ID: 2, X: 500, Y: 450}
	d.OnTouchStart([]Touch{a})
	d.OnTouchStart([]Touch{a, b})
	assert.Equal(t, PinchZooming, d.State())

	b.X = 600
	d.OnTouchMove([]Touch{a, b})
	assert.InDelta(t, 2.0, d.Viewport().Scale, 1e-12)

	d.OnTouchEnd([]Touch{a})
	assert.Equal(t, Idle, d.State())
	d.OnTouchMove([]Touch{{ID: 1, X: 300, Y: 300}})
	d.OnTouchEnd(nil)

	clock.Advance(time.Second)
	assert.False(t, d.Tick())
	assert.Empty(t, rec.scores)
	assert.Empty(t, rec.menus)
	assert.Equal(t, 0.0, d.Viewport().TranslateX)
	assert.Equal(t, 0.0, d.Viewport().TranslateY)
}

func TestPinchKeepsScaleWhenOneOfThreeFingersLifts(t *testing.T) {
	d, _, _ := newTestDispatcher(t, DefaultConfig())

	a := Touch{ID: 1, X: 100, Y: 100}
	b := Touch{ID: 2, X: 110, Y: 100}
	c := Touch{ID: 3, X: 400, Y: 100}
	d.OnTouchStart([]Touch{a})
	d.OnTouchStart([]Touch{a, b})
	d.OnTouchStart([]Touch{a, b, c})
	require.Equal(t, PinchZooming, d.State())

	d.OnTouchEnd([]Touch{b, c})
	assert.Equal(t, PinchZooming, d.State())
	d.OnTouchMove([]Touch{b, c})
	assert.InDelta(t, 1.0, d.Viewport().Scale, 1e-12)

	c.X = 690
	d.OnTouchMove([]Touch{b, c})
	assert.InDelta(t, 2.0, d.Viewport().Scale, 1e-12)
}

func TestContextMenu(t *testing.T) {
	d, rec, _ := newTestDispatcher(t, DefaultConfig())
	p := cell(t, d, 1, 3)

	d.OnPointerDown(p.X, p.Y, ButtonSecondary)
	assert.Equal(t, Idle, d.State(), "secondary press does not start a pan")

	d.OnContextMenu(p.X, p.Y)
	assert.Equal(t, []menuEvent{{"s1", p.X, p.Y}}, rec.menus)

	d.OnContextMenu(0, 0)
	assert.Len(t, rec.menus, 1, "no menu off the wheel")
}

func TestContextMenuSuppressesClick(t *testing.T) {
	d, rec, _ := newTestDispatcher(t, DefaultConfig())
	p := cell(t, d, 1, 3)

	d.OnPointerDown(p.X, p.Y, ButtonPrimary)
	d.OnContextMenu(p.X, p.Y)
	d.OnPointerUp(p.X, p.Y)

	assert.Len(t, rec.menus, 1)
	assert.Empty(t, rec.scores)

	click(d, p)
	assert.Equal(t, []scoreEvent{{"s1", 3}}, rec.scores, "the next press is unaffected")
}

func TestHover(t *testing.T) {
	d, rec, _ := newTestDispatcher(t, DefaultConfig())
	p := cell(t, d, 1, 3)

	d.OnPointerMove(p.X, p.Y)
	require.Len(t, rec.hovers, 1)
	assert.Equal(t, &core.HoverInfo{SectorID: "s1", Level: 3}, rec.hovers[0])

	d.OnPointerMove(p.X+1, p.Y)
	assert.Len(t, rec.hovers, 1, "same cell reports no change")

	d.OnPointerMove(0, 0)
	require.Len(t, rec.hovers, 2)
	assert.Nil(t, rec.hovers[1])
	assert.Nil(t, d.Hover())

	d.OnPointerMove(p.X, p.Y)
	d.OnPointerLeave()
	require.Len(t, rec.hovers, 4)
	assert.Nil(t, rec.hovers[3])
}

func TestZoomRefreshesHover(t *testing.T) {
	d, rec, _ := newTestDispatcher(t, DefaultConfig())
	p := cell(t, d, 1, 3)

	d.OnPointerMove(p.X, p.Y)
	require.Len(t, rec.hovers, 1)

	// Scaling about the center pulls the resting pointer one ring inward.
	d.ZoomIn()
	d.ZoomIn()
	require.Len(t, rec.hovers, 2)
	assert.Equal(t, &core.HoverInfo{SectorID: "s1", Level: 4}, rec.hovers[1])

	d.OnPointerLeave()
	n := len(rec.hovers)
	d.OnWheelScroll(-1)
	assert.Len(t, rec.hovers, n, "no hover once the pointer has left")
}

func TestHoverClearedWhilePanning(t *testing.T) {
	d, rec, _ := newTestDispatcher(t, DefaultConfig())
	p := cell(t, d, 5, 5)

	d.OnPointerMove(p.X, p.Y)
	d.OnPointerDown(p.X, p.Y, ButtonPrimary)
	d.OnPointerMove(p.X+20, p.Y)

	assert.Nil(t, d.Hover())
	require.Len(t, rec.hovers, 2)
	assert.Nil(t, rec.hovers[1])
}

func TestSetSectorsDropsStaleHover(t *testing.T) {
	d, rec, _ := newTestDispatcher(t, DefaultConfig())
	p := cell(t, d, 7, 5)
	d.OnPointerMove(p.X, p.Y)
	require.NotNil(t, d.Hover())

	d.SetSectors(eightSectors()[:4])
	assert.Nil(t, d.Hover())
	assert.Nil(t, rec.hovers[len(rec.hovers)-1])
}

func TestSurfaceUnavailable(t *testing.T) {
	surf := &toggleSurface{}
	d, rec, _ := newTestDispatcher(t, DefaultConfig(), WithSurface(surf))
	p, ok := d.Wheel().PointFor(0, 4)
	require.True(t, ok)

	click(d, p)
	d.OnPointerMove(p.X, p.Y)
	assert.Empty(t, rec.scores)
	assert.Empty(t, rec.hovers)
	_, ok = d.HitTest(p.X, p.Y)
	assert.False(t, ok)

	surf.ok = true
	click(d, p)
	assert.Equal(t, []scoreEvent{{"s0", 4}}, rec.scores)
}

func TestBasicGestures(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gestures = BasicGestures
	d, rec, clock := newTestDispatcher(t, cfg)
	p := cell(t, d, 2, 2)

	d.OnTouchStart([]Touch{{ID: 1, X: p.X, Y: p.Y}})
	assert.Equal(t, Panning, d.State())
	clock.Advance(time.Second)
	assert.False(t, d.Tick())
	d.OnTouchEnd(nil)
	assert.Equal(t, []scoreEvent{{"s2", 2}}, rec.scores)

	d.OnTouchStart([]Touch{{ID: 1, X: 400, Y: 450}, {ID: 2, X: 500, Y: 450}})
	assert.Equal(t, Idle, d.State())
	d.OnTouchMove([]Touch{{ID: 1, X: 300, Y: 450}, {ID: 2, X: 600, Y: 450}})
	assert.Equal(t, 1.0, d.Viewport().Scale)

	d.OnContextMenu(p.X, p.Y)
	assert.Empty(t, rec.menus)
}

func TestNoSectorsNoScore(t *testing.T) {
	d, rec, _ := newTestDispatcher(t, DefaultConfig())
	d.SetSectors(nil)

	click(d, geom.Pt(450, 300))
	d.OnContextMenu(450, 300)
	assert.Empty(t, rec.scores)
	assert.Empty(t, rec.menus)
}

func TestNilObserver(t *testing.T) {
	d := NewDispatcher(DefaultConfig(), nil)
	d.SetSectors(eightSectors())
	assert.NotPanics(t, func() {
		click(d, geom.Pt(450, 300))
		d.OnWheelScroll(-1)
	})
}
