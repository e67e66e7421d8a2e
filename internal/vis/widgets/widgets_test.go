package widgets

import (
	"image"
	"testing"
	"time"

	"gioui.org/f32"
	"gioui.org/io/pointer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/lifewheel/internal/core"
	"github.com/elektrokombinacija/lifewheel/internal/vis/interact"
	"github.com/elektrokombinacija/lifewheel/internal/vis/observer"
	"github.com/elektrokombinacija/lifewheel/internal/vis/state"
)

var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newTestState(t *testing.T) *state.State {
	t.Helper()
	sectors := core.Sectors{
		{ID: "a", Name: "Alpha", Color: "#ff0000"},
		{ID: "b", Name: "Beta", Color: "#00ff00"},
		{ID: "c", Name: "Gamma", Color: "#0000ff"},
	}
	snap := core.NewSnapshot(sectors, core.ScoreBook{}, fixedNow)
	return state.NewState(snap, 10, func() time.Time { return fixedNow })
}

// newTestWheel returns a wheel widget laid out on a 900x900 area.
func newTestWheel(t *testing.T) (*Wheel, *state.State) {
	t.Helper()
	st := newTestState(t)
	w := NewWheel(st, interact.DefaultConfig(), observer.NewStateObserver(st))
	w.fit(image.Pt(900, 900))
	w.disp.SetSectors(st.Sectors())
	w.revision = st.Revision
	return w, st
}

func cellPos(t *testing.T, w *Wheel, i, level int) f32.Point {
	t.Helper()
	p, ok := w.disp.Wheel().PointFor(i, level)
	require.True(t, ok)
	return f32.Pt(float32(p.X), float32(p.Y))
}

func TestWheelOrigin(t *testing.T) {
	st := newTestState(t)
	w := NewWheel(st, interact.DefaultConfig(), nil)
	_, ok := w.Origin()
	assert.False(t, ok, "no origin before layout")

	w.fit(image.Pt(300, 200))
	_, ok = w.Origin()
	assert.True(t, ok)
	assert.Equal(t, 76.0, w.disp.Wheel().Radius)
	assert.Equal(t, 150.0, w.disp.Wheel().Center.X)
}

func TestWheelMouseClickScores(t *testing.T) {
	w, st := newTestWheel(t)
	pos := cellPos(t, w, 1, 6)

	w.handleMouse(pointer.Event{Kind: pointer.Press, Buttons: pointer.ButtonPrimary, Position: pos})
	w.handleMouse(pointer.Event{Kind: pointer.Release, Position: pos})

	assert.Equal(t, 6, st.Score("b"))
	assert.True(t, st.Dirty)
}

func TestWheelMouseDragPans(t *testing.T) {
	w, st := newTestWheel(t)
	pos := cellPos(t, w, 0, 3)

	w.handleMouse(pointer.Event{Kind: pointer.Press, Buttons: pointer.ButtonPrimary, Position: pos})
	w.handleMouse(pointer.Event{Kind: pointer.Drag, Position: pos.Add(f32.Pt(40, 0))})
	w.handleMouse(pointer.Event{Kind: pointer.Release, Position: pos.Add(f32.Pt(40, 0))})

	assert.Equal(t, 0, st.Score("a"))
	assert.Equal(t, 40.0, st.View.TranslateX)
}

func TestWheelSecondaryOpensMenu(t *testing.T) {
	w, st := newTestWheel(t)
	pos := cellPos(t, w, 2, 4)

	w.handleMouse(pointer.Event{Kind: pointer.Press, Buttons: pointer.ButtonSecondary, Position: pos})
	require.NotNil(t, st.Menu)
	assert.Equal(t, "c", st.Menu.SectorID)

	// Any later press closes it.
	w.handleMouse(pointer.Event{Kind: pointer.Press, Buttons: pointer.ButtonPrimary, Position: pos})
	assert.Nil(t, st.Menu)
}

func TestWheelScrollZooms(t *testing.T) {
	w, st := newTestWheel(t)
	w.handleMouse(pointer.Event{Kind: pointer.Scroll, Scroll: f32.Pt(0, -3)})
	assert.InDelta(t, 1.1, st.View.Scale, 1e-9)
	w.handleMouse(pointer.Event{Kind: pointer.Scroll, Scroll: f32.Pt(0, 3)})
	assert.InDelta(t, 1.0, st.View.Scale, 1e-9)
}

func TestWheelTouchTapAndPinch(t *testing.T) {
	w, st := newTestWheel(t)
	pos := cellPos(t, w, 0, 9)

	w.handleTouch(pointer.Event{Kind: pointer.Press, Source: pointer.Touch, PointerID: 1, Position: pos})
	w.handleTouch(pointer.Event{Kind: pointer.Release, Source: pointer.Touch, PointerID: 1, Position: pos})
	assert.Equal(t, 9, st.Score("a"))
	assert.Empty(t, w.touches)

	// Two fingers spreading from 100 to 200 px apart double the scale.
	w.handleTouch(pointer.Event{Kind: pointer.Press, Source: pointer.Touch, PointerID: 1, Position: f32.Pt(400, 450)})
	w.handleTouch(pointer.Event{Kind: pointer.Press, Source: pointer.Touch, PointerID: 2, Position: f32.Pt(500, 450)})
	w.handleTouch(pointer.Event{Kind: pointer.Drag, Source: pointer.Touch, PointerID: 2, Position: f32.Pt(600, 450)})
	assert.InDelta(t, 2.0, st.View.Scale, 1e-9)

	w.handleTouch(pointer.Event{Kind: pointer.Release, Source: pointer.Touch, PointerID: 1, Position: f32.Pt(400, 450)})
	require.Len(t, w.touches, 1)
	assert.Equal(t, 2, w.touches[0].ID)

	w.handleTouch(pointer.Event{Kind: pointer.Cancel, Source: pointer.Touch})
	assert.Empty(t, w.touches)
	assert.Equal(t, interact.Idle, w.disp.State())
}

func TestMenuApply(t *testing.T) {
	st := newTestState(t)
	m := NewMenu(st)
	require.NoError(t, st.SetScore("b", 5))

	assert.NoError(t, m.Apply(MenuClearScore), "no menu open is a no-op")

	st.OpenMenu("b", 10, 10)
	require.NoError(t, m.Apply(MenuClearScore))
	assert.Equal(t, 0, st.Score("b"))
	assert.Nil(t, st.Menu)

	st.OpenMenu("b", 10, 10)
	require.NoError(t, m.Apply(MenuMoveLeft))
	assert.Equal(t, 0, st.Sectors().Index("b"))

	st.OpenMenu("b", 10, 10)
	require.NoError(t, m.Apply(MenuMoveRight))
	assert.Equal(t, 1, st.Sectors().Index("b"))

	st.OpenMenu("c", 10, 10)
	require.NoError(t, m.Apply(MenuClose))
	assert.Nil(t, st.Menu)
	assert.Len(t, st.Sectors(), 3)

	st.OpenMenu("c", 10, 10)
	require.NoError(t, m.Apply(MenuDelete))
	assert.Len(t, st.Sectors(), 2)
	assert.True(t, st.Undo())
	assert.Len(t, st.Sectors(), 3)
}

func TestDayIndex(t *testing.T) {
	tests := []struct {
		x     float64
		count int
		want  int
	}{
		{0, 7, 0},
		{20, 7, 0},
		{47, 7, 0},
		{48, 7, 1},
		{20 + 28*6 + 5, 7, 6},
		{5000, 7, 6},
		{30, 0, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dayIndex(tt.x, 20, 28, tt.count), "x=%v", tt.x)
	}
}

func TestNextSectorName(t *testing.T) {
	st := newTestState(t)
	assert.Equal(t, "Sector 4", NextSectorName(st))

	_, err := st.AddSector("Sector 4", "")
	require.NoError(t, err)
	assert.Equal(t, "Sector 5", NextSectorName(st))

	require.NoError(t, st.RenameSector("a", "Sector 5"))
	assert.Equal(t, "Sector 6", NextSectorName(st))
}

func TestAddU8(t *testing.T) {
	assert.Equal(t, uint8(255), addU8(250, 15))
	assert.Equal(t, uint8(70), addU8(55, 15))
	assert.Equal(t, uint8(255), addU8(255, 0))
}
