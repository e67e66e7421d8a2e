package interact

import (
	"math"
	"time"

	"github.com/elektrokombinacija/lifewheel/internal/core"
	"github.com/elektrokombinacija/lifewheel/internal/geom"
	"github.com/elektrokombinacija/lifewheel/internal/vis/observer"
)

// Defaults for Config.
const (
	DefaultPanThreshold   = 2.0 // pixels
	DefaultLongPressDelay = 600 * time.Millisecond
)

// Config is the wheel geometry and gesture setup of a Dispatcher.
type Config struct {
	Center         geom.Point // Wheel center in wheel-local coordinates
	Radius         float64
	RingCount      int
	Gap            float64 // Degrees between sectors
	Gestures       Gestures
	PanThreshold   float64 // Movement that turns a press into a pan
	LongPressDelay time.Duration
	ZoomStep       float64 // Scale factor per wheel step
}

// DefaultConfig returns a 900x900 wheel with every gesture enabled.
func DefaultConfig() Config {
	return Config{
		Center:         geom.Pt(450, 450),
		Radius:         450,
		RingCount:      core.DefaultRingCount,
		Gap:            geom.DefaultGap,
		Gestures:       AllGestures,
		PanThreshold:   DefaultPanThreshold,
		LongPressDelay: DefaultLongPressDelay,
		ZoomStep:       ZoomStep,
	}
}

// Surface locates the wheel's drawing surface on screen. Origin fails when
// the host cannot currently map coordinates, e.g. while detached.
type Surface interface {
	Origin() (geom.Point, bool)
}

// FixedSurface is a surface at a constant screen offset.
type FixedSurface geom.Point

// Origin returns the fixed offset.
func (f FixedSurface) Origin() (geom.Point, bool) {
	return geom.Point(f), true
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithSurface sets where the wheel sits on screen. The default is the
// screen origin.
func WithSurface(s Surface) Option {
	return func(d *Dispatcher) { d.surface = s }
}

// WithClock replaces time.Now for the long-press timer.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// Dispatcher translates raw input events into hover, score, context menu
// and viewport events. It owns all transient interaction state and must be
// driven from a single goroutine.
type Dispatcher struct {
	cfg     Config
	wheel   geom.Wheel
	view    Viewport
	obs     observer.Observer
	surface Surface
	now     func() time.Time
	timer   *LongPressTimer

	// Gesture state
	state          GestureState
	anchor         geom.Point // Screen position where the press started
	startTranslate geom.Point // Translate at press start
	last           geom.Point // Latest screen position of the press
	hasPanned      bool
	suppressClick  bool // A context menu consumed this press
	pinchDistance  float64
	pressHandle    TimerHandle

	// Last mouse position over the widget, for re-hovering after a zoom
	pointer    geom.Point
	hasPointer bool

	hover *core.HoverInfo
}

// NewDispatcher creates a dispatcher reporting to obs.
func NewDispatcher(cfg Config, obs observer.Observer, opts ...Option) *Dispatcher {
	if obs == nil {
		obs = observer.Nop{}
	}
	if cfg.PanThreshold <= 0 {
		cfg.PanThreshold = DefaultPanThreshold
	}
	if cfg.LongPressDelay <= 0 {
		cfg.LongPressDelay = DefaultLongPressDelay
	}
	if cfg.ZoomStep <= 1 {
		cfg.ZoomStep = ZoomStep
	}

	d := &Dispatcher{
		cfg:     cfg,
		view:    NewViewport(),
		obs:     obs,
		surface: FixedSurface{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.timer = NewLongPressTimer(cfg.LongPressDelay, d.now)
	d.wheel = geom.NewWheel(cfg.Center, cfg.Radius, cfg.RingCount, nil, cfg.Gap)
	return d
}

// SetSectors lays out a new sector sequence. Call it whenever sectors are
// added, removed, reordered or recolored.
func (d *Dispatcher) SetSectors(sectors []core.Sector) {
	d.wheel = geom.NewWheel(d.cfg.Center, d.cfg.Radius, d.cfg.RingCount, sectors, d.cfg.Gap)
	if d.hover != nil {
		if _, ok := core.Sectors(sectors).Find(d.hover.SectorID); !ok {
			d.setHover(nil)
		}
	}
}

// SetGeometry moves or resizes the wheel, keeping its sectors.
func (d *Dispatcher) SetGeometry(center geom.Point, radius float64) {
	if center == d.cfg.Center && radius == d.cfg.Radius {
		return
	}
	d.cfg.Center = center
	d.cfg.Radius = radius
	d.wheel.Center = center
	d.wheel.Radius = radius
}

// Wheel returns the current layout.
func (d *Dispatcher) Wheel() geom.Wheel { return d.wheel }

// Viewport returns the current transform.
func (d *Dispatcher) Viewport() Viewport { return d.view }

// State returns the gesture state.
func (d *Dispatcher) State() GestureState { return d.state }

// HasPanned reports whether the active press has turned into a pan.
func (d *Dispatcher) HasPanned() bool { return d.hasPanned }

// Hover returns the hovered sector and level, or nil.
func (d *Dispatcher) Hover() *core.HoverInfo { return d.hover }

// Gestures returns the enabled gesture set.
func (d *Dispatcher) Gestures() Gestures { return d.cfg.Gestures }

// LongPressDeadline reports when Tick should next be called.
func (d *Dispatcher) LongPressDeadline() (time.Time, bool) {
	return d.timer.Deadline()
}

// HitTest maps a screen point through the viewport onto the wheel.
func (d *Dispatcher) HitTest(x, y float64) (geom.Hit, bool) {
	local, ok := d.toLocal(x, y)
	if !ok {
		return geom.Hit{}, false
	}
	return d.wheel.HitTest(local)
}

// ScreenPoint maps a wheel-local point to screen coordinates.
func (d *Dispatcher) ScreenPoint(local geom.Point) (geom.Point, bool) {
	origin, ok := d.surface.Origin()
	if !ok {
		return geom.Point{}, false
	}
	return d.view.ToScreen(local, d.cfg.Center).Add(origin), true
}

func (d *Dispatcher) toLocal(x, y float64) (geom.Point, bool) {
	origin, ok := d.surface.Origin()
	if !ok {
		return geom.Point{}, false
	}
	return d.view.ToLocal(geom.Pt(x, y).Sub(origin), d.cfg.Center)
}

// OnPointerMove pans an active drag or updates the hover.
func (d *Dispatcher) OnPointerMove(x, y float64) {
	p := geom.Pt(x, y)
	d.pointer, d.hasPointer = p, true
	switch d.state {
	case Panning, LongPressPending:
		d.drag(p)
		if d.hasPanned {
			d.setHover(nil)
			return
		}
	case PinchZooming:
		return
	}
	d.updateHover(x, y)
}

// OnPointerDown starts a pan candidate for the primary button.
func (d *Dispatcher) OnPointerDown(x, y float64, button Button) {
	if button != ButtonPrimary {
		return
	}
	d.begin(geom.Pt(x, y), Panning)
}

// OnPointerUp ends the press. A press that never moved past the pan
// threshold is a click and scores the sector under the pointer.
func (d *Dispatcher) OnPointerUp(x, y float64) {
	d.release(geom.Pt(x, y))
}

// OnPointerLeave abandons any press and clears the hover.
func (d *Dispatcher) OnPointerLeave() {
	if d.state == Panning || d.state == LongPressPending {
		d.reset()
	}
	d.hasPointer = false
	d.setHover(nil)
}

// OnWheelScroll zooms out for positive deltaY and in for negative.
func (d *Dispatcher) OnWheelScroll(deltaY float64) {
	if !d.cfg.Gestures.Has(GestureWheelZoom) || deltaY == 0 || math.IsNaN(deltaY) {
		return
	}
	if deltaY > 0 {
		d.zoomBy(1 / d.cfg.ZoomStep)
	} else {
		d.zoomBy(d.cfg.ZoomStep)
	}
}

// ZoomIn zooms in one step.
func (d *Dispatcher) ZoomIn() { d.zoomBy(d.cfg.ZoomStep) }

// ZoomOut zooms out one step.
func (d *Dispatcher) ZoomOut() { d.zoomBy(1 / d.cfg.ZoomStep) }

// OnTouchStart handles the full list of active touches after a finger
// lands. One touch behaves like a mouse press plus long-press, two drive
// a pinch.
func (d *Dispatcher) OnTouchStart(touches []Touch) {
	switch len(touches) {
	case 0:
		return
	case 1:
		if d.state != Idle {
			return
		}
		p := geom.Pt(touches[0].X, touches[0].Y)
		if d.cfg.Gestures.Has(GestureLongPress) {
			d.begin(p, LongPressPending)
			d.pressHandle = d.timer.Start()
		} else {
			d.begin(p, Panning)
		}
	default:
		d.timer.Cancel()
		d.setHover(nil)
		if !d.cfg.Gestures.Has(GesturePinch) {
			d.reset()
			return
		}
		d.state = PinchZooming
		d.hasPanned = false
		d.pinchDistance = touchDistance(touches[0], touches[1])
	}
}

// OnTouchMove handles movement of the active touches.
func (d *Dispatcher) OnTouchMove(touches []Touch) {
	switch d.state {
	case PinchZooming:
		if len(touches) < 2 {
			return
		}
		dist := touchDistance(touches[0], touches[1])
		if d.pinchDistance > 0 && dist > 0 {
			d.zoomBy(dist / d.pinchDistance)
		}
		d.pinchDistance = dist
	case Panning, LongPressPending:
		if len(touches) != 1 {
			return
		}
		d.drag(geom.Pt(touches[0].X, touches[0].Y))
	}
}

// OnTouchEnd handles the touches still down after a finger lifts.
func (d *Dispatcher) OnTouchEnd(remaining []Touch) {
	switch d.state {
	case PinchZooming:
		if len(remaining) < 2 {
			// The remaining finger does not pan: it would jump from the
			// pinch midpoint to wherever it is now.
			d.reset()
			return
		}
		// A different pair now drives the pinch.
		d.pinchDistance = touchDistance(remaining[0], remaining[1])
	case Panning, LongPressPending:
		if len(remaining) == 0 {
			d.release(d.last)
		}
	}
}

// OnTouchCancel abandons any touch gesture without scoring.
func (d *Dispatcher) OnTouchCancel() {
	d.reset()
	d.setHover(nil)
}

// OnContextMenu requests a sector menu at the pointer. The press that led
// here, if any, will not also score.
func (d *Dispatcher) OnContextMenu(x, y float64) {
	if !d.cfg.Gestures.Has(GestureContextMenu) {
		return
	}
	d.timer.Cancel()
	if d.state != Idle {
		d.suppressClick = true
	}
	d.openMenu(x, y)
}

// Tick fires an expired long-press. The host calls it from its event
// loop, at the latest when LongPressDeadline passes. It reports whether a
// long-press fired.
func (d *Dispatcher) Tick() bool {
	h, ok := d.timer.Expired()
	if !ok || h != d.pressHandle || d.state != LongPressPending {
		return false
	}
	anchor := d.anchor
	d.reset()
	if d.cfg.Gestures.Has(GestureContextMenu) {
		d.openMenu(anchor.X, anchor.Y)
	}
	return true
}

// ResetViewport returns the transform to identity.
func (d *Dispatcher) ResetViewport() {
	d.view.Reset()
	d.emitViewport()
}

func (d *Dispatcher) begin(p geom.Point, st GestureState) {
	d.timer.Cancel()
	d.state = st
	d.anchor = p
	d.last = p
	d.startTranslate = geom.Pt(d.view.TranslateX, d.view.TranslateY)
	d.hasPanned = false
	d.suppressClick = false
}

func (d *Dispatcher) reset() {
	d.timer.Cancel()
	d.state = Idle
	d.hasPanned = false
	d.suppressClick = false
	d.pinchDistance = 0
}

func (d *Dispatcher) drag(p geom.Point) {
	d.last = p
	delta := p.Sub(d.anchor)
	if !d.hasPanned {
		if delta.Len() <= d.cfg.PanThreshold {
			return
		}
		d.hasPanned = true
		d.timer.Cancel()
		d.state = Panning
	}
	if !d.cfg.Gestures.Has(GesturePan) {
		return
	}
	d.view.TranslateX = d.startTranslate.X + delta.X
	d.view.TranslateY = d.startTranslate.Y + delta.Y
	d.emitViewport()
}

func (d *Dispatcher) release(p geom.Point) {
	if d.state != Panning && d.state != LongPressPending {
		return
	}
	click := !d.hasPanned && !d.suppressClick && p.Sub(d.anchor).Len() <= d.cfg.PanThreshold
	d.reset()
	if !click {
		return
	}
	hit, ok := d.HitTest(p.X, p.Y)
	if !ok {
		return
	}
	d.obs.OnScoreChange(hit.SectorID, hit.Level)
}

func (d *Dispatcher) openMenu(x, y float64) {
	hit, ok := d.HitTest(x, y)
	if !ok {
		return
	}
	d.obs.OnContextMenuRequest(hit.SectorID, x, y)
}

func (d *Dispatcher) updateHover(x, y float64) {
	if !d.cfg.Gestures.Has(GestureHover) {
		return
	}
	hit, ok := d.HitTest(x, y)
	if !ok {
		d.setHover(nil)
		return
	}
	d.setHover(&core.HoverInfo{SectorID: hit.SectorID, Level: hit.Level})
}

// setHover reports h if it differs from the current hover.
func (d *Dispatcher) setHover(h *core.HoverInfo) {
	if h == nil && d.hover == nil {
		return
	}
	if h != nil && d.hover != nil && *h == *d.hover {
		return
	}
	d.hover = h
	d.obs.OnHoverChange(h)
}

// zoomBy scales the view and re-hovers the cell now under a resting
// mouse pointer.
func (d *Dispatcher) zoomBy(factor float64) {
	if !d.view.ZoomBy(factor) {
		return
	}
	d.emitViewport()
	if d.hasPointer && d.state == Idle {
		d.updateHover(d.pointer.X, d.pointer.Y)
	}
}

func (d *Dispatcher) emitViewport() {
	d.obs.OnViewportChange(d.view.Scale, d.view.TranslateX, d.view.TranslateY)
}

func touchDistance(a, b Touch) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
