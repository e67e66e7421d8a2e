package interact

// GestureState is the dispatcher's input state.
type GestureState int

const (
	Idle             GestureState = iota
	Panning                       // Primary pointer or single touch is down
	PinchZooming                  // Two or more touches
	LongPressPending              // Single touch down, long-press timer armed
)

func (s GestureState) String() string {
	return [...]string{"Idle", "Panning", "PinchZooming", "LongPressPending"}[s]
}

// Gestures selects which interactions a Dispatcher handles. Click-to-score
// is always on.
type Gestures uint8

const (
	GestureHover Gestures = 1 << iota
	GesturePan
	GestureWheelZoom
	GesturePinch
	GestureLongPress
	GestureContextMenu
)

const (
	// BasicGestures is mouse-only: hover, drag to pan, wheel to zoom.
	BasicGestures = GestureHover | GesturePan | GestureWheelZoom

	// AllGestures adds pinch zoom, long-press and right-click menus.
	AllGestures = BasicGestures | GesturePinch | GestureLongPress | GestureContextMenu
)

// Has reports whether every gesture in f is enabled.
func (g Gestures) Has(f Gestures) bool {
	return g&f == f
}

// Button identifies a mouse button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonTertiary
)

// Touch is one active touch point in surface coordinates.
type Touch struct {
	ID   int
	X, Y float64
}
