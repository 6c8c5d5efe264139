// Package gesture turns a stream of raw multi-touch contact samples into
// discrete and continuous pointer intents: move, scroll, zoom, click, drag
// and three-finger swipe.
package gesture

// ClickKind distinguishes primary (one-finger tap) from secondary
// (two-finger tap) clicks.
type ClickKind int

const (
	ClickPrimary ClickKind = iota
	ClickSecondary
)

func (k ClickKind) String() string {
	if k == ClickSecondary {
		return "secondary"
	}
	return "primary"
}

// SwipeDirection is the direction of a three-finger swipe.
type SwipeDirection int

const (
	SwipeUp SwipeDirection = iota
	SwipeDown
	SwipeLeft
	SwipeRight
)

func (d SwipeDirection) String() string {
	switch d {
	case SwipeUp:
		return "up"
	case SwipeDown:
		return "down"
	case SwipeLeft:
		return "left"
	case SwipeRight:
		return "right"
	}
	return "unknown"
}

// State is the recognizer's current mode. Exactly one is active at a time.
type State int

const (
	StateIdle State = iota
	StateMoving
	StateDragging
	StateScrolling
	StateZooming
	StateThreeFinger
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMoving:
		return "moving"
	case StateDragging:
		return "dragging"
	case StateScrolling:
		return "scrolling"
	case StateZooming:
		return "zooming"
	case StateThreeFinger:
		return "three-finger"
	}
	return "unknown"
}

// Point is one pointer's position in pixel-equivalent units.
type Point struct {
	X float32
	Y float32
}

// Handler receives recognized gestures, synchronously and in event order.
// Implementations must not block; they run on the touch-delivery path.
type Handler interface {
	OnMove(dx, dy float32)
	OnScroll(dy float32)
	OnZoom(scale float32)
	OnClick(kind ClickKind)
	OnDragState(dragging bool)
	OnSwipe(dir SwipeDirection)
}
