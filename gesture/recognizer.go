package gesture

import (
	"math"
	"time"
)

// Physical thresholds, in unscaled pixel-equivalent units. User sensitivity
// is applied downstream to emitted magnitudes, never to these.
const (
	// moveSlop is the displacement below which a one-finger hold is still a tap.
	moveSlop = 12
	// pinchThreshold is the minimum pinch-distance change to consider zooming.
	pinchThreshold = 40
	// pinchDominance is how much the pinch delta must exceed the centroid
	// delta before zoom wins over scroll.
	pinchDominance = 1.5
	// scrollThreshold is the minimum centroid travel to start scrolling.
	scrollThreshold = 30
	// swipeThreshold is the cumulative travel that fires a three-finger swipe.
	swipeThreshold = 80
	// zoomDivisor converts a per-sample pinch-distance change into a scale factor.
	zoomDivisor = 500

	// tapWindow is the longest press that still counts as a tap.
	tapWindow = 200 * time.Millisecond
	// dragLatch is the window after an up during which a new down starts a drag.
	dragLatch = 250 * time.Millisecond
)

// Recognizer is a state machine over simultaneous pointer contacts. It is
// not safe for concurrent use; feed it from the single touch-delivery
// context. Events with four or more live pointers are ignored.
type Recognizer struct {
	handler Handler

	state        State
	pointerCount int
	maxPointers  int

	// one-finger tracking
	downPos       Point
	downTime      time.Time
	lastSingle    Point
	lastUpTime    time.Time
	potentialDrag bool

	// two-finger tracking
	pinchBase     float64
	lastPinch     float64
	startCentroid Point
	lastCentroid  Point

	// three-finger tracking
	swipeOrigin Point
	swipeFired  bool
}

// NewRecognizer returns a recognizer emitting into handler.
func NewRecognizer(handler Handler) *Recognizer {
	return &Recognizer{handler: handler}
}

// State returns the current gesture mode.
func (r *Recognizer) State() State {
	return r.state
}

// TouchDown processes a pointer going down. points is the full snapshot of
// live pointers including the new one; now is the sample's monotonic time.
func (r *Recognizer) TouchDown(points []Point, now time.Time) {
	r.pointerCount = len(points)
	if r.pointerCount > r.maxPointers {
		r.maxPointers = r.pointerCount
	}

	switch r.pointerCount {
	case 1:
		r.downPos = points[0]
		r.lastSingle = points[0]
		r.downTime = now
		r.state = StateIdle
		// tap-up then quick re-down latches a drag instead of a plain move
		r.potentialDrag = !r.lastUpTime.IsZero() && now.Sub(r.lastUpTime) <= dragLatch
	case 2:
		r.pinchBase = distance(points[0], points[1])
		r.lastPinch = r.pinchBase
		r.startCentroid = centroid(points)
		r.lastCentroid = r.startCentroid
		r.potentialDrag = false
		r.state = StateIdle
	case 3:
		r.swipeOrigin = centroid(points)
		r.swipeFired = false
		r.state = StateThreeFinger
	}
}

// TouchMove processes a coordinate update for the current pointer set.
func (r *Recognizer) TouchMove(points []Point, now time.Time) {
	if len(points) != r.pointerCount {
		// stale snapshot relative to down/up bookkeeping
		return
	}

	switch r.pointerCount {
	case 1:
		r.moveOne(points[0])
	case 2:
		r.moveTwo(points)
	case 3:
		if r.state == StateThreeFinger {
			r.moveThree(points)
		}
	}
}

func (r *Recognizer) moveOne(p Point) {
	if r.state == StateIdle {
		total := distance(r.downPos, p)
		if total <= moveSlop {
			r.lastSingle = p
			return
		}
		if r.potentialDrag {
			r.state = StateDragging
			r.handler.OnDragState(true)
		} else {
			r.state = StateMoving
		}
	}

	if r.state != StateMoving && r.state != StateDragging {
		return
	}

	dx := p.X - r.lastSingle.X
	dy := p.Y - r.lastSingle.Y
	r.lastSingle = p
	r.handler.OnMove(dx, dy)
}

func (r *Recognizer) moveTwo(points []Point) {
	c := centroid(points)
	pinch := distance(points[0], points[1])

	if r.state == StateIdle {
		pinchDelta := math.Abs(pinch - r.pinchBase)
		scrollDelta := math.Abs(float64(c.Y - r.startCentroid.Y))

		// zoom wins only when it clearly dominates, so a deliberate pinch
		// does not degrade into an accidental scroll
		switch {
		case pinchDelta > pinchThreshold && pinchDelta > pinchDominance*scrollDelta:
			r.state = StateZooming
			r.lastPinch = pinch
		case scrollDelta > scrollThreshold:
			r.state = StateScrolling
			r.lastCentroid = c
		}
		return
	}

	// mode is sticky until the pointer count drops below 2
	switch r.state {
	case StateZooming:
		scale := 1 + float32(pinch-r.lastPinch)/zoomDivisor
		r.lastPinch = pinch
		r.handler.OnZoom(scale)
	case StateScrolling:
		dy := c.Y - r.lastCentroid.Y
		r.lastCentroid = c
		r.handler.OnScroll(dy)
	}
}

func (r *Recognizer) moveThree(points []Point) {
	if r.swipeFired {
		return
	}

	c := centroid(points)
	dx := c.X - r.swipeOrigin.X
	dy := c.Y - r.swipeOrigin.Y

	// vertical has priority on diagonal motion
	switch {
	case abs(dy) > swipeThreshold:
		if dy < 0 {
			r.handler.OnSwipe(SwipeUp)
		} else {
			r.handler.OnSwipe(SwipeDown)
		}
		r.swipeFired = true
	case abs(dx) > swipeThreshold:
		if dx < 0 {
			r.handler.OnSwipe(SwipeLeft)
		} else {
			r.handler.OnSwipe(SwipeRight)
		}
		r.swipeFired = true
	}
}

// TouchUp processes a pointer lifting. remaining is the snapshot of pointers
// still down after the lift.
func (r *Recognizer) TouchUp(remaining []Point, now time.Time) {
	if r.pointerCount == 0 {
		// up with no matching down
		return
	}
	r.pointerCount = len(remaining)

	switch r.pointerCount {
	case 0:
		r.finish(now)
	case 1:
		// degrade to one-finger semantics without re-running start logic
		if r.state == StateScrolling || r.state == StateZooming || r.state == StateThreeFinger {
			r.state = StateIdle
		}
		r.downPos = remaining[0]
		r.lastSingle = remaining[0]
	case 2:
		if r.state == StateThreeFinger {
			r.state = StateIdle
		}
		r.pinchBase = distance(remaining[0], remaining[1])
		r.lastPinch = r.pinchBase
		r.startCentroid = centroid(remaining)
		r.lastCentroid = r.startCentroid
	}
}

// finish handles the terminal edge: the last pointer left the surface.
func (r *Recognizer) finish(now time.Time) {
	switch {
	case r.state == StateDragging:
		r.handler.OnDragState(false)
		// the next down must not resume the drag
		r.lastUpTime = time.Time{}
	case r.state == StateIdle && !r.swipeFired && now.Sub(r.downTime) < tapWindow:
		if r.maxPointers == 2 {
			r.handler.OnClick(ClickSecondary)
		} else {
			r.handler.OnClick(ClickPrimary)
		}
		r.lastUpTime = now
	default:
		r.lastUpTime = now
	}

	r.state = StateIdle
	r.maxPointers = 0
	r.swipeFired = false
	r.potentialDrag = false
}

func centroid(points []Point) Point {
	var sx, sy float32
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float32(len(points))
	return Point{X: sx / n, Y: sy / n}
}

func distance(a, b Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
