package commands

// Settings are the user-tunable scalars applied by the Controller. They are
// plain values injected at construction; the gesture recognizer itself never
// sees them.
type Settings struct {
	CursorSensitivity float32
	ScrollSensitivity float32
	ZoomSensitivity   float32

	// GesturesEnabled is the master switch; the per-gesture flags below only
	// matter while it is on.
	GesturesEnabled bool
	ScrollEnabled   bool
	ZoomEnabled     bool
	SwipeEnabled    bool
	DragEnabled     bool
}

// DefaultSettings mirrors the defaults shipped with the app.
func DefaultSettings() Settings {
	return Settings{
		CursorSensitivity: 1.5,
		ScrollSensitivity: 1.0,
		ZoomSensitivity:   1.0,
		GesturesEnabled:   true,
		ScrollEnabled:     true,
		ZoomEnabled:       true,
		SwipeEnabled:      true,
		DragEnabled:       true,
	}
}
