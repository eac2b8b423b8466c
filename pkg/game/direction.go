// Package game implements the calibration and gaze-challenge state machines.
package game

// Direction is one of the five calibration fixation targets.
type Direction int

const (
	Middle Direction = iota
	Top
	Right
	Bottom
	Left
)

// Directions lists the calibration progression order.
// Index 0 is the neutral reference all thresholds are measured against.
var Directions = [5]Direction{Middle, Top, Right, Bottom, Left}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Middle:
		return "middle"
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	}
	return "unknown"
}

// DirectionForStep maps a calibration step to the direction being captured
// during that step. The capture gate armed by an advance records against the
// direction the user was just asked to look at, so step k captures
// direction k-1. Returns false for steps with no capture target (step 0).
func DirectionForStep(step int) (Direction, bool) {
	idx := step - 1
	if idx < 0 || idx >= len(Directions) {
		return Middle, false
	}
	return Directions[idx], true
}
