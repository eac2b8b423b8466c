package game

// NumSteps is the number of calibration fixation targets.
const NumSteps = len(Directions)

// Calibrator walks the user through the five fixation targets, captures one
// sample per eye per target, and derives the displacement thresholds
// relative to the Middle target.
//
// Capture is gated: each advance arms a one-shot gate per eye, and the next
// detected sample for that eye is recorded against the direction the user
// was just asked to look at. The gate stays armed across frames with no
// detection; a sample is never fabricated.
type Calibrator struct {
	step       int
	armed      [2]bool
	samples    map[Direction][]Point
	thresholds *Thresholds

	// finalizing is set once the user has advanced past the last target
	// while its capture is still pending; derivation completes the moment
	// that capture lands.
	finalizing bool
}

// NewCalibrator returns a calibrator at the Middle step with idle gates.
func NewCalibrator() *Calibrator {
	return &Calibrator{
		samples: make(map[Direction][]Point, NumSteps),
	}
}

// Step returns the current calibration step (0..NumSteps).
func (c *Calibrator) Step() int {
	return c.step
}

// IsComplete reports whether all five steps have been advanced through.
func (c *Calibrator) IsComplete() bool {
	return c.step == NumSteps
}

// Ready reports whether thresholds have been derived and play can begin.
func (c *Calibrator) Ready() bool {
	return c.thresholds != nil
}

// CaptureIdle reports whether neither eye has a pending capture.
func (c *Calibrator) CaptureIdle() bool {
	return !c.armed[EyeLeft] && !c.armed[EyeRight]
}

// Advance moves the calibration to the next fixation target and arms the
// capture gates for both eyes. The advance off the last target checks that
// every earlier direction was captured; if one was not, the calibration
// rewinds to the first missing direction and the error is returned.
// Threshold derivation completes when the final direction's capture lands.
// Once complete, Advance is rejected and never recomputes thresholds.
func (c *Calibrator) Advance() error {
	if c.step >= NumSteps {
		return ErrCalibrationComplete
	}

	if c.step == NumSteps-1 {
		// Only directions for completed steps can have samples. The final
		// direction's gate is armed by this very advance, so it is never
		// counted as missing here; derivation waits for its capture.
		if missing := c.missingDirections(NumSteps - 1); len(missing) > 0 {
			err := &IncompleteCalibrationError{Missing: missing}
			c.rewind(err)
			return err
		}
		c.finalizing = true
	}

	c.step++
	c.armed[EyeLeft] = true
	c.armed[EyeRight] = true
	return nil
}

// Observe feeds one eye's sample for the current frame. When the eye's gate
// is armed and the sample is present, the sample is appended to the current
// capture direction and the gate clears; it reports whether a capture
// happened. A nil sample leaves the gate armed for a later frame.
func (c *Calibrator) Observe(eye Eye, sample *Point) bool {
	if !c.armed[eye] || sample == nil {
		return false
	}
	dir, ok := DirectionForStep(c.step)
	if !ok {
		return false
	}

	c.samples[dir] = append(c.samples[dir], *sample)
	c.armed[eye] = false

	if c.finalizing && c.thresholds == nil {
		if err := c.deriveThresholds(); err == nil {
			c.finalizing = false
		}
	}
	return true
}

// Thresholds returns the derived displacement thresholds.
func (c *Calibrator) Thresholds() (Thresholds, error) {
	if c.thresholds == nil {
		return Thresholds{}, ErrNotCalibrated
	}
	return *c.thresholds, nil
}

// Center returns the Middle reference sample the challenge measures
// displacements against.
func (c *Calibrator) Center() (Point, error) {
	mid := c.samples[Middle]
	if len(mid) == 0 {
		return Point{}, ErrNotCalibrated
	}
	return mid[0], nil
}

// Samples returns a copy of the captured samples, keyed by direction, for
// diagnostics. Directions never captured are absent from the map.
func (c *Calibrator) Samples() map[Direction][]Point {
	out := make(map[Direction][]Point, len(c.samples))
	for d, s := range c.samples {
		out[d] = append([]Point(nil), s...)
	}
	return out
}

// deriveThresholds computes the four signed offsets from the first captured
// sample of each direction. First sample, not an average: the gate is
// one-shot per advance, so first and only coincide unless a direction was
// redone.
func (c *Calibrator) deriveThresholds() error {
	if missing := c.missingDirections(NumSteps); len(missing) > 0 {
		return &IncompleteCalibrationError{Missing: missing}
	}

	refs := make(map[Direction]Point, NumSteps)
	for _, d := range Directions {
		refs[d] = c.samples[d][0]
	}

	mid := refs[Middle]
	c.thresholds = &Thresholds{
		Top:    refs[Top].Y - mid.Y,
		Bottom: refs[Bottom].Y - mid.Y,
		Right:  refs[Right].X - mid.X,
		Left:   refs[Left].X - mid.X,
	}
	return nil
}

// missingDirections returns the first n progression directions that have no
// captured sample yet.
func (c *Calibrator) missingDirections(n int) []Direction {
	var missing []Direction
	for _, d := range Directions[:n] {
		if len(c.samples[d]) == 0 {
			missing = append(missing, d)
		}
	}
	return missing
}

// rewind sends the calibration back to the earliest direction that has no
// samples so the user can redo it. Gates disarm; the redo capture is armed
// by the advance out of that step as usual.
func (c *Calibrator) rewind(e *IncompleteCalibrationError) {
	c.step = int(e.Missing[0])
	c.armed[EyeLeft] = false
	c.armed[EyeRight] = false
}
