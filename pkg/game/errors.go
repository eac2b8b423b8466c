package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCalibrationComplete is returned when advancing past the final step.
	ErrCalibrationComplete = errors.New("calibration already complete")

	// ErrNotCalibrated is returned when thresholds are requested before
	// they have been derived.
	ErrNotCalibrated = errors.New("thresholds not derived yet")
)

// IncompleteCalibrationError reports directions that had no captured sample
// when threshold derivation ran. A direction that was never captured is not
// treated as zero displacement; the calibration must be redone for it.
type IncompleteCalibrationError struct {
	Missing []Direction
}

func (e *IncompleteCalibrationError) Error() string {
	names := make([]string, len(e.Missing))
	for i, d := range e.Missing {
		names[i] = d.String()
	}
	return fmt.Sprintf("incomplete calibration: no samples for %s", strings.Join(names, ", "))
}
