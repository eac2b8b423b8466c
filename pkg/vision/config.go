package vision

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Pupil threshold bounds. The binarization threshold is a user-tunable
// parameter and is rejected at every boundary where it can be set.
const (
	ThresholdMin = 0
	ThresholdMax = 255
)

// ErrThresholdRange is returned for a pupil threshold outside [0, 255].
var ErrThresholdRange = errors.New("pupil threshold must be between 0 and 255")

// ValidateThreshold checks a pupil threshold value.
func ValidateThreshold(v int) error {
	if v < ThresholdMin || v > ThresholdMax {
		return fmt.Errorf("%w: got %d", ErrThresholdRange, v)
	}
	return nil
}

// Config holds extractor configuration.
type Config struct {
	FaceCascade  string  // path to the frontal face Haar cascade
	EyeCascade   string  // path to the eye Haar cascade
	ScaleFactor  float64 // cascade pyramid scale factor
	MinNeighbors int     // cascade neighbor threshold
	MaxPupilArea float64 // blob detector area ceiling in pixels
}

// DefaultConfig returns the extraction defaults tuned for a webcam at arm's
// length.
func DefaultConfig() Config {
	return Config{
		FaceCascade:  filepath.Join("data", "haarcascade_frontalface_default.xml"),
		EyeCascade:   filepath.Join("data", "haarcascade_eye.xml"),
		ScaleFactor:  1.3,
		MinNeighbors: 5,
		MaxPupilArea: 1500,
	}
}

// Validate checks the config values.
func (c Config) Validate() error {
	if c.FaceCascade == "" || c.EyeCascade == "" {
		return errors.New("cascade paths must be set")
	}
	if c.ScaleFactor <= 1.0 {
		return errors.New("scale factor must be greater than 1.0")
	}
	if c.MinNeighbors < 1 {
		return errors.New("min neighbors must be at least 1")
	}
	if c.MaxPupilArea <= 0 {
		return errors.New("max pupil area must be positive")
	}
	return nil
}
