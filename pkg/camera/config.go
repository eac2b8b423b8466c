// Package camera acquires video frames from a webcam for the gaze demo.
package camera

import "errors"

// Config holds the frame source parameters.
type Config struct {
	DeviceID int // webcam device index
	Width    int // requested frame width in pixels
	Height   int // requested frame height in pixels
	FPS      int // requested capture rate
}

// DefaultConfig returns the webcam defaults the demo is tuned for.
func DefaultConfig() Config {
	return Config{
		DeviceID: 0,
		Width:    640,
		Height:   480,
		FPS:      30,
	}
}

// Validate checks the config values.
func (c Config) Validate() error {
	if c.DeviceID < 0 {
		return errors.New("device id must be non-negative")
	}
	if c.Width < 160 || c.Height < 120 {
		return errors.New("resolution must be at least 160x120")
	}
	if c.FPS < 1 || c.FPS > 120 {
		return errors.New("fps must be between 1 and 120")
	}
	return nil
}
