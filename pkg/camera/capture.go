package camera

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Capture wraps a webcam as the session's frame source. Acquisition failure
// is fatal at open time; a frameless tick afterwards is not.
type Capture struct {
	cap *gocv.VideoCapture
	cfg Config
}

// Open acquires the configured webcam.
func Open(cfg Config) (*Capture, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cap, err := gocv.OpenVideoCapture(cfg.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", cfg.DeviceID, err)
	}
	if !cap.IsOpened() {
		cap.Close()
		return nil, fmt.Errorf("camera %d not available", cfg.DeviceID)
	}

	cap.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	cap.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	cap.Set(gocv.VideoCaptureFPS, float64(cfg.FPS))

	return &Capture{cap: cap, cfg: cfg}, nil
}

// Read fills dst with the next frame. It reports false when no frame was
// available this tick.
func (c *Capture) Read(dst *gocv.Mat) bool {
	return c.cap.Read(dst) && !dst.Empty()
}

// Close releases the camera handle.
func (c *Capture) Close() error {
	return c.cap.Close()
}
