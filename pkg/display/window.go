package display

import (
	"errors"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/lookstill/lookstill/pkg/vision"
)

// Event is a user input event observed during Present.
type Event int

const (
	EventNone Event = iota
	EventAdvance
	EventQuit
)

const (
	keySpace  = 32
	keyEscape = 27
)

// Window is a gocv-backed drawing surface with a pupil-threshold trackbar.
// One Clear/draw/Present cycle per tick; Present also pumps the window's
// event loop, so skipping it stalls input.
type Window struct {
	win    *gocv.Window
	canvas gocv.Mat
	base   gocv.Mat // white background, copied over the canvas on Clear
	track  *gocv.Trackbar
	w, h   int
}

// NewWindow opens the demo window at the given size with a threshold
// trackbar starting at the given position.
func NewWindow(title string, w, h, threshold int) (*Window, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.New("window size must be positive")
	}
	if err := vision.ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	win := gocv.NewWindow(title)
	track := win.CreateTrackbar("threshold", vision.ThresholdMax)
	track.SetPos(threshold)

	white := gocv.NewScalar(255, 255, 255, 0)
	base := gocv.NewMatWithSizeFromScalar(white, h, w, gocv.MatTypeCV8UC3)
	canvas := base.Clone()

	return &Window{
		win:    win,
		canvas: canvas,
		base:   base,
		track:  track,
		w:      w,
		h:      h,
	}, nil
}

// Size returns the drawing surface size.
func (d *Window) Size() (w, h int) {
	return d.w, d.h
}

// Threshold returns the trackbar's current pupil threshold.
func (d *Window) Threshold() int {
	return d.track.GetPos()
}

// SetThreshold moves the trackbar, for syncing an external control.
func (d *Window) SetThreshold(v int) {
	if vision.ValidateThreshold(v) == nil {
		d.track.SetPos(v)
	}
}

// Clear repaints the canvas white.
func (d *Window) Clear() {
	d.base.CopyTo(&d.canvas)
}

// DrawCross draws a fixation cross as two filled bars.
func (d *Window) DrawCross(center image.Point, width, height, thickness int, c color.RGBA) {
	vertical := image.Rect(
		center.X-thickness/2, center.Y-height/2,
		center.X+thickness/2, center.Y+height/2,
	)
	horizontal := image.Rect(
		center.X-width/2, center.Y-thickness/2,
		center.X+width/2, center.Y+thickness/2,
	)
	gocv.Rectangle(&d.canvas, vertical, c, -1)
	gocv.Rectangle(&d.canvas, horizontal, c, -1)
}

// DrawCircle draws a filled circle.
func (d *Window) DrawCircle(center image.Point, radius int, c color.RGBA) {
	gocv.Circle(&d.canvas, center, radius, c, -1)
}

// Present shows the canvas and polls for one key event.
func (d *Window) Present() Event {
	d.win.IMShow(d.canvas)
	switch gocv.WaitKey(1) {
	case keySpace:
		return EventAdvance
	case keyEscape, 'q':
		return EventQuit
	}
	return EventNone
}

// Close releases the window and its mats.
func (d *Window) Close() error {
	d.canvas.Close()
	d.base.Close()
	return d.win.Close()
}
