// Package display renders the calibration crosses and the challenge circle
// in an OpenCV window and reports user key events.
package display

import (
	"image"
	"image/color"
)

// Cross geometry shared by all five calibration targets.
const (
	CrossSize      = 50
	CrossThickness = 5
)

// Demo palette.
var (
	ColorWhite = color.RGBA{R: 255, G: 255, B: 255, A: 0}
	ColorBlue  = color.RGBA{R: 0, G: 0, B: 255, A: 0}
	ColorRed   = color.RGBA{R: 255, G: 0, B: 0, A: 0}
)

// CrossCenter returns the center of the calibration cross shown during a
// step, given the display size: center of the screen for Middle, one eighth
// in from the relevant edge for the four outer targets. Steps outside the
// calibration range have no cross.
func CrossCenter(step, w, h int) (image.Point, bool) {
	switch step {
	case 0: // middle
		return image.Pt(w/2, h/2), true
	case 1: // top
		return image.Pt(w/2, h/8), true
	case 2: // right
		return image.Pt(7*w/8, h/2), true
	case 3: // bottom
		return image.Pt(w/2, 7*h/8), true
	case 4: // left
		return image.Pt(w/8, h/2), true
	}
	return image.Point{}, false
}
