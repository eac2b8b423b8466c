// Package vision provides face, eye, and pupil feature extraction for the
// gaze demo, built on OpenCV Haar cascades and blob detection.
package vision

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/lookstill/lookstill/pkg/game"
)

// EyeFeature is one detected eye: its region within the face (eyebrows
// cropped away) and the pupil keypoint in region-local coordinates, when one
// was found.
type EyeFeature struct {
	Region image.Rectangle
	Pupil  *game.Point
}

// Features is one frame's extraction result. Any field may be absent; a
// frame with no face, no eyes, or no pupil is normal and not an error.
type Features struct {
	Face  *image.Rectangle
	Left  *EyeFeature
	Right *EyeFeature
}

// Gaze returns the frame's gaze sample: the per-eye pupil positions.
func (f Features) Gaze() game.GazeSample {
	var g game.GazeSample
	if f.Left != nil {
		g.Left = f.Left.Pupil
	}
	if f.Right != nil {
		g.Right = f.Right.Pupil
	}
	return g
}

// Extractor is the interface for gaze feature extraction backends.
type Extractor interface {
	// Extract finds the face, eyes, and pupils in the frame. threshold is
	// the live-tunable pupil binarization threshold in [0, 255].
	Extract(frame gocv.Mat, threshold int) (Features, error)

	// Close releases resources.
	Close() error
}
