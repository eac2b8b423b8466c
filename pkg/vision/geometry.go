package vision

import "image"

// SplitEyes classifies eye candidate regions by which side of the face
// midline their center falls on. Left/right follow the camera convention
// (left half of the frame), not anatomy. With several candidates on the same
// side the last one wins.
func SplitEyes(faceWidth int, eyes []image.Rectangle) (left, right *image.Rectangle) {
	mid := float64(faceWidth) / 2
	for i := range eyes {
		e := eyes[i]
		center := float64(e.Min.X) + float64(e.Dx())/2
		if center < mid {
			left = &eyes[i]
		} else {
			right = &eyes[i]
		}
	}
	return left, right
}

// CutEyebrows removes the top quarter of an eye region. The cascade boxes
// include the eyebrow, which otherwise out-blobs the pupil.
func CutEyebrows(r image.Rectangle) image.Rectangle {
	r.Min.Y += r.Dy() / 4
	return r
}
