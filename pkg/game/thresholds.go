package game

// Thresholds are the signed displacements of each direction's reference
// sample from the Middle reference: vertical axis for Top/Bottom, horizontal
// for Right/Left. A well-behaved calibration yields Top <= 0 <= Bottom and
// Left <= 0 <= Right, but nothing enforces it; a user who looked the wrong
// way gets a box that is simply impossible to stay inside.
type Thresholds struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Right  float64 `json:"right"`
	Left   float64 `json:"left"`
}

// Contains reports whether a displacement from the calibration center falls
// inside the calibrated bounding box.
func (t Thresholds) Contains(dx, dy float64) bool {
	return t.Top <= dy && dy <= t.Bottom && t.Left <= dx && dx <= t.Right
}
