package game

// Point is a 2-D eye sample position. Coordinates live in whatever space the
// extractor produced them in; that space must stay fixed for a session.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Eye identifies which eye a sample came from. Left/right follow the camera
// convention (left of the face midline in the frame), not anatomy.
type Eye int

const (
	EyeLeft Eye = iota
	EyeRight
)

// String returns the eye name.
func (e Eye) String() string {
	if e == EyeRight {
		return "right"
	}
	return "left"
}

// GazeSample is one frame's pair of eye samples.
// A nil side means no detection that frame.
type GazeSample struct {
	Left  *Point
	Right *Point
}

// Canonical returns the sample the challenge judges against.
// The left eye is canonical; there is no fallback to the right eye.
func (g GazeSample) Canonical() *Point {
	return g.Left
}
