package vision

import (
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/lookstill/lookstill/pkg/debug"
	"github.com/lookstill/lookstill/pkg/game"
)

// HaarExtractor detects the face and eyes with Haar cascades and the pupil
// with a blob detector over a binarized eye image.
type HaarExtractor struct {
	face gocv.CascadeClassifier
	eye  gocv.CascadeClassifier
	blob gocv.SimpleBlobDetector
	cfg  Config
	mu   sync.Mutex // protects inference
}

// NewHaar creates a Haar cascade extractor from the configured cascade files.
func NewHaar(cfg Config) (*HaarExtractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, path := range []string{cfg.FaceCascade, cfg.EyeCascade} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("cascade file not found: %s", path)
		}
	}

	face := gocv.NewCascadeClassifier()
	if !face.Load(cfg.FaceCascade) {
		face.Close()
		return nil, fmt.Errorf("load face cascade: %s", cfg.FaceCascade)
	}
	eye := gocv.NewCascadeClassifier()
	if !eye.Load(cfg.EyeCascade) {
		face.Close()
		eye.Close()
		return nil, fmt.Errorf("load eye cascade: %s", cfg.EyeCascade)
	}

	params := gocv.NewSimpleBlobDetectorParams()
	params.SetFilterByArea(true)
	params.SetMaxArea(cfg.MaxPupilArea)
	params.SetFilterByConvexity(false)
	params.SetFilterByInertia(false)

	return &HaarExtractor{
		face: face,
		eye:  eye,
		blob: gocv.NewSimpleBlobDetectorWithParams(params),
		cfg:  cfg,
	}, nil
}

// Extract finds the face, eyes, and pupils in the frame. A frame where any
// of them is missing returns partial Features, never an error.
func (x *HaarExtractor) Extract(frame gocv.Mat, threshold int) (Features, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return Features{}, err
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	if frame.Empty() {
		return Features{}, nil
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)

	faceRect, ok := x.detectFace(gray)
	if !ok {
		return Features{}, nil
	}

	faceGray := gray.Region(faceRect)
	defer faceGray.Close()

	eyes := x.eye.DetectMultiScaleWithParams(faceGray,
		x.cfg.ScaleFactor, x.cfg.MinNeighbors, 0, image.Point{}, image.Point{})
	leftRect, rightRect := SplitEyes(faceRect.Dx(), eyes)

	out := Features{Face: &faceRect}
	if leftRect != nil {
		out.Left = x.eyeFeature(faceGray, *leftRect, threshold)
	}
	if rightRect != nil {
		out.Right = x.eyeFeature(faceGray, *rightRect, threshold)
	}

	debug.VisionLog("face %v, eyes %d, pupils L:%v R:%v\n",
		faceRect, len(eyes), out.Left != nil && out.Left.Pupil != nil,
		out.Right != nil && out.Right.Pupil != nil)

	return out, nil
}

// Close releases the cascades and the blob detector.
func (x *HaarExtractor) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.face.Close()
	x.eye.Close()
	x.blob.Close()
	return nil
}

// detectFace returns the widest detected face, the same pick the calibration
// thresholds were recorded against.
func (x *HaarExtractor) detectFace(gray gocv.Mat) (image.Rectangle, bool) {
	faces := x.face.DetectMultiScaleWithParams(gray,
		x.cfg.ScaleFactor, x.cfg.MinNeighbors, 0, image.Point{}, image.Point{})
	if len(faces) == 0 {
		return image.Rectangle{}, false
	}
	best := faces[0]
	for _, f := range faces[1:] {
		if f.Dx() > best.Dx() {
			best = f
		}
	}
	return best, true
}

// eyeFeature crops the eyebrow band off the region and hunts for the pupil.
func (x *HaarExtractor) eyeFeature(faceGray gocv.Mat, eyeRect image.Rectangle, threshold int) *EyeFeature {
	cropped := CutEyebrows(eyeRect)
	if cropped.Dx() <= 0 || cropped.Dy() <= 0 {
		return nil
	}

	eye := faceGray.Region(cropped)
	defer eye.Close()

	return &EyeFeature{
		Region: cropped,
		Pupil:  x.findPupil(eye, threshold),
	}
}

// findPupil binarizes the eye, cleans the mask with morphology and a median
// blur, and takes the first blob keypoint in region-local coordinates.
func (x *HaarExtractor) findPupil(eye gocv.Mat, threshold int) *game.Point {
	bin := gocv.NewMat()
	defer bin.Close()
	gocv.Threshold(eye, &bin, float32(threshold), 255, gocv.ThresholdBinary)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(3, 3))
	defer kernel.Close()
	for i := 0; i < 2; i++ {
		gocv.Erode(bin, &bin, kernel)
	}
	for i := 0; i < 4; i++ {
		gocv.Dilate(bin, &bin, kernel)
	}
	gocv.MedianBlur(bin, &bin, 5)

	keypoints := x.blob.Detect(bin)
	if len(keypoints) == 0 {
		return nil
	}
	return &game.Point{X: keypoints[0].X, Y: keypoints[0].Y}
}
