package display

import (
	"image"
	"testing"
)

func TestCrossCenter(t *testing.T) {
	const w, h = 640, 480

	tests := []struct {
		step int
		want image.Point
	}{
		{0, image.Pt(320, 240)}, // middle
		{1, image.Pt(320, 60)},  // top
		{2, image.Pt(560, 240)}, // right
		{3, image.Pt(320, 420)}, // bottom
		{4, image.Pt(80, 240)},  // left
	}

	for _, tt := range tests {
		got, ok := CrossCenter(tt.step, w, h)
		if !ok {
			t.Errorf("step %d: expected a cross", tt.step)
			continue
		}
		if got != tt.want {
			t.Errorf("step %d: got %v, want %v", tt.step, got, tt.want)
		}
	}
}

func TestCrossCenter_NoCrossOutsideCalibration(t *testing.T) {
	for _, step := range []int{-1, 5, 6} {
		if _, ok := CrossCenter(step, 640, 480); ok {
			t.Errorf("step %d: expected no cross", step)
		}
	}
}
