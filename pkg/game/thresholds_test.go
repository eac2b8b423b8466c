package game

import "testing"

func TestThresholds_Contains(t *testing.T) {
	th := Thresholds{Top: -10, Bottom: 10, Left: -8, Right: 8}

	tests := []struct {
		name   string
		dx, dy float64
		want   bool
	}{
		{"origin", 0, 0, true},
		{"inside", 7, 9, true},
		{"top edge", 0, -10, true},
		{"bottom edge", 0, 10, true},
		{"left edge", -8, 0, true},
		{"right edge", 8, 0, true},
		{"past right", 9, 0, false},
		{"past left", -8.5, 0, false},
		{"past top", 0, -10.5, false},
		{"past bottom", 0, 11, false},
		{"corner out", 9, 11, false},
	}

	for _, tt := range tests {
		if got := th.Contains(tt.dx, tt.dy); got != tt.want {
			t.Errorf("%s: Contains(%v, %v) = %v, want %v", tt.name, tt.dx, tt.dy, got, tt.want)
		}
	}
}

// A calibration where the user looked the wrong way produces an inverted
// box. Contains stays well-defined: nothing can be inside it.
func TestThresholds_InvertedBox(t *testing.T) {
	th := Thresholds{Top: 10, Bottom: -10, Left: 8, Right: -8}
	for _, d := range []float64{-20, -10, 0, 10, 20} {
		if th.Contains(d, d) {
			t.Errorf("inverted box contained (%v, %v)", d, d)
		}
	}
}
