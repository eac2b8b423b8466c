package game

import "testing"

func TestDirectionForStep(t *testing.T) {
	tests := []struct {
		step int
		want Direction
		ok   bool
	}{
		{step: -1, ok: false},
		{step: 0, ok: false}, // nothing is captured before the first advance
		{step: 1, want: Middle, ok: true},
		{step: 2, want: Top, ok: true},
		{step: 3, want: Right, ok: true},
		{step: 4, want: Bottom, ok: true},
		{step: 5, want: Left, ok: true},
		{step: 6, ok: false},
	}

	for _, tt := range tests {
		got, ok := DirectionForStep(tt.step)
		if ok != tt.ok {
			t.Errorf("DirectionForStep(%d) ok: got %v, want %v", tt.step, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("DirectionForStep(%d): got %v, want %v", tt.step, got, tt.want)
		}
	}
}

func TestDirectionString(t *testing.T) {
	names := map[Direction]string{
		Middle: "middle",
		Top:    "top",
		Right:  "right",
		Bottom: "bottom",
		Left:   "left",
	}
	for d, want := range names {
		if got := d.String(); got != want {
			t.Errorf("Direction(%d).String(): got %q, want %q", d, got, want)
		}
	}
	if got := Direction(42).String(); got != "unknown" {
		t.Errorf("out-of-range direction: got %q, want %q", got, "unknown")
	}
}
