package session

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"github.com/lookstill/lookstill/pkg/display"
	"github.com/lookstill/lookstill/pkg/game"
	"github.com/lookstill/lookstill/pkg/vision"
)

// fakeRenderer records draw calls; Threshold mimics the trackbar.
type fakeRenderer struct {
	w, h      int
	threshold int
	events    []display.Event

	crosses []image.Point
	circles []int
	cleared int
}

func (f *fakeRenderer) Clear() { f.cleared++ }
func (f *fakeRenderer) DrawCross(center image.Point, _, _, _ int, _ color.RGBA) {
	f.crosses = append(f.crosses, center)
}
func (f *fakeRenderer) DrawCircle(_ image.Point, radius int, _ color.RGBA) {
	f.circles = append(f.circles, radius)
}
// Present pops one scripted event per tick; an exhausted script quits.
func (f *fakeRenderer) Present() display.Event {
	if len(f.events) == 0 {
		return display.EventQuit
	}
	e := f.events[0]
	f.events = f.events[1:]
	return e
}
func (f *fakeRenderer) Threshold() int   { return f.threshold }
func (f *fakeRenderer) Size() (int, int) { return f.w, f.h }

// fakeSource replays a script of Read results; exhausted means no frame.
type fakeSource struct {
	reads []bool
}

func (f *fakeSource) Read(_ *gocv.Mat) bool {
	if len(f.reads) == 0 {
		return false
	}
	ok := f.reads[0]
	f.reads = f.reads[1:]
	return ok
}
func (f *fakeSource) Close() error { return nil }

// fakeExtractor returns the same features for every frame.
type fakeExtractor struct {
	feats vision.Features
}

func (f *fakeExtractor) Extract(_ gocv.Mat, _ int) (vision.Features, error) {
	return f.feats, nil
}
func (f *fakeExtractor) Close() error { return nil }

// fakeSink records dashboard updates.
type fakeSink struct {
	thresholds *game.Thresholds
	logs       []string
	radius     float64
	won        bool
	phase      string
}

func (f *fakeSink) UpdateCalibration(step int, direction string, playing bool) {
	if playing {
		f.phase = "playing"
	} else {
		f.phase = "calibrating"
	}
}
func (f *fakeSink) UpdateGaze(left, right *game.Point) {}
func (f *fakeSink) UpdateChallenge(radius float64, won bool) {
	f.radius = radius
	f.won = won
}
func (f *fakeSink) UpdateThresholds(t game.Thresholds) { f.thresholds = &t }
func (f *fakeSink) AddLog(logType, message string)     { f.logs = append(f.logs, message) }

func newTestSession(t *testing.T, render Renderer, sink StateSink) *Session {
	t.Helper()
	m, err := vision.NewManager(42)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return &Session{
		id:         uuid.New(),
		render:     render,
		thresholds: m,
		sink:       sink,
		cal:        game.NewCalibrator(),
		chal:       game.NewChallenge(game.Config{InitialRadius: 100, Decrement: 5, WinFloor: 5}),
	}
}

func gazeAt(p game.Point) game.GazeSample {
	r := p
	return game.GazeSample{Left: &p, Right: &r}
}

var sessionRefs = map[game.Direction]game.Point{
	game.Middle: {X: 30, Y: 20},
	game.Top:    {X: 30, Y: 14},
	game.Right:  {X: 36, Y: 20},
	game.Bottom: {X: 30, Y: 27},
	game.Left:   {X: 25, Y: 20},
}

// calibrateSession walks the whole five-target flow through the session's
// tick handlers the way the loop would.
func calibrateSession(t *testing.T, s *Session) {
	t.Helper()
	for i := 0; i < game.NumSteps; i++ {
		s.handleAdvance()
		dir, ok := game.DirectionForStep(s.cal.Step())
		if !ok {
			t.Fatalf("no capture direction at step %d", s.cal.Step())
		}
		s.observe(gazeAt(sessionRefs[dir]))
	}
}

func TestSession_CalibrateThenWin(t *testing.T) {
	render := &fakeRenderer{w: 640, h: 480, threshold: 42}
	sink := &fakeSink{}
	s := newTestSession(t, render, sink)

	calibrateSession(t, s)

	if !s.cal.Ready() {
		t.Fatal("expected playing phase after calibration")
	}
	if sink.thresholds == nil {
		t.Fatal("expected thresholds pushed to the sink")
	}
	want := game.Thresholds{Top: -6, Bottom: 7, Right: 6, Left: -5}
	if *sink.thresholds != want {
		t.Fatalf("sink thresholds: got %+v, want %+v", *sink.thresholds, want)
	}

	// Hold gaze on the middle reference: 19 in-bounds ticks win.
	s.observe(gazeAt(sessionRefs[game.Middle]))
	for i := 1; i <= 19; i++ {
		won := s.playStep()
		if i < 19 && won {
			t.Fatalf("tick %d: won too early", i)
		}
		if i == 19 && !won {
			t.Fatal("tick 19: expected the win")
		}
	}
	if !sink.won {
		t.Error("expected win pushed to the sink")
	}
}

func TestSession_OutOfBoundsResetsRadius(t *testing.T) {
	render := &fakeRenderer{w: 640, h: 480, threshold: 42}
	sink := &fakeSink{}
	s := newTestSession(t, render, sink)
	calibrateSession(t, s)

	s.observe(gazeAt(sessionRefs[game.Middle]))
	s.playStep()
	s.playStep()
	if sink.radius != 90 {
		t.Fatalf("radius after two in-bounds ticks: got %v, want 90", sink.radius)
	}

	// Glance far right of the calibrated box.
	s.observe(gazeAt(game.Point{X: 60, Y: 20}))
	s.playStep()
	if sink.radius != 100 {
		t.Errorf("radius after out-of-bounds tick: got %v, want 100", sink.radius)
	}

	// Lost detection resets too.
	s.observe(game.GazeSample{})
	s.playStep()
	if sink.radius != 100 {
		t.Errorf("radius after absent tick: got %v, want 100", sink.radius)
	}
}

func TestSession_CrossHiddenWhileCapturePending(t *testing.T) {
	render := &fakeRenderer{w: 640, h: 480, threshold: 42}
	s := newTestSession(t, render, nil)

	// Step 0, gates idle: the middle cross shows.
	s.renderTick()
	if len(render.crosses) != 1 || render.crosses[0] != image.Pt(320, 240) {
		t.Fatalf("middle cross: got %v", render.crosses)
	}

	// Advance arms the gates: the cross hides until the capture lands.
	s.handleAdvance()
	render.crosses = nil
	s.renderTick()
	if len(render.crosses) != 0 {
		t.Fatalf("expected no cross while capture pending, got %v", render.crosses)
	}

	s.observe(gazeAt(sessionRefs[game.Middle]))
	s.renderTick()
	if len(render.crosses) != 1 || render.crosses[0] != image.Pt(320, 60) {
		t.Fatalf("top cross: got %v", render.crosses)
	}
}

func TestSession_CircleDrawnOncePlaying(t *testing.T) {
	render := &fakeRenderer{w: 640, h: 480, threshold: 42}
	s := newTestSession(t, render, nil)
	calibrateSession(t, s)

	s.renderTick()
	if len(render.circles) != 1 || render.circles[0] != 100 {
		t.Fatalf("challenge circle: got %v, want [100]", render.circles)
	}
	if len(render.crosses) != 0 {
		t.Errorf("no crosses expected while playing, got %v", render.crosses)
	}
}

func TestSession_FramelessTickHoldsRadius(t *testing.T) {
	render := &fakeRenderer{w: 640, h: 480, threshold: 42,
		events: make([]display.Event, 5)} // five ticks, then quit
	sink := &fakeSink{}
	s := newTestSession(t, render, sink)
	calibrateSession(t, s)

	// Two frames with an in-bounds gaze, then the camera stops producing.
	pupil := sessionRefs[game.Middle]
	s.source = &fakeSource{reads: []bool{true, true, false, false, false}}
	s.extract = &fakeExtractor{feats: vision.Features{
		Left:  &vision.EyeFeature{Pupil: &pupil},
		Right: &vision.EyeFeature{Pupil: &pupil},
	}}

	result, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result != ResultQuit {
		t.Fatalf("result: got %v, want ResultQuit", result)
	}

	// The stale in-bounds sample must not keep shrinking the circle.
	if sink.radius != 90 {
		t.Errorf("radius after frameless ticks: got %v, want 90", sink.radius)
	}
}

func TestSession_ThresholdTrackbarSync(t *testing.T) {
	render := &fakeRenderer{w: 640, h: 480, threshold: 80}
	s := newTestSession(t, render, nil)

	if got := s.threshold(); got != 80 {
		t.Errorf("threshold: got %d, want the trackbar's 80", got)
	}
	if got := s.thresholds.Threshold(); got != 80 {
		t.Errorf("manager after sync: got %d, want 80", got)
	}

	// A bogus control value never reaches the detector.
	render.threshold = 999
	if got := s.threshold(); got != 80 {
		t.Errorf("threshold after bogus trackbar: got %d, want 80", got)
	}
}
