// Package session ties the camera, the feature extractor, the calibration
// and challenge state machines, and the display into the frame-synchronous
// demo loop.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"github.com/lookstill/lookstill/internal/log"
	"github.com/lookstill/lookstill/pkg/display"
	"github.com/lookstill/lookstill/pkg/game"
	"github.com/lookstill/lookstill/pkg/vision"
)

// Result is how a session ended.
type Result int

const (
	// ResultQuit means the user quit or the context was canceled.
	ResultQuit Result = iota
	// ResultWon means the challenge reached its terminal state.
	ResultWon
)

// FrameSource produces video frames.
type FrameSource interface {
	Read(dst *gocv.Mat) bool
	Close() error
}

// Renderer is the drawing surface the session talks to.
// One Clear/draw/Present cycle per tick.
type Renderer interface {
	Clear()
	DrawCross(center image.Point, width, height, thickness int, c color.RGBA)
	DrawCircle(center image.Point, radius int, c color.RGBA)
	Present() display.Event
	Threshold() int
	Size() (w, h int)
}

// StateSink receives session state updates for the dashboard.
type StateSink interface {
	UpdateCalibration(step int, direction string, playing bool)
	UpdateGaze(left, right *game.Point)
	UpdateChallenge(radius float64, won bool)
	UpdateThresholds(t game.Thresholds)
	AddLog(logType, message string)
}

// Session runs one calibration-plus-challenge sitting. Single-threaded and
// frame-synchronous: one tick per acquired frame, no state shared across
// ticks except through the calibrator and the challenge.
type Session struct {
	id         uuid.UUID
	source     FrameSource
	extract    vision.Extractor
	render     Renderer
	thresholds *vision.Manager
	sink       StateSink

	cal  *game.Calibrator
	chal *game.Challenge
	gaze game.GazeSample
}

// New creates a session. sink may be nil when no dashboard is attached.
func New(source FrameSource, extract vision.Extractor, render Renderer,
	thresholds *vision.Manager, challengeCfg game.Config, sink StateSink) (*Session, error) {
	if err := challengeCfg.Validate(); err != nil {
		return nil, err
	}
	return &Session{
		id:         uuid.New(),
		source:     source,
		extract:    extract,
		render:     render,
		thresholds: thresholds,
		sink:       sink,
		cal:        game.NewCalibrator(),
		chal:       game.NewChallenge(challengeCfg),
	}, nil
}

// ID returns the session identity used in diagnostics.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Run drives the tick loop until the user quits, the challenge is won, or
// the context is canceled. Per-tick detection failures never abort the loop;
// a tick with nothing detected renders with prior state and moves on.
func (s *Session) Run(ctx context.Context) (Result, error) {
	frame := gocv.NewMat()
	defer frame.Close()

	log.Info("session started", "id", s.id.String())
	if s.sink != nil {
		s.sink.UpdateCalibration(s.cal.Step(), "", false)
	}

	for {
		// Quit is checked once per tick and short-circuits it.
		select {
		case <-ctx.Done():
			s.dumpDiagnostics()
			return ResultQuit, nil
		default:
		}

		// The challenge only steps on a fresh observation: a stalled camera
		// or a failed extraction holds prior state instead of replaying the
		// last gaze sample.
		if s.source.Read(&frame) {
			feats, err := s.extract.Extract(frame, s.threshold())
			if err != nil {
				log.Warn("feature extraction", "err", err)
			} else {
				s.observe(feats.Gaze())
				if s.playStep() {
					log.Info("challenge won", "id", s.id.String())
					return ResultWon, nil
				}
			}
		}

		s.renderTick()

		switch s.render.Present() {
		case display.EventQuit:
			s.dumpDiagnostics()
			return ResultQuit, nil
		case display.EventAdvance:
			s.handleAdvance()
		}
	}
}

// threshold reconciles the window trackbar with the shared manager and
// returns this tick's pupil threshold. The manager is canonical; trackbar
// moves write through it so the dashboard and the window stay in step.
func (s *Session) threshold() int {
	t := s.render.Threshold()
	if t != s.thresholds.Threshold() {
		if err := s.thresholds.SetThreshold(t); err != nil {
			log.Warn("trackbar threshold rejected", "value", t, "err", err)
		}
	}
	return s.thresholds.Threshold()
}

// observe feeds the tick's gaze sample to the calibrator, both eyes before
// any decision that depends on them.
func (s *Session) observe(g game.GazeSample) {
	s.gaze = g

	if !s.cal.Ready() {
		left := s.cal.Observe(game.EyeLeft, g.Left)
		right := s.cal.Observe(game.EyeRight, g.Right)
		if left || right {
			if dir, ok := game.DirectionForStep(s.cal.Step()); ok {
				log.Debug("sample captured", "direction", dir.String(),
					"left", left, "right", right)
			}
		}
		// The final direction's capture is what completes derivation.
		if s.cal.Ready() {
			s.announceThresholds()
		}
	}

	if s.sink != nil {
		s.sink.UpdateGaze(g.Left, g.Right)
	}
}

// playStep advances the challenge once the playing phase is active and
// reports a win.
func (s *Session) playStep() bool {
	if !s.cal.Ready() {
		return false
	}

	th, err := s.cal.Thresholds()
	if err != nil {
		return false
	}
	center, err := s.cal.Center()
	if err != nil {
		return false
	}

	radius, won := s.chal.Step(s.gaze.Canonical(), th, center)
	if s.sink != nil {
		s.sink.UpdateChallenge(radius, won)
	}
	return won
}

// renderTick draws the current step's cross or the challenge circle. The
// cross hides while a capture is pending so the user holds their gaze on
// the target they were just asked to fixate.
func (s *Session) renderTick() {
	s.render.Clear()
	w, h := s.render.Size()

	if !s.cal.IsComplete() {
		if s.cal.CaptureIdle() {
			if center, ok := display.CrossCenter(s.cal.Step(), w, h); ok {
				s.render.DrawCross(center, display.CrossSize, display.CrossSize,
					display.CrossThickness, display.ColorBlue)
			}
		}
		return
	}

	if s.cal.Ready() {
		s.render.DrawCircle(image.Pt(w/2, h/2), int(s.chal.Radius()), display.ColorRed)
	}
}

// handleAdvance applies the user's next signal to the calibration.
func (s *Session) handleAdvance() {
	wasReady := s.cal.Ready()
	err := s.cal.Advance()

	var inc *game.IncompleteCalibrationError
	switch {
	case err == nil:
		if !wasReady && s.cal.Ready() {
			s.announceThresholds()
		}
	case errors.As(err, &inc):
		// Rewound to the missing direction; the user redoes it.
		log.Warn("calibration incomplete", "missing", inc.Error())
		if s.sink != nil {
			s.sink.AddLog("calibration", inc.Error())
		}
	case errors.Is(err, game.ErrCalibrationComplete):
		// The next signal means nothing once playing.
	default:
		log.Warn("advance", "err", err)
	}

	if s.sink != nil {
		dir := ""
		if d, ok := game.DirectionForStep(s.cal.Step()); ok {
			dir = d.String()
		}
		s.sink.UpdateCalibration(s.cal.Step(), dir, s.cal.Ready())
	}
}

// announceThresholds publishes freshly derived thresholds.
func (s *Session) announceThresholds() {
	th, err := s.cal.Thresholds()
	if err != nil {
		return
	}
	log.Info("calibration complete",
		"top", th.Top, "bottom", th.Bottom, "left", th.Left, "right", th.Right)
	if s.sink != nil {
		s.sink.UpdateThresholds(th)
		s.sink.AddLog("calibration", "thresholds derived, challenge armed")
	}
}

// dumpDiagnostics logs the captured calibration data so an aborted session
// still leaves something to debug against.
func (s *Session) dumpDiagnostics() {
	samples := make(map[string][]game.Point)
	for d, pts := range s.cal.Samples() {
		samples[d.String()] = pts
	}
	data, err := json.Marshal(samples)
	if err != nil {
		log.Error("marshal diagnostics", "err", err)
		return
	}

	attrs := []any{"id", s.id.String(), "samples", string(data)}
	if th, err := s.cal.Thresholds(); err == nil {
		if tdata, err := json.Marshal(th); err == nil {
			attrs = append(attrs, "thresholds", string(tdata))
		}
	}
	log.Info("session diagnostics", attrs...)
}
