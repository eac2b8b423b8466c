package game

import "errors"

// Config holds the tunable parameters for the gaze challenge.
type Config struct {
	InitialRadius float64 // circle radius at the start and after every reset
	Decrement     float64 // radius shrink per in-bounds frame
	WinFloor      float64 // radius floor at which the challenge is won
}

// DefaultConfig returns the reference challenge tuning.
func DefaultConfig() Config {
	return Config{
		InitialRadius: 100,
		Decrement:     5,
		WinFloor:      5,
	}
}

// ConfigForDisplay returns the default tuning with the circle starting as
// large as the longer display edge.
func ConfigForDisplay(w, h int) Config {
	cfg := DefaultConfig()
	cfg.InitialRadius = float64(max(w, h))
	return cfg
}

// Validate checks the config values.
func (c Config) Validate() error {
	if c.InitialRadius <= 0 {
		return errors.New("initial radius must be positive")
	}
	if c.Decrement <= 0 {
		return errors.New("decrement must be positive")
	}
	if c.WinFloor < 0 || c.WinFloor >= c.InitialRadius {
		return errors.New("win floor must be in [0, initial radius)")
	}
	return nil
}

// Challenge maintains the shrinking-circle radius as a liveness signal:
// it shrinks while the gaze sample stays inside the calibrated bounds and
// snaps back to the initial radius the instant it leaves (or is absent).
type Challenge struct {
	cfg    Config
	radius float64
	won    bool
}

// NewChallenge creates a challenge at the full initial radius.
func NewChallenge(cfg Config) *Challenge {
	return &Challenge{
		cfg:    cfg,
		radius: cfg.InitialRadius,
	}
}

// Radius returns the current radius.
func (c *Challenge) Radius() float64 {
	return c.radius
}

// Won reports whether the challenge has reached its terminal state.
func (c *Challenge) Won() bool {
	return c.won
}

// Step advances the challenge by one frame and returns the new radius plus
// whether the challenge is won. sample and center must be in the same
// coordinate space. An absent sample or an out-of-bounds displacement resets
// the radius in full. An in-bounds sample shrinks it by one decrement; when
// the decrement after that would cross below the win floor, the challenge
// signals completion in the same call and the radius holds. Won is terminal:
// further calls mutate nothing.
func (c *Challenge) Step(sample *Point, t Thresholds, center Point) (float64, bool) {
	if c.won {
		return c.radius, true
	}

	if sample == nil {
		c.radius = c.cfg.InitialRadius
		return c.radius, false
	}

	dx := sample.X - center.X
	dy := sample.Y - center.Y
	if !t.Contains(dx, dy) {
		c.radius = c.cfg.InitialRadius
		return c.radius, false
	}

	next := c.radius - c.cfg.Decrement
	if next < 0 {
		next = 0
	}
	c.radius = next

	if next-c.cfg.Decrement < c.cfg.WinFloor {
		c.won = true
	}
	return c.radius, c.won
}
