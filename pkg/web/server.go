// Package web provides a real-time debug dashboard for the gaze demo.
package web

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/lookstill/lookstill/internal/log"
	"github.com/lookstill/lookstill/pkg/game"
	"github.com/lookstill/lookstill/pkg/hub"
	"github.com/lookstill/lookstill/pkg/vision"
)

// State is the demo snapshot streamed to dashboard clients.
type State struct {
	SessionID      string           `json:"session_id"`
	Phase          string           `json:"phase"` // calibrating, playing, won
	Step           int              `json:"step"`
	Direction      string           `json:"direction,omitempty"`
	Radius         float64          `json:"radius"`
	Thresholds     *game.Thresholds `json:"thresholds,omitempty"`
	LeftEye        *game.Point      `json:"left_eye,omitempty"`
	RightEye       *game.Point      `json:"right_eye,omitempty"`
	PupilThreshold int              `json:"pupil_threshold"`
}

// LogEntry is one dashboard log line.
type LogEntry struct {
	Time    string `json:"time"`
	Type    string `json:"type"` // info, calibration, challenge, error
	Message string `json:"message"`
}

const maxLogEntries = 500

// Server is the dashboard server.
type Server struct {
	app  *fiber.App
	port string

	state   State
	stateMu sync.RWMutex

	logs   []LogEntry
	logsMu sync.RWMutex

	stateHub *hub.Hub
	logHub   *hub.Hub

	// Live pupil threshold control
	thresholds *vision.Manager
}

// NewServer creates the dashboard server. thresholds is the live pupil
// threshold control exposed at /api/threshold.
func NewServer(port string, thresholds *vision.Manager) *Server {
	s := &Server{
		port:       port,
		logs:       make([]LogEntry, 0, maxLogEntries),
		stateHub:   hub.New("state"),
		logHub:     hub.New("logs"),
		thresholds: thresholds,
	}

	app := fiber.New(fiber.Config{
		AppName:               "lookstill dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/state", s.handleState)
	api.Get("/logs", s.handleLogs)
	api.Get("/threshold", s.handleGetThreshold)
	api.Put("/threshold", s.handlePutThreshold)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/state", websocket.New(s.handleStateWS))
	app.Get("/ws/logs", websocket.New(s.handleLogsWS))

	s.app = app
	return s
}

// Start starts the dashboard and blocks.
func (s *Server) Start() error {
	log.Info("dashboard listening", "addr", "http://localhost:"+s.port)

	go s.stateHub.Run()
	go s.logHub.Run()

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the dashboard in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("dashboard server", "err", err)
		}
	}()
}

// Shutdown stops the dashboard gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// UpdateState applies a mutation to the state and broadcasts the result.
func (s *Server) UpdateState(update func(*State)) {
	s.stateMu.Lock()
	update(&s.state)
	if s.thresholds != nil {
		s.state.PupilThreshold = s.thresholds.Threshold()
	}
	state := s.state // copy for broadcast
	s.stateMu.Unlock()

	s.stateHub.BroadcastJSON(state)
}

// AddLog appends a dashboard log line and broadcasts it.
func (s *Server) AddLog(logType, message string) {
	entry := LogEntry{
		Time:    time.Now().Format("15:04:05"),
		Type:    logType,
		Message: message,
	}

	s.logsMu.Lock()
	s.logs = append(s.logs, entry)
	if len(s.logs) > maxLogEntries {
		s.logs = s.logs[len(s.logs)-maxLogEntries:]
	}
	s.logsMu.Unlock()

	s.logHub.BroadcastJSON(entry)
}

// UpdateCalibration records calibration progress. Implements the session's
// state sink.
func (s *Server) UpdateCalibration(step int, direction string, playing bool) {
	s.UpdateState(func(st *State) {
		st.Step = step
		st.Direction = direction
		if playing {
			st.Phase = "playing"
		} else {
			st.Phase = "calibrating"
		}
	})
}

// UpdateGaze records the latest per-eye pupil samples.
func (s *Server) UpdateGaze(left, right *game.Point) {
	s.UpdateState(func(st *State) {
		st.LeftEye = left
		st.RightEye = right
	})
}

// UpdateChallenge records the challenge radius and terminal state.
func (s *Server) UpdateChallenge(radius float64, won bool) {
	s.UpdateState(func(st *State) {
		st.Radius = radius
		if won {
			st.Phase = "won"
		}
	})
}

// UpdateThresholds records the derived calibration thresholds.
func (s *Server) UpdateThresholds(t game.Thresholds) {
	s.UpdateState(func(st *State) {
		st.Thresholds = &t
	})
}

// SetSessionID tags the state stream with the session identity.
func (s *Server) SetSessionID(id string) {
	s.UpdateState(func(st *State) {
		st.SessionID = id
	})
}
