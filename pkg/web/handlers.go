package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/lookstill/lookstill/pkg/hub"
	"github.com/lookstill/lookstill/pkg/vision"
)

// handleState returns the current demo state.
func (s *Server) handleState(c *fiber.Ctx) error {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return c.JSON(s.state)
}

// handleLogs returns recent log entries.
func (s *Server) handleLogs(c *fiber.Ctx) error {
	s.logsMu.RLock()
	defer s.logsMu.RUnlock()
	return c.JSON(s.logs)
}

// handleGetThreshold returns the live pupil threshold.
func (s *Server) handleGetThreshold(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"threshold": s.thresholds.Threshold()})
}

// ThresholdRequest is the request body for tuning the pupil threshold.
type ThresholdRequest struct {
	Threshold int `json:"threshold"`
}

// handlePutThreshold tunes the pupil threshold. Out-of-range values are
// rejected here and never reach the detector.
func (s *Server) handlePutThreshold(c *fiber.Ctx) error {
	var req ThresholdRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid body",
		})
	}

	if err := s.thresholds.SetThreshold(req.Threshold); err != nil {
		if errors.Is(err, vision.ErrThresholdRange) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	s.AddLog("info", "pupil threshold set via dashboard")
	return c.JSON(fiber.Map{"threshold": req.Threshold})
}

// handleStateWS streams state snapshots.
func (s *Server) handleStateWS(c *websocket.Conn) {
	// Send the current state before joining the broadcast stream
	s.stateMu.RLock()
	state := s.state
	s.stateMu.RUnlock()
	c.WriteJSON(state)

	hub.NewClient(s.stateHub, c).Run()
}

// handleLogsWS streams log lines.
func (s *Server) handleLogsWS(c *websocket.Conn) {
	s.logsMu.RLock()
	for _, entry := range s.logs {
		c.WriteJSON(entry)
	}
	s.logsMu.RUnlock()

	hub.NewClient(s.logHub, c).Run()
}
