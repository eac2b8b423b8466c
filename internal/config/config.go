// Package config provides environment configuration helpers for lookstill commands.
package config

import (
	"os"
	"strconv"
)

// Defaults for the demo environment.
const (
	DefaultCameraID   = 0
	DefaultDashPort   = "8089"
	DefaultCascadeDir = "data"
	DefaultLogLevel   = "info"
)

// CameraID returns the camera device index from the CAMERA_ID env var.
// Falls back to the default device if not set or unparsable.
func CameraID() int {
	if v := os.Getenv("CAMERA_ID"); v != "" {
		if id, err := strconv.Atoi(v); err == nil && id >= 0 {
			return id
		}
	}
	return DefaultCameraID
}

// DashPort returns the dashboard port from the DASH_PORT env var.
func DashPort() string {
	if port := os.Getenv("DASH_PORT"); port != "" {
		return port
	}
	return DefaultDashPort
}

// CascadeDir returns the directory holding the Haar cascade files from the
// CASCADE_DIR env var.
func CascadeDir() string {
	if dir := os.Getenv("CASCADE_DIR"); dir != "" {
		return dir
	}
	return DefaultCascadeDir
}

// LogLevel returns the log level from the LOG_LEVEL env var.
func LogLevel() string {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return DefaultLogLevel
}
