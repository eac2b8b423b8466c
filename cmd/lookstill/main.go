// lookstill - webcam gaze calibration and attention challenge demo.
// Calibrate against five fixation targets, then hold your gaze steady
// while the circle shrinks.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/lookstill/lookstill/internal/config"
	"github.com/lookstill/lookstill/internal/log"
	"github.com/lookstill/lookstill/pkg/camera"
	"github.com/lookstill/lookstill/pkg/debug"
	"github.com/lookstill/lookstill/pkg/display"
	"github.com/lookstill/lookstill/pkg/game"
	"github.com/lookstill/lookstill/pkg/session"
	"github.com/lookstill/lookstill/pkg/vision"
	"github.com/lookstill/lookstill/pkg/web"
)

const windowTitle = "lookstill"

type options struct {
	camera    camera.Config
	vision    vision.Config
	challenge game.Config
	threshold int
	dashPort  string
	noDash    bool
}

func main() {
	opts := parseFlags()

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "lookstill: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cap, err := camera.Open(opts.camera)
	if err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	defer cap.Close()

	extractor, err := vision.NewHaar(opts.vision)
	if err != nil {
		return fmt.Errorf("load cascades: %w", err)
	}
	defer extractor.Close()

	thresholds, err := vision.NewManager(opts.threshold)
	if err != nil {
		return fmt.Errorf("threshold: %w", err)
	}

	window, err := display.NewWindow(windowTitle, opts.camera.Width, opts.camera.Height, opts.threshold)
	if err != nil {
		return fmt.Errorf("open window: %w", err)
	}
	defer window.Close()

	// Dashboard edits flow back to the trackbar so the two controls agree.
	thresholds.OnChange = window.SetThreshold

	var sink session.StateSink
	var dash *web.Server
	if !opts.noDash {
		dash = web.NewServer(opts.dashPort, thresholds)
		dash.StartAsync()
		defer func() {
			if err := dash.Shutdown(); err != nil {
				log.Warn("dashboard shutdown", "err", err)
			}
		}()
		sink = dash
	}

	sess, err := session.New(cap, extractor, window, thresholds, opts.challenge, sink)
	if err != nil {
		return err
	}
	if dash != nil {
		dash.SetSessionID(sess.ID().String())
	}

	log.Info("session starting", "id", sess.ID().String(),
		"camera", opts.camera.DeviceID, "threshold", opts.threshold)

	result, err := sess.Run(ctx)
	if err != nil {
		return err
	}
	if result == session.ResultWon {
		log.Info("challenge won")
		fmt.Println("You held still. Well done.")
	}
	return nil
}

// parseFlags parses command line flags and returns configuration.
func parseFlags() options {
	camCfg := camera.DefaultConfig()
	camCfg.DeviceID = config.CameraID()
	visCfg := vision.DefaultConfig()

	cameraID := flag.Int("camera", camCfg.DeviceID, "Camera device index (overrides CAMERA_ID env var)")
	width := flag.Int("width", camCfg.Width, "Capture width in pixels")
	height := flag.Int("height", camCfg.Height, "Capture height in pixels")
	fps := flag.Int("fps", camCfg.FPS, "Capture frame rate")
	threshold := flag.Int("threshold", 42, "Initial pupil binarization threshold (0-255)")
	cascadeDir := flag.String("cascades", config.CascadeDir(), "Directory holding the Haar cascade files")
	radius := flag.Float64("radius", 0, "Starting challenge circle radius (default: larger display dimension)")
	dashPort := flag.String("dash", config.DashPort(), "Dashboard HTTP port")
	noDash := flag.Bool("no-dash", false, "Disable the web dashboard")
	logLevel := flag.String("log-level", config.LogLevel(), "Log level: debug, info, warn, error")
	dbg := flag.Bool("debug", false, "Enable verbose debug logging")
	dbgVision := flag.Bool("debug-vision", false, "Log per-frame detection details")

	radiusSet := false
	flag.Parse()
	flag.Visit(func(f *flag.Flag) { radiusSet = radiusSet || f.Name == "radius" })

	debug.Enabled = *dbg
	debug.Vision = *dbgVision
	if *dbg {
		*logLevel = "debug"
	}
	log.Init(*logLevel)

	camCfg.DeviceID, camCfg.Width, camCfg.Height, camCfg.FPS = *cameraID, *width, *height, *fps
	visCfg.FaceCascade = filepath.Join(*cascadeDir, "haarcascade_frontalface_default.xml")
	visCfg.EyeCascade = filepath.Join(*cascadeDir, "haarcascade_eye.xml")

	chalCfg := game.ConfigForDisplay(*width, *height)
	if radiusSet {
		chalCfg.InitialRadius = *radius
	}

	return options{
		camera:    camCfg,
		vision:    visCfg,
		challenge: chalCfg,
		threshold: *threshold,
		dashPort:  *dashPort,
		noDash:    *noDash,
	}
}
