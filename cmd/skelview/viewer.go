package main

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-skel/internal/assets"
	"github.com/Faultbox/midgard-skel/internal/config"
	"github.com/Faultbox/midgard-skel/internal/engine/camera"
	"github.com/Faultbox/midgard-skel/internal/engine/debug"
	"github.com/Faultbox/midgard-skel/internal/engine/input"
	"github.com/Faultbox/midgard-skel/internal/engine/window"
	"github.com/Faultbox/midgard-skel/internal/logger"
	"github.com/Faultbox/midgard-skel/internal/sim"
	"github.com/Faultbox/midgard-skel/pkg/anim"
	"github.com/Faultbox/midgard-skel/pkg/math"
)

const title = "Midgard Skeleton Viewer"

type viewer struct {
	cfg     *config.Config
	running bool

	win   *window.Window
	input *input.Input
	cam   *camera.OrbitCamera
	sim   *sim.Simulation
	grid  *debug.FloorGrid
	shots *debug.ScreenshotCapture

	background anim.Color
	snapshot   bool
}

func newViewer(cfg *config.Config) (*viewer, error) {
	v := &viewer{
		cfg:        cfg,
		cam:        camera.NewOrbitCamera(),
		grid:       debug.NewFloorGrid(2, 0.25),
		shots:      debug.NewScreenshotCapture("screenshots", "skel", "png"),
		background: anim.Color{R: 0.1, G: 0.1, B: 0.12},
	}
	if bg := cfg.Snapshot.Background; len(bg) == 3 {
		v.background = anim.Color{R: bg[0], G: bg[1], B: bg[2]}
	}

	mgr := assets.NewManager()
	rig, err := mgr.LoadRig(cfg.Rig.Path)
	if err != nil {
		return nil, fmt.Errorf("loading rig: %w", err)
	}
	logger.Info("rig loaded", zap.String("name", rig.Name), zap.Strings("clips", rig.ClipNames()))

	opts, err := sim.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	// Window first: the simulation draws into it
	v.win, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.View.Width,
		Height:     cfg.View.Height,
		Fullscreen: cfg.View.Fullscreen,
		VSync:      cfg.View.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	v.sim, err = sim.New(opts, rig, rig, v.win, nil, logger.Named("sim"))
	if err != nil {
		v.win.Close()
		return nil, err
	}

	v.frame(v.sim.Skeleton().BindModel)

	v.input = input.New()
	return v, nil
}

// Run starts the main loop.
func (v *viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	var frameBudget time.Duration
	if v.cfg.View.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(v.cfg.View.FPSLimit)
	}

	logger.Info("starting viewer loop")

	for v.running {
		frameStart := time.Now()
		dt := float32(frameStart.Sub(lastTime).Seconds())
		lastTime = frameStart

		// 1. Process input
		if v.input.Update() {
			v.running = false
			break
		}
		v.handleInput()

		// 2. Update and draw
		width, height := v.win.GetSize()
		v.win.BeginFrame(v.cam.Projector(width, height), v.background)
		if v.sim.Debug() {
			v.grid.Draw(v.win)
		}
		v.sim.Update(dt)

		if v.snapshot {
			v.snapshot = false
			v.saveSnapshot()
		}

		// 3. Present
		v.win.Present()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.win.SetTitle(v.status(frameCount))
			logger.Debug("fps", zap.Int("count", frameCount), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if spent := time.Since(frameStart); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}
	}

	return nil
}

func (v *viewer) handleInput() {
	for _, b := range v.input.Bindings() {
		switch b.Action {
		case input.ActionQuit:
			v.running = false
		case input.ActionSetMode:
			v.sim.SetMode(b.Mode)
			logger.Info("pose mode", zap.Stringer("mode", b.Mode))
		case input.ActionTogglePause:
			v.sim.SetPaused(!v.sim.Paused())
		case input.ActionToggleDebug:
			v.sim.ToggleDebug()
		case input.ActionCrossFade:
			if !v.sim.TriggerCrossFade() {
				logger.Debug("cross-fade ignored")
			}
		case input.ActionSnapshot:
			v.snapshot = true
		case input.ActionFrame:
			v.frame(v.sim.Pose())
		}
	}

	if dx, dy := v.input.Drag(); dx != 0 || dy != 0 {
		v.cam.HandleDrag(dx, dy)
	}
	if w := v.input.Wheel(); w != 0 {
		v.cam.HandleZoom(w)
	}
	if f, r, u := v.input.Movement(); f != 0 || r != 0 || u != 0 {
		v.cam.HandleMovement(f, r, u)
	}
}

// frame points the camera at a pose, shifted by the skeleton offset.
func (v *viewer) frame(pose []anim.Transform) {
	lo, hi := anim.PoseBounds(pose)
	var off math.Vec3
	if o := v.cfg.View.SkeletonOffset; len(o) == 3 {
		off = math.Vec3{X: o[0], Y: o[1], Z: o[2]}
	}
	v.cam.FitPoints([]math.Vec3{lo.Add(off), hi.Add(off)})
}

func (v *viewer) saveSnapshot() {
	img, err := v.win.ReadPixels()
	if err != nil {
		logger.Warn("snapshot failed", zap.Error(err))
		return
	}
	name, err := v.shots.CaptureFromImage(img)
	if err != nil {
		logger.Warn("snapshot failed", zap.Error(err))
		return
	}
	logger.Info("snapshot saved", zap.String("path", name))
}

func (v *viewer) status(fps int) string {
	d := v.sim.Director()
	clip := "-"
	if clips := v.sim.Clips(); len(clips) > 0 {
		clip = clips[d.Primary()].Name
		if d.Blending() {
			clip = fmt.Sprintf("%s -> %s (%.0f%%)", clip, clips[d.Target()].Name, d.Fade().Weight()*100)
		}
	}
	state := ""
	if v.sim.Paused() {
		state = " [paused]"
	}
	return fmt.Sprintf("%s | %s | %s | %d fps%s", title, v.sim.Mode(), clip, fps, state)
}

// Close releases the window.
func (v *viewer) Close() {
	logger.Info("closing viewer")
	if v.win != nil {
		v.win.Close()
	}
}
