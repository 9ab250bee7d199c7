package main

import (
	"time"

	"glview/internal/camera"
	"glview/internal/config"
	"glview/internal/input"
	"glview/internal/profiling"
	"glview/internal/scene"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FrameLoop runs the same four phases every frame: input, scene, composite, present
type FrameLoop struct {
	window       *glfw.Window
	renderer     *scene.Renderer
	camera       *camera.State
	inputManager *input.InputManager
	log          *zap.Logger

	slow slowFrames
}

func NewFrameLoop(window *glfw.Window, r *scene.Renderer, cam *camera.State, im *input.InputManager, log *zap.Logger) *FrameLoop {
	return &FrameLoop{
		window:       window,
		renderer:     r,
		camera:       cam,
		inputManager: im,
		log:          log,
		slow:         slowFrames{threshold: config.SlowFrame, interval: config.SlowFrameReportInterval},
	}
}

// Run loops until the window is asked to close
func (fl *FrameLoop) Run() {
	for !fl.window.ShouldClose() {
		fl.tick()
	}
}

func (fl *FrameLoop) tick() {
	profiling.ResetFrame()
	start := time.Now()

	fl.processInput()
	fl.renderer.RenderScene(fl.camera)
	fl.renderer.Composite()
	fl.present()

	took := time.Since(start)
	if n, ok := fl.slow.observe(time.Now(), took); ok {
		if ce := fl.log.Check(zapcore.WarnLevel, "slow frames"); ce != nil {
			ce.Write(zap.Int("count", n), zap.Duration("last", took), zap.String("top", profiling.TopN(3)))
		}
	}
}

func (fl *FrameLoop) processInput() {
	defer profiling.Track(profiling.PhaseInput)()

	if fl.inputManager.IsActive(input.ActionQuit) {
		fl.window.SetShouldClose(true)
	}
}

func (fl *FrameLoop) present() {
	defer profiling.Track(profiling.PhasePresent)()

	fl.window.SwapBuffers()
	glfw.PollEvents()
}

// slowFrames counts frames over threshold and allows at most one report per
// interval. The count covers every slow frame since the previous report.
type slowFrames struct {
	threshold time.Duration
	interval  time.Duration

	count      int
	lastReport time.Time
}

func (s *slowFrames) observe(now time.Time, took time.Duration) (int, bool) {
	if took <= s.threshold {
		return 0, false
	}
	s.count++
	if !s.lastReport.IsZero() && now.Sub(s.lastReport) < s.interval {
		return 0, false
	}
	n := s.count
	s.count = 0
	s.lastReport = now
	return n, true
}
