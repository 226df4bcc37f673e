package app

import (
	"fmt"
	"log/slog"
	"time"

	"glpipeline/internal/config"
	renderer "glpipeline/internal/graphics/renderer"
	"glpipeline/internal/input"
	"glpipeline/internal/pacing"
	"glpipeline/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// SetupWindow opens a window with a 4.1 core context and makes it current.
// glfw.Init must already have succeeded on this thread.
func SetupWindow(s config.Settings) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(s.Width, s.Height, s.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create window: %w", err)
	}
	window.MakeContextCurrent()

	if s.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	return window, nil
}

// Options tune the frame loop
type Options struct {
	// SlowFrame is the frame time above which the profiler's top entries
	// are logged; 0 disables the report.
	SlowFrame time.Duration
	VSync     bool
	// ReloadShaders runs when the reload key is pressed and reports whether
	// a reload was scheduled.
	ReloadShaders func() bool
}

type App struct {
	window   *glfw.Window
	renderer *renderer.Renderer
	input    *input.InputManager
	logger   *slog.Logger
	opts     Options

	fpsLimiter *pacing.FPSLimiter
	fps        *pacing.FPSCounter

	start    time.Time
	lastTime time.Time
}

func NewApp(window *glfw.Window, r *renderer.Renderer, logger *slog.Logger, opts Options) *App {
	now := time.Now()
	a := &App{
		window:     window,
		renderer:   r,
		input:      input.NewInputManager(),
		logger:     logger,
		opts:       opts,
		fpsLimiter: pacing.NewFPSLimiter(),
		fps:        pacing.NewFPSCounter(time.Second, now),
		start:      now,
		lastTime:   now,
	}

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		a.renderer.UpdateViewport(width, height)
	})
	a.input.SetKeyCallback(window)
	return a
}

func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
}

func (a *App) tick() {
	profiling.ResetFrame()
	now := time.Now()
	dt := now.Sub(a.lastTime).Seconds()
	a.lastTime = now

	a.renderer.Render(now.Sub(a.start).Seconds(), dt)

	swapStart := time.Now()
	func() {
		defer profiling.Track("glfw.SwapBuffers")()
		a.window.SwapBuffers()
	}()
	func() {
		defer profiling.Track("glfw.PollEvents")()
		glfw.PollEvents()
	}()
	a.handleInput()

	if work, slow := slowFrame(now, swapStart, a.opts.SlowFrame); slow {
		a.logger.Warn("slow frame",
			"duration", work,
			"renderables", profiling.SumWithPrefix("renderer.render"),
			"top", profiling.TopN(5))
	}
	if fps, ok := a.fps.Frame(time.Now()); ok {
		a.logger.Debug("frame rate", "fps", fps)
	}

	a.input.PostUpdate()
	a.fpsLimiter.Wait()
}

// slowFrame reports the time spent building a frame and whether it went over
// threshold. The frame ends where the swap starts: with vsync the swap blocks
// until the next refresh. A zero threshold disables the report.
func slowFrame(start, swapStart time.Time, threshold time.Duration) (time.Duration, bool) {
	work := swapStart.Sub(start)
	return work, threshold > 0 && work > threshold
}

func (a *App) handleInput() {
	if a.input.JustPressed(input.ActionQuit) {
		a.window.SetShouldClose(true)
	}
	if a.input.JustPressed(input.ActionReloadShaders) {
		if a.opts.ReloadShaders == nil || !a.opts.ReloadShaders() {
			a.logger.Info("shader reload needs shader_dir in the config")
		}
	}
	if a.input.JustPressed(input.ActionToggleVSync) {
		a.opts.VSync = !a.opts.VSync
		if a.opts.VSync {
			glfw.SwapInterval(1)
		} else {
			glfw.SwapInterval(0)
		}
		a.logger.Info("vsync toggled", "enabled", a.opts.VSync)
	}
	if a.input.JustPressed(input.ActionDumpProfile) {
		a.logger.Info("frame profile", "top", profiling.TopN(10))
	}
}
