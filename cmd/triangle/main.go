package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"glpipeline/internal/app"
	"glpipeline/internal/config"
	"glpipeline/internal/graphics"
	"glpipeline/internal/graphics/gldriver"
	"glpipeline/internal/graphics/renderables/triangle"
	renderer "glpipeline/internal/graphics/renderer"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const defaultConfigFile = "triangle.yaml"

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

func main() {
	title := flag.String("title", "", "window title, overrides the config file")
	flag.Parse()

	if err := run(*title); err != nil {
		slog.Error("triangle exited", "error", err)
		printDriverLog(err)
		os.Exit(1)
	}
}

// loadSettings reads $TRIANGLE_CONFIG, or triangle.yaml when present.
func loadSettings() (config.Settings, error) {
	path := os.Getenv("TRIANGLE_CONFIG")
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return config.Default(), nil
		}
		path = defaultConfigFile
	}
	return config.Load(path)
}

func run(title string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if title != "" {
		settings.Title = title
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: settings.LogLevel}))
	slog.SetDefault(logger)
	config.SetFPSLimit(settings.FPSLimit)

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := app.SetupWindow(settings)
	if err != nil {
		return err
	}
	defer window.Destroy()

	driver, err := gldriver.New()
	if err != nil {
		return err
	}
	logger.Info("context ready", "version", driver.Version(), "renderer", driver.Renderer())

	gpu := graphics.NewContext(driver)
	tri := triangle.NewTriangle(triangle.Options{
		ShaderDir: settings.ShaderDir,
		Logger:    logger,
	})

	fbWidth, fbHeight := window.GetFramebufferSize()
	r, err := renderer.NewRenderer(gpu, fbWidth, fbHeight, settings.ClearColor, tri)
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}
	defer r.Dispose()

	app.NewApp(window, r, logger, app.Options{
		SlowFrame:     settings.SlowFrame,
		VSync:         settings.VSync,
		ReloadShaders: tri.ReloadShaders,
	}).Run()
	return nil
}

// printDriverLog writes a compiler or linker log unescaped so that line
// numbers in it stay readable.
func printDriverLog(err error) {
	var ce *graphics.CompileError
	var le *graphics.LinkError
	switch {
	case errors.As(err, &ce):
		fmt.Fprintf(os.Stderr, "%s shader log:\n%s\n", ce.Stage, ce.Log)
	case errors.As(err, &le):
		fmt.Fprintf(os.Stderr, "link log:\n%s\n", le.Log)
	}
}
