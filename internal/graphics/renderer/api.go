package renderer

import (
	"glpipeline/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderContext provides shared per-frame state for all renderables
type RenderContext struct {
	GPU    *graphics.Context
	Camera *graphics.Camera
	// Time is seconds since the renderer started, DT since the last frame.
	Time float64
	DT   float64
	Proj mgl32.Mat4
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init(gpu *graphics.Context) error
	Render(ctx RenderContext)
	Dispose()
}
