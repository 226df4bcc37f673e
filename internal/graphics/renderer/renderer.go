package renderer

import (
	"glpipeline/internal/graphics"
	"glpipeline/internal/profiling"
)

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	gpu         *graphics.Context
	renderables []Renderable
	camera      *graphics.Camera
	clearColor  [4]float32
}

// NewRenderer initializes every renderable in order. If one fails, the
// ones already initialized are disposed before the error is returned.
func NewRenderer(gpu *graphics.Context, width, height int, clearColor [4]float32, rs ...Renderable) (*Renderer, error) {
	r := &Renderer{
		gpu:        gpu,
		camera:     graphics.NewCamera(width, height),
		clearColor: clearColor,
	}
	for _, renderable := range rs {
		if err := renderable.Init(gpu); err != nil {
			r.Dispose()
			return nil, err
		}
		r.renderables = append(r.renderables, renderable)
	}
	gpu.Viewport(width, height)
	return r, nil
}

// Render clears the frame and renders all features
func (r *Renderer) Render(now, dt float64) {
	defer profiling.Track("renderer.Render")()

	r.gpu.Clear(r.clearColor)

	ctx := RenderContext{
		GPU:    r.gpu,
		Camera: r.camera,
		Time:   now,
		DT:     dt,
		Proj:   r.camera.Projection(),
	}
	for _, renderable := range r.renderables {
		renderable.Render(ctx)
	}
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
	r.renderables = nil
}

// UpdateViewport follows a framebuffer resize.
func (r *Renderer) UpdateViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.camera.SetViewport(width, height)
	r.gpu.Viewport(width, height)
}
