package triangle

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"glpipeline/internal/graphics"
	renderer "glpipeline/internal/graphics/renderer"
	"glpipeline/internal/profiling"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

//go:embed shaders/triangle.vert shaders/triangle.frag
var embedded embed.FS

// ShaderFiles are the stage files, looked up in the embedded set or in
// Options.ShaderDir.
var ShaderFiles = []string{"triangle.vert", "triangle.frag"}

// Vertices is one triangle, three position components per vertex.
var Vertices = []float32{
	-0.5, -0.5, 0.0,
	0.5, -0.5, 0.0,
	0.0, 0.5, 0.0,
}

const (
	colorUniform      = "triangleColor"
	projectionUniform = "projection"
)

// Pulse returns the animated color at t seconds: red with a green channel
// oscillating between 0 and 1.
func Pulse(t float64) mgl32.Vec3 {
	return mgl32.Vec3{1, math32.Sin(float32(t))/2 + 0.5, 0}
}

// Options configure the triangle renderable.
type Options struct {
	// ShaderDir enables loading and hot reloading shaders from disk.
	ShaderDir string
	Logger    *slog.Logger
	// Color overrides Pulse.
	Color func(t float64) mgl32.Vec3
}

// Triangle draws a single colored triangle.
type Triangle struct {
	opts     Options
	program  *graphics.Program
	reloader *graphics.Reloader
	mesh     *graphics.Mesh

	color      graphics.UniformLocation
	projection graphics.UniformLocation
}

// NewTriangle creates a new triangle renderable
func NewTriangle(opts Options) *Triangle {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Color == nil {
		opts.Color = Pulse
	}
	return &Triangle{opts: opts}
}

// Init builds the program and uploads the vertices
func (t *Triangle) Init(gpu *graphics.Context) error {
	if err := t.buildProgram(gpu); err != nil {
		return err
	}

	mesh, err := graphics.NewMesh(gpu, Vertices, 3, graphics.Triangles)
	if err != nil {
		t.releaseProgram()
		return fmt.Errorf("triangle mesh: %w", err)
	}
	t.mesh = mesh

	t.resolveUniforms()
	t.opts.Logger.Debug("triangle ready",
		"program", t.program.ID(),
		"color_location", t.color.Location(),
		"projection_location", t.projection.Location())
	return nil
}

func (t *Triangle) buildProgram(gpu *graphics.Context) error {
	if t.opts.ShaderDir != "" {
		r, err := graphics.NewReloader(gpu, t.opts.ShaderDir, ShaderFiles, t.opts.Logger)
		if err != nil {
			return err
		}
		t.reloader = r
		t.program = r.Program()
		return nil
	}

	shaders, err := fs.Sub(embedded, "shaders")
	if err != nil {
		return err
	}
	sources, err := graphics.LoadSources(shaders, ShaderFiles...)
	if err != nil {
		return err
	}
	t.program, err = graphics.NewProgram(gpu, sources...)
	return err
}

func (t *Triangle) resolveUniforms() {
	t.color = t.program.Uniform(colorUniform)
	t.projection = t.program.Uniform(projectionUniform)
}

// ReloadShaders rebuilds the program from ShaderDir on the next frame.
// It reports false when the shaders are embedded.
func (t *Triangle) ReloadShaders() bool {
	if t.reloader == nil {
		return false
	}
	t.reloader.Request()
	return true
}

// Render draws the triangle with the color for the current time
func (t *Triangle) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.renderTriangle")()

	if t.reloader != nil {
		swapped, err := t.reloader.Poll()
		if err != nil {
			t.opts.Logger.Error("shader reload failed, keeping previous program", "error", err)
		}
		if swapped {
			t.program = t.reloader.Program()
			t.resolveUniforms()
		}
	}

	t.program.Bind()
	t.program.Set(t.projection, graphics.Mat4(ctx.Proj))
	t.program.Set(t.color, graphics.Vec3(t.opts.Color(ctx.Time)))
	t.mesh.Draw()
}

// Dispose releases the program and the mesh
func (t *Triangle) Dispose() {
	if t.mesh != nil {
		t.mesh.Delete()
		t.mesh = nil
	}
	t.releaseProgram()
}

func (t *Triangle) releaseProgram() {
	if t.reloader != nil {
		if err := t.reloader.Close(); err != nil {
			t.opts.Logger.Warn("closing shader watcher", "error", err)
		}
		t.reloader = nil
	} else if t.program != nil {
		t.program.Delete()
	}
	t.program = nil
}
