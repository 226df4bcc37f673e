package graphics

// Driver is the subset of the OpenGL API used by this package. Every method
// must be called on the thread that owns the current GL context.
//
// Object constructors return 0 when the driver refuses to allocate.
type Driver interface {
	CreateShader(stage Stage) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	GetUniformLocation(program uint32, name string) int32

	// One entry point per uniform shape. Matrices are column-major and
	// never transposed; the WxH suffix follows GLSL (columns x rows).
	Uniform1f(location int32, v float32)
	Uniform2f(location int32, v [2]float32)
	Uniform3f(location int32, v [3]float32)
	Uniform4f(location int32, v [4]float32)
	UniformMatrix2(location int32, m [4]float32)
	UniformMatrix3(location int32, m [9]float32)
	UniformMatrix4(location int32, m [16]float32)
	UniformMatrix2x3(location int32, m [6]float32)
	UniformMatrix3x2(location int32, m [6]float32)
	UniformMatrix2x4(location int32, m [8]float32)
	UniformMatrix4x2(location int32, m [8]float32)
	UniformMatrix3x4(location int32, m [12]float32)
	UniformMatrix4x3(location int32, m [12]float32)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	GenBuffer() uint32
	BindArrayBuffer(vbo uint32)
	ArrayBufferData(data []float32)
	DeleteBuffer(vbo uint32)
	VertexAttribPointer(index uint32, components int32, stride int32, offset int)
	EnableVertexAttribArray(index uint32)
	DrawArrays(primitive Primitive, first, count int32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear()
	// ReadPixels returns RGBA8 pixels with the bottom row first.
	ReadPixels(x, y, width, height int32) []byte
}

// Context pairs a Driver with the state this package tracks on top of it.
// The GL "current program" is global to the context; Context makes it
// explicit so callers and tests can observe it.
type Context struct {
	d     Driver
	bound uint32
}

// NewContext wraps d. The GL context must already be current on the
// calling thread.
func NewContext(d Driver) *Context {
	return &Context{d: d}
}

// Driver returns the wrapped driver.
func (c *Context) Driver() Driver { return c.d }

// Bound returns the id of the currently bound program, or 0.
func (c *Context) Bound() uint32 { return c.bound }

// Viewport sets the drawable area in framebuffer pixels.
func (c *Context) Viewport(width, height int) {
	c.d.Viewport(0, 0, int32(width), int32(height))
}

// Clear fills the color buffer with the given color.
func (c *Context) Clear(color [4]float32) {
	c.d.ClearColor(color[0], color[1], color[2], color[3])
	c.d.Clear()
}

func (c *Context) use(program uint32) {
	if c.bound == program {
		return
	}
	c.d.UseProgram(program)
	c.bound = program
}
