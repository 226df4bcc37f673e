// Package gldriver implements graphics.Driver on top of OpenGL 4.1 core.
package gldriver

import (
	"fmt"
	"strings"

	"glpipeline/internal/graphics"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Driver forwards to the go-gl bindings. It holds no state of its own.
type Driver struct{}

var _ graphics.Driver = Driver{}

// New resolves the GL entry points. A context must be current on the
// calling thread.
func New() (Driver, error) {
	if err := gl.Init(); err != nil {
		return Driver{}, fmt.Errorf("gl.Init failed: %w", err)
	}
	return Driver{}, nil
}

// Version returns the GL_VERSION string of the current context.
func (Driver) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// Renderer returns the GL_RENDERER string of the current context.
func (Driver) Renderer() string {
	return gl.GoStr(gl.GetString(gl.RENDERER))
}

func stageEnum(s graphics.Stage) uint32 {
	switch s {
	case graphics.StageFragment:
		return gl.FRAGMENT_SHADER
	case graphics.StageGeometry:
		return gl.GEOMETRY_SHADER
	default:
		return gl.VERTEX_SHADER
	}
}

func primitiveEnum(p graphics.Primitive) uint32 {
	switch p {
	case graphics.Lines:
		return gl.LINES
	case graphics.Points:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}

func (Driver) CreateShader(stage graphics.Stage) uint32 {
	return gl.CreateShader(stageEnum(stage))
}

func (Driver) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (Driver) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (Driver) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (Driver) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	log := make([]byte, logLength+1)
	gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
	return trimLog(log)
}

func (Driver) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (Driver) CreateProgram() uint32 { return gl.CreateProgram() }

func (Driver) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (Driver) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (Driver) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (Driver) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	log := make([]byte, logLength+1)
	gl.GetProgramInfoLog(program, logLength, nil, &log[0])
	return trimLog(log)
}

func (Driver) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (Driver) UseProgram(program uint32) { gl.UseProgram(program) }

func (Driver) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (Driver) Uniform1f(loc int32, v float32)    { gl.Uniform1f(loc, v) }
func (Driver) Uniform2f(loc int32, v [2]float32) { gl.Uniform2fv(loc, 1, &v[0]) }
func (Driver) Uniform3f(loc int32, v [3]float32) { gl.Uniform3fv(loc, 1, &v[0]) }
func (Driver) Uniform4f(loc int32, v [4]float32) { gl.Uniform4fv(loc, 1, &v[0]) }

func (Driver) UniformMatrix2(loc int32, m [4]float32) {
	gl.UniformMatrix2fv(loc, 1, false, &m[0])
}
func (Driver) UniformMatrix3(loc int32, m [9]float32) {
	gl.UniformMatrix3fv(loc, 1, false, &m[0])
}
func (Driver) UniformMatrix4(loc int32, m [16]float32) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}
func (Driver) UniformMatrix2x3(loc int32, m [6]float32) {
	gl.UniformMatrix2x3fv(loc, 1, false, &m[0])
}
func (Driver) UniformMatrix3x2(loc int32, m [6]float32) {
	gl.UniformMatrix3x2fv(loc, 1, false, &m[0])
}
func (Driver) UniformMatrix2x4(loc int32, m [8]float32) {
	gl.UniformMatrix2x4fv(loc, 1, false, &m[0])
}
func (Driver) UniformMatrix4x2(loc int32, m [8]float32) {
	gl.UniformMatrix4x2fv(loc, 1, false, &m[0])
}
func (Driver) UniformMatrix3x4(loc int32, m [12]float32) {
	gl.UniformMatrix3x4fv(loc, 1, false, &m[0])
}
func (Driver) UniformMatrix4x3(loc int32, m [12]float32) {
	gl.UniformMatrix4x3fv(loc, 1, false, &m[0])
}

func (Driver) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (Driver) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (Driver) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (Driver) GenBuffer() uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	return vbo
}

func (Driver) BindArrayBuffer(vbo uint32) { gl.BindBuffer(gl.ARRAY_BUFFER, vbo) }

func (Driver) ArrayBufferData(data []float32) {
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (Driver) DeleteBuffer(vbo uint32) { gl.DeleteBuffers(1, &vbo) }

func (Driver) VertexAttribPointer(index uint32, components, stride int32, offset int) {
	gl.VertexAttribPointer(index, components, gl.FLOAT, false, stride, gl.PtrOffset(offset))
}

func (Driver) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (Driver) DrawArrays(primitive graphics.Primitive, first, count int32) {
	gl.DrawArrays(primitiveEnum(primitive), first, count)
}

func (Driver) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (Driver) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (Driver) Clear() { gl.Clear(gl.COLOR_BUFFER_BIT) }

func (Driver) ReadPixels(x, y, width, height int32) []byte {
	pix := make([]byte, int(width)*int(height)*4)
	if len(pix) == 0 {
		return pix
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(x, y, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	return pix
}

// trimLog drops the terminating NULs and trailing whitespace drivers append.
func trimLog(log []byte) string {
	return strings.TrimRight(string(log), "\x00 \r\n")
}
