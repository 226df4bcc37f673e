package graphics

import "github.com/go-gl/mathgl/mgl32"

// UniformLocation addresses a uniform inside the program that resolved it.
// It is tied to that *Program, not to its driver id, which the driver may
// hand out again after the program is deleted.
type UniformLocation struct {
	owner *Program
	loc   int32
}

// NoUniform is returned for names the program does not use.
var NoUniform = UniformLocation{loc: -1}

// Valid reports whether u refers to an active uniform.
func (u UniformLocation) Valid() bool { return u.loc >= 0 }

// Location returns the raw driver location, -1 for NoUniform.
func (u UniformLocation) Location() int32 { return u.loc }

// Value is a uniform payload. The set of implementations is closed; each
// one is uploaded through exactly one Driver entry point.
type Value interface {
	// GLSLType returns the GLSL type the value uploads to.
	GLSLType() string
	upload(d Driver, loc int32)
}

type (
	Float float32
	Vec2  mgl32.Vec2
	Vec3  mgl32.Vec3
	Vec4  mgl32.Vec4
	Mat2  mgl32.Mat2
	Mat3  mgl32.Mat3
	Mat4  mgl32.Mat4
)

// Rectangular matrices are named the GLSL way, columns x rows. mgl32 names
// them rows x columns, so a GLSL mat2x3 (two columns of three) is an
// mgl32.Mat3x2. Both store columns contiguously.
type (
	Mat2x3 mgl32.Mat3x2
	Mat2x4 mgl32.Mat4x2
	Mat3x2 mgl32.Mat2x3
	Mat3x4 mgl32.Mat4x3
	Mat4x2 mgl32.Mat2x4
	Mat4x3 mgl32.Mat3x4
)

func (Float) GLSLType() string  { return "float" }
func (Vec2) GLSLType() string   { return "vec2" }
func (Vec3) GLSLType() string   { return "vec3" }
func (Vec4) GLSLType() string   { return "vec4" }
func (Mat2) GLSLType() string   { return "mat2" }
func (Mat3) GLSLType() string   { return "mat3" }
func (Mat4) GLSLType() string   { return "mat4" }
func (Mat2x3) GLSLType() string { return "mat2x3" }
func (Mat2x4) GLSLType() string { return "mat2x4" }
func (Mat3x2) GLSLType() string { return "mat3x2" }
func (Mat3x4) GLSLType() string { return "mat3x4" }
func (Mat4x2) GLSLType() string { return "mat4x2" }
func (Mat4x3) GLSLType() string { return "mat4x3" }

func (v Float) upload(d Driver, loc int32)  { d.Uniform1f(loc, float32(v)) }
func (v Vec2) upload(d Driver, loc int32)   { d.Uniform2f(loc, v) }
func (v Vec3) upload(d Driver, loc int32)   { d.Uniform3f(loc, v) }
func (v Vec4) upload(d Driver, loc int32)   { d.Uniform4f(loc, v) }
func (v Mat2) upload(d Driver, loc int32)   { d.UniformMatrix2(loc, v) }
func (v Mat3) upload(d Driver, loc int32)   { d.UniformMatrix3(loc, v) }
func (v Mat4) upload(d Driver, loc int32)   { d.UniformMatrix4(loc, v) }
func (v Mat2x3) upload(d Driver, loc int32) { d.UniformMatrix2x3(loc, v) }
func (v Mat2x4) upload(d Driver, loc int32) { d.UniformMatrix2x4(loc, v) }
func (v Mat3x2) upload(d Driver, loc int32) { d.UniformMatrix3x2(loc, v) }
func (v Mat3x4) upload(d Driver, loc int32) { d.UniformMatrix3x4(loc, v) }
func (v Mat4x2) upload(d Driver, loc int32) { d.UniformMatrix4x2(loc, v) }
func (v Mat4x3) upload(d Driver, loc int32) { d.UniformMatrix4x3(loc, v) }
