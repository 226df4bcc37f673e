package graphics_test

import (
	"testing"

	"glpipeline/internal/graphics"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const everyShapeSrc = `#version 410 core
uniform float uFloat;
uniform vec2 uVec2;
uniform vec3 uVec3;
uniform vec4 uVec4;
uniform mat2 uMat2;
uniform mat3 uMat3;
uniform mat4 uMat4;
uniform mat2x3 uMat2x3;
uniform mat2x4 uMat2x4;
uniform mat3x2 uMat3x2;
uniform mat3x4 uMat3x4;
uniform mat4x2 uMat4x2;
uniform mat4x3 uMat4x3;
out vec4 fragColor;
void main() {
	float s = uFloat + uVec2.x + uVec3.x + uVec4.x;
	s += uMat2[0][0] + uMat3[0][0] + uMat4[0][0];
	s += uMat2x3[0][0] + uMat2x4[0][0] + uMat3x2[0][0];
	s += uMat3x4[0][0] + uMat4x2[0][0] + uMat4x3[0][0];
	fragColor = vec4(s);
}
`

func seq(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(i + 1)
	}
	return out
}

func TestEveryShapeUsesItsOwnEntryPoint(t *testing.T) {
	ctx, d := newContext(t)

	p, err := graphics.NewProgram(ctx,
		graphics.Source{Stage: graphics.StageVertex, Text: vertexSrc},
		graphics.Source{Stage: graphics.StageFragment, Text: everyShapeSrc},
	)
	require.NoError(t, err)
	defer p.Delete()
	p.Bind()

	tests := []struct {
		name  string
		value graphics.Value
		glsl  string
		entry string
		data  []float32
	}{
		{"uFloat", graphics.Float(1), "float", "Uniform1f", seq(1)},
		{"uVec2", graphics.Vec2{1, 2}, "vec2", "Uniform2f", seq(2)},
		{"uVec3", graphics.Vec3{1, 2, 3}, "vec3", "Uniform3f", seq(3)},
		{"uVec4", graphics.Vec4{1, 2, 3, 4}, "vec4", "Uniform4f", seq(4)},
		{"uMat2", graphics.Mat2{1, 2, 3, 4}, "mat2", "UniformMatrix2", seq(4)},
		{"uMat3", graphics.Mat3{1, 2, 3, 4, 5, 6, 7, 8, 9}, "mat3", "UniformMatrix3", seq(9)},
		{"uMat4", graphics.Mat4{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}, "mat4", "UniformMatrix4", seq(16)},
		{"uMat2x3", graphics.Mat2x3{1, 2, 3, 4, 5, 6}, "mat2x3", "UniformMatrix2x3", seq(6)},
		{"uMat3x2", graphics.Mat3x2{1, 2, 3, 4, 5, 6}, "mat3x2", "UniformMatrix3x2", seq(6)},
		{"uMat2x4", graphics.Mat2x4{1, 2, 3, 4, 5, 6, 7, 8}, "mat2x4", "UniformMatrix2x4", seq(8)},
		{"uMat4x2", graphics.Mat4x2{1, 2, 3, 4, 5, 6, 7, 8}, "mat4x2", "UniformMatrix4x2", seq(8)},
		{"uMat3x4", graphics.Mat3x4{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, "mat3x4", "UniformMatrix3x4", seq(12)},
		{"uMat4x3", graphics.Mat4x3{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, "mat4x3", "UniformMatrix4x3", seq(12)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.glsl, tt.value.GLSLType())

			p.SetNamed(tt.name, tt.value)
			got, ok := d.Uniform(p.ID(), tt.name)
			require.True(t, ok)
			assert.Equal(t, upload(tt.entry, tt.data...), got)
		})
	}
}

func TestMatrixUploadIsColumnMajor(t *testing.T) {
	ctx, d := newContext(t)

	p, err := graphics.NewProgram(ctx,
		graphics.Source{Stage: graphics.StageVertex, Text: vertexSrc},
		graphics.Source{Stage: graphics.StageFragment, Text: everyShapeSrc},
	)
	require.NoError(t, err)
	defer p.Delete()
	p.Bind()

	// GLSL mat2x3: two columns of three rows, an mgl32.Mat3x2
	m := mgl32.Mat3x2FromCols(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{4, 5, 6})
	p.SetNamed("uMat2x3", graphics.Mat2x3(m))

	got, ok := d.Uniform(p.ID(), "uMat2x3")
	require.True(t, ok)
	assert.Equal(t, upload("UniformMatrix2x3", 1, 2, 3, 4, 5, 6), got)

	proj := mgl32.Translate3D(7, 8, 9)
	p.SetNamed("uMat4", graphics.Mat4(proj))
	got, _ = d.Uniform(p.ID(), "uMat4")
	assert.Equal(t, []float32{7, 8, 9}, got.Data[12:15])
}
