package graphics_test

import (
	"testing"

	"glpipeline/internal/graphics"
	"glpipeline/internal/graphics/graphicstest"

	"github.com/stretchr/testify/require"
)

const vertexSrc = `#version 410 core
layout(location = 0) in vec3 aPos;
out vec3 vPos;
void main() {
	vPos = aPos;
	gl_Position = vec4(aPos, 1.0);
}
`

const fragmentSrc = `#version 410 core
in vec3 vPos;
uniform vec3 triangleColor;
uniform float unused;
out vec4 fragColor;
void main() {
	fragColor = vec4(triangleColor, 1.0);
}
`

// fragment input that no vertex output writes
const mismatchedFragmentSrc = `#version 410 core
in vec2 vTexCoord;
uniform sampler2D tex;
out vec4 fragColor;
void main() {
	fragColor = texture(tex, vTexCoord);
}
`

const brokenSrc = `#version 410 core
void main() {
	gl_Position = vec4(1.0;
}
`

func newContext(t *testing.T) (*graphics.Context, *graphicstest.Driver) {
	t.Helper()
	d := graphicstest.New()
	t.Cleanup(func() {
		require.Empty(t, d.Errors, "driver rejected calls")
	})
	return graphics.NewContext(d), d
}

func compile(t *testing.T, ctx *graphics.Context, src string, stage graphics.Stage) *graphics.Shader {
	t.Helper()
	s, err := graphics.Compile(ctx, src, stage)
	require.NoError(t, err)
	return s
}

func linkTriangle(t *testing.T, ctx *graphics.Context) *graphics.Program {
	t.Helper()
	p, err := graphics.NewProgram(ctx,
		graphics.Source{Stage: graphics.StageVertex, Text: vertexSrc},
		graphics.Source{Stage: graphics.StageFragment, Text: fragmentSrc},
	)
	require.NoError(t, err)
	return p
}

func upload(entry string, data ...float32) graphicstest.Upload {
	return graphicstest.Upload{Entry: entry, Data: data}
}
