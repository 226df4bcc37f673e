package graphics_test

import (
	"testing"

	"glpipeline/internal/graphics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var triangle = []float32{
	-0.5, -0.5, 0.0,
	0.5, -0.5, 0.0,
	0.0, 0.5, 0.0,
}

func TestNewMeshUploadsVertices(t *testing.T) {
	ctx, d := newContext(t)

	m, err := graphics.NewMesh(ctx, triangle, 3, graphics.Triangles)
	require.NoError(t, err)
	assert.Equal(t, int32(3), m.Count())

	assert.Equal(t, 2, d.Live())
	assert.Equal(t, 1, d.Count("VertexAttribPointer"))
	assert.Equal(t, 1, d.Count("EnableVertexAttribArray"))

	m.Delete()
	m.Delete()
	assert.Equal(t, 0, d.Live())
}

func TestNewMeshRejectsBadLayout(t *testing.T) {
	ctx, d := newContext(t)

	_, err := graphics.NewMesh(ctx, nil, 3, graphics.Triangles)
	assert.ErrorIs(t, err, graphics.ErrEmptyMesh)

	_, err = graphics.NewMesh(ctx, []float32{1, 2, 3, 4}, 3, graphics.Triangles)
	assert.ErrorIs(t, err, graphics.ErrEmptyMesh)

	_, err = graphics.NewMesh(ctx, triangle, 5, graphics.Triangles)
	assert.Error(t, err)

	assert.Zero(t, d.Allocs)
}

func TestNewMeshAllocationFailure(t *testing.T) {
	ctx, d := newContext(t)
	d.FailAlloc = true

	_, err := graphics.NewMesh(ctx, triangle, 3, graphics.Triangles)
	var re *graphics.ResourceError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "vertex array", re.Object)
	assert.Equal(t, 0, d.Live())
}

func TestDrawRequiresBoundProgram(t *testing.T) {
	ctx, d := newContext(t)

	m, err := graphics.NewMesh(ctx, triangle, 3, graphics.Triangles)
	require.NoError(t, err)
	defer m.Delete()

	assert.Panics(t, m.Draw)
	assert.Empty(t, d.Draws)

	p := linkTriangle(t, ctx)
	defer p.Delete()
	p.Bind()
	m.Draw()
	m.Draw()
	require.Len(t, d.Draws, 2)
	assert.Equal(t, int32(0), d.Draws[1].First)
}

func TestDrawDeletedMeshPanics(t *testing.T) {
	ctx, _ := newContext(t)

	m, err := graphics.NewMesh(ctx, triangle, 3, graphics.Lines)
	require.NoError(t, err)
	m.Delete()
	assert.Panics(t, m.Draw)
}
