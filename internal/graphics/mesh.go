package graphics

import "fmt"

// Primitive is the topology used to assemble vertices.
type Primitive int

const (
	Triangles Primitive = iota
	Lines
	Points
)

// Mesh is a vertex array with a single float attribute at location 0.
type Mesh struct {
	ctx       *Context
	vao       uint32
	vbo       uint32
	count     int32
	primitive Primitive
}

// NewMesh uploads vertices, components floats per vertex, into a new vertex
// array and buffer. Both objects are released if either allocation fails.
func NewMesh(ctx *Context, vertices []float32, components int32, primitive Primitive) (*Mesh, error) {
	if components < 1 || components > 4 {
		return nil, fmt.Errorf("graphics: %d components per vertex, want 1 to 4", components)
	}
	if len(vertices) == 0 || len(vertices)%int(components) != 0 {
		return nil, fmt.Errorf("%w: %d floats with %d components", ErrEmptyMesh, len(vertices), components)
	}

	d := ctx.d
	m := &Mesh{ctx: ctx, count: int32(len(vertices)) / components, primitive: primitive}
	if m.vao = d.GenVertexArray(); m.vao == 0 {
		return nil, &ResourceError{Object: "vertex array"}
	}
	if m.vbo = d.GenBuffer(); m.vbo == 0 {
		m.Delete()
		return nil, &ResourceError{Object: "vertex buffer"}
	}

	d.BindVertexArray(m.vao)
	d.BindArrayBuffer(m.vbo)
	d.ArrayBufferData(vertices)
	d.VertexAttribPointer(0, components, components*4, 0)
	d.EnableVertexAttribArray(0)

	// unbind to reduce accidental state changes
	d.BindArrayBuffer(0)
	d.BindVertexArray(0)
	return m, nil
}

// Count returns the number of vertices drawn.
func (m *Mesh) Count() int32 { return m.count }

// Draw issues one draw call with the currently bound program.
func (m *Mesh) Draw() {
	if m.vao == 0 {
		panic("graphics: draw of deleted mesh")
	}
	if m.ctx.bound == 0 {
		panic("graphics: draw with no program bound")
	}
	d := m.ctx.d
	d.BindVertexArray(m.vao)
	d.DrawArrays(m.primitive, 0, m.count)
	d.BindVertexArray(0)
}

// Delete releases the vertex array and buffer. Safe to call more than once.
func (m *Mesh) Delete() {
	if m.vbo != 0 {
		m.ctx.d.DeleteBuffer(m.vbo)
		m.vbo = 0
	}
	if m.vao != 0 {
		m.ctx.d.DeleteVertexArray(m.vao)
		m.vao = 0
	}
}
