package graphics

import "github.com/go-gl/mathgl/mgl32"

// Camera keeps clip space square on non-square framebuffers.
type Camera struct {
	AspectRatio float32
}

func NewCamera(width, height int) *Camera {
	c := &Camera{}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the aspect ratio; zero sizes (minimized windows) are
// ignored.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

// Projection maps [-1,1] on the shorter axis to the full framebuffer.
func (c *Camera) Projection() mgl32.Mat4 {
	a := c.AspectRatio
	if a == 0 {
		return mgl32.Ident4()
	}
	if a >= 1 {
		return mgl32.Ortho2D(-a, a, -1, 1)
	}
	return mgl32.Ortho2D(-1, 1, -1/a, 1/a)
}
