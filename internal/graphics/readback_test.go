package graphics_test

import (
	"image/color"
	"testing"

	"glpipeline/internal/graphics"

	"github.com/stretchr/testify/assert"
)

func TestReadFramebufferFlipsRows(t *testing.T) {
	ctx, d := newContext(t)
	// bottom row red, top row blue, as GL returns them
	d.Pixels = func(x, y, width, height int32) []byte {
		return []byte{
			255, 0, 0, 255, 255, 0, 0, 255,
			0, 0, 255, 255, 0, 0, 255, 255,
		}
	}

	img := graphics.ReadFramebuffer(ctx, 0, 0, 2, 2)
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(1, 1))
}

func TestReadFramebufferEmpty(t *testing.T) {
	ctx, d := newContext(t)

	img := graphics.ReadFramebuffer(ctx, 0, 0, 0, 4)
	assert.Equal(t, 0, img.Bounds().Dx())
	assert.Zero(t, d.Count("ReadPixels"))
}
