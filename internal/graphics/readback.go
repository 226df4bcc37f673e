package graphics

import "image"

// ReadFramebuffer reads a rectangle of the current color buffer into an
// image with the top row first.
func ReadFramebuffer(ctx *Context, x, y, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if width <= 0 || height <= 0 {
		return img
	}
	pix := ctx.d.ReadPixels(int32(x), int32(y), int32(width), int32(height))
	stride := width * 4
	for row := 0; row < height && (row+1)*stride <= len(pix); row++ {
		// GL rows start at the bottom
		dst := (height - 1 - row) * img.Stride
		copy(img.Pix[dst:dst+stride], pix[row*stride:(row+1)*stride])
	}
	return img
}
