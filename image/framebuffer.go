package image

import (
	"image"
	"image/color"
)

// FrameBuffer holds one color index per wide pixel, row-major, 160 pixels
// wide and 200 rows high.
type FrameBuffer [numPixels]uint8

// Bounds returns the dimensions of the framebuffer in wide pixels.
func (fb *FrameBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, pixelX, pixelY)
}

// ColorIndexAt returns the color index of the wide pixel at (x, y), or zero if
// it is outside the framebuffer.
func (fb *FrameBuffer) ColorIndexAt(x, y int) uint8 {
	if x < 0 || y < 0 || x >= pixelX || y >= pixelY {
		return 0
	}
	return fb[y*pixelX+x]
}

// Image renders the framebuffer using the palette p. Each wide pixel is
// written to two adjacent pixels so the result is Width by Height.
func (fb *FrameBuffer) Image(p color.Palette) *image.Paletted {
	m := image.NewPaletted(image.Rect(0, 0, Width, Height), p)

	for y := 0; y < pixelY; y++ {
		for x := 0; x < pixelX; x++ {
			c := fb[y*pixelX+x]
			m.SetColorIndex(x<<1+0, y, c)
			m.SetColorIndex(x<<1+1, y, c)
		}
	}

	return m
}
