/*
Package image implements a Koala image decoder.

Koala is the multicolor bitmap format of the Commodore 64 painting program of
the same name. The screen is 40 by 25 character cells, each cell being 8 rows
of 4 "wide" pixels that are twice as wide as they are tall, so the effective
resolution is 160 by 200.

The file is 8000 bytes of bitmap, where every byte holds four 2-bit pixels for
one row of a cell, followed by 1000 bytes of screen RAM and 1000 bytes of color
RAM, one per cell, and finally a single background color byte. There is no
header or load address so the file is always exactly 10001 bytes in size.

The 2-bit value of a pixel selects where its color comes from: 00 is the
background color, 01 and 10 are the upper and lower nibbles of the cell's
screen RAM byte, and 11 is the lower nibble of the cell's color RAM byte.
*/
package image

const (
	cellWidth   = 4
	cellHeight  = 8
	cellX       = 40
	cellY       = 25
	numCells    = cellX * cellY
	pixelX      = cellWidth * cellX
	pixelY      = cellHeight * cellY
	numPixels   = pixelX * pixelY
	bitmapBytes = numCells * cellHeight

	screenOffset     = bitmapBytes
	colorOffset      = screenOffset + numCells
	backgroundOffset = colorOffset + numCells

	// Size is the exact size in bytes of a Koala file
	Size = backgroundOffset + 1

	// Width and Height are the dimensions of a rendered image, with each
	// wide pixel doubled horizontally
	Width  = pixelX << 1
	Height = pixelY
)

// Koala holds the raw content of a Koala file. It implements the
// encoding.BinaryUnmarshaler interface.
type Koala struct {
	Bitmap          [bitmapBytes]byte
	ScreenRAM       [numCells]byte
	ColorRAM        [numCells]byte
	BackgroundColor byte
}

// UnmarshalBinary populates k from exactly Size bytes. Any other length is
// rejected and k is left untouched.
func (k *Koala) UnmarshalBinary(b []byte) error {
	if len(b) != Size {
		return errWrongSize
	}

	copy(k.Bitmap[:], b[:screenOffset])
	copy(k.ScreenRAM[:], b[screenOffset:colorOffset])
	copy(k.ColorRAM[:], b[colorOffset:backgroundOffset])
	k.BackgroundColor = b[backgroundOffset]

	return nil
}

var masks = [cellWidth]byte{0xc0, 0x30, 0x0c, 0x03}

// FrameBuffer expands the bitmap into a new framebuffer, resolving each 2-bit
// pixel to a color index.
func (k *Koala) FrameBuffer() *FrameBuffer {
	fb := new(FrameBuffer)

	for cy := 0; cy < cellY; cy++ {
		for cx := 0; cx < cellX; cx++ {
			cell := cy*cellX + cx

			// Indexed by the 2-bit pixel value, this covers all four cases
			sources := [4]uint8{
				lowerNibble(k.BackgroundColor),
				upperNibble(k.ScreenRAM[cell]) >> 4,
				lowerNibble(k.ScreenRAM[cell]),
				lowerNibble(k.ColorRAM[cell]),
			}

			for y := 0; y < cellHeight; y++ {
				b := k.Bitmap[cell*cellHeight+y]
				dy := cy*cellHeight + y

				for x, mask := range masks {
					dx := cx*cellWidth + x
					fb[dy*pixelX+dx] = sources[(b&mask)>>uint(6-x<<1)]
				}
			}
		}
	}

	return fb
}
