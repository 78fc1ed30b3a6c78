/*
Package tile catalogs the character cells of a decoded Koala image.

The screen is split into 40 by 25 cells of 8 rows by 4 wide pixels. Each cell
is fingerprinted by a 32 character key, one digit per wide pixel in row-major
order, so that cells with the same color pattern share a key regardless of how
the bitmap, screen RAM and color RAM produced it.
*/
package tile

const (
	tileWidth  = 4
	tileHeight = 8
	tilePixels = tileWidth * tileHeight
	tileX      = 40
	tileY      = 25
	numTiles   = tileX * tileY
	numColors  = 16
)

const (
	// HexDigits maps each color index to its hexadecimal digit
	HexDigits = "0123456789ABCDEF"

	// LegacyDigits is the digit table used by the VChar64 Koala importer. It
	// repeats "0" after "9" so indices 10 to 15 map to "0ABCDE"; use it to
	// produce keys that match VChar64 byte for byte.
	LegacyDigits = "01234567890ABCDEF"
)

// Source is implemented by anything holding a 160 by 200 grid of color
// indices, such as *image.FrameBuffer.
type Source interface {
	ColorIndexAt(x, y int) uint8
}
