package image

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/bodgit/koala/palette"
	"github.com/bodgit/koala/tile"
)

// ErrMalformedInput is returned, possibly wrapped, when the input is not
// exactly Size bytes.
var ErrMalformedInput = errors.New("koala: malformed input")

var (
	errNotEnough = fmt.Errorf("%w: not enough image data", ErrMalformedInput)
	errTooMuch   = fmt.Errorf("%w: too much image data", ErrMalformedInput)
	errWrongSize = fmt.Errorf("%w: expected %d bytes", ErrMalformedInput, Size)
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

func upperNibble(b byte) byte {
	return b & 0xf0
}

func lowerNibble(b byte) byte {
	return b & 0x0f
}

type decoder struct {
	r io.Reader

	koala Koala
	image *image.Paletted

	tmp [Size]byte
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	if err := readFull(d.r, d.tmp[:]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return err
		}
		return errNotEnough
	}

	// A single extra byte is too much, even if it arrives along with io.EOF
	var extra [1]byte
	switch err := readFull(r, extra[:]); err {
	case nil:
		return errTooMuch
	case io.ErrUnexpectedEOF:
	default:
		return err
	}

	if configOnly {
		return nil
	}

	if err := d.koala.UnmarshalBinary(d.tmp[:]); err != nil {
		return err
	}

	d.image = d.koala.FrameBuffer().Image(palette.Pepto)

	return nil
}

// Decode reads a Koala image from r and returns it as an image.Image using
// the Pepto palette.
func Decode(r io.Reader) (image.Image, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the color model and dimensions of a Koala image
// without decoding the entire image.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: palette.Pepto,
		Width:      Width,
		Height:     Height,
	}, nil
}

// Load decodes b into a framebuffer and catalogs its character cells using
// tile.HexDigits. If b is not exactly Size bytes an error wrapping
// ErrMalformedInput is returned and nothing else. b is not modified.
func Load(b []byte) (*FrameBuffer, tile.UniqueChars, tile.ColorsUsed, error) {
	var k Koala
	if err := k.UnmarshalBinary(b); err != nil {
		return nil, nil, tile.ColorsUsed{}, err
	}

	fb := k.FrameBuffer()
	chars, used := tile.Catalog(fb)

	return fb, chars, used, nil
}
