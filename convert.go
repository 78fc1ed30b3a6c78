package koala

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/koala/palette"
	"github.com/disintegration/gift"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
)

var (
	errBadScale = errors.New("koala: scale must be at least 1")
	errBadWidth = errors.New("koala: width must be at least 1")
)

type encodeFunc func(io.Writer, image.Image) error

func encoderFor(file string) (encodeFunc, error) {
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".png":
		return png.Encode, nil
	case ".gif":
		return func(w io.Writer, m image.Image) error {
			return gif.Encode(w, m, nil)
		}, nil
	case ".jpg", ".jpeg":
		return func(w io.Writer, m image.Image) error {
			return jpeg.Encode(w, m, &jpeg.Options{Quality: 95})
		}, nil
	case ".bmp":
		return bmp.Encode, nil
	default:
		return nil, fmt.Errorf("koala: unsupported output format %q", ext)
	}
}

func writeImage(file string, m image.Image, encode encodeFunc) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := encode(f, m); err != nil {
		return err
	}

	return f.Close()
}

// Render decodes file and returns it as an image using the configured
// palette, with each pixel repeated scale times in both directions.
func (k *Koala) Render(file string, scale int) (*image.Paletted, error) {
	if scale < 1 {
		return nil, errBadScale
	}

	fb, err := k.load(file)
	if err != nil {
		return nil, err
	}

	m := fb.Image(k.palette)
	if scale == 1 {
		return m, nil
	}

	b := m.Bounds()
	g := gift.New(gift.Resize(b.Dx()*scale, b.Dy()*scale, gift.NearestNeighborResampling))

	// Nearest neighbour never introduces new colors so the palette still fits
	dst := image.NewPaletted(g.Bounds(b), k.palette)
	g.Draw(dst, m)

	return dst, nil
}

// Convert decodes file and writes it to out, choosing the output format from
// the extension of out.
func (k *Koala) Convert(file, out string, scale int) error {
	encode, err := encoderFor(out)
	if err != nil {
		return err
	}

	m, err := k.Render(file, scale)
	if err != nil {
		return err
	}

	k.logger.Printf("Writing %dx%d image to \"%s\"\n", m.Bounds().Dx(), m.Bounds().Dy(), out)

	return writeImage(out, m, encode)
}

// Thumbnail decodes file and writes a copy to out that is width pixels wide,
// keeping the aspect ratio. The resampled image is reduced back to at most 16
// colors and the output format is chosen from the extension of out.
func (k *Koala) Thumbnail(file, out string, width uint) error {
	if width < 1 {
		return errBadWidth
	}

	encode, err := encoderFor(out)
	if err != nil {
		return err
	}

	m, err := k.Render(file, 1)
	if err != nil {
		return err
	}

	t := resize.Resize(width, 0, m, resize.Lanczos3)
	b := t.Bounds()

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, palette.NumColors), t))
	draw.Draw(pm, b, t, b.Min, draw.Src)

	k.logger.Printf("Writing %dx%d thumbnail with %d colors to \"%s\"\n", b.Dx(), b.Dy(), len(pm.Palette), out)

	return writeImage(out, pm, encode)
}
