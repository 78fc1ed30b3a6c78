package koala

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	koalaimage "github.com/bodgit/koala/image"
	"github.com/bodgit/koala/palette"
	"github.com/bodgit/koala/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

// Every pixel uses color RAM, which is light blue in cell 0 and black
// everywhere else, on a white background
func testKoala() []byte {
	b := make([]byte, koalaimage.Size)
	for i := 0; i < 8000; i++ {
		b[i] = 0xff
	}
	b[9000] = 14
	b[10000] = 1
	return b
}

func tempDir(t *testing.T) (string, func()) {
	dir, err := ioutil.TempDir("", "koala")
	require.NoError(t, err)
	return dir, func() { os.RemoveAll(dir) }
}

func writeFile(t *testing.T, file string, b []byte) string {
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0755))
	require.NoError(t, ioutil.WriteFile(file, b, 0644))
	return file
}

func newTestKoala(t *testing.T, p color.Palette, digits string) (*Koala, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	k, err := New(p, digits, log.New(buf, "", 0))
	require.NoError(t, err)
	return k, buf
}

func TestAnalyze(t *testing.T) {
	dir, cleanup := tempDir(t)
	defer cleanup()

	file := writeFile(t, filepath.Join(dir, "test.kla"), testKoala())

	tables := map[string]struct {
		digits string
		key    string
	}{
		"hex":    {tile.HexDigits, "E"},
		"legacy": {tile.LegacyDigits, "D"},
	}

	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			k, buf := newTestKoala(t, palette.Pepto, table.digits)

			r, err := k.Analyze(file)
			require.NoError(t, err)

			assert.Equal(t, file, r.File)
			assert.Equal(t, tile.UniqueChars{
				tile.CharKey(strings.Repeat("0", 32)):       999,
				tile.CharKey(strings.Repeat(table.key, 32)): 1,
			}, r.UniqueChars)
			assert.Equal(t, tile.ColorsUsed{0: 31968, 14: 32}, r.ColorsUsed)
			assert.Equal(t, uint8(14), r.FrameBuffer.ColorIndexAt(0, 0))

			assert.Equal(t, 1000, strings.Count(buf.String(), "Adding key: "))

			buf.Reset()
			k.LogReport(r)
			assert.Contains(t, buf.String(), "Total unique chars: 2\n")
			assert.Contains(t, buf.String(), "Color: 0 = 31968\n")
			assert.Contains(t, buf.String(), "Color: 14 = 32\n")
		})
	}
}

func TestAnalyzeMalformed(t *testing.T) {
	dir, cleanup := tempDir(t)
	defer cleanup()

	file := writeFile(t, filepath.Join(dir, "short.kla"), make([]byte, 9999))

	k, _ := newTestKoala(t, palette.Pepto, tile.HexDigits)
	r, err := k.Analyze(file)
	assert.Nil(t, r)
	assert.True(t, errors.Is(err, koalaimage.ErrMalformedInput))

	_, err = k.Analyze(filepath.Join(dir, "missing.kla"))
	assert.True(t, os.IsNotExist(err))
}

func TestTopChars(t *testing.T) {
	r := &Report{
		UniqueChars: tile.UniqueChars{"A": 3, "B": 1, "C": 2},
	}

	assert.Equal(t, []tile.Entry{{Key: "A", Count: 3}, {Key: "C", Count: 2}}, r.TopChars(2))
	assert.Len(t, r.TopChars(0), 3)
	assert.Len(t, r.TopChars(10), 3)
}

func TestConvert(t *testing.T) {
	dir, cleanup := tempDir(t)
	defer cleanup()

	file := writeFile(t, filepath.Join(dir, "test.koa"), testKoala())

	tables := map[string]struct {
		scale  int
		decode func(*os.File) (image.Image, error)
		exact  bool
	}{
		"out.png": {2, func(f *os.File) (image.Image, error) { return png.Decode(f) }, true},
		"out.GIF": {1, func(f *os.File) (image.Image, error) { return gif.Decode(f) }, true},
		"out.bmp": {3, func(f *os.File) (image.Image, error) { return bmp.Decode(f) }, true},
		"out.jpg": {2, func(f *os.File) (image.Image, error) { return jpeg.Decode(f) }, false},
	}

	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			k, _ := newTestKoala(t, palette.Colodore, tile.HexDigits)

			out := filepath.Join(dir, name)
			require.NoError(t, k.Convert(file, out, table.scale))

			f, err := os.Open(out)
			require.NoError(t, err)
			defer f.Close()

			m, err := table.decode(f)
			require.NoError(t, err)

			assert.Equal(t, image.Rect(0, 0, 320*table.scale, 200*table.scale), m.Bounds())
			if table.exact {
				// First cell is 8 pixels wide and 8 high before scaling
				edge := 8*table.scale - 1
				assert.Equal(t, palette.ColorOf(palette.Colodore, 14), color.RGBAModel.Convert(m.At(edge, edge)))
				assert.Equal(t, palette.ColorOf(palette.Colodore, 0), color.RGBAModel.Convert(m.At(edge+1, edge)))
			}
		})
	}
}

func TestConvertErrors(t *testing.T) {
	dir, cleanup := tempDir(t)
	defer cleanup()

	file := writeFile(t, filepath.Join(dir, "test.koa"), testKoala())
	k, _ := newTestKoala(t, palette.Pepto, tile.HexDigits)

	assert.Error(t, k.Convert(file, filepath.Join(dir, "out.tiff"), 1))
	assert.Equal(t, errBadScale, k.Convert(file, filepath.Join(dir, "out.png"), 0))

	_, err := os.Stat(filepath.Join(dir, "out.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestRender(t *testing.T) {
	dir, cleanup := tempDir(t)
	defer cleanup()

	file := writeFile(t, filepath.Join(dir, "test.koa"), testKoala())
	k, _ := newTestKoala(t, palette.Pepto, tile.HexDigits)

	m, err := k.Render(file, 4)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 1280, 800), m.Bounds())
	assert.Equal(t, uint8(14), m.ColorIndexAt(31, 31))
	assert.Equal(t, uint8(0), m.ColorIndexAt(32, 31))
	assert.Equal(t, uint8(0), m.ColorIndexAt(31, 32))
}

func TestThumbnail(t *testing.T) {
	dir, cleanup := tempDir(t)
	defer cleanup()

	file := writeFile(t, filepath.Join(dir, "test.koa"), testKoala())

	tables := map[string]func(*os.File) (image.Image, error){
		"thumb.png": func(f *os.File) (image.Image, error) { return png.Decode(f) },
		"thumb.gif": func(f *os.File) (image.Image, error) { return gif.Decode(f) },
	}

	for name, decode := range tables {
		t.Run(name, func(t *testing.T) {
			k, _ := newTestKoala(t, palette.Pepto, tile.HexDigits)

			out := filepath.Join(dir, name)
			require.NoError(t, k.Thumbnail(file, out, 80))

			f, err := os.Open(out)
			require.NoError(t, err)
			defer f.Close()

			m, err := decode(f)
			require.NoError(t, err)
			require.IsType(t, &image.Paletted{}, m)

			assert.Equal(t, image.Rect(0, 0, 80, 50), m.Bounds())
			assert.True(t, len(m.(*image.Paletted).Palette) <= palette.NumColors)
		})
	}
}

func TestThumbnailErrors(t *testing.T) {
	dir, cleanup := tempDir(t)
	defer cleanup()

	file := writeFile(t, filepath.Join(dir, "test.koa"), testKoala())
	k, _ := newTestKoala(t, palette.Pepto, tile.HexDigits)

	assert.Equal(t, errBadWidth, k.Thumbnail(file, filepath.Join(dir, "thumb.png"), 0))
	assert.Error(t, k.Thumbnail(file, filepath.Join(dir, "thumb.tiff"), 80))

	_, err := os.Stat(filepath.Join(dir, "thumb.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestNew(t *testing.T) {
	logger := log.New(ioutil.Discard, "", 0)

	k, err := New(palette.Pepto, "0123456789", logger)
	assert.Nil(t, k)
	assert.Equal(t, tile.ErrShortDigits, err)

	k, err = New(palette.Pepto[:8], tile.HexDigits, logger)
	assert.Nil(t, k)
	assert.Equal(t, errShortPalette, err)

	k, err = New(palette.Colodore, tile.LegacyDigits, logger)
	assert.NoError(t, err)
	assert.NotNil(t, k)
}

func TestScan(t *testing.T) {
	dir, cleanup := tempDir(t)
	defer cleanup()

	writeFile(t, filepath.Join(dir, "a.kla"), testKoala())
	writeFile(t, filepath.Join(dir, "sub", "b.KOA"), make([]byte, koalaimage.Size))
	writeFile(t, filepath.Join(dir, "sub", "c.koala"), make([]byte, 100))
	writeFile(t, filepath.Join(dir, ".hidden", "d.kla"), testKoala())
	writeFile(t, filepath.Join(dir, "e.txt"), testKoala())

	k, buf := newTestKoala(t, palette.Pepto, tile.HexDigits)

	s, err := k.Scan(dir)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Files)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, tile.UniqueChars{
		tile.CharKey(strings.Repeat("0", 32)): 1999,
		tile.CharKey(strings.Repeat("E", 32)): 1,
	}, s.UniqueChars)
	assert.Equal(t, tile.ColorsUsed{0: 63968, 14: 32}, s.ColorsUsed)
	assert.Contains(t, buf.String(), "c.koala")
}

func TestScanMissing(t *testing.T) {
	dir, cleanup := tempDir(t)
	defer cleanup()

	k, _ := newTestKoala(t, palette.Pepto, tile.HexDigits)

	s, err := k.Scan(filepath.Join(dir, "missing"))
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestScanReadError(t *testing.T) {
	dir, cleanup := tempDir(t)
	defer cleanup()

	for i := 0; i < 50; i++ {
		writeFile(t, filepath.Join(dir, fmt.Sprintf("%02d.kla", i)), testKoala())
	}
	broken := writeFile(t, filepath.Join(dir, "25.koa"), testKoala())

	errBroken := errors.New("read failed")
	defer func(f func(string) ([]byte, error)) { readFile = f }(readFile)
	readFile = func(file string) ([]byte, error) {
		if file == broken {
			return nil, errBroken
		}
		return ioutil.ReadFile(file)
	}

	k, _ := newTestKoala(t, palette.Pepto, tile.HexDigits)

	s, err := k.Scan(dir)
	assert.Equal(t, errBroken, err)
	assert.Nil(t, s)
}
