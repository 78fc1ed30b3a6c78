/*
Package koala is a library for inspecting and converting Commodore 64 Koala
multicolor bitmap images.
*/
package koala

import (
	"errors"
	"image/color"
	"log"

	"github.com/bodgit/koala/palette"
	"github.com/bodgit/koala/tile"
)

var errShortPalette = errors.New("koala: palette needs at least 16 colors")

type Koala struct {
	palette color.Palette
	digits  string
	logger  *log.Logger
}

// New returns a Koala that renders with palette p and builds character cell
// keys from digits, which is normally tile.HexDigits or tile.LegacyDigits.
func New(p color.Palette, digits string, logger *log.Logger) (*Koala, error) {
	if len(p) < palette.NumColors {
		return nil, errShortPalette
	}
	if err := tile.CheckDigits(digits); err != nil {
		return nil, err
	}

	return &Koala{
		palette: p,
		digits:  digits,
		logger:  logger,
	}, nil
}
