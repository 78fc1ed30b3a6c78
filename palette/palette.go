/*
Package palette provides the 16 color palettes of the Commodore 64 VIC-II.

The hardware generates colors from luma and chroma signals rather than a fixed
RGB table so every palette is an approximation; Pepto is the long-standing
VICE default and Colodore is a later, more saturated measurement.
*/
package palette

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
)

// NumColors is the number of colors the VIC-II can display
const NumColors = 16

// Pepto is the palette measured by Philip "Pepto" Timmermann.
var Pepto = color.Palette{
	color.RGBA{0x00, 0x00, 0x00, 0xff}, // black
	color.RGBA{0xff, 0xff, 0xff, 0xff}, // white
	color.RGBA{0x68, 0x37, 0x2b, 0xff}, // red
	color.RGBA{0x70, 0xa4, 0xb2, 0xff}, // cyan
	color.RGBA{0x6f, 0x3d, 0x86, 0xff}, // purple
	color.RGBA{0x58, 0x8d, 0x43, 0xff}, // green
	color.RGBA{0x35, 0x28, 0x79, 0xff}, // blue
	color.RGBA{0xb8, 0xc7, 0x6f, 0xff}, // yellow
	color.RGBA{0x6f, 0x4f, 0x25, 0xff}, // orange
	color.RGBA{0x43, 0x39, 0x00, 0xff}, // brown
	color.RGBA{0x9a, 0x67, 0x59, 0xff}, // light red
	color.RGBA{0x44, 0x44, 0x44, 0xff}, // dark grey
	color.RGBA{0x6c, 0x6c, 0x6c, 0xff}, // grey
	color.RGBA{0x9a, 0xd2, 0x84, 0xff}, // light green
	color.RGBA{0x6c, 0x5e, 0xb5, 0xff}, // light blue
	color.RGBA{0x95, 0x95, 0x95, 0xff}, // light grey
}

// Colodore is the palette measured by Philip "Pepto" Timmermann in 2017.
var Colodore = color.Palette{
	color.RGBA{0x00, 0x00, 0x00, 0xff},
	color.RGBA{0xff, 0xff, 0xff, 0xff},
	color.RGBA{0x81, 0x33, 0x38, 0xff},
	color.RGBA{0x75, 0xce, 0xc8, 0xff},
	color.RGBA{0x8e, 0x3c, 0x97, 0xff},
	color.RGBA{0x56, 0xac, 0x4d, 0xff},
	color.RGBA{0x2e, 0x2c, 0x9b, 0xff},
	color.RGBA{0xed, 0xf1, 0x71, 0xff},
	color.RGBA{0x8e, 0x50, 0x29, 0xff},
	color.RGBA{0x55, 0x38, 0x00, 0xff},
	color.RGBA{0xc4, 0x6c, 0x71, 0xff},
	color.RGBA{0x4a, 0x4a, 0x4a, 0xff},
	color.RGBA{0x7b, 0x7b, 0x7b, 0xff},
	color.RGBA{0xa9, 0xff, 0x9f, 0xff},
	color.RGBA{0x70, 0x6d, 0xeb, 0xff},
	color.RGBA{0xb2, 0xb2, 0xb2, 0xff},
}

var palettes = map[string]color.Palette{
	"pepto":    Pepto,
	"colodore": Colodore,
}

// Names returns the names accepted by ByName in sorted order.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ByName returns the named palette. The name is not case sensitive.
func ByName(name string) (color.Palette, error) {
	p, ok := palettes[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("palette: unknown palette %q", name)
	}
	return p, nil
}

// ColorOf returns the color for index in p, which must hold NumColors colors.
// Only the lower four bits of index are used.
func ColorOf(p color.Palette, index uint8) color.RGBA {
	return color.RGBAModel.Convert(p[index&0x0f]).(color.RGBA)
}
