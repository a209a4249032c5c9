package render

import (
	"image/color"

	"github.com/Garsondee/nurep/internal/replay"
)

// Palette maps owner ids to colours. Index 0 is the neutral colour; ids
// outside the table, including replay.Unknown, get the fallback.
type Palette struct {
	colors   []color.RGBA
	fallback color.RGBA
}

// NewPalette builds a palette from colours indexed by player id.
func NewPalette(fallback color.RGBA, colors ...color.RGBA) Palette {
	return Palette{colors: append([]color.RGBA(nil), colors...), fallback: fallback}
}

// DefaultPalette returns the neutral gray plus eleven player hues, white fallback.
func DefaultPalette() Palette {
	return NewPalette(color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		color.RGBA{R: 0x50, G: 0x50, B: 0x50, A: 0xff}, // neutral
		color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff},
		color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff},
		color.RGBA{R: 0x00, G: 0x00, B: 0xff, A: 0xff},
		color.RGBA{R: 0xff, G: 0xff, B: 0x00, A: 0xff},
		color.RGBA{R: 0x00, G: 0xff, B: 0xff, A: 0xff},
		color.RGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff},
		color.RGBA{R: 0xc0, G: 0x80, B: 0x00, A: 0xff},
		color.RGBA{R: 0x00, G: 0xc0, B: 0x80, A: 0xff},
		color.RGBA{R: 0xc0, G: 0x00, B: 0x80, A: 0xff},
		color.RGBA{R: 0x80, G: 0xc0, B: 0x00, A: 0xff},
		color.RGBA{R: 0x00, G: 0x80, B: 0xc0, A: 0xff},
	)
}

// Color resolves owner to its display colour.
func (p Palette) Color(owner replay.PlayerID) color.RGBA {
	if owner < 0 || int(owner) >= len(p.colors) {
		return p.fallback
	}
	return p.colors[owner]
}

// Fallback returns the colour used for unknown and out-of-range owners.
func (p Palette) Fallback() color.RGBA { return p.fallback }

// Len is the number of ids with a dedicated colour, neutral included.
func (p Palette) Len() int { return len(p.colors) }
