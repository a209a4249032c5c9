package render

import (
	"image"
	"math"

	"github.com/Garsondee/nurep/internal/replay"
)

// Transform maps game-space coordinates onto screen pixels. The cluster is
// scaled uniformly into a centred square of side min(screenW, screenH).
type Transform struct {
	drawSize int
	scale    float64
	offX     int
	offY     int
	flipY    bool
}

// NewTransform derives the scale and offsets once per session. safety
// shrinks the scale (e.g. 0.95) so planets on the extent edge stay on
// screen. flipY puts increasing game y towards the top of the screen.
func NewTransform(ext replay.Extent, screenW, screenH int, safety float64, flipY bool) Transform {
	drawSize := min(screenW, screenH)
	span := max(ext.Width(), ext.Height())
	if span <= 0 {
		// lone planet or empty cluster
		span = 1
	}
	scale := safety * float64(drawSize) / float64(span)

	letterX := float64(screenW-drawSize) / 2
	letterY := float64(screenH-drawSize) / 2
	padX := (float64(drawSize) - float64(ext.Width())*scale) / 2
	padY := (float64(drawSize) - float64(ext.Height())*scale) / 2

	t := Transform{
		drawSize: drawSize,
		scale:    scale,
		flipY:    flipY,
		offX:     int(math.Round(letterX + padX - float64(ext.Min.X)*scale)),
	}
	if flipY {
		t.offY = int(math.Round(letterY + padY + float64(ext.Max.Y)*scale))
	} else {
		t.offY = int(math.Round(letterY + padY - float64(ext.Min.Y)*scale))
	}
	return t
}

// Apply converts one game-space point to screen space.
func (t Transform) Apply(p replay.Point) image.Point {
	x := int(math.Round(float64(p.X)*t.scale)) + t.offX
	sy := int(math.Round(float64(p.Y) * t.scale))
	if t.flipY {
		return image.Pt(x, t.offY-sy)
	}
	return image.Pt(x, sy+t.offY)
}

// DrawSize is the side of the square drawing region in pixels.
func (t Transform) DrawSize() int { return t.drawSize }

// Scale is the pixels-per-game-unit factor.
func (t Transform) Scale() float64 { return t.scale }
