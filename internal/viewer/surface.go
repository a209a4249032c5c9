package viewer

import (
	"errors"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var errNoTarget = errors.New("no draw target")

// linkWidth is the stroke width of connection lines in pixels.
const linkWidth = 1.0

// imageSurface draws frames into an offscreen ebiten image.
type imageSurface struct {
	dst *ebiten.Image
}

func (s imageSurface) Clear(c color.RGBA) error {
	if s.dst == nil {
		return errNoTarget
	}
	s.dst.Fill(c)
	return nil
}

func (s imageSurface) FillCircle(center image.Point, radius int, c color.RGBA) error {
	if s.dst == nil {
		return errNoTarget
	}
	vector.FillCircle(s.dst, float32(center.X), float32(center.Y), float32(radius), c, true)
	return nil
}

func (s imageSurface) DrawLine(a, b image.Point, c color.RGBA) error {
	if s.dst == nil {
		return errNoTarget
	}
	vector.StrokeLine(s.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), linkWidth, c, true)
	return nil
}
