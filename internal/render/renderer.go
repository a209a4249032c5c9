package render

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/nurep/internal/replay"
)

// Options fixes the display conventions of a playback session.
type Options struct {
	Safety        float64 // uniform scale margin, < 1
	FlipY         bool
	RadiusDivisor int // planet radius = drawSize / RadiusDivisor
	Palette       Palette
	Background    color.RGBA
	Link          color.RGBA // connection colour
}

// DefaultOptions returns the standard viewer conventions.
func DefaultOptions() Options {
	return Options{
		Safety:        0.95,
		FlipY:         true,
		RadiusDivisor: 175,
		Palette:       DefaultPalette(),
		Background:    color.RGBA{A: 0xff},
		Link:          color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff},
	}
}

// Renderer issues the draw calls for one turn of a game.
type Renderer struct {
	game   *replay.Game
	tf     Transform
	radius int
	opts   Options
}

// NewRenderer derives the transform and planet radius for a screen size.
func NewRenderer(g *replay.Game, screenW, screenH int, opts Options) *Renderer {
	tf := NewTransform(g.Cluster().Extent(), screenW, screenH, opts.Safety, opts.FlipY)
	radius := 1
	if opts.RadiusDivisor > 0 {
		radius = max(1, tf.DrawSize()/opts.RadiusDivisor)
	}
	return &Renderer{game: g, tf: tf, radius: radius, opts: opts}
}

// Transform returns the session transform.
func (r *Renderer) Transform() Transform { return r.tf }

// Radius returns the planet radius in pixels.
func (r *Renderer) Radius() int { return r.radius }

// Palette returns the owner palette.
func (r *Renderer) Palette() Palette { return r.opts.Palette }

// Frame draws turn onto s: clear, connections, then planets. turn must be
// within [1, NumTurns]. The first surface error aborts the frame; calls
// already issued stay on the surface.
func (r *Renderer) Frame(s Surface, turn int) error {
	if err := s.Clear(r.opts.Background); err != nil {
		return fmt.Errorf("clear: %w", err)
	}

	cluster := r.game.Cluster()
	for _, conn := range cluster.Connections() {
		a, okA := cluster.Planet(conn.A)
		b, okB := cluster.Planet(conn.B)
		if !okA || !okB {
			continue
		}
		if err := s.DrawLine(r.tf.Apply(a.Position), r.tf.Apply(b.Position), r.opts.Link); err != nil {
			return fmt.Errorf("connection %d-%d: %w", conn.A, conn.B, err)
		}
	}

	owners := r.game.Owners()
	for _, p := range cluster.Planets() {
		c := r.opts.Palette.Color(owners.Owner(p.ID, turn))
		if err := s.FillCircle(r.tf.Apply(p.Position), r.radius, c); err != nil {
			return fmt.Errorf("planet %d: %w", p.ID, err)
		}
	}
	return nil
}
