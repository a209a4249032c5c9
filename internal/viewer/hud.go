package viewer

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/nurep/internal/render"
	"github.com/Garsondee/nurep/internal/replay"
)

const (
	hudPad        = 6
	hudLineHeight = 15 // basicfont 7x13 plus spacing
	hudCharWidth  = 7
)

var hudFace = text.NewGoXFace(basicfont.Face7x13)

// hudLine is one row of the turn overlay.
type hudLine struct {
	Text  string
	Color color.RGBA
}

// hudLines lists the turn counter and how many planets each owner holds,
// players in id order, then neutral and unknown.
func hudLines(g *replay.Game, turn int, p render.Palette) []hudLine {
	lines := []hudLine{{
		Text:  fmt.Sprintf("turn %d/%d", turn, g.NumTurns()),
		Color: color.RGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xff},
	}}

	tally := g.Tally(turn)
	players := make([]replay.PlayerID, 0, len(tally))
	for id := range tally {
		if id > replay.Neutral {
			players = append(players, id)
		}
	}
	sort.Slice(players, func(i, j int) bool { return players[i] < players[j] })

	for _, id := range players {
		lines = append(lines, hudLine{Text: fmt.Sprintf("P%-2d %d", id, tally[id]), Color: p.Color(id)})
	}
	if n := tally[replay.Neutral]; n > 0 {
		lines = append(lines, hudLine{Text: fmt.Sprintf("neutral %d", n), Color: p.Color(replay.Neutral)})
	}
	if n := tally[replay.Unknown]; n > 0 {
		lines = append(lines, hudLine{Text: fmt.Sprintf("unknown %d", n), Color: p.Fallback()})
	}
	return lines
}

// drawHUD renders lines in a translucent panel in the top-left corner.
func drawHUD(screen *ebiten.Image, lines []hudLine) {
	if len(lines) == 0 {
		return
	}
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l.Text))
	}
	boxW := float32(maxLen*hudCharWidth + hudPad*2)
	boxH := float32(len(lines)*hudLineHeight + hudPad*2)
	vector.FillRect(screen, 4, 4, boxW, boxH, color.RGBA{R: 8, G: 8, B: 12, A: 200}, false)
	vector.StrokeRect(screen, 4, 4, boxW, boxH, 1.0, color.RGBA{R: 60, G: 60, B: 80, A: 180}, false)

	for i, l := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(4+hudPad), float64(4+hudPad+i*hudLineHeight))
		op.ColorScale.ScaleWithColor(l.Color)
		text.Draw(screen, l.Text, hudFace, op)
	}
}
