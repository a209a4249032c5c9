package viewer

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/time/rate"

	"github.com/Garsondee/nurep/internal/playback"
	"github.com/Garsondee/nurep/internal/render"
	"github.com/Garsondee/nurep/internal/replay"
)

// Options configures a Viewer.
type Options struct {
	Render  render.Options
	Tick    time.Duration // one turn per tick
	ShowHUD bool
	Log     *slog.Logger
}

// DefaultOptions returns the standard playback settings.
func DefaultOptions() Options {
	return Options{
		Render:  render.DefaultOptions(),
		Tick:    playback.DefaultTick,
		ShowHUD: true,
		Log:     slog.Default(),
	}
}

// keyboardQuit asks ebiten for the escape key or a window close request.
type keyboardQuit struct{}

func (keyboardQuit) QuitRequested() bool {
	return ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsWindowBeingClosed()
}

// Viewer implements ebiten.Game. Frames are rendered into a back buffer and
// swapped to the front on success, so a failed frame never shows.
type Viewer struct {
	game     *replay.Game
	renderer *render.Renderer
	loop     *playback.Loop
	limiter  *rate.Limiter
	quit     playback.Quitter
	width    int
	height   int
	showHUD  bool
	log      *slog.Logger

	back      *ebiten.Image
	front     *ebiten.Image
	backTurn  int
	shownTurn int // 0 until the first frame is presented
}

// New prepares playback of g on a width x height screen.
func New(g *replay.Game, width, height int, opts Options) *Viewer {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = playback.DefaultTick
	}
	return &Viewer{
		game:     g,
		renderer: render.NewRenderer(g, width, height, opts.Render),
		loop:     playback.New(g.NumTurns(), log),
		limiter:  playback.NewPacer(tick),
		quit:     keyboardQuit{},
		width:    width,
		height:   height,
		showHUD:  opts.ShowHUD,
		log:      log,
		back:     ebiten.NewImage(width, height),
		front:    ebiten.NewImage(width, height),
	}
}

// Update checks for quit every frame and advances one turn per tick.
func (v *Viewer) Update() error {
	quit := v.quit.QuitRequested()
	if !quit && !v.limiter.Allow() {
		return nil
	}
	turn := v.loop.Turn()
	state, err := v.loop.Step(quit, v)
	if err != nil {
		v.log.Warn("frame not presented", "turn", turn, "err", err)
	}
	if state.Terminal() {
		v.log.Info("playback finished", "state", state, "last_turn", v.shownTurn)
		return ebiten.Termination
	}
	return nil
}

// Render draws turn into the back buffer.
func (v *Viewer) Render(turn int) error {
	v.backTurn = turn
	return v.renderer.Frame(imageSurface{dst: v.back}, turn)
}

// Present swaps the freshly rendered back buffer to the front.
func (v *Viewer) Present() {
	v.back, v.front = v.front, v.back
	v.shownTurn = v.backTurn
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.shownTurn == 0 {
		screen.Clear()
		return
	}
	screen.DrawImage(v.front, nil)
	if v.showHUD {
		drawHUD(screen, hudLines(v.game, v.shownTurn, v.renderer.Palette()))
	}
}

func (v *Viewer) Layout(_, _ int) (int, int) {
	return v.width, v.height
}
