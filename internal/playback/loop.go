package playback

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// DefaultTick is the time budget of one playback tick.
const DefaultTick = 250 * time.Millisecond

// State is the playback state machine position.
type State int

const (
	Running State = iota
	Quitting
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Quitting:
		return "quitting"
	case Stopped:
		return "stopped"
	}
	return "invalid"
}

// Terminal reports whether no further frames will be drawn.
func (s State) Terminal() bool { return s != Running }

// Sink renders and shows frames. Present is only called after a successful Render.
type Sink interface {
	Render(turn int) error
	Present()
}

// Quitter answers whether the user asked to stop.
type Quitter interface {
	QuitRequested() bool
}

// QuitFunc adapts a function to Quitter.
type QuitFunc func() bool

func (f QuitFunc) QuitRequested() bool { return f() }

// Pacer blocks until the next tick may start.
type Pacer interface {
	Wait(ctx context.Context) error
}

// NewPacer returns a Pacer granting one tick per interval. The first tick
// is immediate; later ones sleep only the remainder of the interval.
func NewPacer(interval time.Duration) *rate.Limiter {
	return rate.NewLimiter(rate.Every(interval), 1)
}

// Loop advances strictly forward through turns 1..numTurns.
type Loop struct {
	numTurns int
	turn     int
	state    State
	log      *slog.Logger
}

// New creates a loop in the Running state at turn 1.
func New(numTurns int, log *slog.Logger) *Loop {
	if log == nil {
		log = slog.Default()
	}
	return &Loop{numTurns: numTurns, turn: 1, state: Running, log: log}
}

// Turn is the next turn to be drawn.
func (l *Loop) Turn() int { return l.turn }

// NumTurns is the total number of recorded turns.
func (l *Loop) NumTurns() int { return l.numTurns }

// State returns the current state.
func (l *Loop) State() State { return l.state }

// Step runs one tick. A quit request wins over drawing. A render error is
// returned, the frame is not presented, and the turn still advances.
func (l *Loop) Step(quit bool, sink Sink) (State, error) {
	if l.state.Terminal() {
		return l.state, nil
	}
	if l.turn > l.numTurns {
		l.state = Stopped
		return l.state, nil
	}
	if quit {
		l.state = Quitting
		return l.state, nil
	}

	turn := l.turn
	l.turn++
	if err := sink.Render(turn); err != nil {
		return l.state, err
	}
	sink.Present()
	return l.state, nil
}

// Run drives the loop until it stops, the user quits, or ctx ends.
func (l *Loop) Run(ctx context.Context, quit Quitter, sink Sink, pacer Pacer) error {
	for {
		if err := pacer.Wait(ctx); err != nil {
			return err
		}
		turn := l.turn
		state, err := l.Step(quit.QuitRequested(), sink)
		if err != nil {
			l.log.Warn("frame not presented", "turn", turn, "err", err)
		}
		if state.Terminal() {
			l.log.Info("playback finished", "state", state, "turns_shown", l.turn-1)
			return nil
		}
	}
}
