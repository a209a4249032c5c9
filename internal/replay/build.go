package replay

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicatePlanet = errors.New("duplicate planet id")
	ErrNegativeTurns   = errors.New("num_turns must not be negative")
	ErrBadDimensions   = errors.New("cluster dimensions must be positive")
	ErrBadTurn         = errors.New("turn numbers start at 1")
)

// builder accumulates options before the Game is frozen by Build.
type builder struct {
	planets     []Planet
	connections []Connection
	dimensions  *Point
	owners      map[PlanetID]map[int]PlayerID
	numTurns    int
}

// Option is a builder function applied during Build.
type Option func(*builder)

// WithPlanet adds a planet at (x, y).
func WithPlanet(id, x, y int) Option {
	return func(b *builder) {
		b.planets = append(b.planets, Planet{ID: PlanetID(id), Position: Point{X: x, Y: y}})
	}
}

// WithConnection links two planets. The ids need not exist.
func WithConnection(a, b int) Option {
	return func(bl *builder) {
		bl.connections = append(bl.connections, Connection{A: PlanetID(a), B: PlanetID(b)})
	}
}

// WithDimensions sets an explicit cluster size, replacing the bounding box.
func WithDimensions(w, h int) Option {
	return func(b *builder) {
		b.dimensions = &Point{X: w, Y: h}
	}
}

// WithOwner records that player owns planet on turn.
func WithOwner(planet, turn, player int) Option {
	return func(b *builder) {
		id := PlanetID(planet)
		if b.owners[id] == nil {
			b.owners[id] = make(map[int]PlayerID)
		}
		b.owners[id][turn] = PlayerID(player)
	}
}

// WithOwnerHistory records one owner per turn for planet, starting at turn 1.
func WithOwnerHistory(planet int, players ...int) Option {
	return func(b *builder) {
		for i, p := range players {
			WithOwner(planet, i+1, p)(b)
		}
	}
}

// WithTurns sets the number of recorded turns.
func WithTurns(n int) Option {
	return func(b *builder) {
		b.numTurns = n
	}
}

// Build applies opts and validates the result.
func Build(opts ...Option) (*Game, error) {
	b := &builder{owners: make(map[PlanetID]map[int]PlayerID)}
	for _, o := range opts {
		o(b)
	}

	if b.numTurns < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeTurns, b.numTurns)
	}
	if d := b.dimensions; d != nil && (d.X <= 0 || d.Y <= 0) {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, d.X, d.Y)
	}

	index := make(map[PlanetID]int, len(b.planets))
	for i, p := range b.planets {
		if _, dup := index[p.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicatePlanet, p.ID)
		}
		index[p.ID] = i
	}
	for planet, turns := range b.owners {
		for turn := range turns {
			if turn < 1 {
				return nil, fmt.Errorf("%w: planet %d has turn %d", ErrBadTurn, planet, turn)
			}
		}
	}

	return &Game{
		cluster: Cluster{
			planets:     b.planets,
			connections: b.connections,
			dimensions:  b.dimensions,
			index:       index,
		},
		owners:   Ownership{byPlanet: b.owners},
		numTurns: b.numTurns,
	}, nil
}
