package replay

// PlanetID identifies a planet within one cluster.
type PlanetID int

// PlayerID identifies the player owning a planet on a given turn.
type PlayerID int

const (
	// Neutral is the owner of a planet nobody controls.
	Neutral PlayerID = 0
	// Unknown is returned when no owner was recorded. It is never a valid player.
	Unknown PlayerID = -1
)

// Point is a game-space coordinate pair.
type Point struct {
	X int
	Y int
}

// Planet is a node of the cluster graph.
type Planet struct {
	ID       PlanetID
	Position Point
}

// Connection is an undirected edge between two planets.
// Either endpoint may reference a planet that does not exist.
type Connection struct {
	A PlanetID
	B PlanetID
}

// Extent is the inclusive game-space rectangle a cluster occupies.
type Extent struct {
	Min Point
	Max Point
}

// Width returns the horizontal span of the extent.
func (e Extent) Width() int { return e.Max.X - e.Min.X }

// Height returns the vertical span of the extent.
func (e Extent) Height() int { return e.Max.Y - e.Min.Y }

// Cluster is the static planet graph of one game.
type Cluster struct {
	planets     []Planet
	connections []Connection
	dimensions  *Point // explicit [width, height], nil when derived from planets
	index       map[PlanetID]int
}

// Planets returns the planets in document order. Callers must not modify the slice.
func (c *Cluster) Planets() []Planet { return c.planets }

// Connections returns the connections in document order. Callers must not modify the slice.
func (c *Cluster) Connections() []Connection { return c.connections }

// Planet resolves a planet by id.
func (c *Cluster) Planet(id PlanetID) (Planet, bool) {
	i, ok := c.index[id]
	if !ok {
		return Planet{}, false
	}
	return c.planets[i], true
}

// Dimensions returns the explicit cluster size, if the document carried one.
func (c *Cluster) Dimensions() (Point, bool) {
	if c.dimensions == nil {
		return Point{}, false
	}
	return *c.dimensions, true
}

// Extent returns the explicit dimensions anchored at the origin, or the
// bounding box of all planet positions. An empty cluster has the zero extent.
func (c *Cluster) Extent() Extent {
	if c.dimensions != nil {
		return Extent{Max: *c.dimensions}
	}
	if len(c.planets) == 0 {
		return Extent{}
	}
	first := c.planets[0].Position
	e := Extent{Min: first, Max: first}
	for _, p := range c.planets[1:] {
		e.Min.X = min(e.Min.X, p.Position.X)
		e.Min.Y = min(e.Min.Y, p.Position.Y)
		e.Max.X = max(e.Max.X, p.Position.X)
		e.Max.Y = max(e.Max.Y, p.Position.Y)
	}
	return e
}

// DanglingConnections counts connections with at least one unresolved endpoint.
func (c *Cluster) DanglingConnections() int {
	n := 0
	for _, conn := range c.connections {
		_, okA := c.index[conn.A]
		_, okB := c.index[conn.B]
		if !okA || !okB {
			n++
		}
	}
	return n
}

// Ownership maps planet -> turn -> owner. It is built once and never mutated.
type Ownership struct {
	byPlanet map[PlanetID]map[int]PlayerID
}

// Lookup returns the recorded owner of a planet on a turn. The second result
// is false when the planet has no entry or the entry has no value for turn.
func (o Ownership) Lookup(planet PlanetID, turn int) (PlayerID, bool) {
	turns, ok := o.byPlanet[planet]
	if !ok {
		return Unknown, false
	}
	owner, ok := turns[turn]
	if !ok {
		return Unknown, false
	}
	return owner, true
}

// Owner is Lookup with every miss, and any negative recorded id, collapsed
// to Unknown.
func (o Ownership) Owner(planet PlanetID, turn int) PlayerID {
	owner, ok := o.Lookup(planet, turn)
	if !ok || owner < 0 {
		return Unknown
	}
	return owner
}

// Game is one completed, read-only game history.
type Game struct {
	cluster  Cluster
	owners   Ownership
	numTurns int
}

// Cluster returns the planet graph.
func (g *Game) Cluster() *Cluster { return &g.cluster }

// Owners returns the ownership table.
func (g *Game) Owners() Ownership { return g.owners }

// NumTurns returns the number of recorded turns.
func (g *Game) NumTurns() int { return g.numTurns }

// Tally counts the planets held by each owner on turn. Planets without a
// recorded owner are counted under Unknown.
func (g *Game) Tally(turn int) map[PlayerID]int {
	out := make(map[PlayerID]int)
	for _, p := range g.cluster.planets {
		out[g.owners.Owner(p.ID, turn)]++
	}
	return out
}

// Captures lists the planets whose owner on turn differs from the previous
// turn. Turn 1 has no captures.
func (g *Game) Captures(turn int) []PlanetID {
	if turn <= 1 {
		return nil
	}
	var out []PlanetID
	for _, p := range g.cluster.planets {
		if g.owners.Owner(p.ID, turn) != g.owners.Owner(p.ID, turn-1) {
			out = append(out, p.ID)
		}
	}
	return out
}
