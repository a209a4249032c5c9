package replay

import (
	"errors"
	"testing"
)

func mustBuild(t *testing.T, opts ...Option) *Game {
	t.Helper()
	g, err := Build(opts...)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func TestOwnerCollapsesMissingToUnknown(t *testing.T) {
	g := mustBuild(t,
		WithPlanet(1, 0, 0),
		WithPlanet(2, 10, 10),
		WithPlanet(3, 20, 20),
		WithOwner(1, 1, 4),
		WithOwner(2, 2, 0),
		WithOwner(3, 1, -7),
		WithTurns(2),
	)
	owners := g.Owners()

	tests := []struct {
		name   string
		planet PlanetID
		turn   int
		want   PlayerID
	}{
		{"recorded", 1, 1, 4},
		{"turn missing", 1, 2, Unknown},
		{"neutral", 2, 2, Neutral},
		{"planet missing", 99, 1, Unknown},
		{"negative recorded id", 3, 1, Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := owners.Owner(tt.planet, tt.turn); got != tt.want {
				t.Fatalf("Owner(%d, %d) = %d, want %d", tt.planet, tt.turn, got, tt.want)
			}
		})
	}
}

func TestLookupReportsPresence(t *testing.T) {
	g := mustBuild(t, WithPlanet(1, 0, 0), WithOwner(1, 1, 0), WithTurns(1))
	if owner, ok := g.Owners().Lookup(1, 1); !ok || owner != Neutral {
		t.Fatalf("Lookup(1,1) = %d,%v want 0,true", owner, ok)
	}
	if _, ok := g.Owners().Lookup(1, 2); ok {
		t.Fatal("Lookup(1,2) reported a recorded owner")
	}
}

func TestOwnerIsPure(t *testing.T) {
	g := mustBuild(t,
		WithPlanet(1, 0, 0),
		WithOwnerHistory(1, 1, 1, 2, 2, 0),
		WithTurns(5),
	)
	for turn := 1; turn <= g.NumTurns(); turn++ {
		first := g.Owners().Owner(1, turn)
		for i := 0; i < 5; i++ {
			if got := g.Owners().Owner(1, turn); got != first {
				t.Fatalf("turn %d: call %d returned %d, first call %d", turn, i, got, first)
			}
		}
	}
}

func TestExtent(t *testing.T) {
	t.Run("bounding box", func(t *testing.T) {
		g := mustBuild(t, WithPlanet(1, 50, -20), WithPlanet(2, 150, 80), WithPlanet(3, 90, 10))
		e := g.Cluster().Extent()
		want := Extent{Min: Point{50, -20}, Max: Point{150, 80}}
		if e != want {
			t.Fatalf("Extent = %+v, want %+v", e, want)
		}
		if e.Width() != 100 || e.Height() != 100 {
			t.Fatalf("size = %dx%d, want 100x100", e.Width(), e.Height())
		}
	})
	t.Run("explicit dimensions", func(t *testing.T) {
		g := mustBuild(t, WithPlanet(1, 5, 5), WithDimensions(400, 300))
		e := g.Cluster().Extent()
		if e != (Extent{Max: Point{400, 300}}) {
			t.Fatalf("Extent = %+v, want origin to 400x300", e)
		}
	})
	t.Run("empty", func(t *testing.T) {
		g := mustBuild(t)
		if e := g.Cluster().Extent(); e != (Extent{}) {
			t.Fatalf("Extent = %+v, want zero", e)
		}
	})
}

func TestPlanetLookupAndDangling(t *testing.T) {
	g := mustBuild(t,
		WithPlanet(1, 0, 0),
		WithPlanet(2, 1, 1),
		WithConnection(1, 2),
		WithConnection(2, 42),
		WithConnection(43, 44),
	)
	c := g.Cluster()
	if p, ok := c.Planet(2); !ok || p.Position != (Point{1, 1}) {
		t.Fatalf("Planet(2) = %+v,%v", p, ok)
	}
	if _, ok := c.Planet(42); ok {
		t.Fatal("Planet(42) should not resolve")
	}
	if n := c.DanglingConnections(); n != 2 {
		t.Fatalf("DanglingConnections = %d, want 2", n)
	}
}

func TestTallyAndCaptures(t *testing.T) {
	g := mustBuild(t,
		WithPlanet(1, 0, 0),
		WithPlanet(2, 1, 0),
		WithPlanet(3, 2, 0),
		WithOwnerHistory(1, 1, 1, 1),
		WithOwnerHistory(2, 0, 2, 1),
		WithOwnerHistory(3, 2, 2),
		WithTurns(3),
	)

	tally := g.Tally(2)
	if tally[1] != 1 || tally[2] != 2 {
		t.Fatalf("Tally(2) = %v, want 1:1 2:2", tally)
	}
	tally = g.Tally(3)
	if tally[1] != 2 || tally[Unknown] != 1 {
		t.Fatalf("Tally(3) = %v, want 1:2 unknown:1", tally)
	}

	if c := g.Captures(1); c != nil {
		t.Fatalf("Captures(1) = %v, want none", c)
	}
	if c := g.Captures(2); len(c) != 1 || c[0] != 2 {
		t.Fatalf("Captures(2) = %v, want [2]", c)
	}
	if c := g.Captures(3); len(c) != 2 {
		t.Fatalf("Captures(3) = %v, want planets 2 and 3", c)
	}
}

func TestBuildRejects(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want error
	}{
		{"duplicate planet", []Option{WithPlanet(1, 0, 0), WithPlanet(1, 5, 5)}, ErrDuplicatePlanet},
		{"negative turns", []Option{WithTurns(-1)}, ErrNegativeTurns},
		{"zero dimension", []Option{WithDimensions(0, 10)}, ErrBadDimensions},
		{"turn zero", []Option{WithPlanet(1, 0, 0), WithOwner(1, 0, 1)}, ErrBadTurn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Build error = %v, want %v", err, tt.want)
			}
		})
	}
}
