package archive

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/Garsondee/nurep/internal/replay"
)

func TestWriteSQLite(t *testing.T) {
	g, err := replay.Build(
		replay.WithPlanet(1, 0, 0),
		replay.WithPlanet(2, 100, 50),
		replay.WithConnection(1, 2),
		replay.WithConnection(2, 7),
		replay.WithDimensions(200, 100),
		replay.WithOwnerHistory(1, 1, 1, 2),
		replay.WithOwner(2, 3, 0),
		replay.WithTurns(3),
	)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()
	// second export must replace the first
	for i := 0; i < 2; i++ {
		if err := WriteSQLite(ctx, path, g); err != nil {
			t.Fatalf("WriteSQLite #%d: %v", i+1, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	count := func(table string) int {
		t.Helper()
		var n int
		if err := db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		return n
	}
	if n := count("planets"); n != 2 {
		t.Fatalf("planets = %d, want 2", n)
	}
	if n := count("connections"); n != 2 {
		t.Fatalf("connections = %d, want 2", n)
	}
	if n := count("ownership"); n != 4 {
		t.Fatalf("ownership rows = %d, want 4", n)
	}

	var owner int
	if err := db.QueryRow(`SELECT owner_id FROM ownership WHERE planet_id = 1 AND turn = 3`).Scan(&owner); err != nil {
		t.Fatalf("query owner: %v", err)
	}
	if owner != 2 {
		t.Fatalf("owner of planet 1 at turn 3 = %d, want 2", owner)
	}

	var turns, width string
	if err := db.QueryRow(`SELECT value FROM meta WHERE key = 'num_turns'`).Scan(&turns); err != nil {
		t.Fatalf("meta num_turns: %v", err)
	}
	if err := db.QueryRow(`SELECT value FROM meta WHERE key = 'width'`).Scan(&width); err != nil {
		t.Fatalf("meta width: %v", err)
	}
	if turns != "3" || width != "200" {
		t.Fatalf("meta = num_turns %s width %s", turns, width)
	}
}
