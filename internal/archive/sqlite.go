package archive

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/Garsondee/nurep/internal/replay"
)

var schema = []string{
	`DROP TABLE IF EXISTS meta`,
	`DROP TABLE IF EXISTS planets`,
	`DROP TABLE IF EXISTS connections`,
	`DROP TABLE IF EXISTS ownership`,
	`CREATE TABLE meta (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE planets (
		id INTEGER PRIMARY KEY,
		x  INTEGER NOT NULL,
		y  INTEGER NOT NULL
	)`,
	`CREATE TABLE connections (
		id_a INTEGER NOT NULL,
		id_b INTEGER NOT NULL
	)`,
	`CREATE TABLE ownership (
		planet_id INTEGER NOT NULL,
		turn      INTEGER NOT NULL,
		owner_id  INTEGER NOT NULL,
		PRIMARY KEY (planet_id, turn)
	)`,
}

// WriteSQLite exports g to the database at path, replacing earlier exports.
// Only recorded ownership entries are written; unknown owners have no row.
func WriteSQLite(ctx context.Context, path string, g *replay.Game) (err error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := db.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}

	meta := map[string]string{"num_turns": strconv.Itoa(g.NumTurns())}
	if dim, ok := g.Cluster().Dimensions(); ok {
		meta["width"] = strconv.Itoa(dim.X)
		meta["height"] = strconv.Itoa(dim.Y)
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("meta %s: %w", k, err)
		}
	}

	planetStmt, err := tx.PrepareContext(ctx, `INSERT INTO planets (id, x, y) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare planets: %w", err)
	}
	defer planetStmt.Close()
	ownerStmt, err := tx.PrepareContext(ctx, `INSERT INTO ownership (planet_id, turn, owner_id) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare ownership: %w", err)
	}
	defer ownerStmt.Close()

	owners := g.Owners()
	for _, p := range g.Cluster().Planets() {
		if _, err := planetStmt.ExecContext(ctx, int(p.ID), p.Position.X, p.Position.Y); err != nil {
			return fmt.Errorf("planet %d: %w", p.ID, err)
		}
		for turn := 1; turn <= g.NumTurns(); turn++ {
			owner, ok := owners.Lookup(p.ID, turn)
			if !ok {
				continue
			}
			if _, err := ownerStmt.ExecContext(ctx, int(p.ID), turn, int(owner)); err != nil {
				return fmt.Errorf("ownership %d@%d: %w", p.ID, turn, err)
			}
		}
	}

	for _, c := range g.Cluster().Connections() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO connections (id_a, id_b) VALUES (?, ?)`, int(c.A), int(c.B)); err != nil {
			return fmt.Errorf("connection %d-%d: %w", c.A, c.B, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
