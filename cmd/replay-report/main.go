package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/nurep/internal/archive"
	"github.com/Garsondee/nurep/internal/render"
	"github.com/Garsondee/nurep/internal/replay"
)

type turnStats struct {
	turn     int
	circles  int
	lines    int
	captures int
	unknown  int
	tally    map[replay.PlayerID]int
}

func main() {
	var dataPath string
	var size int
	var every int
	var toClipboard bool
	var sqlitePath string

	flag.StringVar(&dataPath, "data", "", "game history file (.json/.yaml, optionally .gz/.zst)")
	flag.IntVar(&size, "size", 1080, "virtual square display size in pixels")
	flag.IntVar(&every, "every", 1, "print every Nth turn")
	flag.BoolVar(&toClipboard, "clipboard", false, "copy the report to the clipboard")
	flag.StringVar(&sqlitePath, "sqlite", "", "also export the history to this SQLite file")
	flag.Parse()

	if dataPath == "" {
		fmt.Println("error: -data is required")
		return
	}
	if size <= 0 {
		fmt.Println("error: -size must be > 0")
		return
	}
	if every <= 0 {
		fmt.Println("error: -every must be > 0")
		return
	}

	g, err := replay.Load(dataPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load:", err)
		os.Exit(1)
	}

	var sb strings.Builder
	stats := collect(g, size)
	writeReport(&sb, dataPath, g, stats, every)
	fmt.Print(sb.String())

	if toClipboard {
		if err := clipboard.WriteAll(sb.String()); err != nil {
			fmt.Fprintln(os.Stderr, "clipboard:", err)
			os.Exit(1)
		}
		fmt.Println("(report copied to clipboard)")
	}
	if sqlitePath != "" {
		if err := archive.WriteSQLite(context.Background(), sqlitePath, g); err != nil {
			fmt.Fprintln(os.Stderr, "sqlite:", err)
			os.Exit(1)
		}
		fmt.Printf("exported to %s\n", sqlitePath)
	}
}

// collect renders every turn into a recorder on a size x size display.
func collect(g *replay.Game, size int) []turnStats {
	r := render.NewRenderer(g, size, size, render.DefaultOptions())
	rec := render.NewRecorder()
	out := make([]turnStats, 0, g.NumTurns())
	for turn := 1; turn <= g.NumTurns(); turn++ {
		rec.Reset()
		// Recorder never fails
		_ = r.Frame(rec, turn)
		tally := g.Tally(turn)
		out = append(out, turnStats{
			turn:     turn,
			circles:  rec.Count(render.OpCircle),
			lines:    rec.Count(render.OpLine),
			captures: len(g.Captures(turn)),
			unknown:  tally[replay.Unknown],
			tally:    tally,
		})
	}
	return out
}

func writeReport(w io.Writer, path string, g *replay.Game, stats []turnStats, every int) {
	c := g.Cluster()
	fmt.Fprintf(w, "=== Replay Report ===\n")
	fmt.Fprintf(w, "file=%s planets=%d connections=%d dangling=%d turns=%d\n\n",
		path, len(c.Planets()), len(c.Connections()), c.DanglingConnections(), g.NumTurns())

	for i, s := range stats {
		if i%every != 0 && i != len(stats)-1 {
			continue
		}
		fmt.Fprintf(w, "[T=%03d] circles=%d lines=%d captures=%d unknown=%d  %s\n",
			s.turn, s.circles, s.lines, s.captures, s.unknown, formatTally(s.tally))
	}

	fmt.Fprintln(w, "\n--- Standings ---")
	if len(stats) == 0 {
		fmt.Fprintln(w, "no turns recorded")
		return
	}
	last := stats[len(stats)-1]
	if id, n := leader(last.tally); id > replay.Neutral {
		fmt.Fprintf(w, "leader=P%d planets=%d\n", id, n)
	} else {
		fmt.Fprintln(w, "leader=none")
	}
	totalCaptures := 0
	for _, s := range stats {
		totalCaptures += s.captures
	}
	fmt.Fprintf(w, "total_captures=%d\n", totalCaptures)

	elim := eliminations(stats)
	ids := make([]replay.PlayerID, 0, len(elim))
	for id := range elim {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fmt.Fprintf(w, "eliminated P%d at T=%d\n", id, elim[id])
	}
}

// formatTally renders planet counts as "P1=3 P2=1 neutral=2 unknown=0".
func formatTally(tally map[replay.PlayerID]int) string {
	ids := make([]replay.PlayerID, 0, len(tally))
	for id := range tally {
		if id > replay.Neutral {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]string, 0, len(ids)+2)
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("P%d=%d", id, tally[id]))
	}
	parts = append(parts,
		fmt.Sprintf("neutral=%d", tally[replay.Neutral]),
		fmt.Sprintf("unknown=%d", tally[replay.Unknown]))
	return strings.Join(parts, " ")
}

// leader returns the player holding the most planets, lowest id on ties,
// or Unknown when no player holds any.
func leader(tally map[replay.PlayerID]int) (replay.PlayerID, int) {
	best, bestN := replay.Unknown, 0
	for id, n := range tally {
		if id <= replay.Neutral || n == 0 {
			continue
		}
		if n > bestN || (n == bestN && id < best) {
			best, bestN = id, n
		}
	}
	return best, bestN
}

// eliminations maps each player that held planets and later held none to
// the first turn it held none.
func eliminations(stats []turnStats) map[replay.PlayerID]int {
	seen := map[replay.PlayerID]bool{}
	out := map[replay.PlayerID]int{}
	for _, s := range stats {
		for id := range seen {
			if _, done := out[id]; !done && s.tally[id] == 0 {
				out[id] = s.turn
			}
		}
		for id, n := range s.tally {
			if id > replay.Neutral && n > 0 {
				seen[id] = true
				delete(out, id)
			}
		}
	}
	return out
}
