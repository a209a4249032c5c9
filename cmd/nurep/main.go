package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/nurep/internal/replay"
	"github.com/Garsondee/nurep/internal/viewer"
)

const usage = "Usage: nurep <data_path>"

func main() {
	if err := run(os.Args, os.Stdout, play); err != nil {
		log.Fatal(err)
	}
}

// run checks the arguments and hands the data path to start. Bad usage
// prints a one-line message and is not an error.
func run(args []string, stdout io.Writer, start func(path string) error) error {
	if len(args) != 2 {
		fmt.Fprintln(stdout, usage)
		return nil
	}
	return start(args[1])
}

func play(path string) error {
	g, err := replay.Load(path)
	if err != nil {
		return err
	}

	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowTitle("nurep")
	ebiten.SetFullscreen(true)
	ebiten.SetWindowClosingHandled(true)
	if err := ebiten.RunGame(viewer.New(g, w, h, viewer.DefaultOptions())); err != nil {
		return fmt.Errorf("playback: %w", err)
	}
	return nil
}
