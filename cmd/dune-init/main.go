package main

import (
	"flag"
	"log"
	"os"

	"dune-ca/internal/core"
	"dune-ca/internal/snapshot"
)

func main() {
	width := flag.Int("w", 1024, "grid width")
	height := flag.Int("h", 1024, "grid height")
	fill := flag.Int("height", 4, "initial slab count of every cell")
	out := flag.String("o", "", "output file (default stdout)")
	flag.Parse()

	logger := log.New(os.Stderr, "dune-init: ", 0)

	g, err := core.NewHeightGrid(*width, *height, *fill)
	if err != nil {
		logger.Fatalf("%dx%d: %v", *width, *height, err)
	}
	if *out == "" {
		if err := snapshot.Format(os.Stdout, g); err != nil {
			logger.Fatal(err)
		}
		return
	}
	if err := snapshot.WriteFile(*out, g); err != nil {
		logger.Fatal(err)
	}
	logger.Printf("wrote %dx%d grid of height %d to %s", g.W, g.H, *fill, *out)
}
