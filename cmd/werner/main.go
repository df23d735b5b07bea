package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"dune-ca/internal/app"
)

func main() {
	logger := log.New(os.Stderr, "werner: ", log.LstdFlags)

	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: werner [flags] <num_ticks> <input_file> <output_file>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := cfg.ParseArgs(flag.Args()); err != nil {
		flag.Usage()
		logger.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := app.Run(ctx, cfg, logger); err != nil {
		logger.Fatalf("run failed: %v", err)
	}
}
