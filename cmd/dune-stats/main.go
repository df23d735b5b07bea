package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"dune-ca/internal/snapshot"
	"dune-ca/internal/stats"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: dune-stats <dump_dir>")
	}
	flag.Parse()
	logger := log.New(os.Stderr, "dune-stats: ", 0)
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	frames, err := snapshot.LoadSequence(flag.Arg(0))
	if err != nil {
		logger.Fatal(err)
	}
	if len(frames) == 0 {
		logger.Fatalf("no snapshots in %s", flag.Arg(0))
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "frame\tmass\toccupied\tcoverage\tmean\tsd\tmin\tmax\tslope\t")
	for _, f := range frames {
		s := stats.Summarize(f.Grid)
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.3f\t%.3f\t%.3f\t%.0f\t%.0f\t%.3f\t\n",
			f.Name, s.Mass, s.Occupied, s.Coverage(f.Grid.Size()), s.Mean, s.StdDev, s.Min, s.Max, s.Slope)
	}
	if err := tw.Flush(); err != nil {
		logger.Fatal(err)
	}

	first, last := frames[0].Grid.Sum(), frames[len(frames)-1].Grid.Sum()
	if first != last {
		logger.Printf("warning: mass changed from %d to %d across the sequence", first, last)
	}
}
