package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"dune-ca/internal/app"
	"dune-ca/internal/sims/werner"
	"dune-ca/internal/stats"
)

type paramSet struct {
	pSlab     float64
	pFloor    float64
	windSpeed int
	seed      int64
}

func (p paramSet) String() string {
	return fmt.Sprintf("p_slab=%.2f p_floor=%.2f wind=%d seed=%d", p.pSlab, p.pFloor, p.windSpeed, p.seed)
}

type scenarioResult struct {
	params   paramSet
	final    stats.Summary
	meanHops float64
	slides   int
}

func main() {
	ticks := flag.Int("ticks", 50, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of concurrent scenarios")
	width := flag.Int("w", 96, "grid width")
	height := flag.Int("h", 96, "grid height")
	fill := flag.Int("height", 4, "initial slab count of every cell")
	seeds := flag.Int("seeds", 2, "seeds per parameter set")
	seed := flag.Int64("seed", 1337, "first seed")
	top := flag.Int("top", 5, "results to print")
	var overrides app.KVList
	flag.Var(&overrides, "set", "base parameter override in key=value form (repeatable)")
	flag.Parse()

	logger := log.New(os.Stderr, "dune-sweep: ", log.LstdFlags)

	base := werner.DefaultConfig()
	base.Width = *width
	base.Height = *height
	base.InitialHeight = *fill
	werner.ApplyMap(&base, overrides.Map())

	slabOptions := []float64{0.4, 0.6, 0.8}
	floorOptions := []float64{0.2, 0.4, 0.6}
	windOptions := []int{3, 5, 7}

	var sets []paramSet
	for _, ps := range slabOptions {
		for _, pf := range floorOptions {
			for _, ws := range windOptions {
				for i := 0; i < *seeds; i++ {
					sets = append(sets, paramSet{pSlab: ps, pFloor: pf, windSpeed: ws, seed: *seed + int64(i)})
				}
			}
		}
	}

	logger.Printf("sweeping %d scenarios (%d workers, %d ticks, %dx%d)", len(sets), *workers, *ticks, *width, *height)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results := make([]scenarioResult, len(sets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*workers)
	for i, params := range sets {
		g.Go(func() error {
			res, err := runScenario(gctx, base, params, *ticks)
			if err != nil {
				return fmt.Errorf("%s: %w", params, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Fatal(err)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].final.StdDev > results[j].final.StdDev })
	elapsed := time.Since(start)

	fmt.Printf("Top %d by roughness (elapsed %s):\n", *top, elapsed.Round(time.Millisecond))
	for i := 0; i < len(results) && i < *top; i++ {
		res := results[i]
		fmt.Printf("%2d) sd=%.3f slope=%.3f max=%.0f hops/grain=%.2f slides=%d %s\n",
			i+1, res.final.StdDev, res.final.Slope, res.final.Max, res.meanHops, res.slides, res.params)
	}
}

func runScenario(ctx context.Context, base werner.Config, params paramSet, ticks int) (scenarioResult, error) {
	cfg := base
	cfg.Seed = params.seed
	cfg.Params.PSlab = params.pSlab
	cfg.Params.PFloor = params.pFloor
	cfg.Params.WindSpeed = params.windSpeed

	sim, err := werner.NewUniform(cfg)
	if err != nil {
		return scenarioResult{}, err
	}
	mass := sim.Grid().Sum()

	var total werner.TickStats
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return scenarioResult{}, err
		}
		st, err := sim.Tick()
		total.Add(st)
		if err != nil {
			return scenarioResult{}, err
		}
	}
	if got := sim.Grid().Sum(); got != mass {
		return scenarioResult{}, fmt.Errorf("mass drifted from %d to %d", mass, got)
	}

	return scenarioResult{
		params:   params,
		final:    stats.Summarize(sim.Grid()),
		meanHops: total.MeanHops(),
		slides:   total.ErodeSlides + total.DepositSlides,
	}, nil
}
