// Package app drives a headless simulation run from a snapshot file to a
// snapshot file.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"dune-ca/internal/core"
	"dune-ca/internal/sims/werner"
	"dune-ca/internal/snapshot"
	"dune-ca/internal/stats"
	pcore "dune-ca/pkg/core"
)

// Result reports what a run did.
type Result struct {
	RunID   string
	Seed    int64
	Ticks   int
	Stats   werner.TickStats
	Final   stats.Summary
	DumpDir string
}

// Run loads cfg.Input, advances it cfg.Ticks ticks and writes cfg.Output.
// The output file is only written when every tick succeeded.
func Run(ctx context.Context, cfg *Config, logger *log.Logger) (Result, error) {
	res := Result{RunID: uuid.NewString(), Seed: cfg.Seed}
	if res.Seed == 0 {
		res.Seed = time.Now().UnixNano()
	}

	grid, err := snapshot.ReadFile(cfg.Input)
	if err != nil {
		return res, fmt.Errorf("load input: %w", err)
	}

	wcfg := werner.DefaultConfig()
	wcfg.Width, wcfg.Height = grid.W, grid.H
	wcfg.Seed = res.Seed
	werner.ApplyMap(&wcfg, cfg.Overrides.Map())
	res.Seed = wcfg.Seed
	if cfg.MaxHops > 0 {
		wcfg.Params.MaxHops = cfg.MaxHops
	}
	sim, err := werner.New(grid, pcore.NewRNG(wcfg.Seed), wcfg)
	if err != nil {
		return res, err
	}

	logger.Printf("run %s: %s %dx%d, %d ticks, seed %d", res.RunID, sim.Name(), grid.W, grid.H, cfg.Ticks, res.Seed)
	for _, line := range sim.Parameters().Lines() {
		logger.Printf("  %s", line)
	}

	var dumper *snapshot.Dumper
	if cfg.Dump {
		dumper, err = snapshot.NewDumper(cfg.DumpRoot, cfg.DumpInterval)
		if err != nil {
			return res, err
		}
		res.DumpDir = dumper.Dir()
	}

	if err := advance(ctx, sim, cfg.Ticks, dumper, core.NewThrottle(cfg.LogEvery), logger, &res); err != nil {
		return res, err
	}

	if dumper != nil {
		logger.Printf("dumped %d intermediate slabfields to %s", dumper.Written(), dumper.Dir())
	}
	res.Final = stats.Summarize(grid)
	if err := snapshot.WriteFile(cfg.Output, grid); err != nil {
		return res, fmt.Errorf("write output: %w", err)
	}
	logger.Printf("run %s: wrote %s (%s)", res.RunID, cfg.Output, res.Final)
	return res, nil
}

func advance(ctx context.Context, sim *werner.Sim, ticks int, dumper *snapshot.Dumper, progress *core.Throttle, logger *log.Logger, res *Result) error {
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("stopped after %d ticks: %w", i, err)
		}
		st, err := sim.Tick()
		res.Stats.Add(st)
		if err != nil {
			return err
		}
		res.Ticks++
		if progress.Ready() {
			logger.Printf("iter %d: hops/grain=%.2f slides=%d/%d %s",
				i, st.MeanHops(), st.ErodeSlides, st.DepositSlides, stats.Summarize(sim.Grid()))
		}
		if dumper != nil {
			if _, err := dumper.MaybeDump(i, sim.Grid()); err != nil {
				return err
			}
		}
	}
	return nil
}
