// Package werner implements Werner's slab model of aeolian dune formation on
// a periodic height grid: grains are lifted from random occupied cells, hop
// downwind until they stick, and both ends of the trip are relaxed toward the
// angle of repose.
package werner

import (
	"errors"
	"fmt"

	"dune-ca/internal/core"
	pcore "dune-ca/pkg/core"
)

// ErrTransportStalled reports a saltation that used up its hop budget.
var ErrTransportStalled = errors.New("werner: saltation exceeded hop limit")

// ErrInvalidParams reports transport parameters the model cannot run with.
var ErrInvalidParams = errors.New("werner: invalid parameters")

// Sim owns one slabfield and the random source driving it.
type Sim struct {
	cfg  Config
	grid *core.HeightGrid
	rng  pcore.Source

	wind   core.Pos
	upwind core.Pos

	maxHops     int
	sampleTries int
	ticks       int
}

// New wraps grid in a simulation. The grid is mutated in place by every move.
func New(grid *core.HeightGrid, rng pcore.Source, cfg Config) (*Sim, error) {
	if grid == nil || grid.W <= 0 || grid.H <= 0 {
		return nil, core.ErrInvalidDimensions
	}
	p := cfg.Params
	if p.WindSpeed <= 0 || (p.WindDX == 0 && p.WindDY == 0) {
		return nil, fmt.Errorf("%w: wind speed %d direction (%d,%d)", ErrInvalidParams, p.WindSpeed, p.WindDX, p.WindDY)
	}
	if p.PSlab < 0 || p.PSlab > 1 || p.PFloor < 0 || p.PFloor > 1 {
		return nil, fmt.Errorf("%w: p_slab %v p_floor %v", ErrInvalidParams, p.PSlab, p.PFloor)
	}
	dir := core.Pos{X: p.WindDX, Y: p.WindDY}
	s := &Sim{
		cfg:         cfg,
		grid:        grid,
		rng:         rng,
		wind:        dir.Scale(p.WindSpeed),
		upwind:      dir.Neg(),
		maxHops:     p.MaxHops,
		sampleTries: p.SampleTries,
	}
	if s.maxHops <= 0 {
		s.maxHops = DefaultMaxHops(grid.Size())
	}
	if s.sampleTries <= 0 {
		s.sampleTries = grid.W * grid.H
	}
	return s, nil
}

// NewUniform builds a simulation over a fresh Width x Height grid filled with
// InitialHeight, seeded from cfg.Seed.
func NewUniform(cfg Config) (*Sim, error) {
	grid, err := core.NewHeightGrid(cfg.Width, cfg.Height, cfg.InitialHeight)
	if err != nil {
		return nil, err
	}
	return New(grid, pcore.NewRNG(cfg.Seed), cfg)
}

// DefaultMaxHops is the hop budget used when none is configured.
func DefaultMaxHops(s core.Size) int { return 64 * (s.W + s.H) }

// Name returns the simulation identifier.
func (s *Sim) Name() string { return "werner" }

// Size reports the grid dimensions.
func (s *Sim) Size() core.Size { return s.grid.Size() }

// Grid exposes the slabfield.
func (s *Sim) Grid() *core.HeightGrid { return s.grid }

// Ticks reports how many ticks completed successfully.
func (s *Sim) Ticks() int { return s.ticks }

// MaxHops returns the effective saltation hop budget.
func (s *Sim) MaxHops() int { return s.maxHops }
