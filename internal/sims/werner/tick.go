package werner

import (
	"fmt"

	"dune-ca/internal/core"
)

// TickStats summarizes the work done by one or more ticks.
type TickStats struct {
	Moves int
	Hops  int
	// ErodeSlides and DepositSlides count slabs moved by avalanches.
	ErodeSlides   int
	DepositSlides int
}

// Add accumulates o into t.
func (t *TickStats) Add(o TickStats) {
	t.Moves += o.Moves
	t.Hops += o.Hops
	t.ErodeSlides += o.ErodeSlides
	t.DepositSlides += o.DepositSlides
}

// MeanHops returns the average saltation length in hops.
func (t TickStats) MeanHops() float64 {
	if t.Moves == 0 {
		return 0
	}
	return float64(t.Hops) / float64(t.Moves)
}

// Tick performs one unit of time: one erode, saltate, deposit cycle per
// grid cell. The first failing move aborts the tick; a grain whose
// saltation stalls is put back at its source, so the grid keeps its mass.
func (s *Sim) Tick() (TickStats, error) {
	var st TickStats
	cells := s.grid.W * s.grid.H
	// Moves conserve mass, and a positive total guarantees an occupied cell.
	mass := s.grid.Sum()
	for i := 0; i < cells; i++ {
		if err := s.move(&st, mass); err != nil {
			return st, fmt.Errorf("tick %d, move %d: %w", s.ticks, i, err)
		}
	}
	s.ticks++
	return st, nil
}

// Run performs n ticks and returns their combined statistics.
func (s *Sim) Run(n int) (TickStats, error) {
	var total TickStats
	for i := 0; i < n; i++ {
		st, err := s.Tick()
		total.Add(st)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (s *Sim) move(st *TickStats, mass int64) error {
	if mass <= 0 && s.grid.Occupied() == 0 {
		return core.ErrEmptyGrid
	}
	src, err := s.grid.RandomOccupiedCell(s.rng, s.sampleTries)
	if err != nil {
		return err
	}
	st.ErodeSlides += s.Erode(src)
	dst, hops, err := s.Saltate(src)
	st.Hops += hops
	if err != nil {
		st.DepositSlides += s.Deposit(src)
		return fmt.Errorf("grain from (%d,%d): %w", src.X, src.Y, err)
	}
	st.DepositSlides += s.Deposit(dst)
	st.Moves++
	return nil
}
