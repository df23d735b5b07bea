// Package stats summarizes slabfield height distributions.
package stats

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"dune-ca/internal/core"
)

// Summary describes one height field.
type Summary struct {
	Mass     int64
	Occupied int
	Mean     float64
	StdDev   float64
	Min      float64
	Max      float64
	// Slope is the mean absolute height step between horizontal neighbors.
	Slope float64
}

// Summarize computes a Summary of g.
func Summarize(g *core.HeightGrid) Summary {
	cells := g.Cells()
	vals := make([]float64, len(cells))
	for i, v := range cells {
		vals[i] = float64(v)
	}
	s := Summary{
		Mass:     g.Sum(),
		Occupied: g.Occupied(),
		Min:      floats.Min(vals),
		Max:      floats.Max(vals),
	}
	if len(vals) > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(vals, nil)
	} else {
		s.Mean = vals[0]
	}

	steps := make([]float64, 0, len(vals))
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			d := g.Get(core.Pos{X: x + 1, Y: y}) - g.Get(core.Pos{X: x, Y: y})
			if d < 0 {
				d = -d
			}
			steps = append(steps, float64(d))
		}
	}
	s.Slope = stat.Mean(steps, nil)
	return s
}

// Coverage is the fraction of cells holding sand.
func (s Summary) Coverage(size core.Size) float64 {
	if size.Cells() == 0 {
		return 0
	}
	return float64(s.Occupied) / float64(size.Cells())
}

func (s Summary) String() string {
	return fmt.Sprintf("mass=%d occupied=%d mean=%.3f sd=%.3f min=%.0f max=%.0f slope=%.3f",
		s.Mass, s.Occupied, s.Mean, s.StdDev, s.Min, s.Max, s.Slope)
}
