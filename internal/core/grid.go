package core

import "errors"

var (
	// ErrInvalidDimensions reports a non-positive grid width or height.
	ErrInvalidDimensions = errors.New("grid: width and height must be positive")
	// ErrEmptyGrid reports that no cell holds a positive height.
	ErrEmptyGrid = errors.New("grid: no occupied cell")
)

// CellSampler is the subset of a random source needed to pick cells.
type CellSampler interface {
	IntN(n int) int
}

// HeightGrid stores a periodic 2D field of signed slab counts in row-major
// order. Every accessor wraps its coordinates, so lookups never fail.
type HeightGrid struct {
	W, H int
	data []int
}

// NewHeightGrid allocates a grid with every cell set to fill.
func NewHeightGrid(w, h, fill int) (*HeightGrid, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidDimensions
	}
	g := &HeightGrid{W: w, H: h, data: make([]int, w*h)}
	if fill != 0 {
		g.Fill(fill)
	}
	return g, nil
}

// NewHeightGridFrom adopts cells (row-major, len w*h) as the backing buffer.
func NewHeightGridFrom(w, h int, cells []int) (*HeightGrid, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(cells) != w*h {
		return nil, errors.New("grid: cell count does not match dimensions")
	}
	return &HeightGrid{W: w, H: h, data: cells}, nil
}

// Width returns the number of columns.
func (g *HeightGrid) Width() int { return g.W }

// Height returns the number of rows.
func (g *HeightGrid) Height() int { return g.H }

// Size returns the grid dimensions.
func (g *HeightGrid) Size() Size { return Size{W: g.W, H: g.H} }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *HeightGrid) Cells() []int { return g.data }

// Index returns the linear slice index for in-range coordinates (x, y).
func (g *HeightGrid) Index(x, y int) int { return y*g.W + x }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *HeightGrid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// WrapPos normalizes p into [0,W)x[0,H).
func (g *HeightGrid) WrapPos(p Pos) Pos {
	x, y := g.Wrap(p.X, p.Y)
	return Pos{X: x, Y: y}
}

// AddPos offsets p by off with periodic boundaries.
func (g *HeightGrid) AddPos(p, off Pos) Pos { return g.WrapPos(p.Add(off)) }

// Get returns the height at p.
func (g *HeightGrid) Get(p Pos) int {
	x, y := g.Wrap(p.X, p.Y)
	return g.data[g.Index(x, y)]
}

// Set stores v at p.
func (g *HeightGrid) Set(p Pos, v int) {
	x, y := g.Wrap(p.X, p.Y)
	g.data[g.Index(x, y)] = v
}

// Add changes the height at p by delta and returns the new value.
func (g *HeightGrid) Add(p Pos, delta int) int {
	x, y := g.Wrap(p.X, p.Y)
	idx := g.Index(x, y)
	g.data[idx] += delta
	return g.data[idx]
}

// Fill sets every cell to v.
func (g *HeightGrid) Fill(v int) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Sum returns the total mass of the field.
func (g *HeightGrid) Sum() int64 {
	var total int64
	for _, v := range g.data {
		total += int64(v)
	}
	return total
}

// Occupied counts cells with a positive height.
func (g *HeightGrid) Occupied() int {
	n := 0
	for _, v := range g.data {
		if v > 0 {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (g *HeightGrid) Clone() *HeightGrid {
	return &HeightGrid{W: g.W, H: g.H, data: append([]int(nil), g.data...)}
}

// Equal reports whether both grids have the same dimensions and heights.
func (g *HeightGrid) Equal(o *HeightGrid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.W != o.W || g.H != o.H {
		return false
	}
	for i, v := range g.data {
		if o.data[i] != v {
			return false
		}
	}
	return true
}

// RandomCell draws a position uniformly over all cells.
func (g *HeightGrid) RandomCell(r CellSampler) Pos {
	x := r.IntN(g.W)
	y := r.IntN(g.H)
	return Pos{X: x, Y: y}
}

// RandomOccupiedCell draws a position uniformly among cells with a positive
// height. Rejection sampling is tried maxTries times; after that the grid is
// scanned and a uniform pick is made among the occupied cells, or
// ErrEmptyGrid is returned when there are none.
func (g *HeightGrid) RandomOccupiedCell(r CellSampler, maxTries int) (Pos, error) {
	for i := 0; i < maxTries; i++ {
		p := g.RandomCell(r)
		if g.Get(p) > 0 {
			return p, nil
		}
	}
	occupied := g.Occupied()
	if occupied == 0 {
		return Pos{}, ErrEmptyGrid
	}
	k := r.IntN(occupied)
	for i, v := range g.data {
		if v <= 0 {
			continue
		}
		if k == 0 {
			return Pos{X: i % g.W, Y: i / g.W}, nil
		}
		k--
	}
	return Pos{}, ErrEmptyGrid
}
