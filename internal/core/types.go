package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Cells reports the number of cells covered by the size.
func (s Size) Cells() int { return s.W * s.H }

// Pos addresses a grid cell. Coordinates are interpreted modulo the grid
// dimensions, so any Pos is valid once wrapped.
type Pos struct {
	X int
	Y int
}

// Add returns the component-wise sum without wrapping.
func (p Pos) Add(o Pos) Pos { return Pos{X: p.X + o.X, Y: p.Y + o.Y} }

// Scale multiplies both components by k.
func (p Pos) Scale(k int) Pos { return Pos{X: p.X * k, Y: p.Y * k} }

// Neg returns the opposite offset.
func (p Pos) Neg() Pos { return Pos{X: -p.X, Y: -p.Y} }
