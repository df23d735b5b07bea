package werner

import "dune-ca/internal/core"

// neighborhood is the fixed scan order shared by both avalanche directions:
// axis neighbors W, E, N, S, then diagonals NW, NE, SW, SE.
var neighborhood = [8]core.Pos{
	{X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 1},
	{X: -1, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: 1, Y: 1},
}

// Deposit adds one slab at p and relaxes downhill. It returns the number of
// slabs moved by the avalanche.
func (s *Sim) Deposit(p core.Pos) int {
	s.grid.Add(p, 1)
	return s.avalancheDown(p, nil)
}

// Erode removes one slab at p and relaxes uphill. It returns the number of
// slabs moved by the avalanche.
func (s *Sim) Erode(p core.Pos) int {
	s.grid.Add(p, -1)
	return s.avalancheUp(p, nil)
}

// avalancheDown follows a single chain from p: while some neighbor sits more
// than ReposeDiff below the current cell, the first such neighbor in scan
// order receives one slab and becomes the current cell. visit, when set, sees
// every cell of the chain including p.
func (s *Sim) avalancheDown(p core.Pos, visit func(core.Pos)) int {
	g := s.grid
	moved := 0
	p = g.WrapPos(p)
	for {
		if visit != nil {
			visit(p)
		}
		h := g.Get(p)
		next, found := core.Pos{}, false
		for _, off := range neighborhood {
			q := g.AddPos(p, off)
			if h-g.Get(q) > ReposeDiff {
				next, found = q, true
				break
			}
		}
		if !found {
			return moved
		}
		g.Add(p, -1)
		g.Add(next, 1)
		moved++
		p = next
	}
}

// avalancheUp is the mirror of avalancheDown for a cell that just lost
// height: the first neighbor more than ReposeDiff above gives up one slab and
// the chain continues from it.
func (s *Sim) avalancheUp(p core.Pos, visit func(core.Pos)) int {
	g := s.grid
	moved := 0
	p = g.WrapPos(p)
	for {
		if visit != nil {
			visit(p)
		}
		h := g.Get(p)
		next, found := core.Pos{}, false
		for _, off := range neighborhood {
			q := g.AddPos(p, off)
			if g.Get(q)-h > ReposeDiff {
				next, found = q, true
				break
			}
		}
		if !found {
			return moved
		}
		g.Add(p, 1)
		g.Add(next, -1)
		moved++
		p = next
	}
}
