package werner

import "dune-ca/internal/core"

// Saltate carries a grain lifted above p downwind until it lands and returns
// the landing cell together with the number of hops taken. Each hop advances
// by the full wind vector and draws one random value:
//
//   - on sand (height > 0) the grain sticks when r < PSlab
//   - on bare ground it sticks when r < PFloor
//   - otherwise it sticks only inside an upwind shadow
//
// ErrTransportStalled is returned once the hop budget is spent.
func (s *Sim) Saltate(p core.Pos) (core.Pos, int, error) {
	g := s.grid
	params := s.cfg.Params
	for hops := 1; hops <= s.maxHops; hops++ {
		p = g.AddPos(p, s.wind)
		r := s.rng.Float64()
		h := g.Get(p)
		if h > 0 && r < params.PSlab {
			return p, hops, nil
		}
		if h <= 0 && r < params.PFloor {
			return p, hops, nil
		}
		if s.IsShadowed(p) {
			return p, hops, nil
		}
	}
	return p, s.maxHops, ErrTransportStalled
}

// IsShadowed reports whether p lies in the wind shadow of an upwind crest:
// some cell i steps upwind (i <= ShadowHorizon) stands more than i slabs
// above p.
func (s *Sim) IsShadowed(p core.Pos) bool {
	g := s.grid
	h := g.Get(p)
	q := p
	for i := 1; i <= ShadowHorizon; i++ {
		q = g.AddPos(q, s.upwind)
		if g.Get(q)-h > i {
			return true
		}
	}
	return false
}
