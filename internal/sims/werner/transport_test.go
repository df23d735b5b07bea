package werner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dune-ca/internal/core"
	"dune-ca/internal/testutil"
	pcore "dune-ca/pkg/core"
)

func shadowGrid(t *testing.T) *core.HeightGrid {
	t.Helper()
	return gridFromRows(t, []int{6, 0, 0, 0, 0, 0, 0, 0, 0, 0})
}

func TestIsShadowedUpwindColumn(t *testing.T) {
	s := newTestSim(t, shadowGrid(t), pcore.NewRNG(1))

	cases := []struct {
		x    int
		want bool
	}{
		{x: 0, want: false},
		{x: 1, want: true},
		{x: 3, want: true},
		{x: 5, want: true},
		{x: 6, want: false},
		{x: 7, want: false},
		{x: 9, want: false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, s.IsShadowed(core.Pos{X: tc.x}), "x=%d", tc.x)
	}
}

func TestIsShadowedThresholdGrowsWithDistance(t *testing.T) {
	// A crest 3 cells upwind must stand more than 3 slabs above.
	g := gridFromRows(t, []int{4, 0, 0, 1, 0, 0, 0, 0, 0, 0})
	s := newTestSim(t, g, pcore.NewRNG(1))
	assert.False(t, s.IsShadowed(core.Pos{X: 3}), "4-1=3 is not above the threshold of 3")

	g.Set(core.Pos{X: 0}, 5)
	assert.True(t, s.IsShadowed(core.Pos{X: 3}))
}

func TestIsShadowedFollowsWindDirection(t *testing.T) {
	g := gridFromRows(t, []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 6})
	cfg := DefaultConfig()
	cfg.Params.WindDX = -1
	s, err := New(g, pcore.NewRNG(1), cfg)
	require.NoError(t, err)

	assert.True(t, s.IsShadowed(core.Pos{X: 6}))
	assert.False(t, s.IsShadowed(core.Pos{X: 2}))
	assert.True(t, s.IsShadowed(core.Pos{X: 8}))
}

func TestIsShadowedWrapsUpwind(t *testing.T) {
	g := gridFromRows(t, []int{0, 0, 0, 0, 0, 0, 0, 0, 6, 0})
	s := newTestSim(t, g, pcore.NewRNG(1))

	assert.True(t, s.IsShadowed(core.Pos{X: 1}), "crest three cells upwind across the edge")
	assert.False(t, s.IsShadowed(core.Pos{X: 4}))
}

func TestSaltateFirstHopOnSand(t *testing.T) {
	for _, r := range []float64{0, 0.3, 0.599} {
		g, err := core.NewHeightGrid(10, 3, 1)
		require.NoError(t, err)
		src := &testutil.ScriptedSource{Floats: []float64{r}}
		s := newTestSim(t, g, src)

		p, hops, err := s.Saltate(core.Pos{X: 2, Y: 1})
		require.NoError(t, err)
		assert.Equal(t, core.Pos{X: 7, Y: 1}, p, "r=%v", r)
		assert.Equal(t, 1, hops)
		assert.Equal(t, 1, src.FloatCalls)
	}
}

func TestSaltateKeepsHoppingOnMiss(t *testing.T) {
	for _, r := range []float64{0.6, 0.95} {
		g, err := core.NewHeightGrid(10, 3, 1)
		require.NoError(t, err)
		src := &testutil.ScriptedSource{Floats: []float64{r, 0.1}}
		s := newTestSim(t, g, src)

		p, hops, err := s.Saltate(core.Pos{X: 2, Y: 1})
		require.NoError(t, err)
		assert.Equal(t, core.Pos{X: 2, Y: 1}, p, "second hop wraps back to the start column")
		assert.Equal(t, 2, hops)
	}
}

func TestSaltateOnBareFloor(t *testing.T) {
	g, err := core.NewHeightGrid(10, 1, 0)
	require.NoError(t, err)
	s := newTestSim(t, g, &testutil.ScriptedSource{Floats: []float64{0.45, 0.39}})

	p, hops, err := s.Saltate(core.Pos{X: 0})
	require.NoError(t, err)
	assert.Equal(t, core.Pos{X: 0}, p)
	assert.Equal(t, 2, hops)
}

func TestSaltateForcedByShadow(t *testing.T) {
	s := newTestSim(t, shadowGrid(t), &testutil.ScriptedSource{Floats: []float64{0.99}})

	p, hops, err := s.Saltate(core.Pos{X: 8})
	require.NoError(t, err)
	assert.Equal(t, core.Pos{X: 3}, p)
	assert.Equal(t, 1, hops)
}

func TestSaltateStallsAfterHopLimit(t *testing.T) {
	g, err := core.NewHeightGrid(10, 1, 0)
	require.NoError(t, err)
	src := &testutil.ScriptedSource{RepeatFloat: testutil.Float(0.99)}
	cfg := DefaultConfig()
	cfg.Params.MaxHops = 7
	s, err := New(g, src, cfg)
	require.NoError(t, err)

	_, hops, err := s.Saltate(core.Pos{})
	require.ErrorIs(t, err, ErrTransportStalled)
	assert.Equal(t, 7, hops)
	assert.Equal(t, 7, src.FloatCalls)
}
