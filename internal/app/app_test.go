package app

import (
	"bytes"
	"context"
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dune-ca/internal/core"
	"dune-ca/internal/sims/werner"
	"dune-ca/internal/snapshot"
)

func discardLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func TestRunZeroTicksRoundTrips(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(in, []byte("3 1\n5 5 5\n"), 0o644))

	cfg := NewConfig()
	require.NoError(t, cfg.ParseArgs([]string{"0", in, out}))
	res, err := Run(context.Background(), cfg, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Ticks)
	assert.NotEmpty(t, res.RunID)
	assert.NotZero(t, res.Seed)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "3 1\n5 5 5\n", string(got))
}

func writeUniform(t *testing.T, path string, w, h, fill int) *core.HeightGrid {
	t.Helper()
	g, err := core.NewHeightGrid(w, h, fill)
	require.NoError(t, err)
	require.NoError(t, snapshot.WriteFile(path, g))
	return g
}

func TestRunAdvancesAndDumps(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	initial := writeUniform(t, in, 12, 10, 3)

	var logs bytes.Buffer
	cfg := NewConfig()
	cfg.Seed = 42
	cfg.Dump = true
	cfg.DumpInterval = 2
	cfg.DumpRoot = dir
	require.NoError(t, cfg.ParseArgs([]string{"5", in, out}))

	res, err := Run(context.Background(), cfg, log.New(&logs, "", 0))
	require.NoError(t, err)
	assert.Equal(t, 5, res.Ticks)
	assert.Equal(t, int64(42), res.Seed)
	assert.Equal(t, 5*12*10, res.Stats.Moves)
	assert.Equal(t, initial.Sum(), res.Final.Mass)

	final, err := snapshot.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, initial.Sum(), final.Sum())

	frames, err := snapshot.LoadSequence(res.DumpDir)
	require.NoError(t, err)
	require.Len(t, frames, 3)
	assert.Equal(t, snapshot.FrameName(4), frames[2].Name)

	assert.Contains(t, logs.String(), "iter 0:")
	assert.Contains(t, logs.String(), "iter 4:")
	assert.Contains(t, logs.String(), "dumped 3 intermediate slabfields to "+res.DumpDir)
	assert.Contains(t, logs.String(), "p_slab=0.6")
}

func TestRunIsReproducibleForSeed(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	writeUniform(t, in, 10, 10, 2)

	run := func(out string) *core.HeightGrid {
		cfg := NewConfig()
		cfg.Seed = 9
		require.NoError(t, cfg.ParseArgs([]string{"3", in, out}))
		_, err := Run(context.Background(), cfg, discardLogger())
		require.NoError(t, err)
		g, err := snapshot.ReadFile(out)
		require.NoError(t, err)
		return g
	}
	a := run(filepath.Join(dir, "a.txt"))
	b := run(filepath.Join(dir, "b.txt"))
	assert.True(t, a.Equal(b))
}

func TestRunAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	writeUniform(t, in, 6, 6, 1)

	var logs bytes.Buffer
	cfg := NewConfig()
	cfg.Seed = 1
	cfg.MaxHops = 321
	fs := flag.NewFlagSet("werner", flag.ContinueOnError)
	cfg.Bind(fs)
	require.NoError(t, fs.Parse([]string{"-set", "p_slab=0.9", "-set", "wind_speed=2", "1", in, out}))
	require.NoError(t, cfg.ParseArgs(fs.Args()))

	_, err := Run(context.Background(), cfg, log.New(&logs, "", 0))
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "p_slab=0.9")
	assert.Contains(t, logs.String(), "wind_speed=2")
	assert.Contains(t, logs.String(), "max_hops=321")
}

func TestRunReportsOverriddenSeed(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	writeUniform(t, in, 8, 8, 2)

	var logs bytes.Buffer
	first := filepath.Join(dir, "first.txt")
	cfg := NewConfig()
	cfg.Seed = 5
	cfg.Overrides = KVList{"seed=77"}
	require.NoError(t, cfg.ParseArgs([]string{"2", in, first}))
	res, err := Run(context.Background(), cfg, log.New(&logs, "", 0))
	require.NoError(t, err)
	assert.Equal(t, int64(77), res.Seed)
	assert.Contains(t, logs.String(), "seed 77")

	second := filepath.Join(dir, "second.txt")
	rerun := NewConfig()
	rerun.Seed = res.Seed
	require.NoError(t, rerun.ParseArgs([]string{"2", in, second}))
	_, err = Run(context.Background(), rerun, discardLogger())
	require.NoError(t, err)

	a, err := snapshot.ReadFile(first)
	require.NoError(t, err)
	b, err := snapshot.ReadFile(second)
	require.NoError(t, err)
	assert.True(t, a.Equal(b), "rerun with the reported seed reproduces the grid")
}

func TestRunFailuresLeaveNoOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")

	empty := filepath.Join(dir, "empty.txt")
	writeUniform(t, empty, 4, 4, 0)
	cfg := NewConfig()
	require.NoError(t, cfg.ParseArgs([]string{"1", empty, out}))
	_, err := Run(context.Background(), cfg, discardLogger())
	require.ErrorIs(t, err, core.ErrEmptyGrid)
	assert.NoFileExists(t, out)

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("2 2\n1 2 3\n"), 0o644))
	require.NoError(t, cfg.ParseArgs([]string{"1", bad, out}))
	_, err = Run(context.Background(), cfg, discardLogger())
	require.ErrorIs(t, err, snapshot.ErrParse)
	assert.NoFileExists(t, out)

	good := filepath.Join(dir, "good.txt")
	writeUniform(t, good, 4, 4, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, cfg.ParseArgs([]string{"3", good, out}))
	_, err = Run(ctx, cfg, discardLogger())
	require.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, out)

	cfg.Overrides = KVList{"wind_speed=0"}
	require.NoError(t, cfg.ParseArgs([]string{"1", good, out}))
	_, err = Run(context.Background(), cfg, discardLogger())
	require.NoError(t, err, "invalid override values are ignored")
}

func TestParseArgs(t *testing.T) {
	cfg := NewConfig()
	require.Error(t, cfg.ParseArgs([]string{"1", "in"}))
	require.Error(t, cfg.ParseArgs([]string{"-2", "in", "out"}))
	require.Error(t, cfg.ParseArgs([]string{"ten", "in", "out"}))
	require.NoError(t, cfg.ParseArgs([]string{"10", "in", "out"}))
	assert.Equal(t, 10, cfg.Ticks)
	assert.Equal(t, "in", cfg.Input)
	assert.Equal(t, "out", cfg.Output)
	assert.Equal(t, snapshot.DefaultDumpInterval, cfg.DumpInterval)
}

func TestKVList(t *testing.T) {
	var l KVList
	require.NoError(t, l.Set("p_slab=0.5"))
	require.NoError(t, l.Set(" p_slab = 0.7 "))
	require.Error(t, l.Set("nokey"))
	assert.Equal(t, map[string]string{"p_slab": "0.7"}, l.Map())

	c := werner.DefaultConfig()
	werner.ApplyMap(&c, l.Map())
	assert.Equal(t, 0.7, c.Params.PSlab)
}
