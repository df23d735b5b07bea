package app

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dune-ca/internal/snapshot"
)

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

// Set appends one key=value pair.
func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

// Map splits the collected pairs; later keys win.
func (l KVList) Map() map[string]string {
	m := make(map[string]string, len(l))
	for _, kv := range l {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		m[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return m
}

// Config represents the command-line parameters for a simulation run.
type Config struct {
	Ticks  int
	Input  string
	Output string

	// Seed zero picks a time-based seed.
	Seed    int64
	MaxHops int

	Dump         bool
	DumpInterval int
	DumpRoot     string

	LogEvery time.Duration

	Overrides KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{DumpInterval: snapshot.DefaultDumpInterval}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed (0 = time based)")
	fs.IntVar(&c.MaxHops, "max-hops", c.MaxHops, "saltation hop limit per grain (0 = derived from grid size)")
	fs.BoolVar(&c.Dump, "dump", c.Dump, "write intermediate snapshots to a temporary directory")
	fs.IntVar(&c.DumpInterval, "dump-interval", c.DumpInterval, "ticks between intermediate snapshots")
	fs.StringVar(&c.DumpRoot, "dump-root", c.DumpRoot, "parent of the dump directory (default system temp dir)")
	fs.DurationVar(&c.LogEvery, "log-every", c.LogEvery, "minimum time between progress lines (0 = every tick)")
	fs.Var(&c.Overrides, "set", "model parameter override in key=value form (repeatable)")
}

// ParseArgs reads the positional <num_ticks> <input_file> <output_file>.
func (c *Config) ParseArgs(args []string) error {
	if len(args) != 3 {
		return errors.New("usage: werner [flags] <num_ticks> <input_file> <output_file>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return fmt.Errorf("num_ticks must be a non-negative integer, got %q", args[0])
	}
	c.Ticks = n
	c.Input = args[1]
	c.Output = args[2]
	return nil
}
