package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"dune-ca/internal/core"
)

// DefaultDumpInterval is the tick spacing between intermediate dumps.
const DefaultDumpInterval = 50

// Dumper writes intermediate snapshots into a freshly created directory.
type Dumper struct {
	dir      string
	interval int
	written  int
}

// NewDumper creates a new temporary directory under root (the system temp dir
// when root is empty). Non-positive intervals fall back to DefaultDumpInterval.
func NewDumper(root string, interval int) (*Dumper, error) {
	if interval <= 0 {
		interval = DefaultDumpInterval
	}
	dir, err := os.MkdirTemp(root, "werner-")
	if err != nil {
		return nil, fmt.Errorf("create dump directory: %w", err)
	}
	return &Dumper{dir: dir, interval: interval}, nil
}

// Dir returns the dump directory.
func (d *Dumper) Dir() string { return d.dir }

// Written reports how many dumps were stored.
func (d *Dumper) Written() int { return d.written }

// FrameName returns the file name used for the given tick.
func FrameName(tick int) string { return fmt.Sprintf("%010d", tick) }

// MaybeDump writes g when tick falls on the dump interval and reports whether
// it did.
func (d *Dumper) MaybeDump(tick int, g *core.HeightGrid) (bool, error) {
	if tick%d.interval != 0 {
		return false, nil
	}
	if err := WriteFile(filepath.Join(d.dir, FrameName(tick)), g); err != nil {
		return false, err
	}
	d.written++
	return true, nil
}

// Frame is one snapshot of a dump sequence.
type Frame struct {
	Name string
	Grid *core.HeightGrid
}

// LoadSequence reads every regular file in dir, ordered by name.
func LoadSequence(dir string) ([]Frame, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	frames := make([]Frame, 0, len(names))
	for _, name := range names {
		g, err := ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		frames = append(frames, Frame{Name: name, Grid: g})
	}
	return frames, nil
}
