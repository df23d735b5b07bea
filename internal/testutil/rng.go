// Package testutil provides deterministic helpers shared by package tests.
package testutil

import "fmt"

// ScriptedSource replays fixed random sequences. Floats and Ints are consumed
// in order; once a sequence is exhausted the Repeat* fallback is returned, or
// the source panics when none is set.
type ScriptedSource struct {
	Floats []float64
	Ints   []int

	RepeatFloat *float64
	RepeatInt   *int

	FloatCalls int
	IntCalls   int
}

// Float64 returns the next scripted float.
func (s *ScriptedSource) Float64() float64 {
	s.FloatCalls++
	if len(s.Floats) > 0 {
		v := s.Floats[0]
		s.Floats = s.Floats[1:]
		return v
	}
	if s.RepeatFloat != nil {
		return *s.RepeatFloat
	}
	panic(fmt.Sprintf("testutil: scripted floats exhausted after %d calls", s.FloatCalls-1))
}

// IntN returns the next scripted int reduced modulo n.
func (s *ScriptedSource) IntN(n int) int {
	s.IntCalls++
	if len(s.Ints) > 0 {
		v := s.Ints[0]
		s.Ints = s.Ints[1:]
		return v % n
	}
	if s.RepeatInt != nil {
		return *s.RepeatInt % n
	}
	panic(fmt.Sprintf("testutil: scripted ints exhausted after %d calls", s.IntCalls-1))
}

// Float is a convenience for taking the address of a constant.
func Float(v float64) *float64 { return &v }

// Int is a convenience for taking the address of a constant.
func Int(v int) *int { return &v }
