package core

import (
	"fmt"
	"strings"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
)

// Parameter describes a single value exposed by a simulation.
type Parameter struct {
	Key   string
	Label string
	Type  ParamType
	Value string
	// Fixed marks model constants that cannot be overridden.
	Fixed bool
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures the current set of values exposed by a sim.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Lines renders the snapshot as one "group: key=value ..." line per group.
func (s ParameterSnapshot) Lines() []string {
	lines := make([]string, 0, len(s.Groups))
	for _, g := range s.Groups {
		parts := make([]string, 0, len(g.Params))
		for _, p := range g.Params {
			kv := fmt.Sprintf("%s=%s", p.Key, p.Value)
			if p.Fixed {
				kv += "(fixed)"
			}
			parts = append(parts, kv)
		}
		lines = append(lines, g.Name+": "+strings.Join(parts, " "))
	}
	return lines
}

// Lookup finds a parameter by key.
func (s ParameterSnapshot) Lookup(key string) (Parameter, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Parameter{}, false
}
