package werner

import (
	"strconv"

	"dune-ca/internal/core"
)

// Parameters reports the effective model and transport parameters.
func (s *Sim) Parameters() core.ParameterSnapshot {
	params := s.cfg.Params
	size := s.grid.Size()
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", size.W),
				intParam("h", "Height", size.H),
				int64Param("seed", "Seed", s.cfg.Seed),
			},
		},
		{
			Name: "Relaxation",
			Params: []core.Parameter{
				fixed(intParam("repose_diff", "Repose difference", ReposeDiff)),
			},
		},
		{
			Name: "Wind",
			Params: []core.Parameter{
				intParam("wind_speed", "Wind speed", params.WindSpeed),
				intParam("wind_dx", "Wind direction x", params.WindDX),
				intParam("wind_dy", "Wind direction y", params.WindDY),
				fixed(intParam("shadow_horizon", "Shadow horizon", ShadowHorizon)),
			},
		},
		{
			Name: "Deposition",
			Params: []core.Parameter{
				floatParam("p_slab", "Stick on sand", params.PSlab),
				floatParam("p_floor", "Stick on floor", params.PFloor),
			},
		},
		{
			Name: "Limits",
			Params: []core.Parameter{
				intParam("max_hops", "Max hops per grain", s.maxHops),
				intParam("sample_tries", "Occupied sample tries", s.sampleTries),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

func fixed(p core.Parameter) core.Parameter {
	p.Fixed = true
	return p
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
