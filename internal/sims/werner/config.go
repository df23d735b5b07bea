package werner

import "strconv"

// Model constants tied to the assumed 3:1 width:height cell aspect ratio.
// They are not tunable.
const (
	// ReposeDiff is the largest stable height difference between 8-neighbors.
	ReposeDiff = 2
	// ShadowHorizon is how many cells upwind the shadow test looks.
	ShadowHorizon = 5
)

// Params holds the tunable transport parameters.
type Params struct {
	// WindSpeed is the saltation hop length in cells.
	WindSpeed int
	// WindDX, WindDY give the unit wind direction.
	WindDX int
	WindDY int

	// PSlab is the chance a grain sticks when landing on sand.
	PSlab float64
	// PFloor is the chance a grain sticks when landing on bare ground.
	PFloor float64

	// MaxHops bounds a single saltation. Zero derives it from the grid size.
	MaxHops int
	// SampleTries bounds rejection sampling of occupied cells before falling
	// back to a scan. Zero derives it from the grid size.
	SampleTries int
}

// Config controls the Werner simulation.
type Config struct {
	// Width, Height and InitialHeight are used when the simulation builds
	// its own uniform grid.
	Width         int
	Height        int
	InitialHeight int

	Seed int64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:         1024,
		Height:        1024,
		InitialHeight: 4,
		Seed:          1337,
		Params: Params{
			WindSpeed: 5,
			WindDX:    1,
			WindDY:    0,
			PSlab:     0.6,
			PFloor:    0.4,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unknown keys and invalid values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	ApplyMap(&c, cfg)
	return c
}

// ApplyMap overrides fields of c from a string map and reports the keys it
// accepted.
func ApplyMap(c *Config, cfg map[string]string) []string {
	var applied []string
	if cfg == nil {
		return applied
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
			applied = append(applied, "w")
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
			applied = append(applied, "h")
		}
	}
	if v, ok := cfg["height"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.InitialHeight = parsed
			applied = append(applied, "height")
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
			applied = append(applied, "seed")
		}
	}
	if v, ok := cfg["wind_speed"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.WindSpeed = parsed
			applied = append(applied, "wind_speed")
		}
	}
	if v, ok := cfg["wind_dx"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= -1 && parsed <= 1 {
			c.Params.WindDX = parsed
			applied = append(applied, "wind_dx")
		}
	}
	if v, ok := cfg["wind_dy"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= -1 && parsed <= 1 {
			c.Params.WindDY = parsed
			applied = append(applied, "wind_dy")
		}
	}
	if v, ok := cfg["p_slab"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.PSlab = parsed
			applied = append(applied, "p_slab")
		}
	}
	if v, ok := cfg["p_floor"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.PFloor = parsed
			applied = append(applied, "p_floor")
		}
	}
	if v, ok := cfg["max_hops"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.MaxHops = parsed
			applied = append(applied, "max_hops")
		}
	}
	if v, ok := cfg["sample_tries"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.SampleTries = parsed
			applied = append(applied, "sample_tries")
		}
	}
	return applied
}
