package config

import "sort"

// Presets are known Gray-Scott regimes plus the excitable-medium default.
// Feed/kill pairs come from the standard parameter-space surveys.
var Presets = map[string]*Config{
	"classic": {
		Pattern: "splatter",
		Params:  ParamsConfig{Du: 0.16, Dv: 0.08, F: 0.035, K: 0.065, Dt: 0.9},
	},
	"coral": {
		Pattern: "splatter",
		Params:  ParamsConfig{Du: 0.16, Dv: 0.08, F: 0.0545, K: 0.062, Dt: 0.9},
	},
	"mitosis": {
		Pattern: "splatter",
		Params:  ParamsConfig{Du: 0.16, Dv: 0.08, F: 0.0367, K: 0.0649, Dt: 0.9},
	},
	"solitons": {
		Pattern: "splatter",
		Params:  ParamsConfig{Du: 0.16, Dv: 0.08, F: 0.03, K: 0.062, Dt: 0.9},
	},
	"worms": {
		Pattern: "splatter",
		Params:  ParamsConfig{Du: 0.16, Dv: 0.08, F: 0.058, K: 0.065, Dt: 0.9},
	},
	"waves": {
		Pattern: "splatter",
		Params:  ParamsConfig{Du: 0.16, Dv: 0.08, F: 0.014, K: 0.045, Dt: 0.9},
	},
	"reference": {
		// Small analytic scenario: centered seed, dt 1.0, no randomness.
		Pattern: "center",
		Params:  ParamsConfig{Du: 0.16, Dv: 0.08, F: 0.035, K: 0.065, Dt: 1.0},
	},
	"excitable": {
		Kinetics: "fitzhugh",
		Pattern:  "splatter",
		Params:   ParamsConfig{Du: 0.2, Dv: 0.1, F: 0.05, K: 0.08, Dt: 0.05},
	},
}

// GetPreset returns a full config for the named preset, with unset fields
// filled from the defaults.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	if p.Kinetics != "" {
		cfg.Kinetics = p.Kinetics
	}
	if p.Pattern != "" {
		cfg.Pattern = p.Pattern
	}
	if p.Boundary != "" {
		cfg.Boundary = p.Boundary
	}
	if p.Width > 0 {
		cfg.Width = p.Width
	}
	if p.Height > 0 {
		cfg.Height = p.Height
	}
	cfg.Params = p.Params
	return cfg
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
