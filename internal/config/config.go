// Package config loads, saves, and defaults the simulation configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rdlab/internal/diffusion"
	"github.com/san-kum/rdlab/internal/rd"
	"github.com/san-kum/rdlab/internal/sim"
)

// Defaults follow the classic Gray-Scott setup: 200x200 periodic grid,
// five-point stencil, dt 0.9, output clamped into [0,1].
const (
	DefaultSize = 200
	DefaultDu   = 0.16
	DefaultDv   = 0.08
	DefaultF    = 0.035
	DefaultK    = 0.065
	DefaultDt   = 0.9
	DefaultSeed = 1337
)

type Config struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Boundary string `yaml:"boundary"`
	Stencil  string `yaml:"stencil"`
	Kinetics string `yaml:"kinetics"`

	Pattern string  `yaml:"pattern"`
	Seed    int64   `yaml:"seed"`
	Noise   float64 `yaml:"noise"`

	Params ParamsConfig `yaml:"params"`

	Clamp   ClampConfig `yaml:"clamp"`
	Policy  string      `yaml:"policy"`
	Steps   int         `yaml:"steps"`
	PerTick int         `yaml:"steps_per_tick"`
}

type ParamsConfig struct {
	Du float64 `yaml:"du"`
	Dv float64 `yaml:"dv"`
	F  float64 `yaml:"f"`
	K  float64 `yaml:"k"`
	Dt float64 `yaml:"dt"`
}

// ClampConfig is the explicit output-clamping policy. Disabled means the
// integrator reports divergence instead of limiting values.
type ClampConfig struct {
	Enabled bool    `yaml:"enabled"`
	Lo      float64 `yaml:"lo"`
	Hi      float64 `yaml:"hi"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:    DefaultSize,
		Height:   DefaultSize,
		Boundary: "periodic",
		Stencil:  "five-point",
		Kinetics: "grayscott",
		Pattern:  "splatter",
		Seed:     DefaultSeed,
		Params: ParamsConfig{
			Du: DefaultDu,
			Dv: DefaultDv,
			F:  DefaultF,
			K:  DefaultK,
			Dt: DefaultDt,
		},
		Clamp:   ClampConfig{Enabled: true, Lo: 0, Hi: 1},
		Policy:  "halt",
		Steps:   2000,
		PerTick: 20,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Grid resolves the configured geometry.
func (c *Config) Grid() (rd.Grid, error) {
	b, err := rd.ParseBoundary(c.Boundary)
	if err != nil {
		return rd.Grid{}, err
	}
	return rd.NewGrid(c.Width, c.Height, b)
}

// RDParams resolves the configured parameter set and validates it.
func (c *Config) RDParams() (rd.Params, error) {
	p := rd.Params{
		Du: c.Params.Du,
		Dv: c.Params.Dv,
		F:  c.Params.F,
		K:  c.Params.K,
		Dt: c.Params.Dt,
	}
	if err := p.Validate(); err != nil {
		return rd.Params{}, err
	}
	return p, nil
}

// SeedSpec resolves the configured initial-condition recipe.
func (c *Config) SeedSpec() (sim.SeedSpec, error) {
	pat, err := sim.ParsePattern(c.Pattern)
	if err != nil {
		return sim.SeedSpec{}, err
	}
	return sim.SeedSpec{Pattern: pat, Seed: c.Seed, Noise: c.Noise}, nil
}

// StencilKind resolves the configured stencil.
func (c *Config) StencilKind() (diffusion.Stencil, error) {
	return diffusion.ParseStencil(c.Stencil)
}

// Validate checks the whole configuration in one pass.
func (c *Config) Validate() error {
	if _, err := c.Grid(); err != nil {
		return err
	}
	if _, err := c.RDParams(); err != nil {
		return err
	}
	if _, err := c.SeedSpec(); err != nil {
		return err
	}
	if _, err := c.StencilKind(); err != nil {
		return err
	}
	if _, err := sim.ParsePolicy(c.Policy); err != nil {
		return err
	}
	if c.Clamp.Enabled && c.Clamp.Lo >= c.Clamp.Hi {
		return fmt.Errorf("config: clamp range [%g,%g] is empty", c.Clamp.Lo, c.Clamp.Hi)
	}
	return nil
}
