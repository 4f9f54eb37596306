package kinetics

import "github.com/san-kum/rdlab/internal/rd"

// Custom adapts a plain function into an rd.Kinetics, for callers that want
// an ad-hoc reaction term without defining a new type.
type Custom struct {
	name  string
	rates func(p rd.Params) rd.RateFunc
}

func NewCustom(name string, rates func(p rd.Params) rd.RateFunc) *Custom {
	return &Custom{name: name, rates: rates}
}

func (c *Custom) Name() string { return c.name }

func (c *Custom) Rates(p rd.Params) rd.RateFunc { return c.rates(p) }

// None is a diffusion-only model: both reaction terms are identically zero.
// Useful for isolating the diffusion operator in tests and calibration runs.
func None() *Custom {
	return NewCustom("none", func(rd.Params) rd.RateFunc {
		return func(u, v float64) (float64, float64) { return 0, 0 }
	})
}
