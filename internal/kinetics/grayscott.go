// Package kinetics provides the reaction model variants. Every model
// implements rd.Kinetics: a pure (u, v, params) -> (du/dt, dv/dt) map with
// no hidden state, total over the real line.
package kinetics

import "github.com/san-kum/rdlab/internal/rd"

// GrayScott implements the classic two-species autocatalytic model:
//
//	du/dt = -u*v^2 + F*(1-u)
//	dv/dt =  u*v^2 - (F+k)*v
type GrayScott struct{}

func NewGrayScott() *GrayScott { return &GrayScott{} }

func (GrayScott) Name() string { return "grayscott" }

func (GrayScott) Rates(p rd.Params) rd.RateFunc {
	f, k := p.F, p.K
	return func(u, v float64) (float64, float64) {
		uvv := u * v * v
		return -uvv + f*(1-u), uvv - (f+k)*v
	}
}
