package kinetics

import "github.com/san-kum/rdlab/internal/rd"

// FitzHughNagumo implements a reduced excitable-medium model reusing the
// shared parameter set: F acts as the external stimulus and k as the
// recovery relaxation rate.
//
//	du/dt = u - u^3 - v + F
//	dv/dt = k*(u - v)
type FitzHughNagumo struct{}

func NewFitzHughNagumo() *FitzHughNagumo { return &FitzHughNagumo{} }

func (FitzHughNagumo) Name() string { return "fitzhugh" }

func (FitzHughNagumo) Rates(p rd.Params) rd.RateFunc {
	f, k := p.F, p.K
	return func(u, v float64) (float64, float64) {
		return u - u*u*u - v + f, k * (u - v)
	}
}
