package rd

// RateFunc computes pointwise reaction rates for one cell. The active
// kinetics variant is resolved to a RateFunc once per step, keeping dynamic
// dispatch out of the per-cell loop.
type RateFunc func(u, v float64) (du, dv float64)

// Kinetics is the contract for a reaction model variant. Implementations
// must be pure: the returned RateFunc depends only on its arguments and the
// parameter snapshot it closed over, and is total over the real line.
type Kinetics interface {
	Name() string
	Rates(p Params) RateFunc
}

// Stepper advances a field pair by exactly one timestep. Inputs u, v are
// the committed pre-step fields and are never written; outputs land in
// nextU, nextV only. step identifies the step being produced for error
// reporting.
type Stepper interface {
	Step(g Grid, u, v, nextU, nextV Field, kin Kinetics, p Params, step uint64) error
}
