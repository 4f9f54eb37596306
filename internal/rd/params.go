package rd

import (
	"fmt"
	"math"
)

// Parameter names accepted by Params.Set and the controller's SetParameter.
const (
	ParamDu = "du"
	ParamDv = "dv"
	ParamF  = "f"
	ParamK  = "k"
	ParamDt = "dt"
)

// Params is the scalar set driving the reaction-diffusion update. A value
// copy acts as an atomic snapshot: a step never observes a torn edit.
type Params struct {
	Du float64 // diffusion rate of U
	Dv float64 // diffusion rate of V
	F  float64 // feed rate
	K  float64 // kill rate
	Dt float64 // timestep
}

// Validate checks the invariants Du, Dv >= 0 and Dt > 0. F and k are
// unconstrained by contract (conventionally in [0,1]) but must be finite.
func (p Params) Validate() error {
	for _, name := range ParamNames() {
		if err := validateParam(name, p.get(name)); err != nil {
			return err
		}
	}
	return nil
}

// Set updates one named parameter, rejecting out-of-range values without
// modifying the receiver.
func (p *Params) Set(name string, value float64) error {
	if err := validateParam(name, value); err != nil {
		return err
	}
	switch name {
	case ParamDu:
		p.Du = value
	case ParamDv:
		p.Dv = value
	case ParamF:
		p.F = value
	case ParamK:
		p.K = value
	case ParamDt:
		p.Dt = value
	default:
		return fmt.Errorf("%w: unknown parameter %q", ErrInvalidParameter, name)
	}
	return nil
}

// Get returns one named parameter value.
func (p Params) Get(name string) (float64, error) {
	switch name {
	case ParamDu, ParamDv, ParamF, ParamK, ParamDt:
		return p.get(name), nil
	default:
		return 0, fmt.Errorf("%w: unknown parameter %q", ErrInvalidParameter, name)
	}
}

func (p Params) get(name string) float64 {
	switch name {
	case ParamDu:
		return p.Du
	case ParamDv:
		return p.Dv
	case ParamF:
		return p.F
	case ParamK:
		return p.K
	default:
		return p.Dt
	}
}

// ParamNames lists the valid parameter names in display order.
func ParamNames() []string {
	return []string{ParamDu, ParamDv, ParamF, ParamK, ParamDt}
}

func validateParam(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %s must be finite", ErrInvalidParameter, name)
	}
	switch name {
	case ParamDu, ParamDv:
		if value < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %g", ErrInvalidParameter, name, value)
		}
	case ParamDt:
		if value <= 0 {
			return fmt.Errorf("%w: dt must be > 0, got %g", ErrInvalidParameter, value)
		}
	}
	return nil
}
