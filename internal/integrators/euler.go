// Package integrators advances the field pair in time. Only explicit
// forward Euler is provided; stability is the caller's responsibility
// through the choice of dt relative to Du, Dv and the stencil.
package integrators

import (
	"github.com/san-kum/rdlab/internal/diffusion"
	"github.com/san-kum/rdlab/internal/rd"
)

// Cells per parallel chunk for the combine loop.
const minCellChunk = 4096

// Euler performs one explicit (forward) Euler update per Step call:
//
//	U' = U + dt * (Du * L(U) + reactionU(U, V))
//	V' = V + dt * (Dv * L(V) + reactionV(U, V))
//
// All reads come from the committed pre-step fields; all writes land in the
// caller's next buffers, so cell updates are order-independent and the
// inner loop parallelizes safely.
//
// Clamping is an explicit opt-in policy: when enabled, finite outputs are
// limited into [lo, hi] after the step. It changes simulation fidelity and
// is surfaced in config rather than applied silently. Non-finite outputs
// are always reported before clamping so divergence is never masked.
type Euler struct {
	op *diffusion.Operator

	clamp  bool
	lo, hi float64

	// scratch Laplacian buffers, grown on demand
	lapU rd.Field
	lapV rd.Field
}

func NewEuler(op *diffusion.Operator) *Euler {
	return &Euler{op: op}
}

// EnableClamp turns on output clamping into [lo, hi].
func (e *Euler) EnableClamp(lo, hi float64) {
	e.clamp = true
	e.lo, e.hi = lo, hi
}

// DisableClamp turns output clamping off.
func (e *Euler) DisableClamp() { e.clamp = false }

// Clamping reports the active clamp policy.
func (e *Euler) Clamping() (lo, hi float64, enabled bool) {
	return e.lo, e.hi, e.clamp
}

// Step computes the successor fields into nextU, nextV. On a non-finite
// output cell it returns a *rd.DivergenceError naming the coordinates; the
// caller decides whether to halt, reset, or retune. The next buffers must
// not alias the current fields.
func (e *Euler) Step(g rd.Grid, u, v, nextU, nextV rd.Field, kin rd.Kinetics, p rd.Params, step uint64) error {
	n := g.Cells()
	if len(e.lapU) < n {
		e.lapU = rd.NewField(g)
		e.lapV = rd.NewField(g)
	}
	lapU, lapV := e.lapU[:n], e.lapV[:n]

	e.op.Laplacian(g, u, lapU)
	e.op.Laplacian(g, v, lapV)

	// Resolve the kinetics variant once per step, not once per cell.
	rates := kin.Rates(p)
	du, dv, dt := p.Du, p.Dv, p.Dt

	rd.ParallelFor(n, minCellChunk, func(start, end int) {
		for i := start; i < end; i++ {
			ru, rv := rates(u[i], v[i])
			nextU[i] = u[i] + dt*(du*lapU[i]+ru)
			nextV[i] = v[i] + dt*(dv*lapV[i]+rv)
		}
	})

	if i, bad := nextU.FirstNonFinite(); bad {
		x, y := g.Coords(i)
		return &rd.DivergenceError{Step: step, X: x, Y: y, Species: "u"}
	}
	if i, bad := nextV.FirstNonFinite(); bad {
		x, y := g.Coords(i)
		return &rd.DivergenceError{Step: step, X: x, Y: y, Species: "v"}
	}

	if e.clamp {
		nextU.Clamp(e.lo, e.hi)
		nextV.Clamp(e.lo, e.hi)
	}
	return nil
}
