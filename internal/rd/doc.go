// Package rd provides core primitives for two-species reaction-diffusion
// simulation on a discrete 2D grid.
//
// The package defines the fundamental types shared by the numerical engine:
//
//   - [Grid]: immutable grid geometry and boundary policy
//   - [Field]: dense row-major concentration values for one species
//   - [Params]: the tunable scalar set (Du, Dv, F, k, dt)
//   - [Kinetics]: pointwise reaction model contract
//
// # Thread Safety
//
// Grid is immutable after construction. Field and Params are plain values
// with no internal synchronization; the sim.Controller owns the live copies
// and serializes access to them.
package rd
