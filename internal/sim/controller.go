// Package sim owns the live simulation state and drives repeated stepping.
//
// A Controller is the single mutation point for the field pair: the stepper
// writes into back buffers which are swapped in atomically, so concurrent
// readers (the rendering layer) only ever observe fully-committed frames.
package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/san-kum/rdlab/internal/rd"
)

// DivergencePolicy selects how Advance reacts to a numerical divergence.
type DivergencePolicy int

const (
	// PolicyHalt stops advancing and surfaces the error. The diverged step
	// is never committed, so the live fields stay finite.
	PolicyHalt DivergencePolicy = iota
	// PolicyReset reseeds the fields and keeps going.
	PolicyReset
)

// ParsePolicy maps a config string to a DivergencePolicy.
func ParsePolicy(s string) (DivergencePolicy, error) {
	switch s {
	case "halt", "":
		return PolicyHalt, nil
	case "reset":
		return PolicyReset, nil
	default:
		return PolicyHalt, fmt.Errorf("sim: unknown divergence policy %q", s)
	}
}

// Frame is a committed view of the simulation handed to the render layer.
// The slices are copies; callers may keep them indefinitely.
type Frame struct {
	U, V rd.Field
	Step uint64
}

// ParamEvent records one accepted parameter edit. The log is append-only
// and chronological.
type ParamEvent struct {
	Step   uint64
	Params rd.Params
	Time   time.Time
}

// Snapshot is the point-in-time persisted form of the simulation state. A
// restored snapshot reproduces the exported state exactly: bit-for-bit
// field values, exact parameters, exact step counter.
type Snapshot struct {
	Width    int
	Height   int
	Boundary string
	Border   float64
	U        []float64
	V        []float64
	Params   rd.Params
	Step     uint64
}

// Controller owns the grid, the field pair, the live parameter set, and the
// parameter history. All mutation flows through it.
type Controller struct {
	// runMu serializes the long operations: Advance, Reset, Restore and
	// Snapshot never overlap each other.
	runMu sync.Mutex

	// mu guards the committed view below. Held only for short copies and
	// swaps, never across a step computation, so CurrentFrame does not
	// block while a step is in flight.
	mu      sync.Mutex
	grid    rd.Grid
	u, v    rd.Field
	nextU   rd.Field
	nextV   rd.Field
	params  rd.Params
	step    uint64
	history []ParamEvent

	kin     rd.Kinetics
	stepper rd.Stepper
	seed    SeedSpec
	policy  DivergencePolicy
}

// New builds a controller, validates the parameter set, and seeds the
// fields from the given SeedSpec.
func New(g rd.Grid, kin rd.Kinetics, stepper rd.Stepper, p rd.Params, seed SeedSpec) (*Controller, error) {
	if g.W <= 0 || g.H <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", rd.ErrInvalidGeometry, g.W, g.H)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		grid:    g,
		u:       rd.NewField(g),
		v:       rd.NewField(g),
		nextU:   rd.NewField(g),
		nextV:   rd.NewField(g),
		params:  p,
		kin:     kin,
		stepper: stepper,
		seed:    seed,
	}
	ApplySeed(g, c.u, c.v, seed)
	return c, nil
}

// SetPolicy configures the divergence reaction for subsequent Advance calls.
func (c *Controller) SetPolicy(p DivergencePolicy) {
	c.mu.Lock()
	c.policy = p
	c.mu.Unlock()
}

// Grid returns the current geometry.
func (c *Controller) Grid() rd.Grid {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grid
}

// Kinetics returns the active reaction model.
func (c *Controller) Kinetics() rd.Kinetics { return c.kin }

// Params returns the live parameter set.
func (c *Controller) Params() rd.Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

// Step returns the current step counter.
func (c *Controller) Step() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Advance runs n steps. Each step uses the parameter snapshot taken at its
// start, so edits apply between steps, never mid-step. Cancellation via ctx
// takes effect at the next step boundary.
func (c *Controller) Advance(ctx context.Context, n int) error {
	c.runMu.Lock()
	defer c.runMu.Unlock()

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		c.mu.Lock()
		p := c.params
		u, v := c.u, c.v
		nu, nv := c.nextU, c.nextV
		step := c.step
		policy := c.policy
		c.mu.Unlock()

		if err := c.stepper.Step(c.grid, u, v, nu, nv, c.kin, p, step); err != nil {
			var div *rd.DivergenceError
			if errors.As(err, &div) && policy == PolicyReset {
				c.reseed()
				continue
			}
			return err
		}

		c.mu.Lock()
		c.u, c.nextU = nu, u
		c.v, c.nextV = nv, v
		c.step++
		c.mu.Unlock()
	}
	return nil
}

// CurrentFrame returns the latest committed fields for rendering. It never
// blocks on an in-flight step.
func (c *Controller) CurrentFrame() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Frame{U: c.u.Clone(), V: c.v.Clone(), Step: c.step}
}

// SetParameter validates and applies one named parameter, recording the
// edit in the history log. A rejected value leaves the live set untouched.
func (c *Controller) SetParameter(name string, value float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.params
	if err := next.Set(name, value); err != nil {
		return err
	}
	c.params = next
	c.history = append(c.history, ParamEvent{
		Step:   c.step,
		Params: next,
		Time:   time.Now(),
	})
	return nil
}

// History returns a copy of the parameter edit log.
func (c *Controller) History() []ParamEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ParamEvent, len(c.history))
	copy(out, c.history)
	return out
}

// ClearHistory drops the parameter edit log.
func (c *Controller) ClearHistory() {
	c.mu.Lock()
	c.history = nil
	c.mu.Unlock()
}

// Reset reinitializes the fields with the given seed spec and clears the
// step counter. Parameters and history are preserved.
func (c *Controller) Reset(seed SeedSpec) {
	c.runMu.Lock()
	defer c.runMu.Unlock()
	c.mu.Lock()
	c.seed = seed
	c.mu.Unlock()
	c.reseed()
}

func (c *Controller) reseed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	ApplySeed(c.grid, c.u, c.v, c.seed)
	c.step = 0
}

// Snapshot captures the full simulation state. It excludes concurrent
// stepping for its duration.
func (c *Controller) Snapshot() Snapshot {
	c.runMu.Lock()
	defer c.runMu.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Width:    c.grid.W,
		Height:   c.grid.H,
		Boundary: c.grid.Boundary.String(),
		Border:   c.grid.Border,
		U:        c.u.Clone(),
		V:        c.v.Clone(),
		Params:   c.params,
		Step:     c.step,
	}
}

// Restore replaces the simulation state with a snapshot. On any validation
// failure the current state is left untouched and the error wraps
// rd.ErrCorruptSnapshot.
func (c *Controller) Restore(s Snapshot) error {
	b, err := rd.ParseBoundary(s.Boundary)
	if err != nil {
		return fmt.Errorf("%w: %v", rd.ErrCorruptSnapshot, err)
	}
	g, err := rd.NewGrid(s.Width, s.Height, b)
	if err != nil {
		return fmt.Errorf("%w: %v", rd.ErrCorruptSnapshot, err)
	}
	g.Border = s.Border
	if len(s.U) != g.Cells() || len(s.V) != g.Cells() {
		return fmt.Errorf("%w: field length %d/%d does not match %dx%d grid",
			rd.ErrCorruptSnapshot, len(s.U), len(s.V), s.Width, s.Height)
	}
	if err := s.Params.Validate(); err != nil {
		return fmt.Errorf("%w: %v", rd.ErrCorruptSnapshot, err)
	}

	c.runMu.Lock()
	defer c.runMu.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()

	c.grid = g
	c.u = rd.Field(s.U).Clone()
	c.v = rd.Field(s.V).Clone()
	c.nextU = rd.NewField(g)
	c.nextV = rd.NewField(g)
	c.params = s.Params
	c.step = s.Step
	return nil
}
