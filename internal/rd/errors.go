package rd

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidGeometry indicates non-positive grid dimensions.
	ErrInvalidGeometry = errors.New("rd: invalid grid geometry")

	// ErrInvalidParameter indicates a parameter value outside its legal range.
	ErrInvalidParameter = errors.New("rd: parameter out of valid bounds")

	// ErrDiverged indicates a non-finite cell value was produced by a step.
	ErrDiverged = errors.New("rd: numerical divergence (non-finite cell)")

	// ErrCorruptSnapshot indicates a persisted state blob that cannot be
	// restored (malformed encoding or dimension mismatch).
	ErrCorruptSnapshot = errors.New("rd: corrupt or mismatched snapshot")
)

// DivergenceError reports the first non-finite output cell of a step. The
// step that produced it is never committed, so the live state stays finite.
type DivergenceError struct {
	Step    uint64
	X, Y    int
	Species string
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("%v: species %s at (%d,%d) after step %d",
		ErrDiverged, e.Species, e.X, e.Y, e.Step)
}

func (e *DivergenceError) Unwrap() error {
	return ErrDiverged
}
