package rd

import "fmt"

// Boundary selects how neighbor lookups resolve at grid edges.
type Boundary int

const (
	// Periodic wraps neighbor indices modulo the grid dimensions.
	Periodic Boundary = iota
	// Reflective reads back the nearest in-range cell (zero-flux Neumann).
	Reflective
	// Fixed reads a constant border value for out-of-range neighbors.
	Fixed
)

func (b Boundary) String() string {
	switch b {
	case Periodic:
		return "periodic"
	case Reflective:
		return "reflective"
	case Fixed:
		return "fixed"
	default:
		return fmt.Sprintf("boundary(%d)", int(b))
	}
}

// ParseBoundary maps a config string to a Boundary mode.
func ParseBoundary(s string) (Boundary, error) {
	switch s {
	case "periodic", "":
		return Periodic, nil
	case "reflective":
		return Reflective, nil
	case "fixed":
		return Fixed, nil
	default:
		return Periodic, fmt.Errorf("rd: unknown boundary %q", s)
	}
}

// Grid describes the simulation domain. It is immutable after construction.
type Grid struct {
	W, H     int
	Boundary Boundary

	// Border is the constant read by out-of-range neighbors when Boundary
	// is Fixed. Ignored otherwise.
	Border float64
}

// NewGrid validates the dimensions and returns the geometry.
func NewGrid(w, h int, b Boundary) (Grid, error) {
	if w <= 0 || h <= 0 {
		return Grid{}, fmt.Errorf("%w: %dx%d", ErrInvalidGeometry, w, h)
	}
	return Grid{W: w, H: h, Boundary: b}, nil
}

// Cells returns the total cell count W*H.
func (g Grid) Cells() int { return g.W * g.H }

// Index returns the linear row-major index for coordinates (x, y).
func (g Grid) Index(x, y int) int { return y*g.W + x }

// Coords is the inverse of Index.
func (g Grid) Coords(i int) (x, y int) { return i % g.W, i / g.W }
