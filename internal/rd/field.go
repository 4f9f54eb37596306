package rd

import "math"

// Field stores one species' concentration values in row-major order.
type Field []float64

// NewField allocates a zeroed field matching the grid.
func NewField(g Grid) Field {
	return make(Field, g.Cells())
}

func (f Field) Clone() Field {
	c := make(Field, len(f))
	copy(c, f)
	return c
}

// Fill sets every cell to v.
func (f Field) Fill(v float64) {
	for i := range f {
		f[i] = v
	}
}

// IsFinite reports whether every cell holds a finite value.
func (f Field) IsFinite() bool {
	_, ok := f.FirstNonFinite()
	return !ok
}

// FirstNonFinite returns the index of the first NaN or Inf cell.
func (f Field) FirstNonFinite() (int, bool) {
	for i, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return i, true
		}
	}
	return 0, false
}

// Clamp limits every cell into [lo, hi]. NaN cells are left in place so
// divergence stays detectable.
func (f Field) Clamp(lo, hi float64) {
	for i, v := range f {
		if v < lo {
			f[i] = lo
		} else if v > hi {
			f[i] = hi
		}
	}
}

// InRange reports whether every cell lies within [lo, hi].
func (f Field) InRange(lo, hi float64) bool {
	for _, v := range f {
		if v < lo || v > hi || math.IsNaN(v) {
			return false
		}
	}
	return true
}
