// Package metrics summarizes concentration fields for run reports and the
// live view.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/rdlab/internal/rd"
)

// FieldStats is a pointwise summary of one species' field.
type FieldStats struct {
	Min  float64
	Max  float64
	Mean float64
	// OutOfRange is the fraction of cells outside [0,1], the conventional
	// operating range.
	OutOfRange float64
}

// Stats computes the summary. An empty field yields NaN min/max and a zero
// mean, matching gonum's conventions.
func Stats(f rd.Field) FieldStats {
	if len(f) == 0 {
		return FieldStats{Min: math.NaN(), Max: math.NaN()}
	}
	s := FieldStats{
		Min:  floats.Min(f),
		Max:  floats.Max(f),
		Mean: floats.Sum(f) / float64(len(f)),
	}
	out := 0
	for _, v := range f {
		if v < 0 || v > 1 || math.IsNaN(v) {
			out++
		}
	}
	s.OutOfRange = float64(out) / float64(len(f))
	return s
}

// Summary pairs the per-species stats for a committed frame.
type Summary struct {
	Step uint64
	U    FieldStats
	V    FieldStats
}

// Summarize computes both species' stats.
func Summarize(step uint64, u, v rd.Field) Summary {
	return Summary{Step: step, U: Stats(u), V: Stats(v)}
}
