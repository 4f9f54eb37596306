package sim

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/rdlab/internal/rd"
)

// Pattern names an initial-condition recipe.
type Pattern string

const (
	// PatternSplatter reproduces the classic setup: U drawn uniform from
	// [0.5,1), V uniform from [0,0.2), then ten random 6x6 blocks stamped
	// with U=0.5, V=0.25.
	PatternSplatter Pattern = "splatter"
	// PatternCenter is the analytic baseline: U=1 everywhere, V=0 except a
	// centered block at 0.25 (plus optional noise).
	PatternCenter Pattern = "center"
	// PatternUniform is the homogeneous steady state U=1, V=0.
	PatternUniform Pattern = "uniform"
)

// ParsePattern maps a config string to a Pattern.
func ParsePattern(s string) (Pattern, error) {
	switch Pattern(s) {
	case PatternSplatter, PatternCenter, PatternUniform:
		return Pattern(s), nil
	case "":
		return PatternSplatter, nil
	default:
		return PatternSplatter, fmt.Errorf("sim: unknown seed pattern %q", s)
	}
}

// SeedSpec describes how to initialize the field pair. Deterministic: the
// same spec on the same grid always produces identical fields.
type SeedSpec struct {
	Pattern Pattern
	Seed    int64
	// Noise is the amplitude of uniform noise added to V inside the seed
	// region of PatternCenter. Zero disables it.
	Noise float64
}

// ApplySeed fills u and v in place according to the spec.
func ApplySeed(g rd.Grid, u, v rd.Field, spec SeedSpec) {
	rng := rand.New(rand.NewSource(spec.Seed))

	switch spec.Pattern {
	case PatternCenter:
		u.Fill(1.0)
		v.Fill(0.0)
		stampCenter(g, v, rng, spec.Noise)
	case PatternUniform:
		u.Fill(1.0)
		v.Fill(0.0)
	default: // PatternSplatter
		for i := range u {
			u[i] = 0.5 + 0.5*rng.Float64()
		}
		for i := range v {
			v[i] = 0.2 * rng.Float64()
		}
		for n := 0; n < 10; n++ {
			cx := rng.Intn(g.W)
			cy := rng.Intn(g.H)
			stampBlock(g, u, v, cx, cy, 3)
		}
	}
}

// stampCenter writes the centered V block. The block spans one tenth of the
// shorter grid side on each side of the center, at least a 2x2 block.
func stampCenter(g rd.Grid, v rd.Field, rng *rand.Rand, noise float64) {
	half := min(g.W, g.H) / 10
	if half < 1 {
		half = 1
	}
	cx, cy := g.W/2, g.H/2
	for y := cy - half; y < cy+half; y++ {
		if y < 0 || y >= g.H {
			continue
		}
		for x := cx - half; x < cx+half; x++ {
			if x < 0 || x >= g.W {
				continue
			}
			val := 0.25
			if noise > 0 {
				val += noise * (rng.Float64() - 0.5)
			}
			v[g.Index(x, y)] = val
		}
	}
}

// stampBlock overwrites a (2r)x(2r) block with the perturbation values,
// clipped at the edges.
func stampBlock(g rd.Grid, u, v rd.Field, cx, cy, r int) {
	for y := cy - r; y < cy+r; y++ {
		if y < 0 || y >= g.H {
			continue
		}
		for x := cx - r; x < cx+r; x++ {
			if x < 0 || x >= g.W {
				continue
			}
			i := g.Index(x, y)
			u[i] = 0.5
			v[i] = 0.25
		}
	}
}
