package diffusion

import (
	"math"
	"testing"

	"github.com/san-kum/rdlab/internal/rd"
)

func TestLaplacian_UniformFieldIsZero(t *testing.T) {
	boundaries := []rd.Boundary{rd.Periodic, rd.Reflective}
	stencils := []Stencil{FivePoint, NinePoint}

	for _, b := range boundaries {
		for _, s := range stencils {
			g, err := rd.NewGrid(16, 12, b)
			if err != nil {
				t.Fatal(err)
			}
			f := rd.NewField(g)
			f.Fill(0.7)
			out := rd.NewField(g)

			NewOperator(s).Laplacian(g, f, out)

			for i, v := range out {
				if math.Abs(v) > 1e-12 {
					x, y := g.Coords(i)
					t.Fatalf("%v/%v: Laplacian of uniform field is %g at (%d,%d)",
						b, s, v, x, y)
				}
			}
		}
	}
}

func TestLaplacian_PeriodicWrap(t *testing.T) {
	g, _ := rd.NewGrid(5, 5, rd.Periodic)
	f := rd.NewField(g)
	f[g.Index(0, 2)] = 1.0
	out := rd.NewField(g)

	NewOperator(FivePoint).Laplacian(g, f, out)

	// The west neighbor of (0,2) is (4,2); the spike must appear there.
	if out[g.Index(4, 2)] != 1.0 {
		t.Errorf("expected wrapped contribution 1.0 at (4,2), got %g", out[g.Index(4, 2)])
	}
	if out[g.Index(1, 2)] != 1.0 {
		t.Errorf("expected contribution 1.0 at (1,2), got %g", out[g.Index(1, 2)])
	}
	if out[g.Index(0, 2)] != -4.0 {
		t.Errorf("expected -4.0 at the spike, got %g", out[g.Index(0, 2)])
	}
}

func TestLaplacian_ReflectiveCorner(t *testing.T) {
	g, _ := rd.NewGrid(4, 4, rd.Reflective)
	f := rd.NewField(g)
	f[g.Index(0, 0)] = 1.0
	out := rd.NewField(g)

	NewOperator(FivePoint).Laplacian(g, f, out)

	// At (0,0) the west and north reads fold back onto the corner itself:
	// L = 2*c + f(1,0) + f(0,1) - 4*c = -2.
	if out[g.Index(0, 0)] != -2.0 {
		t.Errorf("expected -2.0 at corner, got %g", out[g.Index(0, 0)])
	}
}

func TestLaplacian_FixedBorder(t *testing.T) {
	g, _ := rd.NewGrid(3, 3, rd.Fixed)
	g.Border = 0.5
	f := rd.NewField(g)
	out := rd.NewField(g)

	NewOperator(FivePoint).Laplacian(g, f, out)

	// Corner cell reads the constant border twice on a zero field.
	if out[g.Index(0, 0)] != 1.0 {
		t.Errorf("expected 1.0 at corner, got %g", out[g.Index(0, 0)])
	}
	// Center cell sees only in-range zero neighbors.
	if out[g.Index(1, 1)] != 0.0 {
		t.Errorf("expected 0.0 at center, got %g", out[g.Index(1, 1)])
	}
}

func TestLaplacian_NinePointWeights(t *testing.T) {
	g, _ := rd.NewGrid(3, 3, rd.Periodic)
	f := rd.NewField(g)
	f[g.Index(1, 1)] = 1.0
	out := rd.NewField(g)

	NewOperator(NinePoint).Laplacian(g, f, out)

	if math.Abs(out[g.Index(1, 0)]-0.2) > 1e-15 {
		t.Errorf("edge neighbor weight: expected 0.2, got %g", out[g.Index(1, 0)])
	}
	if math.Abs(out[g.Index(0, 0)]-0.05) > 1e-15 {
		t.Errorf("diagonal neighbor weight: expected 0.05, got %g", out[g.Index(0, 0)])
	}
	if math.Abs(out[g.Index(1, 1)]+1.0) > 1e-15 {
		t.Errorf("center weight: expected -1.0, got %g", out[g.Index(1, 1)])
	}
}

func TestLaplacian_MatchesSampledPath(t *testing.T) {
	// The interior fast path and the boundary-aware path must agree on
	// interior cells.
	g, _ := rd.NewGrid(8, 8, rd.Periodic)
	f := rd.NewField(g)
	for i := range f {
		f[i] = float64(i%7) * 0.13
	}
	out := rd.NewField(g)
	NewOperator(FivePoint).Laplacian(g, f, out)

	for y := 1; y < g.H-1; y++ {
		for x := 1; x < g.W-1; x++ {
			want := sample(g, f, x-1, y) + sample(g, f, x+1, y) +
				sample(g, f, x, y-1) + sample(g, f, x, y+1) - 4*f[g.Index(x, y)]
			if got := out[g.Index(x, y)]; got != want {
				t.Fatalf("mismatch at (%d,%d): %g vs %g", x, y, got, want)
			}
		}
	}
}

func TestParseStencil(t *testing.T) {
	for _, in := range []string{"5", "five", "five-point", ""} {
		s, err := ParseStencil(in)
		if err != nil || s != FivePoint {
			t.Errorf("ParseStencil(%q) = %v, %v", in, s, err)
		}
	}
	for _, in := range []string{"9", "nine", "nine-point"} {
		s, err := ParseStencil(in)
		if err != nil || s != NinePoint {
			t.Errorf("ParseStencil(%q) = %v, %v", in, s, err)
		}
	}
	if _, err := ParseStencil("13"); err == nil {
		t.Error("expected error for unknown stencil")
	}
}
