package integrators

import (
	"testing"

	"github.com/san-kum/rdlab/internal/diffusion"
	"github.com/san-kum/rdlab/internal/kinetics"
	"github.com/san-kum/rdlab/internal/rd"
)

func benchmarkStep(b *testing.B, size int, s diffusion.Stencil) {
	g, _ := rd.NewGrid(size, size, rd.Periodic)
	u, v, nu, nv := newBuffers(g)
	u.Fill(1.0)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			v[g.Index(size/2+dx, size/2+dy)] = 0.25
		}
	}

	p := rd.Params{Du: 0.16, Dv: 0.08, F: 0.035, K: 0.065, Dt: 0.9}
	kin := kinetics.NewGrayScott()
	e := NewEuler(diffusion.NewOperator(s))
	e.EnableClamp(0, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := e.Step(g, u, v, nu, nv, kin, p, uint64(i)); err != nil {
			b.Fatal(err)
		}
		u, nu = nu, u
		v, nv = nv, v
	}
}

func BenchmarkEuler_256_FivePoint(b *testing.B) { benchmarkStep(b, 256, diffusion.FivePoint) }
func BenchmarkEuler_256_NinePoint(b *testing.B) { benchmarkStep(b, 256, diffusion.NinePoint) }
func BenchmarkEuler_512_FivePoint(b *testing.B) { benchmarkStep(b, 512, diffusion.FivePoint) }
