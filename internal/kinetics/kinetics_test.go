package kinetics

import (
	"math"
	"testing"

	"github.com/san-kum/rdlab/internal/rd"
)

func TestGrayScott_Rates(t *testing.T) {
	p := rd.Params{F: 0.035, K: 0.065}
	rates := NewGrayScott().Rates(p)

	tests := []struct {
		u, v           float64
		wantDu, wantDv float64
	}{
		// Fixed point of the reaction term: u=1, v=0.
		{1.0, 0.0, 0.0, 0.0},
		// u=0, v=0: only the feed acts.
		{0.0, 0.0, 0.035, 0.0},
		// General point, computed from the model definition.
		{0.5, 0.25, -0.5*0.25*0.25 + 0.035*0.5, 0.5*0.25*0.25 - 0.1*0.25},
	}

	for _, tt := range tests {
		du, dv := rates(tt.u, tt.v)
		if math.Abs(du-tt.wantDu) > 1e-15 {
			t.Errorf("du(%g,%g) = %g, want %g", tt.u, tt.v, du, tt.wantDu)
		}
		if math.Abs(dv-tt.wantDv) > 1e-15 {
			t.Errorf("dv(%g,%g) = %g, want %g", tt.u, tt.v, dv, tt.wantDv)
		}
	}
}

func TestGrayScott_TotalOverReals(t *testing.T) {
	rates := NewGrayScott().Rates(rd.Params{F: 0.035, K: 0.065})
	for _, u := range []float64{-10, -1, 0, 0.5, 1, 10} {
		for _, v := range []float64{-10, -1, 0, 0.5, 1, 10} {
			du, dv := rates(u, v)
			if math.IsNaN(du) || math.IsNaN(dv) {
				t.Fatalf("rates(%g,%g) produced NaN", u, v)
			}
		}
	}
}

func TestFitzHughNagumo_Rates(t *testing.T) {
	p := rd.Params{F: 0.1, K: 0.3}
	rates := NewFitzHughNagumo().Rates(p)

	du, dv := rates(0.5, 0.2)
	wantDu := 0.5 - 0.125 - 0.2 + 0.1
	wantDv := 0.3 * (0.5 - 0.2)
	if math.Abs(du-wantDu) > 1e-15 || math.Abs(dv-wantDv) > 1e-15 {
		t.Errorf("rates(0.5,0.2) = (%g,%g), want (%g,%g)", du, dv, wantDu, wantDv)
	}
}

func TestNone_IsZero(t *testing.T) {
	rates := None().Rates(rd.Params{F: 0.9, K: 0.9})
	du, dv := rates(0.3, 0.7)
	if du != 0 || dv != 0 {
		t.Errorf("expected zero rates, got (%g,%g)", du, dv)
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range []string{"grayscott", "fitzhugh", "none"} {
		kin, err := New(name)
		if err != nil {
			t.Fatalf("New(%s): %v", name, err)
		}
		if kin.Name() != name {
			t.Errorf("Name() = %s, want %s", kin.Name(), name)
		}
	}

	if _, err := New("brusselator"); err == nil {
		t.Error("expected error for unregistered model")
	}

	names := List()
	if len(names) < 3 {
		t.Errorf("expected at least 3 registered models, got %v", names)
	}
}

func TestRatesSnapshotIsolation(t *testing.T) {
	// A RateFunc closes over the parameter snapshot it was resolved with;
	// later edits must not leak into it.
	p := rd.Params{F: 0.035, K: 0.065}
	rates := NewGrayScott().Rates(p)
	before, _ := rates(0, 0)

	p.F = 0.9
	after, _ := rates(0, 0)
	if before != after {
		t.Errorf("rate func observed a later parameter edit: %g vs %g", before, after)
	}
}
