package rd

import (
	"errors"
	"math"
	"testing"
)

func TestParams_Validate(t *testing.T) {
	good := Params{Du: 0.16, Dv: 0.08, F: 0.035, K: 0.065, Dt: 1.0}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}

	tests := []struct {
		name string
		p    Params
	}{
		{"negative Du", Params{Du: -0.1, Dv: 0.08, F: 0.035, K: 0.065, Dt: 1.0}},
		{"negative Dv", Params{Du: 0.16, Dv: -1, F: 0.035, K: 0.065, Dt: 1.0}},
		{"zero dt", Params{Du: 0.16, Dv: 0.08, F: 0.035, K: 0.065, Dt: 0}},
		{"negative dt", Params{Du: 0.16, Dv: 0.08, F: 0.035, K: 0.065, Dt: -0.5}},
		{"NaN feed", Params{Du: 0.16, Dv: 0.08, F: math.NaN(), K: 0.065, Dt: 1.0}},
		{"Inf kill", Params{Du: 0.16, Dv: 0.08, F: 0.035, K: math.Inf(1), Dt: 1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.p.Validate(); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestParams_SetRejectsWithoutMutating(t *testing.T) {
	p := Params{Du: 0.16, Dv: 0.08, F: 0.035, K: 0.065, Dt: 1.0}
	before := p

	if err := p.Set(ParamDt, -1); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	if p != before {
		t.Error("rejected Set mutated the params")
	}

	if err := p.Set("gamma", 0.5); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("unknown name should fail, got %v", err)
	}
}

func TestParams_SetGet(t *testing.T) {
	var p Params
	p.Dt = 1.0

	for _, name := range ParamNames() {
		want := 0.25
		if name == ParamDt {
			want = 0.9
		}
		if err := p.Set(name, want); err != nil {
			t.Fatalf("Set(%s): %v", name, err)
		}
		got, err := p.Get(name)
		if err != nil {
			t.Fatalf("Get(%s): %v", name, err)
		}
		if got != want {
			t.Errorf("Get(%s) = %g, want %g", name, got, want)
		}
	}

	if _, err := p.Get("nope"); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}
