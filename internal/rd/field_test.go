package rd

import (
	"math"
	"testing"
)

func TestField_IsFinite(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		valid bool
	}{
		{"empty", Field{}, true},
		{"normal", Field{1.0, 0.5, 0.0}, true},
		{"with NaN", Field{1.0, math.NaN()}, false},
		{"with +Inf", Field{1.0, math.Inf(1)}, false},
		{"with -Inf", Field{math.Inf(-1), 0.0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.field.IsFinite(); got != tt.valid {
				t.Errorf("IsFinite() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestField_FirstNonFinite(t *testing.T) {
	f := Field{0.1, 0.2, math.Inf(1), math.NaN()}
	i, ok := f.FirstNonFinite()
	if !ok {
		t.Fatal("expected a non-finite cell")
	}
	if i != 2 {
		t.Errorf("expected index 2, got %d", i)
	}
}

func TestField_Clamp(t *testing.T) {
	f := Field{-0.5, 0.3, 1.7, math.NaN()}
	f.Clamp(0, 1)

	if f[0] != 0 {
		t.Errorf("expected 0, got %f", f[0])
	}
	if f[1] != 0.3 {
		t.Errorf("expected 0.3, got %f", f[1])
	}
	if f[2] != 1 {
		t.Errorf("expected 1, got %f", f[2])
	}
	if !math.IsNaN(f[3]) {
		t.Errorf("NaN should survive clamping, got %f", f[3])
	}
}

func TestField_CloneIndependence(t *testing.T) {
	f := Field{1, 2, 3}
	c := f.Clone()
	c[0] = 9
	if f[0] != 1 {
		t.Error("clone aliases original storage")
	}
}

func TestField_InRange(t *testing.T) {
	if !(Field{0, 0.5, 1}).InRange(0, 1) {
		t.Error("expected in range")
	}
	if (Field{0, 1.5}).InRange(0, 1) {
		t.Error("expected out of range")
	}
	if (Field{math.NaN()}).InRange(0, 1) {
		t.Error("NaN must not count as in range")
	}
}
