package rd

import (
	"errors"
	"testing"
)

func TestNewGrid(t *testing.T) {
	g, err := NewGrid(10, 20, Periodic)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	if g.W != 10 || g.H != 20 {
		t.Errorf("expected 10x20, got %dx%d", g.W, g.H)
	}
	if g.Cells() != 200 {
		t.Errorf("expected 200 cells, got %d", g.Cells())
	}
}

func TestNewGrid_InvalidGeometry(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative width", -1, 10},
		{"negative height", 10, -5},
		{"both zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.w, tt.h, Periodic)
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("expected ErrInvalidGeometry, got %v", err)
			}
		})
	}
}

func TestGrid_IndexCoords(t *testing.T) {
	g, _ := NewGrid(7, 5, Periodic)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			i := g.Index(x, y)
			gx, gy := g.Coords(i)
			if gx != x || gy != y {
				t.Fatalf("Coords(Index(%d,%d)) = (%d,%d)", x, y, gx, gy)
			}
		}
	}
}

func TestParseBoundary(t *testing.T) {
	tests := []struct {
		in      string
		want    Boundary
		wantErr bool
	}{
		{"periodic", Periodic, false},
		{"", Periodic, false},
		{"reflective", Reflective, false},
		{"fixed", Fixed, false},
		{"toroidal", Periodic, true},
	}

	for _, tt := range tests {
		got, err := ParseBoundary(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseBoundary(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseBoundary(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseBoundary(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBoundary_RoundTrip(t *testing.T) {
	for _, b := range []Boundary{Periodic, Reflective, Fixed} {
		got, err := ParseBoundary(b.String())
		if err != nil {
			t.Fatalf("ParseBoundary(%q): %v", b.String(), err)
		}
		if got != b {
			t.Errorf("round trip of %v gave %v", b, got)
		}
	}
}
