package export

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/san-kum/rdlab/internal/rd"
)

func grayMap(v float64) color.Color {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	c := uint8(v * 255)
	return color.RGBA{c, c, c, 255}
}

func TestWritePNG(t *testing.T) {
	g, _ := rd.NewGrid(8, 6, rd.Periodic)
	f := rd.NewField(g)
	f[g.Index(3, 2)] = 1.0

	var buf bytes.Buffer
	if err := WritePNG(&buf, g, f, grayMap); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("expected 8x6 image, got %dx%d", b.Dx(), b.Dy())
	}

	r, _, _, _ := img.At(3, 2).RGBA()
	if r == 0 {
		t.Error("seeded pixel should be bright")
	}
	r, _, _, _ = img.At(0, 0).RGBA()
	if r != 0 {
		t.Error("background pixel should be black")
	}
}

func TestWritePNG_DimensionMismatch(t *testing.T) {
	g, _ := rd.NewGrid(4, 4, rd.Periodic)
	var buf bytes.Buffer
	if err := WritePNG(&buf, g, rd.Field{1, 2, 3}, grayMap); err == nil {
		t.Error("expected error for mismatched field length")
	}
}
