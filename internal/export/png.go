// Package export renders concentration fields to image files. The color
// map is supplied by the caller; the engine itself stays colormap-free.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/san-kum/rdlab/internal/rd"
)

// ColorMap converts one concentration value to a color. Values are passed
// through unclamped; maps are expected to handle the conventional [0,1]
// range and saturate outside it.
type ColorMap func(v float64) color.Color

// WritePNG renders the field with the given color map.
func WritePNG(w io.Writer, g rd.Grid, f rd.Field, cmap ColorMap) error {
	if len(f) != g.Cells() {
		return fmt.Errorf("export: field length %d does not match %dx%d grid", len(f), g.W, g.H)
	}
	img := image.NewRGBA(image.Rect(0, 0, g.W, g.H))
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			img.Set(x, y, cmap(f[g.Index(x, y)]))
		}
	}
	return png.Encode(w, img)
}

// SavePNG renders the field to a file.
func SavePNG(path string, g rd.Grid, f rd.Field, cmap ColorMap) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return WritePNG(out, g, f, cmap)
}
