package viz

import (
	"strings"

	"github.com/san-kum/rdlab/internal/rd"
)

// shades orders characters by visual density for terminal field rendering.
var shades = []rune(" .:-=+*#%@")

// FieldView renders the field as cols x rows of shade characters. The grid
// is sampled with nearest-neighbor lookup, so any viewport size works.
// Values are treated as concentrations in [0,1]; out-of-range values
// saturate.
func FieldView(g rd.Grid, f rd.Field, cols, rows int) string {
	if cols <= 0 || rows <= 0 || g.Cells() == 0 || len(f) < g.Cells() {
		return ""
	}

	var sb strings.Builder
	sb.Grow((cols + 1) * rows)
	for r := 0; r < rows; r++ {
		y := r * g.H / rows
		for c := 0; c < cols; c++ {
			x := c * g.W / cols
			sb.WriteRune(shade(f[g.Index(x, y)]))
		}
		if r < rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func shade(v float64) rune {
	if v <= 0 {
		return shades[0]
	}
	if v >= 1 {
		return shades[len(shades)-1]
	}
	return shades[int(v*float64(len(shades)-1)+0.5)]
}
