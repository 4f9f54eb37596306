// Package viz renders concentration fields for the terminal: a character
// shading canvas for the live view and a default gradient for PNG export.
package viz

import "image/color"

// viridis-like anchor colors, dark blue through green to yellow.
var gradientStops = []color.RGBA{
	{68, 1, 84, 255},
	{59, 82, 139, 255},
	{33, 145, 140, 255},
	{94, 201, 98, 255},
	{253, 231, 37, 255},
}

// Gradient maps a concentration in [0,1] to a color, saturating outside
// the range. It is the default color map handed to the export layer; the
// engine itself never depends on it.
func Gradient(v float64) color.Color {
	if v <= 0 {
		return gradientStops[0]
	}
	if v >= 1 {
		return gradientStops[len(gradientStops)-1]
	}
	pos := v * float64(len(gradientStops)-1)
	i := int(pos)
	t := pos - float64(i)
	a, b := gradientStops[i], gradientStops[i+1]
	return color.RGBA{
		R: lerp8(a.R, b.R, t),
		G: lerp8(a.G, b.G, t),
		B: lerp8(a.B, b.B, t),
		A: 255,
	}
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}
