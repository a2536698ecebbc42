package scheduling

import (
	"fmt"
	"math"
)

const (
	paletteSaturation = 0.7
	paletteValue      = 0.9
)

// Palette generates count visually distinct hex colors by evenly dividing
// hue space at fixed saturation and value. Course display colors are taken
// from this palette in catalog order, independent of placement outcome.
func Palette(count int) []string {
	colors := make([]string, 0, count)
	for i := 0; i < count; i++ {
		hue := float64(i) / float64(count)
		r, g, b := hsvToRGB(hue, paletteSaturation, paletteValue)
		colors = append(colors, fmt.Sprintf("#%02x%02x%02x", r, g, b))
	}
	return colors
}

func hsvToRGB(h, s, v float64) (uint8, uint8, uint8) {
	i := math.Floor(h * 6)
	f := h*6 - i
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch int(i) % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return uint8(r * 255), uint8(g * 255), uint8(b * 255)
}
