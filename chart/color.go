package chart

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// DefaultColor is assigned to data sets created without colors.
var DefaultColor = color.NRGBA{R: 0x8c, G: 0xea, B: 0xff, A: 0xff}

// Palette is a set of distinguishable series colors.
var Palette = []color.NRGBA{
	{R: 0xa4, G: 0x63, B: 0x3a, A: 0xff},
	{R: 0x85, G: 0x76, B: 0x25, A: 0xff},
	{R: 0x51, G: 0x85, B: 0x4d, A: 0xff},
	{R: 0x2b, G: 0x7f, B: 0xa8, A: 0xff},
	{R: 0x72, G: 0x6c, B: 0xae, A: 0xff},
	{R: 0x97, G: 0x5f, B: 0x91, A: 0xff},
	{R: 0xff, A: 0xff},
	{G: 0xff, A: 0xff},
	{B: 0xff, A: 0xff},
	{R: 0xf0, G: 0xf0, A: 0xff},
}

// PaletteColor returns the palette color for the i-th series.
func PaletteColor(i int) color.NRGBA {
	return Palette[i%len(Palette)]
}

// HighlightDarkening is the factor applied to the HSV value channel of a
// series color to obtain its highlight color.
const HighlightDarkening = 0.5

// Darken scales the HSV value channel of c by factor, keeping hue,
// saturation and alpha.
func Darken(c color.NRGBA, factor float64) color.NRGBA {
	h, s, v := toHSV(c)
	v = clamp(v*factor, 0, 1)
	out := fromHSV(h, s, v)
	out.A = c.A
	return out
}

// WithAlpha returns c with its alpha replaced.
func WithAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}

func toHSV(c color.NRGBA) (h, s, v float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255
	hi := max(r, g, b)
	lo := min(r, g, b)
	v = hi
	delta := hi - lo
	if hi == 0 || delta == 0 {
		return 0, 0, v
	}
	s = delta / hi
	switch hi {
	case r:
		h = math.Mod((g-b)/delta, 6)
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h, s, v
}

func fromHSV(h, s, v float64) color.NRGBA {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return color.NRGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 0xff,
	}
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa" hex notation. Unlike
// the raster backend's hex helper it rejects malformed input.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// FormatColor renders c as "#rrggbbaa".
func FormatColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
