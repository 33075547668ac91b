package mandel

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

var (
	ErrUnknownPalette = errors.New("unknown palette")
	ErrHueSector      = errors.New("hue sector out of range")
)

// Palette maps an escape count to a color. All palettes are stateless.
type Palette uint8

const (
	Basic Palette = iota
	HSV
	RGB
	LCH
)

var paletteNames = [...]string{
	Basic: "basic",
	HSV:   "hsv",
	RGB:   "rgb",
	LCH:   "lch",
}

// Palettes lists every palette in selection order.
var Palettes = []Palette{Basic, HSV, RGB, LCH}

func (p Palette) String() string {
	if int(p) < len(paletteNames) {
		return paletteNames[p]
	}
	return fmt.Sprintf("Palette(%d)", uint8(p))
}

// ParsePalette returns the palette called name.
func ParsePalette(name string) (Palette, error) {
	for p, n := range paletteNames {
		if n == name {
			return Palette(p), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
}

// Color returns the pixel for escape count i under iteration cap n.
func (p Palette) Color(i, n int) (color.RGBA, error) {
	switch p {
	case Basic:
		return basicColor(i), nil
	case HSV:
		return hsvColor(i, n)
	case RGB:
		return rgbColor(i, n), nil
	case LCH:
		return lchColor(i, n), nil
	}
	return color.RGBA{}, fmt.Errorf("%w: %v", ErrUnknownPalette, p)
}

// channel truncates v toward zero and keeps the low 8 bits.
// Out of range values wrap instead of saturating.
func channel(v float64) uint8 {
	return uint8(int(v))
}

func ratio(i, n int) float64 {
	return float64(i) / float64(n)
}

// basicColor bands counts into three ramps (rosettacode, BASIC256).
func basicColor(i int) color.RGBA {
	var r, g, b int
	switch {
	case i < 16:
		r = 8 * i
		g = 8 * i
		b = 128 + 4*i
	case i < 64:
		r = 112 + i
		g = 112 + i
		b = 176 + i
	case i >= 64:
		r = 319 - i
		g = (128 + r) / 2
		b = r
	default:
		// unreachable: the bands above cover every int
	}
	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}
}

// hsvColor walks the hue circle at full saturation and value (rosettacode, C).
func hsvColor(i, n int) (color.RGBA, error) {
	hue := math.Mod(math.Pow(ratio(i, n), 1.5)*1000, 6)
	if !(hue >= 0 && hue < 6) {
		return color.RGBA{}, fmt.Errorf("%w: hue %v for %d/%d", ErrHueSector, hue, i, n)
	}

	const c = 255.0
	x := c * (1 - math.Abs(math.Mod(hue, 2)-1))

	var r, g, b float64
	switch int(hue) {
	case 0:
		r, g = c, x
	case 1:
		r, g = x, c
	case 2:
		g, b = c, x
	case 3:
		g, b = x, c
	case 4:
		r, b = x, c
	case 5:
		r, b = c, x
	}
	return color.RGBA{channel(r), channel(g), channel(b), 255}, nil
}

// rgbColor is a grayscale ramp on an exponentially mapped, cyclic count.
func rgbColor(i, n int) color.RGBA {
	v := channel(math.Mod(math.Pow(ratio(i, n)*360, 1.5), 360))
	return color.RGBA{v, v, v, 255}
}

// lchColor maps the count to CIE LCh and converts through XYZ to sRGB.
// There is no gamut clamp; channels outside [0, 255] wrap.
func lchColor(i, n int) color.RGBA {
	s := ratio(i, n)
	v := 1 - math.Pow(math.Pi*s, 2)
	l := 75 - 75*v
	c := 28 + l
	h := math.Mod(math.Pow(360*s, 1.25), 360)

	rad := h * math.Pi / 180
	fy := (l + 16) / 116
	y := labToXYZ(fy)
	x := labToXYZ(fy + c/500*math.Cos(rad))
	z := labToXYZ(fy - c/200*math.Sin(rad))

	r := linearToSRGB(x*3.021973625 - y*1.617392459 - z*0.404875592)
	g := linearToSRGB(x*-0.943766287 + y*1.916279586 + z*0.027607165)
	b := linearToSRGB(x*0.069407491 - y*0.22898585 + z*1.159737864)
	return color.RGBA{channel(r), channel(g), channel(b), 255}
}

// linearToSRGB gamma-compands a linear component onto the 0..255 scale.
func linearToSRGB(v float64) float64 {
	if v > 0.0031308 {
		return math.Pow(v, 1/2.4)*269.025 - 14.025
	}
	return v * 3294.6
}

// labToXYZ is the inverse of the CIELAB f function.
func labToXYZ(v float64) float64 {
	if v > 0.2068965 {
		return v * v * v
	}
	return (v - 4.0/29.0) * (108.0 / 841.0)
}
