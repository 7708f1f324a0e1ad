package scene

import "math"

// RGB is a linear-light colour. Components are unbounded until output.
type RGB struct {
	R, G, B float64
}

// Add returns c+o.
func (c RGB) Add(o RGB) RGB { return RGB{c.R + o.R, c.G + o.G, c.B + o.B} }

// Scale returns c·k.
func (c RGB) Scale(k float64) RGB { return RGB{c.R * k, c.G * k, c.B * k} }

// Mul returns the component-wise product.
func (c RGB) Mul(o RGB) RGB { return RGB{c.R * o.R, c.G * o.G, c.B * o.B} }

// Lerp blends from c to o by t.
func (c RGB) Lerp(o RGB, t float64) RGB {
	return RGB{c.R + (o.R-c.R)*t, c.G + (o.G-c.G)*t, c.B + (o.B-c.B)*t}
}

// Hex converts a 0xRRGGBB sRGB colour to linear light.
func Hex(v uint32) RGB {
	return RGB{
		R: SRGBToLinear(float64(v>>16&0xff) / 255),
		G: SRGBToLinear(float64(v>>8&0xff) / 255),
		B: SRGBToLinear(float64(v&0xff) / 255),
	}
}

// Grey returns an sRGB grey of the given lightness as linear light.
func Grey(lightness float64) RGB {
	l := SRGBToLinear(lightness)
	return RGB{l, l, l}
}

// SRGBToLinear decodes one sRGB component.
func SRGBToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// LinearToSRGB encodes one linear component, clamped to [0, 1].
func LinearToSRGB(c float64) float64 {
	switch {
	case c <= 0 || math.IsNaN(c):
		return 0
	case c >= 1:
		return 1
	case c <= 0.0031308:
		return c * 12.92
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}

var (
	White     = RGB{1, 1, 1}
	Black     = RGB{}
	WarmWhite = Hex(0xfff8e1)
	Gold      = Hex(0xffd700)
)
