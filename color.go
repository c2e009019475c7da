package gg

import (
	"math"

	icolor "github.com/anselm-rasterizer/canvas2d/internal/color"
)

// RGBA is a linear-premultiplied color, the compositor's native space
// . Components are
// nominally in [0,1] but may be clamped lazily by callers; Premultiply
// clamps the stored result.
type RGBA struct {
	R, G, B, A float64
}

// RGBStraight builds a linear-premultiplied RGBA from straight-alpha sRGB
// components in [0,1] (the form canvas setters such as set_color accept).
// Out-of-range inputs are clamped after premultiplication, per spec.md §6.
func RGBStraight(r, g, b, a float64) RGBA {
	lr := srgbToLinear(r)
	lg := srgbToLinear(g)
	lb := srgbToLinear(b)
	a = clamp01(a)
	return RGBA{R: clamp01(lr * a), G: clamp01(lg * a), B: clamp01(lb * a), A: a}
}

// srgbToLinear converts a straight (non-premultiplied) sRGB component in
// [0,1] to linear light using the canvas's forward LUT, rounding to the
// nearest of the 256 table entries.
func srgbToLinear(s float64) float64 {
	s = clamp01(s)
	idx := int(s*255.0 + 0.5)
	if idx < 0 {
		idx = 0
	}
	if idx > 255 {
		idx = 255
	}
	return float64(icolor.SRGBToLinearFast(uint8(idx))) //nolint:gosec // idx clamped to [0,255]
}

// linearToSRGB converts a linear light component in [0,1] to straight
// sRGB in [0,1] using the canvas's inverse LUT.
func linearToSRGB(l float64) float64 {
	return float64(icolor.LinearToSRGBFast(float32(l))) / 255.0
}

// ToSRGB8 unpremultiplies and inverse-sRGB-encodes the color to 8-bit
// straight sRGB RGBA, the external interchange format.
func (c RGBA) ToSRGB8() (r, g, b, a uint8) {
	u := c.Unpremultiply()
	r = srgb8(linearToSRGB(u.R))
	g = srgb8(linearToSRGB(u.G))
	b = srgb8(linearToSRGB(u.B))
	a = srgb8(u.A)
	return
}

// RGBAFromSRGB8 converts 8-bit straight sRGB bytes into the canvas's
// linear-premultiplied native representation.
func RGBAFromSRGB8(r, g, b, a uint8) RGBA {
	af := float64(a) / 255.0
	lr := float64(icolor.SRGBToLinearFast(r))
	lg := float64(icolor.SRGBToLinearFast(g))
	lb := float64(icolor.SRGBToLinearFast(b))
	return RGBA{R: lr * af, G: lg * af, B: lb * af, A: af}
}

func srgb8(v float64) uint8 {
	v = clamp01(v)
	n := int(v*255.0 + 0.5)
	if n < 0 {
		n = 0
	}
	if n > 255 {
		n = 255
	}
	return uint8(n) //nolint:gosec // n clamped to [0,255]
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Premultiply clamps the color's components to [0,1], matching the
// "colors accepted out of range and clamped after premultiplication"
// rule used throughout spec.md (e.g. §4.7 shadow color).
func (c RGBA) Premultiply() RGBA {
	a := clamp01(c.A)
	return RGBA{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: a}
}

// Unpremultiply divides out alpha, returning a straight-alpha linear
// color. Returns transparent black when alpha is zero.
func (c RGBA) Unpremultiply() RGBA {
	if c.A <= 0 {
		return RGBA{}
	}
	return RGBA{R: c.R / c.A, G: c.G / c.A, B: c.B / c.A, A: c.A}
}

// Lerp performs linear interpolation between two (premultiplied) colors.
func (c RGBA) Lerp(other RGBA, t float64) RGBA {
	return RGBA{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// Common colors, expressed as opaque linear-premultiplied RGBA (straight
// sRGB component values equal the linear ones at 0 and 1).
var (
	Black       = RGBStraight(0, 0, 0, 1)
	White       = RGBStraight(1, 1, 1, 1)
	Red         = RGBStraight(1, 0, 0, 1)
	Green       = RGBStraight(0, 1, 0, 1)
	Blue        = RGBStraight(0, 0, 1, 1)
	Transparent = RGBA{}
)
