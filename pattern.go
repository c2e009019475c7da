package gg

import (
	"golang.org/x/image/math/f64"

	iimage "github.com/anselm-rasterizer/canvas2d/internal/image"
)

// RepeatMode selects how a pattern tiles outside its source bitmap
// .
type RepeatMode int

const (
	RepeatBoth RepeatMode = iota
	RepeatX
	RepeatY
	RepeatNone
)

func (m RepeatMode) internal() iimage.Repeat {
	switch m {
	case RepeatX:
		return iimage.RepeatX
	case RepeatY:
		return iimage.RepeatY
	case RepeatNone:
		return iimage.RepeatNone
	default:
		return iimage.RepeatBoth
	}
}

// PatternPaint is the Paint variant backed by a bitmap sampled through a
// local transform with one of the four repeat modes. The source
// pixels are copied in at construction time.
type PatternPaint struct {
	img     *iimage.Buf
	repeat  RepeatMode
	pattern *iimage.Pattern
}

// NewPatternFromSRGB8 builds a pattern paint from tightly-row-strided
// sRGB8 RGBA source pixels, converting them to the canvas's linear
// premultiplied representation once at copy-in time. localTransform maps the pattern's own
// pixel space into device space (samples go through its inverse); pass
// Identity() for the common case.
func NewPatternFromSRGB8(src []byte, w, h, stride int, repeat RepeatMode, localTransform Matrix) *PatternPaint {
	buf := iimage.NewBuf(w, h)
	for y := 0; y < h; y++ {
		row := y * stride
		for x := 0; x < w; x++ {
			i := row + x*4
			if i+3 >= len(src) {
				continue
			}
			c := RGBAFromSRGB8(src[i], src[i+1], src[i+2], src[i+3])
			buf.Set(x, y, c.R, c.G, c.B, c.A)
		}
	}
	inv, ok := localTransform.Invert()
	if !ok {
		inv = Identity()
	}
	aff := f64.Aff3{inv.A, inv.C, inv.E, inv.B, inv.D, inv.F}
	return &PatternPaint{
		img:     buf,
		repeat:  repeat,
		pattern: iimage.NewPattern(buf, repeat.internal(), aff),
	}
}

func (*PatternPaint) paintMarker() {}

// ColorAt implements Paint, delegating to the internal bilinear pattern
// sampler.
func (p *PatternPaint) ColorAt(x, y float64) RGBA {
	r, g, b, a := p.pattern.ColorAt(x, y)
	return RGBA{R: r, G: g, B: b, A: a}
}
