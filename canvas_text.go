package gg

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/anselm-rasterizer/canvas2d/font"
	"github.com/anselm-rasterizer/canvas2d/internal/raster"
)

// SetFontFromBytes parses data as a TrueType byte stream and installs
// it at size pixels per em. On malformed or truncated data the previous
// font (or none) stays in effect and the error is returned for the
// caller to inspect; a non-positive size is an invalid argument and
// also leaves the state untouched.
func (c *Canvas) SetFontFromBytes(data []byte, size float64) error {
	if size <= 0 || !finite(size) {
		return nil
	}
	f, err := font.Parse(data)
	if err != nil {
		Logger().Debug("rejected font", "err", err)
		return err
	}
	c.state.font = f
	c.state.fontSize = size
	return nil
}

// textRun is one shaped glyph: its outline (already scaled to pixel em
// and y-flipped into device-orientation font-local space) and the pen
// position its MoveTo/LineTo/QuadTo points are relative to.
type textRun struct {
	segs []font.Segment
	penX float64
}

// clipLine truncates s at the first newline, carriage return or
// form-feed byte: "a single call renders one line".
func clipLine(s string) string {
	if i := strings.IndexAny(s, "\n\r\f"); i >= 0 {
		return s[:i]
	}
	return s
}

// shapeText lays out s's glyphs left-to-right starting at pen x=0,
// returning the per-glyph runs and the natural (unscaled-by-maxWidth)
// total advance in device pixels.
func (c *Canvas) shapeText(s string) ([]textRun, float64) {
	f := c.state.font
	if f == nil {
		return nil, 0
	}
	s = norm.NFC.String(clipLine(s))
	scale := c.state.fontSize / float64(f.UnitsPerEm())

	var runs []textRun
	pen := 0.0
	for _, r := range s {
		gid := f.GlyphIndex(r)
		outline, err := f.Outline(gid)
		if err == nil && len(outline) > 0 {
			runs = append(runs, textRun{segs: outline, penX: pen})
		}
		pen += float64(f.AdvanceWidth(gid)) * scale
	}
	return runs, pen
}

// MeasureText returns the sum of s's glyph advance widths in device
// pixels under the current font size, with no maxWidth squeeze and no
// transform applied.
func (c *Canvas) MeasureText(s string) float64 {
	_, total := c.shapeText(s)
	return total
}

// textBaselineOffset returns the vertical offset (in font units,
// unscaled) from the alphabetic baseline to the chosen baseline, so
// that deviceBaselineY = y + offset*scale. Top and bottom sit one
// ascent/descent away from the given y; hanging and ideographic use
// the spec's documented fractions.
func textBaselineOffset(b TextBaseline, ascent, descent int) float64 {
	switch b {
	case BaselineTop:
		return float64(ascent)
	case BaselineHanging:
		return 0.8 * float64(ascent)
	case BaselineMiddle:
		return float64(ascent+descent) / 2
	case BaselineIdeographic:
		return float64(descent)
	case BaselineBottom:
		return float64(descent)
	default: // BaselineAlphabetic
		return 0
	}
}

// buildTextPath lays out s and returns a device-space Path (already
// transformed through the current CTM) ready to fill or stroke, or nil
// if no font is set or the string shapes to nothing.
func (c *Canvas) buildTextPath(s string, x, y, maxWidth float64) *Path {
	f := c.state.font
	if f == nil {
		return nil
	}
	runs, total := c.shapeText(s)
	if len(runs) == 0 {
		return nil
	}
	scale := c.state.fontSize / float64(f.UnitsPerEm())

	hScale := 1.0
	if maxWidth > 0 && total > maxWidth {
		hScale = maxWidth / total
	}

	startX := x
	switch c.state.textAlign {
	case AlignEnd, AlignRight:
		startX = x - total*hScale
	case AlignCenter:
		startX = x - total*hScale/2
	}

	baselineY := y + textBaselineOffset(c.state.textBaseline, f.Ascent(), f.Descent())*scale

	out := NewPath()
	for _, run := range runs {
		penX := startX + run.penX*hScale
		appendGlyphOutline(out, run.segs, func(gx, gy float64) Point {
			ux := penX + gx*scale*hScale
			uy := baselineY - gy*scale
			return c.tp(ux, uy)
		})
	}
	return out
}

// appendGlyphOutline converts one glyph's font-unit outline into device
// path commands via project, which maps (glyphX,glyphY) in font units to
// a device-space Point.
func appendGlyphOutline(out *Path, segs []font.Segment, project func(x, y float64) Point) {
	for _, s := range segs {
		switch s.Op {
		case font.SegmentMoveTo:
			p := project(s.Args[0].X, s.Args[0].Y)
			out.MoveTo(p.X, p.Y)
		case font.SegmentLineTo:
			p := project(s.Args[0].X, s.Args[0].Y)
			out.LineTo(p.X, p.Y)
		case font.SegmentQuadTo:
			cp := project(s.Args[0].X, s.Args[0].Y)
			ep := project(s.Args[1].X, s.Args[1].Y)
			out.QuadraticTo(cp.X, cp.Y, ep.X, ep.Y)
		}
	}
}

// FillText fills s's glyph outlines at (x,y) in user space with the
// active fill paint. maxWidth<=0 means unconstrained. A canvas with no font set (or an invalid one) does
// nothing, per spec.md §4.8's invalid-font fallback.
func (c *Canvas) FillText(s string, x, y, maxWidth float64) {
	p := c.buildTextPath(s, x, y, maxWidth)
	if p == nil {
		return
	}
	c.fillPath(p, FillRuleNonZero, c.state.fillPaint)
}

// StrokeText strokes s's glyph outlines at (x,y) in user space with the
// active line style and stroke paint.
func (c *Canvas) StrokeText(s string, x, y, maxWidth float64) {
	if !c.state.transform.Invertible() {
		return
	}
	p := c.buildTextPath(s, x, y, maxWidth)
	if p == nil {
		return
	}
	segs := c.strokeOutlineSegments(p)
	c.renderShadow(segs, raster.NonZero)
	rows := raster.Rasterize(segs, c.width, c.height, raster.NonZero)
	c.compositeRows(rows, c.drawPaint(c.state.strokePaint))
}
