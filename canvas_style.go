package gg

// StyleTarget selects which of the two style slots an operation applies
// to: the fill style or the stroke style.
type StyleTarget int

const (
	FillStyle StyleTarget = iota
	StrokeStyle
)

func (c *Canvas) paintFor(t StyleTarget) Paint {
	if t == StrokeStyle {
		return c.state.strokePaint
	}
	return c.state.fillPaint
}

func (c *Canvas) setPaint(t StyleTarget, p Paint) {
	if t == StrokeStyle {
		c.state.strokePaint = p
		return
	}
	c.state.fillPaint = p
}

// SetColor sets the target style to a solid color. r, g, b, a are
// straight-alpha sRGB components nominally in [0,1]; out-of-range
// values are clamped after premultiplication. Non-finite components
// make the call a no-op.
func (c *Canvas) SetColor(t StyleTarget, r, g, b, a float64) {
	if !finite(r, g, b, a) {
		return
	}
	c.setPaint(t, Solid(RGBStraight(r, g, b, a)))
}

// SetLinearGradient sets the target style to a linear gradient between
// (x0,y0) and (x1,y1) in user space. The geometry is mapped through
// whatever transform is current when a fill or stroke runs, not the
// one current now. Any existing color stops are discarded.
func (c *Canvas) SetLinearGradient(t StyleTarget, x0, y0, x1, y1 float64) {
	if !finite(x0, y0, x1, y1) {
		return
	}
	c.setPaint(t, NewLinearGradient(x0, y0, x1, y1))
}

// SetRadialGradient sets the target style to a two-circle radial
// gradient in user space, mapped through the draw-time transform like
// SetLinearGradient. A negative radius invalidates the call and leaves
// the previous style (and its stops) in effect. Any existing color
// stops are discarded on success.
func (c *Canvas) SetRadialGradient(t StyleTarget, x0, y0, r0, x1, y1, r1 float64) {
	if !finite(x0, y0, r0, x1, y1, r1) || r0 < 0 || r1 < 0 {
		return
	}
	c.setPaint(t, NewRadialGradient(x0, y0, r0, x1, y1, r1))
}

// SetPattern sets the target style to a repeating bitmap pattern built
// from w×h sRGB8 RGBA pixels with the given row stride in bytes. The
// pixels are copied in during this call; the caller keeps ownership of
// src. One pattern pixel spans one user-space unit, and the pattern
// follows the draw-time transform. A nil src invalidates the call and
// leaves the previous style in effect.
func (c *Canvas) SetPattern(t StyleTarget, src []byte, w, h, stride int, repeat RepeatMode) {
	if src == nil || w <= 0 || h <= 0 {
		return
	}
	c.setPaint(t, NewPatternFromSRGB8(src, w, h, stride, repeat, Identity()))
}

// AddColorStop appends a color stop at offset to the target style's
// active gradient. An offset outside [0,1] invalidates the call; the
// color components are straight-alpha sRGB, accepted out of range and
// clamped after premultiplication. A no-op when the target style is
// not a gradient.
func (c *Canvas) AddColorStop(t StyleTarget, offset, r, g, b, a float64) {
	if !finite(offset, r, g, b, a) || offset < 0 || offset > 1 {
		return
	}
	col := RGBStraight(r, g, b, a)
	switch g := c.paintFor(t).(type) {
	case *LinearGradient:
		g.AddColorStop(offset, col)
	case *RadialGradient:
		g.AddColorStop(offset, col)
	}
}
