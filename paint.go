package gg

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// Paint is the sealed interface implemented by the fill/stroke style
// variants a canvas can hold: a solid color, a linear or radial
// gradient, or a bitmap pattern. Only types in this package implement
// it.
type Paint interface {
	// paintMarker seals the interface to this package's variants.
	paintMarker()

	// ColorAt returns the linear-premultiplied color at device-space
	// point (x,y).
	ColorAt(x, y float64) RGBA
}

// SolidPaint is a single solid color, used unchanged regardless of
// position.
type SolidPaint struct {
	Color RGBA
}

func (SolidPaint) paintMarker() {}

// ColorAt implements Paint. Returns the solid color regardless of position.
func (p SolidPaint) ColorAt(_, _ float64) RGBA {
	return p.Color
}

// Solid wraps an RGBA color as a Paint.
func Solid(c RGBA) SolidPaint {
	return SolidPaint{Color: c}
}

// userSpacePaint evaluates a paint whose geometry lives in user space:
// each device-space sample is mapped through the inverse of the
// transform captured when the draw call started. The canvas wraps
// gradients and patterns in this at fill/stroke time, so paint follows
// the transform in effect when drawing happens, not when the style was
// set.
type userSpacePaint struct {
	paint Paint
	inv   Matrix
}

func (userSpacePaint) paintMarker() {}

// ColorAt implements Paint.
func (p userSpacePaint) ColorAt(x, y float64) RGBA {
	u := p.inv.TransformPoint(Pt(x, y))
	return p.paint.ColorAt(u.X, u.Y)
}
