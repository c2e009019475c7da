package gg

import (
	"math"

	"github.com/anselm-rasterizer/canvas2d/font"
	iblend "github.com/anselm-rasterizer/canvas2d/internal/blend"
	ifilter "github.com/anselm-rasterizer/canvas2d/internal/filter"
	iimage "github.com/anselm-rasterizer/canvas2d/internal/image"
	"github.com/anselm-rasterizer/canvas2d/internal/raster"
	istroke "github.com/anselm-rasterizer/canvas2d/internal/stroke"
)

// CompositeOp selects a Porter-Duff (or lighter) compositing operator for
// subsequent drawing operations. Its ordinals mirror
// internal/blend.Op exactly.
type CompositeOp int

const (
	OpSourceOver CompositeOp = iota
	OpDestinationOver
	OpSourceIn
	OpDestinationIn
	OpSourceOut
	OpDestinationOut
	OpSourceAtop
	OpDestinationAtop
	OpXOR
	OpLighter
	OpCopy
)

func (op CompositeOp) internal() iblend.Op { return iblend.Op(op) }

// TextAlign selects how fill_text/stroke_text position glyphs relative
// to the given x coordinate.
type TextAlign int

const (
	AlignStart TextAlign = iota
	AlignEnd
	AlignLeft
	AlignRight
	AlignCenter
)

// TextBaseline selects the vertical metric aligned to the given y
// coordinate.
type TextBaseline int

const (
	BaselineAlphabetic TextBaseline = iota
	BaselineTop
	BaselineHanging
	BaselineMiddle
	BaselineIdeographic
	BaselineBottom
)

// state is one entry of the save/restore stack: every piece of drawing
// context a canvas carries.
type state struct {
	transform Matrix

	fillPaint   Paint
	strokePaint Paint
	fillRule    FillRule

	globalAlpha float64
	compositeOp CompositeOp

	lineWidth  float64
	lineCap    LineCap
	lineJoin   LineJoin
	miterLimit float64
	dash       *Dash
	dashOffset float64

	shadowColor   RGBA
	shadowBlur    float64
	shadowOffsetX float64
	shadowOffsetY float64

	clip *Mask

	font         *font.Font
	fontSize     float64
	textAlign    TextAlign
	textBaseline TextBaseline
}

func newState() state {
	return state{
		transform:    Identity(),
		fillPaint:    Solid(Black),
		strokePaint:  Solid(Black),
		fillRule:     FillRuleNonZero,
		globalAlpha:  1,
		compositeOp:  OpSourceOver,
		lineWidth:    1,
		miterLimit:   10,
		shadowColor:  Transparent,
		textAlign:    AlignStart,
		textBaseline: BaselineAlphabetic,
	}
}

// clone deep-copies the mutable reference fields (dash, clip mask) so a
// restore can never let the restored state alias a later save's edits,
// per spec.md §3 State: "pushed by save; popped by restore".
func (s state) clone() state {
	c := s
	if s.dash != nil {
		c.dash = s.dash.Clone()
	}
	if s.clip != nil {
		c.clip = s.clip.Clone()
	}
	return c
}

// Canvas is the library's single opaque entity: a pixel buffer plus a
// save/restore stack of drawing state and a current path under
// construction.
type Canvas struct {
	width, height int
	buf           *iimage.Buf

	state state
	stack []state

	path *Path
}

// NewCanvas allocates a transparent width×height canvas with the
// default initial state.
func NewCanvas(width, height int, opts ...CanvasOption) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &Canvas{
		width:  width,
		height: height,
		buf:    iimage.NewBuf(width, height),
		state:  newState(),
		path:   NewPath(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Width and Height return the canvas's pixel dimensions.
func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Save pushes a copy of the current state onto the state stack.
func (c *Canvas) Save() {
	c.stack = append(c.stack, c.state.clone())
}

// Restore pops the most recently saved state; a call with an empty
// stack is a no-op.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	n := len(c.stack) - 1
	c.state = c.stack[n]
	c.stack = c.stack[:n]
}

// --- Transform ---------------------------------------------------------

// Transform right-multiplies the current transform by [a c e; b d f]
// .
func (c *Canvas) Transform(a, b, cc, d, e, f float64) {
	if !finite(a, b, cc, d, e, f) {
		return
	}
	c.state.transform = c.state.transform.Multiply(Matrix{A: a, B: b, C: cc, D: d, E: e, F: f})
}

// SetTransform replaces the current transform outright.
func (c *Canvas) SetTransform(a, b, cc, d, e, f float64) {
	if !finite(a, b, cc, d, e, f) {
		return
	}
	c.state.transform = Matrix{A: a, B: b, C: cc, D: d, E: e, F: f}
}

// ResetTransform sets the current transform back to identity
// .
func (c *Canvas) ResetTransform() {
	c.state.transform = Identity()
}

// Translate, Scale and Rotate are convenience right-multiplications.
func (c *Canvas) Translate(x, y float64) {
	c.state.transform = c.state.transform.Multiply(Translate(x, y))
}
func (c *Canvas) Scale(x, y float64)   { c.state.transform = c.state.transform.Multiply(Scale(x, y)) }
func (c *Canvas) Rotate(angle float64) { c.state.transform = c.state.transform.Multiply(Rotate(angle)) }

// CurrentTransform returns the canvas's active transform.
func (c *Canvas) CurrentTransform() Matrix { return c.state.transform }

// --- Style setters -------------------------------------------------------

func (c *Canvas) SetFillStyle(p Paint)                       { c.state.fillPaint = p }
func (c *Canvas) SetStrokeStyle(p Paint)                     { c.state.strokePaint = p }
func (c *Canvas) SetFillRule(r FillRule)                     { c.state.fillRule = r }
func (c *Canvas) SetGlobalAlpha(a float64)                   { c.state.globalAlpha = clamp01(a) }
func (c *Canvas) SetGlobalCompositeOperation(op CompositeOp) { c.state.compositeOp = op }

func (c *Canvas) SetLineWidth(w float64) {
	if w > 0 {
		c.state.lineWidth = w
	}
}
func (c *Canvas) SetLineCap(lc LineCap)     { c.state.lineCap = lc }
func (c *Canvas) SetLineJoin(join LineJoin) { c.state.lineJoin = join }
func (c *Canvas) SetMiterLimit(limit float64) {
	if limit >= 1 {
		c.state.miterLimit = limit
	}
}

// SetLineDash installs a dash pattern; an empty slice restores solid
// strokes. A negative or non-finite entry invalidates the whole call
// and leaves the previous pattern in effect.
func (c *Canvas) SetLineDash(lengths []float64) {
	if len(lengths) == 0 {
		c.state.dash = nil
		return
	}
	for _, l := range lengths {
		if l < 0 || !finite(l) {
			return
		}
	}
	c.state.dash = NewDash(lengths...).WithOffset(c.state.dashOffset)
}
func (c *Canvas) LineDash() []float64 {
	if c.state.dash == nil {
		return nil
	}
	return append([]float64{}, c.state.dash.Array...)
}

// SetLineDashOffset sets the starting offset into the dash pattern. The
// offset is state in its own right: it survives SetLineDash(nil) and
// applies to whichever dash array is active later.
func (c *Canvas) SetLineDashOffset(offset float64) {
	if !finite(offset) {
		return
	}
	c.state.dashOffset = offset
	if c.state.dash != nil {
		c.state.dash = c.state.dash.WithOffset(offset)
	}
}
func (c *Canvas) LineDashOffset() float64 { return c.state.dashOffset }

// SetStroke applies an entire Stroke bundle (width, cap, join, miter
// limit, dash) to the canvas state in one call.
func (c *Canvas) SetStroke(s Stroke) {
	if s.Width > 0 {
		c.state.lineWidth = s.Width
	}
	c.state.lineCap = s.Cap
	c.state.lineJoin = s.Join
	if s.MiterLimit >= 1 {
		c.state.miterLimit = s.MiterLimit
	}
	if s.Dash == nil {
		c.state.dash = nil
	} else {
		c.state.dash = s.Dash.Clone()
		c.state.dashOffset = s.Dash.Offset
	}
}

// StrokeBundle returns the canvas's current line style as a Stroke.
func (c *Canvas) StrokeBundle() Stroke {
	s := Stroke{
		Width:      c.state.lineWidth,
		Cap:        c.state.lineCap,
		Join:       c.state.lineJoin,
		MiterLimit: c.state.miterLimit,
	}
	if c.state.dash != nil {
		s.Dash = c.state.dash.Clone()
	}
	return s
}

func (c *Canvas) SetShadowColor(col RGBA) { c.state.shadowColor = col.Premultiply() }
func (c *Canvas) SetShadowBlur(blur float64) {
	if blur >= 0 {
		c.state.shadowBlur = blur
	}
}
func (c *Canvas) SetShadowOffsetX(x float64) { c.state.shadowOffsetX = x }
func (c *Canvas) SetShadowOffsetY(y float64) { c.state.shadowOffsetY = y }

func (c *Canvas) SetFont(f *font.Font, size float64) {
	if size <= 0 || !finite(size) {
		return
	}
	c.state.font = f
	c.state.fontSize = size
}
func (c *Canvas) SetTextAlign(a TextAlign)       { c.state.textAlign = a }
func (c *Canvas) SetTextBaseline(b TextBaseline) { c.state.textBaseline = b }

// --- Path construction ---------------------------------------------------
//
// Every coordinate is transformed by the current CTM before being
// appended to the path buffer, so a
// path built across intervening transform changes bakes in whichever
// CTM was active at each call, exactly like the canvas it mirrors.

func (c *Canvas) tp(x, y float64) Point { return c.state.transform.TransformPoint(Pt(x, y)) }

// finite reports whether every value is a real number. Operations given
// a NaN or infinite coordinate are no-ops per the invalid-argument
// rule: the canvas state must stay unchanged.
func finite(vals ...float64) bool {
	for _, v := range vals {
		if !isFinite(v) {
			return false
		}
	}
	return true
}

func (c *Canvas) BeginPath() { c.path.BeginPath() }

func (c *Canvas) MoveTo(x, y float64) {
	if !finite(x, y) {
		return
	}
	p := c.tp(x, y)
	c.path.MoveTo(p.X, p.Y)
}

func (c *Canvas) LineTo(x, y float64) {
	if !finite(x, y) {
		return
	}
	p := c.tp(x, y)
	c.path.LineTo(p.X, p.Y)
}

func (c *Canvas) QuadraticCurveTo(cx, cy, x, y float64) {
	if !finite(cx, cy, x, y) {
		return
	}
	cp := c.tp(cx, cy)
	ep := c.tp(x, y)
	c.path.QuadraticTo(cp.X, cp.Y, ep.X, ep.Y)
}

func (c *Canvas) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !finite(c1x, c1y, c2x, c2y, x, y) {
		return
	}
	p1 := c.tp(c1x, c1y)
	p2 := c.tp(c2x, c2y)
	ep := c.tp(x, y)
	c.path.CubicTo(p1.X, p1.Y, p2.X, p2.Y, ep.X, ep.Y)
}

func (c *Canvas) ClosePath() { c.path.ClosePath() }

func (c *Canvas) Rect(x, y, w, h float64) {
	if !finite(x, y, w, h) {
		return
	}
	corners := [4]Point{c.tp(x, y), c.tp(x+w, y), c.tp(x+w, y+h), c.tp(x, y+h)}
	c.path.MoveTo(corners[0].X, corners[0].Y)
	c.path.LineTo(corners[1].X, corners[1].Y)
	c.path.LineTo(corners[2].X, corners[2].Y)
	c.path.LineTo(corners[3].X, corners[3].Y)
	c.path.ClosePath()
}

func (c *Canvas) ArcTo(x1, y1, x2, y2, r float64) {
	if !finite(x1, y1, x2, y2, r) {
		return
	}
	// ArcTo's tangent-circle construction needs the user-space points
	// and radius in the path's own (already device-projected) frame;
	// since the canvas transforms every point as it is appended, feed
	// it the already-transformed endpoints and a radius scaled by the
	// transform's averageScale (the square root of |det|).
	p1 := c.tp(x1, y1)
	p2 := c.tp(x2, y2)
	c.path.ArcTo(p1.X, p1.Y, p2.X, p2.Y, r*c.state.transform.averageScale())
}

// Arc appends the sweep from start to end around (x,y) in user space.
// The arc is built as cubic Bezier spans in user space and the control
// points are projected through the current transform before flattening;
// cubics are affine-invariant, so the device-space result is the exact
// image of the user-space circle under any transform, rotation and
// non-uniform scale included.
func (c *Canvas) Arc(x, y, r, start, end float64, ccw bool) {
	if !finite(x, y, r, start, end) || r < 0 {
		return
	}
	start, end = normalizeArcSweep(start, end, ccw)
	first := c.tp(x+r*math.Cos(start), y+r*math.Sin(start))
	if !c.path.hasCurrent || c.path.needsNewSubpath {
		c.path.MoveTo(first.X, first.Y)
	} else {
		c.path.LineTo(first.X, first.Y)
	}
	for _, span := range arcCubicSpans(x, y, r, start, end) {
		p1 := c.tp(span.P1.X, span.P1.Y)
		p2 := c.tp(span.P2.X, span.P2.Y)
		p3 := c.tp(span.P3.X, span.P3.Y)
		c.path.CubicTo(p1.X, p1.Y, p2.X, p2.Y, p3.X, p3.Y)
	}
}

// CurrentPath exposes the path under construction, mainly for Fill/Stroke
// internals and tests.
func (c *Canvas) CurrentPath() *Path { return c.path }

// --- Fill / Stroke --------------------------------------------------------

// Fill rasterizes the current path with the active fill paint, rule and
// clip, casting a drop shadow first when one is configured. A
// non-invertible current transform makes this a no-op.
func (c *Canvas) Fill() {
	c.fillPath(c.path, c.state.fillRule, c.state.fillPaint)
}

// fillPath fills an explicitly supplied path (already in device space)
// instead of the canvas's current path; used by text rendering.
func (c *Canvas) fillPath(p *Path, rule FillRule, paint Paint) {
	if !c.state.transform.Invertible() {
		return
	}
	op := c.state.compositeOp.internal()
	if b, ok := p.Bounds(); (!ok || c.boundsMissCanvas(b)) &&
		!op.ClearsOutsideSource() && !c.shadowActive() {
		return
	}
	segs := p.AsLineSegments()
	c.renderShadow(segs, rasterRule(rule))
	rows := raster.Rasterize(segs, c.width, c.height, rasterRule(rule))
	c.compositeRows(rows, c.drawPaint(paint))
}

// boundsMissCanvas reports whether the device-space rect lies entirely
// outside the pixel grid.
func (c *Canvas) boundsMissCanvas(b Rect) bool {
	return b.Max.X < 0 || b.Max.Y < 0 ||
		b.Min.X >= float64(c.width) || b.Min.Y >= float64(c.height)
}

// shadowActive reports whether the current state casts a shadow: a
// visible shadow color plus at least one of offset or blur.
func (c *Canvas) shadowActive() bool {
	return c.state.shadowColor.A > 0 &&
		(c.state.shadowOffsetX != 0 || c.state.shadowOffsetY != 0 || c.state.shadowBlur != 0)
}

// drawPaint binds paint to the current transform for this draw call:
// gradient and pattern geometry lives in user space and is mapped
// through the transform in effect when fill or stroke runs, not when
// the style was set.
func (c *Canvas) drawPaint(paint Paint) Paint {
	if _, ok := paint.(SolidPaint); ok {
		return paint
	}
	if c.state.transform.IsIdentity() {
		return paint
	}
	inv, ok := c.state.transform.Invert()
	if !ok {
		return Solid(Transparent)
	}
	return userSpacePaint{paint: paint, inv: inv}
}

// Stroke expands the current path into an outline with the active line
// style and fills that outline with the active stroke paint.
func (c *Canvas) Stroke() {
	if !c.state.transform.Invertible() {
		return
	}
	segs := c.strokeOutlineSegments(c.path)
	c.renderShadow(segs, raster.NonZero)
	rows := raster.Rasterize(segs, c.width, c.height, raster.NonZero)
	c.compositeRows(rows, c.drawPaint(c.state.strokePaint))
}

// FillRect fills the axis-aligned rectangle (x,y,w,h) in user space with
// the active fill paint, bypassing the current path.
func (c *Canvas) FillRect(x, y, w, h float64) {
	if !finite(x, y, w, h) {
		return
	}
	p := NewPath()
	corners := [4]Point{c.tp(x, y), c.tp(x+w, y), c.tp(x+w, y+h), c.tp(x, y+h)}
	p.MoveTo(corners[0].X, corners[0].Y)
	p.LineTo(corners[1].X, corners[1].Y)
	p.LineTo(corners[2].X, corners[2].Y)
	p.LineTo(corners[3].X, corners[3].Y)
	p.ClosePath()
	c.fillPath(p, FillRuleNonZero, c.state.fillPaint)
}

// StrokeRect strokes the axis-aligned rectangle (x,y,w,h) in user space
// with the active line style and stroke paint.
func (c *Canvas) StrokeRect(x, y, w, h float64) {
	if !finite(x, y, w, h) {
		return
	}
	if !c.state.transform.Invertible() {
		return
	}
	p := NewPath()
	corners := [4]Point{c.tp(x, y), c.tp(x+w, y), c.tp(x+w, y+h), c.tp(x, y+h)}
	p.MoveTo(corners[0].X, corners[0].Y)
	p.LineTo(corners[1].X, corners[1].Y)
	p.LineTo(corners[2].X, corners[2].Y)
	p.LineTo(corners[3].X, corners[3].Y)
	p.ClosePath()
	segs := c.strokeOutlineSegments(p)
	c.renderShadow(segs, raster.NonZero)
	rows := raster.Rasterize(segs, c.width, c.height, raster.NonZero)
	c.compositeRows(rows, c.drawPaint(c.state.strokePaint))
}

// ClearRect resets the axis-aligned rectangle (x,y,w,h) in user space to
// transparent black, ignoring clip, paint and composite operator
// .
func (c *Canvas) ClearRect(x, y, w, h float64) {
	if !finite(x, y, w, h) {
		return
	}
	if !c.state.transform.Invertible() {
		return
	}
	p := NewPath()
	corners := [4]Point{c.tp(x, y), c.tp(x+w, y), c.tp(x+w, y+h), c.tp(x, y+h)}
	p.MoveTo(corners[0].X, corners[0].Y)
	p.LineTo(corners[1].X, corners[1].Y)
	p.LineTo(corners[2].X, corners[2].Y)
	p.LineTo(corners[3].X, corners[3].Y)
	p.ClosePath()
	rows := raster.Rasterize(p.AsLineSegments(), c.width, c.height, raster.NonZero)
	for y, runs := range rows {
		for _, r := range runs {
			for x := r.X; x < r.X+r.Len; x++ {
				c.buf.Set(x, y, 0, 0, 0, 0)
			}
		}
	}
}

// IsPointInPath reports whether the user-space point (x,y) lies inside
// the current path under the active fill rule. A non-invertible
// transform makes every point report false.
func (c *Canvas) IsPointInPath(x, y float64) bool {
	if !c.state.transform.Invertible() {
		return false
	}
	p := c.tp(x, y)
	// Cheap reject against the path's conservative bounding box before
	// paying for a rasterization.
	if b, ok := c.path.Bounds(); !ok || !b.Expand(1).Contains(p) {
		return false
	}
	px, py := int(p.X), int(p.Y)
	if px < 0 || py < 0 {
		return false
	}
	return raster.CoverageAt(c.path.AsLineSegments(), px, py, rasterRule(c.state.fillRule)) > 0
}

func rasterRule(r FillRule) raster.FillRule {
	if r == FillRuleEvenOdd {
		return raster.EvenOdd
	}
	return raster.NonZero
}

// strokeOutlineSegments traces p with the active line style following
// the drawing model's stroke rule: the recorded device-space path is
// mapped back to user space through the inverse of the transform in
// effect now, dashed and expanded there (so line width and dash lengths
// are user-space units), and the outline is mapped forward to device
// space for the rasterizer. A transform change between building the
// path and stroking it therefore shears or scales the stroke geometry
// without moving the path.
func (c *Canvas) strokeOutlineSegments(p *Path) []raster.Segment {
	ctm := c.state.transform
	inv, ok := ctm.Invert()
	if !ok {
		return nil
	}

	style := istroke.Stroke{
		Width:      c.state.lineWidth,
		Cap:        istroke.LineCap(c.state.lineCap),
		Join:       istroke.LineJoin(c.state.lineJoin),
		MiterLimit: c.state.miterLimit,
	}
	expander := istroke.NewStrokeExpander(style)
	// The expander's tolerance is in its (user-space) input units; keep
	// the flattening error at 0.25 device pixels after the forward map.
	if s := ctm.averageScale(); s > 1 {
		expander.SetTolerance(0.25 / s)
	}

	var segs []raster.Segment
	strokeSubpath := func(points []Point, closed bool) {
		if len(points) < 2 {
			return
		}
		elements := make([]istroke.PathElement, 0, len(points)+1)
		elements = append(elements, istroke.MoveTo{Point: toStrokePoint(points[0])})
		for _, pt := range points[1:] {
			elements = append(elements, istroke.LineTo{Point: toStrokePoint(pt)})
		}
		if closed {
			elements = append(elements, istroke.Close{})
		}
		outline := expander.Expand(elements)
		segs = append(segs, strokeElementsToSegments(outline, ctm)...)
	}

	toUser := func(pts []Point) []Point {
		user := make([]Point, len(pts))
		for i, pt := range pts {
			user[i] = inv.TransformPoint(pt)
		}
		return user
	}

	dashed := c.state.dash != nil && c.state.dash.IsDashed()
	for _, sp := range p.Subpaths() {
		user := toUser(sp.Points)
		if dashed {
			for _, run := range c.state.dash.SplitPolyline(user, sp.Closed) {
				strokeSubpath(run, false)
			}
			continue
		}
		strokeSubpath(user, sp.Closed)
	}
	return segs
}

func toStrokePoint(p Point) istroke.Point { return istroke.Point{X: p.X, Y: p.Y} }

// strokeElementsToSegments converts the expander's user-space outline
// into device-space raster segments through ctm. Lines map point by
// point; the cubic arcs of round caps and joins map their control
// points (cubics are affine-invariant) and flatten in device space, so
// the chord error stays within the device-pixel tolerance.
func strokeElementsToSegments(elements []istroke.PathElement, ctm Matrix) []raster.Segment {
	var segs []raster.Segment
	var start, cur Point
	var have bool
	emit := func(p Point) {
		if have {
			segs = append(segs, raster.Segment{A: raster.Point{X: cur.X, Y: cur.Y}, B: raster.Point{X: p.X, Y: p.Y}})
		}
		cur = p
	}
	dev := func(p istroke.Point) Point { return ctm.TransformPoint(Pt(p.X, p.Y)) }
	for _, el := range elements {
		switch e := el.(type) {
		case istroke.MoveTo:
			cur = dev(e.Point)
			start = cur
			have = true
		case istroke.LineTo:
			emit(dev(e.Point))
		case istroke.QuadTo:
			for _, pt := range FlattenQuadratic(cur, dev(e.Control), dev(e.Point)) {
				emit(pt)
			}
		case istroke.CubicTo:
			for _, pt := range FlattenCubic(cur, dev(e.Control1), dev(e.Control2), dev(e.Point)) {
				emit(pt)
			}
		case istroke.Close:
			if have && cur != start {
				segs = append(segs, raster.Segment{A: raster.Point{X: cur.X, Y: cur.Y}, B: raster.Point{X: start.X, Y: start.Y}})
			}
			cur = start
		}
	}
	return segs
}

// renderShadow composites a blurred, offset, colorized silhouette of
// segs underneath the eventual source draw, when a shadow is configured
// . A fully transparent shadow color, or a zero blur together
// with zero offsets, makes this a no-op.
func (c *Canvas) renderShadow(segs []raster.Segment, rule raster.FillRule) {
	if c.state.shadowColor.A <= 0 {
		return
	}
	if c.state.shadowOffsetX == 0 && c.state.shadowOffsetY == 0 && c.state.shadowBlur == 0 {
		return
	}
	shadowBuf := ifilter.Render(segs, c.width, c.height, c.state.shadowOffsetX, c.state.shadowOffsetY,
		iblend.RGBA{R: c.state.shadowColor.R, G: c.state.shadowColor.G, B: c.state.shadowColor.B, A: c.state.shadowColor.A},
		c.state.shadowBlur, rule)
	op := c.state.compositeOp.internal()
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			sr, sg, sb, sa := shadowBuf.At(x, y)
			if sa <= 0 {
				continue
			}
			coverage := sa * c.state.globalAlpha * c.clipAt(x, y)
			if coverage <= 0 {
				continue
			}
			src := iblend.RGBA{R: sr, G: sg, B: sb, A: sa}
			dr, dg, db, da := c.buf.At(x, y)
			dst := iblend.RGBA{R: dr, G: dg, B: db, A: da}
			out := iblend.CompositeCoverage(op, src, dst, coverage)
			c.buf.Set(x, y, out.R, out.G, out.B, out.A)
		}
	}
}

// clipAt returns the clip mask's coverage at (x,y) in [0,1]; a nil clip
// means fully opaque everywhere.
func (c *Canvas) clipAt(x, y int) float64 {
	if c.state.clip == nil {
		return 1
	}
	return float64(c.state.clip.At(x, y)) / 255.0
}

// compositeRows applies paint through the active composite operator at
// every rasterized run, scaled by global alpha and the clip mask. For
// operators that can clear pixels outside the source's coverage, the
// whole canvas is iterated instead of just the runs.
func (c *Canvas) compositeRows(rows [][]Run, paint Paint) {
	op := c.state.compositeOp.internal()
	if op.ClearsOutsideSource() {
		covered := make([]bool, c.width*c.height)
		for y, runs := range rows {
			for _, r := range runs {
				for x := r.X; x < r.X+r.Len; x++ {
					covered[y*c.width+x] = true
					c.compositeOne(x, y, r.Coverage, paint, op)
				}
			}
		}
		for y := 0; y < c.height; y++ {
			for x := 0; x < c.width; x++ {
				if !covered[y*c.width+x] {
					c.compositeOne(x, y, 0, paint, op)
				}
			}
		}
		return
	}
	for y, runs := range rows {
		for _, r := range runs {
			for x := r.X; x < r.X+r.Len; x++ {
				c.compositeOne(x, y, r.Coverage, paint, op)
			}
		}
	}
}

func (c *Canvas) compositeOne(x, y int, coverage float64, paint Paint, op iblend.Op) {
	coverage *= c.state.globalAlpha * c.clipAt(x, y)
	col := paint.ColorAt(float64(x)+0.5, float64(y)+0.5)
	src := iblend.RGBA{R: col.R, G: col.G, B: col.B, A: col.A}
	dr, dg, db, da := c.buf.At(x, y)
	dst := iblend.RGBA{R: dr, G: dg, B: db, A: da}
	out := iblend.CompositeCoverage(op, src, dst, coverage)
	c.buf.Set(x, y, out.R, out.G, out.B, out.A)
}

// Run is a type alias exposed so helper code in other canvas_*.go files
// can spell raster.Run without importing internal/raster directly.
type Run = raster.Run
