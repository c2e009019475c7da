package font

// SegmentOp identifies the kind of drawing instruction in a glyph
// Outline, grounded on the Segment/SegmentOp shape used throughout the
// TrueType outline readers in the example corpus.
type SegmentOp int

const (
	SegmentMoveTo SegmentOp = iota
	SegmentLineTo
	SegmentQuadTo
)

// SegmentPoint is a single (x, y) control or end point in font units.
type SegmentPoint struct {
	X, Y float64
}

// Segment is one drawing instruction of a glyph outline. QuadTo uses
// Args[0] as the control point and Args[1] as the end point; the
// others use only Args[0].
type Segment struct {
	Op   SegmentOp
	Args [2]SegmentPoint
}

const maxCompositeDepth = 32

// Outline returns the glyph's contours as a flat instruction list in
// font units (y-up, origin at the glyph's own baseline origin). An
// out-of-range or missing glyph yields an empty outline, not an error.
func (f *Font) Outline(gid uint16) ([]Segment, error) {
	return f.outlineDepth(gid, 0)
}

func (f *Font) outlineDepth(gid uint16, depth int) ([]Segment, error) {
	if depth > maxCompositeDepth {
		return nil, ErrInvalidFont
	}
	i := int(gid)
	if i < 0 || i+1 >= len(f.loca) {
		return nil, nil
	}
	start, end := f.loca[i], f.loca[i+1]
	if start >= end {
		return nil, nil
	}
	glyfTbl, err := f.table(tagGlyf)
	if err != nil {
		return nil, err
	}
	g, err := bytesAt(glyfTbl, int(start), int(end-start))
	if err != nil {
		return nil, err
	}
	if len(g) < 10 {
		return nil, ErrInvalidFont
	}
	numContours, err := i16At(g, 0)
	if err != nil {
		return nil, err
	}
	if numContours >= 0 {
		return decodeSimpleGlyph(g, int(numContours))
	}
	return f.decodeCompositeGlyph(g, depth)
}

func decodeSimpleGlyph(g []byte, numContours int) ([]Segment, error) {
	pos := 10
	endPts := make([]int, numContours)
	for i := 0; i < numContours; i++ {
		v, err := u16At(g, pos)
		if err != nil {
			return nil, err
		}
		endPts[i] = int(v)
		pos += 2
	}
	if numContours == 0 {
		return nil, nil
	}
	numPoints := endPts[numContours-1] + 1

	insLen, err := u16At(g, pos)
	if err != nil {
		return nil, err
	}
	pos += 2 + int(insLen)

	flags := make([]byte, 0, numPoints)
	for len(flags) < numPoints {
		if pos >= len(g) {
			return nil, ErrInvalidFont
		}
		fl := g[pos]
		pos++
		flags = append(flags, fl)
		if fl&0x08 != 0 {
			if pos >= len(g) {
				return nil, ErrInvalidFont
			}
			repeat := int(g[pos])
			pos++
			for r := 0; r < repeat && len(flags) < numPoints; r++ {
				flags = append(flags, fl)
			}
		}
	}

	xs := make([]int, numPoints)
	x := 0
	for i := 0; i < numPoints; i++ {
		fl := flags[i]
		switch {
		case fl&0x02 != 0:
			if pos >= len(g) {
				return nil, ErrInvalidFont
			}
			d := int(g[pos])
			pos++
			if fl&0x10 == 0 {
				d = -d
			}
			x += d
		case fl&0x10 == 0:
			d, err := i16At(g, pos)
			if err != nil {
				return nil, err
			}
			pos += 2
			x += int(d)
		}
		xs[i] = x
	}

	ys := make([]int, numPoints)
	y := 0
	for i := 0; i < numPoints; i++ {
		fl := flags[i]
		switch {
		case fl&0x04 != 0:
			if pos >= len(g) {
				return nil, ErrInvalidFont
			}
			d := int(g[pos])
			pos++
			if fl&0x20 == 0 {
				d = -d
			}
			y += d
		case fl&0x20 == 0:
			d, err := i16At(g, pos)
			if err != nil {
				return nil, err
			}
			pos += 2
			y += int(d)
		}
		ys[i] = y
	}

	var segs []Segment
	start := 0
	for _, end := range endPts {
		contour := contourSegments(flags[start:end+1], xs[start:end+1], ys[start:end+1])
		segs = append(segs, contour...)
		start = end + 1
	}
	return segs, nil
}

// contourSegments turns one contour's on/off-curve point run into
// MoveTo/LineTo/QuadTo instructions, inserting the implied on-curve
// midpoint between two consecutive off-curve points.
func contourSegments(flags []byte, xs, ys []int) []Segment {
	n := len(flags)
	if n == 0 {
		return nil
	}
	onCurve := func(i int) bool { return flags[i%n]&0x01 != 0 }
	pt := func(i int) SegmentPoint {
		i = i % n
		return SegmentPoint{X: float64(xs[i]), Y: float64(ys[i])}
	}
	mid := func(a, b SegmentPoint) SegmentPoint {
		return SegmentPoint{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	}

	startIdx := -1
	for i := 0; i < n; i++ {
		if onCurve(i) {
			startIdx = i
			break
		}
	}
	var startPt SegmentPoint
	if startIdx == -1 {
		// All off-curve: synthesize a start at the midpoint of the first pair.
		startPt = mid(pt(0), pt(1))
		startIdx = 0
	} else {
		startPt = pt(startIdx)
	}

	segs := []Segment{{Op: SegmentMoveTo, Args: [2]SegmentPoint{startPt}}}
	cur := startPt
	var pendingCtrl *SegmentPoint

	emitLine := func(to SegmentPoint) {
		segs = append(segs, Segment{Op: SegmentLineTo, Args: [2]SegmentPoint{to}})
		cur = to
	}
	emitQuad := func(ctrl, to SegmentPoint) {
		segs = append(segs, Segment{Op: SegmentQuadTo, Args: [2]SegmentPoint{ctrl, to}})
		cur = to
	}

	for k := 1; k <= n; k++ {
		i := startIdx + k
		on := onCurve(i)
		p := pt(i)
		if on {
			if pendingCtrl != nil {
				emitQuad(*pendingCtrl, p)
				pendingCtrl = nil
			} else {
				emitLine(p)
			}
			continue
		}
		if pendingCtrl == nil {
			pendingCtrl = &p
			continue
		}
		implied := mid(*pendingCtrl, p)
		emitQuad(*pendingCtrl, implied)
		pendingCtrl = &p
	}
	if pendingCtrl != nil {
		emitQuad(*pendingCtrl, startPt)
	} else if cur != startPt {
		emitLine(startPt)
	}
	return segs
}

const (
	compArgsAreWords   = 0x0001
	compArgsAreXY      = 0x0002
	compHaveScale      = 0x0008
	compMoreComponents = 0x0020
	compHaveXYScale    = 0x0040
	compHaveTwoByTwo   = 0x0080
)

func (f *Font) decodeCompositeGlyph(g []byte, depth int) ([]Segment, error) {
	pos := 10
	var segs []Segment
	for {
		flags, err := u16At(g, pos)
		if err != nil {
			return nil, err
		}
		pos += 2
		compGID, err := u16At(g, pos)
		if err != nil {
			return nil, err
		}
		pos += 2

		var dx, dy float64
		if flags&compArgsAreWords != 0 {
			if flags&compArgsAreXY != 0 {
				a0, err := i16At(g, pos)
				if err != nil {
					return nil, err
				}
				a1, err := i16At(g, pos+2)
				if err != nil {
					return nil, err
				}
				dx, dy = float64(a0), float64(a1)
			}
			pos += 4
		} else {
			if flags&compArgsAreXY != 0 && pos+2 <= len(g) {
				dx = float64(int8(g[pos]))
				dy = float64(int8(g[pos+1]))
			}
			pos += 2
		}

		a, b, c, d := 1.0, 0.0, 0.0, 1.0
		readF2Dot14 := func(off int) (float64, error) {
			v, err := i16At(g, off)
			if err != nil {
				return 0, err
			}
			return float64(v) / 16384.0, nil
		}
		switch {
		case flags&compHaveTwoByTwo != 0:
			var err error
			if a, err = readF2Dot14(pos); err != nil {
				return nil, err
			}
			if b, err = readF2Dot14(pos + 2); err != nil {
				return nil, err
			}
			if c, err = readF2Dot14(pos + 4); err != nil {
				return nil, err
			}
			if d, err = readF2Dot14(pos + 6); err != nil {
				return nil, err
			}
			pos += 8
		case flags&compHaveXYScale != 0:
			var err error
			if a, err = readF2Dot14(pos); err != nil {
				return nil, err
			}
			if d, err = readF2Dot14(pos + 2); err != nil {
				return nil, err
			}
			pos += 4
		case flags&compHaveScale != 0:
			v, err := readF2Dot14(pos)
			if err != nil {
				return nil, err
			}
			a, d = v, v
			pos += 2
		}

		sub, err := f.outlineDepth(compGID, depth+1)
		if err != nil {
			return nil, err
		}
		for _, s := range sub {
			transformed := s
			for i := range transformed.Args {
				p := s.Args[i]
				transformed.Args[i] = SegmentPoint{
					X: a*p.X + c*p.Y + dx,
					Y: b*p.X + d*p.Y + dy,
				}
			}
			segs = append(segs, transformed)
		}

		if flags&compMoreComponents == 0 {
			break
		}
	}
	return segs, nil
}
