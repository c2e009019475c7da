package gg

import "math"

// Dash defines a dash pattern for stroking.
// A dash pattern consists of alternating dash and gap lengths.
// For example, [5, 3] creates a pattern of 5 units dash, 3 units gap.
type Dash struct {
	// Array contains alternating dash/gap lengths.
	// If the array has an odd number of elements, it is logically duplicated
	// to create an even-length pattern (e.g., [5] becomes [5, 5]).
	Array []float64

	// Offset is the starting offset into the pattern.
	// The stroke begins at this point in the pattern cycle.
	Offset float64
}

// NewDash creates a dash pattern from alternating dash/gap lengths.
// If an odd number of elements is provided, the pattern is conceptually
// duplicated to create an even-length pattern.
//
// Examples:
//
//	NewDash(5, 3)       // 5 units dash, 3 units gap
//	NewDash(10, 5, 2, 5) // 10 dash, 5 gap, 2 dash, 5 gap
//	NewDash(5)          // equivalent to [5, 5]
//
// Returns nil if no lengths are provided or none of them is positive.
func NewDash(lengths ...float64) *Dash {
	if len(lengths) == 0 {
		return nil
	}

	// Check if all values are zero or negative
	allZeroOrNeg := true
	for _, l := range lengths {
		if l > 0 {
			allZeroOrNeg = false
			break
		}
	}
	if allZeroOrNeg {
		return nil
	}

	// Take absolute values for any negative lengths
	normalized := make([]float64, len(lengths))
	for i, l := range lengths {
		normalized[i] = math.Abs(l)
	}

	return &Dash{
		Array:  normalized,
		Offset: 0,
	}
}

// WithOffset returns a new Dash with the given offset.
// The offset determines where in the pattern the stroke begins.
func (d *Dash) WithOffset(offset float64) *Dash {
	if d == nil {
		return nil
	}
	return &Dash{
		Array:  d.Array,
		Offset: offset,
	}
}

// PatternLength returns the total length of one complete pattern cycle.
// For odd-length arrays, this includes the duplicated pattern.
func (d *Dash) PatternLength() float64 {
	if d == nil || len(d.Array) == 0 {
		return 0
	}

	var total float64
	for _, l := range d.Array {
		total += l
	}

	// If odd number of elements, pattern is duplicated
	if len(d.Array)%2 != 0 {
		total *= 2
	}

	return total
}

// IsDashed returns true if this represents a dashed line (not solid).
// Returns false for nil Dash or empty/all-zero arrays.
func (d *Dash) IsDashed() bool {
	if d == nil || len(d.Array) == 0 {
		return false
	}

	// Check if any dash has positive length
	for _, l := range d.Array {
		if l > 0 {
			return true
		}
	}
	return false
}

// Clone creates a deep copy of the Dash.
func (d *Dash) Clone() *Dash {
	if d == nil {
		return nil
	}

	arrayCopy := make([]float64, len(d.Array))
	copy(arrayCopy, d.Array)

	return &Dash{
		Array:  arrayCopy,
		Offset: d.Offset,
	}
}

// NormalizedOffset returns the offset normalized to be within one pattern cycle.
// This is useful for calculating where in the pattern a stroke should begin.
func (d *Dash) NormalizedOffset() float64 {
	if d == nil {
		return 0
	}

	patternLen := d.PatternLength()
	if patternLen <= 0 {
		return 0
	}

	offset := math.Mod(d.Offset, patternLen)
	if offset < 0 {
		offset += patternLen
	}
	return offset
}

// effectiveArray returns the array with odd-length arrays duplicated.
// This is used internally for pattern iteration.
func (d *Dash) effectiveArray() []float64 {
	if d == nil || len(d.Array) == 0 {
		return nil
	}

	if len(d.Array)%2 == 0 {
		return d.Array
	}

	// Duplicate for odd-length arrays
	result := make([]float64, len(d.Array)*2)
	copy(result, d.Array)
	copy(result[len(d.Array):], d.Array)
	return result
}

// SplitPolyline walks one flattened polyline by arc length and splits
// it into the dash pattern's "on" portions: the walk starts at the
// normalized offset into the (possibly doubled) dash array and restarts
// at the beginning of the array for every polyline. A closed polyline
// is walked as if an explicit line segment closed it back to its start
// point.
func (d *Dash) SplitPolyline(pts []Point, closed bool) [][]Point {
	arr := d.effectiveArray()
	if len(arr) == 0 || len(pts) < 2 {
		return nil
	}
	if closed && pts[len(pts)-1] != pts[0] {
		loop := make([]Point, len(pts)+1)
		copy(loop, pts)
		loop[len(pts)] = pts[0]
		pts = loop
	}
	return walkDash(pts, arr, d.NormalizedOffset())
}

// walkDash performs the arc-length dash walk over a single polyline,
// returning the "on" sub-polylines (including degenerate single-point
// "dots" for zero-length on-entries, left to the stroke expander's
// zero-length-segment handling to turn into caps).
func walkDash(pts []Point, arr []float64, startOffset float64) [][]Point {
	idx := 0
	rem := arr[0]
	remaining := startOffset
	for remaining > 0 {
		if remaining < rem {
			rem -= remaining
			break
		}
		remaining -= rem
		idx = (idx + 1) % len(arr)
		rem = arr[idx]
	}
	on := idx%2 == 0

	var segments [][]Point
	var cur []Point
	if on {
		cur = []Point{pts[0]}
	}

	advance := func(pt Point) {
		// Cycle through any zero-length pattern entries without
		// consuming arc length, bounded to avoid spinning forever on a
		// pattern that is entirely zero-length.
		for guard := 0; guard < len(arr)+1; guard++ {
			if on {
				if len(cur) == 1 {
					cur = append(cur, cur[0])
				}
				segments = append(segments, cur)
				cur = nil
			} else {
				cur = []Point{pt}
			}
			on = !on
			idx = (idx + 1) % len(arr)
			rem = arr[idx]
			if rem > 0 {
				return
			}
		}
	}

	for i := 0; i < len(pts)-1; i++ {
		a, b := pts[i], pts[i+1]
		segLen := a.Distance(b)
		if segLen < 1e-12 {
			continue
		}
		pos := 0.0
		for pos < segLen {
			step := math.Min(rem, segLen-pos)
			pos += step
			rem -= step
			pt := a.Lerp(b, pos/segLen)
			if on {
				cur = append(cur, pt)
			}
			if rem <= 1e-9 {
				advance(pt)
			}
		}
	}

	if on {
		if len(cur) > 1 {
			segments = append(segments, cur)
		} else if len(cur) == 1 {
			segments = append(segments, []Point{cur[0], cur[0]})
		}
	}
	return segments
}
