package raster

import "testing"

func square(x0, y0, x1, y1 float64) []Segment {
	a := Point{x0, y0}
	b := Point{x1, y0}
	c := Point{x1, y1}
	d := Point{x0, y1}
	return []Segment{{a, b}, {b, c}, {c, d}, {d, a}}
}

func sumCoverage(rows [][]Run) float64 {
	var total float64
	for _, row := range rows {
		for _, r := range row {
			total += r.Coverage * float64(r.Len)
		}
	}
	return total
}

func TestRasterizeFullCanvasRectangle(t *testing.T) {
	rows := Rasterize(square(0, 0, 8, 8), 8, 8, NonZero)
	for y := 0; y < 8; y++ {
		if len(rows[y]) != 1 {
			t.Fatalf("row %d: want 1 run, got %d", y, len(rows[y]))
		}
		r := rows[y][0]
		if r.X != 0 || r.Len != 8 || r.Coverage < 0.999 {
			t.Fatalf("row %d: unexpected run %+v", y, r)
		}
	}
}

func TestRasterizeNoPixelLeak(t *testing.T) {
	// A closed rectangle's total coverage should equal its area.
	rows := Rasterize(square(2, 2, 6, 5), 10, 10, NonZero)
	got := sumCoverage(rows)
	want := 4.0 * 3.0
	if diff := got - want; diff > 0.05 || diff < -0.05 {
		t.Fatalf("area mismatch: got %v want %v", got, want)
	}
}

func TestRasterizeDuplicateEdgeCancels(t *testing.T) {
	segs := square(1, 1, 5, 5)
	// Append the same loop traversed in reverse: every edge direction
	// cancels, so total signed coverage must be zero everywhere.
	rev := []Segment{
		{segs[3].B, segs[3].A},
		{segs[2].B, segs[2].A},
		{segs[1].B, segs[1].A},
		{segs[0].B, segs[0].A},
	}
	all := append(append([]Segment{}, segs...), rev...)
	rows := Rasterize(all, 8, 8, NonZero)
	if got := sumCoverage(rows); got > 1e-9 {
		t.Fatalf("expected zero coverage from cancelling edges, got %v", got)
	}
}

func TestRasterizeHorizontalEdgeContributesNothing(t *testing.T) {
	segs := []Segment{{Point{0, 2}, Point{5, 2}}}
	rows := Rasterize(segs, 8, 8, NonZero)
	if got := sumCoverage(rows); got != 0 {
		t.Fatalf("horizontal-only segment should contribute zero coverage, got %v", got)
	}
}

func TestCoverageAtInsideOutside(t *testing.T) {
	segs := square(2, 2, 6, 6)
	if c := CoverageAt(segs, 3, 3, NonZero); c < 0.99 {
		t.Fatalf("expected full coverage inside rectangle, got %v", c)
	}
	if c := CoverageAt(segs, 0, 0, NonZero); c != 0 {
		t.Fatalf("expected zero coverage outside rectangle, got %v", c)
	}
}

func TestRasterizeEdgesLeavingTopBottomBalance(t *testing.T) {
	// A rectangle whose top and bottom both lie outside [0,height) must
	// still balance: full column coverage throughout the visible strip.
	rows := Rasterize(square(1, -10, 5, 20), 8, 8, NonZero)
	for y := 0; y < 8; y++ {
		found := false
		for _, r := range rows[y] {
			if r.X <= 1 && r.X+r.Len >= 5 && r.Coverage > 0.99 {
				found = true
			}
		}
		if !found {
			t.Fatalf("row %d: expected full coverage across [1,5)", y)
		}
	}
}
