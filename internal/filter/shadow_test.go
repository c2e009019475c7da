package filter

import (
	"testing"

	iblend "github.com/anselm-rasterizer/canvas2d/internal/blend"
	"github.com/anselm-rasterizer/canvas2d/internal/raster"
)

func rectSegs(x0, y0, x1, y1 float64) []raster.Segment {
	a := raster.Point{X: x0, Y: y0}
	b := raster.Point{X: x1, Y: y0}
	c := raster.Point{X: x1, Y: y1}
	d := raster.Point{X: x0, Y: y1}
	return []raster.Segment{{A: a, B: b}, {B: c, A: b}, {A: c, B: d}, {A: d, B: a}}
}

func TestRenderShadowOffsetShiftsMask(t *testing.T) {
	segs := rectSegs(2, 2, 4, 4)
	color := iblend.RGBA{R: 0, G: 0, B: 0, A: 1}

	noOffset := Render(segs, 10, 10, 0, 0, color, 0, raster.NonZero)
	if _, _, _, a := noOffset.At(3, 3); a < 0.9 {
		t.Fatalf("expected opaque shadow inside source rect, got %v", a)
	}

	shifted := Render(segs, 10, 10, 3, 0, color, 0, raster.NonZero)
	if _, _, _, a := shifted.At(3, 3); a > 0.1 {
		t.Fatalf("expected shifted shadow to vacate original rect, got %v", a)
	}
	if _, _, _, a := shifted.At(6, 3); a < 0.9 {
		t.Fatalf("expected shifted shadow to cover new location, got %v", a)
	}
}

func TestRenderShadowBlurSoftensEdge(t *testing.T) {
	segs := rectSegs(3, 3, 7, 7)
	color := iblend.RGBA{R: 1, G: 1, B: 1, A: 1}

	sharp := Render(segs, 10, 10, 0, 0, color, 0, raster.NonZero)
	blurred := Render(segs, 10, 10, 0, 0, color, 6, raster.NonZero)

	// (2,5) is the pixel just outside the rect's left edge.
	_, _, _, sharpEdge := sharp.At(2, 5)
	_, _, _, blurEdge := blurred.At(2, 5)
	if blurEdge <= sharpEdge {
		t.Fatalf("expected blur to raise coverage at the hard edge: sharp=%v blurred=%v", sharpEdge, blurEdge)
	}
}
