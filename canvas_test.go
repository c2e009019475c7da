package gg

import (
	"math"
	"testing"
)

// pixelAt reads back one canvas pixel as sRGB8 RGBA.
func pixelAt(c *Canvas, x, y int) [4]uint8 {
	var px [4]byte
	c.GetImageData(px[:], 1, 1, 4, x, y)
	return [4]uint8{px[0], px[1], px[2], px[3]}
}

func within(got, want uint8, tol int) bool {
	d := int(got) - int(want)
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func TestFillSolidRectangle(t *testing.T) {
	c := NewCanvas(256, 256)
	c.SetColor(FillStyle, 1, 0, 0, 1)
	c.FillRect(0, 0, 256, 256)

	for _, pt := range [][2]int{{0, 0}, {128, 128}, {255, 255}} {
		px := pixelAt(c, pt[0], pt[1])
		if px != [4]uint8{255, 0, 0, 255} {
			t.Fatalf("pixel %v = %v, want opaque red", pt, px)
		}
	}
}

func TestOpaqueOverTransparent(t *testing.T) {
	c := NewCanvas(256, 256)
	c.SetColor(FillStyle, 1, 0, 0, 1)
	c.FillRect(0, 0, 256, 256)
	c.SetColor(FillStyle, 0, 0, 1, 0.5)
	c.FillRect(0, 0, 256, 256)

	// Half blue over red in linear space leaves 0.5 linear in both
	// channels, which encodes to sRGB 188.
	px := pixelAt(c, 128, 128)
	if !within(px[0], 188, 2) || px[1] != 0 || !within(px[2], 188, 2) || px[3] != 255 {
		t.Fatalf("pixel = %v, want ~(188,0,188,255)", px)
	}
}

func TestClearSubRect(t *testing.T) {
	c := NewCanvas(256, 256)
	c.SetColor(FillStyle, 1, 0, 0, 1)
	c.FillRect(0, 0, 256, 256)
	c.ClearRect(64, 64, 128, 128)

	if px := pixelAt(c, 128, 128); px != [4]uint8{0, 0, 0, 0} {
		t.Fatalf("cleared pixel = %v, want transparent", px)
	}
	if px := pixelAt(c, 64, 64); px != [4]uint8{0, 0, 0, 0} {
		t.Fatalf("cleared corner = %v, want transparent", px)
	}
	if px := pixelAt(c, 63, 63); px != [4]uint8{255, 0, 0, 255} {
		t.Fatalf("outside pixel = %v, want red", px)
	}
	if px := pixelAt(c, 192, 192); px != [4]uint8{255, 0, 0, 255} {
		t.Fatalf("outside pixel = %v, want red", px)
	}
}

func TestStrokeRectangleWidthTwo(t *testing.T) {
	c := NewCanvas(256, 256)
	c.SetColor(StrokeStyle, 0, 0, 0, 1)
	c.SetLineWidth(2)
	c.StrokeRect(10, 10, 100, 100)

	// Frame pixels: the stroke spans [9,11) around each edge line.
	for _, pt := range [][2]int{{10, 60}, {60, 10}, {109, 60}, {60, 109}} {
		if px := pixelAt(c, pt[0], pt[1]); px[3] != 255 {
			t.Fatalf("frame pixel %v alpha = %d, want 255", pt, px[3])
		}
	}
	// Interior and exterior stay untouched.
	for _, pt := range [][2]int{{60, 60}, {5, 5}, {200, 200}} {
		if px := pixelAt(c, pt[0], pt[1]); px[3] != 0 {
			t.Fatalf("pixel %v alpha = %d, want 0", pt, px[3])
		}
	}
}

func TestDashedLine(t *testing.T) {
	c := NewCanvas(64, 4)
	c.SetColor(StrokeStyle, 0, 0, 0, 1)
	c.SetLineWidth(1)
	c.SetLineDash([]float64{4, 4})
	c.BeginPath()
	c.MoveTo(0, 0.5)
	c.LineTo(40, 0.5)
	c.Stroke()

	on := []int{1, 9, 17, 25, 33}
	off := []int{5, 13, 21, 29, 38}
	for _, x := range on {
		if px := pixelAt(c, x, 0); px[3] < 128 {
			t.Fatalf("on-dash pixel x=%d alpha = %d, want >=128", x, px[3])
		}
	}
	for _, x := range off {
		if px := pixelAt(c, x, 0); px[3] >= 128 {
			t.Fatalf("gap pixel x=%d alpha = %d, want <128", x, px[3])
		}
	}
}

func TestLinearGradientSample(t *testing.T) {
	c := NewCanvas(100, 1)
	c.SetLinearGradient(FillStyle, 0, 0, 100, 0)
	c.AddColorStop(FillStyle, 0, 1, 0, 0, 1)
	c.AddColorStop(FillStyle, 1, 0, 0, 1, 1)
	c.FillRect(0, 0, 100, 1)

	// Midpoint: t = 49.5/100 and 50.5/100 bracket 0.5; linear 0.5
	// encodes to sRGB 188.
	for _, x := range []int{49, 50} {
		px := pixelAt(c, x, 0)
		if !within(px[0], 188, 3) || !within(px[2], 188, 3) || px[3] != 255 {
			t.Fatalf("midpoint pixel x=%d = %v, want ~(188,0,188,255)", x, px)
		}
	}
	// Ends: first/last pixel centers sample t=0.005 and t=0.995.
	left := pixelAt(c, 0, 0)
	right := pixelAt(c, 99, 0)
	if left[0] < 250 || right[2] < 250 {
		t.Fatalf("gradient ends wrong: left=%v right=%v", left, right)
	}
}

func TestSourceCopyIdentity(t *testing.T) {
	c := NewCanvas(16, 16)
	c.SetColor(FillStyle, 0, 1, 0, 1)
	c.FillRect(0, 0, 16, 16)

	c.SetGlobalCompositeOperation(OpCopy)
	c.SetColor(FillStyle, 0.2, 0.4, 0.6, 0.8)
	c.FillRect(0, 0, 16, 16)

	want := RGBStraight(0.2, 0.4, 0.6, 0.8)
	px := pixelAt(c, 8, 8)
	wr, wg, wb, wa := want.ToSRGB8()
	if !within(px[0], wr, 1) || !within(px[1], wg, 1) || !within(px[2], wb, 1) || !within(px[3], wa, 1) {
		t.Fatalf("source_copy result %v, want (%d,%d,%d,%d)", px, wr, wg, wb, wa)
	}
}

func TestSourceCopyClearsOutsidePath(t *testing.T) {
	c := NewCanvas(32, 32)
	c.SetColor(FillStyle, 1, 0, 0, 1)
	c.FillRect(0, 0, 32, 32)

	c.SetGlobalCompositeOperation(OpCopy)
	c.SetColor(FillStyle, 0, 1, 0, 1)
	c.FillRect(8, 8, 8, 8)

	if px := pixelAt(c, 10, 10); px[1] != 255 {
		t.Fatalf("inside pixel = %v, want green", px)
	}
	// source_copy with zero coverage replaces the destination with
	// transparent black, everywhere outside the path too.
	if px := pixelAt(c, 30, 30); px != [4]uint8{0, 0, 0, 0} {
		t.Fatalf("outside pixel = %v, want transparent", px)
	}
}

func TestDestinationOutRestoresTransparency(t *testing.T) {
	c := NewCanvas(32, 32)
	c.SetColor(FillStyle, 1, 0, 0, 1)
	c.FillRect(4, 4, 24, 24)

	c.SetGlobalCompositeOperation(OpDestinationOut)
	c.FillRect(4, 4, 24, 24)

	for _, pt := range [][2]int{{4, 4}, {16, 16}, {27, 27}} {
		if px := pixelAt(c, pt[0], pt[1]); px != [4]uint8{0, 0, 0, 0} {
			t.Fatalf("pixel %v = %v, want transparent after destination_out", pt, px)
		}
	}
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	c := NewCanvas(8, 8)
	c.Translate(3, 4)
	c.SetLineWidth(5)
	c.SetLineDash([]float64{2, 2})
	c.SetLineDashOffset(1)
	c.SetGlobalAlpha(0.5)

	before := c.CurrentTransform()
	c.Save()
	c.Rotate(1.2)
	c.SetLineWidth(9)
	c.SetLineDash(nil)
	c.SetLineDashOffset(7)
	c.SetGlobalAlpha(0.1)
	c.Restore()

	if c.CurrentTransform() != before {
		t.Fatalf("transform not restored: %+v != %+v", c.CurrentTransform(), before)
	}
	if s := c.StrokeBundle(); s.Width != 5 || s.Dash == nil || s.Dash.Offset != 1 {
		t.Fatalf("line state not restored: %+v", s)
	}
	if c.LineDashOffset() != 1 {
		t.Fatalf("dash offset not restored: %v", c.LineDashOffset())
	}
}

func TestRestoreOnEmptyStackIsNoOp(t *testing.T) {
	c := NewCanvas(8, 8)
	c.Translate(1, 2)
	before := c.CurrentTransform()
	c.Restore()
	if c.CurrentTransform() != before {
		t.Fatal("restore with empty stack must not change state")
	}
}

func TestTransformRoundTrip(t *testing.T) {
	c := NewCanvas(8, 8)
	c.SetTransform(2, 0.5, -0.5, 2, 10, 20)
	before := c.CurrentTransform()
	c.Save()
	c.Transform(0.3, 0.1, -0.1, 0.3, 1, 1)
	c.Restore()
	if c.CurrentTransform() != before {
		t.Fatalf("transform not restored")
	}
	c.SetTransform(1, 0, 0, 1, 0, 0)
	if !c.CurrentTransform().IsIdentity() {
		t.Fatal("set_transform(identity) must reset the matrix")
	}
}

func TestClipMonotonicity(t *testing.T) {
	c := NewCanvas(64, 64)
	c.BeginPath()
	c.Rect(0, 0, 32, 64)
	c.Clip(FillRuleNonZero)
	c.BeginPath()
	c.Rect(0, 0, 64, 32)
	c.Clip(FillRuleNonZero)

	c.SetColor(FillStyle, 0, 0, 1, 1)
	c.FillRect(0, 0, 64, 64)

	if px := pixelAt(c, 10, 10); px[3] != 255 {
		t.Fatalf("intersection pixel = %v, want opaque", px)
	}
	// Inside the first clip but outside the second, and vice versa.
	if px := pixelAt(c, 10, 40); px[3] != 0 {
		t.Fatalf("pixel in first clip only = %v, want clipped out", px)
	}
	if px := pixelAt(c, 40, 10); px[3] != 0 {
		t.Fatalf("pixel in second clip only = %v, want clipped out", px)
	}
}

func TestGlobalAlphaScalesSource(t *testing.T) {
	c := NewCanvas(8, 8)
	c.SetGlobalAlpha(0.5)
	c.SetColor(FillStyle, 1, 1, 1, 1)
	c.FillRect(0, 0, 8, 8)

	px := pixelAt(c, 4, 4)
	if !within(px[3], 128, 1) {
		t.Fatalf("alpha = %d, want ~128 under global_alpha 0.5", px[3])
	}
}

func TestNonInvertibleTransformDrawsNothing(t *testing.T) {
	c := NewCanvas(16, 16)
	c.SetTransform(0, 0, 0, 0, 0, 0)
	c.SetColor(FillStyle, 1, 0, 0, 1)
	c.FillRect(0, 0, 16, 16)
	c.BeginPath()
	c.Rect(0, 0, 16, 16)
	if c.IsPointInPath(4, 4) {
		t.Fatal("is_point_in_path must be false under a non-invertible transform")
	}
	c.Fill()
	if px := pixelAt(c, 4, 4); px[3] != 0 {
		t.Fatalf("pixel = %v, want untouched", px)
	}
}

func TestIsPointInPath(t *testing.T) {
	c := NewCanvas(64, 64)
	c.BeginPath()
	c.Rect(10, 10, 20, 20)
	if !c.IsPointInPath(15, 15) {
		t.Fatal("point inside the rect must be in path")
	}
	if c.IsPointInPath(40, 40) {
		t.Fatal("point outside the rect must not be in path")
	}
}

func TestArcFillApproximatesCircleArea(t *testing.T) {
	c := NewCanvas(64, 64)
	c.BeginPath()
	c.Arc(32, 32, 20, 0, 2*math.Pi, false)
	c.ClosePath()
	c.SetColor(FillStyle, 0, 0, 0, 1)
	c.Fill()

	var buf [64 * 64 * 4]byte
	c.GetImageData(buf[:], 64, 64, 64*4, 0, 0)
	var area float64
	for i := 3; i < len(buf); i += 4 {
		area += float64(buf[i]) / 255.0
	}
	want := math.Pi * 20 * 20
	if math.Abs(area-want) > want*0.02 {
		t.Fatalf("circle area = %v, want ~%v", area, want)
	}
}

func TestShadowRendersOffset(t *testing.T) {
	c := NewCanvas(64, 64)
	c.SetShadowColor(RGBA{R: 0, G: 0, B: 0, A: 1})
	c.SetShadowOffsetX(10)
	c.SetShadowOffsetY(10)
	c.SetColor(FillStyle, 1, 0, 0, 1)
	c.FillRect(10, 10, 20, 20)

	// The shadow sits under the source, offset by (10,10): the band
	// just outside the square's bottom-right must be dark.
	if px := pixelAt(c, 35, 35); px[3] == 0 {
		t.Fatal("expected shadow coverage at (35,35)")
	}
	if px := pixelAt(c, 15, 15); px[0] != 255 {
		t.Fatalf("source pixel = %v, want red on top of shadow", px)
	}
	// Far corner stays untouched.
	if px := pixelAt(c, 60, 5); px[3] != 0 {
		t.Fatalf("pixel far from shape = %v, want transparent", px)
	}
}

func TestSetStrokeBundleRoundTrip(t *testing.T) {
	c := NewCanvas(8, 8)
	c.SetStroke(Stroke{
		Width:      3,
		Cap:        LineCapRound,
		Join:       LineJoinBevel,
		MiterLimit: 2,
		Dash:       NewDash(4, 2).WithOffset(1),
	})
	s := c.StrokeBundle()
	if s.Width != 3 || s.Cap != LineCapRound || s.Join != LineJoinBevel || s.MiterLimit != 2 {
		t.Fatalf("stroke bundle = %+v", s)
	}
	if s.Dash == nil || s.Dash.Offset != 1 || len(s.Dash.Array) != 2 {
		t.Fatalf("dash = %+v", s.Dash)
	}
}

func TestArcFollowsRotatedTransform(t *testing.T) {
	c := NewCanvas(64, 64)
	// Quarter-turn rotation about the origin, then recentered: device =
	// (-y+32, x+32). The user-space quarter arc from angle 0 to pi/2
	// must land at device angles pi/2..pi, not 0..pi/2.
	c.SetTransform(0, 1, -1, 0, 32, 32)
	c.BeginPath()
	c.Arc(0, 0, 20, 0, math.Pi/2, false)
	c.ClosePath()
	c.SetColor(FillStyle, 0, 0, 0, 1)
	c.Fill()

	// User point (12,12) lies inside the chord-closed segment; its
	// device image is (20,44).
	if px := pixelAt(c, 20, 44); px[3] == 0 {
		t.Fatal("expected the rotated arc segment to cover (20,44)")
	}
	// The unrotated segment's home quadrant must stay empty.
	if px := pixelAt(c, 44, 44); px[3] != 0 {
		t.Fatalf("pixel (44,44) = %v, want empty: arc ignored the rotation", px)
	}
}

func TestStrokeWidthFollowsTransform(t *testing.T) {
	c := NewCanvas(40, 16)
	c.Scale(4, 4)
	c.SetColor(StrokeStyle, 0, 0, 0, 1)
	c.SetLineWidth(2)
	c.BeginPath()
	c.MoveTo(0, 2)
	c.LineTo(8, 2)
	c.Stroke()

	// Line width 2 is user units: under scale 4 the band is 8 device
	// pixels tall, y in [4,12).
	for _, pt := range [][2]int{{16, 5}, {16, 10}} {
		if px := pixelAt(c, pt[0], pt[1]); px[3] != 255 {
			t.Fatalf("pixel %v alpha = %d, want opaque inside scaled stroke", pt, px[3])
		}
	}
	for _, pt := range [][2]int{{16, 2}, {16, 13}} {
		if px := pixelAt(c, pt[0], pt[1]); px[3] != 0 {
			t.Fatalf("pixel %v alpha = %d, want empty outside scaled stroke", pt, px[3])
		}
	}
}

func TestStrokeUsesTransformAtStrokeTime(t *testing.T) {
	c := NewCanvas(16, 32)
	c.SetColor(StrokeStyle, 0, 0, 0, 1)
	c.SetLineWidth(2)
	c.BeginPath()
	c.MoveTo(8, 2)
	c.LineTo(8, 30)
	// Changing the transform after building the path leaves the path
	// where it is, but the stroke expansion happens in the new user
	// space: width 2 at x-scale 2 covers device x in [6,10).
	c.Scale(2, 1)
	c.Stroke()

	if px := pixelAt(c, 6, 16); px[3] != 255 {
		t.Fatal("stroke must widen with the stroke-time transform")
	}
	if px := pixelAt(c, 9, 16); px[3] != 255 {
		t.Fatal("stroke must widen symmetrically")
	}
	for _, pt := range [][2]int{{5, 16}, {10, 16}} {
		if px := pixelAt(c, pt[0], pt[1]); px[3] != 0 {
			t.Fatalf("pixel %v = %v, want empty outside the widened stroke", pt, px)
		}
	}
}

func TestPatternFollowsDrawTimeTransform(t *testing.T) {
	c := NewCanvas(4, 4)
	c.SetPattern(FillStyle, checker2x2(), 2, 2, 8, RepeatBoth)
	c.BeginPath()
	c.Rect(0, 0, 4, 4)
	// The path is already built; translating before the fill shifts the
	// pattern but not the rectangle.
	c.Translate(1, 0)
	c.Fill()

	// Device column 0 samples user x=-0.5, which wraps to the black
	// cell; column 1 samples user x=0.5, the white cell.
	black := pixelAt(c, 0, 0)
	white := pixelAt(c, 1, 0)
	if black[3] != 255 || white[3] != 255 {
		t.Fatalf("pattern fill must cover the whole rect: %v %v", black, white)
	}
	if black[0] > 64 || white[0] < 192 {
		t.Fatalf("pattern did not follow the draw-time transform: col0=%v col1=%v", black, white)
	}
}

func TestSetLineDashRejectsNegative(t *testing.T) {
	c := NewCanvas(8, 8)
	c.SetLineDash([]float64{4, 4})
	c.SetLineDash([]float64{20, -8})
	if got := c.LineDash(); len(got) != 2 || got[0] != 4 || got[1] != 4 {
		t.Fatalf("negative dash entry must invalidate the call, got %v", got)
	}
	c.SetLineDash(nil)
	if c.LineDash() != nil {
		t.Fatal("empty dash list must restore solid strokes")
	}
}

func TestInvalidArgumentsAreNoOps(t *testing.T) {
	c := NewCanvas(16, 16)
	nan := math.NaN()

	c.SetColor(FillStyle, 1, 0, 0, 1)
	c.BeginPath()
	c.MoveTo(nan, 0)
	c.LineTo(math.Inf(1), 4)
	c.Arc(4, 4, -1, 0, 1, false)
	c.ArcTo(1, 1, 2, 2, -5)
	c.Fill()
	if px := pixelAt(c, 4, 4); px[3] != 0 {
		t.Fatalf("non-finite/negative-radius inputs must draw nothing, got %v", px)
	}

	c.SetLineWidth(-3)
	c.SetMiterLimit(0.5)
	c.SetGlobalAlpha(2)
	s := c.StrokeBundle()
	if s.Width != 1 || s.MiterLimit != 10 {
		t.Fatalf("invalid line parameters must be ignored: %+v", s)
	}
}
