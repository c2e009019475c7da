package filter

import (
	iblend "github.com/anselm-rasterizer/canvas2d/internal/blend"
	iimage "github.com/anselm-rasterizer/canvas2d/internal/image"
	"github.com/anselm-rasterizer/canvas2d/internal/raster"
)

// Render implements spec.md §4.7's shadow pipeline: rasterize the
// source's coverage mask translated by (offsetX,offsetY), multiply by
// shadowColor (already linear premultiplied and clamped), and blur the
// result with a three-pass box filter approximating σ = blur/2. Returns
// a width×height linear-premultiplied buffer ready to be composited
// under the source.
func Render(segs []raster.Segment, width, height int, offsetX, offsetY float64, shadowColor iblend.RGBA, blurRadius float64, rule raster.FillRule) *iimage.Buf {
	buf := iimage.NewBuf(width, height)
	if width <= 0 || height <= 0 {
		return buf
	}

	shifted := make([]raster.Segment, len(segs))
	for i, s := range segs {
		shifted[i] = raster.Segment{
			A: raster.Point{X: s.A.X + offsetX, Y: s.A.Y + offsetY},
			B: raster.Point{X: s.B.X + offsetX, Y: s.B.Y + offsetY},
		}
	}

	rows := raster.Rasterize(shifted, width, height, rule)
	for y, runs := range rows {
		for _, r := range runs {
			for x := r.X; x < r.X+r.Len; x++ {
				c := r.Coverage
				buf.Set(x, y, shadowColor.R*c, shadowColor.G*c, shadowColor.B*c, shadowColor.A*c)
			}
		}
	}

	sigma := blurRadius / 2
	ThreePassBoxBlur(buf, BoxRadius(sigma))
	return buf
}
