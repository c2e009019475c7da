package gg

import (
	"github.com/anselm-rasterizer/canvas2d/internal/raster"
)

// DrawImage resamples the w×h sRGB8 RGBA source (row stride in bytes)
// into the destination rectangle (dx,dy,dw,dh) in user space, treating
// it as a no-repeat pattern and compositing it with the active
// composite operator, global alpha and clip.
// A nil src, zero dw/dh, or a non-invertible transform make this a
// no-op; negative dw/dh flip the image.
func (c *Canvas) DrawImage(src []byte, w, h, stride int, dx, dy, dw, dh float64) {
	if src == nil || w <= 0 || h <= 0 || dw == 0 || dh == 0 {
		return
	}
	if !c.state.transform.Invertible() {
		return
	}
	// Pattern space is user space: one image pixel covers dw/w by dh/h
	// user units at (dx,dy). drawPaint maps device samples back through
	// the CTM, so the image follows the transform like any paint.
	local := Translate(dx, dy).Multiply(Scale(dw/float64(w), dh/float64(h)))
	pattern := NewPatternFromSRGB8(src, w, h, stride, RepeatNone, local)

	dst := NewPath()
	corners := [4]Point{
		c.tp(dx, dy), c.tp(dx+dw, dy), c.tp(dx+dw, dy+dh), c.tp(dx, dy+dh),
	}
	dst.MoveTo(corners[0].X, corners[0].Y)
	dst.LineTo(corners[1].X, corners[1].Y)
	dst.LineTo(corners[2].X, corners[2].Y)
	dst.LineTo(corners[3].X, corners[3].Y)
	dst.ClosePath()

	rows := raster.Rasterize(dst.AsLineSegments(), c.width, c.height, raster.NonZero)
	c.compositeRows(rows, c.drawPaint(pattern))
}

// PutImageData writes the w×h sRGB8 RGBA source (row stride in bytes)
// directly into the canvas buffer at (dx,dy), converting each color
// channel through the forward sRGB-to-linear table but NOT
// premultiplying by alpha — it bypasses the compositor, clip and
// transform entirely, clipping only to canvas bounds. A nil src is a no-op.
func (c *Canvas) PutImageData(src []byte, w, h, stride int, dx, dy int) {
	if src == nil {
		return
	}
	for y := 0; y < h; y++ {
		cy := dy + y
		if cy < 0 || cy >= c.height {
			continue
		}
		row := y * stride
		for x := 0; x < w; x++ {
			cx := dx + x
			if cx < 0 || cx >= c.width {
				continue
			}
			i := row + x*4
			if i+3 >= len(src) {
				continue
			}
			lr := srgbToLinear(float64(src[i]) / 255.0)
			lg := srgbToLinear(float64(src[i+1]) / 255.0)
			lb := srgbToLinear(float64(src[i+2]) / 255.0)
			a := float64(src[i+3]) / 255.0
			c.buf.Set(cx, cy, lr, lg, lb, a)
		}
	}
}

// GetImageData samples the canvas's linear-premultiplied buffer at
// (sx,sy)..(sx+w,sy+h), unpremultiplies, inverse-sRGB-encodes, and
// writes sRGB8 RGBA into dst (row stride in bytes). Pixels outside the
// canvas come back as (0,0,0,0). A nil
// dst is a no-op.
func (c *Canvas) GetImageData(dst []byte, w, h, stride int, sx, sy int) {
	if dst == nil {
		return
	}
	for y := 0; y < h; y++ {
		cy := sy + y
		row := y * stride
		for x := 0; x < w; x++ {
			cx := sx + x
			i := row + x*4
			if i+3 >= len(dst) {
				continue
			}
			if cx < 0 || cx >= c.width || cy < 0 || cy >= c.height {
				dst[i], dst[i+1], dst[i+2], dst[i+3] = 0, 0, 0, 0
				continue
			}
			r, g, b, a := c.buf.At(cx, cy)
			col := RGBA{R: r, G: g, B: b, A: a}
			sr, sg, sb, sa := col.ToSRGB8()
			dst[i], dst[i+1], dst[i+2], dst[i+3] = sr, sg, sb, sa
		}
	}
}
