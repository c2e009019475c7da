package gg

import "github.com/anselm-rasterizer/canvas2d/internal/raster"

// Clip intersects the current clip mask with the current path's
// rasterized coverage under rule, replacing the canvas's clip for all
// subsequent drawing until the enclosing save is restored. A non-invertible transform clips out
// everything, matching is_point_in_path's behavior under the same
// condition.
func (c *Canvas) Clip(rule FillRule) {
	next := NewMask(c.width, c.height)
	if !c.state.transform.Invertible() {
		c.state.clip = next
		return
	}
	rows := raster.Rasterize(c.path.AsLineSegments(), c.width, c.height, rasterRule(rule))
	for y, runs := range rows {
		for _, r := range runs {
			cov := uint8(clamp01(r.Coverage)*255 + 0.5)
			for x := r.X; x < r.X+r.Len; x++ {
				next.Set(x, y, cov)
			}
		}
	}
	if c.state.clip != nil {
		for i := range next.Data() {
			if c.state.clip.Data()[i] < next.Data()[i] {
				next.Data()[i] = c.state.clip.Data()[i]
			}
		}
	}
	c.state.clip = next
}

// ResetClip discards the current clip mask, restoring full-canvas
// coverage.
func (c *Canvas) ResetClip() {
	c.state.clip = nil
}
