// Package gg provides a software-only, pure Go implementation of the
// HTML5 Canvas 2D drawing model.
//
// # Overview
//
// gg renders paths, text and images into an in-memory linear-
// premultiplied RGBA buffer using an analytic, 16×-vertical-supersampled
// scanline rasterizer: fills and strokes are antialiased by exact
// coverage computation rather than multisampling the whole frame.
//
// # Quick Start
//
//	import "github.com/anselm-rasterizer/canvas2d"
//
//	c := gg.NewCanvas(512, 512)
//	c.SetFillStyle(gg.Solid(gg.RGBStraight(1, 0, 0, 1)))
//	c.Arc(256, 256, 100, 0, 2*math.Pi, false)
//	c.Fill()
//
//	var rgba [512 * 512 * 4]byte
//	c.GetImageData(rgba[:], 512, 512, 512*4, 0, 0)
//
// # Architecture
//
// The library is organized into:
//   - Public API: Canvas, Path, Paint (SolidPaint, LinearGradient,
//     RadialGradient, PatternPaint), Matrix, Point
//   - font: a minimal TrueType reader (cmap/glyf/loca/hmtx/head/maxp/hhea)
//     used by fill_text/stroke_text
//   - internal/raster: the analytic supersampled scanline rasterizer
//   - internal/stroke: stroke-to-outline expansion (joins, caps, dashing)
//   - internal/blend: the Porter-Duff and "lighter" compositing operators
//   - internal/filter: the drop-shadow box-blur pipeline
//   - internal/color, internal/image: sRGB/linear LUTs and the pixel
//     buffer + bilinear pattern sampler
//
// # Coordinate System
//
// Device pixel space: origin (0,0) at top-left, x increases right, y
// increases down, angles in radians increasing clockwise in device
// space (counter-clockwise before the y-down flip). Every path
// coordinate is transformed by the canvas's current transform at the
// moment it is appended to the path, not at fill/stroke time.
//
// # Color
//
// All colors are linear-premultiplied RGBA internally; setters accept
// straight-alpha sRGB and convert via 256/4096-entry lookup tables.
// Image I/O (draw_image, get_image_data, put_image_data) exchanges
// 8-bit straight-alpha sRGB bytes at its boundary.
package gg

// Version identifies this module's release.
const Version = "0.1.0"
