// Package font implements spec.md §4.8's minimal TrueType reader: enough
// of `cmap`, `glyf`, `loca`, `hhea`, `hmtx`, `maxp`, `head` (and the
// optional `cvt `) to map a codepoint to a glyph outline and an advance
// width at a given pixel em height. It has no dependency on a shaping
// engine or a vector-font format beyond TrueType outlines, matching
// spec.md §1's non-goals.
package font
