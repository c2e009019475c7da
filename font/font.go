package font

// tableRecord locates one SFNT table within the font's byte slice.
type tableRecord struct {
	offset, length int
}

// Font is a parsed TrueType font: enough of its tables to map a
// codepoint to a glyph outline and an advance width. A Font is immutable after Parse.
type Font struct {
	data   []byte
	tables map[Tag]tableRecord

	unitsPerEm int
	numGlyphs  int

	ascent  int
	descent int

	numHMetrics int
	// advanceWidths holds one entry per glyph with an explicit hmtx
	// record; AdvanceWidth replicates the last one for glyphs beyond
	// numHMetrics, per spec.md §4.8.
	advanceWidths []uint16

	locaLong bool
	loca     []uint32

	lookupRune func(r rune) uint16
}

// requiredTables lists the tables spec.md §4.8 calls mandatory; `cvt `
// is optional and parsed only if present.
var requiredTables = []Tag{tagHead, tagMaxp, tagHhea, tagHmtx, tagCmap, tagLoca, tagGlyf}

// Parse reads a TrueType byte stream and returns a Font, or
// ErrInvalidFont if any required table is missing or a table reference
// lies outside the slice.
func Parse(data []byte) (*Font, error) {
	r := newReader(data)
	_, err := r.u32() // sfnt version / scaler type, not validated further
	if err != nil {
		return nil, ErrInvalidFont
	}
	numTables, err := r.u16()
	if err != nil {
		return nil, ErrInvalidFont
	}
	// searchRange, entrySelector, rangeShift
	if _, err := r.u16(); err != nil {
		return nil, ErrInvalidFont
	}
	if _, err := r.u16(); err != nil {
		return nil, ErrInvalidFont
	}
	if _, err := r.u16(); err != nil {
		return nil, ErrInvalidFont
	}

	tables := make(map[Tag]tableRecord, numTables)
	for i := 0; i < int(numTables); i++ {
		tagV, err := r.u32()
		if err != nil {
			return nil, ErrInvalidFont
		}
		if _, err := r.u32(); err != nil { // checksum, unused
			return nil, ErrInvalidFont
		}
		offsetV, err := r.u32()
		if err != nil {
			return nil, ErrInvalidFont
		}
		lengthV, err := r.u32()
		if err != nil {
			return nil, ErrInvalidFont
		}
		off, ln := int(offsetV), int(lengthV)
		if _, err := bytesAt(data, off, ln); err != nil {
			return nil, ErrInvalidFont
		}
		tables[Tag(tagV)] = tableRecord{offset: off, length: ln}
	}

	for _, t := range requiredTables {
		if _, ok := tables[t]; !ok {
			return nil, ErrInvalidFont
		}
	}

	f := &Font{data: data, tables: tables}
	if err := f.parseHead(); err != nil {
		return nil, err
	}
	if err := f.parseMaxp(); err != nil {
		return nil, err
	}
	if err := f.parseHhea(); err != nil {
		return nil, err
	}
	if err := f.parseHmtx(); err != nil {
		return nil, err
	}
	if err := f.parseLoca(); err != nil {
		return nil, err
	}
	if err := f.parseCmap(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Font) table(t Tag) ([]byte, error) {
	rec, ok := f.tables[t]
	if !ok {
		return nil, ErrInvalidFont
	}
	return bytesAt(f.data, rec.offset, rec.length)
}

func (f *Font) parseHead() error {
	tbl, err := f.table(tagHead)
	if err != nil || len(tbl) < 54 {
		return ErrInvalidFont
	}
	upm, err := u16At(tbl, 18)
	if err != nil || upm == 0 {
		return ErrInvalidFont
	}
	f.unitsPerEm = int(upm)
	locFmt, err := i16At(tbl, 50)
	if err != nil {
		return ErrInvalidFont
	}
	f.locaLong = locFmt != 0
	return nil
}

func (f *Font) parseMaxp() error {
	tbl, err := f.table(tagMaxp)
	if err != nil || len(tbl) < 6 {
		return ErrInvalidFont
	}
	n, err := u16At(tbl, 4)
	if err != nil {
		return ErrInvalidFont
	}
	f.numGlyphs = int(n)
	return nil
}

func (f *Font) parseHhea() error {
	tbl, err := f.table(tagHhea)
	if err != nil || len(tbl) < 36 {
		return ErrInvalidFont
	}
	asc, err := i16At(tbl, 4)
	if err != nil {
		return ErrInvalidFont
	}
	desc, err := i16At(tbl, 6)
	if err != nil {
		return ErrInvalidFont
	}
	n, err := u16At(tbl, 34)
	if err != nil {
		return ErrInvalidFont
	}
	f.ascent = int(asc)
	f.descent = int(desc)
	f.numHMetrics = int(n)
	return nil
}

func (f *Font) parseHmtx() error {
	tbl, err := f.table(tagHmtx)
	if err != nil {
		return ErrInvalidFont
	}
	n := f.numHMetrics
	if n <= 0 || n*4 > len(tbl) {
		return ErrInvalidFont
	}
	widths := make([]uint16, n)
	for i := 0; i < n; i++ {
		w, err := u16At(tbl, i*4)
		if err != nil {
			return ErrInvalidFont
		}
		widths[i] = w
	}
	f.advanceWidths = widths
	return nil
}

func (f *Font) parseLoca() error {
	tbl, err := f.table(tagLoca)
	if err != nil {
		return ErrInvalidFont
	}
	n := f.numGlyphs + 1
	loca := make([]uint32, n)
	if f.locaLong {
		if n*4 > len(tbl) {
			return ErrInvalidFont
		}
		for i := 0; i < n; i++ {
			v, err := u32At(tbl, i*4)
			if err != nil {
				return ErrInvalidFont
			}
			loca[i] = v
		}
	} else {
		if n*2 > len(tbl) {
			return ErrInvalidFont
		}
		for i := 0; i < n; i++ {
			v, err := u16At(tbl, i*2)
			if err != nil {
				return ErrInvalidFont
			}
			loca[i] = uint32(v) * 2
		}
	}
	f.loca = loca
	return nil
}

// UnitsPerEm returns the font's design units per em square.
func (f *Font) UnitsPerEm() int { return f.unitsPerEm }

// Ascent and Descent return hhea's font-unit vertical metrics, used to
// derive text_baseline offsets.
func (f *Font) Ascent() int  { return f.ascent }
func (f *Font) Descent() int { return f.descent }

// NumGlyphs returns the glyph count from maxp.
func (f *Font) NumGlyphs() int { return f.numGlyphs }

// GlyphIndex maps a codepoint to a glyph index via the selected cmap
// subtable; codepoints with no mapping return glyph 0 (.notdef), per
// spec.md §4.8.
func (f *Font) GlyphIndex(r rune) uint16 {
	if f.lookupRune == nil {
		return 0
	}
	return f.lookupRune(r)
}

// AdvanceWidth returns the glyph's advance width in font units,
// replicating the last explicit hmtx entry for glyph indices beyond
// numberOfHMetrics.
func (f *Font) AdvanceWidth(gid uint16) uint16 {
	if len(f.advanceWidths) == 0 {
		return 0
	}
	i := int(gid)
	if i >= len(f.advanceWidths) {
		i = len(f.advanceWidths) - 1
	}
	return f.advanceWidths[i]
}
