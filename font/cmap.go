package font

// subtableRef is one entry of the cmap table's encoding directory.
type subtableRef struct {
	platformID, encodingID uint16
	offset                 uint32
}

// parseCmap selects the best available cmap subtable (format 12, then
// 4, then 0, regardless of platform/encoding ID) and installs a
// lookupRune closure bound to it. A font with no subtable in a
// supported format parses successfully but maps every rune to glyph 0.
func (f *Font) parseCmap() error {
	tbl, err := f.table(tagCmap)
	if err != nil || len(tbl) < 4 {
		return ErrInvalidFont
	}
	numTables, err := u16At(tbl, 2)
	if err != nil {
		return ErrInvalidFont
	}

	var refs []subtableRef
	for i := 0; i < int(numTables); i++ {
		base := 4 + i*8
		plat, err := u16At(tbl, base)
		if err != nil {
			return ErrInvalidFont
		}
		enc, err := u16At(tbl, base+2)
		if err != nil {
			return ErrInvalidFont
		}
		off, err := u32At(tbl, base+4)
		if err != nil {
			return ErrInvalidFont
		}
		refs = append(refs, subtableRef{platformID: plat, encodingID: enc, offset: off})
	}

	var best []byte
	var bestFormat uint16
	for _, ref := range refs {
		if int(ref.offset) >= len(tbl) {
			continue
		}
		sub := tbl[ref.offset:]
		format, err := u16At(sub, 0)
		if err != nil {
			continue
		}
		switch format {
		case 12:
			best, bestFormat = sub, 12
		case 4:
			if bestFormat != 12 {
				best, bestFormat = sub, 4
			}
		case 0:
			if bestFormat == 0 && best == nil {
				best, bestFormat = sub, 0
			}
		}
		if bestFormat == 12 {
			break
		}
	}

	switch bestFormat {
	case 12:
		f.lookupRune = lookupFormat12(best)
	case 4:
		f.lookupRune = lookupFormat4(best)
	case 0:
		f.lookupRune = lookupFormat0(best)
	default:
		f.lookupRune = func(r rune) uint16 { return 0 }
	}
	return nil
}

func lookupFormat0(sub []byte) func(rune) uint16 {
	if len(sub) < 6+256 {
		return func(rune) uint16 { return 0 }
	}
	glyphIDs := sub[6 : 6+256]
	return func(r rune) uint16 {
		if r < 0 || r > 255 {
			return 0
		}
		return uint16(glyphIDs[r])
	}
}

func lookupFormat4(sub []byte) func(rune) uint16 {
	segCountX2, err := u16At(sub, 6)
	if err != nil {
		return func(rune) uint16 { return 0 }
	}
	segCount := int(segCountX2 / 2)

	endBase := 14
	startBase := endBase + int(segCountX2) + 2 // +2 skips reservedPad
	deltaBase := startBase + int(segCountX2)
	rangeBase := deltaBase + int(segCountX2)

	readU16 := func(base, i int) (uint16, bool) {
		v, err := u16At(sub, base+i*2)
		return v, err == nil
	}
	readI16 := func(base, i int) (int16, bool) {
		v, err := i16At(sub, base+i*2)
		return v, err == nil
	}

	return func(r rune) uint16 {
		if r < 0 || r > 0xFFFF {
			return 0
		}
		c := uint16(r)
		for i := 0; i < segCount; i++ {
			end, ok := readU16(endBase, i)
			if !ok {
				return 0
			}
			if c > end {
				continue
			}
			start, ok := readU16(startBase, i)
			if !ok || c < start {
				return 0
			}
			delta, ok := readI16(deltaBase, i)
			if !ok {
				return 0
			}
			rangeOffset, ok := readU16(rangeBase, i)
			if !ok {
				return 0
			}
			if rangeOffset == 0 {
				return uint16(int32(c) + int32(delta))
			}
			glyphIndexAddr := rangeBase + i*2 + int(rangeOffset) + int(c-start)*2
			gid, err := u16At(sub, glyphIndexAddr)
			if err != nil || gid == 0 {
				return 0
			}
			return uint16((int32(gid) + int32(delta)) & 0xFFFF)
		}
		return 0
	}
}

func lookupFormat12(sub []byte) func(rune) uint16 {
	numGroups, err := u32At(sub, 12)
	if err != nil {
		return func(rune) uint16 { return 0 }
	}
	return func(r rune) uint16 {
		if r < 0 {
			return 0
		}
		c := uint32(r)
		for i := uint32(0); i < numGroups; i++ {
			base := 16 + int(i)*12
			startChar, err := u32At(sub, base)
			if err != nil {
				return 0
			}
			endChar, err := u32At(sub, base+4)
			if err != nil {
				return 0
			}
			if c < startChar || c > endChar {
				continue
			}
			startGlyph, err := u32At(sub, base+8)
			if err != nil {
				return 0
			}
			return uint16(startGlyph + (c - startChar))
		}
		return 0
	}
}
