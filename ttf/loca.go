package ttf

const (
	locaFormatShort = 0
	locaFormatLong  = 1

	// Largest glyf length addressable with short offsets.
	locaShortMax = 0xffff * 2
)

// https://learn.microsoft.com/en-us/typography/opentype/spec/loca
func (p *Parser) parseLoca() error {
	r := p.table(TableNameLoca)
	glyf, _ := p.font.dir.Lookup(TableNameGlyf)

	count := u32(p.font.GlyphCount) + 1
	loca := make([]u32, count)

	if p.font.LocaFormat == locaFormatShort {
		for i := range loca {
			loca[i] = u32(r.u16()) * 2
		}
	} else {
		for i := range loca {
			loca[i] = r.u32()
		}
	}
	if err := r.Err(); err != nil {
		return malformed(TableNameLoca, "%d glyphs: %v", p.font.GlyphCount, err)
	}

	for gid := range count - 1 {
		if loca[gid] > loca[gid+1] {
			return malformed(TableNameLoca, "offsets of glyph %d decrease", gid)
		}
	}
	if last := loca[count-1]; last > glyf.Len {
		return malformed(TableNameLoca, "glyph data ends at %d past 'glyf' length %d", last, glyf.Len)
	}

	p.font.loca = loca

	return nil
}

// GlyphLocation returns the byte range of a glyph inside the 'glyf' table.
// A zero size means the glyph has no outline.
func (f *Font) GlyphLocation(gid u16) (offset u32, size u32, ok bool) {
	if f.loca == nil || gid >= f.GlyphCount {
		return 0, 0, false
	}

	offset = f.loca[gid]
	size = f.loca[gid+1] - offset

	return offset, size, true
}
