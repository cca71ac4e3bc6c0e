package ttf

// GlyphMetrics are the horizontal metrics and bounding box of one glyph,
// normalized to the em square.
type GlyphMetrics struct {
	Left, Top, Right, Bottom f32

	Advance     f32
	LeftBearing f32
}

// Metrics returns the metrics of gid.
func (f *Font) Metrics(gid u16) (GlyphMetrics, bool) {
	if int(gid) >= len(f.metrics) {
		return GlyphMetrics{}, false
	}

	return f.metrics[gid], true
}

// Width returns the advance width of gid, or 0 for unknown glyphs.
func (f *Font) Width(gid u16) f32 {
	m, _ := f.Metrics(gid)
	return m.Advance
}

// advance returns the raw advance and left side bearing of gid.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/hmtx
func (f *Font) advance(gid u16) (advance u16, lsb i16) {
	r := NewReader(f.table(TableNameHmtx))

	const stride = 4
	if gid < f.MetricCount {
		r.seekTo(u32(gid) * stride)
		return r.u16(), r.i16()
	}

	r.seekTo(u32(f.MetricCount-1) * stride)
	advance = r.u16()

	r.seekTo(u32(f.MetricCount)*stride + 2*u32(gid-f.MetricCount))
	lsb = r.i16()

	return advance, lsb
}

func (p *Parser) parseMetrics() error {
	hmtx, _ := p.font.dir.Lookup(TableNameHmtx)
	if long := 4 * u32(p.font.MetricCount); hmtx.Len < long {
		return malformed(
			TableNameHmtx,
			"length %d too short for %d long metrics",
			hmtx.Len,
			p.font.MetricCount,
		)
	}
	if want := 4*u32(p.font.MetricCount) +
		2*u32(p.font.GlyphCount-p.font.MetricCount); hmtx.Len < want {
		// Missing trailing bearings read as 0.
		tracer().Infof("ttf: 'hmtx' length %d, want %d", hmtx.Len, want)
	}

	metrics := make([]GlyphMetrics, p.font.GlyphCount)
	for gid := range p.font.GlyphCount {
		advance, lsb := p.font.advance(gid)
		m := &metrics[gid]
		m.Advance = f32(advance) * p.font.Scale
		m.LeftBearing = f32(lsb) * p.font.Scale

		if p.font.loca == nil {
			continue
		}

		offset, size, _ := p.font.GlyphLocation(gid)
		if size == 0 {
			continue
		}
		if size < glyphHeaderLen {
			return malformed(TableNameGlyf, "glyph %d has %d byte header", gid, size)
		}

		r := NewReader(p.font.table(TableNameGlyf))
		r.seekTo(offset + 2) // numberOfContours
		m.Left = p.fwordScaled(&r)
		m.Bottom = p.fwordScaled(&r)
		m.Right = p.fwordScaled(&r)
		m.Top = p.fwordScaled(&r)
	}

	p.font.metrics = metrics

	return nil
}
