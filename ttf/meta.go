package ttf

// Offsets of fields patched in subset output.
const (
	headCheckSumAdjustment = 8
	headIndexToLocFormat   = 50
	hheaNumberOfHMetrics   = 34
	maxpNumGlyphs          = 4
)

// Bits of OS/2 fsType.
const (
	fsTypeRestricted      = 0x0002
	fsTypeNoSubsetting    = 0x0100
	fsTypeBitmapEmbedOnly = 0x0200
)

// https://learn.microsoft.com/en-us/typography/opentype/spec/head
func (p *Parser) parseHead() error {
	r := p.table(TableNameHead)
	if r.Len() < 54 {
		return malformed(TableNameHead, "length %d, want at least 54", r.Len())
	}

	r.seekTo(18)
	p.font.UnitsPerEm = r.u16()
	if p.font.UnitsPerEm < 16 || p.font.UnitsPerEm > 16384 {
		return malformed(TableNameHead, "unitsPerEm %d out of range", p.font.UnitsPerEm)
	}
	p.font.Scale = 1 / f32(p.font.UnitsPerEm)

	r.skip(16) // created date + modified date

	p.font.Bounds = Bounds{
		Min: [2]f32{
			p.fwordScaled(&r),
			p.fwordScaled(&r),
		},
		Max: [2]f32{
			p.fwordScaled(&r),
			p.fwordScaled(&r),
		},
	}

	style := macStyle(r.u16())
	if style&MacStyleBold != 0 {
		p.font.Flags |= FlagForceBold
	}
	if style&MacStyleItalic != 0 {
		p.font.Flags |= FlagItalic
	}

	r.skip(4) // lowestRecPPEM, fontDirectionHint

	locaFormat := r.i16()
	if locaFormat != 0 && locaFormat != 1 {
		return malformed(TableNameHead, "invalid indexToLocFormat %d", locaFormat)
	}
	p.font.LocaFormat = u8(locaFormat)

	if glyphDataFormat := r.i16(); glyphDataFormat != 0 {
		return malformed(TableNameHead, "invalid glyphDataFormat %d", glyphDataFormat)
	}

	return r.Err()
}

// https://learn.microsoft.com/en-us/typography/opentype/spec/hhea
func (p *Parser) parseHhea() error {
	r := p.table(TableNameHhea)
	if r.Len() < 36 {
		return malformed(TableNameHhea, "length %d, want at least 36", r.Len())
	}

	r.seekTo(4)
	p.font.Ascent = p.fwordScaled(&r)
	p.font.Descent = p.fwordScaled(&r)
	p.font.LineGap = p.fwordScaled(&r)

	r.seekTo(32)
	if metricDataFormat := r.i16(); metricDataFormat != 0 {
		return malformed(TableNameHhea, "invalid metricDataFormat %d", metricDataFormat)
	}

	if p.font.MetricCount = r.u16(); p.font.MetricCount == 0 {
		return malformed(TableNameHhea, "numberOfHMetrics is 0")
	}

	if p.font.MetricCount > p.font.GlyphCount {
		tracer().Infof(
			"ttf: numberOfHMetrics %d exceeds glyph count %d, clamping",
			p.font.MetricCount,
			p.font.GlyphCount,
		)
		p.font.MetricCount = max(p.font.GlyphCount, 1)
	}

	return r.Err()
}

// https://learn.microsoft.com/en-us/typography/opentype/spec/maxp
func (p *Parser) parseMaxP() error {
	r := p.table(TableNameMaxp)
	r.skip(4) // version
	p.font.GlyphCount = r.u16()
	if err := r.Err(); err != nil {
		return malformed(TableNameMaxp, "%v", err)
	}

	if p.font.GlyphCount == 0 {
		return malformed(TableNameMaxp, "numGlyphs is 0")
	}

	return nil
}

// https://learn.microsoft.com/en-us/typography/opentype/spec/os2
func (p *Parser) parseOs2() error {
	if !p.font.dir.Has(TableNameOs2) {
		return nil
	}

	r := p.table(TableNameOs2)

	version := r.u16()

	r.skip(2) // xAvgCharWidth

	p.font.WeightClass = r.u16()

	r.skip(2) // usWidthClass

	p.font.FsType = r.u16()
	if !p.opts.AllowRestricted &&
		p.font.FsType&(fsTypeRestricted|fsTypeBitmapEmbedOnly) != 0 {
		return unsupported("embedding restricted by OS/2 fsType 0x%04x", p.font.FsType)
	}

	r.skip(0 +
		2 + // ySubscriptXSize
		2 + // ySubscriptYSize
		2 + // ySubscriptXOffset
		2 + // ySubscriptYOffset
		2 + // ySuperscriptXSize
		2 + // ySuperscriptYSize
		2 + // ySuperscriptXOffset
		2, // ySuperscriptYOffset
	)

	p.font.StrikeoutSize = p.fwordScaled(&r)
	p.font.StrikeoutPos = p.fwordScaled(&r)

	p.font.Flags |= familyClassFlags(r.u8())
	r.skip(1) // familyClass subclass

	r.skip(0 +
		10 + // panose
		16 + // ulUnicodeRange
		4 + // achVendID
		2 + // fsSelection
		2 + // fsFirstCharIndex
		2, // fsLastCharIndex
	)

	typoAscender := p.fwordScaled(&r)
	typoDescender := p.fwordScaled(&r)
	if err := r.Err(); err != nil {
		// Version 0 tables from old Apple fonts stop before the typo metrics.
		tracer().Debugf("ttf: short OS/2 table: %v", err)
		return nil
	}

	if p.font.Ascent == 0 {
		p.font.Ascent = typoAscender
	}
	if p.font.Descent == 0 {
		p.font.Descent = typoDescender
	}
	p.font.CapHeight = p.font.Ascent

	if version <= 1 {
		return nil
	}

	r.skip(0 +
		2 + // sTypoLineGap
		2 + // usWinAscent
		2 + // usWinDescent
		8 + // ulCodePageRange
		2, // sxHeight
	)
	if capHeight := p.fwordScaled(&r); r.Err() == nil {
		p.font.CapHeight = capHeight
	}

	return nil
}

// https://learn.microsoft.com/en-us/typography/opentype/spec/post
func (p *Parser) parsePost() error {
	if !p.font.dir.Has(TableNamePost) {
		return nil
	}

	r := p.table(TableNamePost)
	r.skip(4) // version

	italicAngle := r.fixed().float()
	underlinePos := p.fwordScaled(&r)
	underlineSize := p.fwordScaled(&r)
	fixedPitch := r.u32()
	if err := r.Err(); err != nil {
		tracer().Infof("ttf: ignoring short 'post' table: %v", err)
		return nil
	}

	p.font.ItalicAngle = italicAngle
	p.font.UnderlinePos = underlinePos
	p.font.UnderlineSize = underlineSize

	if fixedPitch != 0 {
		p.font.Flags |= FlagFixedWidth
	}
	if italicAngle != 0 {
		p.font.Flags |= FlagItalic
	}

	return nil
}

// familyClassFlags maps an OS/2 sFamilyClass class id to descriptor flags.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/ibmfc
func familyClassFlags(class u8) flag {
	switch class {
	case 1, 2, 3, 4, 5, 7: // serif classes
		return FlagSerif
	case 10:
		return FlagScript
	case 12:
		return FlagSymbolic
	}

	return 0
}
