package ttf

// fixture assembles small synthetic fonts. Glyph i advances 500+10*i units
// on a 1000 unit em.
type fixture struct {
	glyphs     [][]byte
	locaFormat u16
	tables     map[tableName][]byte
}

func newFixture(glyphs ...[]byte) *fixture {
	return &fixture{glyphs: glyphs, tables: map[tableName][]byte{}}
}

func (fx *fixture) with(name tableName, data []byte) *fixture {
	fx.tables[name] = data
	return fx
}

func (fx *fixture) bytes() []byte {
	glyphCount := max(len(fx.glyphs), 1)

	tables := map[tableName][]byte{
		TableNameCmap: cmapTable(),
		TableNameHead: headTable(fx.locaFormat),
		TableNameHhea: hheaTable(u16(glyphCount)),
		TableNameHmtx: hmtxTable(glyphCount),
		TableNameMaxp: maxpTable(u16(glyphCount)),
		TableNameName: nameTable("Fixture"),
	}

	if len(fx.glyphs) > 0 {
		glyf := NewWriter(nil)
		lens := make([]u32, len(fx.glyphs))
		for i, glyph := range fx.glyphs {
			glyf.write(glyph)
			glyf.pad4()
			lens[i] = lenPadded(u32(len(glyph)))
		}
		tables[TableNameGlyf] = glyf.Bytes()
		tables[TableNameLoca] = genLoca(lens, fx.locaFormat)
	}

	for name, data := range fx.tables {
		if data == nil {
			delete(tables, name)
			continue
		}
		tables[name] = data
	}

	return assemble(tables)
}

func headTable(locaFormat u16) []byte {
	w := NewWriter(nil)
	w.u32(0x00010000) // version
	w.u32(0x00010000) // fontRevision
	w.u32(0)          // checkSumAdjustment
	w.u32(0x5f0f3cf5) // magicNumber
	w.u16(0)          // flags
	w.u16(1000)       // unitsPerEm
	w.skip(16)        // created, modified
	w.u16(0)          // xMin
	w.u16(0xff38)     // yMin
	w.u16(1000)       // xMax
	w.u16(800)        // yMax
	w.u16(0)          // macStyle
	w.u16(8)          // lowestRecPPEM
	w.u16(2)          // fontDirectionHint
	w.u16(locaFormat)
	w.u16(0) // glyphDataFormat

	return w.Bytes()
}

func hheaTable(metricCount u16) []byte {
	w := NewWriter(nil)
	w.u32(0x00010000)
	w.u16(800)    // ascender
	w.u16(0xff38) // descender
	w.u16(0)      // lineGap
	w.skip(8)     // advanceWidthMax, minLeftSideBearing, minRightSideBearing, xMaxExtent
	w.u16(1)      // caretSlopeRise
	w.skip(4 + 8) // caretSlopeRun, caretOffset, reserved
	w.u16(0)      // metricDataFormat
	w.u16(metricCount)

	return w.Bytes()
}

func hmtxTable(glyphCount int) []byte {
	w := NewWriter(nil)
	for gid := range glyphCount {
		w.u16(u16(500 + 10*gid))
		w.u16(0)
	}

	return w.Bytes()
}

func maxpTable(glyphCount u16) []byte {
	w := NewWriter(nil)
	w.u32(0x00005000)
	w.u16(glyphCount)

	return w.Bytes()
}

// nameTable holds a single Windows en-US family name. family must be ASCII.
func nameTable(family string) []byte {
	w := NewWriter(nil)
	w.u16(0) // format
	w.u16(1) // count
	w.u16(6 + 12)
	w.u16(platformMicrosoft)
	w.u16(codeMsUnicodeBmp)
	w.u16(langMsEnUs)
	w.u16(nameIdFamily)
	w.u16(u16(2 * len(family)))
	w.u16(0)
	for i := range len(family) {
		w.u16(u16(family[i]))
	}

	return w.Bytes()
}

// cmapTable lists each subtable under a (3,10) record, in order.
func cmapTable(subtables ...[]byte) []byte {
	w := NewWriter(nil)
	w.u16(0)
	w.u16(u16(len(subtables)))

	offset := 4 + 8*u32(len(subtables))
	for _, sub := range subtables {
		w.u16(platformMicrosoft)
		w.u16(codeMsUnicodeExt)
		w.u32(offset)
		offset += u32(len(sub))
	}
	for _, sub := range subtables {
		w.write(sub)
	}

	return w.Bytes()
}

func cmapFormat0Table(gids map[byte]byte) []byte {
	w := NewWriter(nil)
	w.u16(cmapFormat0)
	w.u16(6 + 256)
	w.u16(0)

	arr := [256]byte{}
	for char, gid := range gids {
		arr[char] = gid
	}
	w.write(arr[:])

	return w.Bytes()
}

type seg4 struct {
	start, end u16
	delta      u16

	// glyphs are looked up through idRangeOffset when non-nil.
	glyphs []u16
}

// cmapFormat4Table appends the 0xffff sentinel segment.
func cmapFormat4Table(segs ...seg4) []byte {
	segs = append(segs, seg4{start: 0xffff, end: 0xffff, delta: 1})
	segCount := u16(len(segs))

	var glyphArray []u16
	rangeOffsets := make([]u16, segCount)
	for i, seg := range segs {
		if seg.glyphs == nil {
			continue
		}
		rangeOffsets[i] = 2*(segCount-u16(i)) + 2*u16(len(glyphArray))
		glyphArray = append(glyphArray, seg.glyphs...)
	}

	w := NewWriter(nil)
	w.u16(cmapFormat4)
	w.u16(16 + 8*segCount + 2*u16(len(glyphArray)))
	w.u16(0) // language
	w.u16(2 * segCount)
	searchRange, entrySelector, rangeShift := searchParams(segCount, 2)
	w.u16(searchRange)
	w.u16(entrySelector)
	w.u16(rangeShift)
	for _, seg := range segs {
		w.u16(seg.end)
	}
	w.u16(0) // reservedPad
	for _, seg := range segs {
		w.u16(seg.start)
	}
	for _, seg := range segs {
		w.u16(seg.delta)
	}
	w.u16Array(rangeOffsets)
	w.u16Array(glyphArray)

	return w.Bytes()
}

func cmapFormat6Table(first u16, gids ...u16) []byte {
	w := NewWriter(nil)
	w.u16(cmapFormat6)
	w.u16(10 + 2*u16(len(gids)))
	w.u16(0)
	w.u16(first)
	w.u16(u16(len(gids)))
	w.u16Array(gids)

	return w.Bytes()
}

type group12 struct {
	start, end, gid u32
}

func cmapFormat12Table(groups ...group12) []byte {
	w := NewWriter(nil)
	w.u16(cmapFormat12)
	w.u16(0)
	w.u32(16 + 12*u32(len(groups)))
	w.u32(0)
	w.u32(u32(len(groups)))
	for _, grp := range groups {
		w.u32(grp.start)
		w.u32(grp.end)
		w.u32(grp.gid)
	}

	return w.Bytes()
}

// simpleGlyph encodes one contour of on-curve points with word coordinates.
func simpleGlyph(points ...[2]i16) []byte {
	xMin, yMin, xMax, yMax := points[0][0], points[0][1], points[0][0], points[0][1]
	for _, pt := range points {
		xMin, xMax = min(xMin, pt[0]), max(xMax, pt[0])
		yMin, yMax = min(yMin, pt[1]), max(yMax, pt[1])
	}

	w := NewWriter(nil)
	w.u16(1)
	w.u16(u16(xMin))
	w.u16(u16(yMin))
	w.u16(u16(xMax))
	w.u16(u16(yMax))
	w.u16(u16(len(points) - 1)) // endPtsOfContours[0]
	w.u16(0)                    // instructionLength
	for range points {
		w.write([]byte{pointOnCurve})
	}

	var prev i16
	for _, pt := range points {
		w.u16(u16(pt[0] - prev))
		prev = pt[0]
	}
	prev = 0
	for _, pt := range points {
		w.u16(u16(pt[1] - prev))
		prev = pt[1]
	}

	return w.Bytes()
}

type testComponent struct {
	index u16
	flags glyfFlag
}

// compoundGlyph chains components, setting the more-components flag on all
// but the last. A non-nil instructions slice is appended after the last
// component, which gets the instructions flag.
func compoundGlyph(instructions []byte, components ...testComponent) []byte {
	w := NewWriter(nil)
	w.u16(0xffff) // numberOfContours = -1
	w.u16(0)
	w.u16(0)
	w.u16(100)
	w.u16(100)

	for i, c := range components {
		flags := c.flags | GlyfFlagArgsAreXyValues
		if i < len(components)-1 {
			flags |= GlyfFlagMoreComponents
		} else if instructions != nil {
			flags |= GlyfFlagWeHaveInstructions
		}

		w.u16(u16(flags))
		w.u16(c.index)

		if GlyfFlagArg1And2AreWords.Test(u16(flags)) {
			w.u16(0x0102)
			w.u16(0x0304)
		} else {
			w.write([]byte{1, 2})
		}

		switch {
		case GlyfFlagWeHaveAScale.Test(u16(flags)):
			w.u16(0x4000)
		case GlyfFlagWeHaveAnXAndYScale.Test(u16(flags)):
			w.u16(0x4000)
			w.u16(0x2000)
		case GlyfFlagWeHaveATwoByTwo.Test(u16(flags)):
			w.u16(0x4000)
			w.u16(0)
			w.u16(0)
			w.u16(0x4000)
		}
	}

	if instructions != nil {
		w.u16(u16(len(instructions)))
		w.write(instructions)
	}

	return w.Bytes()
}

// deltaTo returns the format 4 idDelta that maps start to gid.
func deltaTo(gid, start u16) u16 {
	return gid - start
}
