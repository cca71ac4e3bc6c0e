package ttf

import (
	"slices"
)

// Tables copied verbatim into subsets when present.
var copiedTables = []tableName{
	TableNameCvt,
	TableNameFpgm,
	TableNameGasp,
	TableNameName,
	TableNameOs2,
	TableNamePrep,
}

// Generator rebuilds the tables of a subset font from a plan.
type Generator struct {
	font   *Font
	plan   *plan
	tables map[tableName][]byte
}

func (g *Generator) copy(name tableName) {
	if src := g.font.table(name); src != nil {
		g.tables[name] = slices.Clone(src)
	}
}

func (g *Generator) generate() []byte {
	g.tables = map[tableName][]byte{}

	// Copy tables that don't need to be re-generated.
	for _, name := range copiedTables {
		g.copy(name)
	}
	g.copy(TableNameHead)
	g.copy(TableNameHhea)
	g.copy(TableNameMaxp)

	indexToLocFormat := g.genGlyfAndLoca()
	g.genCmap()
	g.genPost()
	g.genHmtx()

	g.editHead(indexToLocFormat)
	g.editHhea(u16(len(g.plan.glyphIds)))
	g.editMaxp()

	return assemble(g.tables)
}

func (g *Generator) editHead(indexToLocFormat u16) {
	w := Writer{buf: g.tables[TableNameHead]}
	w.putU32At(headCheckSumAdjustment, 0)
	w.putU16At(headIndexToLocFormat, indexToLocFormat)
}

func (g *Generator) editHhea(metricCount u16) {
	w := Writer{buf: g.tables[TableNameHhea]}
	w.putU16At(hheaNumberOfHMetrics, metricCount)
}

func (g *Generator) editMaxp() {
	w := Writer{buf: g.tables[TableNameMaxp]}
	w.putU16At(maxpNumGlyphs, u16(len(g.plan.glyphIds)))
}

// genCmap writes a single format 12 subtable shared by the Unicode full
// repertoire and Windows UCS-4 encoding records.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/cmap#format-12-segmented-coverage
func (g *Generator) genCmap() {
	chars := slices.Clone(g.plan.chars)
	slices.Sort(chars)

	type group struct {
		start, end rune
		gid        u32
	}

	var groups []group
	for _, char := range chars {
		gidNew := u32(g.plan.gidRemap[g.plan.charGids[char]])

		if n := len(groups); n > 0 {
			last := &groups[n-1]
			if char == last.end+1 && gidNew == last.gid+u32(char-last.start) {
				last.end = char
				continue
			}
		}

		groups = append(groups, group{start: char, end: char, gid: gidNew})
	}

	const headerLen = 4   // version, numTables
	const recordLen = 8   // platformID, encodingID, offset
	const recordCount = 2 // (0,4) and (3,10)
	const subtableOffset = headerLen + recordLen*recordCount
	subtableLen := 16 + 12*u32(len(groups))

	w := NewWriter(nil)
	w.ensureCapRemaining(subtableOffset + subtableLen)

	w.u16(0) // version
	w.u16(recordCount)
	w.u16(platformUnicode)
	w.u16(codeUnicodeFull)
	w.u32(subtableOffset)
	w.u16(platformMicrosoft)
	w.u16(codeMsUnicodeExt)
	w.u32(subtableOffset)

	w.u16(cmapFormat12)
	w.u16(0) // reserved
	w.u32(subtableLen)
	w.u32(0) // language
	w.u32(u32(len(groups)))
	for _, grp := range groups {
		w.u32(u32(grp.start))
		w.u32(u32(grp.end))
		w.u32(grp.gid)
	}

	g.tables[TableNameCmap] = w.Bytes()
}

// genGlyfAndLoca concatenates the retained glyph records in their new order,
// each padded to 4 bytes, and writes matching offsets. The source offset
// format is kept unless short offsets cannot address the new table.
func (g *Generator) genGlyfAndLoca() (indexToLocFormat u16) {
	lens := make([]u32, len(g.plan.glyphIds))
	var glyfLen u32
	for i, gid := range g.plan.glyphIds {
		lens[i] = lenPadded(u32(len(g.plan.records[gid].data)))
		glyfLen += lens[i]
	}

	glyf := NewWriter(nil)
	glyf.ensureCapRemaining(glyfLen)
	for _, gid := range g.plan.glyphIds {
		glyf.write(g.plan.records[gid].data)
		glyf.pad4()
	}
	g.tables[TableNameGlyf] = glyf.Bytes()

	indexToLocFormat = u16(g.font.LocaFormat)
	if indexToLocFormat == locaFormatShort && glyfLen > locaShortMax {
		tracer().Infof("ttf: subset 'glyf' is %d bytes, switching to long 'loca'", glyfLen)
		indexToLocFormat = locaFormatLong
	}

	g.tables[TableNameLoca] = genLoca(lens, indexToLocFormat)

	return indexToLocFormat
}

// genLoca writes len(lens)+1 offsets for consecutive records of the given
// (even) lengths.
func genLoca(lens []u32, indexToLocFormat u16) []byte {
	w := NewWriter(nil)

	// Format 0 - u16 offsets:
	if indexToLocFormat == locaFormatShort {
		w.ensureCapRemaining(u32(len(lens)+1) * 2)

		var nextOffset u32
		for _, len := range lens {
			w.u16(u16(nextOffset >> 1))
			nextOffset += len
		}
		w.u16(u16(nextOffset >> 1))

		return w.Bytes()
	}

	// Format 1 - u32 offsets:
	w.ensureCapRemaining(u32(len(lens)+1) * 4)

	var nextOffset u32
	for _, len := range lens {
		w.u32(nextOffset)
		nextOffset += len
	}
	w.u32(nextOffset)

	return w.Bytes()
}

// genHmtx writes a long metric for every retained glyph, looked up by its
// original index.
func (g *Generator) genHmtx() {
	const stride = 4

	w := NewWriter(nil)
	w.ensureCapRemaining(u32(len(g.plan.glyphIds)) * stride)

	for _, gid := range g.plan.glyphIds {
		advance, lsb := g.font.advance(gid)
		w.u16(advance)
		w.u16(u16(lsb))
	}

	g.tables[TableNameHmtx] = w.Bytes()
}

// genPost writes a version 3.0 table, which carries no glyph names.
func (g *Generator) genPost() {
	w := NewWriter(nil)
	w.ensureCapRemaining(32)

	w.u32(0x00030000) // Format 3.0

	const copiedLen = 0 +
		4 + // italicAngle
		2 + // underlinePosition
		2 + // underlineThickness
		4 // isFixedPitch

	if src := g.font.table(TableNamePost); len(src) >= 4+copiedLen {
		w.write(src[4 : 4+copiedLen])
	} else {
		w.skip(copiedLen)
	}

	w.skip(16) // [min,max]MemType42 + [min,max]MemType1 (leave all as 0)

	g.tables[TableNamePost] = w.Bytes()
}
