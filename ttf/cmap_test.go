package ttf

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseCmapFixture(t *testing.T, opts ParseOptions, subtables ...[]byte) *Font {
	t.Helper()

	data := newFixture().with(TableNameCmap, cmapTable(subtables...)).bytes()
	font, err := ParseWithOptions(data, opts)
	require.NoError(t, err)

	return font
}

func TestCmapByteAndSegmentTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scribe.ttf")
	defer teardown()

	font := parseCmapFixture(t, ParseOptions{},
		cmapFormat0Table(map[byte]byte{65: 10}),
		cmapFormat4Table(seg4{start: 97, end: 97, delta: deltaTo(20, 97)}),
	)

	assert.Equal(t, u16(10), font.GlyphId('A'))
	assert.Equal(t, u16(20), font.GlyphId('a'))

	_, ok := font.GlyphIndex('B')
	assert.False(t, ok, "format 0 zero entries are unmapped")
	assert.Equal(t, []rune{'A', 'a'}, font.Runes())
}

func TestCmapFormat4Delta(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scribe.ttf")
	defer teardown()

	font := parseCmapFixture(t, ParseOptions{}, cmapFormat4Table(
		seg4{start: 0x41, end: 0x43, delta: 0xffc0},   // -0x40
		seg4{start: 0xfff0, end: 0xfff1, delta: 0x20}, // wraps past 0xffff
	))

	assert.Equal(t, u16(1), font.GlyphId('A'))
	assert.Equal(t, u16(3), font.GlyphId('C'))
	assert.Equal(t, u16(0x10), font.GlyphId(0xfff0))
	assert.Equal(t, u16(0x11), font.GlyphId(0xfff1))

	_, ok := font.GlyphIndex(0xffff)
	assert.False(t, ok, "sentinel segment is not a mapping")
}

func TestCmapFormat4RangeOffset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scribe.ttf")
	defer teardown()

	font := parseCmapFixture(t, ParseOptions{}, cmapFormat4Table(
		seg4{start: 0x20, end: 0x20, delta: deltaTo(3, 0x20)},
		seg4{start: 0x30, end: 0x32, delta: 5, glyphs: []u16{7, 0, 9}},
	))

	assert.Equal(t, u16(3), font.GlyphId(' '))
	assert.Equal(t, u16(12), font.GlyphId('0'))
	assert.Equal(t, u16(0), font.GlyphId('1'), "zero entries stay zero")
	assert.Equal(t, u16(14), font.GlyphId('2'))
}

func TestCmapFormat6(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scribe.ttf")
	defer teardown()

	font := parseCmapFixture(t, ParseOptions{}, cmapFormat6Table(0x100, 3, 0, 5))

	assert.Equal(t, u16(3), font.GlyphId(0x100))
	assert.Equal(t, u16(5), font.GlyphId(0x102))

	_, ok := font.GlyphIndex(0x101)
	assert.False(t, ok)
}

func TestCmapFormat12(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scribe.ttf")
	defer teardown()

	font := parseCmapFixture(t, ParseOptions{}, cmapFormat12Table(
		group12{start: 0x41, end: 0x42, gid: 4},
		group12{start: 0x1f600, end: 0x1f602, gid: 10},
	))

	assert.Equal(t, u16(4), font.GlyphId('A'))
	assert.Equal(t, u16(5), font.GlyphId('B'))
	assert.Equal(t, u16(10), font.GlyphId(0x1f600))
	assert.Equal(t, u16(12), font.GlyphId(0x1f602))
	assert.Empty(t, font.Diagnostics())
	assert.Equal(t, []rune{'A', 'B', 0x1f600, 0x1f601, 0x1f602}, font.Runes())
}

func TestCmapFormat12Overlap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scribe.ttf")
	defer teardown()

	font := parseCmapFixture(t, ParseOptions{}, cmapFormat12Table(
		group12{start: 0x1f600, end: 0x1f602, gid: 10},
		group12{start: 0x1f602, end: 0x1f603, gid: 20},
	))

	assert.Equal(t, u16(20), font.GlyphId(0x1f602), "later group wins")
	assert.Equal(t, u16(21), font.GlyphId(0x1f603))

	diags := font.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, CmapOverlap, diags[0].Kind)
}

func TestCmapFormat12GlyphOverflow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scribe.ttf")
	defer teardown()

	font := parseCmapFixture(t, ParseOptions{}, cmapFormat12Table(
		group12{start: 0x41, end: 0x42, gid: 0xffff},
	))

	_, ok := font.GlyphIndex('A')
	assert.False(t, ok)

	diags := font.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, OutOfRangeGlyph, diags[0].Kind)
	assert.Equal(t, u32(0x10000), diags[0].Glyph)
}

func TestCmapFormat12BadLength(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scribe.ttf")
	defer teardown()

	sub := cmapFormat12Table(group12{start: 0x41, end: 0x41, gid: 1})
	w := Writer{buf: sub}
	w.putU32At(4, 16+12*2)

	data := newFixture().with(TableNameCmap, cmapTable(sub)).bytes()
	_, err := Parse(data)
	require.ErrorIs(t, err, ErrMalformedTable)

	var malformedErr *MalformedTableError
	require.ErrorAs(t, err, &malformedErr)
	assert.Equal(t, "cmap", malformedErr.Table)
}

func TestCmapSkipsUnknownFormats(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scribe.ttf")
	defer teardown()

	format14 := []byte{
		0, 14, // format
		0, 0, 0, 10, // length
		0, 0, 0, 0, // numVarSelectorRecords
	}

	font := parseCmapFixture(t, ParseOptions{},
		format14,
		cmapFormat4Table(seg4{start: 'x', end: 'x', delta: deltaTo(2, 'x')}),
	)

	assert.Equal(t, u16(2), font.GlyphId('x'))
}

func TestCmapSharedSubtable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scribe.ttf")
	defer teardown()

	sub := cmapFormat12Table(group12{start: 0x41, end: 0x43, gid: 1})

	w := NewWriter(nil)
	w.u16(0)
	w.u16(2)
	w.u16(platformUnicode)
	w.u16(codeUnicodeFull)
	w.u32(20)
	w.u16(platformMicrosoft)
	w.u16(codeMsUnicodeExt)
	w.u32(20)
	w.write(sub)

	font, err := Parse(newFixture().with(TableNameCmap, w.Bytes()).bytes())
	require.NoError(t, err)

	assert.Equal(t, u16(3), font.GlyphId('C'))
	assert.Empty(t, font.Diagnostics(), "a subtable is decoded once")
}

func TestCmapMirrorArabic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "scribe.ttf")
	defer teardown()

	beh := cmapFormat4Table(seg4{start: 0x0628, end: 0x0628, delta: deltaTo(30, 0x0628)})

	plain := parseCmapFixture(t, ParseOptions{}, beh)
	assert.Equal(t, u16(30), plain.GlyphId(0x0628))
	_, ok := plain.GlyphIndex(0xfe8f)
	assert.False(t, ok)

	mirrored := parseCmapFixture(t, ParseOptions{MirrorArabic: true}, beh)
	assert.Equal(t, u16(30), mirrored.GlyphId(0x0628))
	assert.Equal(t, u16(30), mirrored.GlyphId(0xfe8f))
}
