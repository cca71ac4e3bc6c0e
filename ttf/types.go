package ttf

import (
	"encoding/binary"
)

type f32 = float32
type f64 = float64

type i8 = int8
type i16 = int16
type i32 = int32
type i64 = int64

type u8 = uint8
type u16 = uint16
type u32 = uint32
type u64 = uint64

type tag u32

func (t tag) String() string {
	buf := [4]byte{}
	binary.BigEndian.PutUint32(buf[:], uint32(t))
	return string(buf[:])
}

type tableName tag

func (n tableName) String() string {
	return tag(n).String()
}

const (
	TableNameCblc tableName = 0x43424c43 // 'CBLC'
	TableNameCbdt tableName = 0x43424454 // 'CBDT'
	TableNameCmap tableName = 0x636d6170 // 'cmap'
	TableNameCvt  tableName = 0x63767420 // 'cvt '
	TableNameFpgm tableName = 0x6670676d // 'fpgm'
	TableNameGasp tableName = 0x67617370 // 'gasp'
	TableNameGlyf tableName = 0x676c7966 // 'glyf'
	TableNameHead tableName = 0x68656164 // 'head'
	TableNameHhea tableName = 0x68686561 // 'hhea'
	TableNameHmtx tableName = 0x686d7478 // 'hmtx'
	TableNameLoca tableName = 0x6c6f6361 // 'loca'
	TableNameMaxp tableName = 0x6d617870 // 'maxp'
	TableNameName tableName = 0x6e616d65 // 'name'
	TableNameOs2  tableName = 0x4f532f32 // 'OS/2'
	TableNamePost tableName = 0x706f7374 // 'post'
	TableNamePrep tableName = 0x70726570 // 'prep'
)

const (
	platformUnicode   = 0
	platformMacintosh = 1
	platformMicrosoft = 3

	codeUnicodeFull  = 4
	codeMacRoman     = 0
	codeMsSymbol     = 0
	codeMsUnicodeBmp = 1
	codeMsUnicodeExt = 10
)

const (
	sfntVersionTrueType = 0x0001_0000
	sfntVersionApple    = 0x7472_7565 // 'true'
	sfntVersionCff      = 0x4f54_544f // 'OTTO'
)

type flag u32

const (
	// Monospace font.
	FlagFixedWidth flag = 1 << 0

	// Stems have short strokes drawn at an angle.
	FlagSerif flag = 1 << 1

	// Contains symbols instead of letters and numbers.
	FlagSymbolic flag = 1 << 2

	// Font resembles cursive handwriting.
	FlagScript flag = 1 << 3

	// All font glyphs use Adobe standard encoding (non-symbolic).
	FlagAdobeStandard flag = 1 << 5

	// Slanted font.
	FlagItalic flag = 1 << 6

	// Bold characters are drawn with extra pixels, even at small text sizes.
	FlagForceBold flag = 1 << 18
)

type macStyle u16

const (
	MacStyleBold   macStyle = 1 << 0
	MacStyleItalic macStyle = 1 << 1
)

type fword i16

type fixed i32

func (f fixed) float() f32 {
	return f32(f64(f) / f64(1<<16))
}

// Bounds is a bounding box normalized to the em square.
type Bounds struct {
	Max [2]f32
	Min [2]f32
}
