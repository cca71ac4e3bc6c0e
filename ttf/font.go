package ttf

import (
	"fmt"
	"slices"
	"unicode"

	"github.com/bits-and-blooms/bitset"
)

// ParseOptions tune how a font is loaded.
type ParseOptions struct {
	// MirrorArabic additionally maps the isolated presentation form of each
	// basic Arabic letter found in a format 4 cmap subtable to the same
	// glyph as the basic letter.
	MirrorArabic bool

	// AllowRestricted loads fonts whose OS/2 embedding permissions forbid
	// embedding.
	AllowRestricted bool
}

// Font is a parsed TrueType font.
//
// A Font is immutable once [Parse] returns and may be shared between
// goroutines, including concurrent calls to [Font.Subset]. The byte slice
// passed to [Parse] is retained and must not be modified afterwards.
type Font struct {
	data []byte
	dir  Directory

	gids    [256 * 256]u16
	gidsSet bitset.BitSet
	gidsExt map[rune]u16

	loca    []u32
	metrics []GlyphMetrics
	strikes []Strike

	diagnostics diagnostics

	Names Names

	Bounds Bounds

	Ascent        f32
	CapHeight     f32
	Descent       f32
	Flags         flag
	ItalicAngle   f32
	LineGap       f32
	Scale         f32
	StrikeoutPos  f32
	StrikeoutSize f32
	UnderlinePos  f32
	UnderlineSize f32

	FsType      u16
	GlyphCount  u16
	MetricCount u16
	UnitsPerEm  u16
	WeightClass u16

	LocaFormat u8
}

// Parse loads a TrueType font with default options.
func Parse(bytes []byte) (*Font, error) {
	return ParseWithOptions(bytes, ParseOptions{})
}

func ParseWithOptions(bytes []byte, opts ParseOptions) (*Font, error) {
	parser := Parser{
		font:   &Font{data: bytes},
		opts:   opts,
		reader: NewReader(bytes),
	}

	if err := parser.parse(); err != nil {
		return nil, err
	}

	return parser.font, nil
}

// Data returns the source bytes. They must not be modified.
func (f *Font) Data() []byte {
	return f.data
}

// Diagnostics returns the recoverable problems found while loading.
func (f *Font) Diagnostics() []Diagnostic {
	return f.diagnostics
}

func (f *Font) Directory() *Directory {
	return &f.dir
}

// GlyphId returns the glyph mapped to char, or 0 when there is none.
func (f *Font) GlyphId(char rune) u16 {
	gid, _ := f.GlyphIndex(char)
	return gid
}

// GlyphIndex resolves a character code through the font's merged cmap.
func (f *Font) GlyphIndex(char rune) (u16, bool) {
	if char < 0 {
		return 0, false
	}

	if char < rune(len(f.gids)) {
		if !f.gidsSet.Test(uint(char)) {
			return 0, false
		}
		return f.gids[char], true
	}

	gid, ok := f.gidsExt[char]
	return gid, ok
}

// HasOutlines reports whether the font carries 'glyf' and 'loca'.
func (f *Font) HasOutlines() bool {
	return f.loca != nil
}

// Scaled converts a design-unit value to the em scale.
func (f *Font) Scaled(val fword) f32 {
	return f.Scale * f32(val)
}

func (f *Font) setGlyph(char rune, gid u16) {
	if char < rune(len(f.gids)) {
		f.gids[char] = gid
		f.gidsSet.Set(uint(char))
		return
	}

	if f.gidsExt == nil {
		f.gidsExt = map[rune]u16{}
	}
	f.gidsExt[char] = gid
}

// table returns the raw bytes of a table, or nil when it is absent.
func (f *Font) table(name tableName) []byte {
	t, ok := f.dir.Lookup(name)
	if !ok {
		return nil
	}

	return f.data[t.Ptr : t.Ptr+t.Len : t.Ptr+t.Len]
}

type Parser struct {
	font   *Font
	opts   ParseOptions
	reader Reader
}

func (p *Parser) fwordScaled(r *Reader) f32 {
	return f32(r.fword()) * p.font.Scale
}

func (p *Parser) parse() error {
	var err error
	if p.font.dir, err = parseDirectory(&p.reader); err != nil {
		return err
	}

	if err = p.parseHead(); err != nil {
		return err
	}
	if err = p.parseMaxP(); err != nil {
		return err
	}
	if err = p.parseHhea(); err != nil {
		return err
	}
	if err = p.parseOs2(); err != nil {
		return err
	}
	if err = p.parsePost(); err != nil {
		return err
	}
	if err = p.parseName(); err != nil {
		return err
	}
	if err = p.parseCmap(); err != nil {
		return err
	}

	hasGlyf := p.font.dir.Has(TableNameGlyf)
	hasLoca := p.font.dir.Has(TableNameLoca)
	if hasGlyf && hasLoca {
		if err = p.parseLoca(); err != nil {
			return err
		}
	} else if hasGlyf != hasLoca {
		tracer().Infof("ttf: 'glyf' and 'loca' must both be present, ignoring outlines")
	}

	if err = p.parseMetrics(); err != nil {
		return err
	}

	if p.font.dir.Has(TableNameCblc) && p.font.dir.Has(TableNameCbdt) {
		p.parseBitmaps()
	}

	tracer().Debugf(
		"ttf: loaded %q: %d glyphs, %d units/em, %d tables",
		p.font.Names.PostScript,
		p.font.GlyphCount,
		p.font.UnitsPerEm,
		len(p.font.dir.Tables),
	)

	return nil
}

// table returns a bounds-checked reader over the named table. The
// directory has already verified that the table lies inside the file.
func (p *Parser) table(name tableName) Reader {
	return NewReader(p.font.table(name))
}

// String renders a short description, mostly for logging.
func (f *Font) String() string {
	name := f.Names.Full
	if name == "" {
		name = f.Names.PostScript
	}
	if name == "" {
		name = f.Names.Family
	}
	if name == "" {
		name = "<unnamed>"
	}

	return fmt.Sprintf("%s (%d glyphs)", name, f.GlyphCount)
}

// Runes returns every character the cmap maps, in ascending order.
func (f *Font) Runes() []rune {
	runes := make([]rune, 0, f.gidsSet.Count()+uint(len(f.gidsExt)))
	for i, ok := f.gidsSet.NextSet(0); ok; i, ok = f.gidsSet.NextSet(i + 1) {
		runes = append(runes, rune(i))
	}

	ext := make([]rune, 0, len(f.gidsExt))
	for char := range f.gidsExt {
		if char <= unicode.MaxRune {
			ext = append(ext, char)
		}
	}
	slices.Sort(ext)

	return append(runes, ext...)
}
