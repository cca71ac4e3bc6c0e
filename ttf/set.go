package ttf

import (
	"fmt"
	"log"
	"slices"
	"strings"
)

// FontInfo is a font registered in a [FontSet], together with the
// characters drawn with it so far.
type FontInfo struct {
	font  *Font
	key   Key
	usage Usage
}

func (i *FontInfo) Font() *Font {
	return i.font
}

// GlyphWidth records char as used and returns its glyph and advance.
func (i *FontInfo) GlyphWidth(char rune) (gid uint16, width float32) {
	i.usage.AddRune(char)

	gid = i.font.GlyphId(char)
	width = i.font.Width(gid)

	return
}

func (i *FontInfo) GlyphWidthOnly(char rune) float32 {
	_, width := i.GlyphWidth(char)
	return width
}

func (i *FontInfo) String() string {
	return i.key.String()
}

func (i *FontInfo) Key() Key {
	return i.key
}

// Subset builds a subset holding every character recorded so far.
func (i *FontInfo) Subset() (*Subset, error) {
	return i.usage.Subset(i.font)
}

// Usage returns the characters recorded so far.
func (i *FontInfo) Usage() *Usage {
	return &i.usage
}

type Id uint8

// FontSet registers fonts by family and style, and tracks which characters
// each one is used for so that it can be subset before embedding.
type FontSet struct {
	fonts []FontInfo
	opts  ParseOptions
}

func NewFontSet(capacity uint8) FontSet {
	return FontSet{
		fonts: make([]FontInfo, 0, capacity),
	}
}

// NewFontSetWithOptions returns a set that loads fonts with opts.
func NewFontSetWithOptions(capacity uint8, opts ParseOptions) FontSet {
	set := NewFontSet(capacity)
	set.opts = opts
	return set
}

func (f *FontSet) Get(id Id) *FontInfo {
	return &f.fonts[id]
}

func (f *FontSet) Key(id Id) Key {
	return f.fonts[id].key
}

// Lookup returns the font registered for family and style.
func (f *FontSet) Lookup(family string, style Style) (Id, bool) {
	key := Key{Family: strings.ToLower(family), Style: style & (StyleB | StyleI)}
	idx := slices.IndexFunc(f.fonts, func(info FontInfo) bool {
		return info.key == key
	})
	if idx < 0 {
		return 0, false
	}

	return Id(idx), true
}

func (f *FontSet) AddTtf(family string, style Style, bytes []byte) (Id, error) {
	if len(f.fonts) > 0xff {
		return 0, fmt.Errorf("font set is full")
	}

	font, err := ParseWithOptions(bytes, f.opts)
	if err != nil {
		return 0, fmt.Errorf("unable to parse font file: %w", err)
	}

	id := len(f.fonts)
	f.fonts = append(f.fonts, FontInfo{
		font: font,
		key:  Key{Family: strings.ToLower(family), Style: style & (StyleB | StyleI)},
	})

	return Id(id), nil
}

func (f *FontSet) Grow(amt uint8) {
	f.fonts = slices.Grow(f.fonts, int(amt))
}

func (f *FontSet) Len() int {
	return len(f.fonts)
}

func (f *FontSet) MustAddTtf(family string, style Style, bytes []byte) Id {
	id, err := f.AddTtf(family, style, bytes)
	if err != nil {
		log.Panicf(
			"unable to add font family(%s), style(%s): %v",
			family,
			style,
			err,
		)
	}

	return id
}

type Key struct {
	Family string
	Style  Style
}

func (k Key) String() string {
	return strings.ToLower(k.Family) + k.Style.String()
}

type Style uint8

const (
	StyleNone Style = 0
)

const (
	StyleB Style = 1 << iota
	StyleI
	StyleS
	StyleU
)

func (s Style) Strike() bool {
	return s&StyleS != 0
}

func (s Style) String() string {
	style := s & ^(StyleS | StyleU)

	switch style {
	case StyleB:
		return "b"
	case StyleI:
		return "i"
	case StyleB | StyleI:
		return "bi"
	}

	return ""
}

func (s Style) Underline() bool {
	return s&StyleU != 0
}
