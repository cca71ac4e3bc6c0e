package ttf

import (
	"encoding/binary"
	"fmt"
	"slices"
	"unicode"

	"github.com/bits-and-blooms/bitset"
)

// Subset is a font rebuilt to contain only the glyphs needed for a set of
// characters.
type Subset struct {
	// Font is the complete SFNT file.
	Font []byte

	// Glyphs lists the retained glyphs by original index; a glyph's
	// position is its index in Font.
	Glyphs []u16

	// Remap maps original glyph indices to indices in Font.
	Remap map[u16]u16

	// Chars lists the retained characters in first-request order.
	Chars []rune

	// Diagnostics lists characters and glyph references that were dropped.
	Diagnostics []Diagnostic
}

// GlyphCount returns the number of glyphs in the subset font.
func (s *Subset) GlyphCount() int {
	return len(s.Glyphs)
}

// glyphRecord is a glyph owned by one subsetting call.
type glyphRecord struct {
	data       []byte
	components []Component
}

// plan is the transient state of a single Subset call.
type plan struct {
	font *Font

	chars    []rune
	charGids map[rune]u16

	records  map[u16]*glyphRecord
	retained bitset.BitSet
	glyphIds []u16
	gidRemap map[u16]u16

	diagnostics diagnostics
}

// Subset builds a new font file holding the glyphs for chars and every glyph
// they reference. Characters that cannot be resolved are reported in the
// result's Diagnostics rather than failing the call.
func (f *Font) Subset(chars []rune) (*Subset, error) {
	if f.loca == nil {
		return nil, unsupported("font has no 'glyf' outlines to subset")
	}
	if f.FsType&fsTypeNoSubsetting != 0 {
		return nil, unsupported("OS/2 fsType 0x%04x forbids subsetting", f.FsType)
	}

	p := plan{
		font:     f,
		charGids: map[rune]u16{},
		records:  map[u16]*glyphRecord{},
	}

	if err := p.resolve(chars); err != nil {
		return nil, err
	}
	p.order()
	p.remapComponents()

	gen := Generator{font: f, plan: &p}
	out := gen.generate()

	tracer().Debugf(
		"ttf: subset of %s: %d chars, %d glyphs, %d bytes",
		f,
		len(p.chars),
		len(p.glyphIds),
		len(out),
	)

	return &Subset{
		Font:        out,
		Glyphs:      p.glyphIds,
		Remap:       p.gidRemap,
		Chars:       p.chars,
		Diagnostics: p.diagnostics,
	}, nil
}

// record returns the owned copy of gid, reading it on first use.
func (p *plan) record(gid u16) (*glyphRecord, error) {
	if rec, ok := p.records[gid]; ok {
		return rec, nil
	}

	glyph, err := p.font.Glyph(gid)
	if err != nil {
		return nil, err
	}

	rec := &glyphRecord{
		data:       slices.Clone(glyph.Data),
		components: glyph.Components,
	}
	p.records[gid] = rec

	return rec, nil
}

// resolve maps chars to glyphs and closes the retained set under "is a
// component of".
func (p *plan) resolve(chars []rune) error {
	var requested []u16
	var closureOnly []u16
	var seenChars bitset.BitSet

	retain := func(gid u16, list *[]u16) bool {
		if p.retained.Test(uint(gid)) {
			return false
		}
		p.retained.Set(uint(gid))
		*list = append(*list, gid)
		return true
	}

	for _, char := range chars {
		if char < 0 || char > unicode.MaxRune {
			p.diagnostics.add(Diagnostic{Kind: UnmappedCharacter, Char: char})
			continue
		}
		if seenChars.Test(uint(char)) {
			continue
		}
		seenChars.Set(uint(char))

		gid, ok := p.font.GlyphIndex(char)

		if char == ' ' {
			// Space always resolves, to glyph 0 if unmapped. The outline of
			// a dedicated space glyph is dropped.
			if gid >= p.font.GlyphCount {
				p.diagnostics.add(Diagnostic{
					Kind:   OutOfRangeGlyph,
					Char:   char,
					Glyph:  u32(gid),
					Detail: fmt.Sprintf("mapped from %U", char),
				})
				continue
			}
			if ok && gid != 0 {
				p.records[gid] = &glyphRecord{}
				retain(gid, &requested)
			} else {
				gid = 0
			}
			p.chars = append(p.chars, char)
			p.charGids[char] = gid
			continue
		}

		if !ok || gid == 0 {
			p.diagnostics.add(Diagnostic{Kind: UnmappedCharacter, Char: char})
			continue
		}
		if gid >= p.font.GlyphCount {
			p.diagnostics.add(Diagnostic{
				Kind:   OutOfRangeGlyph,
				Char:   char,
				Glyph:  u32(gid),
				Detail: fmt.Sprintf("mapped from %U", char),
			})
			continue
		}

		p.chars = append(p.chars, char)
		p.charGids[char] = gid
		retain(gid, &requested)
	}

	// Glyph 0 is required:
	// https://learn.microsoft.com/en-us/typography/opentype/spec/recom#glyph-0-the-notdef-glyph
	retain(0, &closureOnly)

	gidStack := slices.Concat(requested, closureOnly)
	for len(gidStack) > 0 {
		gid := gidStack[len(gidStack)-1]
		gidStack = gidStack[:len(gidStack)-1]

		rec, err := p.record(gid)
		if err != nil {
			return err
		}

		for _, component := range rec.components {
			if component.Index >= p.font.GlyphCount {
				p.diagnostics.add(Diagnostic{
					Kind:   OutOfRangeGlyph,
					Glyph:  u32(component.Index),
					Detail: fmt.Sprintf("component of glyph %d", gid),
				})
				continue
			}

			if retain(component.Index, &closureOnly) {
				gidStack = append(gidStack, component.Index)
			}
		}
	}

	p.glyphIds = slices.Concat(requested, closureOnly)

	return nil
}

// order sorts the retained glyphs by original index and assigns new
// indices in that order.
func (p *plan) order() {
	slices.SortStableFunc(p.glyphIds, func(a, b u16) int {
		return int(a) - int(b)
	})

	p.gidRemap = make(map[u16]u16, len(p.glyphIds))
	for gidNew, gidOld := range p.glyphIds {
		p.gidRemap[gidOld] = u16(gidNew)
	}
}

// remapComponents rewrites the component references of every retained
// compound glyph in its owned copy.
func (p *plan) remapComponents() {
	for _, gid := range p.glyphIds {
		rec := p.records[gid]

		for _, component := range rec.components {
			gidNew, ok := p.gidRemap[component.Index]
			if !ok {
				p.diagnostics.add(Diagnostic{
					Kind:   UnresolvedComponent,
					Glyph:  u32(component.Index),
					Detail: fmt.Sprintf("referenced by glyph %d", gid),
				})
				gidNew = 0
			}

			binary.BigEndian.PutUint16(rec.data[component.Offset:], gidNew)
		}
	}
}
