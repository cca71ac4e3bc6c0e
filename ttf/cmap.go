package ttf

import (
	"fmt"
	"unicode"

	"github.com/bits-and-blooms/bitset"
)

const (
	cmapFormat0  = 0
	cmapFormat4  = 4
	cmapFormat6  = 6
	cmapFormat12 = 12
)

// https://learn.microsoft.com/en-us/typography/opentype/spec/cmap
//
// Every encoding record is decoded in table order into a single map, so a
// later subtable overrides an earlier one for the same code.
func (p *Parser) parseCmap() error {
	r := p.table(TableNameCmap)
	r.skip(2) // version

	subtableCount := r.u16()

	offsets := make([]u32, 0, subtableCount)
	for range subtableCount {
		platform := r.u16()
		code := r.u16()
		offset := r.u32()
		tracer().Debugf("ttf: cmap record (%d,%d) at %d", platform, code, offset)

		if platform == platformMicrosoft && code == codeMsSymbol {
			p.font.Flags |= FlagSymbolic
		}

		offsets = append(offsets, offset)
	}
	if err := r.Err(); err != nil {
		return malformed(TableNameCmap, "%v", err)
	}
	if p.font.Flags&FlagSymbolic == 0 {
		p.font.Flags |= FlagAdobeStandard
	}

	decoded := map[u32]bool{}
	for _, offset := range offsets {
		if decoded[offset] {
			continue
		}
		decoded[offset] = true

		sub := r.sub(offset, r.Len()-min(offset, r.Len()))
		if err := p.parseCmapSubtable(&sub); err != nil {
			return err
		}
	}

	return nil
}

func (p *Parser) parseCmapSubtable(r *Reader) error {
	format := r.u16()
	if err := r.Err(); err != nil {
		return malformed(TableNameCmap, "subtable: %v", err)
	}

	var err error
	switch format {
	case cmapFormat0:
		err = p.parseCmapFormat0(r)
	case cmapFormat4:
		err = p.parseCmapFormat4(r)
	case cmapFormat6:
		err = p.parseCmapFormat6(r)
	case cmapFormat12:
		err = p.parseCmapFormat12(r)
	default:
		tracer().Debugf("ttf: skipping cmap subtable format %d", format)
		return nil
	}

	if err == nil {
		err = r.Err()
	}
	if err != nil {
		return malformed(TableNameCmap, "format %d: %v", format, err)
	}

	return nil
}

// Byte encoding table.
func (p *Parser) parseCmapFormat0(r *Reader) error {
	r.skip(4) // length, language

	gids := r.read(256)
	for char, gid := range gids {
		if gid != 0 {
			p.font.setGlyph(rune(char), u16(gid))
		}
	}

	return nil
}

// Segment mapping to delta values.
func (p *Parser) parseCmapFormat4(r *Reader) error {
	r.skip(4) // length, language

	segCountX2 := r.u16()
	if segCountX2%2 != 0 {
		return fmt.Errorf("odd segCountX2 %d", segCountX2)
	}
	segCount := u32(segCountX2 / 2)

	r.skip(6) // Search helper params

	posEndCodes := r.Pos()
	posStartCodes := posEndCodes + 2*segCount + 2 // reservedPad
	posDeltas := posStartCodes + 2*segCount
	posRangeOffsets := posDeltas + 2*segCount

	// Make sure every parallel array is present before walking them.
	r.readAt(posEndCodes, 8*segCount+2)
	if err := r.Err(); err != nil {
		return err
	}

	// The last segment is the required 0xffff sentinel.
	for seg := u32(0); seg+1 < segCount; seg++ {
		end := u32(r.u16At(posEndCodes + 2*seg))
		start := u32(r.u16At(posStartCodes + 2*seg))
		delta := r.u16At(posDeltas + 2*seg)
		posRangeOffset := posRangeOffsets + 2*seg
		rangeOffset := u32(r.u16At(posRangeOffset))

		if start > end {
			tracer().Debugf("ttf: cmap format 4 segment %d has start > end", seg)
			continue
		}

		for char := start; char <= end; char++ {
			var gid u16
			if rangeOffset == 0 {
				// Delta arithmetic is modulo 0x10000:
				gid = u16(char) + delta
			} else {
				posGlyphIndex := posRangeOffset + rangeOffset + 2*(char-start)
				if gid = r.u16At(posGlyphIndex); gid != 0 {
					gid += delta
				}
				if err := r.Err(); err != nil {
					return fmt.Errorf("segment %d: %w", seg, err)
				}
			}

			p.font.setGlyph(rune(char), gid)

			if !p.opts.MirrorArabic {
				continue
			}
			if iso, ok := arabicIsolated[rune(char)]; ok {
				p.font.setGlyph(iso, gid)
			}
		}
	}

	return nil
}

// Trimmed table mapping.
func (p *Parser) parseCmapFormat6(r *Reader) error {
	r.skip(4) // length, language

	firstCode := u32(r.u16())
	entryCount := u32(r.u16())

	for i := range entryCount {
		if gid := r.u16(); gid != 0 {
			p.font.setGlyph(rune(firstCode+i), gid)
		}
	}

	return nil
}

// Segmented coverage.
func (p *Parser) parseCmapFormat12(r *Reader) error {
	r.skip(2) // reserved

	length := r.u32()
	r.skip(4) // language
	groupCount := r.u32()
	if err := r.Err(); err != nil {
		return err
	}

	if want := 16 + 12*u64(groupCount); u64(length) != want {
		return fmt.Errorf("length %d, want %d for %d groups", length, want, groupCount)
	}

	var seen bitset.BitSet
	for group := range groupCount {
		start := r.u32()
		end := r.u32()
		startGid := r.u32()
		if err := r.Err(); err != nil {
			return err
		}

		if start > end || end > unicode.MaxRune {
			return fmt.Errorf("group %d has invalid range %#x-%#x", group, start, end)
		}

		if u64(startGid)+u64(end-start) > 0xffff {
			p.font.diagnostics.add(Diagnostic{
				Kind:   OutOfRangeGlyph,
				Glyph:  startGid + (end - start),
				Detail: fmt.Sprintf("cmap format 12 group %d", group),
			})
			continue
		}

		overlap := false
		for char := start; char <= end; char++ {
			if seen.Test(uint(char)) {
				overlap = true
			}
			seen.Set(uint(char))

			p.font.setGlyph(rune(char), u16(startGid+(char-start)))
		}

		if overlap {
			p.font.diagnostics.add(Diagnostic{
				Kind: CmapOverlap,
				Detail: fmt.Sprintf(
					"format 12 group %d (%#x-%#x) remaps codes of an earlier group",
					group,
					start,
					end,
				),
			})
		}
	}

	return nil
}
