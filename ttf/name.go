package ttf

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Names holds the human readable strings of the 'name' table.
type Names struct {
	Family     string
	Subfamily  string
	Full       string
	PostScript string
}

const (
	nameIdFamily     = 1
	nameIdSubfamily  = 2
	nameIdFull       = 4
	nameIdPostScript = 6
)

const (
	langMacEnglish = 0
	langMsEnUs     = 0x0409
)

// nameRank orders candidate records: lower is preferred.
func nameRank(platform, enc, language u16) (rank int, dec *encoding.Decoder) {
	switch {
	case platform == platformMicrosoft &&
		(enc == codeMsUnicodeBmp || enc == codeMsUnicodeExt || enc == codeMsSymbol):
		rank = 2
		if language == langMsEnUs {
			rank = 0
		}
		return rank, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()

	case platform == platformUnicode:
		return 1, unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()

	case platform == platformMacintosh && enc == codeMacRoman:
		rank = 4
		if language == langMacEnglish {
			rank = 3
		}
		return rank, charmap.Macintosh.NewDecoder()
	}

	return -1, nil
}

// https://learn.microsoft.com/en-us/typography/opentype/spec/name
func (p *Parser) parseName() error {
	table := p.font.table(TableNameName)
	r := NewReader(table)

	r.skip(2) // version
	count := r.u16()
	storage := u32(r.u16())
	if err := r.Err(); err != nil {
		return malformed(TableNameName, "%v", err)
	}

	best := map[u16]int{}
	for range count {
		platform := r.u16()
		enc := r.u16()
		language := r.u16()
		nameId := r.u16()
		length := u32(r.u16())
		offset := u32(r.u16())
		if err := r.Err(); err != nil {
			return malformed(TableNameName, "%v", err)
		}

		var dst *string
		switch nameId {
		case nameIdFamily:
			dst = &p.font.Names.Family
		case nameIdSubfamily:
			dst = &p.font.Names.Subfamily
		case nameIdFull:
			dst = &p.font.Names.Full
		case nameIdPostScript:
			dst = &p.font.Names.PostScript
		default:
			continue
		}

		rank, dec := nameRank(platform, enc, language)
		if dec == nil {
			continue
		}
		if prev, ok := best[nameId]; ok && prev <= rank {
			continue
		}

		start := storage + offset
		if u64(start)+u64(length) > u64(len(table)) {
			// Name strings are informational; a bad record is not fatal.
			tracer().Infof("ttf: name record %d outside 'name' table", nameId)
			continue
		}

		decoded, err := dec.Bytes(table[start : start+length])
		if err != nil {
			tracer().Infof("ttf: undecodable name record %d: %v", nameId, err)
			continue
		}

		*dst = string(decoded)
		best[nameId] = rank
	}

	return nil
}
