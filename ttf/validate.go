package ttf

import (
	"errors"
	"fmt"
)

// Validate checks the structural invariants of an SFNT file: header search
// parameters, sorted table records inside the file, per-table checksums,
// the whole-file checksum adjustment and the 'loca' length. All failures
// are returned together.
func Validate(data []byte) error {
	r := NewReader(data)

	version := r.u32()
	tableCount := r.u16()
	searchRange := r.u16()
	entrySelector := r.u16()
	rangeShift := r.u16()
	if err := r.Err(); err != nil {
		return unsupported("truncated sfnt header: %v", err)
	}
	if version != sfntVersionTrueType && version != sfntVersionApple {
		return unsupported("expected TrueType font, got type %x", version)
	}

	var errs []error
	fail := func(table tableName, format string, args ...any) {
		errs = append(errs, malformed(table, format, args...))
	}

	wantRange, wantSelector, wantShift := searchParams(tableCount, 16)
	if searchRange != wantRange || entrySelector != wantSelector || rangeShift != wantShift {
		errs = append(errs, &MalformedTableError{
			Table: "sfnt directory",
			Reason: fmt.Sprintf(
				"search params (%d, %d, %d), want (%d, %d, %d)",
				searchRange, entrySelector, rangeShift,
				wantRange, wantSelector, wantShift,
			),
		})
	}

	tables := map[tableName]Table{}
	var prev tableName
	for i := range tableCount {
		table := Table{
			Name:     tableName(r.tag()),
			Checksum: r.u32(),
			Ptr:      r.u32(),
			Len:      r.u32(),
		}
		if err := r.Err(); err != nil {
			return errors.Join(append(errs, &MalformedTableError{
				Table:  "sfnt directory",
				Reason: err.Error(),
			})...)
		}

		if i > 0 && table.Name <= prev {
			fail(table.Name, "record out of tag order after %q", prev)
		}
		prev = table.Name

		if u64(table.Ptr)+u64(table.Len) > u64(len(data)) {
			fail(table.Name, "table at %d with length %d exceeds file length %d",
				table.Ptr, table.Len, len(data))
			continue
		}
		tables[table.Name] = table

		if sum := tableChecksum(data, table); sum != table.Checksum {
			fail(table.Name, "checksum 0x%08x, recorded 0x%08x", sum, table.Checksum)
		}
	}

	if head, ok := tables[TableNameHead]; ok && head.Len >= headCheckSumAdjustment+4 {
		if sum := Checksum(data); sum != checksumMagic {
			fail(TableNameHead, "file checksum 0x%08x, want 0x%08x", sum, u32(checksumMagic))
		}
	}

	if err := validateLoca(data, tables); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// tableChecksum sums the table's bytes including padding, treating the
// 'head' checkSumAdjustment field as zero.
func tableChecksum(data []byte, table Table) u32 {
	end := min(u64(table.Ptr)+u64(table.LenPadded()), u64(len(data)))
	sum := Checksum(data[table.Ptr:end])

	if table.Name == TableNameHead && table.Len >= headCheckSumAdjustment+4 {
		r := NewReader(data)
		sum -= r.u32At(table.Ptr + headCheckSumAdjustment)
	}

	return sum
}

func validateLoca(data []byte, tables map[tableName]Table) error {
	loca, hasLoca := tables[TableNameLoca]
	head, hasHead := tables[TableNameHead]
	maxp, hasMaxp := tables[TableNameMaxp]
	if !hasLoca || !hasHead || !hasMaxp {
		return nil
	}

	r := NewReader(data)
	format := r.u16At(head.Ptr + headIndexToLocFormat)
	glyphCount := r.u16At(maxp.Ptr + maxpNumGlyphs)
	if err := r.Err(); err != nil {
		return malformed(TableNameLoca, "reading head/maxp: %v", err)
	}

	entrySize := u32(2)
	if format == locaFormatLong {
		entrySize = 4
	}

	if want := (u32(glyphCount) + 1) * entrySize; loca.Len < want {
		return malformed(TableNameLoca, "length %d, want %d for %d glyphs", loca.Len, want, glyphCount)
	}

	return nil
}
