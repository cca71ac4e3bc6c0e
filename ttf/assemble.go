package ttf

import (
	"encoding/binary"
)

const checksumMagic = 0xb1b0afba

// Checksum sums data as big-endian uint32 words, zero-padding the final
// partial word.
func Checksum(data []byte) u32 {
	var sum u32
	for len(data) >= 4 {
		sum += binary.BigEndian.Uint32(data)
		data = data[4:]
	}

	if len(data) > 0 {
		tail := [4]byte{}
		copy(tail[:], data)
		sum += binary.BigEndian.Uint32(tail[:])
	}

	return sum
}

// assemble writes an SFNT file holding tables, sorted by tag, and sets the
// whole-file checksum adjustment in 'head'. The 'head' checkSumAdjustment
// field must already be zero.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/otff#calculating-checksums
func assemble(tables map[tableName][]byte) []byte {
	names := sortedTableNames(tables)
	tableCount := u16(len(names))

	lenIndex := 12 + 16*u32(tableCount)
	total := lenIndex
	for _, name := range names {
		total += lenPadded(u32(len(tables[name])))
	}

	w := NewWriter(nil)
	w.ensureCapRemaining(total)

	w.u32(sfntVersionTrueType)
	w.u16(tableCount)

	searchRange, entrySelector, rangeShift := searchParams(tableCount, 16)
	w.u16(searchRange)
	w.u16(entrySelector)
	w.u16(rangeShift)

	// Reserve index bytes for later writing:
	w.skip(lenIndex - w.Len())

	var headPtr u32
	hasHead := false
	for i, name := range names {
		table := tables[name]
		ptr := w.Len()

		w.write(table)
		w.pad4()

		if name == TableNameHead {
			headPtr = ptr
			hasHead = true
		}

		record := 12 + 16*u32(i)
		w.putU32At(record, u32(name))
		w.putU32At(record+4, Checksum(w.buf[ptr:w.Len()]))
		w.putU32At(record+8, ptr)
		w.putU32At(record+12, u32(len(table)))
	}

	if hasHead {
		w.putU32At(headPtr+headCheckSumAdjustment, checksumMagic-Checksum(w.Bytes()))
	}

	return w.Bytes()
}
