package ttf

import (
	"fmt"
	"math/bits"
	"slices"
)

// Table locates one table inside a font file.
type Table struct {
	Checksum u32
	Len      u32
	Ptr      u32
	Name     tableName
}

func (t *Table) LenPadded() u32 {
	return lenPadded(t.Len)
}

func (t *Table) String() string {
	return fmt.Sprintf("%s 0x%x: %d bytes", t.Name, t.Ptr, t.Len)
}

// Directory is the parsed SFNT table directory.
type Directory struct {
	index   map[tableName]Table
	Tables  []Table // in file order
	Version u32
}

// Has reports whether the directory lists the named table.
func (d *Directory) Has(name tableName) bool {
	_, ok := d.index[name]
	return ok
}

// Lookup returns the record for the named table.
func (d *Directory) Lookup(name tableName) (Table, bool) {
	t, ok := d.index[name]
	return t, ok
}

var requiredTables = []tableName{
	TableNameHead,
	TableNameName,
	TableNameHmtx,
	TableNameHhea,
	TableNameCmap,
	TableNameMaxp,
}

// https://learn.microsoft.com/en-us/typography/opentype/spec/otff#table-directory
func parseDirectory(r *Reader) (Directory, error) {
	dir := Directory{index: map[tableName]Table{}}

	r.seekTo(0)
	dir.Version = r.u32()
	tableCount := r.u16()
	r.skip(6) // searchRange, entrySelector, rangeShift (all u16)
	if err := r.Err(); err != nil {
		return dir, unsupported("truncated sfnt header: %v", err)
	}

	switch dir.Version {
	case sfntVersionTrueType, sfntVersionApple:
	case sfntVersionCff:
		return dir, unsupported("CFF outlines are not supported")
	default:
		return dir, unsupported("expected TrueType font, got type %x", dir.Version)
	}

	dir.Tables = make([]Table, 0, tableCount)
	for range tableCount {
		table := Table{
			Name:     tableName(r.tag()),
			Checksum: r.u32(),
			Ptr:      r.u32(),
			Len:      r.u32(),
		}
		if err := r.Err(); err != nil {
			return dir, &MalformedTableError{
				Table:  "sfnt directory",
				Reason: err.Error(),
			}
		}

		if u64(table.Ptr)+u64(table.Len) > u64(r.Len()) {
			return dir, malformed(
				table.Name,
				"table at %d with length %d exceeds file length %d",
				table.Ptr,
				table.Len,
				r.Len(),
			)
		}

		if _, dup := dir.index[table.Name]; dup {
			tracer().Infof("ttf: duplicate %q table record ignored", table.Name)
			continue
		}

		dir.index[table.Name] = table
		dir.Tables = append(dir.Tables, table)
	}

	for _, name := range requiredTables {
		if !dir.Has(name) {
			return dir, unsupported("missing required %q table", name)
		}
	}

	return dir, nil
}

// searchParams returns the binary search hints stored in an SFNT header
// (and in cmap format 4) for the given number of 'unitSize'-byte entries.
func searchParams(count u16, unitSize u16) (searchRange, entrySelector, rangeShift u16) {
	if count == 0 {
		return 0, 0, 0
	}

	entrySelector = u16(bits.Len16(count) - 1)
	searchRange = unitSize << entrySelector
	rangeShift = count*unitSize - searchRange

	return
}

// sortedTableNames returns the keys of tables in ascending tag order.
func sortedTableNames(tables map[tableName][]byte) []tableName {
	names := make([]tableName, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}
