package ttf

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFont is matched by every [UnsupportedFontError].
	ErrUnsupportedFont = errors.New("unsupported font")

	// ErrMalformedTable is matched by every [MalformedTableError].
	ErrMalformedTable = errors.New("malformed table")

	// ErrGlyphOutOfRange is returned for glyph indices >= the glyph count.
	ErrGlyphOutOfRange = errors.New("glyph index out of range")
)

// UnsupportedFontError reports a font that cannot be used at all, such as
// one missing a required table.
type UnsupportedFontError struct {
	Reason string
}

func (e *UnsupportedFontError) Error() string {
	return "unsupported font: " + e.Reason
}

func (e *UnsupportedFontError) Unwrap() error {
	return ErrUnsupportedFont
}

func unsupported(format string, args ...any) error {
	return &UnsupportedFontError{Reason: fmt.Sprintf(format, args...)}
}

// MalformedTableError reports a length, offset or checksum invariant that
// does not hold inside a specific table.
type MalformedTableError struct {
	Table  string
	Reason string
}

func (e *MalformedTableError) Error() string {
	return fmt.Sprintf("malformed %q table: %s", e.Table, e.Reason)
}

func (e *MalformedTableError) Unwrap() error {
	return ErrMalformedTable
}

func malformed(table tableName, format string, args ...any) error {
	return &MalformedTableError{
		Table:  table.String(),
		Reason: fmt.Sprintf(format, args...),
	}
}

// DiagnosticKind classifies a recoverable problem.
type DiagnosticKind u8

const (
	// A requested character has no glyph; it is left out of the subset.
	UnmappedCharacter DiagnosticKind = iota + 1

	// A compound glyph references a glyph outside the subset; the
	// reference is zeroed.
	UnresolvedComponent

	// A glyph index is >= the font's glyph count; it is skipped.
	OutOfRangeGlyph

	// Two format 12 groups map the same character code.
	CmapOverlap

	// CBLC/CBDT data could not be decoded and was ignored.
	BitmapSkipped
)

func (k DiagnosticKind) String() string {
	switch k {
	case UnmappedCharacter:
		return "unmapped character"
	case UnresolvedComponent:
		return "unresolved component"
	case OutOfRangeGlyph:
		return "glyph out of range"
	case CmapOverlap:
		return "cmap overlap"
	case BitmapSkipped:
		return "bitmap skipped"
	}

	return fmt.Sprintf("diagnostic(%d)", u8(k))
}

// Diagnostic is a recoverable condition found while loading or subsetting.
type Diagnostic struct {
	Detail string
	Glyph  u32
	Char   rune
	Kind   DiagnosticKind
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case UnmappedCharacter:
		return fmt.Sprintf("%s: %U", d.Kind, d.Char)
	case UnresolvedComponent, OutOfRangeGlyph:
		if d.Detail != "" {
			return fmt.Sprintf("%s: glyph %d (%s)", d.Kind, d.Glyph, d.Detail)
		}
		return fmt.Sprintf("%s: glyph %d", d.Kind, d.Glyph)
	}

	return fmt.Sprintf("%s: %s", d.Kind, d.Detail)
}

type diagnostics []Diagnostic

func (d *diagnostics) add(diag Diagnostic) {
	tracer().Infof("ttf: %s", diag)
	*d = append(*d, diag)
}
