package ttf

import (
	"fmt"
)

type glyfFlag u16

const (
	// If set, the arguments are words; If not set, they are bytes.
	GlyfFlagArg1And2AreWords glyfFlag = 1 << iota

	// If set, the arguments are xy values; If not set, they are points.
	GlyfFlagArgsAreXyValues

	// If set, round the xy values to grid; if not set do not round xy values to
	// grid (relevant only to bit 1 is set)
	GlyfFlagRoundXyToGrid

	// If set, there is a simple scale for the component.
	// If not set, scale is 1.0.
	GlyfFlagWeHaveAScale

	// (obsolete; set to zero)
	GlyfFlagObsolete

	// If set, at least one additional glyph follows this one.
	GlyfFlagMoreComponents

	// If set the x direction will use a different scale than the y direction.
	GlyfFlagWeHaveAnXAndYScale

	// If set there is a 2-by-2 transformation that will be used to scale the
	// component.
	GlyfFlagWeHaveATwoByTwo

	// If set, instructions for the component character follow the last
	// component.
	GlyfFlagWeHaveInstructions

	// Use metrics from this component for the compound glyph.
	GlyfFlagUseMyMetrics

	// If set, the components of this compound glyph overlap.
	GlyfFlagOverlapCompound
)

func (flag glyfFlag) Test(flags u16) bool {
	return glyfFlag(flags)&flag == flag
}

// Per-point flags of simple glyphs.
const (
	pointOnCurve    = 0x01
	pointXShort     = 0x02
	pointYShort     = 0x04
	pointRepeat     = 0x08
	pointXSameOrPos = 0x10
	pointYSameOrPos = 0x20
)

const glyphHeaderLen = 10 // numberOfContours + bounding box

// Glyph is one glyph record from the 'glyf' table.
type Glyph struct {
	// Data is the glyph's byte record: header, outline or components, and
	// instructions, without trailing padding. It aliases the font's
	// buffer and must not be modified.
	Data []byte

	// Components lists the glyphs referenced by a compound glyph, in
	// record order. It is empty for simple glyphs.
	Components []Component

	XMin, YMin, XMax, YMax i16

	Index u16
}

// Compound reports whether the glyph is built from other glyphs.
func (g *Glyph) Compound() bool {
	return len(g.Components) > 0
}

// Component is one glyph reference inside a compound glyph.
type Component struct {
	// Offset of the 16-bit glyph index inside the compound record.
	Offset u32

	Flags u16
	Index u16
}

// Glyph decodes the glyph record for gid.
func (f *Font) Glyph(gid u16) (Glyph, error) {
	if f.loca == nil {
		return Glyph{}, unsupported("font has no 'glyf' outlines")
	}

	offset, size, ok := f.GlyphLocation(gid)
	if !ok {
		return Glyph{}, fmt.Errorf("%w: %d >= %d", ErrGlyphOutOfRange, gid, f.GlyphCount)
	}

	glyph := Glyph{Index: gid}
	if size == 0 {
		return glyph, nil
	}

	glyf, _ := f.dir.Lookup(TableNameGlyf)
	data := f.data[glyf.Ptr+offset : glyf.Ptr+offset+size]

	var err error
	var span u32
	glyph.Data = data
	r := NewReader(data)
	contourCount := r.i16()
	glyph.XMin = r.i16()
	glyph.YMin = r.i16()
	glyph.XMax = r.i16()
	glyph.YMax = r.i16()
	if err = r.Err(); err != nil {
		return Glyph{}, malformed(TableNameGlyf, "glyph %d: %v", gid, err)
	}

	if contourCount < 0 {
		span, glyph.Components, err = compoundGlyphSpan(data)
	} else {
		span, err = simpleGlyphSpan(data, u16(contourCount))
	}
	if err != nil {
		return Glyph{}, malformed(TableNameGlyf, "glyph %d: %v", gid, err)
	}

	glyph.Data = data[:span:span]

	return glyph, nil
}

// simpleGlyphSpan returns the length of a simple glyph record. Coordinate
// values are not decoded; only their sizes are accumulated from the flags.
func simpleGlyphSpan(data []byte, contourCount u16) (u32, error) {
	r := NewReader(data)
	r.seekTo(glyphHeaderLen)

	var pointCount u32
	if contourCount > 0 {
		r.skip(2 * u32(contourCount-1))
		pointCount = u32(r.u16()) + 1
	}

	instructionLen := r.u16()
	r.skip(u32(instructionLen))

	var xLen, yLen u32
	for point := u32(0); point < pointCount; {
		flags := r.u8()
		repeat := u32(1)
		if flags&pointRepeat != 0 {
			repeat += u32(r.u8())
		}
		if err := r.Err(); err != nil {
			return 0, fmt.Errorf("flags: %w", err)
		}

		switch {
		case flags&pointXShort != 0:
			xLen += repeat
		case flags&pointXSameOrPos == 0:
			xLen += 2 * repeat
		}

		switch {
		case flags&pointYShort != 0:
			yLen += repeat
		case flags&pointYSameOrPos == 0:
			yLen += 2 * repeat
		}

		point += repeat
		if point > pointCount {
			return 0, fmt.Errorf("flag repeat overruns %d points", pointCount)
		}
	}

	r.skip(xLen + yLen)
	if r.Pos() > r.Len() {
		return 0, fmt.Errorf(
			"coordinates end at %d past record length %d",
			r.Pos(),
			r.Len(),
		)
	}

	return r.Pos(), r.Err()
}

// compoundGlyphSpan returns the length of a compound glyph record and its
// components. Each component's length is derived from its own flags.
func compoundGlyphSpan(data []byte) (u32, []Component, error) {
	r := NewReader(data)
	r.seekTo(glyphHeaderLen)

	var components []Component
	hasInstructions := false
	for {
		flags := r.u16()
		component := Component{Flags: flags, Offset: r.Pos()}
		component.Index = r.u16()
		if err := r.Err(); err != nil {
			return 0, nil, fmt.Errorf("component %d: %w", len(components), err)
		}
		components = append(components, component)

		if GlyfFlagArg1And2AreWords.Test(flags) {
			r.skip(4)
		} else {
			r.skip(2)
		}

		if GlyfFlagWeHaveAScale.Test(flags) {
			r.skip(2)
		} else if GlyfFlagWeHaveAnXAndYScale.Test(flags) {
			r.skip(4)
		} else if GlyfFlagWeHaveATwoByTwo.Test(flags) {
			r.skip(8)
		}

		if GlyfFlagWeHaveInstructions.Test(flags) {
			hasInstructions = true
		}

		if !GlyfFlagMoreComponents.Test(flags) {
			break
		}
	}

	if hasInstructions {
		instructionLen := r.u16()
		r.skip(u32(instructionLen))
	}

	if r.Pos() > r.Len() {
		return 0, nil, fmt.Errorf(
			"components end at %d past record length %d",
			r.Pos(),
			r.Len(),
		)
	}

	return r.Pos(), components, r.Err()
}
