package ttf

import (
	"errors"
	"fmt"
)

// Index subtable formats.
const (
	indexFormat1 = 1 // Variable metrics, 32-bit offsets
	indexFormat2 = 2 // Constant metrics, no offset array
	indexFormat3 = 3 // Variable metrics, 16-bit offsets
	indexFormat4 = 4 // Variable metrics, sparse glyph IDs
	indexFormat5 = 5 // Constant metrics, sparse glyph IDs
)

// Image data formats (in CBDT).
const (
	imageFormat17 = 17 // Small metrics + PNG
	imageFormat18 = 18 // Big metrics + PNG
	imageFormat19 = 19 // Metrics in CBLC, PNG data only
)

const bitmapSizeRecordLen = 48

var errBitmapRange = errors.New("bitmap data out of range")

// Strike is one bitmap size of a color bitmap font.
type Strike struct {
	glyphs map[u16]bitmapLocation

	StartGlyph u16
	EndGlyph   u16
	PpemX      u8
	PpemY      u8
	BitDepth   u8
}

// Len returns the number of glyphs with bitmap data in the strike.
func (s *Strike) Len() int {
	return len(s.glyphs)
}

type bitmapLocation struct {
	metrics     *BitmapMetrics // shared metrics from CBLC, if any
	offset      u32
	size        u32
	imageFormat u16
}

// BitmapMetrics position a bitmap relative to the glyph origin, in pixels.
type BitmapMetrics struct {
	Height   u8
	Width    u8
	BearingX i8
	BearingY i8
	Advance  u8
}

// Bitmap is an embedded PNG image for one glyph.
type Bitmap struct {
	// PNG holds the encoded image. It aliases the font's buffer.
	PNG []byte

	Metrics BitmapMetrics
	Glyph   u16
	Ppem    u8
}

// Strikes returns the bitmap sizes found in 'CBLC', smallest first as stored.
func (f *Font) Strikes() []Strike {
	return f.strikes
}

// Bitmap returns the bitmap for gid from the smallest strike of at least
// ppem pixels, or from the largest strike when none is that big.
func (f *Font) Bitmap(gid u16, ppem u16) (Bitmap, bool) {
	strike := f.selectStrike(ppem)
	if strike == nil {
		return Bitmap{}, false
	}

	loc, ok := strike.glyphs[gid]
	if !ok {
		return Bitmap{}, false
	}

	bitmap, err := extractBitmap(f.table(TableNameCbdt), loc)
	if err != nil {
		tracer().Infof("ttf: bitmap for glyph %d: %v", gid, err)
		return Bitmap{}, false
	}
	bitmap.Glyph = gid
	bitmap.Ppem = strike.PpemY

	return bitmap, true
}

func (f *Font) selectStrike(ppem u16) *Strike {
	var best, largest *Strike
	for i := range f.strikes {
		s := &f.strikes[i]
		if largest == nil || s.PpemY > largest.PpemY {
			largest = s
		}
		if u16(s.PpemY) >= ppem && (best == nil || s.PpemY < best.PpemY) {
			best = s
		}
	}

	if best != nil {
		return best
	}

	return largest
}

// parseBitmaps indexes the 'CBLC' strikes. Problems are recorded as
// diagnostics; bitmap data is never required to use the font.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/cblc
func (p *Parser) parseBitmaps() {
	strikes, err := parseCblc(p.table(TableNameCblc))
	if err != nil {
		p.font.diagnostics.add(Diagnostic{
			Kind:   BitmapSkipped,
			Detail: err.Error(),
		})
		return
	}

	p.font.strikes = strikes
}

func parseCblc(r Reader) ([]Strike, error) {
	major := r.u16()
	r.skip(2) // minor version
	if major != 2 && major != 3 {
		return nil, fmt.Errorf("unsupported CBLC version %d", major)
	}

	sizeCount := r.u32()
	if err := r.Err(); err != nil {
		return nil, err
	}
	if u64(8)+u64(sizeCount)*bitmapSizeRecordLen > u64(r.Len()) {
		return nil, fmt.Errorf("%d bitmap size records exceed CBLC length", sizeCount)
	}

	strikes := make([]Strike, sizeCount)
	for i := range strikes {
		rec := r.sub(8+u32(i)*bitmapSizeRecordLen, bitmapSizeRecordLen)

		listOffset := rec.u32()
		rec.skip(4) // indexSubTableArraySize
		listCount := rec.u32()
		rec.skip(4 + 12 + 12) // colorRef, hori, vert

		s := &strikes[i]
		s.StartGlyph = rec.u16()
		s.EndGlyph = rec.u16()
		s.PpemX = rec.u8()
		s.PpemY = rec.u8()
		s.BitDepth = rec.u8()
		if err := rec.Err(); err != nil {
			return nil, err
		}

		s.glyphs = map[u16]bitmapLocation{}
		for j := range listCount {
			entry := r.sub(listOffset+8*j, 8)
			first := entry.u16()
			last := entry.u16()
			extraOffset := entry.u32()
			if err := entry.Err(); err != nil {
				return nil, fmt.Errorf("strike %d: %w", i, err)
			}
			if first > last {
				return nil, fmt.Errorf("strike %d: index subtable %d has first > last", i, j)
			}

			sub := r.sub(listOffset+extraOffset, r.Len()-min(listOffset+extraOffset, r.Len()))
			if err := parseIndexSubtable(&sub, first, last, s.glyphs); err != nil {
				return nil, fmt.Errorf("strike %d: %w", i, err)
			}
		}
	}

	return strikes, nil
}

func parseIndexSubtable(r *Reader, first, last u16, glyphs map[u16]bitmapLocation) error {
	indexFormat := r.u16()
	imageFormat := r.u16()
	imageDataOffset := r.u32()
	if err := r.Err(); err != nil {
		return err
	}

	switch imageFormat {
	case imageFormat17, imageFormat18, imageFormat19:
	default:
		tracer().Debugf("ttf: skipping CBDT image format %d", imageFormat)
		return nil
	}

	add := func(gid u16, offset, size u32, metrics *BitmapMetrics) {
		if size == 0 {
			return
		}
		glyphs[gid] = bitmapLocation{
			offset:      imageDataOffset + offset,
			size:        size,
			imageFormat: imageFormat,
			metrics:     metrics,
		}
	}

	count := u32(last-first) + 1

	switch indexFormat {
	case indexFormat1:
		prev := r.u32()
		for i := range count {
			next := r.u32()
			if next < prev {
				return fmt.Errorf("index format 1: offsets decrease at glyph %d", u32(first)+i)
			}
			add(first+u16(i), prev, next-prev, nil)
			prev = next
		}

	case indexFormat2:
		imageSize := r.u32()
		metrics := readBigMetrics(r)
		for i := range count {
			add(first+u16(i), i*imageSize, imageSize, &metrics)
		}

	case indexFormat3:
		prev := u32(r.u16())
		for i := range count {
			next := u32(r.u16())
			if next < prev {
				return fmt.Errorf("index format 3: offsets decrease at glyph %d", u32(first)+i)
			}
			add(first+u16(i), prev, next-prev, nil)
			prev = next
		}

	case indexFormat4:
		pairCount := r.u32()
		gid := r.u16()
		prev := u32(r.u16())
		for range pairCount {
			nextGid := r.u16()
			next := u32(r.u16())
			if r.Err() != nil {
				break
			}
			if next < prev {
				return fmt.Errorf("index format 4: offsets decrease at glyph %d", gid)
			}
			add(gid, prev, next-prev, nil)
			gid, prev = nextGid, next
		}

	case indexFormat5:
		imageSize := r.u32()
		metrics := readBigMetrics(r)
		glyphCount := r.u32()
		for i := range glyphCount {
			gid := r.u16()
			if r.Err() != nil {
				break
			}
			add(gid, i*imageSize, imageSize, &metrics)
		}

	default:
		return fmt.Errorf("unsupported index subtable format %d", indexFormat)
	}

	return r.Err()
}

// readBigMetrics reads BigGlyphMetrics, keeping the horizontal half.
func readBigMetrics(r *Reader) BitmapMetrics {
	m := BitmapMetrics{
		Height:   r.u8(),
		Width:    r.u8(),
		BearingX: r.i8(),
		BearingY: r.i8(),
		Advance:  r.u8(),
	}
	r.skip(3) // vertBearingX, vertBearingY, vertAdvance

	return m
}

func readSmallMetrics(r *Reader) BitmapMetrics {
	return BitmapMetrics{
		Height:   r.u8(),
		Width:    r.u8(),
		BearingX: r.i8(),
		BearingY: r.i8(),
		Advance:  r.u8(),
	}
}

// https://learn.microsoft.com/en-us/typography/opentype/spec/cbdt
func extractBitmap(cbdt []byte, loc bitmapLocation) (Bitmap, error) {
	all := NewReader(cbdt)
	r := all.sub(loc.offset, loc.size)
	if err := r.Err(); err != nil {
		return Bitmap{}, fmt.Errorf("%w: %v", errBitmapRange, err)
	}

	var bitmap Bitmap
	switch loc.imageFormat {
	case imageFormat17:
		bitmap.Metrics = readSmallMetrics(&r)
	case imageFormat18:
		bitmap.Metrics = readBigMetrics(&r)
	case imageFormat19:
		if loc.metrics != nil {
			bitmap.Metrics = *loc.metrics
		}
	default:
		return Bitmap{}, fmt.Errorf("unsupported image format %d", loc.imageFormat)
	}

	dataLen := r.u32()
	bitmap.PNG = r.read(dataLen)
	if err := r.Err(); err != nil {
		return Bitmap{}, fmt.Errorf("%w: %v", errBitmapRange, err)
	}

	return bitmap, nil
}
