package ttf

import (
	"encoding/binary"
	"fmt"
)

// Reader is a big-endian cursor over an immutable byte slice.
//
// Reads past the end of the buffer do not panic: the first one records an
// error, returns zero values, and every later read is a no-op. Callers check
// [Reader.Err] once a block of fields has been consumed.
type Reader struct {
	buf []byte
	err error
	pos u32
}

func NewReader(bytes []byte) Reader {
	return Reader{buf: bytes}
}

// Err returns the first out-of-bounds access, if any.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) Len() u32 {
	return u32(len(r.buf))
}

func (r *Reader) Pos() u32 {
	return r.pos
}

func (r *Reader) fail(pos u32, count u32) {
	if r.err != nil {
		return
	}

	r.err = fmt.Errorf(
		"read of %d bytes at offset %d exceeds length %d",
		count,
		pos,
		len(r.buf),
	)
}

func (r *Reader) fixed() fixed {
	return fixed(r.i32())
}

func (r *Reader) fword() fword {
	return fword(r.i16())
}

func (r *Reader) i8() i8 {
	return i8(r.u8())
}

func (r *Reader) i16() i16 {
	return i16(r.u16())
}

func (r *Reader) i32() i32 {
	return i32(r.u32())
}

func (r *Reader) read(count u32) []byte {
	bytes := r.readAt(r.pos, count)
	if bytes != nil {
		r.pos += count
	}

	return bytes
}

func (r *Reader) readAt(pos u32, count u32) []byte {
	if r.err != nil {
		return nil
	}

	if u64(pos)+u64(count) > u64(len(r.buf)) {
		r.fail(pos, count)
		return nil
	}

	return r.buf[pos : pos+count : pos+count]
}

func (r *Reader) seekTo(pos u32) {
	r.pos = pos
}

func (r *Reader) skip(count u32) {
	r.pos += count
}

// sub returns a reader over [pos, pos+count) of r's buffer.
func (r *Reader) sub(pos u32, count u32) Reader {
	bytes := r.readAt(pos, count)
	if bytes == nil {
		return Reader{err: r.err}
	}

	return NewReader(bytes)
}

func (r *Reader) tag() tag {
	return tag(r.u32())
}

func (r *Reader) u8() u8 {
	bytes := r.read(1)
	if bytes == nil {
		return 0
	}

	return bytes[0]
}

func (r *Reader) u16() u16 {
	bytes := r.read(2)
	if bytes == nil {
		return 0
	}

	return binary.BigEndian.Uint16(bytes)
}

func (r *Reader) u16At(pos u32) u16 {
	bytes := r.readAt(pos, 2)
	if bytes == nil {
		return 0
	}

	return binary.BigEndian.Uint16(bytes)
}

func (r *Reader) u32() u32 {
	bytes := r.read(4)
	if bytes == nil {
		return 0
	}

	return binary.BigEndian.Uint32(bytes)
}

func (r *Reader) u32At(pos u32) u32 {
	bytes := r.readAt(pos, 4)
	if bytes == nil {
		return 0
	}

	return binary.BigEndian.Uint32(bytes)
}
