package ttf

import (
	"encoding/binary"
	"slices"
)

// Writer is an append-only big-endian buffer with support for patching
// fields that were reserved earlier.
type Writer struct {
	buf []byte
}

func NewWriter(bytes []byte) Writer {
	return Writer{buf: bytes[:0]}
}

func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) ensureCapRemaining(byteCount u32) {
	w.buf = slices.Grow(w.buf, int(byteCount))
}

func (w *Writer) Len() u32 {
	return u32(len(w.buf))
}

// pad4 zero-fills up to the next 4-byte boundary.
func (w *Writer) pad4() {
	w.skip(padding(w.Len()))
}

func (w *Writer) putU16At(pos u32, val u16) {
	binary.BigEndian.PutUint16(w.buf[pos:pos+2], val)
}

func (w *Writer) putU32At(pos u32, val u32) {
	binary.BigEndian.PutUint32(w.buf[pos:pos+4], val)
}

// skip appends count zero bytes.
func (w *Writer) skip(count u32) {
	w.buf = append(w.buf, make([]byte, count)...)
}

func (w *Writer) u16(val u16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, val)
}

func (w *Writer) u16Array(arr []u16) {
	for _, val := range arr {
		w.u16(val)
	}
}

func (w *Writer) u32(val u32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, val)
}

func (w *Writer) write(src []byte) {
	w.buf = append(w.buf, src...)
}

func padding(len u32) u32 {
	return (4 - len%4) % 4
}

func lenPadded(len u32) u32 {
	return (len + 3) &^ 3
}
