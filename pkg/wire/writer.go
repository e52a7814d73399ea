// Package wire implements the primitive codec this core writes outbound
// frames with and decodes inbound replies from.
//
// The format is not XDR: integers are little-endian, strings are
// length-prefixed and NUL-terminated, and no field is padded to a 4-byte
// boundary. Nothing here assumes a particular transport; callers supply any
// io.Writer/io.Reader (a TCP socket, an in-memory buffer, a test fixture).
package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Writer serializes primitives into an outbound frame buffer in the
// little-endian, unaligned format this protocol uses on the wire.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter wraps w for primitive writes. Once a write fails, every
// subsequent call is a no-op and Err returns the first error encountered —
// callers may chain writes and check Err once at the end.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first error encountered by any Write* call, if any.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) write(b []byte) {
	if w.err != nil {
		return
	}
	if _, err := w.w.Write(b); err != nil {
		w.err = fmt.Errorf("wire: write %d bytes: %w", len(b), err)
	}
}

// U8 writes a single byte (opcode, tag, or packed flag).
func (w *Writer) U8(v uint8) {
	w.write([]byte{v})
}

// Bool writes a boolean as a single byte (0 or 1).
func (w *Writer) Bool(v bool) {
	if v {
		w.U8(1)
	} else {
		w.U8(0)
	}
}

// U16 writes a little-endian unsigned 16-bit integer.
func (w *Writer) U16(v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	w.write(buf[:])
}

// I32 writes a little-endian signed 32-bit integer.
func (w *Writer) I32(v int32) {
	w.U32(uint32(v))
}

// U32 writes a little-endian unsigned 32-bit integer.
func (w *Writer) U32(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	w.write(buf[:])
}

// F64 writes an IEEE-754 binary64 little-endian float.
func (w *Writer) F64(v float64) {
	w.U32Raw64(math.Float64bits(v))
}

// U32Raw64 writes a little-endian unsigned 64-bit integer, used internally
// by F64 and available for opaque 64-bit payloads.
func (w *Writer) U32Raw64(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	w.write(buf[:])
}

// String writes a length-prefixed, NUL-terminated string: u32 length
// (excluding the terminator) followed by the raw bytes and a single 0x00.
func (w *Writer) String(s string) {
	w.U32(uint32(len(s)))
	w.write([]byte(s))
	w.write([]byte{0})
}

// Vec2 writes two consecutive f64 components.
func (w *Writer) Vec2(v [2]float64) {
	w.F64(v[0])
	w.F64(v[1])
}

// Vec3 writes three consecutive f64 components.
func (w *Writer) Vec3(v [3]float64) {
	w.F64(v[0])
	w.F64(v[1])
	w.F64(v[2])
}

// Vec4 writes four consecutive f64 components (used for rotation).
func (w *Writer) Vec4(v [4]float64) {
	w.F64(v[0])
	w.F64(v[1])
	w.F64(v[2])
	w.F64(v[3])
}

// Vec6 writes six consecutive f64 components (used for velocity).
func (w *Writer) Vec6(v [6]float64) {
	for _, c := range v {
		w.F64(c)
	}
}
