package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Reader deserializes primitives from an inbound reply frame, in the same
// little-endian, unaligned format Writer produces.
type Reader struct {
	r   io.Reader
	err error
}

// NewReader wraps r for primitive reads.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Err returns the first error encountered by any read call, if any.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) readFull(n int) []byte {
	if r.err != nil {
		return nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		r.err = fmt.Errorf("wire: read %d bytes: %w", n, err)
		return nil
	}
	return buf
}

// U8 reads a single byte.
func (r *Reader) U8() uint8 {
	b := r.readFull(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// Bool reads a single byte as a boolean (non-zero is true).
func (r *Reader) Bool() bool {
	return r.U8() != 0
}

// U16 reads a little-endian unsigned 16-bit integer.
func (r *Reader) U16() uint16 {
	b := r.readFull(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// I32 reads a little-endian signed 32-bit integer.
func (r *Reader) I32() int32 {
	return int32(r.U32())
}

// U32 reads a little-endian unsigned 32-bit integer.
func (r *Reader) U32() uint32 {
	b := r.readFull(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// F64 reads an IEEE-754 binary64 little-endian float.
func (r *Reader) F64() float64 {
	return math.Float64frombits(r.u64())
}

func (r *Reader) u64() uint64 {
	b := r.readFull(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// String reads a length-prefixed, NUL-terminated string.
func (r *Reader) String() string {
	n := r.U32()
	if r.err != nil {
		return ""
	}
	const maxStringLen = 64 << 20
	if n > maxStringLen {
		r.err = fmt.Errorf("wire: string length %d exceeds maximum", n)
		return ""
	}
	data := r.readFull(int(n))
	if data == nil {
		return ""
	}
	r.U8() // NUL terminator
	return string(data)
}

// Vec2 reads two consecutive f64 components.
func (r *Reader) Vec2() [2]float64 {
	return [2]float64{r.F64(), r.F64()}
}

// Vec3 reads three consecutive f64 components.
func (r *Reader) Vec3() [3]float64 {
	return [3]float64{r.F64(), r.F64(), r.F64()}
}

// Vec4 reads four consecutive f64 components.
func (r *Reader) Vec4() [4]float64 {
	return [4]float64{r.F64(), r.F64(), r.F64(), r.F64()}
}

// Vec6 reads six consecutive f64 components.
func (r *Reader) Vec6() [6]float64 {
	var v [6]float64
	for i := range v {
		v[i] = r.F64()
	}
	return v
}

// VecN reads n consecutive f64 components, used for contact-point arrays
// whose length is carried separately in the frame.
func (r *Reader) VecN(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = r.F64()
	}
	return v
}
