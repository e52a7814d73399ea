package wire_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/marmos91/supercore/pkg/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripPrimitives(t *testing.T) {
	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	w.U8(0x2a)
	w.Bool(true)
	w.U16(1234)
	w.I32(-7)
	w.U32(42)
	w.F64(3.5)
	w.String("hello")
	require.NoError(t, w.Err())

	r := wire.NewReader(&buf)
	assert.EqualValues(t, 0x2a, r.U8())
	assert.True(t, r.Bool())
	assert.EqualValues(t, 1234, r.U16())
	assert.EqualValues(t, -7, r.I32())
	assert.EqualValues(t, 42, r.U32())
	assert.Equal(t, 3.5, r.F64())
	assert.Equal(t, "hello", r.String())
	require.NoError(t, r.Err())
}

func TestStringEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	w.String("")
	require.NoError(t, w.Err())

	r := wire.NewReader(&buf)
	assert.Equal(t, "", r.String())
	require.NoError(t, r.Err())
}

func TestVectors(t *testing.T) {
	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	w.Vec3([3]float64{1, 2, 3})
	w.Vec4([4]float64{0, 0, 1, math.Pi})
	w.Vec6([6]float64{1, 2, 3, 4, 5, 6})

	r := wire.NewReader(&buf)
	assert.Equal(t, [3]float64{1, 2, 3}, r.Vec3())
	assert.Equal(t, [4]float64{0, 0, 1, math.Pi}, r.Vec4())
	assert.Equal(t, [6]float64{1, 2, 3, 4, 5, 6}, r.Vec6())
}

func TestReaderShortReadIsSticky(t *testing.T) {
	r := wire.NewReader(bytes.NewReader([]byte{0x01}))
	r.U32() // needs 4 bytes, only 1 available
	require.Error(t, r.Err())
	// Subsequent calls return zero values without panicking.
	assert.EqualValues(t, 0, r.U32())
}

func TestWriterErrorIsSticky(t *testing.T) {
	w := wire.NewWriter(&failingWriter{})
	w.U32(1)
	require.Error(t, w.Err())
	w.U32(2) // no-op, does not panic
}

type failingWriter struct{}

func (*failingWriter) Write([]byte) (int, error) {
	return 0, bytes.ErrTooLarge
}
