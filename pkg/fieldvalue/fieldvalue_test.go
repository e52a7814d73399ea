package fieldvalue_test

import (
	"math"
	"testing"

	"github.com/marmos91/supercore/pkg/fieldvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarEqualBitExact(t *testing.T) {
	a := fieldvalue.Float(2.0)
	b := fieldvalue.Float(2.0)
	assert.True(t, a.Equal(b))

	c := fieldvalue.Float(2.0000001)
	assert.False(t, a.Equal(c))
}

func TestMFNegativeIndexMatchesTrailingIndex(t *testing.T) {
	mf := fieldvalue.NewMF(fieldvalue.KindVec3f)
	for i := 0; i < 4; i++ {
		mf.Elems = append(mf.Elems, fieldvalue.Vec3f([3]float64{float64(i), 0, 0}))
	}

	neg, err := fieldvalue.ResolveMFIndex(-1, mf.Count(), fieldvalue.OffsetAccess)
	require.NoError(t, err)
	pos, err := fieldvalue.ResolveMFIndex(3, mf.Count(), fieldvalue.OffsetAccess)
	require.NoError(t, err)

	assert.Equal(t, pos, neg)
	assert.Equal(t, mf.At(pos), mf.At(neg))
}

func TestMFIndexOutOfRange(t *testing.T) {
	_, err := fieldvalue.ResolveMFIndex(4, 4, fieldvalue.OffsetAccess)
	assert.Error(t, err)

	_, err = fieldvalue.ResolveMFIndex(4, 4, fieldvalue.OffsetInsert)
	assert.NoError(t, err) // insert may target the one-past-end position
}

func TestValidateFloatRejectsInvalidValues(t *testing.T) {
	assert.Error(t, fieldvalue.ValidateFloat(math.NaN()))
	assert.Error(t, fieldvalue.ValidateFloat(math.Inf(1)))
	assert.Error(t, fieldvalue.ValidateFloat(math.Inf(-1)))
	assert.Error(t, fieldvalue.ValidateFloat(fieldvalue.FLTMax*2))
	assert.NoError(t, fieldvalue.ValidateFloat(1.5))
}

func TestValidateRotationRejectsZeroAxis(t *testing.T) {
	assert.Error(t, fieldvalue.ValidateRotation([4]float64{0, 0, 0, 1.57}))
	assert.NoError(t, fieldvalue.ValidateRotation([4]float64{0, 1, 0, 1.57}))
}

func TestValidateColorRejectsOutOfGamut(t *testing.T) {
	assert.Error(t, fieldvalue.ValidateColor([3]float64{1.1, 0, 0}))
	assert.Error(t, fieldvalue.ValidateColor([3]float64{-0.1, 0, 0}))
	assert.NoError(t, fieldvalue.ValidateColor([3]float64{0, 0.5, 1}))
}

func TestMFInsertAndRemove(t *testing.T) {
	mf := fieldvalue.NewMF(fieldvalue.KindInt32)
	mf.Insert(0, fieldvalue.Int32(1))
	mf.Insert(1, fieldvalue.Int32(3))
	mf.Insert(1, fieldvalue.Int32(2))
	require.Equal(t, int32(3), mf.Count())
	assert.Equal(t, int32(1), mf.At(0).I32)
	assert.Equal(t, int32(2), mf.At(1).I32)
	assert.Equal(t, int32(3), mf.At(2).I32)

	mf.Remove(1)
	require.Equal(t, int32(2), mf.Count())
	assert.Equal(t, int32(3), mf.At(1).I32)
}
