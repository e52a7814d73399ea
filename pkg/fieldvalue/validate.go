package fieldvalue

import (
	"fmt"
	"math"
)

// FLTMax mirrors the C FLT_MAX bound the wire protocol validates
// floats against, even though this implementation stores doubles
// internally.
const FLTMax = math.MaxFloat32

// ValidateFloat rejects NaN, +/-Inf, and magnitudes beyond FLT_MAX.
func ValidateFloat(v float64) error {
	if math.IsNaN(v) {
		return fmt.Errorf("fieldvalue: value is NaN")
	}
	if math.IsInf(v, 0) {
		return fmt.Errorf("fieldvalue: value is infinite")
	}
	if math.Abs(v) > FLTMax {
		return fmt.Errorf("fieldvalue: magnitude %g exceeds FLT_MAX", v)
	}
	return nil
}

// ValidateVec validates every component of a fixed-width vector as a
// float per ValidateFloat.
func ValidateVec(v []float64) error {
	for i, c := range v {
		if err := ValidateFloat(c); err != nil {
			return fmt.Errorf("fieldvalue: component %d: %w", i, err)
		}
	}
	return nil
}

// ValidateRotation rejects a rotation whose (x, y, z) axis is all-zero,
// in addition to the usual finiteness checks on all four components.
func ValidateRotation(v [4]float64) error {
	if err := ValidateVec(v[:]); err != nil {
		return err
	}
	if v[0] == 0 && v[1] == 0 && v[2] == 0 {
		return fmt.Errorf("fieldvalue: rotation axis (0,0,0) is invalid")
	}
	return nil
}

// ValidateColor rejects any component outside [0, 1].
func ValidateColor(v [3]float64) error {
	for i, c := range v {
		if math.IsNaN(c) || c < 0 || c > 1 {
			return fmt.Errorf("fieldvalue: color component %d (%g) outside [0,1]", i, c)
		}
	}
	return nil
}

// MFIndexOffset distinguishes the two valid-range shapes MF index
// resolution allows: inserts allow one extra trailing position
// (offset 0); get/set do not (offset -1).
type MFIndexOffset int32

const (
	// OffsetInsert is used by insert operations, which may target the
	// position one past the last existing element.
	OffsetInsert MFIndexOffset = 0
	// OffsetAccess is used by get/set/remove, which may only target an
	// existing element.
	OffsetAccess MFIndexOffset = -1
)

// ResolveMFIndex validates and resolves an MF index against count,
// mapping negative indices to their positive equivalent: valid range
// is [-(count+1+offset), count+offset]; i < 0 maps to
// i + count + 1 + offset.
func ResolveMFIndex(i, count int32, offset MFIndexOffset) (int32, error) {
	lo := -(count + 1 + int32(offset))
	hi := count + int32(offset)
	if i < lo || i > hi {
		return 0, fmt.Errorf("fieldvalue: index %d out of range [%d, %d]", i, lo, hi)
	}
	if i < 0 {
		return i + count + 1 + int32(offset), nil
	}
	return i, nil
}
