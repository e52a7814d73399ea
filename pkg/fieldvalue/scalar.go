package fieldvalue

// Scalar holds one SF-sized element of any of the nine kinds. Vec holds
// vec2f/vec3f/color/rotation payloads packed into a fixed 4-wide array
// (only the first N components are meaningful, N per Kind); Str carries
// string and owns its backing buffer for the lifetime of the Scalar.
type Scalar struct {
	Kind Kind
	Bool bool
	I32  int32
	F64  float64
	Vec  [4]float64
	Str  string
	Node int32 // node-kind uid; 0 means null
}

// Bool constructs an SFBool/MFBool element.
func Bool(v bool) Scalar { return Scalar{Kind: KindBool, Bool: v} }

// Int32 constructs an SFInt32/MFInt32 element.
func Int32(v int32) Scalar { return Scalar{Kind: KindInt32, I32: v} }

// Float constructs an SFFloat/MFFloat element.
func Float(v float64) Scalar { return Scalar{Kind: KindFloat, F64: v} }

// Vec2f constructs an SFVec2f/MFVec2f element.
func Vec2f(v [2]float64) Scalar {
	return Scalar{Kind: KindVec2f, Vec: [4]float64{v[0], v[1], 0, 0}}
}

// Vec3f constructs an SFVec3f/MFVec3f element.
func Vec3f(v [3]float64) Scalar {
	return Scalar{Kind: KindVec3f, Vec: [4]float64{v[0], v[1], v[2], 0}}
}

// Rotation constructs an SFRotation/MFRotation element (x, y, z, angle).
func Rotation(v [4]float64) Scalar {
	return Scalar{Kind: KindRotation, Vec: v}
}

// Color constructs an SFColor/MFColor element.
func Color(v [3]float64) Scalar {
	return Scalar{Kind: KindColor, Vec: [4]float64{v[0], v[1], v[2], 0}}
}

// String constructs an SFString/MFString element. The Scalar owns s for
// its lifetime; callers must not mutate the backing array afterward.
func String(v string) Scalar { return Scalar{Kind: KindString, Str: v} }

// Node constructs an SFNode/MFNode element referencing the node by uid.
// uid == 0 represents a null reference.
func Node(uid int32) Scalar { return Scalar{Kind: KindNode, Node: uid} }

// AsVec2f returns the first two components of Vec.
func (s Scalar) AsVec2f() [2]float64 { return [2]float64{s.Vec[0], s.Vec[1]} }

// AsVec3f returns the first three components of Vec.
func (s Scalar) AsVec3f() [3]float64 { return [3]float64{s.Vec[0], s.Vec[1], s.Vec[2]} }

// AsColor returns the first three components of Vec.
func (s Scalar) AsColor() [3]float64 { return s.AsVec3f() }

// AsRotation returns all four components of Vec.
func (s Scalar) AsRotation() [4]float64 { return s.Vec }

// Equal reports bit-exact equality between two scalars of the same kind,
// needed for the coalescing property: a set/get round-trip without an
// intervening step must be bit-exact.
func (s Scalar) Equal(o Scalar) bool {
	if s.Kind != o.Kind {
		return false
	}
	switch s.Kind {
	case KindBool:
		return s.Bool == o.Bool
	case KindInt32:
		return s.I32 == o.I32
	case KindFloat:
		return s.F64 == o.F64
	case KindVec2f, KindVec3f, KindColor, KindRotation:
		return s.Vec == o.Vec
	case KindString:
		return s.Str == o.Str
	case KindNode:
		return s.Node == o.Node
	default:
		return false
	}
}
