// Package fieldvalue implements the tagged-union value model for
// scene-graph field contents: the nine scalar kinds in both single-valued
// (SF) and multi-valued (MF) form, plus the strict validation rules the
// public API layer applies before a value is queued as a request.
package fieldvalue

import "fmt"

// Kind tags the nine scalar field kinds a scene-graph field can hold.
// MF-ness is tracked separately (see MF) rather than folded into Kind,
// since every kind has both an SF and MF form with identical per-element
// payloads.
type Kind uint8

const (
	KindBool Kind = iota
	KindInt32
	KindFloat
	KindVec2f
	KindVec3f
	KindRotation
	KindColor
	KindString
	KindNode
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt32:
		return "int32"
	case KindFloat:
		return "float"
	case KindVec2f:
		return "vec2f"
	case KindVec3f:
		return "vec3f"
	case KindRotation:
		return "rotation"
	case KindColor:
		return "color"
	case KindString:
		return "string"
	case KindNode:
		return "node"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Type fully describes a field's wire type: a scalar Kind plus the SF/MF
// bit. MF field handles additionally carry an element count, tracked on
// the field handle rather than here.
type Type struct {
	Kind Kind
	MF   bool
}

func (t Type) String() string {
	if t.MF {
		return "MF" + t.Kind.String()
	}
	return "SF" + t.Kind.String()
}
