package field

import (
	"context"
	"fmt"

	"github.com/marmos91/supercore/pkg/fieldvalue"
	"github.com/marmos91/supercore/pkg/handle"
	"github.com/marmos91/supercore/pkg/supervisor"
)

// getValue reads ref's current value, dispatching to the typed getter
// for f's kind (SF or MF per f.Type.MF). index is ignored for SF
// fields.
func getValue(ctx context.Context, sup *supervisor.Supervisor, ref handle.FieldRef, f *handle.Field, index int32) (fieldvalue.Scalar, bool) {
	if f.Type.MF {
		switch f.Type.Kind {
		case fieldvalue.KindBool:
			v, ok := sup.GetMFBool(ctx, ref, index)
			return fieldvalue.Bool(v), ok
		case fieldvalue.KindInt32:
			v, ok := sup.GetMFInt32(ctx, ref, index)
			return fieldvalue.Int32(v), ok
		case fieldvalue.KindFloat:
			v, ok := sup.GetMFFloat(ctx, ref, index)
			return fieldvalue.Float(v), ok
		case fieldvalue.KindVec2f:
			v, ok := sup.GetMFVec2f(ctx, ref, index)
			return fieldvalue.Vec2f(v), ok
		case fieldvalue.KindVec3f:
			v, ok := sup.GetMFVec3f(ctx, ref, index)
			return fieldvalue.Vec3f(v), ok
		case fieldvalue.KindRotation:
			v, ok := sup.GetMFRotation(ctx, ref, index)
			return fieldvalue.Rotation(v), ok
		case fieldvalue.KindColor:
			v, ok := sup.GetMFColor(ctx, ref, index)
			return fieldvalue.Color(v), ok
		case fieldvalue.KindString:
			v, ok := sup.GetMFString(ctx, ref, index)
			return fieldvalue.String(v), ok
		case fieldvalue.KindNode:
			v, ok := sup.GetMFNode(ctx, ref, index)
			return fieldvalue.Node(v), ok
		}
	} else {
		switch f.Type.Kind {
		case fieldvalue.KindBool:
			v, ok := sup.GetSFBool(ctx, ref)
			return fieldvalue.Bool(v), ok
		case fieldvalue.KindInt32:
			v, ok := sup.GetSFInt32(ctx, ref)
			return fieldvalue.Int32(v), ok
		case fieldvalue.KindFloat:
			v, ok := sup.GetSFFloat(ctx, ref)
			return fieldvalue.Float(v), ok
		case fieldvalue.KindVec2f:
			v, ok := sup.GetSFVec2f(ctx, ref)
			return fieldvalue.Vec2f(v), ok
		case fieldvalue.KindVec3f:
			v, ok := sup.GetSFVec3f(ctx, ref)
			return fieldvalue.Vec3f(v), ok
		case fieldvalue.KindRotation:
			v, ok := sup.GetSFRotation(ctx, ref)
			return fieldvalue.Rotation(v), ok
		case fieldvalue.KindColor:
			v, ok := sup.GetSFColor(ctx, ref)
			return fieldvalue.Color(v), ok
		case fieldvalue.KindString:
			v, ok := sup.GetSFString(ctx, ref)
			return fieldvalue.String(v), ok
		case fieldvalue.KindNode:
			v, ok := sup.GetSFNode(ctx, ref)
			return fieldvalue.Node(v), ok
		}
	}
	return fieldvalue.Scalar{}, false
}

// setValue writes val into ref, dispatching to the typed setter for
// f's kind. Node-kind fields have no setter (they are only ever
// written through the import API) and always fail.
func setValue(ctx context.Context, sup *supervisor.Supervisor, ref handle.FieldRef, f *handle.Field, index int32, val fieldvalue.Scalar) bool {
	if f.Type.MF {
		switch f.Type.Kind {
		case fieldvalue.KindBool:
			return sup.SetMFBool(ctx, ref, index, val.Bool)
		case fieldvalue.KindInt32:
			return sup.SetMFInt32(ctx, ref, index, val.I32)
		case fieldvalue.KindFloat:
			return sup.SetMFFloat(ctx, ref, index, val.F64)
		case fieldvalue.KindVec2f:
			return sup.SetMFVec2f(ctx, ref, index, [2]float64{val.Vec[0], val.Vec[1]})
		case fieldvalue.KindVec3f:
			return sup.SetMFVec3f(ctx, ref, index, [3]float64{val.Vec[0], val.Vec[1], val.Vec[2]})
		case fieldvalue.KindRotation:
			return sup.SetMFRotation(ctx, ref, index, [4]float64{val.Vec[0], val.Vec[1], val.Vec[2], val.Vec[3]})
		case fieldvalue.KindColor:
			return sup.SetMFColor(ctx, ref, index, [3]float64{val.Vec[0], val.Vec[1], val.Vec[2]})
		case fieldvalue.KindString:
			return sup.SetMFString(ctx, ref, index, val.Str)
		}
		return false
	}
	switch f.Type.Kind {
	case fieldvalue.KindBool:
		return sup.SetSFBool(ctx, ref, val.Bool)
	case fieldvalue.KindInt32:
		return sup.SetSFInt32(ctx, ref, val.I32)
	case fieldvalue.KindFloat:
		return sup.SetSFFloat(ctx, ref, val.F64)
	case fieldvalue.KindVec2f:
		return sup.SetSFVec2f(ctx, ref, [2]float64{val.Vec[0], val.Vec[1]})
	case fieldvalue.KindVec3f:
		return sup.SetSFVec3f(ctx, ref, [3]float64{val.Vec[0], val.Vec[1], val.Vec[2]})
	case fieldvalue.KindRotation:
		return sup.SetSFRotation(ctx, ref, [4]float64{val.Vec[0], val.Vec[1], val.Vec[2], val.Vec[3]})
	case fieldvalue.KindColor:
		return sup.SetSFColor(ctx, ref, [3]float64{val.Vec[0], val.Vec[1], val.Vec[2]})
	case fieldvalue.KindString:
		return sup.SetSFString(ctx, ref, val.Str)
	default:
		return false
	}
}

func unsupportedKind(kind fieldvalue.Kind) error {
	return fmt.Errorf("kind %s has no setter: node-kind fields are written via import, not set", kind)
}
