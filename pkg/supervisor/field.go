package supervisor

import (
	"context"
	"fmt"

	"github.com/marmos91/supercore/internal/telemetry"
	"github.com/marmos91/supercore/pkg/fieldvalue"
	"github.com/marmos91/supercore/pkg/handle"
)

// resolveField returns the live field behind ref, rejecting stale
// handles and a kind/arity mismatch against what the caller's
// kind-specific accessor expects.
func (s *Supervisor) resolveField(ref handle.FieldRef, op string, kind fieldvalue.Kind, mf bool) *handle.Field {
	f := s.state.Registry.Field(ref)
	if f == nil {
		s.metrics.ObserveStaleHandle()
		diagnostic(op, "stale field handle", s.state.Session.QuitArmed)
		return nil
	}
	if f.Type.Kind != kind || f.Type.MF != mf {
		diagnostic(op, fmt.Sprintf("field is %s, not %s", f.Type, fieldvalue.Type{Kind: kind, MF: mf}), false)
		return nil
	}
	return f
}

// validateScalar applies the kind-specific finiteness/rotation/color
// rules mandated for the given kind before a value is queued.
func validateScalar(v fieldvalue.Scalar) error {
	switch v.Kind {
	case fieldvalue.KindFloat:
		return fieldvalue.ValidateFloat(v.F64)
	case fieldvalue.KindVec2f:
		return fieldvalue.ValidateVec(v.Vec[:2])
	case fieldvalue.KindVec3f:
		return fieldvalue.ValidateVec(v.Vec[:3])
	case fieldvalue.KindRotation:
		return fieldvalue.ValidateRotation(v.AsRotation())
	case fieldvalue.KindColor:
		return fieldvalue.ValidateColor(v.AsColor())
	default:
		return nil
	}
}

// getSF reads a single-valued field, applying read-your-writes
// coalescing before issuing a round trip.
func (s *Supervisor) getSF(ctx context.Context, ref handle.FieldRef, op string, kind fieldvalue.Kind) (fieldvalue.Scalar, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor(op) {
		return fieldvalue.Scalar{}, false
	}
	f := s.resolveField(ref, op, kind, false)
	if f == nil {
		return fieldvalue.Scalar{}, false
	}
	if v, ok := s.state.Queue.CoalesceGet(ref, -1); ok {
		s.metrics.ObserveCoalescedGet()
		return v, true
	}

	if _, err := s.state.Queue.EnqueueGet(ref, -1); err != nil {
		diagnostic(op, err.Error(), false)
		return fieldvalue.Scalar{}, false
	}
	_, span := telemetry.StartSupervisorSpan(ctx, telemetry.SpanFieldGet, op, telemetry.FieldID(f.FieldID), telemetry.Kind(kind.String()))
	defer span.End()
	if err := s.flushUnlocked(ctx, op); err != nil {
		telemetry.EndSpanWithError(span, err)
		return fieldvalue.Scalar{}, false
	}
	if !f.HasCached {
		return fieldvalue.Scalar{}, false
	}
	return f.CachedSF, true
}

// setSF writes a single-valued field. SET is deferred — no flush is
// triggered, the mutation rides the next step's outbound frame.
func (s *Supervisor) setSF(ctx context.Context, ref handle.FieldRef, op string, data fieldvalue.Scalar) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor(op) {
		return false
	}
	if err := validateScalar(data); err != nil {
		diagnostic(op, err.Error(), false)
		return false
	}
	f := s.resolveField(ref, op, data.Kind, false)
	if f == nil {
		return false
	}
	if f.IsProtoInternal {
		diagnostic(op, "field is read-only (PROTO-internal)", false)
		return false
	}
	_, span := telemetry.StartSupervisorSpan(ctx, telemetry.SpanFieldSet, op, telemetry.FieldID(f.FieldID), telemetry.Kind(data.Kind.String()))
	defer span.End()
	s.state.Queue.EnqueueSet(ref, -1, data, f.Type)
	return true
}

// getMF reads an MF element at a possibly-negative index, using the
// access-offset negative-index resolution.
func (s *Supervisor) getMF(ctx context.Context, ref handle.FieldRef, op string, kind fieldvalue.Kind, index int32) (fieldvalue.Scalar, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor(op) {
		return fieldvalue.Scalar{}, false
	}
	f := s.resolveField(ref, op, kind, true)
	if f == nil {
		return fieldvalue.Scalar{}, false
	}
	resolved, err := fieldvalue.ResolveMFIndex(index, f.Count, fieldvalue.OffsetAccess)
	if err != nil {
		diagnostic(op, err.Error(), false)
		return fieldvalue.Scalar{}, false
	}
	if v, ok := s.state.Queue.CoalesceGet(ref, resolved); ok {
		s.metrics.ObserveCoalescedGet()
		return v, true
	}
	if _, err := s.state.Queue.EnqueueGet(ref, resolved); err != nil {
		diagnostic(op, err.Error(), false)
		return fieldvalue.Scalar{}, false
	}
	_, span := telemetry.StartSupervisorSpan(ctx, telemetry.SpanFieldGet, op, telemetry.FieldID(f.FieldID), telemetry.Kind(kind.String()))
	defer span.End()
	if err := s.flushUnlocked(ctx, op); err != nil {
		telemetry.EndSpanWithError(span, err)
		return fieldvalue.Scalar{}, false
	}
	if !f.HasCached {
		return fieldvalue.Scalar{}, false
	}
	return f.CachedSF, true
}

// setMF writes an MF element at a possibly-negative index. Deferred,
// like setSF.
func (s *Supervisor) setMF(ctx context.Context, ref handle.FieldRef, op string, kind fieldvalue.Kind, index int32, data fieldvalue.Scalar) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor(op) {
		return false
	}
	if err := validateScalar(data); err != nil {
		diagnostic(op, err.Error(), false)
		return false
	}
	f := s.resolveField(ref, op, kind, true)
	if f == nil {
		return false
	}
	if f.IsProtoInternal {
		diagnostic(op, "field is read-only (PROTO-internal)", false)
		return false
	}
	resolved, err := fieldvalue.ResolveMFIndex(index, f.Count, fieldvalue.OffsetAccess)
	if err != nil {
		diagnostic(op, err.Error(), false)
		return false
	}
	_, span := telemetry.StartSupervisorSpan(ctx, telemetry.SpanFieldSet, op, telemetry.FieldID(f.FieldID), telemetry.Kind(kind.String()))
	defer span.End()
	s.state.Queue.EnqueueSet(ref, resolved, data, f.Type)
	return true
}

// ImportMFValue inserts a scalar element (any non-node kind) into an MF
// field at a possibly-negative index, using OffsetInsert's one-past-end
// allowance. Requires an immediate flush.
func (s *Supervisor) ImportMFValue(ctx context.Context, ref handle.FieldRef, index int32, data fieldvalue.Scalar) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "import_mf_value"
	if !s.requireSupervisor(op) {
		return false
	}
	if err := validateScalar(data); err != nil {
		diagnostic(op, err.Error(), false)
		return false
	}
	f := s.resolveField(ref, op, data.Kind, true)
	if f == nil {
		return false
	}
	resolved, err := fieldvalue.ResolveMFIndex(index, f.Count, fieldvalue.OffsetInsert)
	if err != nil {
		diagnostic(op, err.Error(), false)
		return false
	}
	_, span := telemetry.StartSupervisorSpan(ctx, telemetry.SpanFieldImport, op, telemetry.FieldID(f.FieldID))
	defer span.End()
	s.state.Queue.EnqueueImport(ref, resolved, data, f.Type)
	err = s.flushUnlocked(ctx, op)
	telemetry.EndSpanWithError(span, err)
	return err == nil
}

// ImportNodeFromString inserts a node into an MF_NODE or SF_NODE field
// from a textual description or filename, validating the filename
// extension rules: MF_NODE accepts .wbo or .wrl
// (.wrl legal only on the root's children field, only at the tail
// position); SF_NODE accepts only .wbo.
func (s *Supervisor) ImportNodeFromString(ctx context.Context, ref handle.FieldRef, index int32, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "import_node_from_string"
	if !s.requireSupervisor(op) {
		return false
	}
	f := s.state.Registry.Field(ref)
	if f == nil {
		s.metrics.ObserveStaleHandle()
		diagnostic(op, "stale field handle", s.state.Session.QuitArmed)
		return false
	}
	if f.Type.Kind != fieldvalue.KindNode {
		diagnostic(op, "field is not a node-kind field", false)
		return false
	}
	if text == "" {
		diagnostic(op, "empty import text", false)
		return false
	}
	if hasExtension(text, ".wrl") {
		isRootChildren := f.NodeID == handle.RootID && f.Name == "children"
		if !f.Type.MF || !isRootChildren || index != f.Count {
			diagnostic(op, ".wrl import only legal at the tail of the root's children field", false)
			return false
		}
	} else if !hasExtension(text, ".wbo") {
		diagnostic(op, "node import filename must end in .wbo or .wrl", false)
		return false
	}

	resolved := index
	if f.Type.MF {
		r, err := fieldvalue.ResolveMFIndex(index, f.Count, fieldvalue.OffsetInsert)
		if err != nil {
			diagnostic(op, err.Error(), false)
			return false
		}
		resolved = r
	} else {
		resolved = -1
	}

	_, span := telemetry.StartSupervisorSpan(ctx, telemetry.SpanFieldImport, op, telemetry.FieldID(f.FieldID))
	defer span.End()
	s.state.Queue.EnqueueImportFromString(ref, resolved, text)
	err := s.flushUnlocked(ctx, op)
	telemetry.EndSpanWithError(span, err)
	return err == nil
}

// RemoveValue removes the element at a possibly-negative index from an
// MF field. Requires an immediate flush.
func (s *Supervisor) RemoveValue(ctx context.Context, ref handle.FieldRef, index int32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	const op = "remove_value"
	if !s.requireSupervisor(op) {
		return false
	}
	f := s.state.Registry.Field(ref)
	if f == nil {
		s.metrics.ObserveStaleHandle()
		diagnostic(op, "stale field handle", s.state.Session.QuitArmed)
		return false
	}
	if !f.Type.MF {
		diagnostic(op, "remove is only valid on MF fields", false)
		return false
	}
	if f.IsProtoInternal {
		diagnostic(op, "field is read-only (PROTO-internal)", false)
		return false
	}
	resolved, err := fieldvalue.ResolveMFIndex(index, f.Count, fieldvalue.OffsetAccess)
	if err != nil {
		diagnostic(op, err.Error(), false)
		return false
	}
	_, span := telemetry.StartSupervisorSpan(ctx, telemetry.SpanFieldRemove, op, telemetry.FieldID(f.FieldID))
	defer span.End()
	s.state.Queue.EnqueueRemove(ref, resolved)
	f.Count--
	err = s.flushUnlocked(ctx, op)
	telemetry.EndSpanWithError(span, err)
	return err == nil
}

// The remaining functions in this file are thin, kind-specific
// accessors over getSF/setSF/getMF/setMF — one pair per scalar kind, SF
// and MF, matching the full ~130-operation surface (typed
// getters/setters/importers per field kind).

func (s *Supervisor) GetSFBool(ctx context.Context, ref handle.FieldRef) (bool, bool) {
	v, ok := s.getSF(ctx, ref, "get_sf_bool", fieldvalue.KindBool)
	return v.Bool, ok
}
func (s *Supervisor) SetSFBool(ctx context.Context, ref handle.FieldRef, v bool) bool {
	return s.setSF(ctx, ref, "set_sf_bool", fieldvalue.Bool(v))
}
func (s *Supervisor) GetMFBool(ctx context.Context, ref handle.FieldRef, index int32) (bool, bool) {
	v, ok := s.getMF(ctx, ref, "get_mf_bool", fieldvalue.KindBool, index)
	return v.Bool, ok
}
func (s *Supervisor) SetMFBool(ctx context.Context, ref handle.FieldRef, index int32, v bool) bool {
	return s.setMF(ctx, ref, "set_mf_bool", fieldvalue.KindBool, index, fieldvalue.Bool(v))
}

func (s *Supervisor) GetSFInt32(ctx context.Context, ref handle.FieldRef) (int32, bool) {
	v, ok := s.getSF(ctx, ref, "get_sf_int32", fieldvalue.KindInt32)
	return v.I32, ok
}
func (s *Supervisor) SetSFInt32(ctx context.Context, ref handle.FieldRef, v int32) bool {
	return s.setSF(ctx, ref, "set_sf_int32", fieldvalue.Int32(v))
}
func (s *Supervisor) GetMFInt32(ctx context.Context, ref handle.FieldRef, index int32) (int32, bool) {
	v, ok := s.getMF(ctx, ref, "get_mf_int32", fieldvalue.KindInt32, index)
	return v.I32, ok
}
func (s *Supervisor) SetMFInt32(ctx context.Context, ref handle.FieldRef, index, v int32) bool {
	return s.setMF(ctx, ref, "set_mf_int32", fieldvalue.KindInt32, index, fieldvalue.Int32(v))
}

func (s *Supervisor) GetSFFloat(ctx context.Context, ref handle.FieldRef) (float64, bool) {
	v, ok := s.getSF(ctx, ref, "get_sf_float", fieldvalue.KindFloat)
	return v.F64, ok
}
func (s *Supervisor) SetSFFloat(ctx context.Context, ref handle.FieldRef, v float64) bool {
	return s.setSF(ctx, ref, "set_sf_float", fieldvalue.Float(v))
}
func (s *Supervisor) GetMFFloat(ctx context.Context, ref handle.FieldRef, index int32) (float64, bool) {
	v, ok := s.getMF(ctx, ref, "get_mf_float", fieldvalue.KindFloat, index)
	return v.F64, ok
}
func (s *Supervisor) SetMFFloat(ctx context.Context, ref handle.FieldRef, index int32, v float64) bool {
	return s.setMF(ctx, ref, "set_mf_float", fieldvalue.KindFloat, index, fieldvalue.Float(v))
}

func (s *Supervisor) GetSFVec2f(ctx context.Context, ref handle.FieldRef) ([2]float64, bool) {
	v, ok := s.getSF(ctx, ref, "get_sf_vec2f", fieldvalue.KindVec2f)
	return v.AsVec2f(), ok
}
func (s *Supervisor) SetSFVec2f(ctx context.Context, ref handle.FieldRef, v [2]float64) bool {
	return s.setSF(ctx, ref, "set_sf_vec2f", fieldvalue.Vec2f(v))
}
func (s *Supervisor) GetMFVec2f(ctx context.Context, ref handle.FieldRef, index int32) ([2]float64, bool) {
	v, ok := s.getMF(ctx, ref, "get_mf_vec2f", fieldvalue.KindVec2f, index)
	return v.AsVec2f(), ok
}
func (s *Supervisor) SetMFVec2f(ctx context.Context, ref handle.FieldRef, index int32, v [2]float64) bool {
	return s.setMF(ctx, ref, "set_mf_vec2f", fieldvalue.KindVec2f, index, fieldvalue.Vec2f(v))
}

func (s *Supervisor) GetSFVec3f(ctx context.Context, ref handle.FieldRef) ([3]float64, bool) {
	v, ok := s.getSF(ctx, ref, "get_sf_vec3f", fieldvalue.KindVec3f)
	return v.AsVec3f(), ok
}
func (s *Supervisor) SetSFVec3f(ctx context.Context, ref handle.FieldRef, v [3]float64) bool {
	return s.setSF(ctx, ref, "set_sf_vec3f", fieldvalue.Vec3f(v))
}
func (s *Supervisor) GetMFVec3f(ctx context.Context, ref handle.FieldRef, index int32) ([3]float64, bool) {
	v, ok := s.getMF(ctx, ref, "get_mf_vec3f", fieldvalue.KindVec3f, index)
	return v.AsVec3f(), ok
}
func (s *Supervisor) SetMFVec3f(ctx context.Context, ref handle.FieldRef, index int32, v [3]float64) bool {
	return s.setMF(ctx, ref, "set_mf_vec3f", fieldvalue.KindVec3f, index, fieldvalue.Vec3f(v))
}

func (s *Supervisor) GetSFRotation(ctx context.Context, ref handle.FieldRef) ([4]float64, bool) {
	v, ok := s.getSF(ctx, ref, "get_sf_rotation", fieldvalue.KindRotation)
	return v.AsRotation(), ok
}
func (s *Supervisor) SetSFRotation(ctx context.Context, ref handle.FieldRef, v [4]float64) bool {
	return s.setSF(ctx, ref, "set_sf_rotation", fieldvalue.Rotation(v))
}
func (s *Supervisor) GetMFRotation(ctx context.Context, ref handle.FieldRef, index int32) ([4]float64, bool) {
	v, ok := s.getMF(ctx, ref, "get_mf_rotation", fieldvalue.KindRotation, index)
	return v.AsRotation(), ok
}
func (s *Supervisor) SetMFRotation(ctx context.Context, ref handle.FieldRef, index int32, v [4]float64) bool {
	return s.setMF(ctx, ref, "set_mf_rotation", fieldvalue.KindRotation, index, fieldvalue.Rotation(v))
}

func (s *Supervisor) GetSFColor(ctx context.Context, ref handle.FieldRef) ([3]float64, bool) {
	v, ok := s.getSF(ctx, ref, "get_sf_color", fieldvalue.KindColor)
	return v.AsColor(), ok
}
func (s *Supervisor) SetSFColor(ctx context.Context, ref handle.FieldRef, v [3]float64) bool {
	return s.setSF(ctx, ref, "set_sf_color", fieldvalue.Color(v))
}
func (s *Supervisor) GetMFColor(ctx context.Context, ref handle.FieldRef, index int32) ([3]float64, bool) {
	v, ok := s.getMF(ctx, ref, "get_mf_color", fieldvalue.KindColor, index)
	return v.AsColor(), ok
}
func (s *Supervisor) SetMFColor(ctx context.Context, ref handle.FieldRef, index int32, v [3]float64) bool {
	return s.setMF(ctx, ref, "set_mf_color", fieldvalue.KindColor, index, fieldvalue.Color(v))
}

func (s *Supervisor) GetSFString(ctx context.Context, ref handle.FieldRef) (string, bool) {
	v, ok := s.getSF(ctx, ref, "get_sf_string", fieldvalue.KindString)
	return v.Str, ok
}
func (s *Supervisor) SetSFString(ctx context.Context, ref handle.FieldRef, v string) bool {
	return s.setSF(ctx, ref, "set_sf_string", fieldvalue.String(v))
}
func (s *Supervisor) GetMFString(ctx context.Context, ref handle.FieldRef, index int32) (string, bool) {
	v, ok := s.getMF(ctx, ref, "get_mf_string", fieldvalue.KindString, index)
	return v.Str, ok
}
func (s *Supervisor) SetMFString(ctx context.Context, ref handle.FieldRef, index int32, v string) bool {
	return s.setMF(ctx, ref, "set_mf_string", fieldvalue.KindString, index, fieldvalue.String(v))
}

func (s *Supervisor) GetSFNode(ctx context.Context, ref handle.FieldRef) (int32, bool) {
	v, ok := s.getSF(ctx, ref, "get_sf_node", fieldvalue.KindNode)
	return v.Node, ok
}
func (s *Supervisor) GetMFNode(ctx context.Context, ref handle.FieldRef, index int32) (int32, bool) {
	v, ok := s.getMF(ctx, ref, "get_mf_node", fieldvalue.KindNode, index)
	return v.Node, ok
}
