package supervisor

import (
	"context"
	"strconv"

	"github.com/marmos91/supercore/internal/telemetry"
	"github.com/marmos91/supercore/pkg/handle"
	"github.com/marmos91/supercore/pkg/oneshot"
)

// ResolveNodeByID returns the handle for the given server-assigned node
// id, resolving it over the wire only if it is not already cached
// — repeated resolution must not re-issue a round trip.
func (s *Supervisor) ResolveNodeByID(ctx context.Context, id int32) (handle.NodeRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.requireSupervisor("resolve_node_by_id") {
		return handle.NodeRef{}, false
	}
	if ref, _, ok := s.state.Registry.FindNodeByID(id); ok {
		return ref, true
	}

	ctx, span := telemetry.StartSupervisorSpan(ctx, telemetry.SpanResolve, "resolve_node_by_id", telemetry.NodeID(id))
	defer span.End()

	s.state.Resolution.Arm(oneshot.ResolveByID)
	s.state.Resolution.ByID = id

	if err := s.flushUnlocked(ctx, "resolve_node_by_id"); err != nil {
		telemetry.EndSpanWithError(span, err)
		return handle.NodeRef{}, false
	}
	defer s.state.Resolution.Clear()

	if s.state.Resolution.Resolved == 0 {
		diagnostic("resolve_node_by_id", "server reported no node for this id", false)
		return handle.NodeRef{}, false
	}
	ref, _, ok := s.state.Registry.FindNodeByID(s.state.Resolution.Resolved)
	return ref, ok
}

// ResolveNodeByDEF resolves a node by its DEF name, scoped by an
// optional enclosing PROTO instance.
func (s *Supervisor) ResolveNodeByDEF(ctx context.Context, def string, parentProto handle.NodeRef, hasParentProto bool) (handle.NodeRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.requireSupervisor("resolve_node_by_def") {
		return handle.NodeRef{}, false
	}
	if def == "" {
		diagnostic("resolve_node_by_def", "empty DEF name", false)
		return handle.NodeRef{}, false
	}
	if ref, _, ok := s.state.Registry.FindNodeByDef(def, parentProto, hasParentProto); ok {
		return ref, true
	}

	ctx, span := telemetry.StartSupervisorSpan(ctx, telemetry.SpanResolve, "resolve_node_by_def", telemetry.DEF(def))
	defer span.End()

	s.state.Resolution.Arm(oneshot.ResolveByDEF)
	s.state.Resolution.ByDEF = def
	s.state.Resolution.HasProto = hasParentProto
	if hasParentProto {
		if n := s.state.Registry.Node(parentProto); n != nil {
			s.state.Resolution.ProtoScope = n.ID
		}
	}

	if err := s.flushUnlocked(ctx, "resolve_node_by_def"); err != nil {
		telemetry.EndSpanWithError(span, err)
		return handle.NodeRef{}, false
	}
	defer s.state.Resolution.Clear()

	if s.state.Resolution.Resolved == 0 {
		diagnostic("resolve_node_by_def", "server reported no node for this DEF", false)
		return handle.NodeRef{}, false
	}
	ref, _, ok := s.state.Registry.FindNodeByID(s.state.Resolution.Resolved)
	return ref, ok
}

// ResolveNodeByTag resolves the node wrapping the device with the given
// tag.
func (s *Supervisor) ResolveNodeByTag(ctx context.Context, tag int32) (handle.NodeRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.requireSupervisor("resolve_node_by_tag") {
		return handle.NodeRef{}, false
	}
	if ref, _, ok := s.state.Registry.FindNodeByTag(tag); ok {
		return ref, true
	}

	ctx, span := telemetry.StartSupervisorSpan(ctx, telemetry.SpanResolve, "resolve_node_by_tag", telemetry.Tag(strconv.Itoa(int(tag))))
	defer span.End()

	s.state.Resolution.Arm(oneshot.ResolveByTag)
	s.state.Resolution.ByTag = tag

	if err := s.flushUnlocked(ctx, "resolve_node_by_tag"); err != nil {
		telemetry.EndSpanWithError(span, err)
		return handle.NodeRef{}, false
	}
	defer s.state.Resolution.Clear()

	if s.state.Resolution.Resolved == 0 {
		diagnostic("resolve_node_by_tag", "server reported no node for this tag", false)
		return handle.NodeRef{}, false
	}
	ref, _, ok := s.state.Registry.FindNodeByID(s.state.Resolution.Resolved)
	return ref, ok
}

// ResolveSelected resolves the currently selected node in the
// simulator's scene tree view, always over the wire — selection can
// change between steps so no cache applies.
func (s *Supervisor) ResolveSelected(ctx context.Context) (handle.NodeRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.requireSupervisor("resolve_selected") {
		return handle.NodeRef{}, false
	}

	ctx, span := telemetry.StartSupervisorSpan(ctx, telemetry.SpanResolve, "resolve_selected")
	defer span.End()

	s.state.Resolution.Arm(oneshot.ResolveSelected)

	if err := s.flushUnlocked(ctx, "resolve_selected"); err != nil {
		telemetry.EndSpanWithError(span, err)
		return handle.NodeRef{}, false
	}
	defer s.state.Resolution.Clear()

	if s.state.Resolution.Resolved == 0 {
		diagnostic("resolve_selected", "no node is currently selected", false)
		return handle.NodeRef{}, false
	}
	ref, _, ok := s.state.Registry.FindNodeByID(s.state.Resolution.Resolved)
	return ref, ok
}

// ResolveField resolves a field handle by name on node, allowing
// PROTO-internal field resolution when allowProto is set. Cached field
// handles (at most one per (node_id, name)) short-circuit the round
// trip.
func (s *Supervisor) ResolveField(ctx context.Context, node handle.NodeRef, name string, allowProto bool) (handle.FieldRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.requireSupervisor("resolve_field") {
		return handle.FieldRef{}, false
	}
	n := s.state.Registry.Node(node)
	if n == nil {
		s.metrics.ObserveStaleHandle()
		diagnostic("resolve_field", "stale node handle", false)
		return handle.FieldRef{}, false
	}
	if name == "" {
		diagnostic("resolve_field", "empty field name", false)
		return handle.FieldRef{}, false
	}
	if ref, _, ok := s.state.Registry.FindFieldByName(n.ID, name); ok {
		return ref, true
	}

	ctx, span := telemetry.StartSupervisorSpan(ctx, telemetry.SpanResolve, "resolve_field", telemetry.NodeID(n.ID))
	defer span.End()

	s.state.Resolution.Arm(oneshot.ResolveFieldByName)
	s.state.Resolution.FieldNodeID = n.ID
	s.state.Resolution.FieldName = name
	s.state.Resolution.AllowProto = allowProto

	if err := s.flushUnlocked(ctx, "resolve_field"); err != nil {
		telemetry.EndSpanWithError(span, err)
		return handle.FieldRef{}, false
	}
	defer s.state.Resolution.Clear()

	ref, _, ok := s.state.Registry.FindFieldByName(n.ID, name)
	if !ok {
		diagnostic("resolve_field", "server reported no such field", false)
	}
	return ref, ok
}
