package supervisor

import (
	"context"

	"github.com/marmos91/supercore/internal/telemetry"
	"github.com/marmos91/supercore/pkg/fieldvalue"
	"github.com/marmos91/supercore/pkg/handle"
)

// resolveLive returns the live node behind ref, recording a stale-handle
// diagnostic and metric if it has been removed or was never valid.
// Quitting controllers suppress the diagnostic.
func (s *Supervisor) resolveLive(ref handle.NodeRef, op string) *handle.Node {
	n := s.state.Registry.Node(ref)
	if n == nil {
		s.metrics.ObserveStaleHandle()
		diagnostic(op, "stale node handle", s.state.Session.QuitArmed)
	}
	return n
}

func (s *Supervisor) oneShot(ctx context.Context, op string, nodeID int32, arm func()) bool {
	s.state.Requests.NodeID = nodeID
	arm()
	_, span := telemetry.StartSupervisorSpan(ctx, telemetry.SpanOneShot, op, telemetry.NodeID(nodeID))
	defer span.End()
	err := s.flushUnlocked(ctx, op)
	telemetry.EndSpanWithError(span, err)
	return err == nil
}

// GetPosition returns node's cached translation, or NaNVec3 if the node
// does not carry a position.
func (s *Supervisor) GetPosition(ctx context.Context, ref handle.NodeRef) [3]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("get_position") {
		return NaNVec3
	}
	n := s.resolveLive(ref, "get_position")
	if n == nil {
		return NaNVec3
	}
	if !s.oneShot(ctx, "get_position", n.ID, func() { s.state.Requests.WantPosition = true }) {
		return NaNVec3
	}
	defer s.state.Results.Reset()
	if !s.state.Results.HasPosition {
		return NaNVec3
	}
	return s.state.Results.Position
}

// GetOrientation returns node's cached 3x3 rotation matrix (row-major),
// or an all-NaN 9-vector if absent.
func (s *Supervisor) GetOrientation(ctx context.Context, ref handle.NodeRef) [9]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var nan9 [9]float64
	for i := range nan9 {
		nan9[i] = NaNVec3[0]
	}
	if !s.requireSupervisor("get_orientation") {
		return nan9
	}
	n := s.resolveLive(ref, "get_orientation")
	if n == nil {
		return nan9
	}
	if !s.oneShot(ctx, "get_orientation", n.ID, func() { s.state.Requests.WantOrientation = true }) {
		return nan9
	}
	defer s.state.Results.Reset()
	if !s.state.Results.HasOrient {
		return nan9
	}
	return s.state.Results.Orientation
}

// GetCenterOfMass returns node's center of mass, or NaNVec3 if node is
// not a Solid.
func (s *Supervisor) GetCenterOfMass(ctx context.Context, ref handle.NodeRef) [3]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("get_center_of_mass") {
		return NaNVec3
	}
	n := s.resolveLive(ref, "get_center_of_mass")
	if n == nil {
		return NaNVec3
	}
	if !s.oneShot(ctx, "get_center_of_mass", n.ID, func() { s.state.Requests.WantCenterOfMass = true }) {
		return NaNVec3
	}
	defer s.state.Results.Reset()
	if !s.state.Results.HasCOM {
		return NaNVec3
	}
	return s.state.Results.CenterOfMass
}

// GetVelocity returns node's linear+angular velocity (6-vector), or all
// NaN if absent.
func (s *Supervisor) GetVelocity(ctx context.Context, ref handle.NodeRef) [6]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var nan6 [6]float64
	for i := range nan6 {
		nan6[i] = NaNVec3[0]
	}
	if !s.requireSupervisor("get_velocity") {
		return nan6
	}
	n := s.resolveLive(ref, "get_velocity")
	if n == nil {
		return nan6
	}
	if !s.oneShot(ctx, "get_velocity", n.ID, func() { s.state.Requests.WantVelocity = true }) {
		return nan6
	}
	defer s.state.Results.Reset()
	if !s.state.Results.HasVelocity {
		return nan6
	}
	return s.state.Results.Velocity
}

// SetVelocity sets node's linear+angular velocity.
func (s *Supervisor) SetVelocity(ctx context.Context, ref handle.NodeRef, v [6]float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("set_velocity") {
		return false
	}
	if err := fieldvalue.ValidateVec(v[:]); err != nil {
		diagnostic("set_velocity", err.Error(), false)
		return false
	}
	n := s.resolveLive(ref, "set_velocity")
	if n == nil {
		return false
	}
	return s.oneShot(ctx, "set_velocity", n.ID, func() {
		s.state.Requests.SetVelocity = true
		s.state.Requests.VelocityValue = v
	})
}

// GetContactPoints returns the node's contact-point array and the node
// id backing each point. A second call within the same step returns
// the already-cached reply without a round trip.
func (s *Supervisor) GetContactPoints(ctx context.Context, ref handle.NodeRef, includeDescendants bool) ([]float64, []int32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("get_contact_points") {
		return nil, nil, false
	}
	n := s.resolveLive(ref, "get_contact_points")
	if n == nil {
		return nil, nil, false
	}
	if n.HasContactPoints {
		return n.ContactPoints, n.ContactPointNodeIDs, true
	}
	if !s.oneShot(ctx, "get_contact_points", n.ID, func() {
		s.state.Requests.WantContactPoints = true
		s.state.Requests.IncludeDescendants = includeDescendants
	}) {
		return nil, nil, false
	}
	defer s.state.Results.Reset()
	if !s.state.Results.HasContactPoints {
		return nil, nil, false
	}
	return s.state.Results.ContactPoints, s.state.Results.ContactPointNodeIDs, true
}

// GetStaticBalance returns whether node is currently in static balance.
func (s *Supervisor) GetStaticBalance(ctx context.Context, ref handle.NodeRef) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("get_static_balance") {
		return false, false
	}
	n := s.resolveLive(ref, "get_static_balance")
	if n == nil {
		return false, false
	}
	if !s.oneShot(ctx, "get_static_balance", n.ID, func() { s.state.Requests.WantStaticBalance = true }) {
		return false, false
	}
	defer s.state.Results.Reset()
	return s.state.Results.StaticBalance, s.state.Results.HasStaticBalance
}

// ResetPhysics resets node's physics state (velocity, forces).
func (s *Supervisor) ResetPhysics(ctx context.Context, ref handle.NodeRef) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("reset_physics") {
		return false
	}
	n := s.resolveLive(ref, "reset_physics")
	if n == nil {
		return false
	}
	return s.oneShot(ctx, "reset_physics", n.ID, func() { s.state.Requests.ResetPhysics = true })
}

// RestartController restarts the controller process attached to node.
func (s *Supervisor) RestartController(ctx context.Context, ref handle.NodeRef) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("restart_controller") {
		return false
	}
	n := s.resolveLive(ref, "restart_controller")
	if n == nil {
		return false
	}
	return s.oneShot(ctx, "restart_controller", n.ID, func() { s.state.Requests.RestartCtrl = true })
}

// SetVisibility toggles node's visibility to a specific viewer node (or
// every viewer if viewer is the zero value).
func (s *Supervisor) SetVisibility(ctx context.Context, ref, viewer handle.NodeRef, visible bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("set_visibility") {
		return false
	}
	n := s.resolveLive(ref, "set_visibility")
	if n == nil {
		return false
	}
	viewerID := int32(0)
	if viewer.Valid() {
		if vn := s.state.Registry.Node(viewer); vn != nil {
			viewerID = vn.ID
		}
	}
	return s.oneShot(ctx, "set_visibility", n.ID, func() {
		s.state.Requests.SetVisibility = true
		s.state.Requests.VisibilityViewer = viewerID
		s.state.Requests.VisibilityValue = visible
	})
}

// MoveViewpoint moves the simulator's 3D viewpoint to look at node.
func (s *Supervisor) MoveViewpoint(ctx context.Context, ref handle.NodeRef) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("move_viewpoint") {
		return false
	}
	n := s.resolveLive(ref, "move_viewpoint")
	if n == nil {
		return false
	}
	return s.oneShot(ctx, "move_viewpoint", n.ID, func() {
		s.state.Requests.MoveViewpoint = true
		s.state.Requests.ViewpointTarget = n.ID
	})
}

// forceRequest carries the struct-tag boundary for AddForce and
// AddTorque: the validator's "finite" tag dives into the vector in
// place of fieldvalue.ValidateVec.
type forceRequest struct {
	Vec [3]float64 `validate:"dive,finite"`
}

// forceOffsetRequest carries the struct-tag boundary for
// AddForceWithOffset.
type forceOffsetRequest struct {
	Force  [3]float64 `validate:"dive,finite"`
	Offset [3]float64 `validate:"dive,finite"`
}

// AddForce applies force to node, in world or local frame per relative.
func (s *Supervisor) AddForce(ctx context.Context, ref handle.NodeRef, force [3]float64, relative bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("add_force") {
		return false
	}
	if err := s.validate.Struct(forceRequest{Vec: force}); err != nil {
		diagnostic("add_force", err.Error(), false)
		return false
	}
	n := s.resolveLive(ref, "add_force")
	if n == nil {
		return false
	}
	return s.oneShot(ctx, "add_force", n.ID, func() {
		s.state.Requests.AddForce = true
		s.state.Requests.Force = force
		s.state.Requests.ForceRelative = relative
	})
}

// AddForceWithOffset applies force to node at a local offset from its
// origin.
func (s *Supervisor) AddForceWithOffset(ctx context.Context, ref handle.NodeRef, force, offset [3]float64, relative bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("add_force_with_offset") {
		return false
	}
	if err := s.validate.Struct(forceOffsetRequest{Force: force, Offset: offset}); err != nil {
		diagnostic("add_force_with_offset", err.Error(), false)
		return false
	}
	n := s.resolveLive(ref, "add_force_with_offset")
	if n == nil {
		return false
	}
	return s.oneShot(ctx, "add_force_with_offset", n.ID, func() {
		s.state.Requests.AddForceOffset = true
		s.state.Requests.Force = force
		s.state.Requests.ForceOffset = offset
		s.state.Requests.ForceRelative = relative
	})
}

// AddTorque applies torque to node, in world or local frame per
// relative.
func (s *Supervisor) AddTorque(ctx context.Context, ref handle.NodeRef, torque [3]float64, relative bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("add_torque") {
		return false
	}
	if err := s.validate.Struct(forceRequest{Vec: torque}); err != nil {
		diagnostic("add_torque", err.Error(), false)
		return false
	}
	n := s.resolveLive(ref, "add_torque")
	if n == nil {
		return false
	}
	return s.oneShot(ctx, "add_torque", n.ID, func() {
		s.state.Requests.AddTorque = true
		s.state.Requests.Torque = torque
		s.state.Requests.TorqueRelative = relative
	})
}

// RemoveNode removes node from the scene tree. The removal is flushed
// immediately; the server's NODE_REMOVE_NODE reply unlinks the handle
// before RemoveNode returns.
func (s *Supervisor) RemoveNode(ctx context.Context, ref handle.NodeRef) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("remove_node") {
		return false
	}
	n := s.resolveLive(ref, "remove_node")
	if n == nil {
		return false
	}
	_, span := telemetry.StartSupervisorSpan(ctx, telemetry.SpanNodeRemove, "remove_node", telemetry.NodeID(n.ID))
	defer span.End()
	s.state.QueueRemoval(n.ID)
	err := s.flushUnlocked(ctx, "remove_node")
	telemetry.EndSpanWithError(span, err)
	return err == nil
}
