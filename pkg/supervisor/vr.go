package supervisor

import (
	"context"

	"github.com/marmos91/supercore/internal/telemetry"
)

// VRHeadsetIsUsed reports whether a VR headset is currently connected
// to the simulator, issuing a round trip every call — headset presence
// can change between steps outside the controller's control.
func (s *Supervisor) VRHeadsetIsUsed(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("vr_headset_is_used") {
		return false
	}
	s.state.Session.VRQueryArmed = true

	_, span := telemetry.StartSupervisorSpan(ctx, telemetry.SpanOneShot, "vr_headset_is_used")
	defer span.End()
	err := s.flushUnlocked(ctx, "vr_headset_is_used")
	telemetry.EndSpanWithError(span, err)
	used := err == nil && s.state.Results.HasVRPosition
	s.state.Results.Reset()
	return used
}

// VRHeadsetPosition returns the headset's position, or NaNVec3 if no
// headset is connected.
func (s *Supervisor) VRHeadsetPosition(ctx context.Context) [3]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("vr_headset_position") {
		return NaNVec3
	}
	s.state.Session.VRQueryArmed = true

	_, span := telemetry.StartSupervisorSpan(ctx, telemetry.SpanOneShot, "vr_headset_position")
	defer span.End()
	if err := s.flushUnlocked(ctx, "vr_headset_position"); err != nil {
		telemetry.EndSpanWithError(span, err)
		s.state.Results.Reset()
		return NaNVec3
	}
	defer s.state.Results.Reset()
	if !s.state.Results.HasVRPosition {
		return NaNVec3
	}
	return s.state.Results.VRPosition
}

// VRHeadsetOrientation returns the headset's 3x3 rotation matrix
// (row-major), or an all-NaN 9-vector if no headset is connected.
func (s *Supervisor) VRHeadsetOrientation(ctx context.Context) [9]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var nan9 [9]float64
	for i := range nan9 {
		nan9[i] = NaNVec3[0]
	}
	if !s.requireSupervisor("vr_headset_orientation") {
		return nan9
	}
	s.state.Session.VRQueryArmed = true

	_, span := telemetry.StartSupervisorSpan(ctx, telemetry.SpanOneShot, "vr_headset_orientation")
	defer span.End()
	if err := s.flushUnlocked(ctx, "vr_headset_orientation"); err != nil {
		telemetry.EndSpanWithError(span, err)
		s.state.Results.Reset()
		return nan9
	}
	defer s.state.Results.Reset()
	if !s.state.Results.HasVROrient {
		return nan9
	}
	return s.state.Results.VROrientation
}
