package supervisor

import (
	"context"

	"github.com/marmos91/supercore/internal/telemetry"
	"github.com/marmos91/supercore/pkg/oneshot"
)

// armSessionExclusive is the shared body for the bucket-1 mutually
// exclusive session actions: only one of quit, reset, reset-physics,
// reload, load-world, or mode-change may occupy the next outbound
// frame.
func (s *Supervisor) armSessionExclusive(ctx context.Context, op string, arm func(*oneshot.Session)) bool {
	s.state.Session.ArmExclusive(arm)
	_, span := telemetry.StartSupervisorSpan(ctx, telemetry.SpanSessionAction, op)
	defer span.End()
	err := s.flushUnlocked(ctx, op)
	telemetry.EndSpanWithError(span, err)
	return err == nil
}

// Quit requests the controller process exit with status. Stale-handle
// diagnostics raised while QuitArmed is set are suppressed, since
// nothing downstream will observe them.
func (s *Supervisor) Quit(ctx context.Context, status int32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("quit") {
		return false
	}
	return s.armSessionExclusive(ctx, "quit", func(sess *oneshot.Session) {
		sess.QuitArmed = true
		sess.QuitStatus = status
	})
}

// ResetSimulation resets the simulation to its initial state.
func (s *Supervisor) ResetSimulation(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("reset_simulation") {
		return false
	}
	return s.armSessionExclusive(ctx, "reset_simulation", func(sess *oneshot.Session) {
		sess.ResetArmed = true
	})
}

// ResetSimulationPhysics resets physics for every node in the world,
// without reloading the world itself.
func (s *Supervisor) ResetSimulationPhysics(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("reset_simulation_physics") {
		return false
	}
	return s.armSessionExclusive(ctx, "reset_simulation_physics", func(sess *oneshot.Session) {
		sess.ResetPhysicsArmed = true
	})
}

// ReloadWorld reloads the current world file from disk.
func (s *Supervisor) ReloadWorld(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("reload_world") {
		return false
	}
	return s.armSessionExclusive(ctx, "reload_world", func(sess *oneshot.Session) {
		sess.ReloadArmed = true
	})
}

// LoadWorld replaces the running world with the one at filename.
func (s *Supervisor) LoadWorld(ctx context.Context, filename string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("load_world") {
		return false
	}
	if filename == "" {
		diagnostic("load_world", "empty world filename", false)
		return false
	}
	return s.armSessionExclusive(ctx, "load_world", func(sess *oneshot.Session) {
		sess.LoadWorldArmed = true
		sess.LoadWorldFile = filename
	})
}

// SetSimulationMode switches the simulator between run/pause/fast modes
// (the mode value's meaning is opaque to this core; it is forwarded
// as-is, per the client-is-a-dumb-pipe principle for session
// actions).
func (s *Supervisor) SetSimulationMode(ctx context.Context, mode int32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("set_simulation_mode") {
		return false
	}
	return s.armSessionExclusive(ctx, "set_simulation_mode", func(sess *oneshot.Session) {
		sess.ModeChangeArmed = true
		sess.ModeValue = mode
	})
}

// ExportImage captures the current 3D view to filename at the given
// JPEG quality (1-100). Deferred — rides the next frame, no flush.
func (s *Supervisor) ExportImage(ctx context.Context, filename string, quality uint8) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("export_image") {
		return false
	}
	if filename == "" {
		diagnostic("export_image", "empty image filename", false)
		return false
	}
	s.state.Session.ExportImageArmed = true
	s.state.Session.ExportQuality = quality
	s.state.Session.ExportFilename = filename
	return true
}
