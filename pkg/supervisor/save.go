package supervisor

import (
	"context"

	"github.com/marmos91/supercore/internal/telemetry"
)

// SaveWorld saves the current world. An empty filename saves back to
// the world's own file; a non-empty one must end in .wbt.
func (s *Supervisor) SaveWorld(ctx context.Context, filename string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("save_world") {
		return false
	}
	if filename != "" && !hasExtension(filename, ".wbt") {
		diagnostic("save_world", "world save filename must end in .wbt", false)
		return false
	}
	s.state.Session.SaveArmed = true
	s.state.Session.SaveHasFile = filename != ""
	s.state.Session.SaveFilename = filename

	_, span := telemetry.StartSupervisorSpan(ctx, telemetry.SpanSessionAction, "save_world")
	defer span.End()
	err := s.flushUnlocked(ctx, "save_world")
	telemetry.EndSpanWithError(span, err)
	ok := err == nil && (!s.state.Results.HasSave || s.state.Results.SaveOK)
	s.state.Results.Reset()
	return ok
}
