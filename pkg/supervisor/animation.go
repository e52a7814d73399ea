package supervisor

import (
	"context"

	"github.com/marmos91/supercore/internal/telemetry"
)

// animationStartRequest carries the struct-tag boundary for
// AnimationStartRecording.
type animationStartRequest struct {
	Filename string `validate:"required,endswith=.html"`
}

// AnimationStartRecording begins HTML animation recording to filename,
// which must end in .html.
func (s *Supervisor) AnimationStartRecording(ctx context.Context, filename string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("animation_start_recording") {
		return false
	}
	if err := s.validate.Struct(animationStartRequest{Filename: filename}); err != nil {
		diagnostic("animation_start_recording", err.Error(), false)
		return false
	}
	s.state.Session.AnimationStartArmed = true
	s.state.Session.AnimationFilename = filename

	_, span := telemetry.StartSupervisorSpan(ctx, telemetry.SpanSessionAction, "animation_start_recording")
	defer span.End()
	err := s.flushUnlocked(ctx, "animation_start_recording")
	telemetry.EndSpanWithError(span, err)
	ok := err == nil && (!s.state.Results.HasAnimation || s.state.Results.AnimationOK)
	s.state.Results.Reset()
	return ok
}

// AnimationStopRecording ends animation recording, returning whether
// the server reported a clean finish.
func (s *Supervisor) AnimationStopRecording(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("animation_stop_recording") {
		return false
	}
	s.state.Session.AnimationStopArmed = true

	_, span := telemetry.StartSupervisorSpan(ctx, telemetry.SpanSessionAction, "animation_stop_recording")
	defer span.End()
	err := s.flushUnlocked(ctx, "animation_stop_recording")
	telemetry.EndSpanWithError(span, err)
	ok := err == nil && (!s.state.Results.HasAnimation || s.state.Results.AnimationOK)
	s.state.Results.Reset()
	return ok
}
