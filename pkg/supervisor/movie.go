package supervisor

import (
	"context"

	"github.com/marmos91/supercore/internal/telemetry"
)

// movieStartRequest carries the struct-tag boundary for StartMovie.
type movieStartRequest struct {
	Filename string `validate:"required"`
	Width    int32  `validate:"gt=0"`
	Height   int32  `validate:"gt=0"`
}

// StartMovie begins recording a movie to filename at width x height,
// using the given codec and quality. accel requests hardware encoding
// acceleration; caption overlays the on-screen captions in the
// recording. The round trip's reply status is cached for MovieFailed;
// StartMovie itself returns false only on a role violation, bad
// arguments, or transport failure — an encoding failure reported later
// in the recording is only visible through MovieFailed.
func (s *Supervisor) StartMovie(ctx context.Context, filename string, width, height int32, codec, quality uint8, accel, caption bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("start_movie") {
		return false
	}
	req := movieStartRequest{Filename: filename, Width: width, Height: height}
	if err := s.validate.Struct(req); err != nil {
		diagnostic("start_movie", err.Error(), false)
		return false
	}
	s.state.Session.MovieStartArmed = true
	s.state.Session.MovieFilename = filename
	s.state.Session.MovieWidth = width
	s.state.Session.MovieHeight = height
	s.state.Session.MovieCodec = codec
	s.state.Session.MovieQuality = quality
	s.state.Session.MovieAccel = accel
	s.state.Session.MovieCaption = caption

	_, span := telemetry.StartSupervisorSpan(ctx, telemetry.SpanSessionAction, "start_movie")
	defer span.End()
	err := s.flushUnlocked(ctx, "start_movie")
	telemetry.EndSpanWithError(span, err)
	s.captureMovieStatus()
	return err == nil
}

// StopMovie ends the movie recording started by StartMovie, waiting for
// the server's final encoding status.
func (s *Supervisor) StopMovie(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.requireSupervisor("stop_movie") {
		return false
	}
	s.state.Session.MovieStopArmed = true

	_, span := telemetry.StartSupervisorSpan(ctx, telemetry.SpanSessionAction, "stop_movie")
	defer span.End()
	err := s.flushUnlocked(ctx, "stop_movie")
	telemetry.EndSpanWithError(span, err)
	s.captureMovieStatus()
	return err == nil && !s.lastMovieStatus.Failed()
}

// captureMovieStatus latches the movie status from the just-completed
// flush's reply, if one arrived, for MovieFailed to consult later.
func (s *Supervisor) captureMovieStatus() {
	if s.state.Results.HasMovieStatus {
		s.lastMovieStatus = s.state.Results.MovieStatus
		s.hasMovieStatus = true
	}
	s.state.Results.Reset()
}

// MovieFailed reports whether the last observed movie status represents
// a terminal encoding failure. false if no movie status has ever
// been observed.
func (s *Supervisor) MovieFailed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMovieStatus && s.lastMovieStatus.Failed()
}
