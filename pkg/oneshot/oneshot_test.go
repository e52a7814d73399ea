package oneshot_test

import (
	"testing"

	"github.com/marmos91/supercore/pkg/oneshot"
	"github.com/stretchr/testify/assert"
)

func TestMovieStatusFailed(t *testing.T) {
	assert.False(t, oneshot.MovieReady.Failed())
	assert.False(t, oneshot.MovieSaving.Failed())
	assert.True(t, oneshot.MovieSimulationError.Failed())
	assert.True(t, oneshot.MovieFileError.Failed())
	assert.True(t, oneshot.MovieEncodingError.Failed())
}

func TestResolutionArmOverwritesPrevious(t *testing.T) {
	var r oneshot.Resolution
	r.Arm(oneshot.ResolveByTag)
	r.ByTag = 42
	assert.True(t, r.Armed)
	assert.Equal(t, oneshot.ResolveByTag, r.Kind)

	r.Arm(oneshot.ResolveByDEF)
	assert.Equal(t, oneshot.ResolveByDEF, r.Kind)
	// Arm resets the whole struct, so stale fields from a prior arming
	// never leak into a different kind's request.
	assert.Equal(t, int32(0), r.ByTag)
}

func TestResolutionClear(t *testing.T) {
	var r oneshot.Resolution
	r.Arm(oneshot.ResolveByID)
	r.Resolved = 9
	r.Done = true
	r.Clear()
	assert.False(t, r.Armed)
	assert.False(t, r.Done)
	assert.Equal(t, int32(0), r.Resolved)
}

func TestSlotsResetClearsHasFlagsOnly(t *testing.T) {
	var s oneshot.Slots
	s.Position = [3]float64{1, 2, 3}
	s.HasPosition = true
	s.Resolution.Arm(oneshot.ResolveSelected)

	s.Reset()

	assert.False(t, s.HasPosition)
	assert.False(t, s.Resolution.Armed)
	// The cached vector itself is left alone; callers must copy it out
	// before calling Reset if they still need it.
	assert.Equal(t, [3]float64{1, 2, 3}, s.Position)
}

func TestRequestsClearPreservesNodeID(t *testing.T) {
	r := oneshot.Requests{NodeID: 7, WantPosition: true, WantVelocity: true}
	r.Clear()
	assert.Equal(t, int32(7), r.NodeID)
	assert.False(t, r.WantPosition)
	assert.False(t, r.Any())
}

func TestRequestsAny(t *testing.T) {
	var r oneshot.Requests
	assert.False(t, r.Any())
	r.AddTorque = true
	assert.True(t, r.Any())
}

func TestSessionArmExclusiveResetsOtherFlags(t *testing.T) {
	var s oneshot.Session
	s.ArmExclusive(func(s *oneshot.Session) {
		s.ResetArmed = true
	})
	assert.True(t, s.ResetArmed)

	s.ArmExclusive(func(s *oneshot.Session) {
		s.ReloadArmed = true
	})
	assert.True(t, s.ReloadArmed)
	assert.False(t, s.ResetArmed)
}

func TestSessionClearFrameActions(t *testing.T) {
	var s oneshot.Session
	s.QuitArmed = true
	s.ExportImageArmed = true
	s.SaveArmed = true
	s.VRQueryArmed = true

	s.ClearFrameActions()

	assert.False(t, s.QuitArmed)
	assert.False(t, s.ExportImageArmed)
	assert.False(t, s.SaveArmed)
	assert.False(t, s.VRQueryArmed)
}
