package oneshot

// Session holds the single-writer session-control flags and payloads
// it covers: quit, reset, reload, simulation-mode change,
// image export, movie/animation recording, world save, and VR headset
// queries. Each is consumed by the next frame write and cleared
// afterward — setting one while another of the mutually-exclusive group
// (quit/reset/reset-physics/reload/load-world/mode-change) is still
// pending overwrites it, since only one may occupy bucket 1 of the
// frame writer's fixed emission order.
type Session struct {
	QuitArmed  bool
	QuitStatus int32

	ResetArmed        bool
	ResetPhysicsArmed bool
	ReloadArmed       bool

	LoadWorldArmed bool
	LoadWorldFile  string

	ModeChangeArmed bool
	ModeValue       int32

	ExportImageArmed bool
	ExportQuality    uint8
	ExportFilename   string

	MovieStartArmed bool
	MovieWidth      int32
	MovieHeight     int32
	MovieCodec      uint8
	MovieQuality    uint8
	MovieAccel      bool
	MovieCaption    bool
	MovieFilename   string
	MovieStopArmed  bool

	AnimationStartArmed bool
	AnimationFilename   string
	AnimationStopArmed  bool

	SaveArmed    bool
	SaveHasFile  bool
	SaveFilename string

	VRQueryArmed bool
}

// ArmExclusive arms one of the mutually-exclusive bucket-1 actions,
// clearing whichever was previously armed. fn should set exactly one of
// the corresponding *Armed fields to true on the zeroed Session.
func (s *Session) ArmExclusive(fn func(*Session)) {
	*s = Session{}
	fn(s)
}

// ClearFrameActions resets every flag that the frame writer consumes
// once per emission, called after the frame carrying them is written.
func (s *Session) ClearFrameActions() {
	s.QuitArmed = false
	s.ResetArmed = false
	s.ResetPhysicsArmed = false
	s.ReloadArmed = false
	s.LoadWorldArmed = false
	s.ModeChangeArmed = false
	s.ExportImageArmed = false
	s.MovieStartArmed = false
	s.MovieStopArmed = false
	s.AnimationStartArmed = false
	s.AnimationStopArmed = false
	s.SaveArmed = false
	s.VRQueryArmed = false
}
