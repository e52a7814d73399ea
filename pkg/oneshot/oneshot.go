// Package oneshot implements the pending one-shot request slots: state
// cells for round trips that are not queued field mutations but single
// request/reply pairs issued at most once per step — node resolution,
// position/orientation/contact-point/velocity queries, static balance,
// VR headset queries, and movie/animation/save status. Grounded on the
// queue package's single outstanding-GET mailbox (pkg/queue.Queue),
// generalized here into one mailbox per result kind since several
// distinct one-shots may be armed within the same step: they belong
// to independent emission slots, unlike the single in-flight GET.
package oneshot

// MovieStatus mirrors the server's movie-recording status enum. Values
// greater than StatusSaving indicate failure.
type MovieStatus uint8

const (
	MovieReady MovieStatus = iota
	MovieRecording
	MovieSaving
	MovieSimulationError
	MovieFileError
	MovieEncodingError
)

// Failed reports whether this status represents a terminal failure.
func (s MovieStatus) Failed() bool { return s > MovieSaving }

// Resolution holds the armed-request state and cached reply for a single
// node-resolution one-shot (by id, by DEF, by tag, or currently
// selected). At most one of these may be armed per step; the
// resolver just tries whichever one is armed.
type Resolution struct {
	Armed      bool
	Kind       ResolutionKind
	ByID       int32
	ByDEF      string
	ProtoScope int32
	HasProto   bool
	ByTag      int32

	// FieldNodeID/FieldName/AllowProto arm the field-get-by-name
	// variant: resolving a field handle shares the same single-slot
	// bucket as node resolution, since the server answers both kinds
	// of request with exactly one reply per step.
	FieldNodeID int32
	FieldName   string
	AllowProto  bool

	Resolved   int32 // server-reported node uid; 0 if not found
	Done       bool
}

// ResolutionKind distinguishes which resolution request is armed.
type ResolutionKind uint8

const (
	ResolveNone ResolutionKind = iota
	ResolveByID
	ResolveByDEF
	ResolveByTag
	ResolveSelected
	ResolveFieldByName
)

// Arm records which resolution one-shot is pending. Panics the caller's
// invariant check is the API layer's job, not this slot's — Arm simply
// overwrites whatever was previously armed, since the API layer never
// arms a second resolution before flushing the first.
func (r *Resolution) Arm(kind ResolutionKind) {
	*r = Resolution{Armed: true, Kind: kind}
}

// Clear resets the slot after its reply has been consumed.
func (r *Resolution) Clear() { *r = Resolution{} }

// Slots holds every per-step one-shot result cell the frame reader
// populates and the public API layer drains. Zero value is the
// "nothing pending, nothing answered yet" state.
type Slots struct {
	Resolution Resolution

	// Vector results, each with a Has flag: absent data is reported as
	// an all-NaN sentinel by the API layer, not encoded here — the Has
	// flag alone distinguishes "answer received" from "never asked".
	Position     [3]float64
	HasPosition  bool
	Orientation  [9]float64
	HasOrient    bool
	CenterOfMass [3]float64
	HasCOM       bool
	Velocity     [6]float64
	HasVelocity  bool

	ContactPoints       []float64
	ContactPointNodeIDs []int32
	ContactTimeStamp    float64
	HasContactPoints    bool

	StaticBalance    bool
	HasStaticBalance bool

	VRPosition    [3]float64
	HasVRPosition bool
	VROrientation [9]float64
	HasVROrient   bool

	MovieStatus    MovieStatus
	HasMovieStatus bool
	AnimationOK    bool
	HasAnimation   bool
	SaveOK         bool
	HasSave        bool
}

// Reset clears every "answer received" flag and the armed resolution
// slot, called by the public API layer after copying results out at the
// end of a flush.
func (s *Slots) Reset() {
	s.Resolution.Clear()
	s.HasPosition = false
	s.HasOrient = false
	s.HasCOM = false
	s.HasVelocity = false
	s.HasContactPoints = false
	s.HasStaticBalance = false
	s.HasVRPosition = false
	s.HasVROrient = false
	s.HasMovieStatus = false
	s.HasAnimation = false
	s.HasSave = false
}
