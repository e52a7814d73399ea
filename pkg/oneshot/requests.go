package oneshot

// Requests holds the armed arguments for one-shot round trips that carry
// outbound parameters beyond a bare node id: velocity set, contact
// points (with descendants flag), force/torque application, visibility,
// and viewpoint moves. Each boolean flag (Want*, Set*, Add*, ...) marks
// its one-shot armed for the next frame write; the writer clears it
// after emission.
type Requests struct {
	NodeID int32

	WantPosition     bool
	WantOrientation  bool
	WantCenterOfMass bool

	WantVelocity bool

	SetVelocity    bool
	VelocityValue  [6]float64

	WantContactPoints   bool
	IncludeDescendants  bool

	WantStaticBalance bool

	ResetPhysics     bool
	RestartCtrl      bool

	SetVisibility    bool
	VisibilityViewer int32
	VisibilityValue  bool

	MoveViewpoint   bool
	ViewpointTarget int32

	AddForce       bool
	Force          [3]float64
	ForceRelative  bool

	AddForceOffset bool
	ForceOffset    [3]float64

	AddTorque      bool
	Torque         [3]float64
	TorqueRelative bool
}

// Clear resets every armed flag, preserving NodeID (the caller resets it
// on the next call that targets a different node).
func (r *Requests) Clear() {
	node := r.NodeID
	*r = Requests{NodeID: node}
}

// Any reports whether at least one one-shot is armed, used by the frame
// writer to decide whether this bucket contributes to the outbound
// frame at all.
func (r *Requests) Any() bool {
	return r.WantPosition || r.WantOrientation || r.WantCenterOfMass ||
		r.WantVelocity || r.SetVelocity || r.WantContactPoints ||
		r.WantStaticBalance || r.ResetPhysics || r.RestartCtrl ||
		r.SetVisibility || r.MoveViewpoint || r.AddForce ||
		r.AddForceOffset || r.AddTorque
}
