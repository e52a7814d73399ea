// Package handle implements the registry of live node and field handles:
// lookup by id, DEF name, or device tag, plus the validity check external
// callers use to guard against stale handles.
//
// Handles are opaque generational tokens, not pointers: NodeRef and
// FieldRef pair a dense slot index with a generation counter, so a freed
// and reused slot can never be mistaken for the handle that previously
// occupied it, in place of the original's intrusive linked lists.
package handle

import "github.com/marmos91/supercore/pkg/fieldvalue"

// NodeRef is an opaque token identifying a node handle slot.
type NodeRef struct {
	index      uint32
	generation uint32
}

// Valid reports whether the ref was ever issued (zero value is never
// valid: generation 0 is never assigned to a live slot).
func (r NodeRef) Valid() bool { return r.generation != 0 }

// FieldRef is an opaque token identifying a field handle slot.
type FieldRef struct {
	index      uint32
	generation uint32
}

// Valid reports whether the ref was ever issued.
func (r FieldRef) Valid() bool { return r.generation != 0 }

// RootID is the synthetic root node's server-assigned id.
const RootID int32 = 0

// Node is the data a node handle carries.
type Node struct {
	ID              int32
	TypeTag         int32
	ModelName       string // empty when equal to the base type name
	DEFName         string // extracted: substring after the last '.'
	ParentID        int32  // -1 when removed or root
	DeviceTag       int32
	HasDeviceTag    bool
	IsProto         bool
	IsProtoInternal bool
	ParentProto     NodeRef
	HasParentProto  bool

	// Lazily-populated caches; presence (Has*) indicates a valid reply
	// was received, not merely that the field is zero.
	Position                  [3]float64
	HasPosition               bool
	Orientation               [9]float64
	HasOrientation            bool
	CenterOfMass              [3]float64
	HasCenterOfMass           bool
	ContactPoints             []float64 // 3*N
	ContactPointNodeIDs       []int32   // N
	ContactPointsTimeStamp    float64
	HasContactPoints          bool
	StaticBalance             bool
	HasStaticBalance          bool
	SolidVelocity             [6]float64
	HasSolidVelocity          bool
}

// Field is the data a field handle carries.
type Field struct {
	NodeID          int32
	Name            string
	Type            fieldvalue.Type
	Count           int32 // -1 for SF
	FieldID         int32
	IsProtoInternal bool

	HasCached bool
	CachedSF  fieldvalue.Scalar
	CachedMF  fieldvalue.MF
}
