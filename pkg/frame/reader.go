package frame

import (
	"fmt"

	"github.com/marmos91/supercore/pkg/fieldvalue"
	"github.com/marmos91/supercore/pkg/handle"
	"github.com/marmos91/supercore/pkg/metrics"
	"github.com/marmos91/supercore/pkg/oneshot"
	"github.com/marmos91/supercore/pkg/wire"
)

// UnhandledOpcode is returned by ReadReply when it encounters an opcode
// this core does not recognize. This is the protocol's extension
// point: "hand off to the base robot reader" — here that
// means the caller (normally the base robot runtime this core is
// embedded in) gets the raw opcode back to dispatch itself.
type UnhandledOpcode struct {
	Opcode Opcode
}

func (e *UnhandledOpcode) Error() string {
	return fmt.Sprintf("frame: unhandled opcode %s", e.Opcode)
}

// ReadReply reads and dispatches exactly one inbound reply opcode,
// updating the registry, queue, and one-shot slots in st. The garbage
// list is drained first: it is only safe to free
// string buffers the previous frame referenced once the writer that
// emitted that frame is known to be done with them, which is
// guaranteed true by the time any reply for that frame arrives.
func ReadReply(r *wire.Reader, st *State, coll *metrics.Collector) error {
	coll.AddGCDrained(st.Queue.DrainGarbage())

	reg := st.Registry
	op := Opcode(r.U8())
	switch op {
	case OpConfigure:
		readConfigure(r, st, reg)
	case OpNodeGetFromID, OpNodeGetFromDef, OpNodeGetFromTag, OpNodeGetSelected:
		readNodeResolution(r, st, reg, op)
	case OpFieldGetFromName:
		readFieldGetFromName(r, st, reg)
	case OpFieldGetValue:
		readFieldGetValue(r, st, reg)
	case OpNodeRegenerated:
		reg.RemoveInternalProtoEntries()
	case OpFieldInsertValue:
		readFieldInsertValue(r, reg)
	case OpNodeRemoveNode:
		readNodeRemoveNode(r, reg)
	case OpNodeGetPosition:
		readVec3Reply(r, reg, &st.Results.Position, &st.Results.HasPosition, setNodePosition)
	case OpNodeGetCenterOfMass:
		readVec3Reply(r, reg, &st.Results.CenterOfMass, &st.Results.HasCOM, setNodeCOM)
	case OpNodeGetOrientation:
		readOrientationReply(r, reg, st)
	case OpNodeGetVelocity:
		readVelocityReply(r, reg, st)
	case OpNodeGetContactPoints:
		readContactPointsReply(r, reg, st)
	case OpNodeGetStaticBalance:
		readStaticBalanceReply(r, reg, st)
	case OpVRHeadsetInfo:
		readVRHeadsetInfoReply(r, st)
	case OpMovieStatus:
		st.Results.MovieStatus = oneshot.MovieStatus(r.U8())
		st.Results.HasMovieStatus = true
	case OpAnimationStatus:
		st.Results.AnimationOK = r.Bool()
		st.Results.HasAnimation = true
	case OpSaveStatus:
		st.Results.SaveOK = r.Bool()
		st.Results.HasSave = true
	default:
		return &UnhandledOpcode{Opcode: op}
	}
	return r.Err()
}

func readConfigure(r *wire.Reader, st *State, reg *handle.Registry) {
	id := int32(r.U32())
	isProtoInternal := r.Bool()
	reg.AddNode(handle.Node{ID: id, IsProtoInternal: isProtoInternal})
	st.NodeResolutionID = id
}

// readNodeResolution handles every NODE_GET_FROM_* reply uniformly: on
// a non-zero uid it inserts/refreshes the handle and records it as the
// ambient resolution slot. A PROTO-internal node is accepted only when
// the armed request carries a PROTO scope (a DEF lookup inside a PROTO
// instance); otherwise it is dropped and the resolution reports no
// node. This applies to every resolution kind, by-tag included; there
// is no exemption for contact-point sub-nodes.
//
// A NODE_GET_FROM_DEF reply stamps the handle's DEF name and PROTO scope
// from the armed request (the reply itself carries no name): this is
// what lets a later FindNodeByDef hit the cache instead of re-resolving,
// so a repeated get_from_def performs no round trip.
func readNodeResolution(r *wire.Reader, st *State, reg *handle.Registry, op Opcode) {
	id := int32(r.U32())
	typeTag := r.I32()
	isProtoInternal := r.Bool()

	st.Resolution.Resolved = 0
	st.Resolution.Done = true

	if id == 0 {
		return
	}
	if isProtoInternal && !st.Resolution.HasProto {
		return
	}

	n := handle.Node{ID: id, TypeTag: typeTag, IsProtoInternal: isProtoInternal}
	if op == OpNodeGetFromDef {
		n.DEFName = st.Resolution.ByDEF
		n.HasParentProto = st.Resolution.HasProto
		if st.Resolution.HasProto {
			if scopeRef, _, ok := reg.FindNodeByID(st.Resolution.ProtoScope); ok {
				n.ParentProto = scopeRef
			}
		}
	}
	reg.AddNode(n)
	st.Resolution.Resolved = id
	st.NodeResolutionID = id
}

func readFieldGetFromName(r *wire.Reader, st *State, reg *handle.Registry) {
	nodeID := int32(r.U32())
	fieldID := r.I32()
	kind := fieldvalue.Kind(r.U32())
	isMF := r.Bool()
	count := r.I32()
	isProtoInternal := r.Bool()
	name := r.String()

	st.Resolution.Done = true

	if fieldID < 0 {
		// field_ref == -1 signals "not found"; clear the
		// name slot rather than registering a bogus handle.
		st.Resolution.FieldName = ""
		return
	}

	if !isMF {
		count = -1
	}
	reg.AddField(handle.Field{
		NodeID:          nodeID,
		Name:            name,
		Type:            fieldvalue.Type{Kind: kind, MF: isMF},
		Count:           count,
		FieldID:         fieldID,
		IsProtoInternal: isProtoInternal,
	})
}

func readFieldGetValue(r *wire.Reader, st *State, reg *handle.Registry) {
	defer st.Queue.ClearOutstandingGet()

	req := st.Queue.OutstandingGet()
	if req == nil {
		return
	}
	f := reg.Field(req.Field)
	if f == nil {
		return
	}

	val := readScalarPayload(r, f.Type.Kind)
	if f.Type.Kind == fieldvalue.KindNode && val.Node != 0 {
		reg.AddNode(handle.Node{ID: val.Node})
	}
	f.HasCached = true
	f.CachedSF = val
}

func readScalarPayload(r *wire.Reader, kind fieldvalue.Kind) fieldvalue.Scalar {
	switch kind {
	case fieldvalue.KindBool:
		return fieldvalue.Bool(r.Bool())
	case fieldvalue.KindInt32:
		return fieldvalue.Int32(r.I32())
	case fieldvalue.KindFloat:
		return fieldvalue.Float(r.F64())
	case fieldvalue.KindVec2f:
		return fieldvalue.Vec2f(r.Vec2())
	case fieldvalue.KindVec3f:
		return fieldvalue.Vec3f(r.Vec3())
	case fieldvalue.KindRotation:
		return fieldvalue.Rotation(r.Vec4())
	case fieldvalue.KindColor:
		return fieldvalue.Color(r.Vec3())
	case fieldvalue.KindString:
		return fieldvalue.String(r.String())
	case fieldvalue.KindNode:
		return fieldvalue.Node(r.I32())
	default:
		return fieldvalue.Scalar{}
	}
}

// readFieldInsertValue reconciles the parent field's Count from the
// number of nodes the server actually inserted: FIELD_INSERT_VALUE
// carries the number of nodes actually inserted, used by the import
// API to update count.
func readFieldInsertValue(r *wire.Reader, reg *handle.Registry) {
	nodeID := int32(r.U32())
	fieldID := r.I32()
	inserted := r.I32()

	if _, f, ok := reg.FindFieldByID(nodeID, fieldID); ok {
		f.Count += inserted
	}
}

func readNodeRemoveNode(r *wire.Reader, reg *handle.Registry) {
	id := int32(r.U32())
	reg.RemoveNode(id)
}

func setNodePosition(n *handle.Node, v [3]float64) { n.Position = v; n.HasPosition = true }
func setNodeCOM(n *handle.Node, v [3]float64)      { n.CenterOfMass = v; n.HasCenterOfMass = true }

func readVec3Reply(r *wire.Reader, reg *handle.Registry, out *[3]float64, hasOut *bool, apply func(*handle.Node, [3]float64)) {
	id := int32(r.U32())
	v := r.Vec3()
	*out = v
	*hasOut = true
	if _, n, ok := reg.FindNodeByID(id); ok {
		apply(n, v)
	}
}

func readOrientationReply(r *wire.Reader, reg *handle.Registry, st *State) {
	id := int32(r.U32())
	var v [9]float64
	for i := range v {
		v[i] = r.F64()
	}
	st.Results.Orientation = v
	st.Results.HasOrient = true
	if _, n, ok := reg.FindNodeByID(id); ok {
		n.Orientation = v
		n.HasOrientation = true
	}
}

func readVelocityReply(r *wire.Reader, reg *handle.Registry, st *State) {
	id := int32(r.U32())
	v := r.Vec6()
	st.Results.Velocity = v
	st.Results.HasVelocity = true
	if _, n, ok := reg.FindNodeByID(id); ok {
		n.SolidVelocity = v
		n.HasSolidVelocity = true
	}
}

func readContactPointsReply(r *wire.Reader, reg *handle.Registry, st *State) {
	id := int32(r.U32())
	n32 := r.U32()
	points := r.VecN(int(n32) * 3)
	nodeIDs := make([]int32, n32)
	for i := range nodeIDs {
		nodeIDs[i] = r.I32()
	}
	ts := r.F64()

	st.Results.ContactPoints = points
	st.Results.ContactPointNodeIDs = nodeIDs
	st.Results.ContactTimeStamp = ts
	st.Results.HasContactPoints = true

	if _, n, ok := reg.FindNodeByID(id); ok {
		n.ContactPoints = points
		n.ContactPointNodeIDs = nodeIDs
		n.ContactPointsTimeStamp = ts
		n.HasContactPoints = true
	}
}

// readVRHeadsetInfoReply reads the combined VR_HEADSET_INFO reply: a
// presence flag plus the headset's position and orientation, valid only
// when a headset is connected.
func readVRHeadsetInfoReply(r *wire.Reader, st *State) {
	used := r.Bool()
	pos := r.Vec3()
	var orient [9]float64
	for i := range orient {
		orient[i] = r.F64()
	}
	st.Results.HasVRPosition = used
	st.Results.VRPosition = pos
	st.Results.HasVROrient = used
	st.Results.VROrientation = orient
}

func readStaticBalanceReply(r *wire.Reader, reg *handle.Registry, st *State) {
	id := int32(r.U32())
	v := r.Bool()
	st.Results.StaticBalance = v
	st.Results.HasStaticBalance = true
	if _, n, ok := reg.FindNodeByID(id); ok {
		n.StaticBalance = v
		n.HasStaticBalance = true
	}
}
