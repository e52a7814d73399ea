package simtransport

import (
	"github.com/marmos91/supercore/pkg/fieldvalue"
	"github.com/marmos91/supercore/pkg/frame"
	"github.com/marmos91/supercore/pkg/wire"
)

// Arbitrary type-tag values this demo world assigns; meaningless outside
// this package: type tags are opaque to the client.
const (
	typeTagRoot  int32 = 0
	typeTagRobot int32 = 1
	typeTagMotor int32 = 2
)

// simField is one field slot on a simNode: its wire identity (id, kind,
// arity) and its current value(s).
type simField struct {
	id            int32
	name          string
	kind          fieldvalue.Kind
	mf            bool
	protoInternal bool
	elems         []fieldvalue.Scalar // len 1 for SF fields
}

// simNode is one node in the demo world.
type simNode struct {
	id            int32
	typeTag       int32
	def           string
	tag           int32
	hasTag        bool
	protoInternal bool
	fields        map[string]*simField
	fieldsByID    map[int32]*simField
}

// world holds every node and field this fake simulator knows about,
// plus the bookkeeping (selection, CONFIGURE handshake state) the
// protocol's session layer needs. One world per Transport.
type world struct {
	nodes       map[int32]*simNode
	byTag       map[int32]*simNode
	byDef       map[string]*simNode
	nextNodeID  int32
	nextFieldID int32
	selected    int32
	selfNodeID  int32
	configured  bool
}

func newDemoWorld() *world {
	w := &world{
		nodes: make(map[int32]*simNode),
		byTag: make(map[int32]*simNode),
		byDef: make(map[string]*simNode),
	}

	root := w.addNode(typeTagRoot, "", false)
	self := w.addNode(typeTagRobot, "", false)
	robot := w.addNode(typeTagRobot, "ROBOT", false)
	motor := w.addNode(typeTagMotor, "", false)
	motor.tag = 501
	motor.hasTag = true
	w.byTag[motor.tag] = motor

	w.addField(robot, "translation", fieldvalue.KindVec3f, false, fieldvalue.Vec3f([3]float64{0, 0, 0}))
	w.addField(robot, "rotation", fieldvalue.KindRotation, false, fieldvalue.Rotation([4]float64{0, 1, 0, 0}))
	w.addField(robot, "customData", fieldvalue.KindString, false, fieldvalue.String(""))
	w.addMFField(robot, "children", fieldvalue.KindNode, []fieldvalue.Scalar{fieldvalue.Node(motor.id)})
	w.addMFField(root, "children", fieldvalue.KindNode, []fieldvalue.Scalar{fieldvalue.Node(robot.id)})

	w.selfNodeID = self.id
	w.selected = robot.id
	return w
}

func (w *world) addNode(typeTag int32, def string, protoInternal bool) *simNode {
	n := &simNode{
		id:            w.nextNodeID,
		typeTag:       typeTag,
		def:           def,
		protoInternal: protoInternal,
		fields:        make(map[string]*simField),
		fieldsByID:    make(map[int32]*simField),
	}
	w.nextNodeID++
	w.nodes[n.id] = n
	if def != "" {
		w.byDef[def] = n
	}
	return n
}

func (w *world) addField(n *simNode, name string, kind fieldvalue.Kind, mf bool, initial fieldvalue.Scalar) *simField {
	f := &simField{id: w.nextFieldID, name: name, kind: kind, mf: mf, elems: []fieldvalue.Scalar{initial}}
	w.nextFieldID++
	n.fields[name] = f
	n.fieldsByID[f.id] = f
	return f
}

func (w *world) addMFField(n *simNode, name string, kind fieldvalue.Kind, elems []fieldvalue.Scalar) *simField {
	f := &simField{id: w.nextFieldID, name: name, kind: kind, mf: true, elems: elems}
	w.nextFieldID++
	n.fields[name] = f
	n.fieldsByID[f.id] = f
	return f
}

// dispatch parses one outbound record whose opcode has already been
// read into op, and writes any reply it provokes to rw. Every case
// mirrors exactly one bucket of pkg/frame/writer.go's fixed emission
// order; see WriteFrame and its helpers there for the byte layout of
// each record.
func (w *world) dispatch(op frame.Opcode, r *wire.Reader, rw *wire.Writer) {
	switch op {

	// Bucket 1: mutually exclusive session actions. None of these
	// provoke a reply.
	case frame.OpSimulationModeChange:
		r.I32()
	case frame.OpSimulationQuit:
		r.I32()
	case frame.OpSimulationReset, frame.OpSimulationReload, frame.OpSimulationResetPhysics:
		// no payload
	case frame.OpSimulationLoadWorld:
		r.String()

	// Bucket 2: node/field resolution. Exactly one reply, reusing the
	// request's own opcode.
	case frame.OpNodeGetFromID:
		id := int32(r.U32())
		w.replyNodeResolution(op, w.nodes[id], rw)
	case frame.OpNodeGetFromDef:
		def := r.String()
		r.I32() // proto scope or -1; this demo world does not track PROTO nesting
		w.replyNodeResolution(op, w.byDef[def], rw)
	case frame.OpNodeGetFromTag:
		tag := r.I32()
		w.replyNodeResolution(op, w.byTag[tag], rw)
	case frame.OpNodeGetSelected:
		w.replyNodeResolution(op, w.nodes[w.selected], rw)
	case frame.OpFieldGetFromName:
		w.handleFieldGetFromName(r, rw)

	// Bucket 3: queued field requests.
	case frame.OpFieldGetValue:
		w.handleFieldGetValue(r, rw)
	case frame.OpFieldSetValue:
		w.handleFieldSetValue(r)
	case frame.OpFieldInsertValue:
		w.handleFieldInsertValue(r, rw)
	case frame.OpFieldImportNodeFromString:
		w.handleFieldImportFromString(r, rw)
	case frame.OpFieldRemoveValue:
		w.handleFieldRemoveValue(r)

	// Bucket 4: on-screen labels. No reply.
	case frame.OpSetLabel:
		_ = r.U16()
		_ = r.Vec3()
		_ = r.U32()
		_ = r.String()
		_ = r.String()

	// Bucket 5: node removal. Echoes the removed id.
	case frame.OpNodeRemoveNode:
		id := int32(r.U32())
		delete(w.nodes, id)
		rw.U8(uint8(frame.OpNodeRemoveNode))
		rw.U32(uint32(id))

	// Bucket 6: physics one-shots.
	case frame.OpNodeGetPosition:
		id := int32(r.U32())
		rw.U8(uint8(frame.OpNodeGetPosition))
		rw.U32(uint32(id))
		rw.Vec3([3]float64{0, 0, 0})
	case frame.OpNodeGetCenterOfMass:
		id := int32(r.U32())
		rw.U8(uint8(frame.OpNodeGetCenterOfMass))
		rw.U32(uint32(id))
		rw.Vec3([3]float64{0, 0, 0})
	case frame.OpNodeGetOrientation:
		id := int32(r.U32())
		rw.U8(uint8(frame.OpNodeGetOrientation))
		rw.U32(uint32(id))
		identity := [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
		for _, c := range identity {
			rw.F64(c)
		}
	case frame.OpNodeGetVelocity:
		id := int32(r.U32())
		rw.U8(uint8(frame.OpNodeGetVelocity))
		rw.U32(uint32(id))
		rw.Vec6([6]float64{0, 0, 0, 0, 0, 0})
	case frame.OpNodeSetVelocity:
		r.U32()
		r.Vec6()
	case frame.OpNodeGetContactPoints:
		id := int32(r.U32())
		r.Bool() // includeDescendants
		rw.U8(uint8(frame.OpNodeGetContactPoints))
		rw.U32(uint32(id))
		rw.U32(0)
		rw.F64(0)
	case frame.OpNodeGetStaticBalance:
		id := int32(r.U32())
		rw.U8(uint8(frame.OpNodeGetStaticBalance))
		rw.U32(uint32(id))
		rw.Bool(true)
	case frame.OpNodeResetPhysics, frame.OpNodeRestartController:
		r.U32()
	case frame.OpNodeSetVisibility:
		r.U32()
		r.U32()
		r.Bool()
	case frame.OpNodeMoveViewpoint:
		r.U32()
	case frame.OpNodeAddForce:
		r.U32()
		r.Vec3()
		r.Bool()
	case frame.OpNodeAddForceWithOffset:
		r.U32()
		r.Vec3()
		r.Vec3()
		r.Bool()
	case frame.OpNodeAddTorque:
		r.U32()
		r.Vec3()
		r.Bool()

	// Bucket 7: session-wide actions.
	case frame.OpExportImage:
		r.U8()
		r.String()
	case frame.OpStartMovie:
		r.I32()
		r.I32()
		r.U8()
		r.U8()
		r.Bool()
		r.Bool()
		r.String()
		rw.U8(uint8(frame.OpMovieStatus))
		rw.U8(0) // oneshot.MovieReady: recording accepted
	case frame.OpStopMovie:
		rw.U8(uint8(frame.OpMovieStatus))
		rw.U8(0) // oneshot.MovieReady: encoding finished cleanly
	case frame.OpStartAnimation:
		r.String()
		rw.U8(uint8(frame.OpAnimationStatus))
		rw.Bool(true)
	case frame.OpStopAnimation:
		rw.U8(uint8(frame.OpAnimationStatus))
		rw.Bool(true)
	case frame.OpSaveWorld:
		hasFile := r.Bool()
		if hasFile {
			r.String()
		}
		rw.U8(uint8(frame.OpSaveStatus))
		rw.Bool(true)
	case frame.OpVRHeadsetInfo:
		rw.U8(uint8(frame.OpVRHeadsetInfo))
		rw.Bool(false)
		rw.Vec3([3]float64{0, 0, 0})
		var zero9 [9]float64
		for _, c := range zero9 {
			rw.F64(c)
		}
	}
}

func (w *world) replyNodeResolution(op frame.Opcode, n *simNode, rw *wire.Writer) {
	rw.U8(uint8(op))
	if n == nil {
		rw.U32(0)
		rw.I32(0)
		rw.Bool(false)
		return
	}
	rw.U32(uint32(n.id))
	rw.I32(n.typeTag)
	rw.Bool(n.protoInternal)
}

func (w *world) handleFieldGetFromName(r *wire.Reader, rw *wire.Writer) {
	nodeID := int32(r.U32())
	name := r.String()
	r.Bool() // allowProto: this demo world never hides fields behind it

	rw.U8(uint8(frame.OpFieldGetFromName))
	n := w.nodes[nodeID]
	if n == nil {
		w.writeFieldNotFound(rw, nodeID, name)
		return
	}
	f, ok := n.fields[name]
	if !ok {
		w.writeFieldNotFound(rw, nodeID, name)
		return
	}
	rw.U32(uint32(nodeID))
	rw.I32(f.id)
	rw.U32(uint32(f.kind))
	rw.Bool(f.mf)
	rw.I32(int32(len(f.elems)))
	rw.Bool(f.protoInternal)
	rw.String(name)
}

func (w *world) writeFieldNotFound(rw *wire.Writer, nodeID int32, name string) {
	rw.U32(uint32(nodeID))
	rw.I32(-1)
	rw.U32(0)
	rw.Bool(false)
	rw.I32(0)
	rw.Bool(false)
	rw.String(name)
}

func (w *world) findField(nodeID, fieldID int32) *simField {
	n, ok := w.nodes[nodeID]
	if !ok {
		return nil
	}
	return n.fieldsByID[fieldID]
}

func (w *world) handleFieldGetValue(r *wire.Reader, rw *wire.Writer) {
	nodeID := int32(r.U32())
	fieldID := r.I32()
	r.Bool() // isProtoInternal: echoed by the client, not needed to answer

	f := w.findField(nodeID, fieldID)
	index := int32(-1)
	if f != nil && f.mf {
		index = int32(r.U32())
	}

	rw.U8(uint8(frame.OpFieldGetValue))
	if f == nil {
		writeZeroScalar(rw, fieldvalue.KindBool)
		return
	}
	v := f.elems[0]
	if f.mf {
		if index < 0 || int(index) >= len(f.elems) {
			writeZeroScalar(rw, f.kind)
			return
		}
		v = f.elems[index]
	}
	writeScalar(rw, v)
}

func (w *world) handleFieldSetValue(r *wire.Reader) {
	nodeID := int32(r.U32())
	fieldID := r.I32()
	kind := fieldvalue.Kind(r.U32())
	rawIndex := r.U32()

	f := w.findField(nodeID, fieldID)
	v := readScalar(r, kind)
	if f == nil {
		return
	}
	if !f.mf {
		f.elems[0] = v
		return
	}
	index := int32(rawIndex)
	if index >= 0 && int(index) < len(f.elems) {
		f.elems[index] = v
	}
}

func (w *world) handleFieldInsertValue(r *wire.Reader, rw *wire.Writer) {
	nodeID := int32(r.U32())
	fieldID := r.I32()
	rawIndex := r.U32()

	f := w.findField(nodeID, fieldID)
	kind := fieldvalue.KindBool
	if f != nil {
		kind = f.kind
	}
	v := readScalar(r, kind)

	inserted := int32(0)
	if f != nil {
		index := int(int32(rawIndex))
		if index < 0 || index > len(f.elems) {
			index = len(f.elems)
		}
		f.elems = append(f.elems, fieldvalue.Scalar{})
		copy(f.elems[index+1:], f.elems[index:])
		f.elems[index] = v
		inserted = 1
	}

	rw.U8(uint8(frame.OpFieldInsertValue))
	rw.U32(uint32(nodeID))
	rw.I32(fieldID)
	rw.I32(inserted)
}

func (w *world) handleFieldImportFromString(r *wire.Reader, rw *wire.Writer) {
	nodeID := int32(r.U32())
	fieldID := r.I32()
	rawIndex := r.U32()
	r.String() // the .wbo/.wrl filename or node description; this demo world fabricates the node rather than parsing it

	f := w.findField(nodeID, fieldID)
	newNode := w.addNode(typeTagRobot, "", true)
	if f != nil {
		index := int(int32(rawIndex))
		if f.mf {
			if index < 0 || index > len(f.elems) {
				index = len(f.elems)
			}
			f.elems = append(f.elems, fieldvalue.Scalar{})
			copy(f.elems[index+1:], f.elems[index:])
			f.elems[index] = fieldvalue.Node(newNode.id)
		} else {
			f.elems[0] = fieldvalue.Node(newNode.id)
		}
	}

	// A node import always regenerates PROTO-internal handles on the
	// real protocol. The NODE_REGENERATED reply makes the client purge
	// its PROTO-internal node and field handles
	// (Registry.RemoveInternalProtoEntries).
	rw.U8(uint8(frame.OpNodeRegenerated))
}

func (w *world) handleFieldRemoveValue(r *wire.Reader) {
	nodeID := int32(r.U32())
	fieldID := r.I32()
	rawIndex := r.U32()

	f := w.findField(nodeID, fieldID)
	if f == nil {
		return
	}
	index := int(int32(rawIndex))
	if index < 0 || index >= len(f.elems) {
		return
	}
	f.elems = append(f.elems[:index], f.elems[index+1:]...)
}

func writeScalar(w *wire.Writer, v fieldvalue.Scalar) {
	switch v.Kind {
	case fieldvalue.KindBool:
		w.Bool(v.Bool)
	case fieldvalue.KindInt32:
		w.I32(v.I32)
	case fieldvalue.KindFloat:
		w.F64(v.F64)
	case fieldvalue.KindVec2f:
		w.Vec2(v.AsVec2f())
	case fieldvalue.KindVec3f, fieldvalue.KindColor:
		w.Vec3(v.AsVec3f())
	case fieldvalue.KindRotation:
		w.Vec4(v.AsRotation())
	case fieldvalue.KindString:
		w.String(v.Str)
	case fieldvalue.KindNode:
		w.I32(v.Node)
	}
}

func writeZeroScalar(w *wire.Writer, kind fieldvalue.Kind) {
	switch kind {
	case fieldvalue.KindBool:
		w.Bool(false)
	case fieldvalue.KindInt32:
		w.I32(0)
	case fieldvalue.KindFloat:
		w.F64(0)
	case fieldvalue.KindVec2f:
		w.Vec2([2]float64{0, 0})
	case fieldvalue.KindVec3f, fieldvalue.KindColor:
		w.Vec3([3]float64{0, 0, 0})
	case fieldvalue.KindRotation:
		w.Vec4([4]float64{0, 1, 0, 0})
	case fieldvalue.KindString:
		w.String("")
	case fieldvalue.KindNode:
		w.I32(0)
	}
}

func readScalar(r *wire.Reader, kind fieldvalue.Kind) fieldvalue.Scalar {
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
