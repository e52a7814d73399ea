package frame

import (
	"github.com/marmos91/supercore/pkg/fieldvalue"
	"github.com/marmos91/supercore/pkg/handle"
	"github.com/marmos91/supercore/pkg/metrics"
	"github.com/marmos91/supercore/pkg/oneshot"
	"github.com/marmos91/supercore/pkg/queue"
	"github.com/marmos91/supercore/pkg/wire"
)

// WriteFrame serializes every pending mutation, one-shot, and session
// action in st into a single outbound frame, in a fixed priority
// order. Called exactly once per step by the step-driver; the caller
// must already hold the step lock, and must have the lock released
// for the round trip that follows, not while this function runs.
//
// Bucket 3 (queued field requests) drains the queue: non-GET requests
// move to the garbage list and the single outstanding GET, if any, is
// stashed in the queue's mailbox. Buckets 1 and 4-7 clear their armed
// state as they are emitted. The bucket-2 resolution request is not
// cleared here: it stays armed until the API layer clears it after
// reading the reply, and a repeat call emits it again.
func WriteFrame(w *wire.Writer, st *State, coll *metrics.Collector) {
	writeSessionExclusive(w, &st.Session)
	writeResolutionRequest(w, &st.Resolution)

	reqs := st.Queue.Drain()
	coll.SetQueueDepth(0)
	for _, r := range reqs {
		writeFieldRequest(w, r, st.Registry)
	}

	for _, lbl := range st.Labels.Drain() {
		writeLabel(w, lbl)
	}

	for _, id := range st.PendingRemovals {
		w.U8(uint8(OpNodeRemoveNode))
		w.U32(uint32(id))
	}
	st.PendingRemovals = nil

	writeOneShots(w, &st.Requests)
	st.Requests.Clear()

	writeSessionActions(w, &st.Session)
	st.Session.ClearFrameActions()
}

func writeSessionExclusive(w *wire.Writer, s *oneshot.Session) {
	switch {
	case s.ModeChangeArmed:
		w.U8(uint8(OpSimulationModeChange))
		w.I32(s.ModeValue)
	case s.QuitArmed:
		w.U8(uint8(OpSimulationQuit))
		w.I32(s.QuitStatus)
	case s.ResetArmed:
		w.U8(uint8(OpSimulationReset))
	case s.ReloadArmed:
		w.U8(uint8(OpSimulationReload))
	case s.ResetPhysicsArmed:
		w.U8(uint8(OpSimulationResetPhysics))
	case s.LoadWorldArmed:
		w.U8(uint8(OpSimulationLoadWorld))
		w.String(s.LoadWorldFile)
	}
}

func writeResolutionRequest(w *wire.Writer, r *oneshot.Resolution) {
	if !r.Armed {
		return
	}
	switch r.Kind {
	case oneshot.ResolveByID:
		w.U8(uint8(OpNodeGetFromID))
		w.U32(uint32(r.ByID))
	case oneshot.ResolveByDEF:
		w.U8(uint8(OpNodeGetFromDef))
		w.String(r.ByDEF)
		if r.HasProto {
			w.I32(r.ProtoScope)
		} else {
			w.I32(-1)
		}
	case oneshot.ResolveByTag:
		w.U8(uint8(OpNodeGetFromTag))
		w.I32(r.ByTag)
	case oneshot.ResolveSelected:
		w.U8(uint8(OpNodeGetSelected))
	case oneshot.ResolveFieldByName:
		w.U8(uint8(OpFieldGetFromName))
		w.U32(uint32(r.FieldNodeID))
		w.String(r.FieldName)
		w.Bool(r.AllowProto)
	}
}

// writeFieldRequest emits one queued request, resolving its field
// handle to the (node id, field id, type) triple the wire format needs.
// A request whose field has gone stale between enqueue and flush (the
// owning node was removed mid-step) is silently dropped: stale-handle
// rejection belongs to the API layer at enqueue time, not to the
// writer.
func writeFieldRequest(w *wire.Writer, r *queue.Request, reg *handle.Registry) {
	f := reg.Field(r.Field)
	if f == nil {
		return
	}

	switch r.Op {
	case queue.OpGet:
		w.U8(uint8(OpFieldGetValue))
		w.U32(uint32(f.NodeID))
		w.U32(uint32(f.FieldID))
		w.Bool(f.IsProtoInternal)
		if f.Type.MF {
			w.U32(uint32(r.Index))
		}
	case queue.OpSet:
		w.U8(uint8(OpFieldSetValue))
		w.U32(uint32(f.NodeID))
		w.U32(uint32(f.FieldID))
		w.U32(uint32(f.Type.Kind))
		w.U32(uint32(r.Index))
		writeScalarPayload(w, r.Data)
	case queue.OpImport:
		w.U8(uint8(OpFieldInsertValue))
		w.U32(uint32(f.NodeID))
		w.U32(uint32(f.FieldID))
		w.U32(uint32(r.Index))
		writeScalarPayload(w, r.Data)
	case queue.OpImportFromString:
		w.U8(uint8(OpFieldImportNodeFromString))
		w.U32(uint32(f.NodeID))
		w.U32(uint32(f.FieldID))
		w.U32(uint32(r.Index))
		w.String(r.Import)
	case queue.OpRemove:
		w.U8(uint8(OpFieldRemoveValue))
		w.U32(uint32(f.NodeID))
		w.U32(uint32(f.FieldID))
		w.U32(uint32(r.Index))
	}
}

// writeScalarPayload serializes a Scalar's value per the per-kind
// SET/INSERT payload table.
func writeScalarPayload(w *wire.Writer, v fieldvalue.Scalar) {
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

func writeLabel(w *wire.Writer, lbl Label) {
	w.U8(uint8(OpSetLabel))
	w.U16(lbl.ID)
	w.Vec3([3]float64{lbl.X, lbl.Y, lbl.Size})
	w.U32(lbl.Color)
	w.String(lbl.Text)
	w.String(lbl.Font)
}

func writeOneShots(w *wire.Writer, r *oneshot.Requests) {
	if r.WantPosition {
		w.U8(uint8(OpNodeGetPosition))
		w.U32(uint32(r.NodeID))
	}
	if r.WantOrientation {
		w.U8(uint8(OpNodeGetOrientation))
		w.U32(uint32(r.NodeID))
	}
	if r.WantCenterOfMass {
		w.U8(uint8(OpNodeGetCenterOfMass))
		w.U32(uint32(r.NodeID))
	}
	if r.WantContactPoints {
		w.U8(uint8(OpNodeGetContactPoints))
		w.U32(uint32(r.NodeID))
		w.Bool(r.IncludeDescendants)
	}
	if r.WantStaticBalance {
		w.U8(uint8(OpNodeGetStaticBalance))
		w.U32(uint32(r.NodeID))
	}
	if r.WantVelocity {
		w.U8(uint8(OpNodeGetVelocity))
		w.U32(uint32(r.NodeID))
	}
	if r.SetVelocity {
		w.U8(uint8(OpNodeSetVelocity))
		w.U32(uint32(r.NodeID))
		w.Vec6(r.VelocityValue)
	}
	if r.ResetPhysics {
		w.U8(uint8(OpNodeResetPhysics))
		w.U32(uint32(r.NodeID))
	}
	if r.RestartCtrl {
		w.U8(uint8(OpNodeRestartController))
		w.U32(uint32(r.NodeID))
	}
	if r.SetVisibility {
		w.U8(uint8(OpNodeSetVisibility))
		w.U32(uint32(r.NodeID))
		w.U32(uint32(r.VisibilityViewer))
		w.Bool(r.VisibilityValue)
	}
	if r.MoveViewpoint {
		w.U8(uint8(OpNodeMoveViewpoint))
		w.U32(uint32(r.ViewpointTarget))
	}
	if r.AddForce {
		w.U8(uint8(OpNodeAddForce))
		w.U32(uint32(r.NodeID))
		w.Vec3(r.Force)
		w.Bool(r.ForceRelative)
	}
	if r.AddForceOffset {
		w.U8(uint8(OpNodeAddForceWithOffset))
		w.U32(uint32(r.NodeID))
		w.Vec3(r.Force)
		w.Vec3(r.ForceOffset)
		w.Bool(r.ForceRelative)
	}
	if r.AddTorque {
		w.U8(uint8(OpNodeAddTorque))
		w.U32(uint32(r.NodeID))
		w.Vec3(r.Torque)
		w.Bool(r.TorqueRelative)
	}
}

func writeSessionActions(w *wire.Writer, s *oneshot.Session) {
	if s.ExportImageArmed {
		w.U8(uint8(OpExportImage))
		w.U8(s.ExportQuality)
		w.String(s.ExportFilename)
	}
	if s.MovieStartArmed {
		w.U8(uint8(OpStartMovie))
		w.I32(s.MovieWidth)
		w.I32(s.MovieHeight)
		w.U8(s.MovieCodec)
		w.U8(s.MovieQuality)
		w.Bool(s.MovieAccel)
		w.Bool(s.MovieCaption)
		w.String(s.MovieFilename)
	}
	if s.MovieStopArmed {
		w.U8(uint8(OpStopMovie))
	}
	if s.AnimationStartArmed {
		w.U8(uint8(OpStartAnimation))
		w.String(s.AnimationFilename)
	}
	if s.AnimationStopArmed {
		w.U8(uint8(OpStopAnimation))
	}
	if s.SaveArmed {
		w.U8(uint8(OpSaveWorld))
		w.Bool(s.SaveHasFile)
		if s.SaveHasFile {
			w.String(s.SaveFilename)
		}
	}
	if s.VRQueryArmed {
		w.U8(uint8(OpVRHeadsetInfo))
	}
}
