package frame_test

import (
	"bytes"
	"testing"

	"github.com/marmos91/supercore/pkg/fieldvalue"
	"github.com/marmos91/supercore/pkg/frame"
	"github.com/marmos91/supercore/pkg/handle"
	"github.com/marmos91/supercore/pkg/oneshot"
	"github.com/marmos91/supercore/pkg/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFrameEmitsBucketsInFixedOrder(t *testing.T) {
	st := frame.NewState()
	st.Session.ArmExclusive(func(s *oneshot.Session) { s.ResetArmed = true })
	st.Resolution.Arm(oneshot.ResolveByTag)
	st.Resolution.ByTag = 7
	st.Requests.NodeID = 42
	st.Requests.WantPosition = true

	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	frame.WriteFrame(w, st, nil)
	require.NoError(t, w.Err())

	r := wire.NewReader(&buf)

	// Bucket 1: session-exclusive action (reset).
	assert.Equal(t, frame.OpSimulationReset, frame.Opcode(r.U8()))

	// Bucket 2: resolution request (by tag).
	assert.Equal(t, frame.OpNodeGetFromTag, frame.Opcode(r.U8()))
	assert.Equal(t, int32(7), r.I32())

	// Bucket 6: one-shot (position request, no queued field requests in
	// this test, no labels, no removals).
	assert.Equal(t, frame.OpNodeGetPosition, frame.Opcode(r.U8()))
	assert.Equal(t, uint32(42), r.U32())

	require.NoError(t, r.Err())

	// Session actions and one-shot requests are cleared after emission.
	assert.False(t, st.Session.ResetArmed)
	assert.False(t, st.Requests.WantPosition)
}

func TestWriteFrameDrainsQueueAndStashesOutstandingGet(t *testing.T) {
	st := frame.NewState()
	ref := st.Registry.AddField(handle.Field{
		NodeID:  1,
		Name:    "enabled",
		Type:    fieldvalue.Type{Kind: fieldvalue.KindBool},
		FieldID: 5,
	})
	_, err := st.Queue.EnqueueGet(ref, -1)
	require.NoError(t, err)

	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	frame.WriteFrame(w, st, nil)
	require.NoError(t, w.Err())

	r := wire.NewReader(&buf)
	assert.Equal(t, frame.OpFieldGetValue, frame.Opcode(r.U8()))
	assert.Equal(t, uint32(1), r.U32())
	assert.Equal(t, uint32(5), r.U32())
	assert.False(t, r.Bool())
	require.NoError(t, r.Err())

	// The GET moved into the outstanding slot, not the garbage list.
	got := st.Queue.OutstandingGet()
	require.NotNil(t, got)
	assert.Equal(t, ref, got.Field)
}

func TestWriteThenRemoveEmitsRemovalAfterLabels(t *testing.T) {
	st := frame.NewState()
	st.Labels.Set(frame.Label{ID: 1, Text: "hud", Font: "Arial", X: 0.1, Y: 0.2, Size: 0.5, Color: 0xffffffff})
	st.QueueRemoval(99)

	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	frame.WriteFrame(w, st, nil)
	require.NoError(t, w.Err())

	r := wire.NewReader(&buf)
	assert.Equal(t, frame.OpSetLabel, frame.Opcode(r.U8()))
	_ = r.U16()
	_ = r.Vec3()
	_ = r.U32()
	assert.Equal(t, "hud", r.String())
	assert.Equal(t, "Arial", r.String())

	assert.Equal(t, frame.OpNodeRemoveNode, frame.Opcode(r.U8()))
	assert.Equal(t, uint32(99), r.U32())
	require.NoError(t, r.Err())

	assert.Empty(t, st.PendingRemovals)
}

func TestReadReplyConfigureCreatesSelfNode(t *testing.T) {
	st := frame.NewState()

	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	w.U8(uint8(frame.OpConfigure))
	w.U32(3)
	w.Bool(false)
	require.NoError(t, w.Err())

	r := wire.NewReader(&buf)
	require.NoError(t, frame.ReadReply(r, st, nil))

	assert.Equal(t, int32(3), st.NodeResolutionID)
	_, n, ok := st.Registry.FindNodeByID(3)
	require.True(t, ok)
	assert.False(t, n.IsProtoInternal)
}

func TestReadReplyFieldGetValueUpdatesCacheAndClearsOutstanding(t *testing.T) {
	st := frame.NewState()
	ref := st.Registry.AddField(handle.Field{
		NodeID:  1,
		Name:    "enabled",
		Type:    fieldvalue.Type{Kind: fieldvalue.KindBool},
		FieldID: 5,
	})
	_, err := st.Queue.EnqueueGet(ref, -1)
	require.NoError(t, err)
	st.Queue.Drain() // stash the GET as outstanding, as WriteFrame would

	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	w.U8(uint8(frame.OpFieldGetValue))
	w.Bool(true)
	require.NoError(t, w.Err())

	r := wire.NewReader(&buf)
	require.NoError(t, frame.ReadReply(r, st, nil))

	f := st.Registry.Field(ref)
	require.NotNil(t, f)
	assert.True(t, f.HasCached)
	assert.True(t, f.CachedSF.Bool)
	assert.Nil(t, st.Queue.OutstandingGet())
}

func TestReadReplyNodeRemoveNodeUnlinksHandle(t *testing.T) {
	st := frame.NewState()
	st.Registry.AddNode(handle.Node{ID: 10})
	st.Registry.AddNode(handle.Node{ID: 11, ParentID: 10})

	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	w.U8(uint8(frame.OpNodeRemoveNode))
	w.U32(10)
	require.NoError(t, w.Err())

	r := wire.NewReader(&buf)
	require.NoError(t, frame.ReadReply(r, st, nil))

	_, _, ok := st.Registry.FindNodeByID(10)
	assert.False(t, ok)

	_, child, ok := st.Registry.FindNodeByID(11)
	require.True(t, ok)
	assert.Equal(t, int32(-1), child.ParentID)
}

func TestReadReplyPositionReplacesNodeCache(t *testing.T) {
	st := frame.NewState()
	st.Registry.AddNode(handle.Node{ID: 5})

	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	w.U8(uint8(frame.OpNodeGetPosition))
	w.U32(5)
	w.Vec3([3]float64{1, 2, 3})
	require.NoError(t, w.Err())

	r := wire.NewReader(&buf)
	require.NoError(t, frame.ReadReply(r, st, nil))

	assert.Equal(t, [3]float64{1, 2, 3}, st.Results.Position)
	assert.True(t, st.Results.HasPosition)

	_, n, ok := st.Registry.FindNodeByID(5)
	require.True(t, ok)
	assert.Equal(t, [3]float64{1, 2, 3}, n.Position)
	assert.True(t, n.HasPosition)
}

func TestReadReplyUnhandledOpcodeReturnsTypedError(t *testing.T) {
	st := frame.NewState()

	var buf bytes.Buffer
	buf.WriteByte(0xfe)

	r := wire.NewReader(&buf)
	err := frame.ReadReply(r, st, nil)
	require.Error(t, err)

	var unhandled *frame.UnhandledOpcode
	require.ErrorAs(t, err, &unhandled)
	assert.Equal(t, frame.Opcode(0xfe), unhandled.Opcode)
}

func TestReadReplyDrainsGarbageBeforeDispatch(t *testing.T) {
	st := frame.NewState()
	ref := st.Registry.AddField(handle.Field{
		NodeID: 1, Name: "label", Type: fieldvalue.Type{Kind: fieldvalue.KindString}, FieldID: 9,
	})
	st.Queue.EnqueueSet(ref, -1, fieldvalue.String("hello"), fieldvalue.Type{Kind: fieldvalue.KindString})
	st.Queue.Drain() // moves the SET to the garbage list

	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	w.U8(uint8(frame.OpNodeRegenerated))
	require.NoError(t, w.Err())

	r := wire.NewReader(&buf)
	require.NoError(t, frame.ReadReply(r, st, nil))

	// ReadReply already emptied the garbage list.
	assert.Equal(t, 0, st.Queue.DrainGarbage())
}
