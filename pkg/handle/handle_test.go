package handle_test

import (
	"testing"

	"github.com/marmos91/supercore/pkg/handle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefNameOfLastSegmentWins(t *testing.T) {
	assert.Equal(t, "BODY", handle.DefNameOf("ROBOT.BODY"))
	assert.Equal(t, "ROBOT", handle.DefNameOf("ROBOT"))
	assert.Equal(t, "ARM", handle.DefNameOf("ROBOT.SHOULDER.ARM"))
}

func TestAddNodeIsIdempotentOnID(t *testing.T) {
	r := handle.NewRegistry()
	ref1 := r.AddNode(handle.Node{ID: 7, DEFName: "ROBOT.BODY"})
	ref2 := r.AddNode(handle.Node{ID: 7, DEFName: "ROBOT.BODY2"})

	assert.Equal(t, ref1, ref2)
	n := r.Node(ref1)
	require.NotNil(t, n)
	assert.Equal(t, "BODY2", n.DEFName)
}

func TestFindNodeByDefScoping(t *testing.T) {
	r := handle.NewRegistry()
	topRef := r.AddNode(handle.Node{ID: 1, DEFName: "ROBOT"})
	r.AddNode(handle.Node{ID: 2, DEFName: "ROBOT.BODY", IsProtoInternal: true, ParentProto: topRef, HasParentProto: true})

	// scoped lookup finds the internal node when parentProto matches
	ref, n, ok := r.FindNodeByDef("BODY", topRef, true)
	require.True(t, ok)
	assert.Equal(t, int32(2), n.ID)
	assert.True(t, ref.Valid())

	// unscoped lookup does not see proto-internal nodes
	_, _, ok = r.FindNodeByDef("BODY", handle.NodeRef{}, false)
	assert.False(t, ok)
}

func TestRemoveNodeResetsDependentParentIDs(t *testing.T) {
	r := handle.NewRegistry()
	r.AddNode(handle.Node{ID: 1, ParentID: -1})
	r.AddNode(handle.Node{ID: 2, ParentID: 1})
	r.AddNode(handle.Node{ID: 3, ParentID: 1})

	ok := r.RemoveNode(1)
	require.True(t, ok)

	_, _, found := r.FindNodeByID(1)
	assert.False(t, found)

	_, child2, _ := r.FindNodeByID(2)
	_, child3, _ := r.FindNodeByID(3)
	require.NotNil(t, child2)
	require.NotNil(t, child3)
	assert.EqualValues(t, -1, child2.ParentID)
	assert.EqualValues(t, -1, child3.ParentID)
}

func TestRemoveInternalProtoEntriesPurgesOnlyThose(t *testing.T) {
	r := handle.NewRegistry()
	keep := r.AddNode(handle.Node{ID: 1, IsProtoInternal: false})
	internal := r.AddNode(handle.Node{ID: 2, IsProtoInternal: true})

	r.RemoveInternalProtoEntries()

	assert.True(t, r.IsNodeRefValid(keep))
	assert.False(t, r.IsNodeRefValid(internal))
}

func TestGenerationalValidityAfterRemoveAndReuse(t *testing.T) {
	r := handle.NewRegistry()
	first := r.AddNode(handle.Node{ID: 1})
	r.RemoveNode(1)
	assert.False(t, r.IsNodeRefValid(first))

	second := r.AddNode(handle.Node{ID: 2})
	// second may reuse the freed slot, but its generation differs from
	// the stale first ref, so first must never validate again even if
	// the slot index is reused.
	assert.False(t, r.IsNodeRefValid(first))
	assert.True(t, r.IsNodeRefValid(second))
}

func TestAddFieldReturnsSameHandleOnRepeatedResolution(t *testing.T) {
	r := handle.NewRegistry()
	ref1 := r.AddField(handle.Field{NodeID: 1, Name: "translation"})
	ref2 := r.AddField(handle.Field{NodeID: 1, Name: "translation"})
	assert.Equal(t, ref1, ref2)
}
