package queue_test

import (
	"testing"

	"github.com/marmos91/supercore/pkg/fieldvalue"
	"github.com/marmos91/supercore/pkg/handle"
	"github.com/marmos91/supercore/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldRef(t *testing.T) handle.FieldRef {
	t.Helper()
	r := handle.NewRegistry()
	ref := r.AddField(handle.Field{NodeID: 1, Name: "enabled"})
	return ref
}

func TestSetThenGetCoalescesWithoutRoundTrip(t *testing.T) {
	q := queue.New()
	f := fieldRef(t)
	sfBool := fieldvalue.Type{Kind: fieldvalue.KindBool}

	q.EnqueueSet(f, -1, fieldvalue.Bool(true), sfBool)

	got, satisfied := q.CoalesceGet(f, -1)
	require.True(t, satisfied)
	assert.True(t, got.Bool)

	// No GET request should have been required.
	assert.Equal(t, 1, q.Len())
}

func TestWriteCoalescingKeepsLastValue(t *testing.T) {
	q := queue.New()
	f := fieldRef(t)
	mfFloat := fieldvalue.Type{Kind: fieldvalue.KindFloat, MF: true}

	q.EnqueueSet(f, 2, fieldvalue.Float(1.0), mfFloat)
	q.EnqueueSet(f, 2, fieldvalue.Float(2.0), mfFloat)

	got, satisfied := q.CoalesceGet(f, 2)
	require.True(t, satisfied)
	assert.Equal(t, 2.0, got.F64)

	// Exactly one SET must be emitted for (field, 2).
	drained := q.Drain()
	require.Len(t, drained, 1)
	assert.Equal(t, queue.OpSet, drained[0].Op)
	assert.Equal(t, 2.0, drained[0].Data.F64)
}

func TestOnlyOneOutstandingGetAllowed(t *testing.T) {
	q := queue.New()
	f := fieldRef(t)

	_, err := q.EnqueueGet(f, -1)
	require.NoError(t, err)

	_, err = q.EnqueueGet(f, -1)
	assert.ErrorIs(t, err, queue.ErrGetInFlight)

	q.Drain() // moves the GET into the outstanding slot
	_, err = q.EnqueueGet(f, -1)
	assert.ErrorIs(t, err, queue.ErrGetInFlight)

	q.ClearOutstandingGet()
	_, err = q.EnqueueGet(f, -1)
	assert.NoError(t, err)
}

func TestDrainMovesNonGetRequestsToGarbageList(t *testing.T) {
	q := queue.New()
	f := fieldRef(t)
	sfString := fieldvalue.Type{Kind: fieldvalue.KindString}

	q.EnqueueSet(f, -1, fieldvalue.String("payload"), sfString)
	q.Drain()

	assert.Equal(t, 1, q.DrainGarbage())
	assert.Equal(t, 0, q.DrainGarbage()) // already drained
}

// TestImportMFNodeAlwaysOwnsStringPayload pins down a subtle case: an
// earlier reference implementation computed is_string via an assignment
// rather than an equality test for `action == IMPORT && type == MF_NODE`.
// This implementation treats it as the intended equality: importing into
// an MF_NODE field always carries an owned string payload, regardless of
// whether the caller also supplied one explicitly.
func TestImportMFNodeAlwaysOwnsStringPayload(t *testing.T) {
	q := queue.New()
	f := fieldRef(t)
	mfNode := fieldvalue.Type{Kind: fieldvalue.KindNode, MF: true}

	req := q.EnqueueImport(f, -1, fieldvalue.Node(0), mfNode)
	assert.True(t, req.IsString)

	sfNode := fieldvalue.Type{Kind: fieldvalue.KindNode}
	req2 := q.EnqueueImport(f, -1, fieldvalue.Node(0), sfNode)
	assert.False(t, req2.IsString)
}
