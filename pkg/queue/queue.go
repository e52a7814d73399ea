package queue

import (
	"errors"
	"sync"

	"github.com/marmos91/supercore/pkg/fieldvalue"
	"github.com/marmos91/supercore/pkg/handle"
)

// ErrGetInFlight is returned when a second GET is attempted while one is
// already outstanding, a precondition violation the implementation
// must prevent by construction.
var ErrGetInFlight = errors.New("queue: a GET is already outstanding")

// Queue holds the pending request FIFO, the garbage list of requests
// whose string payload must outlive the frame that references it, and
// the single-slot mailbox for the one outstanding GET. Grounded on the
// donor's pooled-buffer lifetime discipline (pkg/bufpool), adapted from
// pooled byte slices to owned request records, and on its background
// flusher's drain-then-free shape, adapted to run synchronously at the
// top of the next read-answer cycle rather than on a timer.
type Queue struct {
	mu sync.Mutex

	pending []*Request
	garbage []*Request

	outstandingGet *Request
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{}
}

// Len returns the number of requests currently pending (not yet sent).
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// CoalesceGet checks whether a pending SET already targets the same
// (field, index): if so its data is returned immediately — no request
// is created, no network trip occurs.
func (q *Queue) CoalesceGet(field handle.FieldRef, index int32) (fieldvalue.Scalar, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, r := range q.pending {
		if r.Op == OpSet && r.Field == field && r.Index == index {
			return r.Data, true
		}
	}
	return fieldvalue.Scalar{}, false
}

// EnqueueGet records a GET request after CoalesceGet found no pending
// SET to short-circuit against. Fails with ErrGetInFlight if a GET is
// already outstanding or already queued, enforcing "at most one
// outstanding GET at any time."
func (q *Queue) EnqueueGet(field handle.FieldRef, index int32) (*Request, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.outstandingGet != nil {
		return nil, ErrGetInFlight
	}
	for _, r := range q.pending {
		if r.Op == OpGet {
			return nil, ErrGetInFlight
		}
	}

	req := &Request{Op: OpGet, Field: field, Index: index}
	q.pending = append(q.pending, req)
	return req, nil
}

// EnqueueSet overwrites a pending SET targeting the same (field,
// index) if one exists, otherwise enqueues a new SET request. SET is
// deferred — it rides the next step's
// outbound frame rather than triggering an immediate flush.
func (q *Queue) EnqueueSet(field handle.FieldRef, index int32, data fieldvalue.Scalar, fieldType fieldvalue.Type) *Request {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, r := range q.pending {
		if r.Op == OpSet && r.Field == field && r.Index == index {
			r.Data = data
			r.IsString = computeIsString(OpSet, fieldType)
			return r
		}
	}

	req := &Request{Op: OpSet, Field: field, Index: index, Data: data, IsString: computeIsString(OpSet, fieldType)}
	q.pending = append(q.pending, req)
	return req
}

// EnqueueImport records an INSERT-class mutation (node or value insert
// at a resolved index). Never coalesced.
func (q *Queue) EnqueueImport(field handle.FieldRef, index int32, data fieldvalue.Scalar, fieldType fieldvalue.Type) *Request {
	q.mu.Lock()
	defer q.mu.Unlock()
	req := &Request{Op: OpImport, Field: field, Index: index, Data: data, IsString: computeIsString(OpImport, fieldType)}
	q.pending = append(q.pending, req)
	return req
}

// EnqueueImportFromString records an MF_NODE import from a textual node
// description or filename. Always owns a string payload.
func (q *Queue) EnqueueImportFromString(field handle.FieldRef, index int32, text string) *Request {
	q.mu.Lock()
	defer q.mu.Unlock()
	req := &Request{Op: OpImportFromString, Field: field, Index: index, Import: text, IsString: true}
	q.pending = append(q.pending, req)
	return req
}

// EnqueueRemove records a field element removal. Never coalesced.
func (q *Queue) EnqueueRemove(field handle.FieldRef, index int32) *Request {
	q.mu.Lock()
	defer q.mu.Unlock()
	req := &Request{Op: OpRemove, Field: field, Index: index}
	q.pending = append(q.pending, req)
	return req
}

// Drain removes and returns every pending request in FIFO order, for
// the frame writer to serialize. The GET request, if present, is
// additionally stashed as the outstanding slot; all other requests are
// moved to the garbage list (their string payload must outlive frame
// emission).
func (q *Queue) Drain() []*Request {
	q.mu.Lock()
	defer q.mu.Unlock()

	drained := q.pending
	q.pending = nil

	for _, r := range drained {
		if r.Op == OpGet {
			q.outstandingGet = r
		} else {
			q.garbage = append(q.garbage, r)
		}
	}
	return drained
}

// ClearOutstandingGet frees the single GET mailbox, called by the frame
// reader once FIELD_GET_VALUE has been processed.
func (q *Queue) ClearOutstandingGet() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.outstandingGet = nil
}

// OutstandingGet returns the in-flight GET request, if any.
func (q *Queue) OutstandingGet() *Request {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.outstandingGet
}

// DrainGarbage frees every garbage-listed request, returning how many
// were freed. Must only be called once the writer is done with those
// buffers — the top of the next read-answer cycle.
func (q *Queue) DrainGarbage() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.garbage)
	q.garbage = nil
	return n
}
