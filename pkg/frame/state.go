package frame

import (
	"github.com/marmos91/supercore/pkg/handle"
	"github.com/marmos91/supercore/pkg/oneshot"
	"github.com/marmos91/supercore/pkg/queue"
)

// State aggregates every piece of per-connection state the frame writer
// serializes and the frame reader populates: the handle registry, the
// request queue, pending labels and node removals, the one-shot request
// and result slots, and the session-action flags. One State exists per
// supervisor client instance, protected by the caller's step lock
// — nothing in this package takes its own lock.
type State struct {
	Registry *handle.Registry
	Queue    *queue.Queue
	Labels   Labels

	PendingRemovals []int32

	Resolution oneshot.Resolution
	Requests   oneshot.Requests
	Results    oneshot.Slots
	Session    oneshot.Session

	// NodeResolutionID is the ambient "most recently resolved node"
	// slot the reader fills in for NODE_GET_FROM_* replies, consulted
	// by callers that immediately chain a field lookup onto a resolve.
	NodeResolutionID int32
}

// NewState returns a State ready to drive a fresh connection.
func NewState() *State {
	return &State{
		Registry: handle.NewRegistry(),
		Queue:    queue.New(),
	}
}

// QueueRemoval arms a node for removal on the next frame write.
func (s *State) QueueRemoval(nodeID int32) {
	s.PendingRemovals = append(s.PendingRemovals, nodeID)
}
