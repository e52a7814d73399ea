// Package simtransport implements an in-memory fake of the
// supervisor.Transport interface: it plays the role of the simulator
// process on the other end of the wire, parsing the exact byte stream
// pkg/frame.WriteFrame produces and synthesizing the replies
// pkg/frame.ReadReply expects. It exists for cmd/supctl's demo mode and
// for any test that wants a running Supervisor without a real
// simulator connection.
//
// Grounded on the donor's in-memory identity store
// (pkg/store/identity/memory/store.go): a single struct holding plain
// maps, with data lost on restart. Unlike that store it holds no mutex. The round trip here is synchronous and in-process rather
// than over a socket, which is the point — cmd/supctl can demonstrate
// every operation without a Webots instance to talk to.
package simtransport

import (
	"bytes"
	"context"
	"fmt"

	"github.com/marmos91/supercore/pkg/frame"
	"github.com/marmos91/supercore/pkg/wire"
)

// Transport is an in-memory stand-in for a real simulator connection.
// It is not thread-safe for concurrent Flush calls (no real transport
// would be either — the step lock in pkg/supervisor ensures at most
// one flush is in flight at a time).
type Transport struct {
	world *world
}

// New returns a Transport seeded with a small demonstration scene: a
// root node, a self node representing this controller's own robot, a
// DEF-named robot with a handful of writable fields, and a tagged
// device child — enough surface for cmd/supctl to exercise resolution,
// field get/set/import/remove, one-shot physics queries, and session
// actions end to end.
func New() *Transport {
	return &Transport{world: newDemoWorld()}
}

// Flush implements supervisor.Transport: it writes st's outbound frame,
// "transmits" it to the in-memory world, and reads every synthesized
// reply back into st before returning.
func (t *Transport) Flush(_ context.Context, st *frame.State) error {
	var outBuf bytes.Buffer
	ow := wire.NewWriter(&outBuf)
	frame.WriteFrame(ow, st, nil)
	if err := ow.Err(); err != nil {
		return fmt.Errorf("simtransport: write outbound frame: %w", err)
	}

	var replyBuf bytes.Buffer
	rw := wire.NewWriter(&replyBuf)

	if !t.world.configured {
		rw.U8(uint8(frame.OpConfigure))
		rw.U32(uint32(t.world.selfNodeID))
		rw.Bool(false)
		t.world.configured = true
	}

	or := wire.NewReader(&outBuf)
	for outBuf.Len() > 0 {
		op := frame.Opcode(or.U8())
		t.world.dispatch(op, or, rw)
	}
	if err := or.Err(); err != nil {
		return fmt.Errorf("simtransport: parse outbound frame: %w", err)
	}
	if err := rw.Err(); err != nil {
		return fmt.Errorf("simtransport: write reply frame: %w", err)
	}

	rr := wire.NewReader(&replyBuf)
	for replyBuf.Len() > 0 {
		if err := frame.ReadReply(rr, st, nil); err != nil {
			return fmt.Errorf("simtransport: dispatch reply: %w", err)
		}
	}
	return nil
}
