// Package supervisor implements the public API layer: the ~130
// operations an outer controller program calls to resolve nodes, read
// and write typed fields, apply forces, and drive session-wide actions
// against a running simulation. Every operation follows the same shape:
// assert the supervisor role, validate arguments, acquire the step
// lock, record the intent in the queue/one-shot layer, optionally
// flush, then copy results out and release the lock.
//
// Grounded on the donor's pkg/apiclient (validate-then-call-then-decode
// per operation, one file per resource family): client.go's Client
// struct here becomes Supervisor, and the HTTP round trip becomes a
// flush against a Transport.
package supervisor

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/marmos91/supercore/internal/logger"
	"github.com/marmos91/supercore/internal/telemetry"
	"github.com/marmos91/supercore/pkg/fieldvalue"
	"github.com/marmos91/supercore/pkg/frame"
	"github.com/marmos91/supercore/pkg/metrics"
	"github.com/marmos91/supercore/pkg/oneshot"
)

// Transport is the step-driver external collaborator: it owns the
// physical connection to the simulator, writes the frame WriteFrame
// produced, and reads back the replies ReadReply consumes. Flush must
// release no lock itself — Supervisor drops its own step lock around
// the call.
type Transport interface {
	// Flush writes st's outbound frame (frame.WriteFrame), transmits
	// it, and blocks until every reply the frame's requests expect has
	// been read back into st via frame.ReadReply.
	Flush(ctx context.Context, st *frame.State) error
}

// Role distinguishes a controller with supervisor privileges from an
// ordinary robot controller. Only a Supervisor role may call the
// operations in this package; a role-violation sentinel is enforced
// against this field.
type Role uint8

const (
	RoleController Role = iota
	RoleSupervisor
)

// Supervisor is the public API layer: one instance per controller
// process, owning the handle registry, request queue, one-shot slots,
// and session flags (via the embedded frame.State), guarded by a single
// step lock shared with the transport's round trip.
type Supervisor struct {
	mu sync.Mutex

	state     *frame.State
	transport Transport
	role      Role

	metrics  *metrics.Collector
	validate *validator.Validate

	// Latched status from the last observed movie-recording reply,
	// consulted by MovieFailed independent of when that reply arrived.
	lastMovieStatus oneshot.MovieStatus
	hasMovieStatus  bool
}

// New returns a Supervisor bound to transport, starting in the given
// role. Pass metrics.NewCollector(reg) or nil (no-op) for coll.
func New(transport Transport, role Role, coll *metrics.Collector) *Supervisor {
	v := validator.New()
	_ = v.RegisterValidation("finite", validateFiniteField)
	return &Supervisor{
		state:     frame.NewState(),
		transport: transport,
		role:      role,
		metrics:   coll,
		validate:  v,
	}
}

// validateFiniteField backs the "finite" validator tag, diving into the
// float64 fields of force/torque request structs so the struct-tag
// boundary rejects NaN/Inf/overflow the same way fieldvalue.ValidateFloat
// does for every other numeric argument.
func validateFiniteField(fl validator.FieldLevel) bool {
	return fieldvalue.ValidateFloat(fl.Field().Float()) == nil
}

// State exposes the underlying frame state for read-only inspection
// (used by cmd/supctl to render handle tables). Callers must not mutate
// the returned value outside the step lock.
func (s *Supervisor) State() *frame.State { return s.state }

// requireSupervisor enforces the role check: a role violation never
// aborts the process, it logs a diagnostic and the caller returns its
// sentinel.
func (s *Supervisor) requireSupervisor(op string) bool {
	if s.role != RoleSupervisor {
		logger.Warn("supervisor: role violation", "operation", op)
		return false
	}
	return true
}

// flushUnlocked releases the step lock around the transport's Flush
// (which writes the outbound frame and reads back the replies) and
// reacquires it before returning. The caller must hold s.mu on entry
// and will hold it again on return. A correlation id is generated per
// call and included in the error log when the flush fails.
func (s *Supervisor) flushUnlocked(ctx context.Context, op string) error {
	correlationID := uuid.New().String()
	ctx, span := telemetry.StartSupervisorSpan(ctx, telemetry.SpanFlush, op)
	defer span.End()

	s.metrics.SetQueueDepth(s.state.Queue.Len())

	s.mu.Unlock()
	err := s.transport.Flush(ctx, s.state)
	s.mu.Lock()

	telemetry.EndSpanWithError(span, err)
	if err != nil {
		logger.Error("supervisor: flush failed", "operation", op, "correlation_id", correlationID, "error", err)
		return err
	}
	return nil
}
