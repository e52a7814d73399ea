package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys used on spans wrapping supervisor round trips.
const (
	AttrOperation = "supervisor.operation" // Public API operation name
	AttrOpcode    = "supervisor.opcode"    // Wire opcode carried in the frame
	AttrNodeID    = "supervisor.node_id"
	AttrFieldID   = "supervisor.field_id"
	AttrDEF       = "supervisor.def"
	AttrTag       = "supervisor.tag"
	AttrKind      = "supervisor.kind"
	AttrQueueLen  = "supervisor.queue_len"
	AttrCoalesced = "supervisor.coalesced"
	AttrGCDrained = "supervisor.gc_drained"
)

// Span name constants for the round trips this core drives.
const (
	SpanFlush         = "supervisor.flush"
	SpanResolve       = "supervisor.resolve"
	SpanFieldGet      = "supervisor.field.get"
	SpanFieldSet      = "supervisor.field.set"
	SpanFieldImport   = "supervisor.field.import"
	SpanFieldRemove   = "supervisor.field.remove"
	SpanNodeRemove    = "supervisor.node.remove"
	SpanOneShot       = "supervisor.oneshot"
	SpanSessionAction = "supervisor.session"
)

// Operation returns an attribute for the public API operation name.
func Operation(name string) attribute.KeyValue {
	return attribute.String(AttrOperation, name)
}

// Opcode returns an attribute for a wire opcode name.
func Opcode(name string) attribute.KeyValue {
	return attribute.String(AttrOpcode, name)
}

// NodeID returns an attribute for a node id.
func NodeID(id int32) attribute.KeyValue {
	return attribute.Int64(AttrNodeID, int64(id))
}

// FieldID returns an attribute for a field id.
func FieldID(id int32) attribute.KeyValue {
	return attribute.Int64(AttrFieldID, int64(id))
}

// DEF returns an attribute for a DEF-name lookup.
func DEF(name string) attribute.KeyValue {
	return attribute.String(AttrDEF, name)
}

// Tag returns an attribute for a device tag lookup.
func Tag(tag string) attribute.KeyValue {
	return attribute.String(AttrTag, tag)
}

// Kind returns an attribute for a field value kind.
func Kind(kind string) attribute.KeyValue {
	return attribute.String(AttrKind, kind)
}

// QueueLen returns an attribute for the pending-request queue length at
// flush time.
func QueueLen(n int) attribute.KeyValue {
	return attribute.Int(AttrQueueLen, n)
}

// Coalesced marks whether a GET was satisfied by coalescing against a
// pending SET instead of a round trip.
func Coalesced(hit bool) attribute.KeyValue {
	return attribute.Bool(AttrCoalesced, hit)
}

// GCDrained returns an attribute for the number of garbage-list entries
// freed at the top of a read-answer cycle.
func GCDrained(n int) attribute.KeyValue {
	return attribute.Int(AttrGCDrained, n)
}

// StartSupervisorSpan starts a span named for a supervisor round trip, with
// the operation attribute pre-populated.
func StartSupervisorSpan(ctx context.Context, spanName, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	all := append([]attribute.KeyValue{Operation(operation)}, attrs...)
	return StartSpan(ctx, spanName, trace.WithAttributes(all...))
}

// EndSpanWithError ends the span, recording err (if any) and setting the
// span status accordingly.
func EndSpanWithError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
