package logger

import (
	"fmt"
	"log/slog"
)

// Standard field keys for structured logging across the supervisor core.
// Use these keys consistently across all log statements for aggregation
// and querying.
const (
	// Distributed tracing
	KeyTraceID = "trace_id"
	KeySpanID  = "span_id"

	// Operation & wire framing
	KeyOperation = "operation"  // Public API operation name
	KeyOpcode    = "opcode"     // Wire opcode name
	KeyStep      = "step"       // Simulation step counter
	KeyDurationMs = "duration_ms"

	// Handle identity
	KeyNodeID  = "node_id"
	KeyFieldID = "field_id"
	KeyDEF     = "def"
	KeyTag     = "tag"
	KeyIndex   = "index"
	KeyKind    = "kind"

	// Queue / GC
	KeyQueueDepth  = "queue_depth"
	KeyGCDrained   = "gc_drained"
	KeyCoalesced   = "coalesced"
	KeyFrameBytes  = "frame_bytes"

	// Errors
	KeyError     = "error"
	KeyErrorCode = "error_code"
)

// TraceID returns a slog.Attr for OpenTelemetry trace ID
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID returns a slog.Attr for OpenTelemetry span ID
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// Operation returns a slog.Attr for the public API operation name
func Operation(name string) slog.Attr {
	return slog.String(KeyOperation, name)
}

// Opcode returns a slog.Attr for a wire opcode name
func Opcode(name string) slog.Attr {
	return slog.String(KeyOpcode, name)
}

// NodeID returns a slog.Attr for a node id
func NodeID(id int32) slog.Attr {
	return slog.Int64(KeyNodeID, int64(id))
}

// FieldID returns a slog.Attr for a field id
func FieldID(id int32) slog.Attr {
	return slog.Int64(KeyFieldID, int64(id))
}

// Err returns a slog.Attr for an error value, or an empty Attr (which
// slog handlers omit) for a nil error.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Fmt is a convenience formatter matching the donor's printf-style helpers.
func Fmt(format string, v ...any) string {
	return fmt.Sprintf(format, v...)
}
