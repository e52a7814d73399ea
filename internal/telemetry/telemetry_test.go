package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, "supercore", cfg.ServiceName)
	assert.Equal(t, "dev", cfg.ServiceVersion)
	assert.Equal(t, "localhost:4317", cfg.Endpoint)
	assert.True(t, cfg.Insecure)
	assert.Equal(t, 1.0, cfg.SampleRate)
}

func TestInitDisabled(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.Enabled = false

	shutdown, err := Init(ctx, cfg)
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	// Should be able to call shutdown without error
	err = shutdown(ctx)
	assert.NoError(t, err)

	// Should not be enabled
	assert.False(t, IsEnabled())
}

func TestTracerReturnsNoOp(t *testing.T) {
	// Reset state
	tracer = nil
	enabled = false

	// Without initialization, should return no-op tracer
	tr := Tracer()
	require.NotNil(t, tr)
}

func TestStartSpan(t *testing.T) {
	ctx := context.Background()

	// Even without initialization, StartSpan should work (no-op)
	newCtx, span := StartSpan(ctx, "test.operation")
	require.NotNil(t, newCtx)
	require.NotNil(t, span)

	// Should be able to end the span
	span.End()
}

func TestSpanFromContext(t *testing.T) {
	ctx := context.Background()

	// Should return a span even without active span
	span := SpanFromContext(ctx)
	require.NotNil(t, span)
}

func TestAddEvent(t *testing.T) {
	ctx := context.Background()

	// Should not panic with no active span
	require.NotPanics(t, func() {
		AddEvent(ctx, "test.event")
	})
}

func TestRecordError(t *testing.T) {
	ctx := context.Background()

	// Should not panic with nil error
	require.NotPanics(t, func() {
		RecordError(ctx, nil)
	})

	// Should not panic with error
	require.NotPanics(t, func() {
		RecordError(ctx, errors.New("test error"))
	})
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()

	// Should not panic
	require.NotPanics(t, func() {
		SetStatus(ctx, codes.Ok, "success")
	})

	require.NotPanics(t, func() {
		SetStatus(ctx, codes.Error, "failed")
	})
}

func TestSetAttributes(t *testing.T) {
	ctx := context.Background()

	// Should not panic
	require.NotPanics(t, func() {
		SetAttributes(ctx, NodeID(7))
	})
}

func TestTraceID(t *testing.T) {
	ctx := context.Background()

	// Without active span, should return empty string
	traceID := TraceID(ctx)
	assert.Equal(t, "", traceID)
}

func TestSpanID(t *testing.T) {
	ctx := context.Background()

	// Without active span, should return empty string
	spanID := SpanID(ctx)
	assert.Equal(t, "", spanID)
}

func TestAttributeHelpers(t *testing.T) {
	t.Run("Operation", func(t *testing.T) {
		attr := Operation("GetFromDef")
		assert.Equal(t, AttrOperation, string(attr.Key))
		assert.Equal(t, "GetFromDef", attr.Value.AsString())
	})

	t.Run("Opcode", func(t *testing.T) {
		attr := Opcode("FIELD_GET_VALUE")
		assert.Equal(t, AttrOpcode, string(attr.Key))
		assert.Equal(t, "FIELD_GET_VALUE", attr.Value.AsString())
	})

	t.Run("NodeID", func(t *testing.T) {
		attr := NodeID(7)
		assert.Equal(t, AttrNodeID, string(attr.Key))
		assert.Equal(t, int64(7), attr.Value.AsInt64())
	})

	t.Run("FieldID", func(t *testing.T) {
		attr := FieldID(2)
		assert.Equal(t, AttrFieldID, string(attr.Key))
		assert.Equal(t, int64(2), attr.Value.AsInt64())
	})

	t.Run("DEF", func(t *testing.T) {
		attr := DEF("ROBOT.BODY")
		assert.Equal(t, AttrDEF, string(attr.Key))
		assert.Equal(t, "ROBOT.BODY", attr.Value.AsString())
	})

	t.Run("Tag", func(t *testing.T) {
		attr := Tag("GPS")
		assert.Equal(t, AttrTag, string(attr.Key))
		assert.Equal(t, "GPS", attr.Value.AsString())
	})

	t.Run("Kind", func(t *testing.T) {
		attr := Kind("SFFloat")
		assert.Equal(t, AttrKind, string(attr.Key))
		assert.Equal(t, "SFFloat", attr.Value.AsString())
	})

	t.Run("QueueLen", func(t *testing.T) {
		attr := QueueLen(3)
		assert.Equal(t, AttrQueueLen, string(attr.Key))
		assert.Equal(t, int64(3), attr.Value.AsInt64())
	})

	t.Run("Coalesced", func(t *testing.T) {
		attr := Coalesced(true)
		assert.Equal(t, AttrCoalesced, string(attr.Key))
		assert.True(t, attr.Value.AsBool())
	})

	t.Run("GCDrained", func(t *testing.T) {
		attr := GCDrained(4)
		assert.Equal(t, AttrGCDrained, string(attr.Key))
		assert.Equal(t, int64(4), attr.Value.AsInt64())
	})
}

func TestStartSupervisorSpan(t *testing.T) {
	ctx := context.Background()

	newCtx, span := StartSupervisorSpan(ctx, SpanFieldGet, "GetSFFloat", NodeID(7), FieldID(2))
	require.NotNil(t, newCtx)
	require.NotNil(t, span)
	span.End()

	newCtx2, span2 := StartSupervisorSpan(ctx, SpanFlush, "Flush", QueueLen(0))
	require.NotNil(t, newCtx2)
	require.NotNil(t, span2)
	span2.End()
}

func TestEndSpanWithError(t *testing.T) {
	ctx := context.Background()

	_, span := StartSpan(ctx, SpanOneShot)
	require.NotPanics(t, func() {
		EndSpanWithError(span, nil)
	})

	_, span2 := StartSpan(ctx, SpanOneShot)
	require.NotPanics(t, func() {
		EndSpanWithError(span2, errors.New("torn transport"))
	})
}
