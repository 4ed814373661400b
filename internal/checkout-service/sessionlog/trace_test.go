package sessionlog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNewEntry_WithoutSpan(t *testing.T) {
	entry := NewEntry(context.Background(), "s-1", OpCreated, "incomplete", map[string]string{"id": "s-1"}, nil)

	assert.Equal(t, "s-1", entry.SessionID)
	assert.Equal(t, OpCreated, entry.Operation)
	assert.JSONEq(t, `{"id":"s-1"}`, entry.Payload)
	assert.Empty(t, entry.TraceID)
	assert.Empty(t, entry.SpanID)
	assert.Empty(t, entry.ErrorMessage)
	assert.False(t, entry.UpdatedAt.IsZero())
}

func TestNewEntry_WithSpanAndError(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	entry := NewEntry(ctx, "s-2", OpCompletionFailed, "ready_for_complete", nil, errors.New("declined"))

	require.Len(t, entry.TraceID, 32)
	require.Len(t, entry.SpanID, 16)
	assert.Equal(t, span.SpanContext().TraceID().String(), entry.TraceID)
	assert.Equal(t, "declined", entry.ErrorMessage)
	assert.Empty(t, entry.Payload)
}
