package sessionlog

import (
	"context"
	"encoding/json"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// TraceInfo holds the OTel identifiers extracted from a context.
type TraceInfo struct {
	TraceID string
	SpanID  string
}

// ExtractTraceInfo reads the active span from ctx. Both fields are empty when
// the context carries no valid span.
func ExtractTraceInfo(ctx context.Context) TraceInfo {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return TraceInfo{}
	}
	return TraceInfo{
		TraceID: sc.TraceID().String(),
		SpanID:  sc.SpanID().String(),
	}
}

// NewEntry builds an Entry for sessionID with the trace info taken from ctx.
// snapshot is marshalled to JSON; a value that cannot be marshalled leaves the
// payload empty rather than failing the caller.
//
//	entry := sessionlog.NewEntry(ctx, s.ID, sessionlog.OpUpdated, string(s.Status), s, nil)
func NewEntry(ctx context.Context, sessionID string, op Operation, status string, snapshot any, cause error) *Entry {
	ti := ExtractTraceInfo(ctx)

	var payload string
	if snapshot != nil {
		if b, err := json.Marshal(snapshot); err == nil {
			payload = string(b)
		}
	}

	var msg string
	if cause != nil {
		msg = cause.Error()
	}

	return &Entry{
		SessionID:    sessionID,
		Operation:    op,
		Status:       status,
		Payload:      payload,
		ErrorMessage: msg,
		TraceID:      ti.TraceID,
		SpanID:       ti.SpanID,
		UpdatedAt:    time.Now().UTC(),
	}
}
