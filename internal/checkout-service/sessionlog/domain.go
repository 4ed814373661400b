// Package sessionlog defines an append-only audit trail of checkout session
// transitions.
//
// Every create, update and completion attempt appends one entry carrying a
// JSON snapshot of the session and the trace that produced it, so a row can be
// correlated with the distributed trace via trace_id.
package sessionlog

import "time"

// Operation names the engine call that produced an entry.
type Operation string

const (
	OpCreated          Operation = "CREATED"
	OpUpdated          Operation = "UPDATED"
	OpCompleted        Operation = "COMPLETED"
	OpCompletionFailed Operation = "COMPLETION_FAILED"
)

// Entry is a single row in the session_logs table.
type Entry struct {
	SessionID string
	Operation Operation

	// Status is the session status after the operation.
	Status string

	// Payload is the JSON-serialised session snapshot.
	Payload string

	// ErrorMessage is set on failed completions only.
	ErrorMessage string

	TraceID string
	SpanID  string

	UpdatedAt time.Time
}
