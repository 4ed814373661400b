package sessionlog

import "context"

// Repository is the port for persisting session log entries. The checkout
// engine depends on this abstraction, not on SQLite directly.
type Repository interface {
	// Save appends a new entry. The log is never updated in place.
	Save(ctx context.Context, entry *Entry) error
}
