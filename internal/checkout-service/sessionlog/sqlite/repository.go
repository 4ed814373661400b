// Package sqlite provides a SQLite-backed implementation of sessionlog.Repository.
//
// The schema is managed by golang-migrate from the embedded migrations
// directory. WAL mode is enabled on Open so that readers never block the
// writer.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/jcmexdev/ucp-commerce/internal/checkout-service/sessionlog"

	// Pure-Go SQLite driver, registered as "sqlite".
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNotFound is returned when a session has no log entries.
var ErrNotFound = errors.New("sqlite: no log entries")

var _ sessionlog.Repository = (*Repository)(nil)

// Repository is the SQLite implementation of sessionlog.Repository.
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and migrates it to the latest
// schema. ":memory:" gives a private in-process database.
//
//	repo, err := sqlite.Open("./data/sessions.db")
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// Single connection: one writer, and ":memory:" databases are per connection.
	db.SetMaxOpenConns(1)

	if err := migrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repository{db: db}, nil
}

func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("sqlite: load migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("sqlite: migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("sqlite: migrate init: %w", err)
	}

	// m.Close would close db as well, so the migrator is simply dropped.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("sqlite: migrate up: %w", err)
	}
	return nil
}

// Close releases the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save appends entry. It is safe to call concurrently.
func (r *Repository) Save(ctx context.Context, entry *sessionlog.Entry) error {
	const q = `
		INSERT INTO session_logs
			(session_id, operation, status, payload, error_message, trace_id, span_id, updated_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.SessionID,
		string(entry.Operation),
		entry.Status,
		nullableString(entry.Payload),
		entry.ErrorMessage,
		entry.TraceID,
		entry.SpanID,
		formatTime(entry.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save session log for %q: %w", entry.SessionID, err)
	}
	return nil
}

const selectColumns = `
	SELECT session_id, operation, status, COALESCE(payload, ''), error_message,
	       trace_id, span_id, updated_at
	FROM   session_logs`

// GetLatest returns the most recent entry for sessionID.
func (r *Repository) GetLatest(ctx context.Context, sessionID string) (*sessionlog.Entry, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+`
		WHERE  session_id = ?
		ORDER  BY updated_at DESC, id DESC
		LIMIT  1`, sessionID)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get latest for %q: %w", sessionID, err)
	}
	return entry, nil
}

// History returns every entry for sessionID, oldest first.
func (r *Repository) History(ctx context.Context, sessionID string) ([]sessionlog.Entry, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+`
		WHERE  session_id = ?
		ORDER  BY updated_at ASC, id ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: history for %q: %w", sessionID, err)
	}
	defer rows.Close()

	var out []sessionlog.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: history for %q: %w", sessionID, err)
		}
		out = append(out, *entry)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*sessionlog.Entry, error) {
	var entry sessionlog.Entry
	var op, updatedAt string
	err := s.Scan(
		&entry.SessionID,
		&op,
		&entry.Status,
		&entry.Payload,
		&entry.ErrorMessage,
		&entry.TraceID,
		&entry.SpanID,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	entry.Operation = sessionlog.Operation(op)
	entry.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// nullableString stores NULL instead of an empty payload.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
