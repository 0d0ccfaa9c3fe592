// Package audit records security-relevant events from the dataset service.
//
// Every policy rejection (path rejected, size cap exceeded) is an expected,
// first-class outcome and is always logged with full context. When a
// Postgres connection is configured, events are additionally persisted so
// rejections can be reviewed after the fact; without one, the recorder
// degrades to log-only and the service stays fully functional.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Action identifies the kind of event being recorded.
type Action string

const (
	// ActionPathRejected is emitted when PathGuard refuses a request.
	ActionPathRejected Action = "path_rejected"

	// ActionCapExceeded is emitted when a file or line-count cap rejects a read.
	ActionCapExceeded Action = "cap_exceeded"

	// ActionFileServed is emitted when a dataset file is successfully read.
	ActionFileServed Action = "file_served"
)

// Event is a single audit trail entry. Directory and File carry the raw,
// unsanitized request inputs so the trail shows exactly what was asked for.
type Event struct {
	ID        uuid.UUID
	Action    Action
	Directory string
	File      string
	Reason    string
	CreatedAt time.Time
}

// Recorder accepts audit events. Record must not fail the calling
// operation; persistence problems are logged and swallowed.
type Recorder interface {
	Record(ctx context.Context, e Event)
}

// NewEvent builds an event with a fresh ID and timestamp.
func NewEvent(action Action, directory, file, reason string) Event {
	return Event{
		ID:        uuid.New(),
		Action:    action,
		Directory: directory,
		File:      file,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}
}

// LogRecorder writes events to the structured log only.
type LogRecorder struct{}

// Record implements Recorder.
func (LogRecorder) Record(ctx context.Context, e Event) {
	logEvent(ctx, e)
}

// logEvent emits the event to slog. Rejections are warnings so they stand
// out in the log stream; successful serves are informational.
func logEvent(ctx context.Context, e Event) {
	logger := slog.Default()
	args := []any{
		"audit_id", e.ID.String(),
		"action", string(e.Action),
		"directory", e.Directory,
		"file", e.File,
		"reason", e.Reason,
	}
	if e.Action == ActionFileServed {
		logger.InfoContext(ctx, "audit event", args...)
	} else {
		logger.WarnContext(ctx, "security event", args...)
	}
}

// PgRecorder persists events to Postgres and mirrors them to the log.
type PgRecorder struct {
	pool *pgxpool.Pool
}

// NewPgRecorder verifies connectivity, ensures the audit table exists and
// returns a persisting recorder.
func NewPgRecorder(ctx context.Context, pool *pgxpool.Pool) (*PgRecorder, error) {
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("audit store ping: %w", err)
	}

	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS dataset_audit_log (
			id         UUID PRIMARY KEY,
			action     TEXT NOT NULL,
			directory  TEXT NOT NULL,
			file       TEXT NOT NULL DEFAULT '',
			reason     TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return nil, fmt.Errorf("audit store schema: %w", err)
	}

	return &PgRecorder{pool: pool}, nil
}

// Record implements Recorder. Insert failures are logged, never propagated:
// an audit outage must not turn valid reads into errors.
func (r *PgRecorder) Record(ctx context.Context, e Event) {
	logEvent(ctx, e)

	_, err := r.pool.Exec(ctx,
		`INSERT INTO dataset_audit_log (id, action, directory, file, reason, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, string(e.Action), e.Directory, e.File, e.Reason, e.CreatedAt)
	if err != nil {
		slog.ErrorContext(ctx, "audit insert failed", "audit_id", e.ID.String(), "error", err)
	}
}

// Recent returns the most recent n events, newest first.
func (r *PgRecorder) Recent(ctx context.Context, n int) ([]Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, action, directory, file, reason, created_at
		 FROM dataset_audit_log ORDER BY created_at DESC LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("audit query: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var action string
		if err := rows.Scan(&e.ID, &action, &e.Directory, &e.File, &e.Reason, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("audit scan: %w", err)
		}
		e.Action = Action(action)
		events = append(events, e)
	}
	return events, rows.Err()
}
