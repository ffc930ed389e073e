package logging

import (
	"database/sql"
	"fmt"
	"time"
)

// #region log-event
// LogEvent writes an audit entry to the session_events table.
func LogEvent(db *sql.DB, event SessionEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO session_events (session_id, event_type, detail_json, created_at)
		 VALUES (?, ?, ?, ?)`,
		event.SessionID,
		string(event.EventType),
		nullIfEmpty(event.DetailJSON),
		event.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log event: %w", err)
	}
	return nil
}

// #endregion log-event

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
