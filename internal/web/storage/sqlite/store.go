// Package sqlite provides the session persistence adapter backed by SQLite.
//
// This store is service-owned and only contains in-progress wizard state that
// the user can rebuild by starting the journey again.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/storage"
	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS session_states (
    session_id TEXT PRIMARY KEY,
    journeys_json TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// Store provides SQLite-backed persistence for web session state.
type Store struct {
	sqlDB *sql.DB
}

// Open opens and migrates a session SQLite store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := sqlDB.Exec(schemaSQL); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetSessionState loads one session's journey state by session id.
func (s *Store) GetSessionState(ctx context.Context, sessionID string) (storage.SessionState, bool, error) {
	if s == nil || s.sqlDB == nil {
		return storage.SessionState{}, false, fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return storage.SessionState{}, false, fmt.Errorf("session id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT session_id, journeys_json, updated_at FROM session_states WHERE session_id = ?`,
		sessionID,
	)

	var state storage.SessionState
	var journeysJSON string
	var updatedAt int64
	if err := row.Scan(&state.SessionID, &journeysJSON, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return storage.SessionState{}, false, nil
		}
		return storage.SessionState{}, false, fmt.Errorf("get session state: %w", err)
	}

	if err := json.Unmarshal([]byte(journeysJSON), &state.Journeys); err != nil {
		return storage.SessionState{}, false, fmt.Errorf("decode session journeys: %w", err)
	}
	state.UpdatedAt = unixMillisToTime(updatedAt)
	return state, true, nil
}

// PutSessionState upserts one session's journey state by session id.
func (s *Store) PutSessionState(ctx context.Context, state storage.SessionState) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	state.SessionID = strings.TrimSpace(state.SessionID)
	if state.SessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if state.UpdatedAt.IsZero() {
		state.UpdatedAt = time.Now().UTC()
	}
	journeys := state.Journeys
	if journeys == nil {
		journeys = []journey.Record{}
	}
	journeysJSON, err := json.Marshal(journeys)
	if err != nil {
		return fmt.Errorf("encode session journeys: %w", err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO session_states (session_id, journeys_json, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
		    journeys_json = excluded.journeys_json,
		    updated_at = excluded.updated_at`,
		state.SessionID,
		string(journeysJSON),
		state.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put session state: %w", err)
	}
	return nil
}

// DeleteSessionState removes one session's journey state by session id.
func (s *Store) DeleteSessionState(ctx context.Context, sessionID string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM session_states WHERE session_id = ?`,
		strings.TrimSpace(sessionID),
	)
	if err != nil {
		return fmt.Errorf("delete session state: %w", err)
	}
	return nil
}

// DeleteSessionStatesUpdatedBefore removes sessions whose state has not
// changed since the cutoff. Session expiry is the implicit lifetime bound on
// journeys never completed or cancelled.
func (s *Store) DeleteSessionStatesUpdatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`DELETE FROM session_states WHERE updated_at < ?`,
		cutoff.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("delete stale session states: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return removed, nil
}

func unixMillisToTime(millis int64) time.Time {
	if millis <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(millis).UTC()
}
