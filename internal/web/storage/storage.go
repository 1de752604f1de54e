// Package storage declares persistence interfaces for web session state.
//
// Journey records live in the user's session. The session store only holds
// this derived, abandonable wizard state: losing it means the user starts the
// journey over, never data loss.
package storage

import (
	"context"
	"time"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey"
)

// SessionState is the persisted journey state of one browser session.
type SessionState struct {
	SessionID string
	Journeys  []journey.Record
	UpdatedAt time.Time
}

// SessionStore is the contract for session state persistence. Implementations
// must treat an unknown session id as an empty session, not an error.
type SessionStore interface {
	GetSessionState(ctx context.Context, sessionID string) (SessionState, bool, error)
	PutSessionState(ctx context.Context, state SessionState) error
	DeleteSessionState(ctx context.Context, sessionID string) error
	Close() error
}
