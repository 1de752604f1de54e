// Package sessions resolves the per-request journey store from the session
// cookie and persists it back through the configured session store.
package sessions

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/platform/id"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/httpx"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/requestmeta"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/sessioncookie"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/storage"
)

type contextKey struct{}

// Session is one browser session's journey state for the current request.
type Session struct {
	ID       string
	Journeys *journey.Store
}

// NewContext returns a context carrying the session. Handler tests use this
// directly; request paths get the session from Middleware.
func NewContext(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, session)
}

// FromContext returns the session resolved by the middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	if ctx == nil {
		return nil, false
	}
	session, ok := ctx.Value(contextKey{}).(*Session)
	if !ok || session == nil {
		return nil, false
	}
	return session, true
}

// Option configures a session manager.
type Option func(*Manager)

// WithSchemePolicy sets the request scheme policy for cookie handling.
func WithSchemePolicy(policy requestmeta.SchemePolicy) Option {
	return func(m *Manager) { m.policy = policy }
}

// WithJourneyOptions forwards options to every per-session journey store.
func WithJourneyOptions(opts ...journey.StoreOption) Option {
	return func(m *Manager) { m.journeyOpts = opts }
}

// Manager loads and saves per-session journey stores around each request.
type Manager struct {
	backend     storage.SessionStore
	policy      requestmeta.SchemePolicy
	journeyOpts []journey.StoreOption
}

// NewManager builds a session manager over the given session store.
func NewManager(backend storage.SessionStore, opts ...Option) *Manager {
	m := &Manager{backend: backend}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Middleware resolves the session for each request and persists any journey
// mutations after the handler runs. Two tabs racing on the same session are
// last-write-wins; the store keeps no version stamp.
func (m *Manager) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := m.resolve(w, r)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, session)))
			if err := m.Save(context.Background(), session); err != nil {
				log.Printf("save session state session_id=%s err=%v", session.ID, err)
			}
		})
	}
}

// Save persists the session's current journey snapshot.
func (m *Manager) Save(ctx context.Context, session *Session) error {
	if m == nil || m.backend == nil || session == nil {
		return nil
	}
	return m.backend.PutSessionState(ctx, storage.SessionState{
		SessionID: session.ID,
		Journeys:  session.Journeys.Snapshot(),
		UpdatedAt: time.Now().UTC(),
	})
}

func (m *Manager) resolve(w http.ResponseWriter, r *http.Request) *Session {
	store := journey.NewStore(m.journeyOpts...)

	sessionID, ok := sessioncookie.Read(r)
	if !ok {
		sessionID = m.issueSessionID(w, r)
		return &Session{ID: sessionID, Journeys: store}
	}

	if m.backend != nil {
		state, found, err := m.backend.GetSessionState(httpx.RequestContext(r), sessionID)
		if err != nil {
			log.Printf("load session state session_id=%s err=%v", sessionID, err)
		} else if found {
			store.Restore(state.Journeys)
		}
	}
	return &Session{ID: sessionID, Journeys: store}
}

func (m *Manager) issueSessionID(w http.ResponseWriter, r *http.Request) string {
	sessionID, err := id.NewID()
	if err != nil {
		// crypto/rand failure leaves the request usable but unpersisted.
		log.Printf("generate session id err=%v", err)
		return ""
	}
	sessioncookie.WriteWithPolicy(w, r, sessionID, m.policy)
	return sessionID
}
