package sessions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/sessioncookie"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/storage"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/storage/memory"
)

func TestMiddlewareIssuesSessionCookieWhenMissing(t *testing.T) {
	t.Parallel()

	manager := NewManager(memory.NewStore())
	var got *Session
	handler := manager.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = FromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if got == nil {
		t.Fatal("expected session in context")
	}
	if got.ID == "" {
		t.Fatal("expected issued session id")
	}
	cookie, err := http.ParseSetCookie(rec.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if cookie.Name != sessioncookie.Name || cookie.Value != got.ID {
		t.Fatalf("cookie = %+v", cookie)
	}
}

func TestMiddlewarePersistsJourneyMutations(t *testing.T) {
	t.Parallel()

	backend := memory.NewStore()
	manager := NewManager(backend)

	var journeyID string
	handler := manager.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, _ := FromContext(r.Context())
		record, err := session.Journeys.Create(journey.KindAddContact, journey.Record{
			Subject: journey.SubjectKeys{PrisonerNumber: "A1234BC"},
		})
		if err != nil {
			t.Errorf("Create() error = %v", err)
			return
		}
		journeyID = record.ID
	}))

	req := httptest.NewRequest("POST", "/", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "sess-1"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	state, ok, err := backend.GetSessionState(context.Background(), "sess-1")
	if err != nil || !ok {
		t.Fatalf("GetSessionState() = ok %v, err %v", ok, err)
	}
	if len(state.Journeys) != 1 || state.Journeys[0].ID != journeyID {
		t.Fatalf("journeys = %+v", state.Journeys)
	}
}

func TestMiddlewareRestoresExistingState(t *testing.T) {
	t.Parallel()

	backend := memory.NewStore()
	if err := backend.PutSessionState(context.Background(), storage.SessionState{
		SessionID: "sess-1",
		Journeys:  []journey.Record{{ID: "j-1", Kind: journey.KindAddAddress}},
	}); err != nil {
		t.Fatalf("PutSessionState() error = %v", err)
	}
	manager := NewManager(backend)

	handler := manager.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, _ := FromContext(r.Context())
		if _, ok := session.Journeys.Get(journey.KindAddAddress, "j-1"); !ok {
			t.Error("expected restored journey")
		}
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "sess-1"})
	handler.ServeHTTP(httptest.NewRecorder(), req)
}

func TestFromContextMissing(t *testing.T) {
	t.Parallel()

	if _, ok := FromContext(context.Background()); ok {
		t.Fatal("expected no session")
	}
}
