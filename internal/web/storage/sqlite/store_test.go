package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected error")
	}
}

func TestSessionStateRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	state := storage.SessionState{
		SessionID: "sess-1",
		Journeys: []journey.Record{
			{
				ID:          "j-1",
				Kind:        journey.KindAddContact,
				LastTouched: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
				Subject:     journey.SubjectKeys{PrisonerNumber: "A1234BC"},
				Mode:        journey.ModeNewContact,
				AddContact: &journey.AddContactData{
					FirstName: "Jo",
					LastName:  "Bloggs",
					PendingAddresses: []journey.AddressDraft{
						{Street: "1 High Street", PhoneNumbers: []journey.PhoneDraft{{Number: "0114 123 4567"}}},
					},
				},
			},
		},
	}
	if err := store.PutSessionState(ctx, state); err != nil {
		t.Fatalf("PutSessionState() error = %v", err)
	}

	loaded, ok, err := store.GetSessionState(ctx, "sess-1")
	if err != nil {
		t.Fatalf("GetSessionState() error = %v", err)
	}
	if !ok {
		t.Fatal("expected stored session")
	}
	if len(loaded.Journeys) != 1 {
		t.Fatalf("journeys = %d, want 1", len(loaded.Journeys))
	}
	record := loaded.Journeys[0]
	if record.AddContact == nil || record.AddContact.FirstName != "Jo" {
		t.Fatalf("payload = %+v", record.AddContact)
	}
	if len(record.AddContact.PendingAddresses) != 1 {
		t.Fatalf("addresses = %+v", record.AddContact.PendingAddresses)
	}
	if record.AddContact.PendingAddresses[0].PhoneNumbers[0].Number != "0114 123 4567" {
		t.Fatalf("phones = %+v", record.AddContact.PendingAddresses[0].PhoneNumbers)
	}
	if loaded.UpdatedAt.IsZero() {
		t.Fatal("expected UpdatedAt to be set")
	}
}

func TestPutSessionStateUpserts(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	if err := store.PutSessionState(ctx, storage.SessionState{SessionID: "sess-1"}); err != nil {
		t.Fatalf("PutSessionState() error = %v", err)
	}
	if err := store.PutSessionState(ctx, storage.SessionState{
		SessionID: "sess-1",
		Journeys:  []journey.Record{{ID: "j-2", Kind: journey.KindAddAddress}},
	}); err != nil {
		t.Fatalf("PutSessionState() error = %v", err)
	}

	loaded, ok, err := store.GetSessionState(ctx, "sess-1")
	if err != nil || !ok {
		t.Fatalf("GetSessionState() = ok %v, err %v", ok, err)
	}
	if len(loaded.Journeys) != 1 || loaded.Journeys[0].ID != "j-2" {
		t.Fatalf("journeys = %+v", loaded.Journeys)
	}
}

func TestGetSessionStateMissing(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	_, ok, err := store.GetSessionState(context.Background(), "missing")
	if err != nil {
		t.Fatalf("GetSessionState() error = %v", err)
	}
	if ok {
		t.Fatal("expected missing session")
	}
}

func TestDeleteSessionState(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()
	if err := store.PutSessionState(ctx, storage.SessionState{SessionID: "sess-1"}); err != nil {
		t.Fatalf("PutSessionState() error = %v", err)
	}
	if err := store.DeleteSessionState(ctx, "sess-1"); err != nil {
		t.Fatalf("DeleteSessionState() error = %v", err)
	}
	if _, ok, _ := store.GetSessionState(ctx, "sess-1"); ok {
		t.Fatal("expected deleted session")
	}
}

func TestDeleteSessionStatesUpdatedBefore(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()

	old := storage.SessionState{SessionID: "stale", UpdatedAt: time.Now().Add(-48 * time.Hour)}
	fresh := storage.SessionState{SessionID: "fresh", UpdatedAt: time.Now()}
	if err := store.PutSessionState(ctx, old); err != nil {
		t.Fatalf("PutSessionState() error = %v", err)
	}
	if err := store.PutSessionState(ctx, fresh); err != nil {
		t.Fatalf("PutSessionState() error = %v", err)
	}

	removed, err := store.DeleteSessionStatesUpdatedBefore(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteSessionStatesUpdatedBefore() error = %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, ok, _ := store.GetSessionState(ctx, "fresh"); !ok {
		t.Fatal("expected fresh session to survive")
	}
}
