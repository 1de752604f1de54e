package journey

import (
	"fmt"
	"testing"
	"time"
)

// tickingClock returns a clock that advances one second per call.
func tickingClock() func() time.Time {
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		at = at.Add(time.Second)
		return at
	}
}

func sequentialIDs(prefix string) func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("%s-%d", prefix, n), nil
	}
}

func TestCreateAssignsIDAndRecency(t *testing.T) {
	t.Parallel()

	store := NewStore(WithClock(tickingClock()), WithIDGenerator(sequentialIDs("j")))
	record, err := store.Create(KindAddContact, Record{
		Subject: SubjectKeys{PrisonerNumber: "A1234BC"},
		Mode:    ModeNewContact,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if record.ID != "j-1" {
		t.Fatalf("ID = %q", record.ID)
	}
	if record.Kind != KindAddContact {
		t.Fatalf("Kind = %q", record.Kind)
	}
	if record.LastTouched.IsZero() {
		t.Fatal("expected LastTouched to be set")
	}
	if record.Subject.PrisonerNumber != "A1234BC" {
		t.Fatalf("PrisonerNumber = %q", record.Subject.PrisonerNumber)
	}
}

func TestCreateRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	store := NewStore()
	if _, err := store.Create(Kind("mystery"), Record{}); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestCreateEvictsOldestWhenOverCapacity(t *testing.T) {
	t.Parallel()

	store := NewStore(WithClock(tickingClock()), WithIDGenerator(sequentialIDs("j")))

	ids := make([]string, 0, 6)
	for i := 0; i < 6; i++ {
		record, err := store.Create(KindAddContact, Record{})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		ids = append(ids, record.ID)
		if got := store.Len(KindAddContact); got > DefaultCapacity {
			t.Fatalf("Len = %d, want <= %d", got, DefaultCapacity)
		}
	}

	if _, ok := store.Get(KindAddContact, ids[0]); ok {
		t.Fatalf("expected %q to be evicted", ids[0])
	}
	for _, journeyID := range ids[1:] {
		if _, ok := store.Get(KindAddContact, journeyID); !ok {
			t.Fatalf("expected %q to survive", journeyID)
		}
	}
}

func TestEvictionFollowsLastTouchedNotCreation(t *testing.T) {
	t.Parallel()

	store := NewStore(WithClock(tickingClock()), WithIDGenerator(sequentialIDs("j")))

	ids := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		record, err := store.Create(KindAddContact, Record{})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		ids = append(ids, record.ID)
	}

	// Touching the oldest journey makes the second-created one the eviction
	// candidate.
	if !store.Touch(KindAddContact, ids[0]) {
		t.Fatal("Touch() = false")
	}
	if _, err := store.Create(KindAddContact, Record{}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, ok := store.Get(KindAddContact, ids[0]); !ok {
		t.Fatal("expected touched journey to survive")
	}
	if _, ok := store.Get(KindAddContact, ids[1]); ok {
		t.Fatal("expected untouched journey to be evicted")
	}
}

func TestCapacityIsPerKind(t *testing.T) {
	t.Parallel()

	store := NewStore(WithClock(tickingClock()), WithIDGenerator(sequentialIDs("j")))
	for i := 0; i < DefaultCapacity; i++ {
		if _, err := store.Create(KindAddContact, Record{}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	if _, err := store.Create(KindUpdateEmployments, Record{}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got := store.Len(KindAddContact); got != DefaultCapacity {
		t.Fatalf("Len(add-contact) = %d", got)
	}
	if got := store.Len(KindUpdateEmployments); got != 1 {
		t.Fatalf("Len(update-employments) = %d", got)
	}
}

func TestWithCapacityOverride(t *testing.T) {
	t.Parallel()

	store := NewStore(WithCapacity(2), WithClock(tickingClock()), WithIDGenerator(sequentialIDs("j")))
	for i := 0; i < 3; i++ {
		if _, err := store.Create(KindAddAddress, Record{}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	if got := store.Len(KindAddAddress); got != 2 {
		t.Fatalf("Len = %d, want 2", got)
	}
}

func TestGetAbsentIsNotAnError(t *testing.T) {
	t.Parallel()

	store := NewStore()
	if _, ok := store.Get(KindAddContact, "missing"); ok {
		t.Fatal("expected absent journey")
	}
}

func TestTouchAbsentReturnsFalse(t *testing.T) {
	t.Parallel()

	store := NewStore()
	if store.Touch(KindAddContact, "missing") {
		t.Fatal("expected Touch to report absence")
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	store := NewStore(WithClock(tickingClock()), WithIDGenerator(sequentialIDs("j")))
	record, err := store.Create(KindAddContact, Record{})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	store.Remove(KindAddContact, record.ID)
	if _, ok := store.Get(KindAddContact, record.ID); ok {
		t.Fatal("expected journey to be removed")
	}
	// Removing again is a no-op.
	store.Remove(KindAddContact, record.ID)
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewStore(WithClock(tickingClock()), WithIDGenerator(sequentialIDs("j")))
	record, err := store.Create(KindAddContact, Record{
		Mode: ModeNewContact,
		AddContact: &AddContactData{
			FirstName: "Jo",
			LastName:  "Bloggs",
			PendingAddresses: []AddressDraft{
				{Street: "1 High Street", Town: "Sheffield", PhoneNumbers: []PhoneDraft{{Number: "0114 123 4567"}}},
			},
		},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := store.Create(KindUpdateEmployments, Record{Employments: &EmploymentsData{}}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	restored := NewStore()
	restored.Restore(store.Snapshot())

	got, ok := restored.Get(KindAddContact, record.ID)
	if !ok {
		t.Fatal("expected restored journey")
	}
	if got.AddContact == nil || got.AddContact.FirstName != "Jo" {
		t.Fatalf("restored payload = %+v", got.AddContact)
	}
	if len(got.AddContact.PendingAddresses) != 1 || got.AddContact.PendingAddresses[0].Town != "Sheffield" {
		t.Fatalf("restored addresses = %+v", got.AddContact.PendingAddresses)
	}
	if restored.Len(KindUpdateEmployments) != 1 {
		t.Fatalf("Len(update-employments) = %d", restored.Len(KindUpdateEmployments))
	}
}

func TestRestoreDropsInvalidRecords(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.Restore([]Record{
		{ID: "", Kind: KindAddContact},
		{ID: "j-1", Kind: Kind("mystery")},
		{ID: "j-2", Kind: KindAddAddress},
	})
	if store.Len(KindAddAddress) != 1 {
		t.Fatalf("Len(add-address) = %d", store.Len(KindAddAddress))
	}
	if store.Len(KindAddContact) != 0 {
		t.Fatalf("Len(add-contact) = %d", store.Len(KindAddContact))
	}
}

func TestMarkCheckingAnswersIsMonotonic(t *testing.T) {
	t.Parallel()

	var record Record
	record.MarkCheckingAnswers()
	if !record.IsCheckingAnswers {
		t.Fatal("expected IsCheckingAnswers to be set")
	}
	record.MarkCheckingAnswers()
	if !record.IsCheckingAnswers {
		t.Fatal("expected IsCheckingAnswers to stay set")
	}
}
