package pending

import (
	"errors"
	"testing"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey"
)

func phoneIsBlank(p journey.PhoneDraft) bool {
	return p.Type == "" && p.Number == "" && p.Extension == ""
}

func TestReplaceAllDropsBlankTrailingDrafts(t *testing.T) {
	t.Parallel()

	submitted := []journey.PhoneDraft{
		{Number: "0114 123 4567"},
		{Number: "07700 900123"},
		{},
		{},
	}
	got := ReplaceAll(submitted, phoneIsBlank)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[1].Number != "07700 900123" {
		t.Fatalf("got[1].Number = %q", got[1].Number)
	}
}

func TestReplaceAllKeepsInteriorBlankDrafts(t *testing.T) {
	t.Parallel()

	submitted := []journey.PhoneDraft{
		{Number: "0114 123 4567"},
		{},
		{Number: "07700 900123"},
	}
	got := ReplaceAll(submitted, phoneIsBlank)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
}

func TestReplaceAllAllBlank(t *testing.T) {
	t.Parallel()

	got := ReplaceAll([]journey.PhoneDraft{{}, {}}, phoneIsBlank)
	if len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestRemoveAtShiftsLaterItemsDown(t *testing.T) {
	t.Parallel()

	items := []journey.EmploymentDraft{
		{EmployerName: "First"},
		{EmployerName: "Second"},
		{EmployerName: "Third"},
	}
	got := RemoveAt(items, 1)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].EmployerName != "First" || got[1].EmployerName != "Third" {
		t.Fatalf("got = %+v", got)
	}
}

func TestRemoveAtOutOfRangeIsANoOp(t *testing.T) {
	t.Parallel()

	items := []journey.EmploymentDraft{{EmployerName: "Only"}}
	for _, index := range []int{-1, 1, 99} {
		got := RemoveAt(items, index)
		if len(got) != 1 || got[0].EmployerName != "Only" {
			t.Fatalf("RemoveAt(%d) = %+v", index, got)
		}
	}
}

func TestDeleteAtOutOfRangeIsNotFound(t *testing.T) {
	t.Parallel()

	items := []journey.AddressDraft{{Street: "1 High Street"}}
	_, err := DeleteAt(items, 1)
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestDeleteAtRemovesAndReindexes(t *testing.T) {
	t.Parallel()

	items := []journey.AddressDraft{{Street: "First"}, {Street: "Second"}}
	got, err := DeleteAt(items, 0)
	if err != nil {
		t.Fatalf("DeleteAt() error = %v", err)
	}
	if len(got) != 1 || got[0].Street != "Second" {
		t.Fatalf("got = %+v", got)
	}
}

func TestAtResolvesCurrentIndex(t *testing.T) {
	t.Parallel()

	items := []journey.AddressDraft{{Street: "First"}, {Street: "Second"}}
	draft, err := At(items, 1)
	if err != nil {
		t.Fatalf("At() error = %v", err)
	}
	if draft.Street != "Second" {
		t.Fatalf("draft = %+v", draft)
	}
	if _, err := At(items, 2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestAppendPreservesOrder(t *testing.T) {
	t.Parallel()

	items := Append([]journey.PhoneDraft{{Number: "first"}}, journey.PhoneDraft{Number: "second"})
	if len(items) != 2 || items[1].Number != "second" {
		t.Fatalf("items = %+v", items)
	}
}
