package stepflow

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey/nav"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey/pending"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/module"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/flash"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/formreplay"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/sessions"
)

type fakeStep struct {
	name       nav.Step
	rendered   bool
	renderView View
	fieldErrs  map[string]string
	applyErr   error
	applied    bool
	appliedBy  url.Values
}

func (s *fakeStep) Name() nav.Step { return s.name }

func (s *fakeStep) Render(w http.ResponseWriter, r *http.Request, view View) error {
	s.rendered = true
	s.renderView = view
	w.WriteHeader(http.StatusOK)
	return nil
}

func (s *fakeStep) Validate(form url.Values) map[string]string { return s.fieldErrs }

func (s *fakeStep) Apply(r *http.Request, view View, form url.Values) error {
	s.applied = true
	s.appliedBy = form
	return s.applyErr
}

type fakeActionStep struct {
	fakeStep
	action   string
	actioned bool
}

func (s *fakeActionStep) Action(r *http.Request, view View, action string, form url.Values) (string, error) {
	s.actioned = true
	s.action = action
	return "", nil
}

type fakeFinisher struct {
	fakeStep
	finished bool
	landing  string
}

func (s *fakeFinisher) Finish(r *http.Request, view View, form url.Values) (string, flash.Notice, error) {
	s.finished = true
	return s.landing, flash.NoticeSuccess("web.contacts.notice_contact_created"), nil
}

func newJourney(t *testing.T, store *journey.Store) *journey.Record {
	t.Helper()
	record, err := store.Create(journey.KindAddContact, journey.Record{
		Subject:    journey.SubjectKeys{PrisonerNumber: "A1234BC"},
		Mode:       journey.ModeNewContact,
		AddContact: &journey.AddContactData{},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return record
}

func newStepRequest(t *testing.T, method string, target string, session *sessions.Session, journeyID string, step string, body string) *http.Request {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.SetPathValue("prisonerNumber", "A1234BC")
	req.SetPathValue("journeyID", journeyID)
	req.SetPathValue("step", step)
	return req.WithContext(sessions.NewContext(req.Context(), session))
}

func newHandler(t *testing.T, steps ...Step) *Handler {
	t.Helper()
	handler, err := NewHandler(journey.KindAddContact, module.Dependencies{})
	if err != nil {
		t.Fatalf("NewHandler returned error: %v", err)
	}
	if err := handler.Register(steps...); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	return handler
}

func TestGetMissingJourneyRedirectsToStart(t *testing.T) {
	t.Parallel()

	session := &sessions.Session{ID: "s1", Journeys: journey.NewStore()}
	handler := newHandler(t, &fakeStep{name: nav.StepEnterName})

	req := newStepRequest(t, http.MethodGet, "/prisoner/A1234BC/contacts/create/gone/enter-name", session, "gone", "enter-name", "")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if got := rr.Header().Get("Location"); got != "/prisoner/A1234BC/contacts/create/start" {
		t.Fatalf("Location = %q, want journey start", got)
	}
}

func TestGetRendersWithConsumedReplay(t *testing.T) {
	t.Parallel()

	store := journey.NewStore()
	record := newJourney(t, store)
	session := &sessions.Session{ID: "s1", Journeys: store}
	step := &fakeStep{name: nav.StepEnterName}
	handler := newHandler(t, step)

	payload, err := json.Marshal(formreplay.Replay{
		Values: map[string][]string{"firstName": {"Jo"}},
		Errors: map[string]string{"lastName": "Enter the contact's last name"},
	})
	if err != nil {
		t.Fatalf("marshal replay: %v", err)
	}
	req := newStepRequest(t, http.MethodGet, "/prisoner/A1234BC/contacts/create/"+record.ID+"/enter-name", session, record.ID, "enter-name", "")
	req.AddCookie(&http.Cookie{Name: formreplay.CookieName, Value: base64.RawURLEncoding.EncodeToString(payload)})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !step.rendered {
		t.Fatal("expected step render")
	}
	if got := step.renderView.Replay.Value("firstName"); got != "Jo" {
		t.Fatalf("replayed firstName = %q, want %q", got, "Jo")
	}
	cleared := false
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == formreplay.CookieName && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected replay cookie cleared after read")
	}
}

func TestGetCheckAnswersMarksCheckingAnswers(t *testing.T) {
	t.Parallel()

	store := journey.NewStore()
	record := newJourney(t, store)
	session := &sessions.Session{ID: "s1", Journeys: store}
	handler := newHandler(t, &fakeStep{name: nav.StepCheckAnswers})

	req := newStepRequest(t, http.MethodGet, "/prisoner/A1234BC/contacts/create/"+record.ID+"/check-answers", session, record.ID, "check-answers", "")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	current, ok := store.Get(journey.KindAddContact, record.ID)
	if !ok || !current.IsCheckingAnswers {
		t.Fatal("expected check-answers render to set isCheckingAnswers")
	}
}

func TestPostValidationFailureWritesReplayAndRedirectsToSelf(t *testing.T) {
	t.Parallel()

	store := journey.NewStore()
	record := newJourney(t, store)
	session := &sessions.Session{ID: "s1", Journeys: store}
	step := &fakeStep{
		name:      nav.StepEnterName,
		fieldErrs: map[string]string{"lastName": "Enter the contact's last name"},
	}
	handler := newHandler(t, step)

	target := "/prisoner/A1234BC/contacts/create/" + record.ID + "/enter-name"
	req := newStepRequest(t, http.MethodPost, target, session, record.ID, "enter-name", "firstName=Jo&lastName=")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if got := rr.Header().Get("Location"); got != target+"#error-summary" {
		t.Fatalf("Location = %q, want redirect to self with error fragment", got)
	}
	if step.applied {
		t.Fatal("expected apply skipped on validation failure")
	}

	var replayCookie *http.Cookie
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == formreplay.CookieName && cookie.Value != "" {
			replayCookie = cookie
		}
	}
	if replayCookie == nil {
		t.Fatal("expected replay cookie")
	}
	decoded, err := base64.RawURLEncoding.DecodeString(replayCookie.Value)
	if err != nil {
		t.Fatalf("decode replay cookie: %v", err)
	}
	var replay formreplay.Replay
	if err := json.Unmarshal(decoded, &replay); err != nil {
		t.Fatalf("unmarshal replay cookie: %v", err)
	}
	if replay.Value("firstName") != "Jo" {
		t.Fatalf("replay firstName = %q, want %q", replay.Value("firstName"), "Jo")
	}
	if replay.Errors["lastName"] == "" {
		t.Fatal("expected lastName field error in replay")
	}
}

func TestPostSuccessAppliesTouchesAndRedirects(t *testing.T) {
	t.Parallel()

	store := journey.NewStore()
	record := newJourney(t, store)
	session := &sessions.Session{ID: "s1", Journeys: store}
	step := &fakeStep{name: nav.StepEnterName}
	handler := newHandler(t, step)

	req := newStepRequest(t, http.MethodPost, "/prisoner/A1234BC/contacts/create/"+record.ID+"/enter-name", session, record.ID, "enter-name", "firstName=Jo&lastName=Smith")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	want := "/prisoner/A1234BC/contacts/create/" + record.ID + "/enter-dob"
	if got := rr.Header().Get("Location"); got != want {
		t.Fatalf("Location = %q, want %q", got, want)
	}
	if !step.applied {
		t.Fatal("expected apply on valid submission")
	}
	if got := step.appliedBy.Get("firstName"); got != "Jo" {
		t.Fatalf("applied firstName = %q, want %q", got, "Jo")
	}
}

func TestPostActionBypassesValidation(t *testing.T) {
	t.Parallel()

	store := journey.NewStore()
	record := newJourney(t, store)
	session := &sessions.Session{ID: "s1", Journeys: store}
	step := &fakeActionStep{fakeStep: fakeStep{
		name:      nav.StepAddresses,
		fieldErrs: map[string]string{"addresses[0].street": "Enter a street"},
	}}
	handler := newHandler(t, step)

	target := "/prisoner/A1234BC/contacts/create/" + record.ID + "/addresses"
	req := newStepRequest(t, http.MethodPost, target, session, record.ID, "addresses", "action=add-another-address")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if got := rr.Header().Get("Location"); got != target {
		t.Fatalf("Location = %q, want redirect to self", got)
	}
	if !step.actioned || step.action != "add-another-address" {
		t.Fatalf("expected action handled, got actioned=%t action=%q", step.actioned, step.action)
	}
	if step.applied {
		t.Fatal("expected apply skipped for action submission")
	}
}

func TestPostFinisherRemovesJourneyAndSetsNotice(t *testing.T) {
	t.Parallel()

	store := journey.NewStore()
	record := newJourney(t, store)
	session := &sessions.Session{ID: "s1", Journeys: store}
	step := &fakeFinisher{
		fakeStep: fakeStep{name: nav.StepCheckAnswers},
		landing:  "/prisoner/A1234BC/contacts/list",
	}
	handler := newHandler(t, step)

	req := newStepRequest(t, http.MethodPost, "/prisoner/A1234BC/contacts/create/"+record.ID+"/check-answers", session, record.ID, "check-answers", "confirm=1")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if got := rr.Header().Get("Location"); got != step.landing {
		t.Fatalf("Location = %q, want %q", got, step.landing)
	}
	if !step.finished {
		t.Fatal("expected finisher invoked")
	}
	if _, ok := store.Get(journey.KindAddContact, record.ID); ok {
		t.Fatal("expected journey removed after finish")
	}
	noticeSet := false
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == flash.CookieName && cookie.Value != "" {
			noticeSet = true
		}
	}
	if !noticeSet {
		t.Fatal("expected success notice cookie")
	}
}

func TestPostOutOfRangeIndexWritesNotFound(t *testing.T) {
	t.Parallel()

	store := journey.NewStore()
	record := newJourney(t, store)
	session := &sessions.Session{ID: "s1", Journeys: store}
	step := &fakeStep{name: nav.StepAddresses, applyErr: pending.ErrIndexOutOfRange}
	handler := newHandler(t, step)

	req := newStepRequest(t, http.MethodPost, "/prisoner/A1234BC/contacts/create/"+record.ID+"/addresses", session, record.ID, "addresses", "addresses%5B0%5D.street=High+Street")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestUnknownStepWritesNotFound(t *testing.T) {
	t.Parallel()

	store := journey.NewStore()
	record := newJourney(t, store)
	session := &sessions.Session{ID: "s1", Journeys: store}
	handler := newHandler(t, &fakeStep{name: nav.StepEnterName})

	req := newStepRequest(t, http.MethodGet, "/prisoner/A1234BC/contacts/create/"+record.ID+"/not-a-step", session, record.ID, "not-a-step", "")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestRegisterRejectsDuplicateStep(t *testing.T) {
	t.Parallel()

	handler, err := NewHandler(journey.KindAddContact, module.Dependencies{})
	if err != nil {
		t.Fatalf("NewHandler returned error: %v", err)
	}
	if err := handler.Register(&fakeStep{name: nav.StepEnterName}); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}
	if err := handler.Register(&fakeStep{name: nav.StepEnterName}); err == nil {
		t.Fatal("expected duplicate step registration to fail")
	}
}
