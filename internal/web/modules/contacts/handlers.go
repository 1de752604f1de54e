package contacts

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey/nav"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey/pending"
	apperrors "github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/errors"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/flash"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/httpx"
	webi18n "github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/i18n"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/requestmeta"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/weberror"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/routepath"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/sessions"
	webtemplates "github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/templates"
)

type handlers struct {
	stepBase
	gateway ContactsGateway
	policy  requestmeta.SchemePolicy
}

func (h handlers) session(w http.ResponseWriter, r *http.Request) (*sessions.Session, bool) {
	session, ok := sessions.FromContext(r.Context())
	if !ok || session.Journeys == nil {
		weberror.WriteAppError(w, r, http.StatusInternalServerError, h.deps)
		return nil, false
	}
	return session, true
}

// handleStart creates a journey of one kind and redirects to its first step.
// Subject keys arrive as query parameters from the page linking here.
func (h handlers) handleStart(kind journey.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := h.session(w, r)
		if !ok {
			return
		}
		initial, err := startRecord(kind, r.PathValue("prisonerNumber"), r.URL.Query())
		if err != nil {
			weberror.WriteModuleError(w, r, err, h.deps)
			return
		}
		record, err := session.Journeys.Create(kind, initial)
		if err != nil {
			weberror.WriteModuleError(w, r, err, h.deps)
			return
		}
		sequence := nav.Sequence(kind, record.Mode)
		if len(sequence) == 0 {
			weberror.WriteModuleError(w, r, apperrors.E(apperrors.KindInvalidInput, "no steps for journey mode"), h.deps)
			return
		}
		httpx.WriteRedirect(w, r, routepath.JourneyStep(kind, record.Subject.PrisonerNumber, record.ID, string(sequence[0])))
	}
}

// handleCancel abandons a journey. The record is destroyed immediately rather
// than left to eviction, and the user lands on the subject's contact page.
func (h handlers) handleCancel(kind journey.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := h.session(w, r)
		if !ok {
			return
		}
		landing := routepath.ContactList(r.PathValue("prisonerNumber"))
		if record, found := session.Journeys.Get(kind, r.PathValue("journeyID")); found {
			landing = landingFor(record.Subject)
			session.Journeys.Remove(kind, record.ID)
		}
		httpx.WriteRedirect(w, r, landing)
	}
}

// startRecord builds the initial journey record for a kind. Subject keys are
// immutable after this point.
func startRecord(kind journey.Kind, prisonerNumber string, query url.Values) (journey.Record, error) {
	if prisonerNumber == "" {
		return journey.Record{}, apperrors.E(apperrors.KindInvalidInput, "prisoner number is required")
	}
	subject := journey.SubjectKeys{
		PrisonerNumber:    prisonerNumber,
		ContactID:         query.Get("contactId"),
		PrisonerContactID: query.Get("prisonerContactId"),
	}
	switch kind {
	case journey.KindAddContact:
		mode := journey.ModeNewContact
		if query.Get("mode") == string(journey.ModeExistingContact) {
			if subject.ContactID == "" {
				return journey.Record{}, apperrors.E(apperrors.KindInvalidInput, "contact id is required to link an existing contact")
			}
			mode = journey.ModeExistingContact
		}
		return journey.Record{Subject: subject, Mode: mode, AddContact: &journey.AddContactData{}}, nil
	case journey.KindChangeRelationshipType:
		if subject.PrisonerContactID == "" {
			return journey.Record{}, apperrors.E(apperrors.KindInvalidInput, "prisoner contact id is required")
		}
		mode := journey.ModeAllRelationship
		if query.Get("mode") == string(journey.ModeRelationshipToPrisoner) {
			mode = journey.ModeRelationshipToPrisoner
		}
		return journey.Record{Subject: subject, Mode: mode, RelationshipType: &journey.RelationshipTypeData{}}, nil
	case journey.KindUpdateEmployments:
		if subject.ContactID == "" {
			return journey.Record{}, apperrors.E(apperrors.KindInvalidInput, "contact id is required")
		}
		return journey.Record{Subject: subject, Employments: &journey.EmploymentsData{}}, nil
	case journey.KindAddAddress:
		if subject.ContactID == "" {
			return journey.Record{}, apperrors.E(apperrors.KindInvalidInput, "contact id is required")
		}
		return journey.Record{Subject: subject, Address: &journey.AddressData{}}, nil
	default:
		return journey.Record{}, apperrors.E(apperrors.KindInvalidInput, "unknown journey kind")
	}
}

// resolvePendingAddressDelete loads the add-contact journey and index behind
// a delete-address confirmation URL. The link may be stale in two ways: the
// journey may be gone (redirect to start) or the index may no longer resolve
// (not found).
func (h handlers) resolvePendingAddressDelete(w http.ResponseWriter, r *http.Request) (*sessions.Session, *journey.Record, int, bool) {
	session, ok := h.session(w, r)
	if !ok {
		return nil, nil, 0, false
	}
	record, found := session.Journeys.Get(journey.KindAddContact, r.PathValue("journeyID"))
	if !found {
		httpx.WriteRedirect(w, r, routepath.JourneyStart(journey.KindAddContact, r.PathValue("prisonerNumber")))
		return nil, nil, 0, false
	}
	if record.AddContact == nil {
		weberror.WriteAppError(w, r, http.StatusNotFound, h.deps)
		return nil, nil, 0, false
	}
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		weberror.WriteAppError(w, r, http.StatusNotFound, h.deps)
		return nil, nil, 0, false
	}
	if _, err := pending.At(record.AddContact.PendingAddresses, index); err != nil {
		weberror.WriteAppError(w, r, http.StatusNotFound, h.deps)
		return nil, nil, 0, false
	}
	return session, record, index, true
}

func (h handlers) handlePendingAddressDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	_, record, index, ok := h.resolvePendingAddressDelete(w, r)
	if !ok {
		return
	}
	draft, err := pending.At(record.AddContact.PendingAddresses, index)
	if err != nil {
		weberror.WriteAppError(w, r, http.StatusNotFound, h.deps)
		return
	}
	copySet := h.copyFor(r)
	addressesPath := routepath.JourneyStep(journey.KindAddContact, record.Subject.PrisonerNumber, record.ID, string(nav.StepAddresses))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	view := webtemplates.FormView{
		Title:       copySet.ConfirmDeleteTitle,
		Banner:      summarizeAddress(draft),
		BackURL:     addressesPath,
		BackLabel:   copySet.BackLabel,
		CancelURL:   addressesPath,
		CancelLabel: copySet.CancelLabel,
		SubmitLabel: copySet.ConfirmDeleteButton,
	}
	if err := webtemplates.Render(r.Context(), w, webtemplates.FormPage(view)); err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
	}
}

func (h handlers) handlePendingAddressDelete(w http.ResponseWriter, r *http.Request) {
	session, record, index, ok := h.resolvePendingAddressDelete(w, r)
	if !ok {
		return
	}
	remaining, err := pending.DeleteAt(record.AddContact.PendingAddresses, index)
	if err != nil {
		weberror.WriteAppError(w, r, http.StatusNotFound, h.deps)
		return
	}
	record.AddContact.PendingAddresses = remaining
	session.Journeys.Touch(journey.KindAddContact, record.ID)
	httpx.WriteRedirect(w, r, routepath.JourneyStep(journey.KindAddContact, record.Subject.PrisonerNumber, record.ID, string(nav.StepAddresses)))
}

// resolveContactAddressDelete parses the persisted-address delete URL.
func (h handlers) resolveContactAddressDelete(w http.ResponseWriter, r *http.Request) (prisonerNumber string, prisonerContactID string, index int, ok bool) {
	prisonerNumber = r.PathValue("prisonerNumber")
	prisonerContactID = r.PathValue("prisonerContactID")
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		weberror.WriteAppError(w, r, http.StatusNotFound, h.deps)
		return "", "", 0, false
	}
	return prisonerNumber, prisonerContactID, index, true
}

func (h handlers) handleContactAddressDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	_, _, _, ok := h.resolveContactAddressDelete(w, r)
	if !ok {
		return
	}
	copySet := h.copyFor(r)
	details := routepath.ContactDetails(r.PathValue("prisonerNumber"), r.PathValue("prisonerContactID"))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	view := webtemplates.FormView{
		Title:       copySet.ConfirmDeleteTitle,
		BackURL:     details,
		BackLabel:   copySet.BackLabel,
		CancelURL:   details,
		CancelLabel: copySet.CancelLabel,
		SubmitLabel: copySet.ConfirmDeleteButton,
	}
	if err := webtemplates.Render(r.Context(), w, webtemplates.FormPage(view)); err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
	}
}

func (h handlers) handleContactAddressDelete(w http.ResponseWriter, r *http.Request) {
	prisonerNumber, prisonerContactID, index, ok := h.resolveContactAddressDelete(w, r)
	if !ok {
		return
	}
	err := h.gateway.DeleteAddress(r.Context(), DeleteAddressRequest{
		PrisonerNumber:    prisonerNumber,
		PrisonerContactID: prisonerContactID,
		AddressIndex:      index,
	})
	if err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
		return
	}
	flash.WriteWithPolicy(w, r, flash.NoticeSuccess(noticeAddressDeleted), h.policy)
	httpx.WriteRedirect(w, r, routepath.ContactDetails(prisonerNumber, prisonerContactID))
}

func (h handlers) handleContactList(w http.ResponseWriter, r *http.Request) {
	prisonerNumber := r.PathValue("prisonerNumber")
	h.writeLanding(w, r, "Contacts", []webtemplates.Link{
		{URL: routepath.JourneyStart(journey.KindAddContact, prisonerNumber), Label: "Add a contact"},
	})
}

func (h handlers) handleContactDetails(w http.ResponseWriter, r *http.Request) {
	prisonerNumber := r.PathValue("prisonerNumber")
	prisonerContactID := r.PathValue("prisonerContactID")
	query := "?prisonerContactId=" + url.QueryEscape(prisonerContactID)
	h.writeLanding(w, r, "Contact details", []webtemplates.Link{
		{URL: routepath.JourneyStart(journey.KindChangeRelationshipType, prisonerNumber) + query, Label: "Change the relationship"},
		{URL: routepath.ContactDeleteAddress(prisonerNumber, prisonerContactID, 0), Label: "Delete address 1"},
		{URL: routepath.ContactList(prisonerNumber), Label: "Back to contacts"},
	})
}

// writeLanding renders a landing page, surfacing any pending success notice.
func (h handlers) writeLanding(w http.ResponseWriter, r *http.Request, title string, links []webtemplates.Link) {
	banner := ""
	if notice, ok := flash.ReadAndClear(w, r); ok {
		banner = webi18n.Banner(h.localeTag(r), notice.Key)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	view := webtemplates.LandingView{Title: title, Banner: banner, Links: links}
	if err := webtemplates.Render(r.Context(), w, webtemplates.LandingPage(view)); err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
	}
}
