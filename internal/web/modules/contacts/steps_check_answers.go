package contacts

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey/nav"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey/stepflow"
	apperrors "github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/errors"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/flash"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/routepath"
	webtemplates "github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/templates"
)

// Flash notice keys surfaced on the landing page after a journey completes.
const (
	noticeContactCreated      = "web.contacts.notice_contact_created"
	noticeRelationshipUpdated = "web.contacts.notice_relationship_updated"
	noticeEmploymentsUpdated  = "web.contacts.notice_employments_updated"
	noticeAddressAdded        = "web.contacts.notice_address_added"
	noticeAddressDeleted      = "web.contacts.notice_address_deleted"
)

// changeLink points a check-answers row at its step, carrying the
// check-answers page as the explicit back target.
func changeLink(record *journey.Record, step nav.Step) string {
	stepPath := routepath.JourneyStep(record.Kind, record.Subject.PrisonerNumber, record.ID, string(step))
	checkAnswers := routepath.JourneyStep(record.Kind, record.Subject.PrisonerNumber, record.ID, string(nav.StepCheckAnswers))
	return stepPath + "?" + stepflow.EntryPointParam + "=" + url.QueryEscape(checkAnswers)
}

func (b stepBase) writeSummary(w http.ResponseWriter, r *http.Request, view stepflow.View, rows []webtemplates.SummaryRow) error {
	copySet := b.copyFor(r)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return webtemplates.Render(r.Context(), w, webtemplates.SummaryPage(webtemplates.SummaryView{
		Title:       copySet.CheckAnswersTitle,
		BackURL:     view.Links.Back,
		BackLabel:   copySet.BackLabel,
		CancelURL:   view.Links.Cancel,
		CancelLabel: copySet.CancelLabel,
		SubmitLabel: copySet.SaveLabel,
		Rows:        rows,
	}))
}

func landingFor(subject journey.SubjectKeys) string {
	if subject.PrisonerContactID != "" {
		return routepath.ContactDetails(subject.PrisonerNumber, subject.PrisonerContactID)
	}
	return routepath.ContactList(subject.PrisonerNumber)
}

func summarizeAddress(draft journey.AddressDraft) string {
	if draft.NoFixedAddress {
		return "No fixed address"
	}
	parts := make([]string, 0, 4)
	for _, part := range []string{draft.Flat, draft.Street, draft.Town, draft.Postcode} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	line := strings.Join(parts, ", ")
	if count := len(draft.PhoneNumbers); count == 1 {
		line += " (1 phone number)"
	} else if count > 1 {
		line += fmt.Sprintf(" (%d phone numbers)", count)
	}
	return line
}

func orNotProvided(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Not provided"
	}
	return value
}

// addContactCheckAnswersStep reviews and submits an add-contact journey.
type addContactCheckAnswersStep struct {
	stepBase
	gateway ContactsGateway
}

func (addContactCheckAnswersStep) Name() nav.Step { return nav.StepCheckAnswers }

func (s addContactCheckAnswersStep) Render(w http.ResponseWriter, r *http.Request, view stepflow.View) error {
	data := view.Record.AddContact
	if data == nil {
		return apperrors.E(apperrors.KindNotFound, "journey has no add-contact payload")
	}
	var rows []webtemplates.SummaryRow
	if view.Record.Mode != journey.ModeExistingContact {
		name := strings.TrimSpace(strings.Join([]string{data.Title, data.FirstName, data.MiddleNames, data.LastName}, " "))
		name = strings.Join(strings.Fields(name), " ")
		rows = append(rows,
			webtemplates.SummaryRow{Label: "Name", Value: orNotProvided(name), ChangeURL: changeLink(view.Record, nav.StepEnterName)},
			webtemplates.SummaryRow{Label: "Date of birth", Value: orNotProvided(data.DateOfBirth), ChangeURL: changeLink(view.Record, nav.StepEnterDob)},
		)
	}
	rows = append(rows,
		webtemplates.SummaryRow{Label: "Relationship type", Value: orNotProvided(data.RelationshipType), ChangeURL: changeLink(view.Record, nav.StepSelectRelationshipType)},
		webtemplates.SummaryRow{Label: "Relationship to prisoner", Value: orNotProvided(data.RelationshipToPrisoner), ChangeURL: changeLink(view.Record, nav.StepSelectRelationshipToPrisoner)},
	)
	if len(data.PendingAddresses) == 0 {
		rows = append(rows, webtemplates.SummaryRow{Label: "Addresses", Value: "Not provided", ChangeURL: changeLink(view.Record, nav.StepAddresses)})
	}
	for i, draft := range data.PendingAddresses {
		rows = append(rows, webtemplates.SummaryRow{
			Label:     fmt.Sprintf("Address %d", i+1),
			Value:     summarizeAddress(draft),
			ChangeURL: changeLink(view.Record, nav.StepAddresses),
		})
	}
	return s.writeSummary(w, r, view, rows)
}

func (addContactCheckAnswersStep) Validate(url.Values) map[string]string { return nil }

func (addContactCheckAnswersStep) Apply(*http.Request, stepflow.View, url.Values) error { return nil }

func (s addContactCheckAnswersStep) Finish(r *http.Request, view stepflow.View, form url.Values) (string, flash.Notice, error) {
	data := view.Record.AddContact
	if data == nil {
		return "", flash.Notice{}, apperrors.E(apperrors.KindNotFound, "journey has no add-contact payload")
	}
	result, err := s.gateway.CreateContact(r.Context(), CreateContactRequest{
		PrisonerNumber:         view.Record.Subject.PrisonerNumber,
		Mode:                   view.Record.Mode,
		ContactID:              view.Record.Subject.ContactID,
		Title:                  data.Title,
		FirstName:              data.FirstName,
		MiddleNames:            data.MiddleNames,
		LastName:               data.LastName,
		DateOfBirth:            data.DateOfBirth,
		RelationshipType:       data.RelationshipType,
		RelationshipToPrisoner: data.RelationshipToPrisoner,
		Addresses:              data.PendingAddresses,
	})
	if err != nil {
		return "", flash.Notice{}, err
	}
	landing := routepath.ContactList(view.Record.Subject.PrisonerNumber)
	if result.PrisonerContactID != "" {
		landing = routepath.ContactDetails(view.Record.Subject.PrisonerNumber, result.PrisonerContactID)
	}
	return landing, flash.NoticeSuccess(noticeContactCreated), nil
}

// relationshipCheckAnswersStep reviews and submits a change-relationship-type
// journey.
type relationshipCheckAnswersStep struct {
	stepBase
	gateway ContactsGateway
}

func (relationshipCheckAnswersStep) Name() nav.Step { return nav.StepCheckAnswers }

func (s relationshipCheckAnswersStep) Render(w http.ResponseWriter, r *http.Request, view stepflow.View) error {
	data := view.Record.RelationshipType
	if data == nil {
		return apperrors.E(apperrors.KindNotFound, "journey has no relationship payload")
	}
	rows := []webtemplates.SummaryRow{}
	if view.Record.Mode != journey.ModeRelationshipToPrisoner {
		rows = append(rows, webtemplates.SummaryRow{Label: "Relationship type", Value: orNotProvided(data.RelationshipType), ChangeURL: changeLink(view.Record, nav.StepSelectRelationshipType)})
	}
	rows = append(rows, webtemplates.SummaryRow{Label: "Relationship to prisoner", Value: orNotProvided(data.RelationshipToPrisoner), ChangeURL: changeLink(view.Record, nav.StepSelectRelationshipToPrisoner)})
	return s.writeSummary(w, r, view, rows)
}

func (relationshipCheckAnswersStep) Validate(url.Values) map[string]string { return nil }

func (relationshipCheckAnswersStep) Apply(*http.Request, stepflow.View, url.Values) error {
	return nil
}

func (s relationshipCheckAnswersStep) Finish(r *http.Request, view stepflow.View, form url.Values) (string, flash.Notice, error) {
	data := view.Record.RelationshipType
	if data == nil {
		return "", flash.Notice{}, apperrors.E(apperrors.KindNotFound, "journey has no relationship payload")
	}
	err := s.gateway.UpdateRelationship(r.Context(), UpdateRelationshipRequest{
		PrisonerNumber:         view.Record.Subject.PrisonerNumber,
		PrisonerContactID:      view.Record.Subject.PrisonerContactID,
		RelationshipType:       data.RelationshipType,
		RelationshipToPrisoner: data.RelationshipToPrisoner,
	})
	if err != nil {
		return "", flash.Notice{}, err
	}
	return landingFor(view.Record.Subject), flash.NoticeSuccess(noticeRelationshipUpdated), nil
}

// employmentsCheckAnswersStep reviews and submits an update-employments
// journey.
type employmentsCheckAnswersStep struct {
	stepBase
	gateway ContactsGateway
}

func (employmentsCheckAnswersStep) Name() nav.Step { return nav.StepCheckAnswers }

func (s employmentsCheckAnswersStep) Render(w http.ResponseWriter, r *http.Request, view stepflow.View) error {
	data := view.Record.Employments
	if data == nil {
		return apperrors.E(apperrors.KindNotFound, "journey has no employments payload")
	}
	rows := []webtemplates.SummaryRow{}
	if len(data.PendingEmployments) == 0 {
		rows = append(rows, webtemplates.SummaryRow{Label: "Employments", Value: "Not provided", ChangeURL: changeLink(view.Record, nav.StepEmployments)})
	}
	for i, draft := range data.PendingEmployments {
		value := draft.EmployerName
		if draft.JobTitle != "" {
			value += ", " + draft.JobTitle
		}
		if draft.IsActive {
			value += " (active)"
		}
		rows = append(rows, webtemplates.SummaryRow{
			Label:     fmt.Sprintf("Employment %d", i+1),
			Value:     orNotProvided(value),
			ChangeURL: changeLink(view.Record, nav.StepEmployments),
		})
	}
	return s.writeSummary(w, r, view, rows)
}

func (employmentsCheckAnswersStep) Validate(url.Values) map[string]string { return nil }

func (employmentsCheckAnswersStep) Apply(*http.Request, stepflow.View, url.Values) error {
	return nil
}

func (s employmentsCheckAnswersStep) Finish(r *http.Request, view stepflow.View, form url.Values) (string, flash.Notice, error) {
	data := view.Record.Employments
	if data == nil {
		return "", flash.Notice{}, apperrors.E(apperrors.KindNotFound, "journey has no employments payload")
	}
	err := s.gateway.ReplaceEmployments(r.Context(), ReplaceEmploymentsRequest{
		PrisonerNumber:    view.Record.Subject.PrisonerNumber,
		ContactID:         view.Record.Subject.ContactID,
		PrisonerContactID: view.Record.Subject.PrisonerContactID,
		Employments:       data.PendingEmployments,
	})
	if err != nil {
		return "", flash.Notice{}, err
	}
	return landingFor(view.Record.Subject), flash.NoticeSuccess(noticeEmploymentsUpdated), nil
}

// addressCheckAnswersStep reviews and submits an add-address journey.
type addressCheckAnswersStep struct {
	stepBase
	gateway ContactsGateway
}

func (addressCheckAnswersStep) Name() nav.Step { return nav.StepCheckAnswers }

func (s addressCheckAnswersStep) Render(w http.ResponseWriter, r *http.Request, view stepflow.View) error {
	data := view.Record.Address
	if data == nil {
		return apperrors.E(apperrors.KindNotFound, "journey has no address payload")
	}
	rows := []webtemplates.SummaryRow{
		{Label: "Address", Value: orNotProvided(summarizeAddress(data.Address)), ChangeURL: changeLink(view.Record, nav.StepEnterAddress)},
	}
	return s.writeSummary(w, r, view, rows)
}

func (addressCheckAnswersStep) Validate(url.Values) map[string]string { return nil }

func (addressCheckAnswersStep) Apply(*http.Request, stepflow.View, url.Values) error { return nil }

func (s addressCheckAnswersStep) Finish(r *http.Request, view stepflow.View, form url.Values) (string, flash.Notice, error) {
	data := view.Record.Address
	if data == nil {
		return "", flash.Notice{}, apperrors.E(apperrors.KindNotFound, "journey has no address payload")
	}
	err := s.gateway.AddAddress(r.Context(), AddAddressRequest{
		PrisonerNumber:    view.Record.Subject.PrisonerNumber,
		ContactID:         view.Record.Subject.ContactID,
		PrisonerContactID: view.Record.Subject.PrisonerContactID,
		Address:           data.Address,
	})
	if err != nil {
		return "", flash.Notice{}, err
	}
	return landingFor(view.Record.Subject), flash.NoticeSuccess(noticeAddressAdded), nil
}
