package contacts

import (
	"net/http"
	"net/url"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey/nav"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey/stepflow"
	apperrors "github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/errors"
	webtemplates "github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/templates"
)

// nameStep captures the contact's name on a fresh add-contact journey.
type nameStep struct {
	stepBase
}

func (nameStep) Name() nav.Step { return nav.StepEnterName }

func (s nameStep) Render(w http.ResponseWriter, r *http.Request, view stepflow.View) error {
	data := view.Record.AddContact
	if data == nil {
		return apperrors.E(apperrors.KindNotFound, "journey has no add-contact payload")
	}
	return s.writeForm(w, r, view, webtemplates.FormView{
		Title:      "What is the contact's name?",
		ErrorOrder: []string{"title", "firstName", "middleNames", "lastName"},
		Fields: []webtemplates.Field{
			{Name: "title", Label: "Title (optional)", Value: fieldWithReplay(view, "title", data.Title), Error: view.Replay.Errors["title"]},
			{Name: "firstName", Label: "First name", Value: fieldWithReplay(view, "firstName", data.FirstName), Error: view.Replay.Errors["firstName"]},
			{Name: "middleNames", Label: "Middle names (optional)", Value: fieldWithReplay(view, "middleNames", data.MiddleNames), Error: view.Replay.Errors["middleNames"]},
			{Name: "lastName", Label: "Last name", Value: fieldWithReplay(view, "lastName", data.LastName), Error: view.Replay.Errors["lastName"]},
		},
	})
}

func (nameStep) Validate(form url.Values) map[string]string {
	errs := map[string]string{}
	requireField(errs, form, "firstName", "Enter the contact's first name")
	requireField(errs, form, "lastName", "Enter the contact's last name")
	return errs
}

func (nameStep) Apply(r *http.Request, view stepflow.View, form url.Values) error {
	data := view.Record.AddContact
	if data == nil {
		return apperrors.E(apperrors.KindNotFound, "journey has no add-contact payload")
	}
	data.Title = fieldValue(form, "title")
	data.FirstName = fieldValue(form, "firstName")
	data.MiddleNames = fieldValue(form, "middleNames")
	data.LastName = fieldValue(form, "lastName")
	return nil
}

// dobStep captures an optional date of birth.
type dobStep struct {
	stepBase
}

func (dobStep) Name() nav.Step { return nav.StepEnterDob }

func (s dobStep) Render(w http.ResponseWriter, r *http.Request, view stepflow.View) error {
	data := view.Record.AddContact
	if data == nil {
		return apperrors.E(apperrors.KindNotFound, "journey has no add-contact payload")
	}
	day, month, year := splitDOB(data.DateOfBirth)
	return s.writeForm(w, r, view, webtemplates.FormView{
		Title:      "What is the contact's date of birth?",
		ErrorOrder: []string{"dobDay", "dobMonth", "dobYear"},
		Fields: []webtemplates.Field{
			{Name: "dobDay", Label: "Day", Value: fieldWithReplay(view, "dobDay", day), Error: view.Replay.Errors["dobDay"]},
			{Name: "dobMonth", Label: "Month", Value: fieldWithReplay(view, "dobMonth", month), Error: view.Replay.Errors["dobMonth"]},
			{Name: "dobYear", Label: "Year", Value: fieldWithReplay(view, "dobYear", year), Error: view.Replay.Errors["dobYear"]},
		},
	})
}

func (dobStep) Validate(form url.Values) map[string]string {
	errs := map[string]string{}
	if _, ok := parseDOB(fieldValue(form, "dobDay"), fieldValue(form, "dobMonth"), fieldValue(form, "dobYear")); !ok {
		errs["dobDay"] = "Enter a real date of birth, or leave all fields blank"
	}
	return errs
}

func (dobStep) Apply(r *http.Request, view stepflow.View, form url.Values) error {
	data := view.Record.AddContact
	if data == nil {
		return apperrors.E(apperrors.KindNotFound, "journey has no add-contact payload")
	}
	dob, ok := parseDOB(fieldValue(form, "dobDay"), fieldValue(form, "dobMonth"), fieldValue(form, "dobYear"))
	if !ok {
		return apperrors.E(apperrors.KindInvalidInput, "date of birth did not validate")
	}
	data.DateOfBirth = dob
	return nil
}

// splitDOB reverses parseDOB's storage format for redisplay.
func splitDOB(stored string) (day, month, year string) {
	if len(stored) != len("2006-01-02") {
		return "", "", ""
	}
	return stored[8:10], stored[5:7], stored[0:4]
}
