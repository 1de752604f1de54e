package contacts

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey/nav"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey/pending"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey/stepflow"
	apperrors "github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/errors"
	webtemplates "github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/templates"
)

const (
	actionAddEmployment    = "add-another-employment"
	actionRemoveEmployment = "remove-employment"
)

var employmentAttributes = []struct {
	field string
	label string
}{
	{"employerName", "Employer name"},
	{"jobTitle", "Job title (optional)"},
	{"isActive", "Active employment (true to set)"},
}

// employmentsStep edits the whole employment list of an update-employments
// journey in one screen.
type employmentsStep struct {
	stepBase
}

func (employmentsStep) Name() nav.Step { return nav.StepEmployments }

func (s employmentsStep) Render(w http.ResponseWriter, r *http.Request, view stepflow.View) error {
	data := view.Record.Employments
	if data == nil {
		return apperrors.E(apperrors.KindNotFound, "journey has no employments payload")
	}
	// Saved drafts render as-is so a just-appended blank row keeps its inputs;
	// a replayed submission replaces them wholesale.
	drafts := data.PendingEmployments
	if len(view.Replay.Values) > 0 {
		drafts = decodeEmployments(mergeValues(nil, view.Replay.Values))
	}
	if len(drafts) == 0 {
		drafts = []journey.EmploymentDraft{{}}
	}

	copySet := s.copyFor(r)
	var fields []webtemplates.Field
	var order []string
	actions := []webtemplates.Action{{Value: actionAddEmployment, Label: copySet.AddAnotherLabel}}
	for i, draft := range drafts {
		values := map[string]string{
			"employerName": draft.EmployerName,
			"jobTitle":     draft.JobTitle,
		}
		if draft.IsActive {
			values["isActive"] = "true"
		}
		for _, attr := range employmentAttributes {
			name := positionalField(employmentsPrefix, i, attr.field)
			fields = append(fields, webtemplates.Field{
				Name:  name,
				Label: fmt.Sprintf("Employment %d: %s", i+1, attr.label),
				Value: values[attr.field],
				Error: view.Replay.Errors[name],
			})
			order = append(order, name)
		}
		actions = append(actions, webtemplates.Action{
			Value: fmt.Sprintf("%s-%d", actionRemoveEmployment, i),
			Label: fmt.Sprintf("%s employment %d", copySet.RemoveLabel, i+1),
		})
	}

	return s.writeForm(w, r, view, webtemplates.FormView{
		Title:      "Record the contact's employment information",
		ErrorOrder: order,
		Fields:     fields,
		Actions:    actions,
	})
}

func (employmentsStep) Validate(form url.Values) map[string]string {
	errs := map[string]string{}
	drafts := pending.ReplaceAll(decodeEmployments(form), employmentIsBlank)
	for i, draft := range drafts {
		if employmentIsBlank(draft) {
			continue
		}
		if draft.EmployerName == "" {
			errs[positionalField(employmentsPrefix, i, "employerName")] = "Enter the employer's name"
		}
	}
	return errs
}

func (employmentsStep) Apply(r *http.Request, view stepflow.View, form url.Values) error {
	data := view.Record.Employments
	if data == nil {
		return apperrors.E(apperrors.KindNotFound, "journey has no employments payload")
	}
	data.PendingEmployments = pending.ReplaceAll(decodeEmployments(form), employmentIsBlank)
	return nil
}

func (employmentsStep) Action(r *http.Request, view stepflow.View, action string, form url.Values) (string, error) {
	data := view.Record.Employments
	if data == nil {
		return "", apperrors.E(apperrors.KindNotFound, "journey has no employments payload")
	}
	drafts := decodeEmployments(form)
	switch {
	case action == actionAddEmployment:
		drafts = pending.Append(drafts, journey.EmploymentDraft{})
	case strings.HasPrefix(action, actionRemoveEmployment+"-"):
		if index, ok := actionIndex(action, actionRemoveEmployment); ok {
			drafts = pending.RemoveAt(drafts, index)
		}
	}
	data.PendingEmployments = drafts
	return "", nil
}
