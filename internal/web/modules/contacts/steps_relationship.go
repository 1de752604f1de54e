package contacts

import (
	"net/http"
	"net/url"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey/nav"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey/stepflow"
	apperrors "github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/errors"
	webtemplates "github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/templates"
)

// Relationship type codes accepted by the contacts backend.
const (
	relationshipTypeSocial   = "S"
	relationshipTypeOfficial = "O"
)

// relationshipFields locates the relationship answers inside whichever
// journey payload the record carries. The same two screens serve the
// add-contact flow and the change-relationship-type flow.
func relationshipFields(record *journey.Record) (get func() (string, string), set func(string, string), err error) {
	switch {
	case record.AddContact != nil:
		data := record.AddContact
		return func() (string, string) { return data.RelationshipType, data.RelationshipToPrisoner },
			func(relType, relToPrisoner string) {
				if relType != "" {
					data.RelationshipType = relType
				}
				if relToPrisoner != "" {
					data.RelationshipToPrisoner = relToPrisoner
				}
			}, nil
	case record.RelationshipType != nil:
		data := record.RelationshipType
		return func() (string, string) { return data.RelationshipType, data.RelationshipToPrisoner },
			func(relType, relToPrisoner string) {
				if relType != "" {
					data.RelationshipType = relType
				}
				if relToPrisoner != "" {
					data.RelationshipToPrisoner = relToPrisoner
				}
			}, nil
	default:
		return nil, nil, apperrors.E(apperrors.KindNotFound, "journey has no relationship payload")
	}
}

// relationshipTypeStep captures whether the relationship is social or
// official. Changing it invalidates the relationship-to-prisoner answer.
type relationshipTypeStep struct {
	stepBase
}

func (relationshipTypeStep) Name() nav.Step { return nav.StepSelectRelationshipType }

func (s relationshipTypeStep) Render(w http.ResponseWriter, r *http.Request, view stepflow.View) error {
	get, _, err := relationshipFields(view.Record)
	if err != nil {
		return err
	}
	relType, _ := get()
	return s.writeForm(w, r, view, webtemplates.FormView{
		Title:      "Is this a social or official contact?",
		ErrorOrder: []string{"relationshipType"},
		Fields: []webtemplates.Field{
			{Name: "relationshipType", Label: "Relationship type (S or O)", Value: fieldWithReplay(view, "relationshipType", relType), Error: view.Replay.Errors["relationshipType"]},
		},
	})
}

func (relationshipTypeStep) Validate(form url.Values) map[string]string {
	errs := map[string]string{}
	switch fieldValue(form, "relationshipType") {
	case relationshipTypeSocial, relationshipTypeOfficial:
	default:
		errs["relationshipType"] = "Select whether this is a social or official contact"
	}
	return errs
}

func (relationshipTypeStep) Apply(r *http.Request, view stepflow.View, form url.Values) error {
	get, set, err := relationshipFields(view.Record)
	if err != nil {
		return err
	}
	previous, _ := get()
	selected := fieldValue(form, "relationshipType")
	set(selected, "")
	if previous != "" && previous != selected {
		// A different type makes the old relationship-to-prisoner code
		// meaningless; the next screen recaptures it.
		clearRelationshipToPrisoner(view.Record)
	}
	return nil
}

func clearRelationshipToPrisoner(record *journey.Record) {
	switch {
	case record.AddContact != nil:
		record.AddContact.RelationshipToPrisoner = ""
	case record.RelationshipType != nil:
		record.RelationshipType.RelationshipToPrisoner = ""
	}
}

// relationshipToPrisonerStep captures the relationship code (mother, friend,
// solicitor, ...) within the selected type.
type relationshipToPrisonerStep struct {
	stepBase
}

func (relationshipToPrisonerStep) Name() nav.Step { return nav.StepSelectRelationshipToPrisoner }

func (s relationshipToPrisonerStep) Render(w http.ResponseWriter, r *http.Request, view stepflow.View) error {
	get, _, err := relationshipFields(view.Record)
	if err != nil {
		return err
	}
	_, relToPrisoner := get()
	return s.writeForm(w, r, view, webtemplates.FormView{
		Title:      "How is the contact related to the prisoner?",
		ErrorOrder: []string{"relationshipToPrisoner"},
		Fields: []webtemplates.Field{
			{Name: "relationshipToPrisoner", Label: "Relationship to prisoner", Value: fieldWithReplay(view, "relationshipToPrisoner", relToPrisoner), Error: view.Replay.Errors["relationshipToPrisoner"]},
		},
	})
}

func (relationshipToPrisonerStep) Validate(form url.Values) map[string]string {
	errs := map[string]string{}
	requireField(errs, form, "relationshipToPrisoner", "Select how the contact is related to the prisoner")
	return errs
}

func (relationshipToPrisonerStep) Apply(r *http.Request, view stepflow.View, form url.Values) error {
	_, set, err := relationshipFields(view.Record)
	if err != nil {
		return err
	}
	set("", fieldValue(form, "relationshipToPrisoner"))
	return nil
}
