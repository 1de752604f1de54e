package contacts

import (
	"net/http"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey/stepflow"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers, flows map[journey.Kind]*stepflow.Handler) {
	if mux == nil {
		return
	}

	mux.HandleFunc(http.MethodGet+" "+routepath.ContactListPattern, h.handleContactList)
	mux.HandleFunc(http.MethodGet+" "+routepath.ContactDetailsPattern, h.handleContactDetails)
	mux.HandleFunc(http.MethodGet+" "+routepath.ContactDeleteAddressPattern, h.handleContactAddressDeleteConfirm)
	mux.HandleFunc(http.MethodPost+" "+routepath.ContactDeleteAddressPattern, h.handleContactAddressDelete)

	mux.HandleFunc(http.MethodGet+" "+routepath.AddContactStartPattern, h.handleStart(journey.KindAddContact))
	mux.HandleFunc(http.MethodGet+" "+routepath.RelationshipStartPattern, h.handleStart(journey.KindChangeRelationshipType))
	mux.HandleFunc(http.MethodGet+" "+routepath.EmploymentsStartPattern, h.handleStart(journey.KindUpdateEmployments))
	mux.HandleFunc(http.MethodGet+" "+routepath.AddressStartPattern, h.handleStart(journey.KindAddAddress))

	mux.HandleFunc(http.MethodGet+" "+routepath.AddContactCancelPattern, h.handleCancel(journey.KindAddContact))
	mux.HandleFunc(http.MethodGet+" "+routepath.RelationshipCancelPattern, h.handleCancel(journey.KindChangeRelationshipType))
	mux.HandleFunc(http.MethodGet+" "+routepath.EmploymentsCancelPattern, h.handleCancel(journey.KindUpdateEmployments))
	mux.HandleFunc(http.MethodGet+" "+routepath.AddressCancelPattern, h.handleCancel(journey.KindAddAddress))

	// The delete-address confirmation route is more specific than the step
	// wildcard and must be registered alongside it.
	mux.HandleFunc(http.MethodGet+" "+routepath.AddContactDeleteAddressPattern, h.handlePendingAddressDeleteConfirm)
	mux.HandleFunc(http.MethodPost+" "+routepath.AddContactDeleteAddressPattern, h.handlePendingAddressDelete)

	mux.Handle(routepath.AddContactStepPattern, flows[journey.KindAddContact])
	mux.Handle(routepath.RelationshipStepPattern, flows[journey.KindChangeRelationshipType])
	mux.Handle(routepath.EmploymentsStepPattern, flows[journey.KindUpdateEmployments])
	mux.Handle(routepath.AddressStepPattern, flows[journey.KindAddAddress])
}
