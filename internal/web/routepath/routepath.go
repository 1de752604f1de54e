// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey"
)

const (
	Root   = "/"
	Health = "/up"

	PrisonerPrefix = "/prisoner/"

	ContactListPattern          = "/prisoner/{prisonerNumber}/contacts/list"
	ContactDetailsPattern       = "/prisoner/{prisonerNumber}/contacts/manage/{prisonerContactID}"
	ContactDeleteAddressPattern = "/prisoner/{prisonerNumber}/contacts/manage/{prisonerContactID}/address/{index}/delete"

	AddContactStartPattern         = "/prisoner/{prisonerNumber}/contacts/create/start"
	AddContactStepPattern          = "/prisoner/{prisonerNumber}/contacts/create/{journeyID}/{step}"
	AddContactCancelPattern        = "/prisoner/{prisonerNumber}/contacts/create/{journeyID}/cancel"
	AddContactDeleteAddressPattern = "/prisoner/{prisonerNumber}/contacts/create/{journeyID}/addresses/{index}/delete"

	RelationshipStartPattern  = "/prisoner/{prisonerNumber}/contacts/relationship/start"
	RelationshipStepPattern   = "/prisoner/{prisonerNumber}/contacts/relationship/{journeyID}/{step}"
	RelationshipCancelPattern = "/prisoner/{prisonerNumber}/contacts/relationship/{journeyID}/cancel"

	EmploymentsStartPattern  = "/prisoner/{prisonerNumber}/contacts/employments/start"
	EmploymentsStepPattern   = "/prisoner/{prisonerNumber}/contacts/employments/{journeyID}/{step}"
	EmploymentsCancelPattern = "/prisoner/{prisonerNumber}/contacts/employments/{journeyID}/cancel"

	AddressStartPattern  = "/prisoner/{prisonerNumber}/contacts/address/start"
	AddressStepPattern   = "/prisoner/{prisonerNumber}/contacts/address/{journeyID}/{step}"
	AddressCancelPattern = "/prisoner/{prisonerNumber}/contacts/address/{journeyID}/cancel"
)

// ContactList returns the contact list page for a prisoner.
func ContactList(prisonerNumber string) string {
	return PrisonerPrefix + segment(prisonerNumber) + "/contacts/list"
}

// ContactDetails returns the relationship detail page for one linked contact.
func ContactDetails(prisonerNumber string, prisonerContactID string) string {
	return PrisonerPrefix + segment(prisonerNumber) + "/contacts/manage/" + segment(prisonerContactID)
}

// JourneyStart returns the canonical start path for a journey kind. A request
// for a missing or evicted journey redirects here.
func JourneyStart(kind journey.Kind, prisonerNumber string) string {
	return PrisonerPrefix + segment(prisonerNumber) + "/contacts/" + journeySegment(kind) + "/start"
}

// JourneyStep returns the path of one wizard step within a journey.
func JourneyStep(kind journey.Kind, prisonerNumber string, journeyID string, step string) string {
	return PrisonerPrefix + segment(prisonerNumber) + "/contacts/" + journeySegment(kind) + "/" + segment(journeyID) + "/" + segment(step)
}

// JourneyCancel returns the abandon path of a journey. A request here
// destroys the record and lands on the subject's contact page.
func JourneyCancel(kind journey.Kind, prisonerNumber string, journeyID string) string {
	return PrisonerPrefix + segment(prisonerNumber) + "/contacts/" + journeySegment(kind) + "/" + segment(journeyID) + "/cancel"
}

// AddContactDeleteAddress returns the confirmation page for deleting one
// pending address by its current position.
func AddContactDeleteAddress(prisonerNumber string, journeyID string, index int) string {
	return fmt.Sprintf("%s%s/contacts/create/%s/addresses/%d/delete", PrisonerPrefix, segment(prisonerNumber), segment(journeyID), index)
}

// ContactDeleteAddress returns the confirmation page for deleting one
// persisted address of a linked contact by its current position.
func ContactDeleteAddress(prisonerNumber string, prisonerContactID string, index int) string {
	return fmt.Sprintf("%s/address/%d/delete", ContactDetails(prisonerNumber, prisonerContactID), index)
}

func journeySegment(kind journey.Kind) string {
	switch kind {
	case journey.KindAddContact:
		return "create"
	case journey.KindChangeRelationshipType:
		return "relationship"
	case journey.KindUpdateEmployments:
		return "employments"
	case journey.KindAddAddress:
		return "address"
	default:
		return string(kind)
	}
}

func segment(value string) string {
	return url.PathEscape(strings.TrimSpace(value))
}
