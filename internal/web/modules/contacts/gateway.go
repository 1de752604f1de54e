package contacts

import (
	"context"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey"
)

// CreateContactRequest carries the terminal save of an add-contact journey.
type CreateContactRequest struct {
	PrisonerNumber string
	Mode           journey.Mode
	// ContactID identifies the existing contact being linked in EXISTING mode.
	ContactID              string
	Title                  string
	FirstName              string
	MiddleNames            string
	LastName               string
	DateOfBirth            string
	RelationshipType       string
	RelationshipToPrisoner string
	Addresses              []journey.AddressDraft
}

// CreateContactResult identifies the created or linked records.
type CreateContactResult struct {
	ContactID         string
	PrisonerContactID string
}

// UpdateRelationshipRequest carries the terminal save of a
// change-relationship-type journey.
type UpdateRelationshipRequest struct {
	PrisonerNumber         string
	PrisonerContactID      string
	RelationshipType       string
	RelationshipToPrisoner string
}

// ReplaceEmploymentsRequest carries the terminal save of an
// update-employments journey. The list replaces the contact's employments
// wholesale.
type ReplaceEmploymentsRequest struct {
	PrisonerNumber    string
	ContactID         string
	PrisonerContactID string
	Employments       []journey.EmploymentDraft
}

// AddAddressRequest carries the terminal save of an add-address journey.
type AddAddressRequest struct {
	PrisonerNumber    string
	ContactID         string
	PrisonerContactID string
	Address           journey.AddressDraft
}

// DeleteAddressRequest deletes one persisted address by its current position
// in the contact's address list.
type DeleteAddressRequest struct {
	PrisonerNumber    string
	PrisonerContactID string
	AddressIndex      int
}

// ContactsGateway submits completed journeys to the contacts backend. Only
// terminal saves call it; in-progress answers live in the journey store.
type ContactsGateway interface {
	CreateContact(context.Context, CreateContactRequest) (CreateContactResult, error)
	UpdateRelationship(context.Context, UpdateRelationshipRequest) error
	ReplaceEmployments(context.Context, ReplaceEmploymentsRequest) error
	AddAddress(context.Context, AddAddressRequest) error
	DeleteAddress(context.Context, DeleteAddressRequest) error
}
