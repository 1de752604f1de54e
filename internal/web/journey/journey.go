// Package journey holds in-progress wizard state for the contacts web flows.
//
// A journey is one multi-page create/edit flow (adding a contact, changing a
// relationship, editing employments, adding an address). Its record lives in
// the user's session until the final save submits to the contacts API, the
// user cancels, or the per-kind capacity evicts it.
package journey

import "time"

// Kind discriminates journey record shapes and navigation rules.
type Kind string

const (
	KindAddContact             Kind = "add-contact"
	KindAddAddress             Kind = "add-address"
	KindChangeRelationshipType Kind = "change-relationship-type"
	KindUpdateEmployments      Kind = "update-employments"
)

// Kinds lists every journey kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindAddContact, KindAddAddress, KindChangeRelationshipType, KindUpdateEmployments}
}

// Valid reports whether the kind is a known journey kind.
func (k Kind) Valid() bool {
	switch k {
	case KindAddContact, KindAddAddress, KindChangeRelationshipType, KindUpdateEmployments:
		return true
	default:
		return false
	}
}

// Mode narrows which steps a journey of a given kind visits.
type Mode string

const (
	// ModeNewContact creates a brand-new contact before linking it.
	ModeNewContact Mode = "NEW"
	// ModeExistingContact links an already-known contact, skipping the
	// identity steps.
	ModeExistingContact Mode = "EXISTING"
	// ModeAllRelationship changes the relationship type and then the
	// relationship to the prisoner.
	ModeAllRelationship Mode = "all"
	// ModeRelationshipToPrisoner changes only the relationship to the
	// prisoner.
	ModeRelationshipToPrisoner Mode = "relationship-to-prisoner"
)

// SubjectKeys identifies who a journey concerns. Immutable after creation.
type SubjectKeys struct {
	PrisonerNumber    string `json:"prisonerNumber"`
	ContactID         string `json:"contactId,omitempty"`
	PrisonerContactID string `json:"prisonerContactId,omitempty"`
}

// PhoneDraft is one not-yet-persisted phone number inside an address draft.
type PhoneDraft struct {
	Type      string `json:"type,omitempty"`
	Number    string `json:"number,omitempty"`
	Extension string `json:"extension,omitempty"`
}

// AddressDraft is one not-yet-persisted address. PhoneNumbers keeps submission
// order; entries are addressed by their current position only.
type AddressDraft struct {
	Flat           string       `json:"flat,omitempty"`
	Premises       string       `json:"premises,omitempty"`
	Street         string       `json:"street,omitempty"`
	Locality       string       `json:"locality,omitempty"`
	Town           string       `json:"town,omitempty"`
	County         string       `json:"county,omitempty"`
	Postcode       string       `json:"postcode,omitempty"`
	Country        string       `json:"country,omitempty"`
	NoFixedAddress bool         `json:"noFixedAddress,omitempty"`
	PhoneNumbers   []PhoneDraft `json:"phoneNumbers,omitempty"`
}

// EmploymentDraft is one not-yet-persisted employment entry.
type EmploymentDraft struct {
	EmployerName string `json:"employerName,omitempty"`
	JobTitle     string `json:"jobTitle,omitempty"`
	IsActive     bool   `json:"isActive,omitempty"`
}

// AddContactData holds the confirmed answers of an add-contact journey.
type AddContactData struct {
	Title                  string         `json:"title,omitempty"`
	FirstName              string         `json:"firstName,omitempty"`
	MiddleNames            string         `json:"middleNames,omitempty"`
	LastName               string         `json:"lastName,omitempty"`
	DateOfBirth            string         `json:"dateOfBirth,omitempty"`
	RelationshipType       string         `json:"relationshipType,omitempty"`
	RelationshipToPrisoner string         `json:"relationshipToPrisoner,omitempty"`
	PendingAddresses       []AddressDraft `json:"pendingAddresses,omitempty"`
}

// RelationshipTypeData holds the answers of a change-relationship-type journey.
type RelationshipTypeData struct {
	RelationshipType       string `json:"relationshipType,omitempty"`
	RelationshipToPrisoner string `json:"relationshipToPrisoner,omitempty"`
}

// EmploymentsData holds the draft list of an update-employments journey.
type EmploymentsData struct {
	PendingEmployments []EmploymentDraft `json:"pendingEmployments,omitempty"`
}

// AddressData holds the answers of an add-address journey.
type AddressData struct {
	Address AddressDraft `json:"address"`
}

// Record is one in-progress wizard instance. Exactly one of the kind-specific
// payload pointers is non-nil, matching Kind.
type Record struct {
	ID                string      `json:"id"`
	Kind              Kind        `json:"kind"`
	LastTouched       time.Time   `json:"lastTouched"`
	Subject           SubjectKeys `json:"subject"`
	Mode              Mode        `json:"mode,omitempty"`
	IsCheckingAnswers bool        `json:"isCheckingAnswers,omitempty"`

	AddContact       *AddContactData       `json:"addContact,omitempty"`
	RelationshipType *RelationshipTypeData `json:"relationshipType,omitempty"`
	Employments      *EmploymentsData      `json:"employments,omitempty"`
	Address          *AddressData          `json:"address,omitempty"`
}

// MarkCheckingAnswers records that the user has reached the check-answers
// screen. The flag is monotonic: once set it stays set for the rest of the
// journey's life.
func (r *Record) MarkCheckingAnswers() {
	if r == nil {
		return
	}
	r.IsCheckingAnswers = true
}
