package contacts

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey/nav"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey/pending"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey/stepflow"
	apperrors "github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/errors"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/routepath"
	webtemplates "github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/templates"
)

// Same-page collection actions. Indexed variants carry the positional index
// of the row they act on, e.g. "add-phone-1" or "remove-phone-0-1".
const (
	actionAddAddress  = "add-another-address"
	actionAddPhone    = "add-phone"
	actionRemovePhone = "remove-phone"
)

var addressAttributes = []struct {
	field string
	label string
}{
	{"flat", "Flat (optional)"},
	{"premises", "Building name (optional)"},
	{"street", "Street"},
	{"locality", "Locality (optional)"},
	{"town", "Town or city"},
	{"county", "County (optional)"},
	{"postcode", "Postcode (optional)"},
	{"country", "Country (optional)"},
	{"noFixedAddress", "No fixed address (true to set)"},
}

var phoneAttributes = []struct {
	field string
	label string
}{
	{"type", "Phone type"},
	{"number", "Phone number"},
	{"extension", "Extension (optional)"},
}

// addressesStep edits the pending-addresses collection of an add-contact
// journey, each address nesting its own phone-numbers collection.
type addressesStep struct {
	stepBase
}

func (addressesStep) Name() nav.Step { return nav.StepAddresses }

func (s addressesStep) Render(w http.ResponseWriter, r *http.Request, view stepflow.View) error {
	data := view.Record.AddContact
	if data == nil {
		return apperrors.E(apperrors.KindNotFound, "journey has no add-contact payload")
	}
	// Saved drafts render as-is so a just-appended blank row keeps its inputs;
	// a replayed submission replaces them wholesale.
	drafts := data.PendingAddresses
	if len(view.Replay.Values) > 0 {
		drafts = decodeAddresses(mergeValues(nil, view.Replay.Values))
	}
	if len(drafts) == 0 {
		drafts = []journey.AddressDraft{{}}
	}

	copySet := s.copyFor(r)
	var fields []webtemplates.Field
	var order []string
	var links []webtemplates.Link
	actions := []webtemplates.Action{{Value: actionAddAddress, Label: copySet.AddAnotherLabel}}
	for i, draft := range drafts {
		item := addressToItem(draft)
		for _, attr := range addressAttributes {
			name := positionalField(addressesPrefix, i, attr.field)
			fields = append(fields, webtemplates.Field{
				Name:  name,
				Label: fmt.Sprintf("Address %d: %s", i+1, attr.label),
				Value: item.Get(attr.field),
				Error: view.Replay.Errors[name],
			})
			order = append(order, name)
		}
		for j := range draft.PhoneNumbers {
			for _, attr := range phoneAttributes {
				name := nestedPositionalField(addressesPrefix, i, phonesPrefix, j, attr.field)
				fields = append(fields, webtemplates.Field{
					Name:  name,
					Label: fmt.Sprintf("Address %d, phone %d: %s", i+1, j+1, attr.label),
					Value: item.Get(fmt.Sprintf("%s[%d].%s", phonesPrefix, j, attr.field)),
					Error: view.Replay.Errors[name],
				})
				order = append(order, name)
			}
			actions = append(actions, webtemplates.Action{
				Value: fmt.Sprintf("%s-%d-%d", actionRemovePhone, i, j),
				Label: fmt.Sprintf("%s phone %d from address %d", copySet.RemoveLabel, j+1, i+1),
			})
		}
		actions = append(actions,
			webtemplates.Action{Value: fmt.Sprintf("%s-%d", actionAddPhone, i), Label: fmt.Sprintf("Add a phone number to address %d", i+1)},
		)
		// Deleting a saved draft goes through its confirmation page.
		if i < len(data.PendingAddresses) {
			links = append(links, webtemplates.Link{
				URL:   routepath.AddContactDeleteAddress(view.Record.Subject.PrisonerNumber, view.Record.ID, i),
				Label: fmt.Sprintf("%s address %d", copySet.RemoveLabel, i+1),
			})
		}
	}

	return s.writeForm(w, r, view, webtemplates.FormView{
		Title:      "Add addresses for the contact",
		ErrorOrder: order,
		Fields:     fields,
		Actions:    actions,
		Links:      links,
	})
}

func (addressesStep) Validate(form url.Values) map[string]string {
	return validateAddressDrafts(pending.ReplaceAll(decodeAddresses(form), addressIsBlank))
}

func validateAddressDrafts(drafts []journey.AddressDraft) map[string]string {
	errs := map[string]string{}
	for i, draft := range drafts {
		if addressIsBlank(draft) {
			continue
		}
		if draft.Street == "" {
			errs[positionalField(addressesPrefix, i, "street")] = "Enter a street"
		}
		if draft.Town == "" {
			errs[positionalField(addressesPrefix, i, "town")] = "Enter a town or city"
		}
		for j, phone := range draft.PhoneNumbers {
			if phoneIsBlank(phone) {
				continue
			}
			if phone.Number == "" {
				errs[nestedPositionalField(addressesPrefix, i, phonesPrefix, j, "number")] = "Enter a phone number"
			}
		}
	}
	return errs
}

func (addressesStep) Apply(r *http.Request, view stepflow.View, form url.Values) error {
	data := view.Record.AddContact
	if data == nil {
		return apperrors.E(apperrors.KindNotFound, "journey has no add-contact payload")
	}
	data.PendingAddresses = pending.ReplaceAll(decodeAddresses(form), addressIsBlank)
	return nil
}

// Action mutates the draft collection without validating: the submitted
// values are kept verbatim so nothing the user typed is lost.
func (addressesStep) Action(r *http.Request, view stepflow.View, action string, form url.Values) (string, error) {
	data := view.Record.AddContact
	if data == nil {
		return "", apperrors.E(apperrors.KindNotFound, "journey has no add-contact payload")
	}
	drafts := decodeAddresses(form)
	switch {
	case action == actionAddAddress:
		drafts = pending.Append(drafts, journey.AddressDraft{})
	case strings.HasPrefix(action, actionAddPhone+"-"):
		if index, ok := actionIndex(action, actionAddPhone); ok && index >= 0 && index < len(drafts) {
			drafts[index].PhoneNumbers = pending.Append(drafts[index].PhoneNumbers, journey.PhoneDraft{})
		}
	case strings.HasPrefix(action, actionRemovePhone+"-"):
		if addressIndex, phoneIndex, ok := actionIndexPair(action, actionRemovePhone); ok && addressIndex >= 0 && addressIndex < len(drafts) {
			drafts[addressIndex].PhoneNumbers = pending.RemoveAt(drafts[addressIndex].PhoneNumbers, phoneIndex)
		}
	}
	data.PendingAddresses = drafts
	return "", nil
}

func actionIndex(action string, prefix string) (int, bool) {
	index, err := strconv.Atoi(strings.TrimPrefix(action, prefix+"-"))
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}

func actionIndexPair(action string, prefix string) (int, int, bool) {
	parts := strings.Split(strings.TrimPrefix(action, prefix+"-"), "-")
	if len(parts) != 2 {
		return 0, 0, false
	}
	first, firstErr := strconv.Atoi(parts[0])
	second, secondErr := strconv.Atoi(parts[1])
	if firstErr != nil || secondErr != nil || first < 0 || second < 0 {
		return 0, 0, false
	}
	return first, second, true
}

// enterAddressStep captures the single address of an add-address journey,
// with its own nested phone-numbers collection under flat field names.
type enterAddressStep struct {
	stepBase
}

func (enterAddressStep) Name() nav.Step { return nav.StepEnterAddress }

func (s enterAddressStep) Render(w http.ResponseWriter, r *http.Request, view stepflow.View) error {
	data := view.Record.Address
	if data == nil {
		return apperrors.E(apperrors.KindNotFound, "journey has no address payload")
	}
	item := addressToItem(data.Address)
	phoneCount := len(data.Address.PhoneNumbers)
	if len(view.Replay.Values) > 0 {
		item = mergeValues(nil, view.Replay.Values)
		phoneCount = len(decodePhones(item))
	}

	copySet := s.copyFor(r)
	var fields []webtemplates.Field
	var order []string
	for _, attr := range addressAttributes {
		fields = append(fields, webtemplates.Field{
			Name:  attr.field,
			Label: attr.label,
			Value: item.Get(attr.field),
			Error: view.Replay.Errors[attr.field],
		})
		order = append(order, attr.field)
	}
	actions := []webtemplates.Action{{Value: actionAddPhone + "-0", Label: "Add a phone number"}}
	for j := 0; j < phoneCount; j++ {
		for _, attr := range phoneAttributes {
			name := fmt.Sprintf("%s[%d].%s", phonesPrefix, j, attr.field)
			fields = append(fields, webtemplates.Field{
				Name:  name,
				Label: fmt.Sprintf("Phone %d: %s", j+1, attr.label),
				Value: item.Get(name),
				Error: view.Replay.Errors[name],
			})
			order = append(order, name)
		}
		actions = append(actions, webtemplates.Action{
			Value: fmt.Sprintf("%s-0-%d", actionRemovePhone, j),
			Label: fmt.Sprintf("%s phone %d", copySet.RemoveLabel, j+1),
		})
	}

	return s.writeForm(w, r, view, webtemplates.FormView{
		Title:      "Add an address for the contact",
		ErrorOrder: order,
		Fields:     fields,
		Actions:    actions,
	})
}

func (enterAddressStep) Validate(form url.Values) map[string]string {
	errs := map[string]string{}
	draft := addressFromItem(form)
	if draft.Street == "" && !draft.NoFixedAddress {
		errs["street"] = "Enter a street"
	}
	if draft.Town == "" && !draft.NoFixedAddress {
		errs["town"] = "Enter a town or city"
	}
	for j, phone := range draft.PhoneNumbers {
		if phoneIsBlank(phone) {
			continue
		}
		if phone.Number == "" {
			errs[fmt.Sprintf("%s[%d].number", phonesPrefix, j)] = "Enter a phone number"
		}
	}
	return errs
}

func (enterAddressStep) Apply(r *http.Request, view stepflow.View, form url.Values) error {
	data := view.Record.Address
	if data == nil {
		return apperrors.E(apperrors.KindNotFound, "journey has no address payload")
	}
	draft := addressFromItem(form)
	draft.PhoneNumbers = pending.ReplaceAll(draft.PhoneNumbers, phoneIsBlank)
	data.Address = draft
	return nil
}

func (enterAddressStep) Action(r *http.Request, view stepflow.View, action string, form url.Values) (string, error) {
	data := view.Record.Address
	if data == nil {
		return "", apperrors.E(apperrors.KindNotFound, "journey has no address payload")
	}
	draft := addressFromItem(form)
	switch {
	case strings.HasPrefix(action, actionAddPhone+"-"):
		draft.PhoneNumbers = pending.Append(draft.PhoneNumbers, journey.PhoneDraft{})
	case strings.HasPrefix(action, actionRemovePhone+"-"):
		if _, phoneIndex, ok := actionIndexPair(action, actionRemovePhone); ok {
			draft.PhoneNumbers = pending.RemoveAt(draft.PhoneNumbers, phoneIndex)
		}
	}
	data.Address = draft
	return "", nil
}
