package contacts

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey/formcodec"
)

// Form field prefixes for the positional collection screens.
const (
	addressesPrefix   = "addresses"
	phonesPrefix      = "phones"
	employmentsPrefix = "employments"
)

func fieldValue(form url.Values, name string) string {
	return strings.TrimSpace(form.Get(name))
}

func requireField(errs map[string]string, form url.Values, name string, message string) {
	if fieldValue(form, name) == "" {
		errs[name] = message
	}
}

// parseDOB validates the three-part date input. All parts blank means the
// date was declined; a partial or impossible date is a field error.
func parseDOB(day, month, year string) (string, bool) {
	if day == "" && month == "" && year == "" {
		return "", true
	}
	dayNum, dayErr := strconv.Atoi(day)
	monthNum, monthErr := strconv.Atoi(month)
	yearNum, yearErr := strconv.Atoi(year)
	if dayErr != nil || monthErr != nil || yearErr != nil {
		return "", false
	}
	if yearNum < 1900 || yearNum > time.Now().Year() {
		return "", false
	}
	parsed := time.Date(yearNum, time.Month(monthNum), dayNum, 0, 0, 0, 0, time.UTC)
	if parsed.Day() != dayNum || int(parsed.Month()) != monthNum || parsed.Year() != yearNum {
		return "", false
	}
	return parsed.Format("2006-01-02"), true
}

func decodePhones(item url.Values) []journey.PhoneDraft {
	var phones []journey.PhoneDraft
	for _, phoneItem := range formcodec.Decode(item, phonesPrefix) {
		phones = append(phones, journey.PhoneDraft{
			Type:      formcodec.Value(phoneItem, "type"),
			Number:    formcodec.Value(phoneItem, "number"),
			Extension: formcodec.Value(phoneItem, "extension"),
		})
	}
	return phones
}

func decodeAddresses(form url.Values) []journey.AddressDraft {
	var drafts []journey.AddressDraft
	for _, item := range formcodec.Decode(form, addressesPrefix) {
		drafts = append(drafts, addressFromItem(item))
	}
	return drafts
}

func addressFromItem(item url.Values) journey.AddressDraft {
	return journey.AddressDraft{
		Flat:           formcodec.Value(item, "flat"),
		Premises:       formcodec.Value(item, "premises"),
		Street:         formcodec.Value(item, "street"),
		Locality:       formcodec.Value(item, "locality"),
		Town:           formcodec.Value(item, "town"),
		County:         formcodec.Value(item, "county"),
		Postcode:       formcodec.Value(item, "postcode"),
		Country:        formcodec.Value(item, "country"),
		NoFixedAddress: formcodec.Value(item, "noFixedAddress") == "true",
		PhoneNumbers:   decodePhones(item),
	}
}

func addressToItem(draft journey.AddressDraft) url.Values {
	item := url.Values{}
	setIfPresent(item, "flat", draft.Flat)
	setIfPresent(item, "premises", draft.Premises)
	setIfPresent(item, "street", draft.Street)
	setIfPresent(item, "locality", draft.Locality)
	setIfPresent(item, "town", draft.Town)
	setIfPresent(item, "county", draft.County)
	setIfPresent(item, "postcode", draft.Postcode)
	setIfPresent(item, "country", draft.Country)
	if draft.NoFixedAddress {
		item.Set("noFixedAddress", "true")
	}
	phoneItems := make([]url.Values, 0, len(draft.PhoneNumbers))
	for _, phone := range draft.PhoneNumbers {
		phoneItem := url.Values{}
		setIfPresent(phoneItem, "type", phone.Type)
		setIfPresent(phoneItem, "number", phone.Number)
		setIfPresent(phoneItem, "extension", phone.Extension)
		phoneItems = append(phoneItems, phoneItem)
	}
	for key, values := range formcodec.Encode(phonesPrefix, phoneItems) {
		item[key] = values
	}
	return item
}

func decodeEmployments(form url.Values) []journey.EmploymentDraft {
	var drafts []journey.EmploymentDraft
	for _, item := range formcodec.Decode(form, employmentsPrefix) {
		drafts = append(drafts, journey.EmploymentDraft{
			EmployerName: formcodec.Value(item, "employerName"),
			JobTitle:     formcodec.Value(item, "jobTitle"),
			IsActive:     formcodec.Value(item, "isActive") == "true",
		})
	}
	return drafts
}

func addressIsBlank(draft journey.AddressDraft) bool {
	if draft.NoFixedAddress {
		return false
	}
	for _, phone := range draft.PhoneNumbers {
		if !phoneIsBlank(phone) {
			return false
		}
	}
	return draft.Flat == "" && draft.Premises == "" && draft.Street == "" &&
		draft.Locality == "" && draft.Town == "" && draft.County == "" &&
		draft.Postcode == "" && draft.Country == ""
}

func phoneIsBlank(phone journey.PhoneDraft) bool {
	return phone.Type == "" && phone.Number == "" && phone.Extension == ""
}

func employmentIsBlank(draft journey.EmploymentDraft) bool {
	return draft.EmployerName == "" && draft.JobTitle == "" && !draft.IsActive
}

func setIfPresent(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}

// mergeValues layers overlay on top of base; overlay fields win wholesale.
func mergeValues(base url.Values, overlay map[string][]string) url.Values {
	merged := url.Values{}
	for key, values := range base {
		merged[key] = append([]string(nil), values...)
	}
	for key, values := range overlay {
		merged[key] = append([]string(nil), values...)
	}
	return merged
}

func positionalField(prefix string, index int, field string) string {
	return fmt.Sprintf("%s[%d].%s", prefix, index, field)
}

func nestedPositionalField(prefix string, index int, nested string, nestedIndex int, field string) string {
	return fmt.Sprintf("%s[%d].%s[%d].%s", prefix, index, nested, nestedIndex, field)
}
