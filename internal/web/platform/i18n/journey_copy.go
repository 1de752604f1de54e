// Package i18n resolves localized copy for web journey pages.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// JourneyCopy holds translatable copy shared by the wizard screens.
type JourneyCopy struct {
	ErrorSummaryTitle   string
	NotFoundTitle       string
	NotFoundBody        string
	ForbiddenTitle      string
	ServerErrorTitle    string
	BannerContactAdded  string
	BannerRelationship  string
	BannerEmployments   string
	BannerAddressAdded  string
	BannerAddressGone   string
	ContinueLabel       string
	SaveLabel           string
	CancelLabel         string
	BackLabel           string
	AddAnotherLabel     string
	RemoveLabel         string
	CheckAnswersTitle   string
	ConfirmDeleteTitle  string
	ConfirmDeleteButton string
}

// Journey returns localized journey copy for the provided language tag.
func Journey(tag language.Tag) JourneyCopy {
	loc := message.NewPrinter(normalizeTag(tag))

	return JourneyCopy{
		ErrorSummaryTitle:   localizeWithFallback(loc, "journey.error_summary.title", "There is a problem"),
		NotFoundTitle:       localizeWithFallback(loc, "journey.not_found.title", "Page not found"),
		NotFoundBody:        localizeWithFallback(loc, "journey.not_found.body", "If you typed the web address, check it is correct."),
		ForbiddenTitle:      localizeWithFallback(loc, "journey.forbidden.title", "You do not have permission to view this page"),
		ServerErrorTitle:    localizeWithFallback(loc, "journey.server_error.title", "Sorry, there is a problem with the service"),
		BannerContactAdded:  localizeWithFallback(loc, "journey.banner.contact_added", "Contact added and linked to prisoner"),
		BannerRelationship:  localizeWithFallback(loc, "journey.banner.relationship_updated", "Relationship information updated"),
		BannerEmployments:   localizeWithFallback(loc, "journey.banner.employments_updated", "Employment information updated"),
		BannerAddressAdded:  localizeWithFallback(loc, "journey.banner.address_added", "Address added"),
		BannerAddressGone:   localizeWithFallback(loc, "journey.banner.address_deleted", "Address deleted"),
		ContinueLabel:       localizeWithFallback(loc, "journey.action.continue", "Continue"),
		SaveLabel:           localizeWithFallback(loc, "journey.action.save", "Save"),
		CancelLabel:         localizeWithFallback(loc, "journey.action.cancel", "Cancel"),
		BackLabel:           localizeWithFallback(loc, "journey.action.back", "Back"),
		AddAnotherLabel:     localizeWithFallback(loc, "journey.action.add_another", "Add another"),
		RemoveLabel:         localizeWithFallback(loc, "journey.action.remove", "Remove"),
		CheckAnswersTitle:   localizeWithFallback(loc, "journey.check_answers.title", "Check your answers"),
		ConfirmDeleteTitle:  localizeWithFallback(loc, "journey.confirm_delete.title", "Are you sure you want to delete this?"),
		ConfirmDeleteButton: localizeWithFallback(loc, "journey.confirm_delete.confirm", "Yes, delete"),
	}
}

// Banner resolves a flash-notice key to localized banner copy, falling back to
// the key itself when no copy exists for it.
func Banner(tag language.Tag, key string) string {
	copySet := Journey(tag)
	switch strings.TrimSpace(key) {
	case "web.contacts.notice_contact_created":
		return copySet.BannerContactAdded
	case "web.contacts.notice_relationship_updated":
		return copySet.BannerRelationship
	case "web.contacts.notice_employments_updated":
		return copySet.BannerEmployments
	case "web.contacts.notice_address_added":
		return copySet.BannerAddressAdded
	case "web.contacts.notice_address_deleted":
		return copySet.BannerAddressGone
	default:
		return strings.TrimSpace(key)
	}
}

func normalizeTag(tag language.Tag) language.Tag {
	base, _ := tag.Base()
	welshBase, _ := language.MustParse("cy").Base()
	if base == welshBase {
		return language.MustParse("cy")
	}
	return language.MustParse("en-GB")
}

func localizeWithFallback(loc *message.Printer, key string, fallback string, args ...any) string {
	if loc != nil {
		value := strings.TrimSpace(loc.Sprintf(key, args...))
		if value != "" && value != key {
			return value
		}
	}
	if len(args) > 0 {
		return fmt.Sprintf(fallback, args...)
	}
	return fallback
}
