// Package nav computes wizard navigation targets from journey state.
//
// Every step template is reachable from more than one parent (a fresh
// add-contact journey, the check-answers screen, an edit flow on an existing
// contact), so back links and continue targets are resolved from a static
// per-kind step table instead of per-screen special cases.
package nav

import (
	"fmt"
	"strings"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/routepath"
)

// Step identifies one wizard screen within a journey kind.
type Step string

const (
	StepEnterName                    Step = "enter-name"
	StepEnterDob                     Step = "enter-dob"
	StepSelectRelationshipType       Step = "select-relationship-type"
	StepSelectRelationshipToPrisoner Step = "select-relationship-to-prisoner"
	StepAddresses                    Step = "addresses"
	StepEnterAddress                 Step = "enter-address"
	StepEmployments                  Step = "employments"
	StepCheckAnswers                 Step = "check-answers"
)

// Links are the three navigation targets every wizard screen renders.
type Links struct {
	Back      string
	Cancel    string
	OnSuccess string
}

// Sequence returns the linear step order for a journey kind and mode. Nil
// means the combination is not a known flow.
func Sequence(kind journey.Kind, mode journey.Mode) []Step {
	switch kind {
	case journey.KindAddContact:
		if mode == journey.ModeExistingContact {
			return []Step{StepSelectRelationshipType, StepSelectRelationshipToPrisoner, StepAddresses, StepCheckAnswers}
		}
		return []Step{StepEnterName, StepEnterDob, StepSelectRelationshipType, StepSelectRelationshipToPrisoner, StepAddresses, StepCheckAnswers}
	case journey.KindChangeRelationshipType:
		if mode == journey.ModeRelationshipToPrisoner {
			return []Step{StepSelectRelationshipToPrisoner, StepCheckAnswers}
		}
		return []Step{StepSelectRelationshipType, StepSelectRelationshipToPrisoner, StepCheckAnswers}
	case journey.KindUpdateEmployments:
		return []Step{StepEmployments, StepCheckAnswers}
	case journey.KindAddAddress:
		return []Step{StepEnterAddress, StepCheckAnswers}
	default:
		return nil
	}
}

// Resolve computes the back, cancel, and continue targets for the current
// step of a journey. It is a pure function of the journey's kind, mode,
// isCheckingAnswers flag, and the optional entry point carried in the URL.
func Resolve(record *journey.Record, current Step, entryPoint string) (Links, error) {
	if record == nil {
		return Links{}, fmt.Errorf("journey record is required")
	}
	sequence := Sequence(record.Kind, record.Mode)
	if sequence == nil {
		return Links{}, fmt.Errorf("no step sequence for kind %q mode %q", record.Kind, record.Mode)
	}
	position := -1
	for idx, step := range sequence {
		if step == current {
			position = idx
			break
		}
	}
	if position < 0 {
		return Links{}, fmt.Errorf("step %q is not part of kind %q mode %q", current, record.Kind, record.Mode)
	}

	landing := landingTarget(record)
	links := Links{
		Back:      backTarget(record, sequence, position, landing, entryPoint),
		Cancel:    routepath.JourneyCancel(record.Kind, record.Subject.PrisonerNumber, record.ID),
		OnSuccess: successTarget(record, sequence, position, landing),
	}
	return links, nil
}

// landingTarget is the subject's contact page, where the journey ends up
// after completion or abandonment.
func landingTarget(record *journey.Record) string {
	if record.Subject.PrisonerContactID != "" {
		return routepath.ContactDetails(record.Subject.PrisonerNumber, record.Subject.PrisonerContactID)
	}
	return routepath.ContactList(record.Subject.PrisonerNumber)
}

func backTarget(record *journey.Record, sequence []Step, position int, landing string, entryPoint string) string {
	if target := sanitizeEntryPoint(entryPoint); target != "" {
		return target
	}
	if position == 0 {
		return landing
	}
	return stepPath(record, sequence[position-1])
}

func successTarget(record *journey.Record, sequence []Step, position int, landing string) string {
	current := sequence[position]
	if current == StepCheckAnswers {
		return landing
	}
	next := sequence[position+1]
	if record.IsCheckingAnswers {
		// Choosing a new relationship type invalidates the relationship to
		// the prisoner, so that step must be revisited before returning to
		// check-answers.
		if current == StepSelectRelationshipType && next == StepSelectRelationshipToPrisoner {
			return stepPath(record, next)
		}
		return stepPath(record, StepCheckAnswers)
	}
	return stepPath(record, next)
}

func stepPath(record *journey.Record, step Step) string {
	return routepath.JourneyStep(record.Kind, record.Subject.PrisonerNumber, record.ID, string(step))
}

// sanitizeEntryPoint only honours same-site relative paths. Anything else
// would let a crafted link turn the back button into an open redirect.
func sanitizeEntryPoint(entryPoint string) string {
	entryPoint = strings.TrimSpace(entryPoint)
	if entryPoint == "" {
		return ""
	}
	if !strings.HasPrefix(entryPoint, "/") || strings.HasPrefix(entryPoint, "//") {
		return ""
	}
	return entryPoint
}
