package contacts

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey/stepflow"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/module"
	webi18n "github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/i18n"
	webtemplates "github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/templates"
)

// stepBase carries the cross-cutting resolvers every step controller shares.
type stepBase struct {
	deps module.Dependencies
}

func (b stepBase) localeTag(r *http.Request) language.Tag {
	if r == nil || b.deps.ResolveLanguage == nil {
		return language.MustParse("en-GB")
	}
	tag, err := language.Parse(strings.TrimSpace(b.deps.ResolveLanguage(r)))
	if err != nil {
		return language.MustParse("en-GB")
	}
	return tag
}

func (b stepBase) copyFor(r *http.Request) webi18n.JourneyCopy {
	return webi18n.Journey(b.localeTag(r))
}

// writeForm renders a wizard screen, filling the shared navigation and error
// chrome from the resolved links and any replayed submission.
func (b stepBase) writeForm(w http.ResponseWriter, r *http.Request, view stepflow.View, form webtemplates.FormView) error {
	copySet := b.copyFor(r)
	if form.ErrorTitle == "" {
		form.ErrorTitle = copySet.ErrorSummaryTitle
	}
	if form.SubmitLabel == "" {
		form.SubmitLabel = copySet.ContinueLabel
	}
	form.BackURL = view.Links.Back
	form.BackLabel = copySet.BackLabel
	form.CancelURL = view.Links.Cancel
	form.CancelLabel = copySet.CancelLabel
	if len(form.Errors) == 0 && view.Replay.HasErrors() {
		form.Errors = view.Replay.Errors
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return webtemplates.Render(r.Context(), w, webtemplates.FormPage(form))
}

// fieldWithReplay resolves a rendered field value: the replayed submission
// wins over the saved journey answer.
func fieldWithReplay(view stepflow.View, name string, saved string) string {
	if len(view.Replay.Values) == 0 {
		return saved
	}
	if values, ok := view.Replay.Values[name]; ok {
		if len(values) > 0 {
			return values[0]
		}
		return ""
	}
	if view.Replay.HasErrors() {
		// A rejected submission replaces the whole form, so fields absent
		// from it were submitted blank.
		return ""
	}
	return saved
}

