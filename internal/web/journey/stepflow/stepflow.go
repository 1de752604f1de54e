// Package stepflow dispatches wizard screen requests to step controllers.
//
// Every wizard screen of every journey kind shares the same request shape: a
// GET renders the step with any replayed submission layered over saved
// answers, and a POST validates, applies, and redirects to the resolver's
// next target. The dispatcher owns that shape so step controllers only hold
// their own field logic.
package stepflow

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey/nav"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey/pending"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/module"
	apperrors "github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/errors"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/flash"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/formreplay"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/httpx"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/requestmeta"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/weberror"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/routepath"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/sessions"
	webtemplates "github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/templates"
)

// EntryPointParam is the query parameter carrying an explicit back target,
// set by check-answers change links so the back button returns there.
const EntryPointParam = "returnTo"

// ActionParam is the form field naming a same-page action such as adding or
// removing a collection entry. Action submissions bypass validation.
const ActionParam = "action"

// View bundles the per-request journey context handed to a step controller.
type View struct {
	Session *sessions.Session
	Record  *journey.Record
	Links   nav.Links
	Replay  formreplay.Replay
}

// Step is one wizard screen controller.
type Step interface {
	// Name is the step's URL segment within its journey kind.
	Name() nav.Step
	// Render writes the screen. Replayed submissions in view.Replay take
	// precedence over saved journey answers.
	Render(w http.ResponseWriter, r *http.Request, view View) error
	// Validate returns field errors for a submission, keyed by field name.
	// An empty map means the submission is acceptable.
	Validate(form url.Values) map[string]string
	// Apply commits a validated submission to the journey record.
	Apply(r *http.Request, view View, form url.Values) error
}

// ActionStep is an optional interface for steps with same-page actions.
// The returned redirect target defaults to the current screen when empty.
type ActionStep interface {
	Step
	Action(r *http.Request, view View, action string, form url.Values) (string, error)
}

// Finisher is an optional interface for terminal steps. Finish submits the
// journey to the backing service and names the landing target and success
// notice; the dispatcher removes the journey and redirects.
type Finisher interface {
	Finish(r *http.Request, view View, form url.Values) (string, flash.Notice, error)
}

// Option configures a Handler.
type Option func(*Handler)

// WithSchemePolicy sets the scheme trust policy used for replay and flash
// cookies.
func WithSchemePolicy(policy requestmeta.SchemePolicy) Option {
	return func(h *Handler) { h.policy = policy }
}

// Handler dispatches step requests for one journey kind. Routes mounting it
// must provide {prisonerNumber}, {journeyID}, and {step} path values.
type Handler struct {
	kind   journey.Kind
	deps   module.Dependencies
	policy requestmeta.SchemePolicy
	steps  map[nav.Step]Step
}

// NewHandler builds a step dispatcher for one journey kind.
func NewHandler(kind journey.Kind, deps module.Dependencies, opts ...Option) (*Handler, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown journey kind %q", kind)
	}
	h := &Handler{kind: kind, deps: deps, steps: make(map[nav.Step]Step)}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h, nil
}

// Register adds a step controller. Registering the same step name twice is a
// wiring bug and fails loudly.
func (h *Handler) Register(steps ...Step) error {
	for _, step := range steps {
		if step == nil {
			return fmt.Errorf("step is required")
		}
		name := step.Name()
		if name == "" {
			return fmt.Errorf("step name is required")
		}
		if _, exists := h.steps[name]; exists {
			return fmt.Errorf("step %q registered twice for kind %q", name, h.kind)
		}
		h.steps[name] = step
	}
	return nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.serveGet(w, r)
	case http.MethodPost:
		h.servePost(w, r)
	default:
		httpx.MethodNotAllowed("GET, POST")(w, r)
	}
}

func (h *Handler) serveGet(w http.ResponseWriter, r *http.Request) {
	step, view, ok := h.resolve(w, r)
	if !ok {
		return
	}
	if step.Name() == nav.StepCheckAnswers {
		// Reaching check-answers flips future continue targets back to it.
		view.Record.MarkCheckingAnswers()
	}
	view.Replay, _ = formreplay.ReadAndClear(w, r)
	if err := step.Render(w, r, view); err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
	}
}

func (h *Handler) servePost(w http.ResponseWriter, r *http.Request) {
	step, view, ok := h.resolve(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		weberror.WriteModuleError(w, r, apperrors.E(apperrors.KindInvalidInput, "parse form"), h.deps)
		return
	}
	form := r.PostForm

	if action := form.Get(ActionParam); action != "" {
		if actionStep, handles := step.(ActionStep); handles {
			h.serveAction(w, r, actionStep, view, action, form)
			return
		}
	}

	if fieldErrors := step.Validate(form); len(fieldErrors) > 0 {
		formreplay.WriteWithPolicy(w, r, formreplay.Replay{
			Values: replayValues(form),
			Errors: fieldErrors,
		}, h.policy)
		httpx.WriteRedirectWithFragment(w, r, selfTarget(r), webtemplates.ErrorSummaryID)
		return
	}

	if err := step.Apply(r, view, form); err != nil {
		weberror.WriteModuleError(w, r, mapStepError(err), h.deps)
		return
	}

	if finisher, terminal := step.(Finisher); terminal {
		landing, notice, err := finisher.Finish(r, view, form)
		if err != nil {
			weberror.WriteModuleError(w, r, mapStepError(err), h.deps)
			return
		}
		view.Session.Journeys.Remove(h.kind, view.Record.ID)
		flash.WriteWithPolicy(w, r, notice, h.policy)
		httpx.WriteRedirect(w, r, landing)
		return
	}

	view.Session.Journeys.Touch(h.kind, view.Record.ID)
	httpx.WriteRedirect(w, r, view.Links.OnSuccess)
}

func (h *Handler) serveAction(w http.ResponseWriter, r *http.Request, step ActionStep, view View, action string, form url.Values) {
	target, err := step.Action(r, view, action, form)
	if err != nil {
		weberror.WriteModuleError(w, r, mapStepError(err), h.deps)
		return
	}
	view.Session.Journeys.Touch(h.kind, view.Record.ID)
	if target == "" {
		target = selfTarget(r)
	}
	httpx.WriteRedirect(w, r, target)
}

// resolve locates the step controller and journey record for the request.
// A missing journey is not an error: the user lands back at the start of the
// flow with a fresh journey.
func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) (Step, View, bool) {
	session, ok := sessions.FromContext(r.Context())
	if !ok || session.Journeys == nil {
		weberror.WriteAppError(w, r, http.StatusInternalServerError, h.deps)
		return nil, View{}, false
	}
	step, ok := h.steps[nav.Step(r.PathValue("step"))]
	if !ok {
		weberror.WriteAppError(w, r, http.StatusNotFound, h.deps)
		return nil, View{}, false
	}
	record, ok := session.Journeys.Get(h.kind, r.PathValue("journeyID"))
	if !ok {
		httpx.WriteRedirect(w, r, routepath.JourneyStart(h.kind, r.PathValue("prisonerNumber")))
		return nil, View{}, false
	}
	links, err := nav.Resolve(record, step.Name(), r.URL.Query().Get(EntryPointParam))
	if err != nil {
		weberror.WriteAppError(w, r, http.StatusNotFound, h.deps)
		return nil, View{}, false
	}
	return step, View{Session: session, Record: record, Links: links}, true
}

func selfTarget(r *http.Request) string {
	target := r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	return target
}

// replayValues copies the submission for the replay cookie, dropping the
// action button value so replays never re-trigger it.
func replayValues(form url.Values) map[string][]string {
	values := make(map[string][]string, len(form))
	for name, fieldValues := range form {
		if name == ActionParam {
			continue
		}
		values[name] = append([]string(nil), fieldValues...)
	}
	return values
}

func mapStepError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pending.ErrIndexOutOfRange) {
		return apperrors.E(apperrors.KindNotFound, "entry index out of range")
	}
	return err
}
