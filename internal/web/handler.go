package web

import (
	"io"
	"net/http"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/module"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/modules/contacts"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/httpx"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/requestmeta"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/routepath"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/sessions"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/storage"
)

// NewHandler assembles the full HTTP handler: the contacts module mounted
// behind the session middleware, plus the health endpoint.
func NewHandler(config Config, backend storage.SessionStore, opts ...Option) (http.Handler, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return newHandler(config, backend, o)
}

func newHandler(config Config, backend storage.SessionStore, o options) (http.Handler, error) {
	deps := defaultDependencies()
	if o.deps != nil {
		deps = *o.deps
	}
	policy := requestmeta.SchemePolicy{TrustForwardedProto: config.TrustForwardedProto}

	managerOpts := []sessions.Option{sessions.WithSchemePolicy(policy)}
	if config.JourneyCapacity > 0 {
		managerOpts = append(managerOpts, sessions.WithJourneyOptions(journey.WithCapacity(config.JourneyCapacity)))
	}
	manager := sessions.NewManager(backend, managerOpts...)

	contactsOpts := []contacts.Option{contacts.WithSchemePolicy(policy)}
	if o.gateway != nil {
		contactsOpts = append(contactsOpts, contacts.WithGateway(o.gateway))
	}
	contactsModule := contacts.New(deps, contactsOpts...)
	mount, err := contactsModule.Mount()
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+routepath.Health, healthHandler(contactsModule))
	mux.Handle(mount.Prefix, manager.Middleware()(mount.Handler))

	return httpx.Chain(mux, httpx.RecoverPanic(), httpx.RequestID()), nil
}

func healthHandler(modules ...module.Module) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, m := range modules {
			reporter, ok := m.(module.HealthReporter)
			if ok && !reporter.Healthy() {
				http.Error(w, "unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	}
}
