// Package contacts provides the prisoner-contact journey routes: the wizard
// flows for adding a contact, changing a relationship, editing employments,
// and adding or deleting addresses.
package contacts

import (
	"fmt"
	"net/http"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/journey/stepflow"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/module"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/authz"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/requestmeta"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/routepath"
)

// Option configures the contacts module.
type Option func(*Module)

// WithGateway sets the contacts backend gateway.
func WithGateway(gateway ContactsGateway) Option {
	return func(m *Module) { m.gateway = gateway }
}

// WithSchemePolicy sets the scheme trust policy for the module's cookies.
func WithSchemePolicy(policy requestmeta.SchemePolicy) Option {
	return func(m *Module) { m.policy = policy }
}

// Module provides the contacts journey routes.
type Module struct {
	gateway ContactsGateway
	deps    module.Dependencies
	policy  requestmeta.SchemePolicy
}

// New returns a contacts module. Without a gateway option the module mounts
// in degraded mode: pages render but terminal saves report unavailable.
func New(deps module.Dependencies, opts ...Option) Module {
	m := Module{deps: deps}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "contacts" }

// Healthy reports whether the contacts module has an operational gateway.
func (m Module) Healthy() bool {
	if m.gateway == nil {
		return false
	}
	_, unavailable := m.gateway.(unavailableGateway)
	return !unavailable
}

// Mount wires the contacts journey routes.
func (m Module) Mount() (module.Mount, error) {
	gateway := m.gateway
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	base := stepBase{deps: m.deps}
	h := handlers{stepBase: base, gateway: gateway, policy: m.policy}

	flows, err := m.stepHandlers(base, gateway)
	if err != nil {
		return module.Mount{}, err
	}

	mux := http.NewServeMux()
	registerRoutes(mux, h, flows)
	guarded := authz.Require(authz.PermissionManageContacts, m.deps)(mux)
	return module.Mount{Prefix: routepath.PrisonerPrefix, Handler: guarded}, nil
}

// stepHandlers builds one dispatcher per journey kind with its steps
// registered.
func (m Module) stepHandlers(base stepBase, gateway ContactsGateway) (map[journey.Kind]*stepflow.Handler, error) {
	steps := map[journey.Kind][]stepflow.Step{
		journey.KindAddContact: {
			nameStep{base},
			dobStep{base},
			relationshipTypeStep{base},
			relationshipToPrisonerStep{base},
			addressesStep{base},
			addContactCheckAnswersStep{stepBase: base, gateway: gateway},
		},
		journey.KindChangeRelationshipType: {
			relationshipTypeStep{base},
			relationshipToPrisonerStep{base},
			relationshipCheckAnswersStep{stepBase: base, gateway: gateway},
		},
		journey.KindUpdateEmployments: {
			employmentsStep{base},
			employmentsCheckAnswersStep{stepBase: base, gateway: gateway},
		},
		journey.KindAddAddress: {
			enterAddressStep{base},
			addressCheckAnswersStep{stepBase: base, gateway: gateway},
		},
	}

	flows := make(map[journey.Kind]*stepflow.Handler, len(steps))
	for kind, kindSteps := range steps {
		handler, err := stepflow.NewHandler(kind, m.deps, stepflow.WithSchemePolicy(m.policy))
		if err != nil {
			return nil, fmt.Errorf("build %s dispatcher: %w", kind, err)
		}
		if err := handler.Register(kindSteps...); err != nil {
			return nil, fmt.Errorf("register %s steps: %w", kind, err)
		}
		flows[kind] = handler
	}
	return flows, nil
}
