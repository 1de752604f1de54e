// Package module defines the feature contract used by web composition.
package module

import "net/http"

// ResolvePermissions resolves the caseload permissions granted to a request.
type ResolvePermissions func(*http.Request) []string

// ResolveUserID resolves the authenticated user id for a request.
type ResolveUserID func(*http.Request) string

// ResolveLanguage returns the effective request language.
type ResolveLanguage func(*http.Request) string

// Dependencies bundles the cross-cutting resolvers composition hands to modules.
type Dependencies struct {
	ResolveUserID      ResolveUserID
	ResolveLanguage    ResolveLanguage
	ResolvePermissions ResolvePermissions
}

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}

// HealthReporter is an optional interface for modules that can report their
// operational availability. Modules with gateway dependencies implement this
// so the registry can derive service health without centralizing client knowledge.
type HealthReporter interface {
	Healthy() bool
}
