package web

import (
	"net/http"
	"strings"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/module"
)

// Authentication is owned by the fronting proxy; it forwards the signed-in
// user and their roles as headers. These defaults read them.
const (
	userHeader  = "X-Auth-Username"
	rolesHeader = "X-Auth-Roles"
)

func defaultDependencies() module.Dependencies {
	return module.Dependencies{
		ResolveUserID:      resolveUserIDFromHeader,
		ResolveLanguage:    resolveLanguageFromRequest,
		ResolvePermissions: resolvePermissionsFromHeader,
	}
}

func resolveUserIDFromHeader(r *http.Request) string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(r.Header.Get(userHeader))
}

func resolvePermissionsFromHeader(r *http.Request) []string {
	if r == nil {
		return nil
	}
	raw := r.Header.Get(rolesHeader)
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var permissions []string
	for _, role := range strings.Split(raw, ",") {
		role = strings.TrimSpace(role)
		if role != "" {
			permissions = append(permissions, role)
		}
	}
	return permissions
}

func resolveLanguageFromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}
	if cookie, err := r.Cookie("lang"); err == nil && cookie != nil {
		if value := strings.TrimSpace(cookie.Value); value != "" {
			return value
		}
	}
	accept := r.Header.Get("Accept-Language")
	if idx := strings.IndexAny(accept, ",;"); idx >= 0 {
		accept = accept[:idx]
	}
	return strings.TrimSpace(accept)
}
