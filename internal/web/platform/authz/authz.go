// Package authz gates module routes on resolved caseload permissions.
package authz

import (
	"net/http"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/module"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/httpx"
	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/weberror"
)

// PermissionManageContacts authorizes every contacts journey route.
const PermissionManageContacts = "MANAGE_RESTRICTED_CONTACTS"

// Require rejects requests whose resolved permissions do not include
// permission. Permission failures happen before any journey logic runs.
func Require(permission string, deps module.Dependencies) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !granted(r, permission, deps.ResolvePermissions) {
				weberror.WriteAppError(w, r, http.StatusForbidden, deps)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func granted(r *http.Request, permission string, resolve module.ResolvePermissions) bool {
	if resolve == nil {
		return false
	}
	for _, have := range resolve(r) {
		if have == permission {
			return true
		}
	}
	return false
}
