// Package weberror renders shared app-shell error responses for web modules.
package weberror

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/module"
	apperrors "github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/errors"
	webi18n "github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/platform/i18n"
	webtemplates "github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/templates"
)

// ShouldRenderAppError reports whether status should use app error-page UX.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound ||
		statusCode == http.StatusForbidden ||
		statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe error message for err.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	if text := strings.TrimSpace(http.StatusText(statusCode)); text != "" {
		return text
	}
	return http.StatusText(http.StatusInternalServerError)
}

// WriteAppError writes a localized error page response.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, deps module.Dependencies) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}

	copySet := webi18n.Journey(resolveTag(r, deps.ResolveLanguage))
	title := copySet.ServerErrorTitle
	body := ""
	switch statusCode {
	case http.StatusNotFound:
		title = copySet.NotFoundTitle
		body = copySet.NotFoundBody
	case http.StatusForbidden:
		title = copySet.ForbiddenTitle
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := webtemplates.Render(r.Context(), w, webtemplates.ErrorPage(title, body)); err != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}

// WriteModuleError writes a module-safe error response for err.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, deps module.Dependencies) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if ShouldRenderAppError(statusCode) {
		WriteAppError(w, r, statusCode, deps)
		return
	}
	http.Error(w, PublicMessage(err), statusCode)
}

func resolveTag(r *http.Request, resolve module.ResolveLanguage) language.Tag {
	if r == nil || resolve == nil {
		return language.MustParse("en-GB")
	}
	tag, err := language.Parse(strings.TrimSpace(resolve(r)))
	if err != nil {
		return language.MustParse("en-GB")
	}
	return tag
}
