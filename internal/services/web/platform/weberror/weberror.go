// Package weberror renders shared error responses for web modules. Errors are
// always rendered inline in the page or fragment that failed.
package weberror

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	apperrors "github.com/louisbranch/tabletop/internal/platform/errors"
	"github.com/louisbranch/tabletop/internal/services/web/platform/pagerender"
	webtemplates "github.com/louisbranch/tabletop/internal/services/web/templates"
)

// PublicMessage resolves a user-safe localized error message. Validation and
// permission failures carry the backend's own message; infrastructure
// failures use catalog copy.
func PublicMessage(loc webtemplates.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if key := apperrors.LocalizationKey(err); key != "" {
		if localized := strings.TrimSpace(webtemplates.T(loc, key)); localized != "" && localized != key {
			return localized
		}
	}
	switch apperrors.KindOf(err) {
	case apperrors.KindInvalidInput, apperrors.KindForbidden, apperrors.KindUnauthorized, apperrors.KindConflict:
		return apperrors.Message(err, webtemplates.T(loc, "error.generic"))
	case apperrors.KindNotFound:
		return webtemplates.T(loc, "error.not_found")
	case apperrors.KindUnavailable:
		return webtemplates.T(loc, "error.unavailable")
	case apperrors.KindTransport:
		return apperrors.Message(err, webtemplates.T(loc, "error.generic"))
	default:
		return webtemplates.T(loc, "error.generic")
	}
}

// WriteModuleError writes a localized error page, or fragment for HTMX
// requests, with the status mapped from err.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, loc webtemplates.Localizer, lang string) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	message := PublicMessage(loc, err)
	page := pagerender.ModulePage{
		Title:      http.StatusText(statusCode),
		StatusCode: statusCode,
		Lang:       lang,
		Loc:        loc,
		Fragment:   errorState(message),
	}
	if renderErr := pagerender.WriteModulePage(w, r, page); renderErr != nil {
		http.Error(w, message, statusCode)
	}
}

func errorState(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section id="app-error-state">`); err != nil {
			return err
		}
		if err := webtemplates.InlineError(message).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</section>")
		return err
	})
}
