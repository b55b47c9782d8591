// Package modulehandler provides a composable base for web module handlers.
//
// Modules share localization, page rendering, and error handling. This
// package holds that scaffold so modules embed it rather than duplicating it.
package modulehandler

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	apperrors "github.com/louisbranch/tabletop/internal/platform/errors"
	"github.com/louisbranch/tabletop/internal/platform/logging"
	webi18n "github.com/louisbranch/tabletop/internal/services/web/i18n"
	"github.com/louisbranch/tabletop/internal/services/web/platform/pagerender"
	"github.com/louisbranch/tabletop/internal/services/web/platform/weberror"
	webtemplates "github.com/louisbranch/tabletop/internal/services/web/templates"
)

// Base carries the shared handler dependencies.
type Base struct {
	logger *slog.Logger
}

// NewBase builds a handler base. A nil logger discards.
func NewBase(logger *slog.Logger) Base {
	return Base{logger: logging.OrDiscard(logger)}
}

// Logger returns the module logger.
func (b Base) Logger() *slog.Logger {
	return logging.OrDiscard(b.logger)
}

// PageLocalizer resolves a localizer and language tag from the request.
func (b Base) PageLocalizer(w http.ResponseWriter, r *http.Request) (webtemplates.Localizer, string) {
	return webi18n.ResolveLocalizer(w, r)
}

// WritePage renders a module page (HTMX-aware).
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, title string, statusCode int, fragment templ.Component) {
	loc, lang := b.PageLocalizer(w, r)
	b.WriteLocalizedPage(w, r, loc, lang, title, statusCode, fragment)
}

// WriteLocalizedPage renders a module page with an already resolved localizer.
func (b Base) WriteLocalizedPage(w http.ResponseWriter, r *http.Request, loc webtemplates.Localizer, lang, title string, statusCode int, fragment templ.Component) {
	err := pagerender.WriteModulePage(w, r, pagerender.ModulePage{
		Title:      title,
		StatusCode: statusCode,
		Lang:       lang,
		Loc:        loc,
		Fragment:   fragment,
	})
	if err != nil {
		b.Logger().ErrorContext(r.Context(), "render page", "path", r.URL.Path, "error", err)
		http.Error(w, webtemplates.T(loc, "error.generic"), http.StatusInternalServerError)
	}
}

// WriteFragment renders a bare component, used for in-place swaps.
func (b Base) WriteFragment(w http.ResponseWriter, r *http.Request, statusCode int, fragment templ.Component) {
	if err := pagerender.WriteFragment(w, r, statusCode, fragment); err != nil {
		b.Logger().ErrorContext(r.Context(), "render fragment", "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// WriteError renders a localized module error response.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	loc, lang := b.PageLocalizer(w, r)
	b.Logger().WarnContext(r.Context(), "module request failed", "path", r.URL.Path, "error", err)
	weberror.WriteModuleError(w, r, err, loc, lang)
}

// WriteNotFound renders the shared not-found response.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	b.WriteError(w, r, apperrors.EK(apperrors.KindNotFound, "error.not_found", "not found"))
}
