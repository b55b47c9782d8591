// Package sessions serves session detail pages.
package sessions

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/louisbranch/tabletop/internal/services/shared/entity"
	"github.com/louisbranch/tabletop/internal/services/shared/gateway"
	"github.com/louisbranch/tabletop/internal/services/web/module"
	"github.com/louisbranch/tabletop/internal/services/web/platform/httpx"
	"github.com/louisbranch/tabletop/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/tabletop/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/tabletop/internal/services/web/templates"
)

// Module provides session routes.
type Module struct {
	gateway gateway.SessionGateway
	base    modulehandler.Base
}

// New returns a sessions module with zero-value dependencies (degraded mode).
func New() Module {
	return Module{}
}

// NewWithGateway returns a sessions module backed by gw.
func NewWithGateway(gw gateway.SessionGateway, base modulehandler.Base) Module {
	return Module{gateway: gw, base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "sessions" }

// Healthy reports whether the sessions module has an operational gateway.
func (m Module) Healthy() bool {
	if m.gateway == nil {
		return false
	}
	_, unavailable := m.gateway.(gateway.Unavailable)
	return !unavailable
}

// Mount wires session route handlers.
func (m Module) Mount() (module.Mount, error) {
	gw := m.gateway
	if gw == nil {
		gw = gateway.Unavailable{}
	}
	base := m.base

	r := chi.NewRouter()
	r.Get(routepath.SessionPattern, func(w http.ResponseWriter, r *http.Request) {
		id := entity.ID(strings.TrimSpace(chi.URLParam(r, routepath.SessionIDParam)))
		if id.IsZero() {
			base.WriteNotFound(w, r)
			return
		}
		s, err := gw.Session(httpx.RequestContext(r), id)
		if err != nil {
			base.WriteError(w, r, err)
			return
		}
		loc, lang := base.PageLocalizer(w, r)
		title := strings.TrimSpace(s.Name)
		if title == "" {
			title = webtemplates.T(loc, "session.unnamed")
		}
		base.WriteLocalizedPage(w, r, loc, lang, title, http.StatusOK, webtemplates.SessionDetailPage(s, loc))
	})
	r.NotFound(base.WriteNotFound)
	return module.Mount{Prefix: routepath.AppSessions, Handler: r}, nil
}
