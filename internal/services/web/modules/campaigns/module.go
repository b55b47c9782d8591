// Package campaigns serves the campaign list, the create/edit wizard, delete
// confirmation, and art generation.
package campaigns

import (
	"github.com/go-chi/chi/v5"

	"github.com/louisbranch/tabletop/internal/services/shared/gateway"
	"github.com/louisbranch/tabletop/internal/services/shared/listview"
	"github.com/louisbranch/tabletop/internal/services/web/module"
	"github.com/louisbranch/tabletop/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/tabletop/internal/services/web/routepath"
)

// Module provides campaign routes.
type Module struct {
	gateway  gateway.CampaignGateway
	base     modulehandler.Base
	inflight *listview.InflightSet
}

// New returns a campaigns module with zero-value dependencies (degraded mode).
func New() Module {
	return Module{}
}

// NewWithGateway returns a campaigns module backed by gw. The in-flight set is
// shared with every request so concurrent art generations are rejected.
func NewWithGateway(gw gateway.CampaignGateway, base modulehandler.Base, inflight *listview.InflightSet) Module {
	return Module{gateway: gw, base: base, inflight: inflight}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "campaigns" }

// Healthy reports whether the campaigns module has an operational gateway.
func (m Module) Healthy() bool {
	if m.gateway == nil {
		return false
	}
	_, unavailable := m.gateway.(gateway.Unavailable)
	return !unavailable
}

// Mount wires campaign route handlers.
func (m Module) Mount() (module.Mount, error) {
	gw := m.gateway
	if gw == nil {
		gw = gateway.Unavailable{}
	}
	inflight := m.inflight
	if inflight == nil {
		inflight = listview.NewInflightSet()
	}
	h := handlers{Base: m.base, gateway: gw, inflight: inflight}

	r := chi.NewRouter()
	r.Get("/", h.handleIndex)
	r.Get("/new", h.handleCreate)
	r.Post("/new", h.handleCreateSubmit)
	r.Get(routepath.CampaignEditPattern, h.handleEdit)
	r.Post(routepath.CampaignEditPattern, h.handleEditSubmit)
	r.Get(routepath.CampaignDeletePattern, h.handleDeleteConfirm)
	r.Post(routepath.CampaignDeletePattern, h.handleDelete)
	r.Post(routepath.CampaignArtPattern, h.handleGenerateArt)
	r.NotFound(h.WriteNotFound)
	return module.Mount{Prefix: routepath.AppCampaigns, Handler: r}, nil
}
