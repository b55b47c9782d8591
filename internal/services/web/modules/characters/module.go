// Package characters serves the character list and the create/edit form.
package characters

import (
	"github.com/go-chi/chi/v5"

	"github.com/louisbranch/tabletop/internal/services/shared/gateway"
	"github.com/louisbranch/tabletop/internal/services/web/module"
	"github.com/louisbranch/tabletop/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/tabletop/internal/services/web/routepath"
)

// Module provides character routes.
type Module struct {
	gateway gateway.CharacterGateway
	base    modulehandler.Base
}

// New returns a characters module with zero-value dependencies (degraded mode).
func New() Module {
	return Module{}
}

// NewWithGateway returns a characters module backed by gw.
func NewWithGateway(gw gateway.CharacterGateway, base modulehandler.Base) Module {
	return Module{gateway: gw, base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "characters" }

// Healthy reports whether the characters module has an operational gateway.
func (m Module) Healthy() bool {
	if m.gateway == nil {
		return false
	}
	_, unavailable := m.gateway.(gateway.Unavailable)
	return !unavailable
}

// Mount wires character route handlers.
func (m Module) Mount() (module.Mount, error) {
	gw := m.gateway
	if gw == nil {
		gw = gateway.Unavailable{}
	}
	h := handlers{Base: m.base, gateway: gw}

	r := chi.NewRouter()
	r.Get("/", h.handleIndex)
	r.Get("/new", h.handleCreate)
	r.Post("/new", h.handleCreateSubmit)
	r.Get(routepath.CharacterEditPattern, h.handleEdit)
	r.Post(routepath.CharacterEditPattern, h.handleEditSubmit)
	r.NotFound(h.WriteNotFound)
	return module.Mount{Prefix: routepath.AppCharacters, Handler: r}, nil
}
