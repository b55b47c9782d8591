// Package assistant serves the voice-assistant transcript panel: a page shell,
// a one-shot message renderer, and a websocket stream that re-renders
// messages as their content grows.
package assistant

import (
	"context"

	"github.com/go-chi/chi/v5"
	"golang.org/x/net/websocket"

	"github.com/louisbranch/tabletop/internal/services/web/module"
	"github.com/louisbranch/tabletop/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/tabletop/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/tabletop/internal/services/web/templates"
)

// Renderer turns one assistant message into HTML.
type Renderer interface {
	Render(ctx context.Context, content string, loc webtemplates.Localizer) (string, error)
}

// Module provides assistant transcript routes.
type Module struct {
	renderer Renderer
	base     modulehandler.Base
}

// New returns an assistant module without a renderer (degraded mode).
func New() Module {
	return Module{}
}

// NewWithRenderer returns an assistant module backed by renderer.
func NewWithRenderer(renderer Renderer, base modulehandler.Base) Module {
	return Module{renderer: renderer, base: base}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "assistant" }

// Healthy reports whether a transcript renderer is configured.
func (m Module) Healthy() bool {
	return m.renderer != nil
}

// Mount wires assistant route handlers.
func (m Module) Mount() (module.Mount, error) {
	h := handlers{Base: m.base, renderer: m.renderer}

	r := chi.NewRouter()
	r.Get("/", h.handlePage)
	r.Post("/render", h.handleRender)
	r.Handle("/ws", websocket.Handler(h.handleStream))
	r.NotFound(h.WriteNotFound)
	return module.Mount{Prefix: routepath.AppAssistant, Handler: r}, nil
}
