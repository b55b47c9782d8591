package templates

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/tabletop/internal/services/web/routepath"
)

// PageContext provides shared layout context for pages.
type PageContext struct {
	Title       string
	Lang        string
	Loc         Localizer
	CurrentPath string
	// Notice is a one-time message shown above the page.
	Notice *Notice
}

// Notice is a rendered one-time message.
type Notice struct {
	Kind    string
	Message string
}

// Layout renders the full document shell around its children.
func Layout(page PageContext) templ.Component {
	return component(func(ctx context.Context, h *html) {
		lang := strings.TrimSpace(page.Lang)
		if lang == "" {
			lang = "en"
		}
		title := T(page.Loc, "app.name")
		if strings.TrimSpace(page.Title) != "" {
			title = T(page.Loc, "title.page", page.Title)
		}
		h.raw("<!doctype html><html")
		h.attr("lang", lang)
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.text(title)
		h.raw(`</title><script src="https://unpkg.com/htmx.org@2.0.4" defer></script></head><body><nav class="app-nav">`)
		navLink(h, page, routepath.AppCampaigns, "nav.campaigns")
		navLink(h, page, routepath.AppCharacters, "nav.characters")
		navLink(h, page, routepath.AppAssistant, "nav.assistant")
		h.raw(`</nav>`)
		if n := page.Notice; n != nil && n.Message != "" {
			h.raw(`<div role="status"`)
			h.attr("class", "app-notice app-notice-"+n.Kind)
			h.raw(">")
			h.text(n.Message)
			h.raw("</div>")
		}
		h.raw(`<main id="main">`)
		h.render(ctx, Main())
		h.raw("</main></body></html>")
	})
}

// Main renders the swappable main region, used alone for HTMX requests.
func Main() templ.Component {
	return component(func(ctx context.Context, h *html) {
		children := templ.GetChildren(ctx)
		h.render(templ.ClearChildren(ctx), children)
	})
}

func navLink(h *html, page PageContext, href, key string) {
	h.raw("<a")
	h.url("href", href)
	if page.CurrentPath == href || strings.HasPrefix(page.CurrentPath, href+"/") {
		h.raw(` aria-current="page"`)
	}
	h.raw(">")
	h.text(T(page.Loc, key))
	h.raw("</a>")
}
