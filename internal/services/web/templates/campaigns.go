package templates

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/tabletop/internal/services/shared/entity"
	"github.com/louisbranch/tabletop/internal/services/shared/listview"
	"github.com/louisbranch/tabletop/internal/services/web/routepath"
)

// CampaignCardOptions carries per-item list state.
type CampaignCardOptions struct {
	// Actions adds edit, delete, and generate-art controls.
	Actions bool
	// Busy marks an art generation in flight.
	Busy bool
	// ActionError is the last failed action on the card.
	ActionError string
}

// CampaignCard renders one campaign.
func CampaignCard(c entity.Campaign, opts CampaignCardOptions, loc Localizer) templ.Component {
	return component(func(ctx context.Context, h *html) {
		name := strings.TrimSpace(c.Name)
		h.raw(`<article class="card campaign-card"`)
		if !c.ID.IsZero() {
			h.attr("id", "campaign-"+c.ID.String())
			h.attr("data-campaign-id", c.ID.String())
		}
		h.raw(">")
		artImage(h, c.ArtURL, name)
		h.element("h3", "card-title", name)
		if description := strings.TrimSpace(c.Description); description != "" {
			h.element("p", "description", description)
		} else {
			h.element("p", "description muted", T(loc, "campaigns.no_description"))
		}
		if opts.Actions && !c.ID.IsZero() {
			campaignActions(ctx, h, c, opts, loc)
		}
		h.raw("</article>")
	})
}

func campaignActions(ctx context.Context, h *html, c entity.Campaign, opts CampaignCardOptions, loc Localizer) {
	id := c.ID.String()
	h.raw(`<div class="card-actions"><a`)
	h.url("href", routepath.AppCampaignEdit(id))
	h.raw(">")
	h.text(T(loc, "campaigns.edit"))
	h.raw("</a><a")
	h.url("href", routepath.AppCampaignDelete(id))
	h.url("hx-post", routepath.AppCampaignDelete(id))
	h.attr("hx-confirm", T(loc, "campaigns.delete.prompt", c.Name))
	h.attr("hx-target", "#campaign-"+id)
	h.raw(` hx-swap="outerHTML">`)
	h.text(T(loc, "campaigns.delete"))
	h.raw(`</a><form method="post"`)
	h.url("action", routepath.AppCampaignGenerateArt(id))
	h.url("hx-post", routepath.AppCampaignGenerateArt(id))
	h.attr("hx-target", "#campaign-"+id)
	h.raw(` hx-swap="outerHTML"><button type="submit"`)
	if opts.Busy {
		h.raw(` disabled aria-busy="true">`)
		h.text(T(loc, "campaigns.generating_art"))
	} else {
		h.raw(">")
		h.text(T(loc, "campaigns.generate_art"))
	}
	h.raw("</button></form></div>")
	h.render(ctx, InlineError(opts.ActionError))
}

// CampaignGrid renders the list model.
func CampaignGrid(m listview.Model[entity.Campaign], loc Localizer) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.render(ctx, InlineError(m.Error))
		if len(m.Items) == 0 {
			if m.State == listview.StateReady {
				h.element("p", "empty", T(loc, "campaigns.empty"))
			}
			return
		}
		h.raw(`<div class="grid campaign-grid">`)
		h.render(ctx, CampaignCards(m, loc))
		h.raw("</div>")
	})
}

// CampaignCards renders the cards of m with their list state and no
// surrounding grid. An empty model renders nothing.
func CampaignCards(m listview.Model[entity.Campaign], loc Localizer) templ.Component {
	return component(func(ctx context.Context, h *html) {
		for _, c := range m.Items {
			h.render(ctx, CampaignCard(c, CampaignCardOptions{
				Actions:     true,
				Busy:        m.Busy(c.ID),
				ActionError: m.ActionErrors[c.ID],
			}, loc))
		}
	})
}

// CampaignListPage renders the campaign index.
func CampaignListPage(m listview.Model[entity.Campaign], loc Localizer) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<header class="page-header">`)
		h.element("h1", "", T(loc, "campaigns.title"))
		h.raw("<a")
		h.url("href", routepath.AppCampaignsNew)
		h.raw(` class="button">`)
		h.text(T(loc, "campaigns.new"))
		h.raw("</a></header>")
		h.render(ctx, CampaignGrid(m, loc))
	})
}

// CampaignDeletePage asks for confirmation before deleting c.
func CampaignDeletePage(c entity.Campaign, errMessage string, loc Localizer) templ.Component {
	return component(func(ctx context.Context, h *html) {
		id := c.ID.String()
		h.raw(`<section class="confirm">`)
		h.element("h1", "", T(loc, "campaigns.delete.title"))
		h.element("p", "", T(loc, "campaigns.delete.prompt", c.Name))
		h.render(ctx, InlineError(errMessage))
		h.raw(`<form method="post"`)
		h.url("action", routepath.AppCampaignDelete(id))
		h.raw(`><button type="submit" class="danger">`)
		h.text(T(loc, "campaigns.delete.confirm"))
		h.raw("</button><a")
		h.url("href", routepath.AppCampaigns)
		h.raw(">")
		h.text(T(loc, "campaigns.delete.cancel"))
		h.raw("</a></form></section>")
	})
}
