package campaigns

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/louisbranch/tabletop/internal/platform/errors"
	"github.com/louisbranch/tabletop/internal/services/shared/entity"
	"github.com/louisbranch/tabletop/internal/services/shared/gateway"
	"github.com/louisbranch/tabletop/internal/services/shared/listview"
	"github.com/louisbranch/tabletop/internal/services/web/platform/flash"
	"github.com/louisbranch/tabletop/internal/services/web/platform/httpx"
	"github.com/louisbranch/tabletop/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/tabletop/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/tabletop/internal/services/web/templates"
)

type campaignList = listview.Model[entity.Campaign]

type handlers struct {
	modulehandler.Base
	gateway  gateway.CampaignGateway
	inflight *listview.InflightSet
}

func (h handlers) routeCampaignID(r *http.Request) (entity.ID, bool) {
	id := entity.ID(strings.TrimSpace(chi.URLParam(r, routepath.CampaignIDParam)))
	return id, !id.IsZero()
}

// statusForFailure keeps HTMX swaps at 200 so the inline error replaces the
// target; full page loads carry the mapped status.
func statusForFailure(r *http.Request, err error) int {
	if err == nil || httpx.IsHTMXRequest(r) {
		return http.StatusOK
	}
	return apperrors.HTTPStatus(err)
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.RequestContext(r)
	loc, lang := h.PageLocalizer(w, r)

	m, eff := listview.Update(campaignList{}, listview.Mounted{})
	if eff.Kind == listview.EffectFetch {
		items, err := h.gateway.ListCampaigns(ctx)
		if err != nil {
			h.Logger().WarnContext(ctx, "list campaigns", "error", err)
			m, _ = listview.Update(m, listview.LoadFailed{Err: err})
		} else {
			m, _ = listview.Update(m, listview.Loaded[entity.Campaign]{Items: items})
		}
	}
	m.Inflight = h.inflight.Snapshot()
	h.WriteLocalizedPage(w, r, loc, lang, webtemplates.T(loc, "campaigns.title"), http.StatusOK, webtemplates.CampaignListPage(m, loc))
}

func (h handlers) handleDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	id, ok := h.routeCampaignID(r)
	if !ok {
		h.WriteNotFound(w, r)
		return
	}
	c, err := h.gateway.Campaign(httpx.RequestContext(r), id)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc, lang := h.PageLocalizer(w, r)
	h.WriteLocalizedPage(w, r, loc, lang, webtemplates.T(loc, "campaigns.delete.title"), http.StatusOK, webtemplates.CampaignDeletePage(c, "", loc))
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.routeCampaignID(r)
	if !ok {
		h.WriteNotFound(w, r)
		return
	}
	ctx := httpx.RequestContext(r)

	// The confirmation page is the pending state; posting it confirms.
	m := campaignList{State: listview.StateReady, Items: []entity.Campaign{{ID: id}}}
	m, _ = listview.Update(m, listview.DeleteRequested{ID: id})
	m, eff := listview.Update(m, listview.DeleteConfirmed{})
	if eff.Kind != listview.EffectDelete {
		h.WriteNotFound(w, r)
		return
	}
	err := h.gateway.DeleteCampaign(ctx, eff.ID)
	if err == nil {
		if httpx.IsHTMXRequest(r) {
			// The card's outerHTML swap drops it from the rendered list; the
			// remaining items are not re-fetched.
			m = listview.ApplyServerAck(m, listview.DeleteSucceeded{ID: id})
			loc, _ := h.PageLocalizer(w, r)
			h.WriteFragment(w, r, http.StatusOK, webtemplates.CampaignCards(m, loc))
			return
		}
		flash.Write(w, r, flash.Success("flash.campaign_deleted"))
		httpx.WriteRedirect(w, r, routepath.AppCampaigns)
		return
	}
	h.Logger().WarnContext(ctx, "delete campaign", "campaign_id", id.String(), "error", err)
	m, _ = listview.Update(m, listview.DeleteFailed{ID: id, Err: err})

	c, fetchErr := h.gateway.Campaign(ctx, id)
	if fetchErr != nil {
		c = entity.Campaign{ID: id, Name: id.String()}
	}
	loc, lang := h.PageLocalizer(w, r)
	if httpx.IsHTMXRequest(r) {
		h.WriteFragment(w, r, http.StatusOK, webtemplates.CampaignCard(c, webtemplates.CampaignCardOptions{
			Actions:     true,
			ActionError: m.Error,
		}, loc))
		return
	}
	h.WriteLocalizedPage(w, r, loc, lang, webtemplates.T(loc, "campaigns.delete.title"), statusForFailure(r, err), webtemplates.CampaignDeletePage(c, m.Error, loc))
}

func (h handlers) handleGenerateArt(w http.ResponseWriter, r *http.Request) {
	id, ok := h.routeCampaignID(r)
	if !ok {
		h.WriteNotFound(w, r)
		return
	}
	ctx := httpx.RequestContext(r)
	if !h.inflight.TryStart(id) {
		h.WriteError(w, r, apperrors.EK(apperrors.KindConflict, "error.busy", "art generation already running"))
		return
	}
	defer h.inflight.Done(id)

	m := campaignList{State: listview.StateReady, Items: []entity.Campaign{{ID: id}}}
	m, eff := listview.Update(m, listview.ActionStarted{ID: id})
	if eff.Kind != listview.EffectAction {
		h.WriteNotFound(w, r)
		return
	}
	updated, err := h.gateway.GenerateCampaignArt(ctx, eff.ID)
	if err != nil {
		h.Logger().WarnContext(ctx, "generate campaign art", "campaign_id", id.String(), "error", err)
		if !httpx.IsHTMXRequest(r) {
			h.WriteError(w, r, err)
			return
		}
		m, _ = listview.Update(m, listview.ActionFailed{ID: id, Err: err})
		if current, fetchErr := h.gateway.Campaign(ctx, id); fetchErr == nil {
			m.Items = []entity.Campaign{current}
		}
	} else {
		if !httpx.IsHTMXRequest(r) {
			httpx.WriteRedirect(w, r, routepath.AppCampaigns)
			return
		}
		m, _ = listview.Update(m, listview.ActionCompleted[entity.Campaign]{Item: updated})
	}

	item, _ := m.Find(id)
	loc, _ := h.PageLocalizer(w, r)
	h.WriteFragment(w, r, http.StatusOK, webtemplates.CampaignCard(item, webtemplates.CampaignCardOptions{
		Actions:     true,
		Busy:        m.Busy(id),
		ActionError: m.ActionErrors[id],
	}, loc))
}
