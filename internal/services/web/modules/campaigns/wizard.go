package campaigns

import (
	"context"
	"net/http"

	"github.com/louisbranch/tabletop/internal/services/shared/entity"
	"github.com/louisbranch/tabletop/internal/services/shared/form"
	"github.com/louisbranch/tabletop/internal/services/shared/wizard"
	"github.com/louisbranch/tabletop/internal/services/web/platform/flash"
	"github.com/louisbranch/tabletop/internal/services/web/platform/httpx"
	"github.com/louisbranch/tabletop/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/tabletop/internal/services/web/templates"
)

const fieldDescription = "description"

// runWizard applies msg and performs the effects it requests until the wizard
// settles. It returns the last gateway failure, if any.
func (h handlers) runWizard(ctx context.Context, m wizard.Model, msg form.Msg) (wizard.Model, wizard.Effect, error) {
	var lastErr error
	for {
		next, eff := wizard.Update(m, msg)
		m = next
		switch eff.Kind {
		case form.EffectFetch:
			c, err := h.gateway.Campaign(ctx, eff.ID)
			if err != nil {
				lastErr = err
				msg = form.LoadFailed{ID: eff.ID, Err: err}
				continue
			}
			msg = form.Loaded[form.CampaignDraft]{ID: eff.ID, Draft: form.CampaignDraftFrom(c)}
		case form.EffectSubmit:
			c, err := h.submit(ctx, eff)
			if err != nil {
				lastErr = err
				msg = form.SubmitFailed{Err: err}
				continue
			}
			msg = form.SubmitSucceeded{ID: c.ID}
		default:
			return m, eff, lastErr
		}
	}
}

func (h handlers) submit(ctx context.Context, eff wizard.Effect) (entity.Campaign, error) {
	input := eff.Draft.Payload()
	if eff.ID.IsZero() {
		return h.gateway.CreateCampaign(ctx, input)
	}
	return h.gateway.UpdateCampaign(ctx, eff.ID, input)
}

// restoreWizard rebuilds the wizard from the posted step. Basics posts carry
// the typed draft; Review posts carry it in hidden fields, so passing Next
// again re-validates before any commit.
func (h handlers) restoreWizard(ctx context.Context, id entity.ID, op string, draft form.CampaignDraft) (wizard.Model, wizard.Effect, error) {
	var m wizard.Model
	if id.IsZero() {
		m, _ = wizard.Update(m, wizard.OpenCreate())
	} else {
		m, _ = wizard.Update(m, wizard.OpenEdit(id))
		m, _ = wizard.Update(m, form.Loaded[form.CampaignDraft]{ID: id, Draft: draft})
	}
	m, _ = wizard.Update(m, form.Edit[form.CampaignDraft]{Draft: draft})

	switch op {
	case webtemplates.WizardClose:
		return h.runWizard(ctx, m, wizard.Close{})
	case webtemplates.WizardBack:
		m, _ = wizard.Update(m, wizard.Next{})
		return h.runWizard(ctx, m, wizard.Back{})
	case webtemplates.WizardSubmit:
		m, _ = wizard.Update(m, wizard.Next{})
		return h.runWizard(ctx, m, form.Submit{})
	default:
		return h.runWizard(ctx, m, wizard.Next{})
	}
}

func draftFromRequest(r *http.Request) form.CampaignDraft {
	return form.CampaignDraft{
		Name:        r.PostFormValue(form.FieldName),
		Description: r.PostFormValue(fieldDescription),
	}
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	m, _, err := h.runWizard(httpx.RequestContext(r), wizard.Model{}, wizard.OpenCreate())
	h.writeWizard(w, r, m, routepath.AppCampaignsNew, err)
}

func (h handlers) handleCreateSubmit(w http.ResponseWriter, r *http.Request) {
	h.handleWizardPost(w, r, "", routepath.AppCampaignsNew)
}

func (h handlers) handleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.routeCampaignID(r)
	if !ok {
		h.WriteNotFound(w, r)
		return
	}
	m, _, err := h.runWizard(httpx.RequestContext(r), wizard.Model{}, wizard.OpenEdit(id))
	h.writeWizard(w, r, m, routepath.AppCampaignEdit(id.String()), err)
}

func (h handlers) handleEditSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.routeCampaignID(r)
	if !ok {
		h.WriteNotFound(w, r)
		return
	}
	h.handleWizardPost(w, r, id, routepath.AppCampaignEdit(id.String()))
}

func (h handlers) handleWizardPost(w http.ResponseWriter, r *http.Request, id entity.ID, action string) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, err)
		return
	}
	ctx := httpx.RequestContext(r)
	m, eff, err := h.restoreWizard(ctx, id, r.PostFormValue(webtemplates.WizardOpField), draftFromRequest(r))
	if eff.Kind == form.EffectNavigate || !m.Open {
		if eff.Kind == form.EffectNavigate {
			flash.Write(w, r, flash.Success(savedNotice(id)))
		}
		httpx.WriteRedirect(w, r, routepath.AppCampaigns)
		return
	}
	if err != nil {
		h.Logger().WarnContext(ctx, "campaign wizard", "campaign_id", id.String(), "error", err)
	}
	h.writeWizard(w, r, m, action, err)
}

func (h handlers) writeWizard(w http.ResponseWriter, r *http.Request, m wizard.Model, action string, err error) {
	loc, lang := h.PageLocalizer(w, r)
	title := webtemplates.T(loc, "wizard.title.create")
	if m.Form.Mode == form.ModeEdit {
		title = webtemplates.T(loc, "wizard.title.edit")
	}
	h.WriteLocalizedPage(w, r, loc, lang, title, statusForFailure(r, err), webtemplates.CampaignWizard(m, action, loc))
}

func savedNotice(id entity.ID) string {
	if id.IsZero() {
		return "flash.campaign_created"
	}
	return "flash.campaign_updated"
}
