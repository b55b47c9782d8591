package characters

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/louisbranch/tabletop/internal/platform/errors"
	"github.com/louisbranch/tabletop/internal/services/shared/entity"
	"github.com/louisbranch/tabletop/internal/services/shared/form"
	"github.com/louisbranch/tabletop/internal/services/shared/gateway"
	"github.com/louisbranch/tabletop/internal/services/web/platform/flash"
	"github.com/louisbranch/tabletop/internal/services/web/platform/httpx"
	"github.com/louisbranch/tabletop/internal/services/web/platform/modulehandler"
	"github.com/louisbranch/tabletop/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/tabletop/internal/services/web/templates"
)

type characterForm = form.Model[form.CharacterDraft]

type handlers struct {
	modulehandler.Base
	gateway gateway.CharacterGateway
}

func (h handlers) routeCharacterID(r *http.Request) (entity.ID, bool) {
	id := entity.ID(strings.TrimSpace(chi.URLParam(r, routepath.CharacterIDParam)))
	return id, !id.IsZero()
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.RequestContext(r)
	loc, lang := h.PageLocalizer(w, r)
	items, err := h.gateway.ListCharacters(ctx)
	errMessage := ""
	if err != nil {
		h.Logger().WarnContext(ctx, "list characters", "error", err)
		errMessage = form.FailureMessage(err)
	}
	h.WriteLocalizedPage(w, r, loc, lang, webtemplates.T(loc, "characters.title"), http.StatusOK, webtemplates.CharacterListPage(items, errMessage, loc))
}

// runForm applies msg and performs the effects it requests until the form
// settles. It returns the last gateway failure, if any.
func (h handlers) runForm(ctx context.Context, m characterForm, msg form.Msg) (characterForm, form.Effect[form.CharacterDraft], error) {
	var lastErr error
	for {
		next, eff := form.Update(m, msg)
		m = next
		switch eff.Kind {
		case form.EffectFetch:
			c, err := h.gateway.Character(ctx, eff.ID)
			if err != nil {
				lastErr = err
				msg = form.LoadFailed{ID: eff.ID, Err: err}
				continue
			}
			msg = form.Loaded[form.CharacterDraft]{ID: eff.ID, Draft: form.CharacterDraftFrom(c)}
		case form.EffectSubmit:
			var (
				c   entity.Character
				err error
			)
			if eff.ID.IsZero() {
				c, err = h.gateway.CreateCharacter(ctx, eff.Draft.Payload())
			} else {
				c, err = h.gateway.UpdateCharacter(ctx, eff.ID, eff.Draft.Payload())
			}
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

func draftFromRequest(r *http.Request) form.CharacterDraft {
	return form.CharacterDraft{
		Name:            r.PostFormValue(form.FieldName),
		CampaignID:      r.PostFormValue("campaign_id"),
		MaxHP:           r.PostFormValue(form.FieldMaxHP),
		Level:           r.PostFormValue(form.FieldLevel),
		ArmorClass:      r.PostFormValue(form.FieldArmorClass),
		InitiativeBonus: r.PostFormValue(form.FieldInitiative),
		TempHP:          r.PostFormValue(form.FieldTempHP),
		Race:            r.PostFormValue("race"),
		Class:           r.PostFormValue("class"),
		Background:      r.PostFormValue("background"),
		Alignment:       r.PostFormValue("alignment"),
		Notes:           r.PostFormValue("notes"),
	}
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	m, _, err := h.runForm(httpx.RequestContext(r), characterForm{}, form.Open{})
	h.writeForm(w, r, m, routepath.AppCharactersNew, err)
}

func (h handlers) handleCreateSubmit(w http.ResponseWriter, r *http.Request) {
	h.handleSubmit(w, r, "", routepath.AppCharactersNew)
}

func (h handlers) handleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.routeCharacterID(r)
	if !ok {
		h.WriteNotFound(w, r)
		return
	}
	m, _, err := h.runForm(httpx.RequestContext(r), characterForm{}, form.Open{ID: id})
	h.writeForm(w, r, m, routepath.AppCharacterEdit(id.String()), err)
}

func (h handlers) handleEditSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.routeCharacterID(r)
	if !ok {
		h.WriteNotFound(w, r)
		return
	}
	h.handleSubmit(w, r, id, routepath.AppCharacterEdit(id.String()))
}

// handleSubmit rebuilds the editing form from the posted draft and commits
// it. The draft is never stored between requests.
func (h handlers) handleSubmit(w http.ResponseWriter, r *http.Request, id entity.ID, action string) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.Wrap(apperrors.KindInvalidInput, "invalid form", err))
		return
	}
	ctx := httpx.RequestContext(r)
	draft := draftFromRequest(r)

	m, _ := form.Update(characterForm{}, form.Open{ID: id})
	if !id.IsZero() {
		m, _ = form.Update(m, form.Loaded[form.CharacterDraft]{ID: id, Draft: draft})
	}
	m, _ = form.Update(m, form.Edit[form.CharacterDraft]{Draft: draft})
	m, eff, err := h.runForm(ctx, m, form.Submit{})
	if eff.Kind == form.EffectNavigate {
		flash.Write(w, r, flash.Success("flash.character_saved"))
		httpx.WriteRedirect(w, r, routepath.AppCharacters)
		return
	}
	if err != nil {
		h.Logger().WarnContext(ctx, "save character", "character_id", id.String(), "error", err)
	}
	h.writeForm(w, r, m, action, err)
}

func (h handlers) writeForm(w http.ResponseWriter, r *http.Request, m characterForm, action string, err error) {
	loc, lang := h.PageLocalizer(w, r)
	title := webtemplates.T(loc, "characters.new")
	if m.Mode == form.ModeEdit {
		title = webtemplates.T(loc, "characters.edit")
	}
	status := http.StatusOK
	if len(m.FieldErrors) > 0 && !httpx.IsHTMXRequest(r) {
		status = http.StatusUnprocessableEntity
	}
	if err != nil && !httpx.IsHTMXRequest(r) {
		status = apperrors.HTTPStatus(err)
	}
	h.WriteLocalizedPage(w, r, loc, lang, title, status, webtemplates.CharacterFormPage(m, action, loc))
}
