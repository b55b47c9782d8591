package templates

import (
	"context"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/tabletop/internal/services/shared/entity"
	"github.com/louisbranch/tabletop/internal/services/shared/form"
	"github.com/louisbranch/tabletop/internal/services/web/routepath"
)

// CharacterCardOptions toggles card chrome.
type CharacterCardOptions struct {
	// EditLink adds a link to the character edit form.
	EditLink bool
}

// CharacterCard renders one character.
func CharacterCard(c entity.Character, opts CharacterCardOptions, loc Localizer) templ.Component {
	return component(func(_ context.Context, h *html) {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			name = T(loc, "character.unnamed")
		}
		h.raw(`<article class="card character-card"`)
		if !c.ID.IsZero() {
			h.attr("data-character-id", c.ID.String())
		}
		h.raw(">")
		artImage(h, c.ArtURL, name)
		h.element("h3", "card-title", name)
		if line := characterSubtitle(c); line != "" {
			h.element("p", "card-subtitle", line)
		}
		stats := characterStats(c, loc)
		if len(stats) > 0 {
			h.raw(`<ul class="stats">`)
			for _, stat := range stats {
				h.element("li", "", stat)
			}
			h.raw("</ul>")
		}
		if notes := strings.TrimSpace(c.Notes); notes != "" {
			h.element("p", "notes", notes)
		}
		if opts.EditLink && !c.ID.IsZero() {
			h.raw("<a")
			h.url("href", routepath.AppCharacterEdit(c.ID.String()))
			h.raw(">")
			h.text(T(loc, "characters.edit"))
			h.raw("</a>")
		}
		h.raw("</article>")
	})
}

// CharacterGrid renders characters in order.
func CharacterGrid(items []entity.Character, opts CharacterCardOptions, loc Localizer) templ.Component {
	return component(func(ctx context.Context, h *html) {
		if len(items) == 0 {
			h.element("p", "empty", T(loc, "characters.empty"))
			return
		}
		h.raw(`<div class="grid character-grid">`)
		for _, c := range items {
			h.render(ctx, CharacterCard(c, opts, loc))
		}
		h.raw("</div>")
	})
}

func characterSubtitle(c entity.Character) string {
	parts := make([]string, 0, 3)
	for _, value := range []string{c.Race, c.Class, c.Alignment} {
		if value = strings.TrimSpace(value); value != "" {
			parts = append(parts, value)
		}
	}
	return strings.Join(parts, " · ")
}

func characterStats(c entity.Character, loc Localizer) []string {
	var stats []string
	if c.Level != nil {
		stats = append(stats, T(loc, "character.level", strconv.Itoa(*c.Level)))
	}
	if c.MaxHP != nil {
		hp := strconv.Itoa(*c.MaxHP)
		if c.TempHP != nil && *c.TempHP > 0 {
			hp += " (+" + strconv.Itoa(*c.TempHP) + ")"
		}
		stats = append(stats, T(loc, "character.hp", hp))
	}
	if c.ArmorClass != nil {
		stats = append(stats, T(loc, "character.ac", strconv.Itoa(*c.ArmorClass)))
	}
	return stats
}

// CharacterListPage renders the character index.
func CharacterListPage(items []entity.Character, errMessage string, loc Localizer) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<header class="page-header">`)
		h.element("h1", "", T(loc, "characters.title"))
		h.raw("<a")
		h.url("href", routepath.AppCharactersNew)
		h.raw(` class="button">`)
		h.text(T(loc, "characters.new"))
		h.raw("</a></header>")
		h.render(ctx, InlineError(errMessage))
		h.render(ctx, CharacterGrid(items, CharacterCardOptions{EditLink: true}, loc))
	})
}

// CharacterFormPage renders the character create/edit form. The form posts
// back to action.
func CharacterFormPage(m form.Model[form.CharacterDraft], action string, loc Localizer) templ.Component {
	return component(func(ctx context.Context, h *html) {
		title := T(loc, "characters.new")
		if m.Mode == form.ModeEdit {
			title = T(loc, "characters.edit")
		}
		h.element("h1", "", title)
		h.render(ctx, InlineError(m.Error))
		if !m.Editable() && m.State != form.StateSubmitting {
			if m.Error == "" {
				h.element("p", "loading", T(loc, "form.loading"))
			}
			return
		}
		d := m.Draft
		h.raw(`<form method="post"`)
		h.url("action", action)
		h.raw(">")
		textField(h, loc, m.FieldErrors, form.FieldName, "field.name", d.Name, true)
		textField(h, loc, m.FieldErrors, "campaign_id", "field.campaign_id", d.CampaignID, false)
		numberField(h, loc, m.FieldErrors, form.FieldMaxHP, "field.max_hp", d.MaxHP, true)
		numberField(h, loc, m.FieldErrors, form.FieldLevel, "field.level", d.Level, false)
		numberField(h, loc, m.FieldErrors, form.FieldArmorClass, "field.ac", d.ArmorClass, false)
		numberField(h, loc, m.FieldErrors, form.FieldInitiative, "field.initiative_bonus", d.InitiativeBonus, false)
		numberField(h, loc, m.FieldErrors, form.FieldTempHP, "field.temp_hp", d.TempHP, false)
		textField(h, loc, m.FieldErrors, "race", "field.race", d.Race, false)
		textField(h, loc, m.FieldErrors, "class", "field.class", d.Class, false)
		textField(h, loc, m.FieldErrors, "background", "field.background", d.Background, false)
		textField(h, loc, m.FieldErrors, "alignment", "field.alignment", d.Alignment, false)
		textArea(h, loc, "notes", "field.notes", d.Notes)
		h.raw(`<button type="submit"`)
		if m.State == form.StateSubmitting {
			h.raw(" disabled")
		}
		h.raw(">")
		h.text(T(loc, "form.save"))
		h.raw("</button></form>")
	})
}

func textField(h *html, loc Localizer, errs form.FieldErrors, name, labelKey, value string, required bool) {
	input(h, loc, errs, "text", name, labelKey, value, required)
}

func numberField(h *html, loc Localizer, errs form.FieldErrors, name, labelKey, value string, required bool) {
	input(h, loc, errs, "number", name, labelKey, value, required)
}

func input(h *html, loc Localizer, errs form.FieldErrors, kind, name, labelKey, value string, required bool) {
	h.raw(`<label class="field">`)
	h.element("span", "label", T(loc, labelKey))
	h.raw("<input")
	h.attr("type", kind)
	h.attr("name", name)
	h.attr("value", value)
	if required {
		h.raw(" required")
	}
	h.raw(">")
	if msg := errs[name]; msg != "" {
		h.element("span", "field-error", msg)
	}
	h.raw("</label>")
}

func textArea(h *html, loc Localizer, name, labelKey, value string) {
	h.raw(`<label class="field">`)
	h.element("span", "label", T(loc, labelKey))
	h.raw("<textarea")
	h.attr("name", name)
	h.raw(">")
	h.text(value)
	h.raw("</textarea></label>")
}
