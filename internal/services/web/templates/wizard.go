package templates

import (
	"context"

	"github.com/a-h/templ"

	"github.com/louisbranch/tabletop/internal/services/shared/form"
	"github.com/louisbranch/tabletop/internal/services/shared/wizard"
)

// Wizard form operations posted by the step buttons.
const (
	WizardOpField = "op"
	WizardNext    = "next"
	WizardBack    = "back"
	WizardSubmit  = "submit"
	WizardClose   = "close"
)

// CampaignWizard renders the current wizard step. Draft values travel in the
// form so no server-side state is kept between steps.
func CampaignWizard(m wizard.Model, action string, loc Localizer) templ.Component {
	return component(func(ctx context.Context, h *html) {
		title := T(loc, "wizard.title.create")
		commit := T(loc, "wizard.commit.create")
		if m.Form.Mode == form.ModeEdit {
			title = T(loc, "wizard.title.edit")
			commit = T(loc, "wizard.commit.edit")
		}
		h.raw(`<section class="wizard"`)
		h.attr("data-step", m.Step.String())
		h.raw(">")
		h.element("h1", "", title)
		h.raw(`<ol class="steps">`)
		stepItem(h, m.Step == wizard.StepBasics, T(loc, "wizard.step.basics"))
		stepItem(h, m.Step == wizard.StepReview, T(loc, "wizard.step.review"))
		h.raw("</ol>")
		h.render(ctx, InlineError(m.Form.Error))

		if m.Form.State == form.StateLoading {
			if m.Form.Error == "" {
				h.element("p", "loading", T(loc, "wizard.loading"))
			}
			h.raw(`<form method="post"`)
			h.url("action", action)
			h.raw(">")
			opButton(h, WizardClose, T(loc, "wizard.close"), false)
			h.raw("</form></section>")
			return
		}

		d := m.Form.Draft
		h.raw(`<form method="post"`)
		h.url("action", action)
		h.raw(">")
		if m.Step == wizard.StepBasics {
			textField(h, loc, m.Form.FieldErrors, form.FieldName, "field.name", d.Name, true)
			textArea(h, loc, "description", "field.description", d.Description)
			opButton(h, WizardNext, T(loc, "wizard.next"), false)
		} else {
			hidden(h, form.FieldName, d.Name)
			hidden(h, "description", d.Description)
			h.raw(`<dl class="review">`)
			h.element("dt", "", T(loc, "field.name"))
			h.element("dd", "", d.Name)
			h.element("dt", "", T(loc, "field.description"))
			h.element("dd", "", d.Description)
			h.raw("</dl>")
			submitting := m.Form.State == form.StateSubmitting
			opButton(h, WizardBack, T(loc, "wizard.back"), submitting)
			opButton(h, WizardSubmit, commit, submitting)
		}
		opButton(h, WizardClose, T(loc, "wizard.close"), false)
		h.raw("</form></section>")
	})
}

func stepItem(h *html, current bool, label string) {
	h.raw("<li")
	if current {
		h.raw(` aria-current="step"`)
	}
	h.raw(">")
	h.text(label)
	h.raw("</li>")
}

func opButton(h *html, op, label string, disabled bool) {
	h.raw(`<button type="submit"`)
	h.attr("name", WizardOpField)
	h.attr("value", op)
	if op == WizardClose {
		h.raw(" formnovalidate")
	}
	if disabled {
		h.raw(" disabled")
	}
	h.raw(">")
	h.text(label)
	h.raw("</button>")
}

func hidden(h *html, name, value string) {
	h.raw(`<input type="hidden"`)
	h.attr("name", name)
	h.attr("value", value)
	h.raw(">")
}
