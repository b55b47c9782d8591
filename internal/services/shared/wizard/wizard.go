// Package wizard is the two-step campaign create/edit flow. It layers step
// navigation over the form state machine.
package wizard

import (
	"github.com/louisbranch/tabletop/internal/services/shared/entity"
	"github.com/louisbranch/tabletop/internal/services/shared/form"
)

// Step is a wizard page.
type Step int

const (
	StepBasics Step = iota
	StepReview
)

func (s Step) String() string {
	if s == StepReview {
		return "review"
	}
	return "basics"
}

// Model is the wizard state. The zero value is a closed wizard.
type Model struct {
	Open bool
	Step Step
	Form form.Model[form.CampaignDraft]
}

// Effect is the side effect requested by Update.
type Effect = form.Effect[form.CampaignDraft]

// Messages specific to the wizard. Open, Loaded, LoadFailed, Edit, Submit,
// SubmitSucceeded, and SubmitFailed from package form are accepted as-is.
type (
	// Next advances from Basics to Review when the draft is valid.
	Next struct{}
	// Back returns from Review to Basics keeping the draft.
	Back struct{}
	// Close discards the wizard and its draft.
	Close struct{}
)

// OpenCreate opens a blank wizard.
func OpenCreate() form.Open { return form.Open{} }

// OpenEdit opens the wizard on an existing campaign.
func OpenEdit(id entity.ID) form.Open { return form.Open{ID: id} }

// Update applies msg to m.
func Update(m Model, msg form.Msg) (Model, Effect) {
	switch msg := msg.(type) {
	case form.Open:
		reopenSame := m.Open && m.Form.TargetID == msg.ID
		next, eff := form.Update(m.Form, msg)
		if !reopenSame {
			m.Step = StepBasics
		}
		m.Open = true
		m.Form = next
		return m, eff
	case Close:
		return Model{}, Effect{}
	case Next:
		if !m.Open || m.Step != StepBasics || !m.Form.Editable() {
			return m, Effect{}
		}
		if errs := m.Form.Draft.Validate(); len(errs) > 0 {
			m.Form.FieldErrors = errs
			return m, Effect{}
		}
		m.Form.FieldErrors = nil
		m.Step = StepReview
		return m, Effect{}
	case Back:
		if !m.Open || m.Step != StepReview || m.Form.State == form.StateSubmitting {
			return m, Effect{}
		}
		m.Step = StepBasics
		return m, Effect{}
	case form.Submit:
		if !m.Open || m.Step != StepReview {
			return m, Effect{}
		}
	case form.Edit[form.CampaignDraft]:
		if !m.Open || m.Step != StepBasics {
			return m, Effect{}
		}
	}
	if !m.Open {
		return m, Effect{}
	}
	next, eff := form.Update(m.Form, msg)
	m.Form = next
	if eff.Kind == form.EffectNavigate {
		m.Open = false
	}
	return m, eff
}
