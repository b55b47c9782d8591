package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/louisbranch/tabletop/internal/services/shared/entity"
	"github.com/louisbranch/tabletop/internal/services/shared/form"
	"github.com/louisbranch/tabletop/internal/services/shared/gateway"
	"github.com/louisbranch/tabletop/internal/services/shared/listview"
	"github.com/louisbranch/tabletop/internal/services/shared/wizard"
)

type field int

const (
	fieldName field = iota
	fieldDescription
)

// Model is the bubbletea model for the campaign browser.
type Model struct {
	ctx     context.Context
	gateway gateway.CampaignGateway
	keys    KeyMap
	styles  styles

	list   listview.Model[entity.Campaign]
	cursor int

	wizard      wizard.Model
	focus       field
	name        textinput.Model
	description textinput.Model

	spinner spinner.Model
	help    help.Model
	width   int
}

// NewModel builds a browser over gw. ctx bounds every backend call.
func NewModel(ctx context.Context, gw gateway.CampaignGateway) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if gw == nil {
		gw = gateway.Unavailable{}
	}
	name := textinput.New()
	name.Placeholder = "Campaign name"
	name.CharLimit = 200
	description := textinput.New()
	description.Placeholder = "Optional"
	description.CharLimit = 2000

	return Model{
		ctx:         ctx,
		gateway:     gw,
		keys:        DefaultKeyMap,
		styles:      DefaultTheme.styles(),
		name:        name,
		description: description,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:        help.New(),
	}
}

// Init implements tea.Model. Starts the list fetch. The runtime keeps the
// pre-Init model, so the list stays idle until the fetch result lands.
func (model Model) Init() tea.Cmd {
	_, eff := listview.Update(model.list, listview.Mounted{})
	return tea.Batch(model.listCommand(eff), model.spinner.Tick)
}

// Update implements tea.Model. Keys route to the wizard while it is open and
// to the list otherwise; effect results route to the reducer that asked.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.help.Width = message.Width
		return model, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		model.spinner, cmd = model.spinner.Update(message)
		return model, cmd

	case tea.KeyMsg:
		if key.Matches(message, model.keys.ForceQuit) {
			return model, tea.Quit
		}
		if model.wizard.Open {
			return model.handleWizardKeys(message)
		}
		return model.handleListKeys(message)

	case listview.Loaded[entity.Campaign], listview.LoadFailed,
		listview.DeleteSucceeded, listview.DeleteFailed,
		listview.ActionCompleted[entity.Campaign], listview.ActionFailed:
		return model.applyList(message)

	case form.Loaded[form.CampaignDraft], form.LoadFailed,
		form.SubmitSucceeded, form.SubmitFailed:
		return model.applyWizard(message)
	}
	return model, nil
}

func (model Model) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.list.PendingDelete != "" {
		switch {
		case key.Matches(message, model.keys.Confirm):
			return model.applyList(listview.DeleteConfirmed{})
		case key.Matches(message, model.keys.Deny), key.Matches(message, model.keys.Cancel):
			return model.applyList(listview.DeleteCancelled{})
		}
		return model, nil
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}

	case key.Matches(message, model.keys.Down):
		if model.cursor < len(model.list.Items)-1 {
			model.cursor++
		}

	case key.Matches(message, model.keys.Refresh):
		return model, model.remount()

	case key.Matches(message, model.keys.New):
		model.resetInputs(form.CampaignDraft{})
		return model.applyWizard(wizard.OpenCreate())

	case key.Matches(message, model.keys.Edit):
		if selected, ok := model.selected(); ok {
			model.resetInputs(form.CampaignDraft{})
			return model.applyWizard(wizard.OpenEdit(selected.ID))
		}

	case key.Matches(message, model.keys.Delete):
		if selected, ok := model.selected(); ok {
			return model.applyList(listview.DeleteRequested{ID: selected.ID})
		}

	case key.Matches(message, model.keys.GenerateArt):
		if selected, ok := model.selected(); ok {
			return model.applyList(listview.ActionStarted{ID: selected.ID})
		}
	}
	return model, nil
}

func (model Model) handleWizardKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Cancel):
		if model.wizard.Step == wizard.StepReview {
			return model.applyWizard(wizard.Back{})
		}
		return model.applyWizard(wizard.Close{})

	case key.Matches(message, model.keys.Submit):
		if model.wizard.Step == wizard.StepBasics {
			return model.applyWizard(wizard.Next{})
		}
		return model.applyWizard(form.Submit{})

	case key.Matches(message, model.keys.NextField):
		if model.focus == fieldName {
			model.setFocus(fieldDescription)
		} else {
			model.setFocus(fieldName)
		}
		return model, nil
	}

	if model.wizard.Step != wizard.StepBasics || !model.wizard.Form.Editable() {
		return model, nil
	}
	var cmd tea.Cmd
	if model.focus == fieldName {
		model.name, cmd = model.name.Update(message)
	} else {
		model.description, cmd = model.description.Update(message)
	}
	model.wizard, _ = wizard.Update(model.wizard, form.Edit[form.CampaignDraft]{Draft: model.inputDraft()})
	return model, cmd
}

func (model Model) applyList(message listview.Msg) (tea.Model, tea.Cmd) {
	next, eff := listview.Update(model.list, message)
	model.list = next
	model.clampCursor()
	return model, model.listCommand(eff)
}

func (model Model) applyWizard(message form.Msg) (tea.Model, tea.Cmd) {
	next, eff := wizard.Update(model.wizard, message)
	model.wizard = next
	if _, ok := message.(form.Loaded[form.CampaignDraft]); ok && model.wizard.Form.Editable() {
		model.resetInputs(model.wizard.Form.Draft)
	}
	return model, model.wizardCommand(eff)
}

func (model *Model) listCommand(eff listview.Effect) tea.Cmd {
	switch eff.Kind {
	case listview.EffectFetch:
		return fetchCampaigns(model.ctx, model.gateway)
	case listview.EffectDelete:
		return deleteCampaign(model.ctx, model.gateway, eff.ID)
	case listview.EffectAction:
		return generateArt(model.ctx, model.gateway, eff.ID)
	default:
		return nil
	}
}

func (model *Model) wizardCommand(eff wizard.Effect) tea.Cmd {
	switch eff.Kind {
	case form.EffectFetch:
		return fetchCampaignDraft(model.ctx, model.gateway, eff.ID)
	case form.EffectSubmit:
		return submitCampaign(model.ctx, model.gateway, eff.ID, eff.Draft)
	case form.EffectNavigate:
		return model.remount()
	default:
		return nil
	}
}

// remount reloads the list, keeping the current items visible until the
// fetch lands.
func (model *Model) remount() tea.Cmd {
	next, eff := listview.Update(listview.Model[entity.Campaign]{Items: model.list.Items}, listview.Mounted{})
	model.list = next
	return model.listCommand(eff)
}

func (model Model) selected() (entity.Campaign, bool) {
	if model.cursor < 0 || model.cursor >= len(model.list.Items) {
		return entity.Campaign{}, false
	}
	return model.list.Items[model.cursor], true
}

func (model *Model) clampCursor() {
	if model.cursor >= len(model.list.Items) {
		model.cursor = len(model.list.Items) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
}

func (model *Model) resetInputs(draft form.CampaignDraft) {
	model.name.SetValue(draft.Name)
	model.description.SetValue(draft.Description)
	model.setFocus(fieldName)
}

func (model *Model) setFocus(f field) {
	model.focus = f
	if f == fieldName {
		model.name.Focus()
		model.description.Blur()
		return
	}
	model.description.Focus()
	model.name.Blur()
}

func (model Model) inputDraft() form.CampaignDraft {
	return form.CampaignDraft{Name: model.name.Value(), Description: model.description.Value()}
}
