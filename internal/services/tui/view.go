package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/louisbranch/tabletop/internal/services/shared/form"
	"github.com/louisbranch/tabletop/internal/services/shared/listview"
	"github.com/louisbranch/tabletop/internal/services/shared/wizard"
)

// View implements tea.Model.
func (model Model) View() string {
	if model.wizard.Open {
		return model.wizardView()
	}
	return model.listView()
}

func (model Model) listView() string {
	var b strings.Builder
	b.WriteString(model.styles.header.Render("Campaigns"))
	b.WriteString("\n")

	switch {
	case model.list.State == listview.StateFailed:
		b.WriteString(model.styles.err.Render(model.list.Error))
		b.WriteString("\n")
	case len(model.list.Items) == 0 && model.list.State != listview.StateReady:
		b.WriteString(model.spinner.View() + " Loading campaigns…\n")
	case len(model.list.Items) == 0:
		b.WriteString(model.styles.faint.Render("No campaigns yet. Press n to create one."))
		b.WriteString("\n")
	default:
		for i, c := range model.list.Items {
			b.WriteString(model.itemLine(i, c.Name))
			b.WriteString("\n")
		}
		if model.list.Error != "" {
			b.WriteString(model.styles.err.Render(model.list.Error))
			b.WriteString("\n")
		}
	}

	if id := model.list.PendingDelete; id != "" {
		name := id.String()
		if c, ok := model.list.Find(id); ok && c.Name != "" {
			name = c.Name
		}
		b.WriteString("\n")
		b.WriteString(model.styles.err.Render(fmt.Sprintf("Delete %q? This cannot be undone.", name)))
		b.WriteString("\n")
		b.WriteString(model.help.ShortHelpView([]key.Binding{model.keys.Confirm, model.keys.Deny}))
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(model.help.ShortHelpView([]key.Binding{
		model.keys.Up, model.keys.Down, model.keys.New, model.keys.Edit,
		model.keys.Delete, model.keys.GenerateArt, model.keys.Refresh, model.keys.Quit,
	}))
	return b.String()
}

func (model Model) itemLine(index int, name string) string {
	line := name
	if line == "" {
		line = "Untitled campaign"
	}
	entityID := model.list.Items[index].ID
	switch {
	case model.list.Deleting == entityID:
		line += " " + model.styles.busy.Render(model.spinner.View()+" deleting")
	case model.list.Busy(entityID):
		line += " " + model.styles.busy.Render(model.spinner.View()+" generating art")
	case model.list.ActionErrors[entityID] != "":
		line += " " + model.styles.err.Render(model.list.ActionErrors[entityID])
	}
	if index == model.cursor {
		return model.styles.selected.Render("› " + line)
	}
	return model.styles.item.Render("  " + line)
}

func (model Model) wizardView() string {
	m := model.wizard
	title := "New campaign"
	if m.Form.Mode == form.ModeEdit {
		title = "Edit campaign"
	}
	var b strings.Builder
	b.WriteString(model.styles.header.Render(title + " · " + stepLabel(m.Step)))
	b.WriteString("\n")

	if m.Form.State == form.StateLoading {
		if m.Form.Error != "" {
			b.WriteString(model.styles.err.Render(m.Form.Error))
		} else {
			b.WriteString(model.spinner.View() + " Loading campaign…")
		}
		b.WriteString("\n\n")
		b.WriteString(model.help.ShortHelpView([]key.Binding{model.keys.Cancel}))
		return b.String()
	}

	var body string
	if m.Step == wizard.StepBasics {
		body = lipgloss.JoinVertical(lipgloss.Left,
			model.fieldRow("Name", model.name.View(), m.Form.FieldErrors[form.FieldName]),
			model.fieldRow("Description", model.description.View(), ""),
		)
	} else {
		description := m.Form.Draft.Description
		if strings.TrimSpace(description) == "" {
			description = model.styles.faint.Render("(none)")
		}
		body = lipgloss.JoinVertical(lipgloss.Left,
			model.fieldRow("Name", m.Form.Draft.Name, ""),
			model.fieldRow("Description", description, ""),
		)
	}
	b.WriteString(model.styles.panel.Render(body))
	b.WriteString("\n")

	switch {
	case m.Form.State == form.StateSubmitting:
		b.WriteString(model.spinner.View() + " Saving…\n")
	case m.Form.Error != "":
		b.WriteString(model.styles.err.Render(m.Form.Error))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.Step == wizard.StepBasics {
		b.WriteString(model.help.ShortHelpView([]key.Binding{model.keys.Submit, model.keys.NextField, model.keys.Cancel}))
	} else {
		save := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save"))
		back := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
		b.WriteString(model.help.ShortHelpView([]key.Binding{save, back}))
	}
	return b.String()
}

func (model Model) fieldRow(label, value, fieldErr string) string {
	row := model.styles.label.Render(label) + value
	if fieldErr != "" {
		row += "\n" + model.styles.label.Render("") + model.styles.err.Render(fieldErr)
	}
	return row
}

func stepLabel(step wizard.Step) string {
	if step == wizard.StepReview {
		return "Review"
	}
	return "Basics"
}
