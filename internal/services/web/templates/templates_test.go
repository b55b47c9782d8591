package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/louisbranch/tabletop/internal/services/shared/entity"
	"github.com/louisbranch/tabletop/internal/services/shared/form"
	"github.com/louisbranch/tabletop/internal/services/shared/listview"
	"github.com/louisbranch/tabletop/internal/services/shared/structured"
	"github.com/louisbranch/tabletop/internal/services/shared/wizard"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func intPtr(v int) *int { return &v }

func TestCharacterCardDegradesOnPartialEntity(t *testing.T) {
	t.Parallel()

	body := render(t, CharacterCard(entity.Character{}, CharacterCardOptions{EditLink: true}, nil))
	if !strings.Contains(body, "character.unnamed") {
		t.Fatalf("missing name placeholder: %s", body)
	}
	if !strings.Contains(body, "art-placeholder") {
		t.Fatalf("missing art placeholder: %s", body)
	}
	if strings.Contains(body, "<ul") || strings.Contains(body, "/edit") {
		t.Fatalf("rendered absent stats or edit link: %s", body)
	}
}

func TestCharacterCardRendersStats(t *testing.T) {
	t.Parallel()

	c := entity.Character{ID: "4", Name: "Ilse", Race: "Elf", Class: "Wizard", Level: intPtr(3), MaxHP: intPtr(14), TempHP: intPtr(2), ArmorClass: intPtr(12)}
	body := render(t, CharacterCard(c, CharacterCardOptions{EditLink: true}, nil))
	for _, marker := range []string{`data-character-id="4"`, "Elf · Wizard", "character.level", "/app/characters/4/edit"} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q: %s", marker, body)
		}
	}
}

func TestComponentsEscapeContent(t *testing.T) {
	t.Parallel()

	body := render(t, CampaignCard(entity.Campaign{Name: `<script>alert(1)</script>`, ArtURL: "javascript:alert(1)"}, CampaignCardOptions{}, nil))
	if strings.Contains(body, "<script>") {
		t.Fatalf("unescaped name: %s", body)
	}
	if strings.Contains(body, "javascript:") {
		t.Fatalf("unsafe art url: %s", body)
	}
}

func TestSessionCardStatus(t *testing.T) {
	t.Parallel()

	body := render(t, SessionCard(entity.Session{Name: "Session Zero"}, nil))
	if !strings.Contains(body, "Session Zero") || !strings.Contains(body, "status-unknown") {
		t.Fatalf("body = %s", body)
	}
	body = render(t, SessionCard(entity.Session{ID: "2", Name: "Two", Status: entity.SessionEnded}, nil))
	if !strings.Contains(body, "status-ended") || !strings.Contains(body, "/app/sessions/2") {
		t.Fatalf("body = %s", body)
	}
}

func TestStructuredBlockKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		result structured.Result
		marker string
	}{
		{result: structured.Result{Kind: structured.ResultCharacter, Character: entity.Character{Name: "A"}}, marker: "character-card"},
		{result: structured.Result{Kind: structured.ResultCharacters, Characters: []entity.Character{{Name: "A"}, {Name: "B"}}}, marker: "character-grid"},
		{result: structured.Result{Kind: structured.ResultSession, Session: entity.Session{Name: "S"}}, marker: "session-card"},
		{result: structured.Result{Kind: structured.ResultSessions, Sessions: []entity.Session{{Name: "S"}}}, marker: "session-list"},
		{result: structured.Result{Kind: structured.ResultCampaign, Campaign: entity.Campaign{Name: "C"}}, marker: "campaign-card"},
	}
	for _, tt := range tests {
		body := render(t, StructuredBlock(tt.result, nil))
		if !strings.Contains(body, tt.marker) {
			t.Fatalf("%v body missing %q: %s", tt.result.Kind, tt.marker, body)
		}
		if strings.Contains(body, "card-actions") {
			t.Fatalf("%v rendered list actions: %s", tt.result.Kind, body)
		}
	}
	if body := render(t, StructuredBlock(structured.Result{}, nil)); body != "" {
		t.Fatalf("inapplicable block rendered %q", body)
	}
}

func TestStructuredErrorMessage(t *testing.T) {
	t.Parallel()

	d := structured.New(structured.Config{})
	_, err := d.Dispatch(context.Background(), "json:character", "{not json")
	if got := StructuredErrorMessage(err, nil); got != "error.malformed_payload" {
		t.Fatalf("message = %q", got)
	}
	_, err = d.Dispatch(context.Background(), "json:character", "7")
	if got := StructuredErrorMessage(err, nil); !strings.HasPrefix(got, "error.resolution_failed") && !strings.Contains(got, "not configured") {
		t.Fatalf("message = %q", got)
	}
}

func TestCampaignGridReflectsInflight(t *testing.T) {
	t.Parallel()

	m := listview.Model[entity.Campaign]{
		State:        listview.StateReady,
		Items:        []entity.Campaign{{ID: "1", Name: "One"}, {ID: "2", Name: "Two"}},
		Inflight:     map[entity.ID]bool{"1": true},
		ActionErrors: map[entity.ID]string{"2": "art service offline"},
	}
	body := render(t, CampaignGrid(m, nil))
	if strings.Count(body, `aria-busy="true"`) != 1 {
		t.Fatalf("busy markers: %s", body)
	}
	if !strings.Contains(body, "art service offline") {
		t.Fatalf("missing action error: %s", body)
	}
	empty := render(t, CampaignGrid(listview.Model[entity.Campaign]{State: listview.StateReady}, nil))
	if !strings.Contains(empty, "campaigns.empty") {
		t.Fatalf("empty grid = %s", empty)
	}
}

func TestCampaignWizardSteps(t *testing.T) {
	t.Parallel()

	m, _ := wizard.Update(wizard.Model{}, wizard.OpenCreate())
	m, _ = wizard.Update(m, form.Edit[form.CampaignDraft]{Draft: form.CampaignDraft{Name: "Curse", Description: "Mists"}})
	basics := render(t, CampaignWizard(m, "/app/campaigns/new", nil))
	if !strings.Contains(basics, `data-step="basics"`) || !strings.Contains(basics, `value="next"`) {
		t.Fatalf("basics = %s", basics)
	}
	m, _ = wizard.Update(m, wizard.Next{})
	review := render(t, CampaignWizard(m, "/app/campaigns/new", nil))
	for _, marker := range []string{`data-step="review"`, `type="hidden" name="name" value="Curse"`, `value="back"`, `value="submit"`} {
		if !strings.Contains(review, marker) {
			t.Fatalf("review missing %q: %s", marker, review)
		}
	}
}

func TestCharacterFormLoadFailureHidesFields(t *testing.T) {
	t.Parallel()

	m := form.Model[form.CharacterDraft]{Mode: form.ModeEdit, State: form.StateLoading, TargetID: "3", Error: "character not found"}
	body := render(t, CharacterFormPage(m, "/app/characters/3/edit", nil))
	if !strings.Contains(body, "character not found") || strings.Contains(body, "<input") {
		t.Fatalf("body = %s", body)
	}
}

func TestLayoutWrapsChildren(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := templ.WithChildren(context.Background(), InlineError("inner"))
	if err := Layout(PageContext{Title: "Campaigns", Lang: "pt-BR", CurrentPath: "/app/campaigns"}).Render(ctx, &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	body := buf.String()
	for _, marker := range []string{`<html lang="pt-BR">`, "inner", `aria-current="page"`} {
		if !strings.Contains(body, marker) {
			t.Fatalf("layout missing %q: %s", marker, body)
		}
	}
}
