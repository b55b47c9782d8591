package form

import (
	"errors"
	"testing"

	apperrors "github.com/louisbranch/tabletop/internal/platform/errors"
	"github.com/louisbranch/tabletop/internal/services/shared/entity"
)

func TestOpenCreateIsEditableWithoutFetch(t *testing.T) {
	t.Parallel()

	m, eff := Update(Model[CampaignDraft]{}, Open{})
	if m.State != StateEditing || m.Mode != ModeCreate {
		t.Fatalf("model = %+v", m)
	}
	if eff.Kind != EffectNone {
		t.Fatalf("effect = %+v, want none", eff)
	}
}

func TestOpenEditFetchesOnce(t *testing.T) {
	t.Parallel()

	m, eff := Update(Model[CampaignDraft]{}, Open{ID: "7"})
	if m.State != StateLoading || eff.Kind != EffectFetch || eff.ID != "7" {
		t.Fatalf("model = %+v effect = %+v", m, eff)
	}
	if m.Editable() {
		t.Fatal("loading form is editable")
	}
	m, eff = Update(m, Open{ID: "7"})
	if eff.Kind != EffectNone {
		t.Fatalf("second open effect = %+v, want none", eff)
	}
	m, _ = Update(m, Loaded[CampaignDraft]{ID: "7", Draft: CampaignDraft{Name: "Curse"}})
	if m.State != StateEditing || m.Draft.Name != "Curse" {
		t.Fatalf("model = %+v", m)
	}
	if _, eff = Update(m, Open{ID: "7"}); eff.Kind != EffectNone {
		t.Fatalf("open after load effect = %+v, want none", eff)
	}
}

func TestLoadFailedStaysLoadingWithError(t *testing.T) {
	t.Parallel()

	m, _ := Update(Model[CharacterDraft]{}, Open{ID: "3"})
	m, _ = Update(m, LoadFailed{ID: "3", Err: apperrors.E(apperrors.KindNotFound, "character not found")})
	if m.State != StateLoading {
		t.Fatalf("state = %v, want loading", m.State)
	}
	if m.Error != "character not found" {
		t.Fatalf("error = %q", m.Error)
	}
	if m.Editable() {
		t.Fatal("form became editable after load failure")
	}
	m, _ = Update(m, Edit[CharacterDraft]{Draft: CharacterDraft{Name: "x"}})
	if m.Draft.Name != "" {
		t.Fatalf("draft edited while loading: %+v", m.Draft)
	}
}

func TestStaleLoadIgnored(t *testing.T) {
	t.Parallel()

	m, _ := Update(Model[CampaignDraft]{}, Open{ID: "1"})
	m, eff := Update(m, Open{ID: "2"})
	if eff.Kind != EffectFetch || eff.ID != "2" {
		t.Fatalf("reopen effect = %+v", eff)
	}
	m, _ = Update(m, Loaded[CampaignDraft]{ID: "1", Draft: CampaignDraft{Name: "Old"}})
	if m.State != StateLoading || m.Draft.Name != "" {
		t.Fatalf("stale load applied: %+v", m)
	}
}

func TestSubmitBlockedByValidation(t *testing.T) {
	t.Parallel()

	m, _ := Update(Model[CharacterDraft]{}, Open{})
	m, _ = Update(m, Edit[CharacterDraft]{Draft: CharacterDraft{Name: "Ilse"}})
	m, eff := Update(m, Submit{})
	if eff.Kind != EffectNone || m.State != StateEditing {
		t.Fatalf("model = %+v effect = %+v", m, eff)
	}
	if m.FieldErrors[FieldMaxHP] == "" {
		t.Fatalf("field errors = %v, want max_hp", m.FieldErrors)
	}
	m, _ = Update(m, Edit[CharacterDraft]{Draft: CharacterDraft{Name: "Ilse", MaxHP: "12"}})
	if len(m.FieldErrors) != 0 {
		t.Fatalf("field errors after fix = %v", m.FieldErrors)
	}
}

func TestSubmitLifecycle(t *testing.T) {
	t.Parallel()

	m, _ := Update(Model[CampaignDraft]{}, Open{})
	m, _ = Update(m, Edit[CampaignDraft]{Draft: CampaignDraft{Name: "Curse"}})
	m, eff := Update(m, Submit{})
	if m.State != StateSubmitting || eff.Kind != EffectSubmit || eff.Draft.Name != "Curse" {
		t.Fatalf("model = %+v effect = %+v", m, eff)
	}
	if _, again := Update(m, Submit{}); again.Kind != EffectNone {
		t.Fatalf("double submit effect = %+v", again)
	}

	failed, _ := Update(m, SubmitFailed{Err: apperrors.E(apperrors.KindInvalidInput, "name already taken")})
	if failed.State != StateEditing || failed.Error != "name already taken" {
		t.Fatalf("failed = %+v", failed)
	}

	done, eff := Update(m, SubmitSucceeded{ID: "9"})
	if done.State != StateSuccess || eff.Kind != EffectNavigate || eff.ID != "9" {
		t.Fatalf("done = %+v effect = %+v", done, eff)
	}
}

func TestFailureMessageFallback(t *testing.T) {
	t.Parallel()

	if got := FailureMessage(errors.New("dial tcp: refused")); got != GenericFailure {
		t.Fatalf("FailureMessage(untyped) = %q", got)
	}
	if got := FailureMessage(apperrors.E(apperrors.KindTransport, "")); got != GenericFailure {
		t.Fatalf("FailureMessage(empty) = %q", got)
	}
	if got := FailureMessage(nil); got != "" {
		t.Fatalf("FailureMessage(nil) = %q", got)
	}
}

func TestEditTargetPreservedOnSubmit(t *testing.T) {
	t.Parallel()

	m, _ := Update(Model[CampaignDraft]{}, Open{ID: entity.ID("5")})
	m, _ = Update(m, Loaded[CampaignDraft]{ID: "5", Draft: CampaignDraft{Name: "Zero"}})
	_, eff := Update(m, Submit{})
	if eff.Kind != EffectSubmit || eff.ID != "5" {
		t.Fatalf("effect = %+v", eff)
	}
}
