package form

import (
	"strconv"
	"strings"

	"github.com/louisbranch/tabletop/internal/services/shared/entity"
	"github.com/louisbranch/tabletop/internal/services/shared/gateway"
)

// Field names used in FieldErrors.
const (
	FieldName       = "name"
	FieldMaxHP      = "max_hp"
	FieldLevel      = "level"
	FieldArmorClass = "ac"
	FieldInitiative = "initiative_bonus"
	FieldTempHP     = "temp_hp"
)

// CampaignDraft is the editable campaign.
type CampaignDraft struct {
	Name        string
	Description string
}

// CampaignDraftFrom seeds a draft from a fetched campaign.
func CampaignDraftFrom(c entity.Campaign) CampaignDraft {
	return CampaignDraft{Name: c.Name, Description: c.Description}
}

func (d CampaignDraft) Validate() FieldErrors {
	if strings.TrimSpace(d.Name) == "" {
		return FieldErrors{FieldName: "Name is required."}
	}
	return nil
}

// Payload normalizes the draft for the API. A blank description is sent as
// null.
func (d CampaignDraft) Payload() gateway.CampaignInput {
	return gateway.CampaignInput{
		Name:        strings.TrimSpace(d.Name),
		Description: optionalString(d.Description),
	}
}

// CharacterDraft is the editable character. Numeric fields hold raw input.
type CharacterDraft struct {
	Name            string
	CampaignID      string
	MaxHP           string
	Level           string
	ArmorClass      string
	InitiativeBonus string
	TempHP          string
	Race            string
	Class           string
	Background      string
	Alignment       string
	Notes           string
}

// CharacterDraftFrom seeds a draft from a fetched character.
func CharacterDraftFrom(c entity.Character) CharacterDraft {
	return CharacterDraft{
		Name:            c.Name,
		CampaignID:      c.CampaignID.String(),
		MaxHP:           formatOptionalInt(c.MaxHP),
		Level:           formatOptionalInt(c.Level),
		ArmorClass:      formatOptionalInt(c.ArmorClass),
		InitiativeBonus: formatOptionalInt(c.InitiativeBonus),
		TempHP:          formatOptionalInt(c.TempHP),
		Race:            c.Race,
		Class:           c.Class,
		Background:      c.Background,
		Alignment:       c.Alignment,
		Notes:           c.Notes,
	}
}

func (d CharacterDraft) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(d.Name) == "" {
		errs[FieldName] = "Name is required."
	}
	if strings.TrimSpace(d.MaxHP) == "" {
		errs[FieldMaxHP] = "Max HP is required."
	} else if _, err := parseInt(d.MaxHP); err != nil {
		errs[FieldMaxHP] = "Max HP must be a whole number."
	}
	for field, raw := range map[string]string{
		FieldLevel:      d.Level,
		FieldArmorClass: d.ArmorClass,
		FieldInitiative: d.InitiativeBonus,
		FieldTempHP:     d.TempHP,
	} {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if _, err := parseInt(raw); err != nil {
			errs[field] = "Must be a whole number."
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Payload normalizes a validated draft for the API. Blank optional fields
// are sent as null.
func (d CharacterDraft) Payload() gateway.CharacterInput {
	maxHP, _ := parseInt(d.MaxHP)
	input := gateway.CharacterInput{
		Name:            strings.TrimSpace(d.Name),
		MaxHP:           maxHP,
		Level:           optionalInt(d.Level),
		ArmorClass:      optionalInt(d.ArmorClass),
		InitiativeBonus: optionalInt(d.InitiativeBonus),
		TempHP:          optionalInt(d.TempHP),
		Race:            optionalString(d.Race),
		Class:           optionalString(d.Class),
		Background:      optionalString(d.Background),
		Alignment:       optionalString(d.Alignment),
		Notes:           optionalString(d.Notes),
	}
	if id := entity.ID(strings.TrimSpace(d.CampaignID)); !id.IsZero() {
		input.CampaignID = &id
	}
	return input
}

func optionalString(raw string) *string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	return &value
}

func optionalInt(raw string) *int {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	n, err := parseInt(raw)
	if err != nil {
		return nil
	}
	return &n
}

func parseInt(raw string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(raw))
}

func formatOptionalInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}
