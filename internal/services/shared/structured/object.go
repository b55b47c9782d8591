package structured

import (
	"math"
	"time"

	"github.com/louisbranch/tabletop/internal/services/shared/entity"
)

// Pass-through objects keep every field whose JSON type fits and drop the
// rest. Only the outer shape of a block can be rejected.

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func characterFrom(v Value) entity.Character {
	return entity.Character{
		ID:              v.idField("id"),
		OwnerID:         v.idField("owner_id"),
		CampaignID:      v.idField("campaign_id"),
		Name:            v.stringField("name"),
		MaxHP:           v.intField("max_hp"),
		Level:           v.intField("level"),
		ArmorClass:      v.intField("ac"),
		InitiativeBonus: v.intField("initiative_bonus"),
		TempHP:          v.intField("temp_hp"),
		Race:            v.stringField("race"),
		Class:           v.stringField("class"),
		Background:      v.stringField("background"),
		Alignment:       v.stringField("alignment"),
		Notes:           v.stringField("notes"),
		ArtURL:          v.stringField("art_url"),
		ArtPrompt:       v.stringField("art_prompt"),
		CreatedAt:       v.timeField("created_at"),
		UpdatedAt:       v.timeField("updated_at"),
	}
}

func sessionFrom(v Value) entity.Session {
	s := entity.Session{
		ID:         v.idField("id"),
		OwnerID:    v.idField("owner_id"),
		CampaignID: v.idField("campaign_id"),
		Name:       v.stringField("name"),
		StartedAt:  v.timeField("started_at"),
		EndedAt:    v.timeField("ended_at"),
	}
	switch status := entity.SessionStatus(v.stringField("status")); status {
	case entity.SessionActive, entity.SessionEnded:
		s.Status = status
	}
	return s
}

func campaignFrom(v Value) entity.Campaign {
	return entity.Campaign{
		ID:          v.idField("id"),
		OwnerID:     v.idField("owner_id"),
		Name:        v.stringField("name"),
		Description: v.stringField("description"),
		ArtURL:      v.stringField("art_url"),
		ArtPrompt:   v.stringField("art_prompt"),
		CreatedAt:   v.timeField("created_at"),
		UpdatedAt:   v.timeField("updated_at"),
	}
}

func (v Value) field(key string) Value {
	if v.Kind != ValueObject {
		return Value{}
	}
	return valueOf(v.raw.Get(key))
}

func (v Value) stringField(key string) string {
	f := v.field(key)
	if f.Kind != ValueString {
		return ""
	}
	return f.raw.Str
}

func (v Value) idField(key string) entity.ID {
	f := v.field(key)
	if f.Kind == ValueString {
		return entity.ID(f.raw.Str)
	}
	if n, ok := f.Integer(); ok {
		return entity.IDFromInt(n)
	}
	return ""
}

func (v Value) intField(key string) *int {
	n, ok := v.field(key).Integer()
	if !ok || n > math.MaxInt32 || n < math.MinInt32 {
		return nil
	}
	out := int(n)
	return &out
}

func (v Value) timeField(key string) *time.Time {
	raw := v.stringField(key)
	if raw == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
