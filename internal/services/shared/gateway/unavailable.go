package gateway

import (
	"context"

	apperrors "github.com/louisbranch/tabletop/internal/platform/errors"
	"github.com/louisbranch/tabletop/internal/services/shared/entity"
)

// Unavailable is the degraded-mode gateway used when no backend is configured.
type Unavailable struct{}

func unavailable() error {
	return apperrors.E(apperrors.KindUnavailable, "campaign service is not configured")
}

func (Unavailable) Character(context.Context, entity.ID) (entity.Character, error) {
	return entity.Character{}, unavailable()
}

func (Unavailable) ListCharacters(context.Context) ([]entity.Character, error) {
	return nil, unavailable()
}

func (Unavailable) CreateCharacter(context.Context, CharacterInput) (entity.Character, error) {
	return entity.Character{}, unavailable()
}

func (Unavailable) UpdateCharacter(context.Context, entity.ID, CharacterInput) (entity.Character, error) {
	return entity.Character{}, unavailable()
}

func (Unavailable) Session(context.Context, entity.ID) (entity.Session, error) {
	return entity.Session{}, unavailable()
}

func (Unavailable) Campaign(context.Context, entity.ID) (entity.Campaign, error) {
	return entity.Campaign{}, unavailable()
}

func (Unavailable) ListCampaigns(context.Context) ([]entity.Campaign, error) {
	return nil, unavailable()
}

func (Unavailable) CreateCampaign(context.Context, CampaignInput) (entity.Campaign, error) {
	return entity.Campaign{}, unavailable()
}

func (Unavailable) UpdateCampaign(context.Context, entity.ID, CampaignInput) (entity.Campaign, error) {
	return entity.Campaign{}, unavailable()
}

func (Unavailable) DeleteCampaign(context.Context, entity.ID) error {
	return unavailable()
}

func (Unavailable) GenerateCampaignArt(context.Context, entity.ID) (entity.Campaign, error) {
	return entity.Campaign{}, unavailable()
}
