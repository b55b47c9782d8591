package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	apperrors "github.com/louisbranch/tabletop/internal/platform/errors"
	"github.com/louisbranch/tabletop/internal/services/shared/entity"
	"github.com/louisbranch/tabletop/internal/services/shared/restapi"
)

// REST implements Gateway over the campaign REST API.
type REST struct {
	client *restapi.Client
}

// NewREST returns a REST gateway. A nil client yields an Unavailable gateway.
func NewREST(client *restapi.Client) Gateway {
	if client == nil {
		return Unavailable{}
	}
	return REST{client: client}
}

func (g REST) Character(ctx context.Context, id entity.ID) (entity.Character, error) {
	path, err := entityPath("characters", id)
	if err != nil {
		return entity.Character{}, err
	}
	var c entity.Character
	if err := g.client.Get(ctx, path, &c); err != nil {
		return entity.Character{}, fmt.Errorf("get character %s: %w", id, err)
	}
	return g.resolveCharacterArt(c), nil
}

func (g REST) ListCharacters(ctx context.Context) ([]entity.Character, error) {
	var items []entity.Character
	if err := g.client.Get(ctx, "/characters", &items); err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	for i := range items {
		items[i] = g.resolveCharacterArt(items[i])
	}
	return items, nil
}

func (g REST) CreateCharacter(ctx context.Context, input CharacterInput) (entity.Character, error) {
	var c entity.Character
	if err := g.client.Post(ctx, "/characters", input, &c); err != nil {
		return entity.Character{}, fmt.Errorf("create character: %w", err)
	}
	return g.resolveCharacterArt(c), nil
}

func (g REST) UpdateCharacter(ctx context.Context, id entity.ID, input CharacterInput) (entity.Character, error) {
	path, err := entityPath("characters", id)
	if err != nil {
		return entity.Character{}, err
	}
	var c entity.Character
	if err := g.client.Put(ctx, path, input, &c); err != nil {
		return entity.Character{}, fmt.Errorf("update character %s: %w", id, err)
	}
	return g.resolveCharacterArt(c), nil
}

func (g REST) Session(ctx context.Context, id entity.ID) (entity.Session, error) {
	path, err := entityPath("sessions", id)
	if err != nil {
		return entity.Session{}, err
	}
	var s entity.Session
	if err := g.client.Get(ctx, path, &s); err != nil {
		return entity.Session{}, fmt.Errorf("get session %s: %w", id, err)
	}
	return s, nil
}

func (g REST) Campaign(ctx context.Context, id entity.ID) (entity.Campaign, error) {
	path, err := entityPath("campaigns", id)
	if err != nil {
		return entity.Campaign{}, err
	}
	var c entity.Campaign
	if err := g.client.Get(ctx, path, &c); err != nil {
		return entity.Campaign{}, fmt.Errorf("get campaign %s: %w", id, err)
	}
	return g.resolveCampaignArt(c), nil
}

func (g REST) ListCampaigns(ctx context.Context) ([]entity.Campaign, error) {
	var items []entity.Campaign
	if err := g.client.Get(ctx, "/campaigns", &items); err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	for i := range items {
		items[i] = g.resolveCampaignArt(items[i])
	}
	return items, nil
}

func (g REST) CreateCampaign(ctx context.Context, input CampaignInput) (entity.Campaign, error) {
	var c entity.Campaign
	if err := g.client.Post(ctx, "/campaigns", input, &c); err != nil {
		return entity.Campaign{}, fmt.Errorf("create campaign: %w", err)
	}
	return g.resolveCampaignArt(c), nil
}

func (g REST) UpdateCampaign(ctx context.Context, id entity.ID, input CampaignInput) (entity.Campaign, error) {
	path, err := entityPath("campaigns", id)
	if err != nil {
		return entity.Campaign{}, err
	}
	var c entity.Campaign
	if err := g.client.Put(ctx, path, input, &c); err != nil {
		return entity.Campaign{}, fmt.Errorf("update campaign %s: %w", id, err)
	}
	return g.resolveCampaignArt(c), nil
}

func (g REST) DeleteCampaign(ctx context.Context, id entity.ID) error {
	path, err := entityPath("campaigns", id)
	if err != nil {
		return err
	}
	if err := g.client.Delete(ctx, path); err != nil {
		return fmt.Errorf("delete campaign %s: %w", id, err)
	}
	return nil
}

func (g REST) GenerateCampaignArt(ctx context.Context, id entity.ID) (entity.Campaign, error) {
	path, err := entityPath("campaigns", id)
	if err != nil {
		return entity.Campaign{}, err
	}
	var c entity.Campaign
	if err := g.client.Post(ctx, path+"/generate-art", nil, &c); err != nil {
		return entity.Campaign{}, fmt.Errorf("generate art for campaign %s: %w", id, err)
	}
	return g.resolveCampaignArt(c), nil
}

func (g REST) resolveCampaignArt(c entity.Campaign) entity.Campaign {
	c.ArtURL = g.client.ResolveArtURL(c.ArtURL)
	return c
}

func (g REST) resolveCharacterArt(c entity.Character) entity.Character {
	c.ArtURL = g.client.ResolveArtURL(c.ArtURL)
	return c
}

func entityPath(collection string, id entity.ID) (string, error) {
	raw := strings.TrimSpace(id.String())
	if raw == "" {
		return "", apperrors.E(apperrors.KindInvalidInput, collection+" id is required")
	}
	return "/" + collection + "/" + url.PathEscape(raw), nil
}
