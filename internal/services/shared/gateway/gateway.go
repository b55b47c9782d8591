// Package gateway exposes the entity fetchers and mutations the front-end
// needs, mapped onto the campaign REST surface.
package gateway

import (
	"context"

	"github.com/louisbranch/tabletop/internal/services/shared/entity"
)

// Fetcher resolves one entity of a given kind by identifier, one method per
// kind. It is the only collaborator the structured-data dispatcher depends
// on; batches are fanned out by the caller.
type Fetcher interface {
	Character(ctx context.Context, id entity.ID) (entity.Character, error)
	Session(ctx context.Context, id entity.ID) (entity.Session, error)
	Campaign(ctx context.Context, id entity.ID) (entity.Campaign, error)
}

// CampaignGateway lists and mutates campaigns.
type CampaignGateway interface {
	Campaign(ctx context.Context, id entity.ID) (entity.Campaign, error)
	ListCampaigns(ctx context.Context) ([]entity.Campaign, error)
	CreateCampaign(ctx context.Context, input CampaignInput) (entity.Campaign, error)
	UpdateCampaign(ctx context.Context, id entity.ID, input CampaignInput) (entity.Campaign, error)
	DeleteCampaign(ctx context.Context, id entity.ID) error
	GenerateCampaignArt(ctx context.Context, id entity.ID) (entity.Campaign, error)
}

// CharacterGateway lists and mutates characters.
type CharacterGateway interface {
	Character(ctx context.Context, id entity.ID) (entity.Character, error)
	ListCharacters(ctx context.Context) ([]entity.Character, error)
	CreateCharacter(ctx context.Context, input CharacterInput) (entity.Character, error)
	UpdateCharacter(ctx context.Context, id entity.ID, input CharacterInput) (entity.Character, error)
}

// SessionGateway reads sessions.
type SessionGateway interface {
	Session(ctx context.Context, id entity.ID) (entity.Session, error)
}

// Gateway is the full backend surface used by the front-end processes.
type Gateway interface {
	Fetcher
	CampaignGateway
	CharacterGateway
}

// CampaignInput is the create/update payload for campaigns. Nil optional
// fields encode as JSON null so the backend can tell "cleared" from
// "untouched".
type CampaignInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// CharacterInput is the create/update payload for characters.
type CharacterInput struct {
	Name            string     `json:"name"`
	CampaignID      *entity.ID `json:"campaign_id"`
	MaxHP           int        `json:"max_hp"`
	Level           *int       `json:"level"`
	ArmorClass      *int       `json:"ac"`
	InitiativeBonus *int       `json:"initiative_bonus"`
	TempHP          *int       `json:"temp_hp"`
	Race            *string    `json:"race"`
	Class           *string    `json:"class"`
	Background      *string    `json:"background"`
	Alignment       *string    `json:"alignment"`
	Notes           *string    `json:"notes"`
}
