// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

// Mount prefixes are relative to Root; patterns below are relative to their
// module prefix and use chi parameter syntax.
const (
	Root               = "/"
	Health             = "/up"
	AppPrefix          = "/app/"
	AppCampaigns       = "/app/campaigns"
	CampaignsPrefix    = "/app/campaigns/"
	AppCampaignsNew    = "/app/campaigns/new"
	AppCharacters      = "/app/characters"
	CharactersPrefix   = "/app/characters/"
	AppCharactersNew   = "/app/characters/new"
	AppSessions        = "/app/sessions"
	SessionsPrefix     = "/app/sessions/"
	AppAssistant       = "/app/assistant"
	AssistantPrefix    = "/app/assistant/"
	AppAssistantRender = "/app/assistant/render"
	AppAssistantStream = "/app/assistant/ws"

	CampaignIDParam  = "campaignID"
	CharacterIDParam = "characterID"
	SessionIDParam   = "sessionID"

	CampaignPattern       = "/{" + CampaignIDParam + "}"
	CampaignEditPattern   = CampaignPattern + "/edit"
	CampaignDeletePattern = CampaignPattern + "/delete"
	CampaignArtPattern    = CampaignPattern + "/generate-art"
	CharacterEditPattern  = "/{" + CharacterIDParam + "}/edit"
	SessionPattern        = "/{" + SessionIDParam + "}"
)

// AppCampaignEdit returns the campaign edit-wizard route.
func AppCampaignEdit(campaignID string) string {
	return CampaignsPrefix + escapeSegment(campaignID) + "/edit"
}

// AppCampaignDelete returns the campaign delete-confirmation route.
func AppCampaignDelete(campaignID string) string {
	return CampaignsPrefix + escapeSegment(campaignID) + "/delete"
}

// AppCampaignGenerateArt returns the campaign art-generation route.
func AppCampaignGenerateArt(campaignID string) string {
	return CampaignsPrefix + escapeSegment(campaignID) + "/generate-art"
}

// AppCharacterEdit returns the character edit-form route.
func AppCharacterEdit(characterID string) string {
	return CharactersPrefix + escapeSegment(characterID) + "/edit"
}

// AppSession returns the session detail route.
func AppSession(sessionID string) string {
	return SessionsPrefix + escapeSegment(sessionID)
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
