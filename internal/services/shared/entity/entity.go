// Package entity defines the campaign, character, and session shapes consumed
// by the front-end. Entities are read-only values once fetched; the backend
// owns their identity and lifecycle.
package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind names an entity family.
type Kind string

const (
	KindCharacter Kind = "character"
	KindSession   Kind = "session"
	KindCampaign  Kind = "campaign"
)

// ID is an opaque backend identifier. The backend and assistant payloads emit
// it either as a JSON string or a JSON integer; both decode to the same value
// and it always encodes as a string.
type ID string

// IDFromInt formats an integer identifier.
func IDFromInt(value int64) ID {
	return ID(strconv.FormatInt(value, 10))
}

// String returns the raw identifier.
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is unset.
func (id ID) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

// UnmarshalJSON accepts strings, integers, and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}
		*id = ID(value)
		return nil
	}
	value, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("entity id %s: must be a string or integer", data)
	}
	*id = IDFromInt(value)
	return nil
}

// Campaign is a tabletop campaign.
type Campaign struct {
	ID          ID         `json:"id"`
	OwnerID     ID         `json:"owner_id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ArtURL      string     `json:"art_url,omitempty"`
	ArtPrompt   string     `json:"art_prompt,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// ItemID returns the campaign identifier.
func (c Campaign) ItemID() ID { return c.ID }

// Character is a player or non-player character.
type Character struct {
	ID              ID         `json:"id"`
	OwnerID         ID         `json:"owner_id,omitempty"`
	CampaignID      ID         `json:"campaign_id,omitempty"`
	Name            string     `json:"name"`
	MaxHP           *int       `json:"max_hp,omitempty"`
	Level           *int       `json:"level,omitempty"`
	ArmorClass      *int       `json:"ac,omitempty"`
	InitiativeBonus *int       `json:"initiative_bonus,omitempty"`
	TempHP          *int       `json:"temp_hp,omitempty"`
	Race            string     `json:"race,omitempty"`
	Class           string     `json:"class,omitempty"`
	Background      string     `json:"background,omitempty"`
	Alignment       string     `json:"alignment,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	ArtURL          string     `json:"art_url,omitempty"`
	ArtPrompt       string     `json:"art_prompt,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// ItemID returns the character identifier.
func (c Character) ItemID() ID { return c.ID }

// SessionStatus is the lifecycle state of a play session.
type SessionStatus string

const (
	SessionActive SessionStatus = "active"
	SessionEnded  SessionStatus = "ended"
)

// Session is one play session.
type Session struct {
	ID         ID            `json:"id"`
	OwnerID    ID            `json:"owner_id,omitempty"`
	CampaignID ID            `json:"campaign_id,omitempty"`
	Name       string        `json:"name"`
	Status     SessionStatus `json:"status,omitempty"`
	StartedAt  *time.Time    `json:"started_at,omitempty"`
	EndedAt    *time.Time    `json:"ended_at,omitempty"`
}

// ItemID returns the session identifier.
func (s Session) ItemID() ID { return s.ID }

// Active reports whether the session is still running.
func (s Session) Active() bool {
	return s.Status == SessionActive
}
