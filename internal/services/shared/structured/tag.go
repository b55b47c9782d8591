// Package structured turns structured chat blocks into render-ready entities.
//
// A block is a type tag plus a raw JSON payload. The dispatcher filters tags
// against a fixed grammar, parses the payload once, classifies its shape per
// entity family, and resolves bare identifiers through an entity fetcher.
// It never writes, caches, or retries.
package structured

import (
	"strings"

	"github.com/louisbranch/tabletop/internal/services/shared/entity"
)

// Family is the entity family selected by a tag.
type Family string

const (
	FamilyCharacter Family = "character"
	FamilySession   Family = "session"
	FamilyCampaign  Family = "campaign"
)

const tagPrefix = "json:"

// ParseTag maps a block tag to its family. Tags outside the grammar report
// false and the block is not applicable.
func ParseTag(tag string) (Family, bool) {
	tag = strings.TrimSpace(tag)
	rest, ok := strings.CutPrefix(tag, tagPrefix)
	if !ok {
		return "", false
	}
	for _, family := range []Family{FamilyCharacter, FamilySession, FamilyCampaign} {
		if strings.HasPrefix(rest, string(family)) {
			return family, true
		}
	}
	return "", false
}

// EntityKind returns the entity kind resolved for the family.
func (f Family) EntityKind() entity.Kind {
	switch f {
	case FamilyCharacter:
		return entity.KindCharacter
	case FamilySession:
		return entity.KindSession
	case FamilyCampaign:
		return entity.KindCampaign
	default:
		return ""
	}
}

// AcceptsArrays reports whether the family has a collection form.
func (f Family) AcceptsArrays() bool {
	return f == FamilyCharacter || f == FamilySession
}
