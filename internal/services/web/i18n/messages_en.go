package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	// Layout
	message.SetString(lang, "app.name", "Tabletop")
	message.SetString(lang, "title.page", "%s | Tabletop")
	message.SetString(lang, "nav.campaigns", "Campaigns")
	message.SetString(lang, "nav.characters", "Characters")
	message.SetString(lang, "nav.assistant", "Assistant")

	// Campaigns
	message.SetString(lang, "campaigns.title", "Campaigns")
	message.SetString(lang, "campaigns.empty", "No campaigns yet.")
	message.SetString(lang, "campaigns.new", "New campaign")
	message.SetString(lang, "campaigns.edit", "Edit")
	message.SetString(lang, "campaigns.delete", "Delete")
	message.SetString(lang, "campaigns.generate_art", "Generate art")
	message.SetString(lang, "campaigns.generating_art", "Generating art…")
	message.SetString(lang, "campaigns.no_description", "No description.")
	message.SetString(lang, "campaigns.delete.title", "Delete campaign")
	message.SetString(lang, "campaigns.delete.prompt", "Delete %s? Characters and sessions stay, detached from the campaign.")
	message.SetString(lang, "campaigns.delete.confirm", "Delete campaign")
	message.SetString(lang, "campaigns.delete.cancel", "Cancel")

	// Wizard
	message.SetString(lang, "wizard.title.create", "New campaign")
	message.SetString(lang, "wizard.title.edit", "Edit campaign")
	message.SetString(lang, "wizard.step.basics", "Basics")
	message.SetString(lang, "wizard.step.review", "Review")
	message.SetString(lang, "wizard.next", "Next")
	message.SetString(lang, "wizard.back", "Back")
	message.SetString(lang, "wizard.close", "Close")
	message.SetString(lang, "wizard.commit.create", "Create campaign")
	message.SetString(lang, "wizard.commit.edit", "Save changes")
	message.SetString(lang, "wizard.loading", "Loading campaign…")

	// Forms
	message.SetString(lang, "field.name", "Name")
	message.SetString(lang, "field.description", "Description")
	message.SetString(lang, "field.campaign_id", "Campaign")
	message.SetString(lang, "field.max_hp", "Max HP")
	message.SetString(lang, "field.level", "Level")
	message.SetString(lang, "field.ac", "Armor class")
	message.SetString(lang, "field.initiative_bonus", "Initiative bonus")
	message.SetString(lang, "field.temp_hp", "Temp HP")
	message.SetString(lang, "field.race", "Race")
	message.SetString(lang, "field.class", "Class")
	message.SetString(lang, "field.background", "Background")
	message.SetString(lang, "field.alignment", "Alignment")
	message.SetString(lang, "field.notes", "Notes")
	message.SetString(lang, "form.save", "Save")
	message.SetString(lang, "form.loading", "Loading…")

	// Characters
	message.SetString(lang, "characters.title", "Characters")
	message.SetString(lang, "characters.empty", "No characters yet.")
	message.SetString(lang, "characters.new", "New character")
	message.SetString(lang, "characters.edit", "Edit character")
	message.SetString(lang, "character.unnamed", "Unnamed character")
	message.SetString(lang, "character.level", "Level %s")
	message.SetString(lang, "character.hp", "HP %s")
	message.SetString(lang, "character.ac", "AC %s")

	// Sessions
	message.SetString(lang, "sessions.empty", "No sessions.")
	message.SetString(lang, "session.unnamed", "Unnamed session")
	message.SetString(lang, "session.status.active", "Active")
	message.SetString(lang, "session.status.ended", "Ended")
	message.SetString(lang, "session.status.unknown", "Unknown status")
	message.SetString(lang, "session.started", "Started %s")
	message.SetString(lang, "session.ended", "Ended %s")

	// Assistant
	message.SetString(lang, "assistant.title", "Assistant")
	message.SetString(lang, "assistant.placeholder", "Assistant messages appear here.")

	// Errors
	message.SetString(lang, "error.generic", "Something went wrong. Please try again.")
	message.SetString(lang, "error.malformed_payload", "This block is not valid JSON.")
	message.SetString(lang, "error.invalid_shape", "This block has an unsupported shape.")
	message.SetString(lang, "error.resolution_failed", "Could not load the referenced records: %s")
	message.SetString(lang, "error.not_found", "Not found.")
	message.SetString(lang, "error.unavailable", "The campaign service is unavailable.")
	message.SetString(lang, "error.busy", "That action is already running.")

	// Notices
	message.SetString(lang, "flash.campaign_created", "Campaign created.")
	message.SetString(lang, "flash.campaign_updated", "Campaign updated.")
	message.SetString(lang, "flash.campaign_deleted", "Campaign deleted.")
	message.SetString(lang, "flash.character_saved", "Character saved.")
}
