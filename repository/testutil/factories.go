package testutil

import (
	"time"

	"milestonebot/domain/entities"
)

// FixedTime is the submission instant used by test entries
var FixedTime = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// CreateTestEntry creates an entry with default name and sheet url
func CreateTestEntry(discordID, species string, tier entities.Tier) *entities.Entry {
	return entities.NewEntry(discordID, "user-"+discordID, species, tier, "https://sheets.example/"+discordID, FixedTime)
}

// CreateTestEntryAt creates an entry submitted at the given instant
func CreateTestEntryAt(discordID, species string, tier entities.Tier, at time.Time) *entities.Entry {
	entry := CreateTestEntry(discordID, species, tier)
	entry.Timestamp = at.UTC()
	return entry
}

// EntryRows converts entries into raw Entries cells
func EntryRows(entries ...*entities.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, e.Values())
	}
	return rows
}
