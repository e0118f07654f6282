package entities

import (
	"fmt"
	"time"
)

// Entry is a single milestone submission, stored as one row of the Entries table
type Entry struct {
	Timestamp   time.Time
	DiscordID   string
	DiscordName string // display label at submission time, never re-synced
	Species     string
	Tier        Tier
	SheetURL    string
}

// NewEntry creates an entry stamped with the given instant in UTC
func NewEntry(discordID, discordName, species string, tier Tier, sheetURL string, now time.Time) *Entry {
	return &Entry{
		Timestamp:   now.UTC(),
		DiscordID:   discordID,
		DiscordName: discordName,
		Species:     species,
		Tier:        tier,
		SheetURL:    sheetURL,
	}
}

// Values returns the row cells in EntriesHeader order
func (e *Entry) Values() []string {
	return []string{
		e.Timestamp.UTC().Format(time.RFC3339Nano),
		e.DiscordID,
		e.DiscordName,
		e.Species,
		string(e.Tier),
		e.SheetURL,
	}
}

// EntryFromRow converts an Entries row back into an entry.
// Species and tier are copied verbatim since the ledger accepts any value.
func EntryFromRow(row Row) (*Entry, error) {
	raw := row.Get("Timestamp")
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, fmt.Errorf("row %d has invalid timestamp %q: %w", row.Index, raw, err)
	}
	return &Entry{
		Timestamp:   ts.UTC(),
		DiscordID:   row.Get("DiscordID"),
		DiscordName: row.Get("DiscordName"),
		Species:     row.Get("Species"),
		Tier:        Tier(row.Get("Tier")),
		SheetURL:    row.Get("SheetURL"),
	}, nil
}

// RowMatches checks an Entries row against a (user, species, tier) key without parsing it
func RowMatches(row Row, discordID, species string, tier Tier) bool {
	return row.Get("DiscordID") == discordID &&
		row.Get("Species") == species &&
		row.Get("Tier") == string(tier)
}
