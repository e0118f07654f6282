package events

import "time"

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeMilestoneSubmitted   EventType = "milestone_submitted"
	EventTypeMilestoneRemoved     EventType = "milestone_removed"
	EventTypeLeaderboardBroadcast EventType = "leaderboard_broadcast"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// MilestoneSubmittedEvent is emitted after an entry was appended to the ledger
type MilestoneSubmittedEvent struct {
	DiscordID   string    `json:"discord_id"`
	DiscordName string    `json:"discord_name"`
	Species     string    `json:"species"`
	Tier        string    `json:"tier"`
	SheetURL    string    `json:"sheet_url"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func (e MilestoneSubmittedEvent) Type() EventType {
	return EventTypeMilestoneSubmitted
}

// MilestoneRemovedEvent is emitted after the latest matching entry was deleted
type MilestoneRemovedEvent struct {
	DiscordID   string    `json:"discord_id"`
	Species     string    `json:"species"`
	Tier        string    `json:"tier"`
	SubmittedAt time.Time `json:"submitted_at"`
	RowIndex    int       `json:"row_index"`
}

func (e MilestoneRemovedEvent) Type() EventType {
	return EventTypeMilestoneRemoved
}

// LeaderboardBroadcastEvent is emitted after the daily leaderboard was posted
type LeaderboardBroadcastEvent struct {
	ChannelID   string    `json:"channel_id"`
	Players     int       `json:"players"`
	BroadcastAt time.Time `json:"broadcast_at"`
}

func (e LeaderboardBroadcastEvent) Type() EventType {
	return EventTypeLeaderboardBroadcast
}
