package infrastructure

import (
	"fmt"

	"milestonebot/domain/events"
)

// Subjects published by the bot
const (
	SubjectMilestoneSubmitted   = "milestone.submitted"
	SubjectMilestoneRemoved     = "milestone.removed"
	SubjectLeaderboardBroadcast = "milestone.leaderboard_broadcast"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeMilestoneSubmitted:
		return SubjectMilestoneSubmitted
	case events.EventTypeMilestoneRemoved:
		return SubjectMilestoneRemoved
	case events.EventTypeLeaderboardBroadcast:
		return SubjectLeaderboardBroadcast
	default:
		return fmt.Sprintf("milestone.unknown.%s", event.Type())
	}
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	switch subject {
	case SubjectMilestoneSubmitted:
		return events.EventTypeMilestoneSubmitted
	case SubjectMilestoneRemoved:
		return events.EventTypeMilestoneRemoved
	case SubjectLeaderboardBroadcast:
		return events.EventTypeLeaderboardBroadcast
	default:
		return events.EventType(subject)
	}
}

// GetAllSubjects returns the subjects bound to the milestones stream
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{"milestone.>"}
}
