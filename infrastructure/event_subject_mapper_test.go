package infrastructure

import (
	"testing"

	"milestonebot/domain/events"

	"github.com/stretchr/testify/assert"
)

type unknownEvent struct{}

func (unknownEvent) Type() events.EventType { return "mystery" }

func TestEventSubjectMapper_RoundTrip(t *testing.T) {
	mapper := NewEventSubjectMapper()

	tests := []struct {
		event   events.Event
		subject string
	}{
		{events.MilestoneSubmittedEvent{}, SubjectMilestoneSubmitted},
		{events.MilestoneRemovedEvent{}, SubjectMilestoneRemoved},
		{events.LeaderboardBroadcastEvent{}, SubjectLeaderboardBroadcast},
	}

	for _, tt := range tests {
		t.Run(string(tt.event.Type()), func(t *testing.T) {
			subject := mapper.MapEventToSubject(tt.event)
			assert.Equal(t, tt.subject, subject)
			assert.Equal(t, tt.event.Type(), mapper.MapSubjectToEventType(subject))
		})
	}

	assert.Equal(t, "milestone.unknown.mystery", mapper.MapEventToSubject(unknownEvent{}))
}
