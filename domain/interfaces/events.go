package interfaces

import "milestonebot/domain/events"

// EventPublisher publishes domain events to interested subscribers
type EventPublisher interface {
	Publish(event events.Event) error
}
