package contract

import (
	"chat-room/domain"
	"chat-room/domain/event"
	"context"
)

// EventSink consumes fanned-out domain events.
// Consume must not block. A returned error means the sink is unusable and
// its subscriber should be removed from the registry.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// SubscriberID identifies one open push channel.
type SubscriberID string

type IRegistry interface {
	Register(sink EventSink) SubscriberID
	Unregister(id SubscriberID)
	Broadcast(ctx context.Context, e event.DomainEvent)
	Len() int
}

type IMessageStore interface {
	Append(author, text string) (domain.Message, error)
	AllMessages() []domain.Message
	Counts() map[string]int
}
