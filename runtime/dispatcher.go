package runtime

import (
	"context"
	"log/slog"

	"chat-room/contract"
	"chat-room/domain"
	"chat-room/domain/event"
	chaterrors "chat-room/errors"
	"chat-room/moderation"
)

// Dispatcher is the only component that reads from the store and writes
// to every registry entry. It keeps no state between calls.
type Dispatcher struct {
	store     contract.IMessageStore
	registry  contract.IRegistry
	sinks     []contract.EventSink
	moderator *moderation.Moderator
	log       *slog.Logger
}

func NewDispatcher(log *slog.Logger, store contract.IMessageStore, registry contract.IRegistry) *Dispatcher {
	return &Dispatcher{store: store, registry: registry, log: log}
}

// Add attaches permanent sinks (indexing and the like). They receive
// every event before the subscribers do, best effort.
func (d *Dispatcher) Add(sinks ...contract.EventSink) {
	d.sinks = append(d.sinks, sinks...)
}

// WithModerator enables the censor pass on posted text.
func (d *Dispatcher) WithModerator(m *moderation.Moderator) *Dispatcher {
	d.moderator = m
	return d
}

// Publish appends the message durably, then fans out a message event
// followed by a stats event; consumers may rely on that order. A
// validation failure propagates to the caller and nothing is broadcast.
// Delivery to peers is asynchronous with respect to the poster's
// response.
func (d *Dispatcher) Publish(ctx context.Context, author, text string) (domain.Message, error) {
	if d.moderator != nil {
		text = d.moderator.Censor(text)
	}
	msg, err := d.store.Append(author, text)
	if err != nil {
		if chaterrors.IsValidation(err) {
			d.log.Debug("Post rejected", "author", author, "error", err)
		}
		return domain.Message{}, err
	}

	d.fanout(ctx, event.MessagePosted{Message: msg})
	// Counts are read after the append, never before, so the stats event
	// can never carry a value older than the message it follows.
	d.fanout(ctx, event.StatsUpdated{Counts: d.store.Counts()})
	return msg, nil
}

func (d *Dispatcher) fanout(ctx context.Context, e event.DomainEvent) {
	for _, s := range d.sinks {
		if err := s.Consume(ctx, e); err != nil {
			d.log.Warn("Permanent sink rejected event", "event", e.Kind(), "error", err)
		}
	}
	d.registry.Broadcast(ctx, e)
}
