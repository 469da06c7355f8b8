// Package sink provides the event consumers fed by the dispatcher.
package sink

import (
	"context"
	"sync"

	"chat-room/domain/event"
	chaterrors "chat-room/errors"
)

// StreamSink is the per-connection channel between the dispatcher and one
// SSE stream. Consume never blocks: the stream handler owns the draining
// side, and a subscriber that cannot keep up is treated as gone so the
// registry drops it.
type StreamSink struct {
	mu     sync.Mutex
	events chan event.DomainEvent
	closed bool
}

func NewStreamSink(bufferSize int) *StreamSink {
	return &StreamSink{events: make(chan event.DomainEvent, bufferSize)}
}

// Events is the draining side, owned by the stream handler.
func (s *StreamSink) Events() <-chan event.DomainEvent {
	return s.events
}

func (s *StreamSink) Consume(_ context.Context, e event.DomainEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return chaterrors.ErrSubscriberGone
	}
	select {
	case s.events <- e:
		return nil
	default:
		return chaterrors.ErrSlowSubscriber
	}
}

// Close releases the sink. Idempotent; buffered events still drain, then
// the channel reports closed.
func (s *StreamSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.events)
}
