// Package runtime connects the message store to the live subscribers.
// It orchestrates fan-out without containing domain rules.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"chat-room/contract"
	"chat-room/domain/event"
)

// Registry owns the set of live subscribers. No other component holds a
// subscriber reference; everyone else goes through Broadcast.
type Registry struct {
	mu          sync.Mutex
	subscribers map[contract.SubscriberID]contract.EventSink
	log         *slog.Logger
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		subscribers: make(map[contract.SubscriberID]contract.EventSink),
		log:         log,
	}
}

// Register wraps the sink into a new subscriber and returns its id.
// Ids combine generation time and randomness, so collisions are
// negligible and log lines sort by connection age.
func (r *Registry) Register(sink contract.EventSink) contract.SubscriberID {
	id := contract.SubscriberID(fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribers[id] = sink
	r.log.Debug("Subscriber registered", "subscriber_id", id, "total", len(r.subscribers))
	return id
}

// Unregister removes a subscriber. Removing an absent id is a no-op.
func (r *Registry) Unregister(id contract.SubscriberID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subscribers[id]; !ok {
		return
	}
	delete(r.subscribers, id)
	r.log.Debug("Subscriber unregistered", "subscriber_id", id, "total", len(r.subscribers))
}

// Broadcast delivers the event to every live subscriber. A sink that
// rejects the write is dropped on the spot; the failure never reaches the
// caller or the other subscribers.
func (r *Registry) Broadcast(ctx context.Context, e event.DomainEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, sink := range r.subscribers {
		if err := sink.Consume(ctx, e); err != nil {
			r.log.Warn("Dropping unreachable subscriber",
				"subscriber_id", id, "event", e.Kind(), "error", err)
			delete(r.subscribers, id)
		}
	}
}

// Len reports the number of live subscribers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subscribers)
}
